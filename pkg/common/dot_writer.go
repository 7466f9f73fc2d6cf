package common

import (
	"fmt"
	"io"
	"strings"
)

func PrintASTDOT(root *Node, indentDelta string, output io.Writer, options *PrintOptions) {
	fmt.Fprintln(output, `digraph G {`)
	fmt.Fprintln(output, `  bgcolor="transparent";`)
	fmt.Fprintln(output, `  node [shape="box", style="filled", fontname="Ubuntu Mono"];`)

	counter := 0
	printNodeDOT(root, "", &counter, output, options)

	fmt.Fprintln(output, `}`)
}

func printNodeDOT(node *Node, parentID string, counter *int, output io.Writer, options *PrintOptions) {
	nodeID := fmt.Sprintf("node_%d", *counter)
	*counter++

	label := node.Name
	for _, key := range []string{OptionName, OptionOperator, OptionValue, OptionMethod} {
		if value, exists := node.Options[key]; exists {
			trimmedValue := TrimValue(key, value, options.TrimTokenOnOutput)
			label = fmt.Sprintf("%s: %s", node.Name, escapeDOTValue(trimmedValue))
			break
		}
	}
	if depth, exists := node.Options[OptionDepth]; exists {
		label = fmt.Sprintf("%s @%s", label, depth)
	}

	fillColor := tagColors[node.Name]
	if fillColor == "" {
		fillColor = "lightgray"
	}

	fmt.Fprintf(output, "  \"%s\" [label=\"%s\", shape=\"box\", fillcolor=\"%s\"];\n", nodeID, label, fillColor)

	if parentID != "" {
		fmt.Fprintf(output, "  \"%s\" -> \"%s\";\n", parentID, nodeID)
	}

	for _, child := range node.Children {
		printNodeDOT(child, nodeID, counter, output, options)
	}
}

func escapeDOTValue(value string) string {
	return strings.ReplaceAll(value, `"`, `\"`)
}

var tagColors = map[string]string{
	NameBlock:    "lightpink",
	NameFun:      "#FFD8E1",
	NameClass:    "lightgreen",
	NameVariable: "Honeydew",
	NameAssign:   "PaleTurquoise",
	NameThis:     "#C0FFC0",
	NameSuper:    "#C0FFC0",
	NameLiteral:  "lightgoldenrodyellow",
}
