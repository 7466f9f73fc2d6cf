package common

import (
	"encoding/json"
	"io"
)

func PrintASTJSON(root *Node, indentDelta string, output io.Writer, options *PrintOptions) {
	encoder := json.NewEncoder(output)
	if indentDelta != "" {
		encoder.SetIndent("", indentDelta)
	}
	encoder.Encode(stripSpans(root, options))
}

func ReadASTJSON(input io.Reader) (*Node, error) {
	var root Node
	decoder := json.NewDecoder(input)
	err := decoder.Decode(&root)
	if err != nil {
		return nil, err
	}
	return &root, nil
}

// stripSpans returns a copy of the tree without spans when the options ask for it.
func stripSpans(node *Node, options *PrintOptions) *Node {
	if options == nil || options.IncludeSpans {
		return node
	}
	copied := &Node{
		Name:     node.Name,
		Options:  node.Options,
		Children: make([]*Node, 0, len(node.Children)),
	}
	for _, child := range node.Children {
		copied.Children = append(copied.Children, stripSpans(child, options))
	}
	return copied
}
