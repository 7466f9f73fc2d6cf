package common

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type yamlNode struct {
	Role     string            `yaml:"role"`
	Options  map[string]string `yaml:"options,omitempty"`
	Span     string            `yaml:"span,omitempty"`
	Children []*yamlNode       `yaml:"children,omitempty"`
}

func toYAMLNode(n *Node, options *PrintOptions) *yamlNode {
	y := &yamlNode{Role: n.Name}
	if len(n.Options) > 0 {
		y.Options = make(map[string]string, len(n.Options))
		for key, value := range n.Options {
			y.Options[key] = TrimValue(key, value, options.TrimTokenOnOutput)
		}
	}
	if options.IncludeSpans {
		y.Span = n.Span.SpanString()
	}
	for _, child := range n.Children {
		y.Children = append(y.Children, toYAMLNode(child, options))
	}
	return y
}

func PrintASTYAML(root *Node, indentDelta string, output io.Writer, options *PrintOptions) {
	encoder := yaml.NewEncoder(output)
	defer encoder.Close()
	if len(indentDelta) > 0 {
		encoder.SetIndent(len(indentDelta))
	}
	if err := encoder.Encode(toYAMLNode(root, options)); err != nil {
		fmt.Fprintf(output, "# error: %v\n", err)
	}
}
