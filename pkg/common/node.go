package common

import (
	"fmt"
	"io"
	"strings"
)

type Node struct {
	Name     string            // The name of the node
	Span     Span              // The span of the node in the source
	Options  map[string]string // Attributes (name-value pairs)
	Children []*Node           // Child nodes
}

// Statement nodes.
const NameProgram = "program"
const NameBlock = "block"
const NameVar = "var"
const NameFun = "fun"
const NameParameters = "parameters"
const NameParameter = "parameter"
const NameClass = "class"
const NameIf = "if"
const NameWhile = "while"
const NamePrint = "print"
const NameExpression = "expression"
const NameReturn = "return"

// Expression nodes.
const NameAssign = "assign"
const NameBinary = "binary"
const NameCall = "call"
const NameGrouping = "grouping"
const NameLiteral = "literal"
const NameLogical = "logical"
const NameUnary = "unary"
const NameVariable = "variable"
const NameGet = "get"
const NameSet = "set"
const NameThis = "this"
const NameSuper = "super"

const OptionName = "name"
const OptionOperator = "operator"
const OptionKind = "kind"
const OptionValue = "value"
const OptionMethod = "method"
const OptionSpan = "span"
const OptionSrc = "src"
const OptionDepth = "depth"
const OptionScope = "scope"

const ValueNumber = "number"
const ValueString = "string"
const ValueTrue = "true"
const ValueFalse = "false"
const ValueNil = "nil"
const ValueGlobal = "global"

// MaxArity is the largest number of parameters or arguments Lox allows.
const MaxArity = 255

// TrimValue trims a value if it's a token value and trimming is enabled
func TrimValue(key, value string, trimLength int) string {
	if key == OptionValue && trimLength > 0 && len(value) > trimLength {
		// Reserve space for Unicode ellipsis (1 character: "…")
		if trimLength >= 2 {
			return value[:trimLength-1] + "…"
		} else if trimLength >= 1 {
			// If trim length is too small for ellipsis, just truncate
			return value[:trimLength]
		}
	}
	return value
}

type PrintFunc func(*Node, string, io.Writer, *PrintOptions)

// PickPrintFunc returns the writer for the named output format.
func PickPrintFunc(format string) (PrintFunc, error) {
	switch strings.ToUpper(format) {
	case "JSON":
		return PrintASTJSON, nil
	case "YAML":
		return PrintASTYAML, nil
	case "ASCIITREE":
		return PrintASTAsciiTree, nil
	case "DOT":
		return PrintASTDOT, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func (n *Node) UpdateSpan() {
	if len(n.Children) > 0 {
		span := n.Children[0].Span
		for _, child := range n.Children[1:] {
			span = span.MergeSpan(&child.Span)
		}
		n.Span = span
	}
}

// NewNode creates a node with an empty options map.
func NewNode(name string, span Span, children ...*Node) *Node {
	return &Node{
		Name:     name,
		Span:     span,
		Options:  map[string]string{},
		Children: children,
	}
}
