package ast_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicery/lox-resolver/pkg/ast"
	"github.com/spicery/lox-resolver/pkg/common"
	"github.com/spicery/lox-resolver/pkg/parser"
)

const sample = `
var greeting = "hi";
class Base { greet() { print greeting; } }
class Derived < Base {
  init(name) { this.name = name; }
  greet() { super.greet(); return this.name; }
}
fun count(n) {
  for (var i = 0; i < n; i = i + 1) {
    if (i == 2 and !false) print i; else print nil;
  }
  while (n > 0) n = n - 1;
  return -(n);
}
Derived("x").greet();
`

func TestRoundTripThroughJSON(t *testing.T) {
	program, err := parser.ParseString(sample)
	require.NoError(t, err)

	tree := ast.ToNode(program, nil)
	var buf bytes.Buffer
	common.PrintASTJSON(tree, "", &buf, &common.PrintOptions{IncludeSpans: true})

	decoded, err := common.ReadASTJSON(&buf)
	require.NoError(t, err)
	back, err := ast.FromNode(decoded)
	require.NoError(t, err)

	// Converting the decoded program again yields the same tree.
	assert.Equal(t, tree, ast.ToNode(back, nil))
}

func TestFromNodeShapes(t *testing.T) {
	class := common.NewNode(common.NameClass, common.Span{StartLine: 1, StartColumn: 1},
		variable("Base"),
		fun("init", []string{"x"}),
	)
	class.Options[common.OptionName] = "Derived"
	program, err := ast.FromNode(common.NewNode(common.NameProgram, common.Span{}, class))
	require.NoError(t, err)
	require.Len(t, program, 1)

	c := program[0].(*ast.Class)
	assert.Equal(t, "Derived", c.Name.Text)
	require.NotNil(t, c.Superclass)
	assert.Equal(t, "Base", c.Superclass.Name.Text)
	require.Len(t, c.Methods, 1)
	assert.Equal(t, "x", c.Methods[0].Params[0].Text)
}

func TestFromNodeErrors(t *testing.T) {
	badLiteral := common.NewNode(common.NameLiteral, common.Span{StartLine: 2, StartColumn: 3})
	badLiteral.Options[common.OptionKind] = "symbol"

	tests := []struct {
		name string
		root *common.Node
		want string
	}{
		{"nil", nil, "invalid node: nil"},
		{"wrong root", common.NewNode(common.NameBlock, common.Span{}), "expected program node, got block, at line 0, column 0"},
		{"unknown statement", program(common.NewNode("loop", common.Span{StartLine: 4, StartColumn: 1})),
			"unexpected statement node: loop, at line 4, column 1"},
		{"missing name", program(common.NewNode(common.NameVar, common.Span{StartLine: 1, StartColumn: 5})),
			"var node missing name option, at line 1, column 5"},
		{"bad literal", program(common.NewNode(common.NameExpression, common.Span{}, badLiteral)),
			`unexpected literal kind: "symbol", at line 2, column 3`},
		{"while arity", program(common.NewNode(common.NameWhile, common.Span{StartLine: 7, StartColumn: 2})),
			"while node: expected 2 children, got 0, at line 7, column 2"},
		{"null fun child", program(named(common.NameFun, "f", nil)),
			"fun node must start with a parameters node, at line 0, column 0"},
		{"null parameter", program(named(common.NameFun, "f", common.NewNode(common.NameParameters, common.Span{}, nil))),
			"invalid parameter node: nil, at line 0, column 0"},
		{"null class child", program(named(common.NameClass, "A", nil)),
			"invalid node in class body: nil, at line 0, column 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ast.FromNode(tt.root)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestFromNodeWrapsNestedErrors(t *testing.T) {
	bad := common.NewNode(common.NameVariable, common.Span{StartLine: 3, StartColumn: 9})
	decl := common.NewNode(common.NameVar, common.Span{}, bad)
	decl.Options[common.OptionName] = "x"
	_, err := ast.FromNode(program(common.NewNode(common.NameBlock, common.Span{}, decl)))
	require.Error(t, err)
	assert.Equal(t, "in block: in initializer of x: variable node missing name option, at line 3, column 9", err.Error())
}

func program(children ...*common.Node) *common.Node {
	return common.NewNode(common.NameProgram, common.Span{}, children...)
}

func named(nodeName, name string, children ...*common.Node) *common.Node {
	n := common.NewNode(nodeName, common.Span{}, children...)
	n.Options[common.OptionName] = name
	return n
}

func variable(name string) *common.Node {
	n := common.NewNode(common.NameVariable, common.Span{})
	n.Options[common.OptionName] = name
	return n
}

func fun(name string, params []string) *common.Node {
	ps := common.NewNode(common.NameParameters, common.Span{})
	for _, p := range params {
		pn := common.NewNode(common.NameParameter, common.Span{})
		pn.Options[common.OptionName] = p
		ps.Children = append(ps.Children, pn)
	}
	n := common.NewNode(common.NameFun, common.Span{}, ps)
	n.Options[common.OptionName] = name
	return n
}
