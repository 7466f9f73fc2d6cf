package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicery/lox-resolver/pkg/ast"
	"github.com/spicery/lox-resolver/pkg/common"
)

func mustParse(t *testing.T, src string) ast.Program {
	t.Helper()
	program, err := ParseString(src)
	require.NoError(t, err)
	return program
}

func TestParseVarAndPrint(t *testing.T) {
	program := mustParse(t, `var a = 1 + 2 * 3; print a;`)
	require.Len(t, program, 2)

	decl, ok := program[0].(*ast.Var)
	require.True(t, ok)
	assert.Equal(t, "a", decl.Name.Text)
	sum, ok := decl.Initializer.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", sum.Operator.Text)
	_, ok = sum.Right.(*ast.Binary)
	assert.True(t, ok, "multiplication binds tighter than addition")

	stmt, ok := program[1].(*ast.Print)
	require.True(t, ok)
	assert.IsType(t, &ast.Variable{}, stmt.Expression)
}

func TestParseAssignmentTargets(t *testing.T) {
	program := mustParse(t, `a = b = 1; obj.field = 2;`)
	require.Len(t, program, 2)

	outer := program[0].(*ast.Expression).Expression.(*ast.Assign)
	assert.Equal(t, "a", outer.Name.Text)
	inner := outer.Value.(*ast.Assign)
	assert.Equal(t, "b", inner.Name.Text)

	set := program[1].(*ast.Expression).Expression.(*ast.Set)
	assert.Equal(t, "field", set.Name.Text)
	assert.IsType(t, &ast.Variable{}, set.Object)
}

func TestParseClass(t *testing.T) {
	program := mustParse(t, `
class B < A {
  init(x) { this.x = x; }
  get() { return super.get(); }
}`)
	require.Len(t, program, 1)
	class := program[0].(*ast.Class)
	assert.Equal(t, "B", class.Name.Text)
	require.NotNil(t, class.Superclass)
	assert.Equal(t, "A", class.Superclass.Name.Text)
	require.Len(t, class.Methods, 2)
	assert.Equal(t, "init", class.Methods[0].Name.Text)
	assert.Len(t, class.Methods[0].Params, 1)

	ret := class.Methods[1].Body[0].(*ast.Return)
	call := ret.Value.(*ast.Call)
	super := call.Callee.(*ast.Super)
	assert.Equal(t, "get", super.Method.Text)
}

func TestParseForDesugarsToWhile(t *testing.T) {
	program := mustParse(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	require.Len(t, program, 1)
	outer, ok := program[0].(*ast.Block)
	require.True(t, ok)
	require.Len(t, outer.Statements, 2)
	assert.IsType(t, &ast.Var{}, outer.Statements[0])
	loop := outer.Statements[1].(*ast.While)
	body := loop.Body.(*ast.Block)
	require.Len(t, body.Statements, 2)
	assert.IsType(t, &ast.Print{}, body.Statements[0])
	assert.IsType(t, &ast.Expression{}, body.Statements[1])
}

func TestParseForWithoutClauses(t *testing.T) {
	program := mustParse(t, `for (;;) print 1;`)
	loop := program[0].(*ast.While)
	cond := loop.Condition.(*ast.Literal)
	assert.Equal(t, ast.TrueLiteral, cond.Kind)
}

func TestParseLogicalAndCalls(t *testing.T) {
	program := mustParse(t, `f(1, "two")(3) or !x and y;`)
	logical := program[0].(*ast.Expression).Expression.(*ast.Logical)
	assert.Equal(t, "or", logical.Operator.Text)
	outerCall := logical.Left.(*ast.Call)
	assert.Len(t, outerCall.Arguments, 1)
	innerCall := outerCall.Callee.(*ast.Call)
	require.Len(t, innerCall.Arguments, 2)
	lit := innerCall.Arguments[1].(*ast.Literal)
	assert.Equal(t, ast.StringLiteral, lit.Kind)
	assert.Equal(t, "two", lit.Value)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing semicolon", "print 1", "Expect ';' after value. at end, line 1, column 8"},
		{"invalid assignment", "1 = 2;", "Invalid assignment target. at '=', line 1, column 3"},
		{"missing expression", "var a = ;", "Expect expression. at ';', line 1, column 9"},
		{"unclosed block", "{ print 1;", "Expect '}' after block. at end, line 1, column 11"},
		{"super without method", "super;", "Expect '.' after 'super'. at ';', line 1, column 6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.src)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestParseTooManyArguments(t *testing.T) {
	args := make([]string, common.MaxArity+1)
	for i := range args {
		args[i] = "1"
	}
	_, err := ParseString("f(" + strings.Join(args, ", ") + ");")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't have more than 255 arguments.")
}
