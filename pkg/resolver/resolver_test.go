package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicery/lox-resolver/pkg/ast"
	"github.com/spicery/lox-resolver/pkg/common"
	"github.com/spicery/lox-resolver/pkg/diagnostic"
	"github.com/spicery/lox-resolver/pkg/parser"
)

func parse(t *testing.T, src string) ast.Program {
	t.Helper()
	program, err := parser.ParseString(src)
	require.NoError(t, err)
	return program
}

// refs returns, in source order, the references to name: variables,
// assignments, and this/super keywords.
func refs(program ast.Program, name string) []ast.Expr {
	var found []ast.Expr
	ast.ToNode(program, func(expr ast.Expr, _ *common.Node) {
		switch e := expr.(type) {
		case *ast.Variable:
			if e.Name.Text == name {
				found = append(found, e)
			}
		case *ast.Assign:
			if e.Name.Text == name {
				found = append(found, e)
			}
		case *ast.This:
			if name == thisName {
				found = append(found, e)
			}
		case *ast.Super:
			if name == superName {
				found = append(found, e)
			}
		}
	})
	return found
}

func messages(diags *diagnostic.Collector) []string {
	var out []string
	for _, d := range diags.Diagnostics() {
		out = append(out, d.Message)
	}
	return out
}

func assertDepths(t *testing.T, bindings Bindings, exprs []ast.Expr, want ...interface{}) {
	t.Helper()
	require.Len(t, exprs, len(want))
	for i, w := range want {
		depth, ok := bindings.Distance(exprs[i])
		if w == nil {
			assert.False(t, ok, "reference %d should be global", i)
			continue
		}
		if assert.True(t, ok, "reference %d should be resolved", i) {
			assert.Equal(t, w, depth, "reference %d", i)
		}
	}
}

func TestDistanceMatchesNesting(t *testing.T) {
	program := parse(t, `
{
  var a = 1;
  print a;
  {
    print a;
    {
      print a;
    }
  }
}`)
	bindings, diags := Resolve(program)
	assert.False(t, diags.HasErrors())
	assertDepths(t, bindings, refs(program, "a"), 0, 1, 2)
}

func TestGlobalsAreNotRecorded(t *testing.T) {
	program := parse(t, `
var g = 1;
var g = 2;
print g;
{ print g; g = 3; }`)
	bindings, diags := Resolve(program)
	assert.False(t, diags.HasErrors(), "redeclaring a global is allowed")
	assertDepths(t, bindings, refs(program, "g"), nil, nil, nil)
	assert.Equal(t, 0, bindings.Len())
}

func TestShadowing(t *testing.T) {
	program := parse(t, `
{
  var a = 1;
  {
    var a = 2;
    print a;
  }
  print a;
}`)
	bindings, diags := Resolve(program)
	assert.False(t, diags.HasErrors())
	assertDepths(t, bindings, refs(program, "a"), 0, 0)
}

func TestOwnInitializer(t *testing.T) {
	program := parse(t, `{ var a = 1; { var a = a; } }`)
	bindings, diags := Resolve(program)
	require.Equal(t, []string{MsgOwnInitializer}, messages(diags))
	d := diags.Diagnostics()[0]
	assert.Equal(t, "a", d.Where)
	assert.Equal(t, 1, d.Span.StartLine)
	assert.Equal(t, 24, d.Span.StartColumn)

	// The read still binds to the innermost declaration.
	assertDepths(t, bindings, refs(program, "a"), 0)
}

func TestOwnInitializerAtTopLevelIsGlobal(t *testing.T) {
	_, diags := Resolve(parse(t, `var a = a;`))
	assert.False(t, diags.HasErrors())
}

func TestDuplicateDeclaration(t *testing.T) {
	program := parse(t, `
{
  var a = 1;
  var a = 2;
  fun a() {}
}
fun f(x, x) {}`)
	_, diags := Resolve(program)
	assert.Equal(t, []string{
		MsgDuplicateDeclaration,
		MsgDuplicateDeclaration,
		MsgDuplicateDeclaration,
	}, messages(diags))
	assert.Equal(t, 4, diags.Diagnostics()[0].Span.StartLine)
	assert.Equal(t, 5, diags.Diagnostics()[1].Span.StartLine)
	assert.Equal(t, 7, diags.Diagnostics()[2].Span.StartLine)
}

func TestClosureBindsAtDefinition(t *testing.T) {
	program := parse(t, `
{
  var a = "outer";
  {
    fun f() {
      print a;
    }
    f();
    var a = "inner";
    print a;
  }
}`)
	bindings, diags := Resolve(program)
	assert.False(t, diags.HasErrors())
	// Inside f: function scope, inner block, then the outer block.
	assertDepths(t, bindings, refs(program, "a"), 2, 0)
	assertDepths(t, bindings, refs(program, "f"), 0)
}

func TestRecursionAndParameters(t *testing.T) {
	program := parse(t, `
{
  fun fib(n) {
    if (n < 2) return n;
    return fib(n - 1) + fib(n - 2);
  }
}`)
	bindings, diags := Resolve(program)
	assert.False(t, diags.HasErrors())
	assertDepths(t, bindings, refs(program, "fib"), 1, 1)
	assertDepths(t, bindings, refs(program, "n"), 0, 0, 0, 0)
}

func TestAssignmentResolvesTarget(t *testing.T) {
	program := parse(t, `
{
  var a;
  {
    a = a;
  }
}`)
	bindings, diags := Resolve(program)
	assert.False(t, diags.HasErrors())
	exprs := refs(program, "a")
	require.Len(t, exprs, 2)
	// The value is resolved before the target, so the variable comes first.
	assert.IsType(t, &ast.Variable{}, exprs[0])
	assertDepths(t, bindings, exprs, 1, 1)
}

func TestReturn(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"inside function", `fun f() { return 1; }`, nil},
		{"top level value", `return 1;`, []string{MsgTopLevelReturn}},
		{"top level bare", `return;`, []string{MsgTopLevelReturn}},
		{"nested block", `{ { return; } }`, []string{MsgTopLevelReturn}},
		{"method", `class A { m() { return 1; } }`, nil},
		{"initializer bare", `class A { init() { return; } }`, nil},
		{"initializer value", `class A { init() { return 1; } }`, []string{MsgInitializerReturn}},
		{"function inside initializer", `class A { init() { fun g() { return 1; } } }`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := Resolve(parse(t, tt.src))
			assert.Equal(t, tt.want, messages(diags))
		})
	}
}

func TestInvalidReturnStillResolvesValue(t *testing.T) {
	program := parse(t, `{ var a = 1; return a; }`)
	bindings, diags := Resolve(program)
	assert.Equal(t, []string{MsgTopLevelReturn}, messages(diags))
	assertDepths(t, bindings, refs(program, "a"), 0)
}

func TestThis(t *testing.T) {
	program := parse(t, `
class A {
  method() {
    return this;
  }
  nested() {
    fun inner() { return this; }
  }
}`)
	bindings, diags := Resolve(program)
	assert.False(t, diags.HasErrors())
	// method scope then the scope binding this; inner adds one more function scope.
	assertDepths(t, bindings, refs(program, thisName), 1, 2)
}

func TestThisOutsideClass(t *testing.T) {
	program := parse(t, `print this; fun f() { return this; }`)
	bindings, diags := Resolve(program)
	assert.Equal(t, []string{MsgThisOutsideClass, MsgThisOutsideClass}, messages(diags))
	assertDepths(t, bindings, refs(program, thisName), nil, nil)
}

func TestSuper(t *testing.T) {
	program := parse(t, `
class A { method() {} }
class B < A {
  method() {
    return super.method();
  }
}`)
	bindings, diags := Resolve(program)
	assert.False(t, diags.HasErrors())
	assertDepths(t, bindings, refs(program, superName), 2)
	assertDepths(t, bindings, refs(program, "A"), nil)
}

func TestSuperWithLocalSuperclass(t *testing.T) {
	program := parse(t, `
{
  class A {}
  class B < A {
    m() {
      return super.m();
    }
  }
}`)
	bindings, diags := Resolve(program)
	assert.False(t, diags.HasErrors())
	assertDepths(t, bindings, refs(program, "A"), 0)
	assertDepths(t, bindings, refs(program, superName), 2)
}

func TestSuperMisuse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"no superclass", `class A { method() { return super.method(); } }`, []string{MsgSuperNoSuperclass}},
		{"outside class", `super.method();`, []string{MsgSuperOutsideClass}},
		{"function outside class", `fun f() { super.g(); }`, []string{MsgSuperOutsideClass}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := Resolve(parse(t, tt.src))
			assert.Equal(t, tt.want, messages(diags))
		})
	}
}

func TestClassContextRestoredAfterNestedClass(t *testing.T) {
	program := parse(t, `
class A < B {
  m() {
    class C { n() {} }
    return super.m();
  }
}
print this;`)
	_, diags := Resolve(program)
	assert.Equal(t, []string{MsgThisOutsideClass}, messages(diags))
}

func TestInheritFromSelf(t *testing.T) {
	for _, src := range []string{`class A < A {}`, `{ class A < A {} }`} {
		program := parse(t, src)
		_, diags := Resolve(program)
		require.Equal(t, []string{MsgInheritFromSelf}, messages(diags), src)
		assert.Equal(t, "A", diags.Diagnostics()[0].Where)
	}
}

func TestPropertyNamesAreNotResolved(t *testing.T) {
	program := parse(t, `
{
  var x = 1;
  var obj;
  obj.x = x;
  print obj.x;
}`)
	bindings, diags := Resolve(program)
	assert.False(t, diags.HasErrors())
	assertDepths(t, bindings, refs(program, "x"), 0)
	assertDepths(t, bindings, refs(program, "obj"), 0, 0)
	assert.Equal(t, 3, bindings.Len())
}

func TestStructuralExpressions(t *testing.T) {
	program := parse(t, `
{
  var a = 1;
  var f;
  print -(a + a) * a or !a and f(a, (a));
  while (a) a = a - 1;
  if (a) print a; else print a;
}`)
	bindings, diags := Resolve(program)
	assert.False(t, diags.HasErrors())
	exprs := refs(program, "a")
	require.Len(t, exprs, 12)
	for i, expr := range exprs {
		depth, ok := bindings.Distance(expr)
		if assert.True(t, ok, "reference %d", i) {
			// The loop and branch bodies are single statements, not blocks.
			assert.Equal(t, 0, depth, "reference %d", i)
		}
	}
}

func TestErrorsDoNotStopTheWalk(t *testing.T) {
	program := parse(t, `
return 1;
{ var a = a; }
class A < A { init() { return this; } }
{ var b = 1; print b; }`)
	bindings, diags := Resolve(program)
	assert.Equal(t, []string{
		MsgTopLevelReturn,
		MsgOwnInitializer,
		MsgInheritFromSelf,
		MsgInitializerReturn,
	}, messages(diags))
	// Scopes were popped on every path, so the last block still resolves at depth 0.
	assertDepths(t, bindings, refs(program, "b"), 0)
}

type recordingLocals struct {
	calls int
	Bindings
}

func (r *recordingLocals) Resolve(expr ast.Expr, depth int) {
	r.calls++
	r.Bindings.Resolve(expr, depth)
}

func TestEachReferenceRecordedOnce(t *testing.T) {
	program := parse(t, `{ var a = 1; { print a; a = 2; } }`)
	locals := &recordingLocals{Bindings: NewBindings()}
	NewResolver(locals, diagnostic.NewCollector()).Resolve(program)
	assert.Equal(t, 2, locals.calls)
	assert.Equal(t, 2, locals.Len())
}

func TestResolveIsDeterministic(t *testing.T) {
	program := parse(t, `
{
  var a = a;
  class B < B {
    init() { return super.init(); }
    m() { fun g() { return this; } return g; }
  }
  var a;
}
return;`)
	first, firstDiags := Resolve(program)
	second, secondDiags := Resolve(program)
	assert.Equal(t, first, second)
	assert.Equal(t, firstDiags.Diagnostics(), secondDiags.Diagnostics())

	// Reusing one resolver gives the same answers.
	bindings := NewBindings()
	diags := diagnostic.NewCollector()
	r := NewResolver(bindings, diags)
	r.Resolve(program)
	assert.Equal(t, first, bindings)
	assert.Empty(t, r.scopes)
}

func TestAnnotate(t *testing.T) {
	program := parse(t, `var g; { var a = g; a = 1; }`)
	bindings, _ := Resolve(program)
	tree := ast.ToNode(program, bindings.Annotate)

	block := tree.Children[1]
	decl := block.Children[0]
	assert.Equal(t, common.ValueGlobal, decl.Children[0].Options[common.OptionScope])
	assign := block.Children[1].Children[0]
	assert.Equal(t, "0", assign.Options[common.OptionDepth])
	literal := assign.Children[0]
	assert.NotContains(t, literal.Options, common.OptionScope)
}
