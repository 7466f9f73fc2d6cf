// Package resolver binds every local variable reference in a Lox program to the
// scope that declares it.
//
// The pass walks the tree once, keeping a stack of block, function and class
// scopes. Each reference that names a local is reported to Locals with its
// distance from the innermost scope; references with no entry are globals.
// Static errors go to a diagnostic.Sink and the walk carries on, so one run
// reports every error it can find.
package resolver

import (
	"fmt"

	"github.com/spicery/lox-resolver/pkg/ast"
	"github.com/spicery/lox-resolver/pkg/common"
	"github.com/spicery/lox-resolver/pkg/diagnostic"
)

const (
	thisName  = "this"
	superName = "super"
	initName  = "init"
)

// Diagnostic messages reported by the resolver.
const (
	MsgDuplicateDeclaration = "Already a variable with this name in this scope."
	MsgOwnInitializer       = "Can't read local variable in its own initializer."
	MsgTopLevelReturn       = "Can't return from top-level code."
	MsgInitializerReturn    = "Can't return a value from an initializer."
	MsgThisOutsideClass     = "Can't use 'this' outside of a class."
	MsgSuperOutsideClass    = "Can't use 'super' outside of a class."
	MsgSuperNoSuperclass    = "Can't use 'super' in a class with no superclass."
	MsgInheritFromSelf      = "A class can't inherit from itself."
)

// Resolver performs scope resolution on a Lox program.
type Resolver struct {
	scopes scopeStack
	locals Locals
	sink   diagnostic.Sink
}

func NewResolver(locals Locals, sink diagnostic.Sink) *Resolver {
	return &Resolver{
		locals: locals,
		sink:   sink,
	}
}

// Resolve resolves a whole program. Results are delivered to the Locals and
// the Sink given to NewResolver.
func (r *Resolver) Resolve(program ast.Program) {
	r.scopes = nil
	r.resolveStmts(program, frame{})
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt, f frame) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt, f)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt, f frame) {
	switch s := stmt.(type) {
	case *ast.Block:
		defer r.beginScope()()
		r.resolveStmts(s.Statements, f)
	case *ast.Var:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer, f)
		}
		r.define(s.Name)
	case *ast.Function:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, f.inFunction(PlainFunction))
	case *ast.Class:
		r.resolveClass(s, f)
	case *ast.If:
		r.resolveExpr(s.Condition, f)
		r.resolveStmt(s.ThenBranch, f)
		if s.ElseBranch != nil {
			r.resolveStmt(s.ElseBranch, f)
		}
	case *ast.While:
		r.resolveExpr(s.Condition, f)
		r.resolveStmt(s.Body, f)
	case *ast.Print:
		r.resolveExpr(s.Expression, f)
	case *ast.Expression:
		r.resolveExpr(s.Expression, f)
	case *ast.Return:
		if f.function == NoFunction {
			r.errorAt(s.Keyword, MsgTopLevelReturn)
		}
		if s.Value != nil {
			if f.function == Initializer {
				r.errorAt(s.Keyword, MsgInitializerReturn)
			}
			r.resolveExpr(s.Value, f)
		}
	default:
		panic(fmt.Sprintf("resolver: unexpected statement type %T", stmt))
	}
}

func (r *Resolver) resolveExpr(expr ast.Expr, f frame) {
	switch e := expr.(type) {
	case *ast.Assign:
		r.resolveExpr(e.Value, f)
		r.resolveLocal(e, e.Name.Text)
	case *ast.Binary:
		r.resolveExpr(e.Left, f)
		r.resolveExpr(e.Right, f)
	case *ast.Call:
		r.resolveExpr(e.Callee, f)
		for _, arg := range e.Arguments {
			r.resolveExpr(arg, f)
		}
	case *ast.Grouping:
		r.resolveExpr(e.Expression, f)
	case *ast.Literal:
	case *ast.Logical:
		r.resolveExpr(e.Left, f)
		r.resolveExpr(e.Right, f)
	case *ast.Unary:
		r.resolveExpr(e.Right, f)
	case *ast.Variable:
		if !r.scopes.isEmpty() {
			if ready, declared := r.scopes.peek()[e.Name.Text]; declared && !ready {
				r.errorAt(e.Name, MsgOwnInitializer)
			}
		}
		r.resolveLocal(e, e.Name.Text)
	case *ast.Get:
		r.resolveExpr(e.Object, f)
	case *ast.Set:
		r.resolveExpr(e.Value, f)
		r.resolveExpr(e.Object, f)
	case *ast.This:
		if f.class == NoClass {
			r.errorAt(e.Keyword, MsgThisOutsideClass)
		}
		r.resolveLocal(e, thisName)
	case *ast.Super:
		if f.class == NoClass {
			r.errorAt(e.Keyword, MsgSuperOutsideClass)
		} else if f.class != Subclass {
			r.errorAt(e.Keyword, MsgSuperNoSuperclass)
		}
		r.resolveLocal(e, superName)
	default:
		panic(fmt.Sprintf("resolver: unexpected expression type %T", expr))
	}
}

// resolveFunction resolves a function body in a fresh scope holding only its
// parameters. The name has already been bound in the enclosing scope.
func (r *Resolver) resolveFunction(fn *ast.Function, f frame) {
	defer r.beginScope()()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body, f)
}

func (r *Resolver) resolveClass(class *ast.Class, f frame) {
	r.declare(class.Name)
	r.define(class.Name)

	inner := f.inClass(PlainClass)
	if class.Superclass != nil {
		if class.Superclass.Name.Text == class.Name.Text {
			r.errorAt(class.Superclass.Name, MsgInheritFromSelf)
		}
		inner = f.inClass(Subclass)
		r.resolveExpr(class.Superclass, inner)

		defer r.beginScope()()
		r.scopes.peek()[superName] = true
	}

	defer r.beginScope()()
	r.scopes.peek()[thisName] = true

	for _, method := range class.Methods {
		kind := Method
		if method.Name.Text == initName {
			kind = Initializer
		}
		r.resolveFunction(method, inner.inFunction(kind))
	}
}

// beginScope pushes a scope and returns the matching pop.
func (r *Resolver) beginScope() func() {
	r.scopes.push()
	return r.scopes.pop
}

func (r *Resolver) declare(name *common.Token) {
	if r.scopes.isEmpty() {
		return
	}
	scope := r.scopes.peek()
	if _, found := scope[name.Text]; found {
		r.errorAt(name, MsgDuplicateDeclaration)
	}
	scope[name.Text] = false
}

func (r *Resolver) define(name *common.Token) {
	if r.scopes.isEmpty() {
		return
	}
	r.scopes.peek()[name.Text] = true
}

func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	if depth, found := r.scopes.distance(name); found {
		r.locals.Resolve(expr, depth)
	}
}

func (r *Resolver) errorAt(token *common.Token, message string) {
	r.sink.Report(diagnostic.Diagnostic{Span: token.Span, Where: token.Text, Message: message})
}

// Resolve runs a fresh resolver over program and returns its results.
func Resolve(program ast.Program) (Bindings, *diagnostic.Collector) {
	bindings := NewBindings()
	diags := diagnostic.NewCollector()
	NewResolver(bindings, diags).Resolve(program)
	return bindings, diags
}
