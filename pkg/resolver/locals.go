package resolver

import (
	"strconv"

	"github.com/spicery/lox-resolver/pkg/ast"
	"github.com/spicery/lox-resolver/pkg/common"
)

// Locals receives the scope distance of every resolved reference. It is
// implemented by the evaluator.
type Locals interface {
	Resolve(expr ast.Expr, depth int)
}

// Bindings is a Locals backed by a map keyed on expression identity.
// Expressions without an entry refer to globals.
type Bindings map[ast.Expr]int

func NewBindings() Bindings {
	return Bindings{}
}

func (b Bindings) Resolve(expr ast.Expr, depth int) {
	b[expr] = depth
}

func (b Bindings) Distance(expr ast.Expr) (int, bool) {
	depth, ok := b[expr]
	return depth, ok
}

func (b Bindings) Len() int {
	return len(b)
}

// Annotate is an ast.Annotator that records the distance of resolved
// expressions and marks unresolved variable references as global.
func (b Bindings) Annotate(expr ast.Expr, node *common.Node) {
	if depth, ok := b[expr]; ok {
		node.Options[common.OptionDepth] = strconv.Itoa(depth)
		return
	}
	switch expr.(type) {
	case *ast.Variable, *ast.Assign:
		node.Options[common.OptionScope] = common.ValueGlobal
	}
}
