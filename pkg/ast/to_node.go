package ast

import "github.com/spicery/lox-resolver/pkg/common"

// Annotator may add options to the interchange node built for an expression.
type Annotator func(expr Expr, node *common.Node)

// ToNode converts a typed program back into an interchange tree. The annotator,
// if not nil, is called once for every expression node.
func ToNode(program Program, annotate Annotator) *common.Node {
	b := &nodeBuilder{annotate: annotate}
	root := common.NewNode(common.NameProgram, common.Span{})
	for _, stmt := range program {
		root.Children = append(root.Children, b.stmt(stmt))
	}
	root.UpdateSpan()
	return root
}

type nodeBuilder struct {
	annotate Annotator
}

func (b *nodeBuilder) stmts(stmts []Stmt) []*common.Node {
	nodes := make([]*common.Node, 0, len(stmts))
	for _, s := range stmts {
		nodes = append(nodes, b.stmt(s))
	}
	return nodes
}

func (b *nodeBuilder) stmt(stmt Stmt) *common.Node {
	switch s := stmt.(type) {
	case *Block:
		return common.NewNode(common.NameBlock, s.Span(), b.stmts(s.Statements)...)
	case *Var:
		n := common.NewNode(common.NameVar, s.Span())
		n.Options[common.OptionName] = s.Name.Text
		if s.Initializer != nil {
			n.Children = append(n.Children, b.expr(s.Initializer))
		}
		return n
	case *Function:
		return b.function(s)
	case *Class:
		n := common.NewNode(common.NameClass, s.Span())
		n.Options[common.OptionName] = s.Name.Text
		if s.Superclass != nil {
			n.Children = append(n.Children, b.expr(s.Superclass))
		}
		for _, m := range s.Methods {
			n.Children = append(n.Children, b.function(m))
		}
		return n
	case *If:
		n := common.NewNode(common.NameIf, s.Span(), b.expr(s.Condition), b.stmt(s.ThenBranch))
		if s.ElseBranch != nil {
			n.Children = append(n.Children, b.stmt(s.ElseBranch))
		}
		return n
	case *While:
		return common.NewNode(common.NameWhile, s.Span(), b.expr(s.Condition), b.stmt(s.Body))
	case *Print:
		return common.NewNode(common.NamePrint, s.Span(), b.expr(s.Expression))
	case *Expression:
		return common.NewNode(common.NameExpression, s.Span(), b.expr(s.Expression))
	case *Return:
		n := common.NewNode(common.NameReturn, s.Span())
		if s.Value != nil {
			n.Children = append(n.Children, b.expr(s.Value))
		}
		return n
	default:
		panic("ast: unexpected statement type")
	}
}

func (b *nodeBuilder) function(fn *Function) *common.Node {
	start := fn.Name.Span.Start()
	params := common.NewNode(common.NameParameters, start.Span(start))
	for _, p := range fn.Params {
		pn := common.NewNode(common.NameParameter, p.Span)
		pn.Options[common.OptionName] = p.Text
		params.Children = append(params.Children, pn)
	}
	params.UpdateSpan()
	n := common.NewNode(common.NameFun, fn.Span(), params)
	n.Options[common.OptionName] = fn.Name.Text
	n.Children = append(n.Children, b.stmts(fn.Body)...)
	return n
}

func (b *nodeBuilder) expr(expr Expr) *common.Node {
	var n *common.Node
	switch e := expr.(type) {
	case *Assign:
		n = common.NewNode(common.NameAssign, e.Span(), b.expr(e.Value))
		n.Options[common.OptionName] = e.Name.Text
	case *Binary:
		n = common.NewNode(common.NameBinary, e.Span(), b.expr(e.Left), b.expr(e.Right))
		n.Options[common.OptionOperator] = e.Operator.Text
	case *Logical:
		n = common.NewNode(common.NameLogical, e.Span(), b.expr(e.Left), b.expr(e.Right))
		n.Options[common.OptionOperator] = e.Operator.Text
	case *Unary:
		n = common.NewNode(common.NameUnary, e.Span(), b.expr(e.Right))
		n.Options[common.OptionOperator] = e.Operator.Text
	case *Call:
		n = common.NewNode(common.NameCall, e.Span(), b.expr(e.Callee))
		for _, a := range e.Arguments {
			n.Children = append(n.Children, b.expr(a))
		}
	case *Grouping:
		n = common.NewNode(common.NameGrouping, e.Span(), b.expr(e.Expression))
	case *Literal:
		n = common.NewNode(common.NameLiteral, e.Span())
		n.Options[common.OptionKind] = string(e.Kind)
		if e.Kind == NumberLiteral || e.Kind == StringLiteral {
			n.Options[common.OptionValue] = e.Value
		}
	case *Variable:
		n = common.NewNode(common.NameVariable, e.Span())
		n.Options[common.OptionName] = e.Name.Text
	case *Get:
		n = common.NewNode(common.NameGet, e.Span(), b.expr(e.Object))
		n.Options[common.OptionName] = e.Name.Text
	case *Set:
		n = common.NewNode(common.NameSet, e.Span(), b.expr(e.Object), b.expr(e.Value))
		n.Options[common.OptionName] = e.Name.Text
	case *This:
		n = common.NewNode(common.NameThis, e.Span())
	case *Super:
		n = common.NewNode(common.NameSuper, e.Span())
		n.Options[common.OptionMethod] = e.Method.Text
	default:
		panic("ast: unexpected expression type")
	}
	if b.annotate != nil {
		b.annotate(expr, n)
	}
	return n
}
