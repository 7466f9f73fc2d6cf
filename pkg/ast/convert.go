package ast

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/spicery/lox-resolver/pkg/common"
)

// FromNode converts an interchange tree rooted at a program node into a typed program.
func FromNode(root *common.Node) (Program, error) {
	if root == nil {
		return nil, errors.New("invalid node: nil")
	}
	if root.Name != common.NameProgram {
		return nil, nodeError(root, "expected program node, got %s", root.Name)
	}
	return stmtsFromNodes(root.Children)
}

func stmtsFromNodes(nodes []*common.Node) ([]Stmt, error) {
	stmts := make([]Stmt, 0, len(nodes))
	for _, child := range nodes {
		stmt, err := StmtFromNode(child)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// StmtFromNode converts a single statement node.
func StmtFromNode(node *common.Node) (Stmt, error) {
	if node == nil {
		return nil, errors.New("invalid node: nil")
	}
	switch node.Name {
	case common.NameBlock:
		body, err := stmtsFromNodes(node.Children)
		if err != nil {
			return nil, errors.Wrap(err, "in block")
		}
		return &Block{Statements: body, Where: node.Span}, nil
	case common.NameVar:
		name, err := nameToken(node)
		if err != nil {
			return nil, err
		}
		stmt := &Var{Name: name}
		if len(node.Children) > 1 {
			return nil, nodeError(node, "var node takes at most one child")
		}
		if len(node.Children) == 1 {
			if stmt.Initializer, err = ExprFromNode(node.Children[0]); err != nil {
				return nil, errors.Wrapf(err, "in initializer of %s", name.Text)
			}
		}
		return stmt, nil
	case common.NameFun:
		return functionFromNode(node)
	case common.NameClass:
		return classFromNode(node)
	case common.NameIf:
		if len(node.Children) != 2 && len(node.Children) != 3 {
			return nil, nodeError(node, "if node must have two or three children")
		}
		cond, err := ExprFromNode(node.Children[0])
		if err != nil {
			return nil, err
		}
		then, err := StmtFromNode(node.Children[1])
		if err != nil {
			return nil, err
		}
		stmt := &If{Keyword: keywordToken(node, common.IfTokenType), Condition: cond, ThenBranch: then}
		if len(node.Children) == 3 {
			if stmt.ElseBranch, err = StmtFromNode(node.Children[2]); err != nil {
				return nil, err
			}
		}
		return stmt, nil
	case common.NameWhile:
		if err := arity(node, 2); err != nil {
			return nil, err
		}
		cond, err := ExprFromNode(node.Children[0])
		if err != nil {
			return nil, err
		}
		body, err := StmtFromNode(node.Children[1])
		if err != nil {
			return nil, err
		}
		return &While{Keyword: keywordToken(node, common.WhileTokenType), Condition: cond, Body: body}, nil
	case common.NamePrint:
		if err := arity(node, 1); err != nil {
			return nil, err
		}
		e, err := ExprFromNode(node.Children[0])
		if err != nil {
			return nil, err
		}
		return &Print{Keyword: keywordToken(node, common.PrintTokenType), Expression: e}, nil
	case common.NameExpression:
		if err := arity(node, 1); err != nil {
			return nil, err
		}
		e, err := ExprFromNode(node.Children[0])
		if err != nil {
			return nil, err
		}
		return &Expression{Expression: e}, nil
	case common.NameReturn:
		stmt := &Return{Keyword: keywordToken(node, common.ReturnTokenType)}
		switch len(node.Children) {
		case 0:
		case 1:
			value, err := ExprFromNode(node.Children[0])
			if err != nil {
				return nil, err
			}
			stmt.Value = value
		default:
			return nil, nodeError(node, "return node takes at most one child")
		}
		return stmt, nil
	default:
		return nil, nodeError(node, "unexpected statement node: %s", node.Name)
	}
}

func functionFromNode(node *common.Node) (*Function, error) {
	if node.Name != common.NameFun {
		return nil, nodeError(node, "expected fun node, got %s", node.Name)
	}
	name, err := nameToken(node)
	if err != nil {
		return nil, err
	}
	if len(node.Children) == 0 || node.Children[0] == nil || node.Children[0].Name != common.NameParameters {
		return nil, nodeError(node, "fun node must start with a parameters node")
	}
	fn := &Function{Name: name}
	for _, p := range node.Children[0].Children {
		if p == nil {
			return nil, nodeError(node.Children[0], "invalid parameter node: nil")
		}
		if p.Name != common.NameParameter {
			return nil, nodeError(p, "expected parameter node, got %s", p.Name)
		}
		param, err := nameToken(p)
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, param)
	}
	if fn.Body, err = stmtsFromNodes(node.Children[1:]); err != nil {
		return nil, errors.Wrapf(err, "in function %s", name.Text)
	}
	return fn, nil
}

func classFromNode(node *common.Node) (*Class, error) {
	name, err := nameToken(node)
	if err != nil {
		return nil, err
	}
	class := &Class{Name: name}
	for i, child := range node.Children {
		switch {
		case child == nil:
			return nil, nodeError(node, "invalid node in class body: nil")
		case i == 0 && child.Name == common.NameVariable:
			superName, err := nameToken(child)
			if err != nil {
				return nil, err
			}
			class.Superclass = &Variable{Name: superName}
		case child.Name == common.NameFun:
			method, err := functionFromNode(child)
			if err != nil {
				return nil, errors.Wrapf(err, "in class %s", name.Text)
			}
			class.Methods = append(class.Methods, method)
		default:
			return nil, nodeError(child, "unexpected node in class body: %s", child.Name)
		}
	}
	return class, nil
}

// ExprFromNode converts a single expression node.
func ExprFromNode(node *common.Node) (Expr, error) {
	if node == nil {
		return nil, errors.New("invalid node: nil")
	}
	switch node.Name {
	case common.NameAssign:
		name, err := nameToken(node)
		if err != nil {
			return nil, err
		}
		if err := arity(node, 1); err != nil {
			return nil, err
		}
		value, err := ExprFromNode(node.Children[0])
		if err != nil {
			return nil, err
		}
		return &Assign{Name: name, Value: value}, nil
	case common.NameBinary, common.NameLogical:
		op, err := operatorToken(node)
		if err != nil {
			return nil, err
		}
		if err := arity(node, 2); err != nil {
			return nil, err
		}
		left, err := ExprFromNode(node.Children[0])
		if err != nil {
			return nil, err
		}
		right, err := ExprFromNode(node.Children[1])
		if err != nil {
			return nil, err
		}
		if node.Name == common.NameLogical {
			return &Logical{Left: left, Operator: op, Right: right}, nil
		}
		return &Binary{Left: left, Operator: op, Right: right}, nil
	case common.NameUnary:
		op, err := operatorToken(node)
		if err != nil {
			return nil, err
		}
		if err := arity(node, 1); err != nil {
			return nil, err
		}
		right, err := ExprFromNode(node.Children[0])
		if err != nil {
			return nil, err
		}
		return &Unary{Operator: op, Right: right}, nil
	case common.NameCall:
		if len(node.Children) == 0 {
			return nil, nodeError(node, "call node must have a callee")
		}
		callee, err := ExprFromNode(node.Children[0])
		if err != nil {
			return nil, err
		}
		end := node.Span
		end.StartLine, end.StartColumn = end.EndLine, end.EndColumn
		call := &Call{
			Callee: callee,
			Paren:  &common.Token{Type: common.RightParenTokenType, Text: ")", Span: end},
		}
		for _, a := range node.Children[1:] {
			arg, err := ExprFromNode(a)
			if err != nil {
				return nil, err
			}
			call.Arguments = append(call.Arguments, arg)
		}
		return call, nil
	case common.NameGrouping:
		if err := arity(node, 1); err != nil {
			return nil, err
		}
		inner, err := ExprFromNode(node.Children[0])
		if err != nil {
			return nil, err
		}
		return &Grouping{Expression: inner, Where: node.Span}, nil
	case common.NameLiteral:
		return literalFromNode(node)
	case common.NameVariable:
		name, err := nameToken(node)
		if err != nil {
			return nil, err
		}
		return &Variable{Name: name}, nil
	case common.NameGet:
		name, err := nameToken(node)
		if err != nil {
			return nil, err
		}
		if err := arity(node, 1); err != nil {
			return nil, err
		}
		object, err := ExprFromNode(node.Children[0])
		if err != nil {
			return nil, err
		}
		return &Get{Object: object, Name: name}, nil
	case common.NameSet:
		name, err := nameToken(node)
		if err != nil {
			return nil, err
		}
		if err := arity(node, 2); err != nil {
			return nil, err
		}
		object, err := ExprFromNode(node.Children[0])
		if err != nil {
			return nil, err
		}
		value, err := ExprFromNode(node.Children[1])
		if err != nil {
			return nil, err
		}
		return &Set{Object: object, Name: name, Value: value}, nil
	case common.NameThis:
		return &This{Keyword: keywordToken(node, common.ThisTokenType)}, nil
	case common.NameSuper:
		method, ok := node.Options[common.OptionMethod]
		if !ok {
			return nil, nodeError(node, "super node missing method option")
		}
		return &Super{
			Keyword: keywordToken(node, common.SuperTokenType),
			Method:  &common.Token{Type: common.IdentifierTokenType, Text: method, Span: node.Span},
		}, nil
	default:
		return nil, nodeError(node, "unexpected expression node: %s", node.Name)
	}
}

func literalFromNode(node *common.Node) (*Literal, error) {
	kind := LiteralKind(node.Options[common.OptionKind])
	lit := &Literal{Kind: kind, Where: node.Span}
	switch kind {
	case NumberLiteral:
		value := node.Options[common.OptionValue]
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return nil, nodeError(node, "invalid number literal: %q", value)
		}
		lit.Value = value
	case StringLiteral:
		lit.Value = node.Options[common.OptionValue]
	case TrueLiteral, FalseLiteral, NilLiteral:
	default:
		return nil, nodeError(node, "unexpected literal kind: %q", string(kind))
	}
	return lit, nil
}

func nameToken(node *common.Node) (*common.Token, error) {
	name, ok := node.Options[common.OptionName]
	if !ok || name == "" {
		return nil, nodeError(node, "%s node missing name option", node.Name)
	}
	return &common.Token{Type: common.IdentifierTokenType, Text: name, Span: node.Span}, nil
}

func operatorToken(node *common.Node) (*common.Token, error) {
	op, ok := node.Options[common.OptionOperator]
	if !ok || op == "" {
		return nil, nodeError(node, "%s node missing operator option", node.Name)
	}
	tokenType := common.TokenType(op)
	if kw, isKeyword := common.Keywords[op]; isKeyword {
		tokenType = kw
	}
	return &common.Token{Type: tokenType, Text: op, Span: node.Span}, nil
}

func keywordToken(node *common.Node, tokenType common.TokenType) *common.Token {
	return &common.Token{Type: tokenType, Text: string(tokenType), Span: node.Span}
}

func arity(node *common.Node, n int) error {
	if len(node.Children) != n {
		return nodeError(node, "%s node: expected %d children, got %d", node.Name, n, len(node.Children))
	}
	return nil
}

func nodeError(node *common.Node, format string, args ...interface{}) error {
	args = append(args, node.Span.StartLine, node.Span.StartColumn)
	return errors.Errorf(format+", at line %d, column %d", args...)
}
