package checker

import (
	"fmt"
	"io"

	"github.com/spicery/lox-resolver/pkg/common"
)

type Bug struct {
	Message string
	Node    *common.Node
}

type Issue struct {
	Message string
	Node    *common.Node
}

// Checker validates the shape of an interchange tree before it is converted
// into a typed program.
type Checker struct {
	Bugs   []Bug   // Accumulated internal errors (bugs).
	Issues []Issue // Accumulated validation errors.
}

func (c *Checker) ReportErrors(w io.Writer) {
	// First report any bugs and then move onto issues.
	if len(c.Bugs) > 0 {
		fmt.Fprintln(w, "Bug in parser detected; the output of the parser is faulty:")
		for i, bug := range c.Bugs {
			fmt.Fprintf(w, "  [%d]. %s, at line %d, column %d\n", i+1, bug.Message, bug.Node.Span.StartLine, bug.Node.Span.StartColumn)
		}
	}
	if len(c.Issues) > 0 {
		fmt.Fprintln(w, "Errors found in the source code:")
		for i, issue := range c.Issues {
			fmt.Fprintf(w, "  [%d]. %s, at line %d, column %d\n", i+1, issue.Message, issue.Node.Span.StartLine, issue.Node.Span.StartColumn)
		}
	}
}

func NewChecker() *Checker {
	return &Checker{
		Bugs:   []Bug{},
		Issues: []Issue{},
	}
}

// Check validates the given tree and reports whether it is well formed.
func (c *Checker) Check(node *common.Node) bool {
	if node == nil {
		c.addBug("invalid node: nil", &common.Node{})
		return false
	}

	if node.Name != common.NameProgram {
		c.addIssue("expected program node as root", node)
		return false
	}

	c.validateStatements(node.Children)

	return len(c.Issues) == 0 && len(c.Bugs) == 0
}

func (c *Checker) validateStatements(nodes []*common.Node) {
	for _, child := range nodes {
		c.validateStatement(child)
	}
}

func (c *Checker) validateStatement(node *common.Node) {
	if node == nil {
		c.addBug("invalid node: nil", &common.Node{})
		return
	}

	switch node.Name {
	case common.NameBlock:
		c.validateStatements(node.Children)
	case common.NameVar:
		c.needOption(common.OptionName, node)
		if len(node.Children) > 1 {
			c.addBug(fmt.Sprintf("expected at most 1 child, got %d", len(node.Children)), node)
			return
		}
		c.validateExpressions(node.Children)
	case common.NameFun:
		c.validateFun(node)
	case common.NameClass:
		c.validateClass(node)
	case common.NameIf:
		if len(node.Children) != 2 && len(node.Children) != 3 {
			c.addBug(fmt.Sprintf("expected 2 or 3 children, got %d", len(node.Children)), node)
			return
		}
		c.validateExpression(node.Children[0])
		c.validateStatements(node.Children[1:])
	case common.NameWhile:
		if !c.factArity(2, node) {
			return
		}
		c.validateExpression(node.Children[0])
		c.validateStatement(node.Children[1])
	case common.NamePrint, common.NameExpression:
		if !c.factArity(1, node) {
			return
		}
		c.validateExpression(node.Children[0])
	case common.NameReturn:
		if len(node.Children) > 1 {
			c.addBug(fmt.Sprintf("expected at most 1 child, got %d", len(node.Children)), node)
			return
		}
		c.validateExpressions(node.Children)
	default:
		c.addBug(fmt.Sprintf("unexpected statement node: %s", node.Name), node)
	}
}

func (c *Checker) validateFun(node *common.Node) {
	c.needOption(common.OptionName, node)
	if len(node.Children) == 0 || node.Children[0] == nil || node.Children[0].Name != common.NameParameters {
		c.addBug("fun node must start with a parameters node", node)
		return
	}
	params := node.Children[0]
	if len(params.Children) > common.MaxArity {
		c.addIssue(fmt.Sprintf("Can't have more than %d parameters.", common.MaxArity), params)
	}
	for _, p := range params.Children {
		if p == nil {
			c.addBug("invalid node: nil", params)
			continue
		}
		if p.Name != common.NameParameter {
			c.addBug(fmt.Sprintf("unexpected node in parameters: %s", p.Name), p)
			continue
		}
		c.needOption(common.OptionName, p)
	}
	c.validateStatements(node.Children[1:])
}

func (c *Checker) validateClass(node *common.Node) {
	c.needOption(common.OptionName, node)
	for i, child := range node.Children {
		switch {
		case child == nil:
			c.addBug("invalid node: nil", node)
		case i == 0 && child.Name == common.NameVariable:
			c.validateExpression(child)
		case child.Name == common.NameFun:
			c.validateFun(child)
		default:
			c.addBug(fmt.Sprintf("unexpected node in class body: %s", child.Name), child)
		}
	}
}

func (c *Checker) validateExpressions(nodes []*common.Node) {
	for _, child := range nodes {
		c.validateExpression(child)
	}
}

func (c *Checker) validateExpression(node *common.Node) {
	if node == nil {
		c.addBug("invalid node: nil", &common.Node{})
		return
	}

	switch node.Name {
	case common.NameAssign:
		c.needOption(common.OptionName, node)
		if c.factArity(1, node) {
			c.validateExpressions(node.Children)
		}
	case common.NameBinary, common.NameLogical:
		c.needOption(common.OptionOperator, node)
		if c.factArity(2, node) {
			c.validateExpressions(node.Children)
		}
	case common.NameUnary:
		c.needOption(common.OptionOperator, node)
		if c.factArity(1, node) {
			c.validateExpressions(node.Children)
		}
	case common.NameCall:
		if len(node.Children) == 0 {
			c.addBug("call node must have a callee", node)
			return
		}
		if len(node.Children)-1 > common.MaxArity {
			c.addIssue(fmt.Sprintf("Can't have more than %d arguments.", common.MaxArity), node)
		}
		c.validateExpressions(node.Children)
	case common.NameGrouping:
		if c.factArity(1, node) {
			c.validateExpressions(node.Children)
		}
	case common.NameLiteral:
		c.validateLiteral(node)
	case common.NameVariable:
		c.needOption(common.OptionName, node)
		c.factArity(0, node)
	case common.NameGet:
		c.needOption(common.OptionName, node)
		if c.factArity(1, node) {
			c.validateExpressions(node.Children)
		}
	case common.NameSet:
		c.needOption(common.OptionName, node)
		if c.factArity(2, node) {
			c.validateExpressions(node.Children)
		}
	case common.NameThis:
		c.factArity(0, node)
	case common.NameSuper:
		c.needOption(common.OptionMethod, node)
		c.factArity(0, node)
	default:
		c.addBug(fmt.Sprintf("unexpected expression node: %s", node.Name), node)
	}
}

func (c *Checker) validateLiteral(node *common.Node) {
	c.factArity(0, node)
	switch kind := node.Options[common.OptionKind]; kind {
	case common.ValueNumber, common.ValueString:
		c.needOption(common.OptionValue, node)
	case common.ValueTrue, common.ValueFalse, common.ValueNil:
	default:
		c.addBug(fmt.Sprintf("unexpected literal kind: %q", kind), node)
	}
}

func (c *Checker) needOption(key string, node *common.Node) {
	if _, ok := node.Options[key]; !ok {
		c.addBug(fmt.Sprintf("%s node missing %s option", node.Name, key), node)
	}
}

func (c *Checker) factArity(arity int, node *common.Node) bool {
	if len(node.Children) != arity {
		c.addBug(fmt.Sprintf("expected %d children, got %d", arity, len(node.Children)), node)
		return false
	}
	return true
}

// We add a bug if lox-parser is supposed to guarantee the condition
// but it is violated.
func (c *Checker) addBug(message string, node *common.Node) {
	c.Bugs = append(c.Bugs, Bug{Message: message, Node: node})
}

// We add an issue if the user can write code that lox-parser accepts
// but that code is invalid according to our rules.
func (c *Checker) addIssue(message string, node *common.Node) {
	c.Issues = append(c.Issues, Issue{Message: message, Node: node})
}
