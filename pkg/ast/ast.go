// Package ast defines the typed Lox syntax tree consumed by the resolver.
//
// Stmt and Expr are closed sets: the marker methods are unexported, so every
// variant is declared in this package and consumers dispatch with a type switch.
package ast

import "github.com/spicery/lox-resolver/pkg/common"

// Node is implemented by every statement and expression.
type Node interface {
	Span() common.Span
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

// Program is a parsed source file.
type Program []Stmt
