package resolver

// FunctionType is the kind of function body being resolved.
type FunctionType int

const (
	NoFunction FunctionType = iota
	PlainFunction
	Initializer
	Method
)

// ClassType is the kind of class body being resolved.
type ClassType int

const (
	NoClass ClassType = iota
	PlainClass
	Subclass
)

// frame is the enclosing function and class context. It is passed by value
// down the recursion, so leaving a body restores the outer context.
type frame struct {
	function FunctionType
	class    ClassType
}

func (f frame) inFunction(kind FunctionType) frame {
	f.function = kind
	return f
}

func (f frame) inClass(kind ClassType) frame {
	f.class = kind
	return f
}
