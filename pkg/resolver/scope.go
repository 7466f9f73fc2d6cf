package resolver

// Scope maps each name declared in one lexical region to whether it is ready
// for use: false once declared, true once defined.
type Scope map[string]bool

// scopeStack is the stack of local scopes, innermost last. The global scope is
// never pushed.
type scopeStack []Scope

func (s *scopeStack) push() {
	*s = append(*s, Scope{})
}

func (s *scopeStack) pop() {
	*s = (*s)[:len(*s)-1]
}

func (s scopeStack) isEmpty() bool {
	return len(s) == 0
}

func (s scopeStack) peek() Scope {
	return s[len(s)-1]
}

// distance returns how many scopes lie between the innermost scope and the
// one declaring name.
func (s scopeStack) distance(name string) (int, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if _, found := s[i][name]; found {
			return len(s) - 1 - i, true
		}
	}
	return 0, false
}
