package translator

import "fmt"

// TranslationContext carries the mutable walk state: lexical scopes for
// let-vs-assign decisions, the enclosing function stack for parameter name
// mapping, active loop variables for index normalization, and the set of
// helper polyfills the emitted code needs.
type TranslationContext struct {
	scopeStack []map[string]bool
	funcStack  []string
	loopStack  []string

	helpersNeeded map[string]bool
	tmpCounter    int
}

func NewTranslationContext() *TranslationContext {
	return &TranslationContext{
		scopeStack:    []map[string]bool{{}},
		helpersNeeded: map[string]bool{},
	}
}

// IsDeclared checks the whole scope chain.
func (c *TranslationContext) IsDeclared(name string) bool {
	for _, scope := range c.scopeStack {
		if scope[name] {
			return true
		}
	}
	return false
}

// Declare marks name as declared in the innermost scope.
func (c *TranslationContext) Declare(name string) {
	c.scopeStack[len(c.scopeStack)-1][name] = true
}

// PushScope opens a nested scope pre-seeded with the given names.
func (c *TranslationContext) PushScope(names []string) {
	scope := map[string]bool{}
	for _, n := range names {
		scope[n] = true
	}
	c.scopeStack = append(c.scopeStack, scope)
}

func (c *TranslationContext) PopScope() {
	c.scopeStack = c.scopeStack[:len(c.scopeStack)-1]
}

func (c *TranslationContext) PushFunc(name string) {
	c.funcStack = append(c.funcStack, name)
}

func (c *TranslationContext) PopFunc() {
	c.funcStack = c.funcStack[:len(c.funcStack)-1]
}

// CurrentFunc returns the innermost enclosing function name, or "".
func (c *TranslationContext) CurrentFunc() string {
	if len(c.funcStack) == 0 {
		return ""
	}
	return c.funcStack[len(c.funcStack)-1]
}

func (c *TranslationContext) PushLoop(varName string) {
	c.loopStack = append(c.loopStack, varName)
}

func (c *TranslationContext) PopLoop() {
	c.loopStack = c.loopStack[:len(c.loopStack)-1]
}

// InLoop reports whether name is an active loop induction variable.
func (c *TranslationContext) InLoop(name string) bool {
	for _, v := range c.loopStack {
		if v == name {
			return true
		}
	}
	return false
}

// NeedHelper records that the emitted code requires a polyfill.
func (c *TranslationContext) NeedHelper(id string) {
	c.helpersNeeded[id] = true
}

// Gensym returns a fresh temporary name.
func (c *TranslationContext) Gensym() string {
	c.tmpCounter++
	return fmt.Sprintf("__tmp%d", c.tmpCounter)
}
