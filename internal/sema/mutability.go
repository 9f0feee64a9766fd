package sema

import (
	"wrought/internal/ast"
	"wrought/internal/symbols"
)

// failIfImmutable implements §4.2.3's fail_if_immutable: given an
// lvalue expression, it returns the name of the variable that needs a
// lock or a `mut` declaration in order for the assignment to be legal,
// or "" when the target is already writable. A `shared`-typed target
// is writable exactly when the current lockStack holds a non-read lock
// on the same name.
func (c *Checker) failIfImmutable(expr ast.ExprID) string {
	node := c.AST.Exprs.Get(expr)
	if node == nil {
		return ""
	}
	switch node.Kind {
	case ast.ExprIdent:
		data, ok := c.AST.Exprs.Ident(expr)
		if !ok {
			return ""
		}
		name := c.str(data.Name)
		sym := c.Symbols.Lookup(c.currentScope(), name)
		s := c.Symbols.Symbols.Get(sym)
		if s == nil {
			return ""
		}
		if s.Kind == symbols.KindConst {
			return name
		}
		if s.Flags.Has(symbols.FlagShared) {
			if c.heldWriteLock(name) {
				return ""
			}
			return name
		}
		if !s.Flags.Has(symbols.FlagMut) {
			return name
		}
		return ""
	case ast.ExprSelector:
		data, ok := c.AST.Exprs.Selector(expr)
		if !ok {
			return ""
		}
		return c.failIfImmutable(data.Target)
	case ast.ExprIndex:
		data, ok := c.AST.Exprs.Index(expr)
		if !ok {
			return ""
		}
		return c.failIfImmutable(data.Target)
	case ast.ExprPrefix:
		data, ok := c.AST.Exprs.Unary(expr)
		if !ok || data.Op != ast.OpDeref {
			return ""
		}
		return c.failIfImmutable(data.Operand)
	default:
		return ""
	}
}

// markWritten records that expr's underlying local was just the target
// of a legal plain `=` assignment, the signal UnusedLocals needs to
// distinguish "mut but only ever read" from "mut and actually
// reassigned" — failIfImmutable only answers whether the write is
// legal, not whether it happened.
func (c *Checker) markWritten(expr ast.ExprID) {
	node := c.AST.Exprs.Get(expr)
	if node == nil {
		return
	}
	switch node.Kind {
	case ast.ExprIdent:
		data, ok := c.AST.Exprs.Ident(expr)
		if !ok {
			return
		}
		sym := c.Symbols.Lookup(c.currentScope(), c.str(data.Name))
		c.Symbols.MarkWritten(sym)
	case ast.ExprSelector:
		if data, ok := c.AST.Exprs.Selector(expr); ok {
			c.markWritten(data.Target)
		}
	case ast.ExprIndex:
		if data, ok := c.AST.Exprs.Index(expr); ok {
			c.markWritten(data.Target)
		}
	case ast.ExprPrefix:
		if data, ok := c.AST.Exprs.Unary(expr); ok && data.Op == ast.OpDeref {
			c.markWritten(data.Operand)
		}
	}
}

// heldWriteLock reports whether name is covered by a non-read lock
// frame currently open on the checker's lockStack.
func (c *Checker) heldWriteLock(name string) bool {
	for _, frame := range c.lockStack {
		if isRLock, ok := frame.names[name]; ok && !isRLock {
			return true
		}
	}
	return false
}
