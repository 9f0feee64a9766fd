package ast

import "wrought/internal/source"

// Hints pre-sizes each arena so a parser building a large file doesn't
// pay for repeated slice growth.
type Hints struct{ Files, Stmts, Exprs, Types uint }

// Builder aggregates every AST arena the checker walks. One Builder is
// shared across all files in a compilation.
type Builder struct {
	Files *Files
	Stmts *Stmts
	Exprs *Exprs
	Types *TypeSyn
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 6
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Types == 0 {
		hints.Types = 1 << 7
	}
	return &Builder{
		Files: NewFiles(hints.Files),
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
		Types: NewTypeSyn(hints.Types),
	}
}

func (b *Builder) NewFile(path string, sp source.Span) FileID {
	return b.Files.New(path, sp)
}

func (b *Builder) PushImport(file FileID, stmt StmtID) {
	f := b.Files.Get(file)
	if f == nil {
		return
	}
	f.Imports = append(f.Imports, stmt)
}

func (b *Builder) PushStmt(file FileID, stmt StmtID) {
	f := b.Files.Get(file)
	if f == nil {
		return
	}
	f.Stmts = append(f.Stmts, stmt)
}
