package ast

import "wrought/internal/source"

// File is a single parsed source file: a module declaration, its
// imports, and the sequence of top-level statements (fn/struct/
// interface/enum/type/const/global declarations, in source order).
type File struct {
	Path         string
	Span         source.Span
	Module       source.StringID // NoStringID when the file has no `module` statement
	Imports      []StmtID
	Stmts        []StmtID
	IsGenerated  bool
	IsTranslated bool
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{Arena: NewArena[File](capHint)}
}

func (f *Files) New(path string, sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{
		Path:    path,
		Span:    sp,
		Module:  source.NoStringID,
		Imports: make([]StmtID, 0),
		Stmts:   make([]StmtID, 0),
	}))
}

func (f *Files) Get(id FileID) *File { return f.Arena.Get(uint32(id)) }
