package sema

import (
	"wrought/internal/ast"
	"wrought/internal/diag"
	"wrought/internal/source"
	"wrought/internal/symbols"
	"wrought/internal/types"
)

// checkImport implements §4.2.1 pass 1: ensure each imported symbol
// exists in the source module, reject import shadowing a constant name,
// detect duplicate imports. Alias names themselves are not validated.
func (c *Checker) checkImport(stmtID ast.StmtID) {
	data, ok := c.AST.Stmts.Import(stmtID)
	if !ok {
		return
	}
	stmt := c.AST.Stmts.Get(stmtID)
	path := c.str(data.Path)
	alias := c.str(data.Alias)
	if alias == "" {
		alias = path
	}

	if existing := c.Symbols.LookupLocal(c.fileScope, alias); existing.IsValid() {
		sym := c.Symbols.Symbols.Get(existing)
		switch {
		case sym != nil && sym.Kind == symbols.KindConst:
			c.errorf(diag.CodeImportShadowsConst, stmt.Span, "import %q shadows constant %q", alias, alias)
		case sym != nil && sym.Kind == symbols.KindImport:
			c.errorf(diag.CodeDuplicateImport, stmt.Span, "duplicate import of %q", path)
			return
		}
	}

	c.Symbols.Declare(c.fileScope, symbols.Symbol{
		Name: alias, Kind: symbols.KindImport, Scope: c.fileScope, Span: stmt.Span,
		ModulePath: path, Decl: symbols.Decl{File: c.file, Stmt: stmtID},
	})

	for _, sym := range data.Symbols {
		name := c.str(sym.Name)
		fq := path + "." + name
		if _, idx := c.Types.FindSymAndIdx(fq); idx == types.NoTypeID {
			if _, ok := c.Types.LookupFn(fq); !ok {
				c.errorf(diag.CodeImportNotFound, stmt.Span, "module %q has no exported symbol %q", path, name)
				continue
			}
		}
		local := c.str(sym.Alias)
		if local == "" {
			local = name
		}
		c.Symbols.Declare(c.fileScope, symbols.Symbol{
			Name: local, Kind: symbols.KindImport, Scope: c.fileScope, Span: sym.Span,
			ModulePath: fq, Decl: symbols.Decl{File: c.file, Stmt: stmtID},
		})
	}
}

// registerTopLevel implements §4.2.1 passes 2-3 for one top-level
// statement: it registers the declaration's *header* (name, type
// signature) into the Symbol Table and the Type Table, deferring body
// checking to checkTopLevelBody. Running registration for every file
// before any body is checked is what lets one file's declarations
// forward-reference another's.
func (c *Checker) registerTopLevel(stmtID ast.StmtID) {
	stmt := c.AST.Stmts.Get(stmtID)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtModule:
		d, ok := c.AST.Stmts.Module(stmtID)
		if ok {
			c.moduleName = c.str(d.Name)
			c.moduleScope = c.Symbols.ModuleRoot(c.moduleName, c.fileScope, stmt.Span)
			c.declScope = c.moduleScope
		}
	case ast.StmtConst:
		c.registerConst(stmtID)
	case ast.StmtGlobal:
		c.registerGlobal(stmtID)
	case ast.StmtEnum:
		c.registerEnum(stmtID)
	case ast.StmtTypeDecl:
		c.registerTypeDecl(stmtID)
	case ast.StmtInterface:
		c.registerInterface(stmtID)
	case ast.StmtStruct:
		c.registerStruct(stmtID)
	case ast.StmtFnDecl:
		c.registerFnHeader(stmtID)
	}
}

// declareTypeSymbol mirrors a freshly registered types.TypeID into the
// Symbol Table's NameIndex under its bare (unqualified) name, so later
// identifier resolution inside the same module can find it by name
// without going through the Type Table's canonical-name lookup.
func (c *Checker) declareTypeSymbol(name string, id types.TypeID, isPub bool, span source.Span, stmtID ast.StmtID) {
	if name == "" {
		return
	}
	if existing := c.Symbols.LookupLocal(c.declScope, name); existing.IsValid() {
		c.errorf(diag.CodeDuplicateType, span, "type %q is already declared", name)
		return
	}
	flags := symbols.Flags(0)
	if isPub {
		flags |= symbols.FlagPub
	}
	c.Symbols.Declare(c.declScope, symbols.Symbol{
		Name: name, Kind: symbols.KindType, Scope: c.declScope, Span: span,
		Flags: flags, Type: id, Decl: symbols.Decl{File: c.file, Stmt: stmtID}, ModulePath: c.moduleName,
	})
}

func (c *Checker) registerConst(stmtID ast.StmtID) {
	data, ok := c.AST.Stmts.Const(stmtID)
	if !ok {
		return
	}
	stmt := c.AST.Stmts.Get(stmtID)
	name := c.str(data.Name)
	if existing := c.Symbols.LookupLocal(c.declScope, name); existing.IsValid() {
		c.errorf(diag.CodeDuplicateConst, stmt.Span, "constant %q is already declared", name)
		return
	}
	typ := c.resolveTypeExpr(data.Type)
	flags := symbols.Flags(0)
	if data.IsPub {
		flags |= symbols.FlagPub
	}
	c.Symbols.Declare(c.declScope, symbols.Symbol{
		Name: name, Kind: symbols.KindConst, Scope: c.declScope, Span: stmt.Span,
		Flags: flags, Type: typ, Decl: symbols.Decl{File: c.file, Stmt: stmtID}, ModulePath: c.moduleName,
	})
}

func (c *Checker) registerGlobal(stmtID ast.StmtID) {
	data, ok := c.AST.Stmts.Global(stmtID)
	if !ok {
		return
	}
	stmt := c.AST.Stmts.Get(stmtID)
	name := c.str(data.Name)
	if existing := c.Symbols.LookupLocal(c.declScope, name); existing.IsValid() {
		c.errorf(diag.CodeDuplicateGlobal, stmt.Span, "global %q is already declared", name)
		return
	}
	typ := c.resolveTypeExpr(data.Type)
	flags := symbols.Flags(0)
	if data.IsPub {
		flags |= symbols.FlagPub
	}
	if data.IsMut {
		flags |= symbols.FlagMut
	}
	if typ.HasFlag(types.FlagShared) {
		flags |= symbols.FlagShared
	}
	c.Symbols.Declare(c.declScope, symbols.Symbol{
		Name: name, Kind: symbols.KindGlobal, Scope: c.declScope, Span: stmt.Span,
		Flags: flags, Type: typ, Decl: symbols.Decl{File: c.file, Stmt: stmtID}, ModulePath: c.moduleName,
	})
}

func (c *Checker) registerEnum(stmtID ast.StmtID) {
	data, ok := c.AST.Stmts.Enum(stmtID)
	if !ok {
		return
	}
	stmt := c.AST.Stmts.Get(stmtID)
	bareName := c.str(data.Name)
	name := c.fqName(bareName)

	base := c.Types.Builtins().I32
	if data.BaseType.IsValid() {
		base = c.resolveTypeExpr(data.BaseType)
	}
	if len(data.Variants) > c.Limits.EnumVariantCutoff {
		c.warnf(diag.CodeEnumVariantCountExceeded, stmt.Span,
			"enum %q declares %d variants, past the %d-variant exhaustiveness cutoff", bareName, len(data.Variants), c.Limits.EnumVariantCutoff)
	}
	variants := make([]types.EnumVariant, 0, len(data.Variants))
	next := int64(0)
	for _, v := range data.Variants {
		val := next
		if v.Value.IsValid() {
			if lit, ok := c.constEvalInt(v.Value); ok {
				val = lit
			}
		}
		variants = append(variants, types.EnumVariant{Name: c.str(v.Name), Value: val})
		next = val + 1
	}
	id := c.Types.RegisterSym(types.Symbol{
		Kind: types.KindEnum, Name: name, Module: c.moduleName,
		Enum: types.EnumInfo{Variants: variants, IsFlag: data.IsFlag, Base: base},
	})
	c.declareTypeSymbol(bareName, id, data.IsPub, stmt.Span, stmtID)
}

func (c *Checker) registerTypeDecl(stmtID ast.StmtID) {
	data, ok := c.AST.Stmts.TypeDecl(stmtID)
	if !ok {
		return
	}
	stmt := c.AST.Stmts.Get(stmtID)
	bareName := c.str(data.Name)
	name := c.fqName(bareName)

	var id types.TypeID
	switch data.Kind {
	case ast.TypeDeclAlias:
		target := c.resolveTypeExpr(data.AliasTarget)
		id = c.Types.RegisterSym(types.Symbol{
			Kind: types.KindAlias, Name: name, Module: c.moduleName,
			Alias: types.AliasInfo{Parent: target},
		})
	case ast.TypeDeclFn:
		sig := c.resolveTypeExpr(data.FnSig)
		id = c.Types.RegisterSym(types.Symbol{
			Kind: types.KindAlias, Name: name, Module: c.moduleName,
			Alias: types.AliasInfo{Parent: sig},
		})
	case ast.TypeDeclSum:
		variants := make([]types.TypeID, len(data.SumVariants))
		for i, v := range data.SumVariants {
			variants[i] = c.resolveTypeExpr(v)
		}
		genericParams := genericNames(c, data.Generics)
		id = c.Types.RegisterSym(types.Symbol{
			Kind: types.KindSumType, Name: name, Module: c.moduleName,
			SumType: types.SumTypeInfo{Variants: variants, GenericParams: genericParams},
		})
	}
	if id.IsValid() && c.Types.Sym(id.Base()).Kind == types.KindAlias {
		c.checkAliasCycle(id, stmt.Span, bareName)
	}
	c.declareTypeSymbol(bareName, id, data.IsPub, stmt.Span, stmtID)
}

// checkAliasCycle implements the alias-chain-termination invariant of
// §3/§4.1.1 at the point a new alias is registered: a chain that loops
// back to its own starting symbol, directly or through intermediate
// aliases, would otherwise recurse forever in unalias_num_type and
// resolveTypeExpr's own provisional-void guard would just mask it as a
// silent void instead of surfacing the mistake.
func (c *Checker) checkAliasCycle(id types.TypeID, span source.Span, name string) {
	seen := map[types.TypeID]bool{id.Base(): true}
	cur := id
	for steps := 0; steps < c.Limits.InterfaceEmbedDepthCutoff; steps++ {
		sym := c.Types.Sym(cur.Base())
		if sym.Kind != types.KindAlias || !sym.Alias.Parent.IsValid() {
			return
		}
		next := sym.Alias.Parent
		if next.Base() == id.Base() {
			if steps == 0 {
				c.errorf(diag.CodeTypeSelfReference, span, "type %q refers to itself", name)
			} else {
				c.errorf(diag.CodeCircularAlias, span, "type %q is part of a circular alias chain", name)
			}
			return
		}
		if seen[next.Base()] {
			c.errorf(diag.CodeCircularAlias, span, "type %q is part of a circular alias chain", name)
			return
		}
		seen[next.Base()] = true
		cur = next
	}
}

func (c *Checker) registerInterface(stmtID ast.StmtID) {
	data, ok := c.AST.Stmts.Interface(stmtID)
	if !ok {
		return
	}
	stmt := c.AST.Stmts.Get(stmtID)
	bareName := c.str(data.Name)
	name := c.fqName(bareName)

	fields := make([]types.Field, len(data.Fields))
	for i, f := range data.Fields {
		fields[i] = types.Field{Name: c.str(f.Name), Type: c.resolveTypeExpr(f.Type), IsMut: true, IsPub: f.IsPub}
	}
	methods := make([]types.Function, len(data.Methods))
	for i, m := range data.Methods {
		methods[i] = c.fnSigToFunction(m)
	}
	embeds := make([]types.TypeID, len(data.Embeds))
	for i, e := range data.Embeds {
		embeds[i] = c.resolveTypeExpr(e)
	}
	id := c.Types.RegisterSym(types.Symbol{
		Kind: types.KindInterface, Name: name, Module: c.moduleName,
		Interface: types.InterfaceInfo{
			Fields: fields, Methods: methods, Embeds: embeds, GenericParams: genericNames(c, data.Generics),
			Implementing: make(map[types.TypeID]struct{}),
			SingleImpl:   data.Attrs.Has(ast.AttrSingleImpl),
		},
	})
	c.interfaces = append(c.interfaces, id)
	c.declareTypeSymbol(bareName, id, data.IsPub, stmt.Span, stmtID)
}

func (c *Checker) registerStruct(stmtID ast.StmtID) {
	data, ok := c.AST.Stmts.Struct(stmtID)
	if !ok {
		return
	}
	stmt := c.AST.Stmts.Get(stmtID)
	bareName := c.str(data.Name)
	name := c.fqName(bareName)

	fields := make([]types.Field, len(data.Fields))
	for i, f := range data.Fields {
		fields[i] = types.Field{
			Name: c.str(f.Name), Type: c.resolveTypeExpr(f.Type), IsPub: f.IsPub,
			IsMut: f.Attrs.Has(ast.AttrMut), Default: int(f.Default),
		}
	}
	embeds := make([]types.TypeID, len(data.Embeds))
	for i, e := range data.Embeds {
		embeds[i] = c.resolveTypeExpr(e)
	}
	genericParams := genericNames(c, data.Generics)
	id := c.Types.RegisterSym(types.Symbol{
		Kind: types.KindStruct, Name: name, Module: c.moduleName,
		Struct: types.StructInfo{
			Fields: fields, Embeds: embeds, GenericParams: genericParams,
			IsGeneric: len(genericParams) > 0, IsUnion: data.IsUnion,
			IsHeap: data.Attrs.Has(ast.AttrHeap),
		},
	})
	c.structsByModule[c.moduleName] = append(c.structsByModule[c.moduleName], id)
	c.declareTypeSymbol(bareName, id, data.IsPub, stmt.Span, stmtID)
}

// registerFnHeader registers a function or method's signature, per
// §4.1.2's separate function registry (Types.RegisterFn), and declares
// its name into the symbol table so calls can resolve it by identifier.
// Generic functions are registered once under RegisterFnGenericTypes;
// the per-call-site concrete instantiation bookkeeping happens later,
// at call resolution (§4.2.4).
func (c *Checker) registerFnHeader(stmtID ast.StmtID) {
	data, ok := c.AST.Stmts.FnDecl(stmtID)
	if !ok {
		return
	}
	stmt := c.AST.Stmts.Get(stmtID)
	bareName := c.str(data.Name)
	mod := c.str(data.Mod)
	if mod == "" {
		mod = c.moduleName
	}
	fq := bareName
	if mod != "" && mod != "main" {
		fq = mod + "." + bareName
	}

	params := make([]types.Param, 0, len(data.Params))
	var recv types.TypeID = types.NoTypeID
	if data.Receiver != nil {
		recv = c.resolveTypeExpr(data.Receiver.Type)
	}
	for _, p := range data.Params {
		params = append(params, types.Param{
			Name: c.str(p.Name), Type: c.resolveTypeExpr(p.Type), IsMut: p.IsMut,
		})
	}
	ret := c.resolveTypeExpr(data.ReturnType)

	attrs := types.FuncAttr(0)
	if data.Attrs.Has(ast.AttrPub) || data.IsPub {
		attrs |= types.FuncPub
	}
	if data.Attrs.Has(ast.AttrDeprecated) {
		attrs |= types.FuncDeprecated
	}
	if data.Attrs.Has(ast.AttrNoReturn) {
		attrs |= types.FuncNoReturn
	}
	if data.Attrs.Has(ast.AttrUnsafe) {
		attrs |= types.FuncUnsafe
	}
	if data.Attrs.Has(ast.AttrMain) {
		attrs |= types.FuncMain
	}
	if data.Attrs.Has(ast.AttrTest) {
		attrs |= types.FuncTest
	}
	if data.Attrs.Has(ast.AttrInline) {
		attrs |= types.FuncInline
	}
	if data.Attrs.Has(ast.AttrSingleImpl) {
		attrs |= types.FuncSingleImpl
	}
	if data.Attrs.Has(ast.AttrKeepAlive) {
		attrs |= types.FuncKeepAlive
	}
	if data.IsMethod {
		attrs |= types.FuncMethod
	}
	if data.NoBody {
		attrs |= types.FuncNoBody
	}
	for _, p := range data.Params {
		if p.Variadic {
			attrs |= types.FuncVariadic
		}
	}

	var ifTag string
	if ifAttr, ok := data.Attrs.Find(ast.AttrIf); ok {
		attrs |= types.FuncConditional
		ifTag = c.str(ifAttr.Arg)
	}

	fn := types.Function{
		Name: bareName, Module: mod, Receiver: recv, Params: params, Return: ret,
		Attrs: attrs, IfTag: ifTag, GenericNames: genericNames(c, data.GenericNames), Pos: stmt.Span,
	}
	if existing, ok := c.Types.LookupFn(fq); ok && existing != nil {
		c.errorf(diag.CodeDuplicateFn, stmt.Span, "function %q is already declared", fq)
		return
	}
	c.Types.RegisterFn(fq, fn)
	c.fnDecls[fq] = stmtID
	if len(fn.GenericNames) > 0 {
		c.Types.RegisterFnGenericTypes(fq)
	}

	if data.Receiver != nil {
		// find_method/find_method_with_embeds (§4.1.4) resolve through the
		// receiver Symbol's own Methods slice, not the flat fqName
		// registry above; a method declaration has to land in both or
		// selector calls and interface-conformance checks never see it.
		recvSym := c.Types.Sym(recv.Base())
		recvSym.Methods = append(recvSym.Methods, fn)
	} else {
		c.Symbols.Declare(c.declScope, symbols.Symbol{
			Name: bareName, Kind: symbols.KindFunction, Scope: c.declScope, Span: stmt.Span,
			Decl: symbols.Decl{File: c.file, Stmt: stmtID}, ModulePath: mod,
		})
	}
}

// fnSigToFunction converts an interface method signature into the same
// Function descriptor free functions use, so interface-conformance
// checks (types.DoesTypeImplementInterface) can compare them uniformly.
func (c *Checker) fnSigToFunction(sig ast.FnSigDecl) types.Function {
	params := make([]types.Param, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = types.Param{Name: c.str(p.Name), Type: c.resolveTypeExpr(p.Type), IsMut: p.IsMut}
	}
	return types.Function{
		Name:         c.str(sig.Name),
		Params:       params,
		Return:       c.resolveTypeExpr(sig.ReturnType),
		GenericNames: genericNames(c, sig.Generics),
	}
}

func genericNames(c *Checker, params []ast.GenericParam) []string {
	if len(params) == 0 {
		return nil
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = c.str(p.Name)
	}
	return names
}

// constEvalInt evaluates a restricted constant-integer expression: a
// bare integer literal, or a unary minus applied to one. Anything more
// elaborate is left to full expression checking and the enum variant
// simply keeps the auto-incremented value.
func (c *Checker) constEvalInt(expr ast.ExprID) (int64, bool) {
	node := c.AST.Exprs.Get(expr)
	if node == nil {
		return 0, false
	}
	switch node.Kind {
	case ast.ExprIntegerLiteral:
		data, ok := c.AST.Exprs.Literal(expr)
		if !ok || data.Kind != ast.LitInt {
			return 0, false
		}
		return parseIntLiteral(c.str(data.Value))
	case ast.ExprPrefix:
		data, ok := c.AST.Exprs.Unary(expr)
		if !ok || data.Op != ast.OpNeg {
			return 0, false
		}
		v, ok := c.constEvalInt(data.Operand)
		if !ok {
			return 0, false
		}
		return -v, true
	default:
		return 0, false
	}
}

func parseIntLiteral(lit string) (int64, bool) {
	var neg bool
	if len(lit) > 0 && lit[0] == '-' {
		neg = true
		lit = lit[1:]
	}
	var v int64
	for _, r := range lit {
		if r == '_' {
			continue
		}
		if r < '0' || r > '9' {
			return 0, false
		}
		v = v*10 + int64(r-'0')
	}
	if neg {
		v = -v
	}
	return v, true
}
