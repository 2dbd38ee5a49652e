package display

import (
	"strings"

	"symdisplay/internal/symbols"
	"symdisplay/internal/types"
)

func (r *renderer) namespace(id symbols.SymbolID, sym *symbols.Symbol, top bool) {
	if sym.IsGlobalNamespace() {
		if r.f.global != GlobalOmitted {
			r.add(PartText, "<global namespace>", id)
		}
		return
	}
	if top && r.f.hasKind(IncludeNamespaceKeyword) {
		r.keywordSpace("namespace")
	}
	r.namespaceRef(id)
}

func (r *renderer) typeDecl(id symbols.SymbolID, sym *symbols.Symbol, top bool) {
	if top && r.f.hasKind(IncludeTypeKeyword) {
		r.typeKeyword(sym)
	}
	var invoke *symbols.Symbol
	if top && sym.TypeKind == symbols.TypeDelegate && r.f.delegates != DelegateNameOnly {
		invoke = r.tab.Get(sym.DelegateInvoke)
	}
	if invoke != nil && r.f.delegates == DelegateNameAndSignature {
		r.returnType(invoke, true)
		r.space()
	}
	if sym.Special != symbols.SpecialNone && r.f.hasMisc(UseSpecialTypes) && specialKeywords[sym.Special] != "" {
		r.keyword(specialKeywords[sym.Special])
	} else {
		r.namedRef(id, nil)
	}
	if invoke != nil {
		r.paramList(invoke.Params, "(", ")", false)
	}
	if top {
		r.constraints(sym)
	}
}

func (r *renderer) typeKeyword(sym *symbols.Symbol) {
	switch sym.TypeKind {
	case symbols.TypeStruct, symbols.TypeRecordStruct:
		if sym.Modifiers&symbols.ModReadOnly != 0 {
			r.keywordSpace("readonly")
		}
		if sym.Modifiers&symbols.ModRef != 0 {
			r.keywordSpace("ref")
		}
		if sym.TypeKind == symbols.TypeRecordStruct {
			r.keywordSpace("record")
		}
		r.keywordSpace("struct")
	case symbols.TypeRecordClass:
		r.keywordSpace("record")
	case symbols.TypeExtension:
		r.keywordSpace("extension")
	default:
		r.keywordSpace(sym.TypeKind.String())
	}
}

// constraints renders the where clauses of a generic declaration.
func (r *renderer) constraints(sym *symbols.Symbol) {
	if !r.f.hasGenerics(IncludeTypeConstraints) {
		return
	}
	for i, tp := range sym.TypeParams {
		p := r.tab.Get(tp)
		if p == nil || p.Constraints.Empty() || r.inferred(sym, i) {
			continue
		}
		r.space()
		r.keywordSpace("where")
		r.add(PartTypeParameterName, r.ident(r.name(tp), true), tp)
		r.space()
		r.punct(":")
		r.space()
		first := true
		next := func() {
			if !first {
				r.punct(",")
				r.space()
			}
			first = false
		}
		c := p.Constraints
		switch {
		case c.Flags&symbols.ConstraintClass != 0:
			next()
			r.keyword("class")
		case c.Flags&symbols.ConstraintNullableClass != 0:
			next()
			r.keyword("class")
			r.punct("?")
		case c.Flags&symbols.ConstraintStruct != 0:
			next()
			r.keyword("struct")
		case c.Flags&symbols.ConstraintUnmanaged != 0:
			next()
			r.keyword("unmanaged")
		case c.Flags&symbols.ConstraintNotNull != 0:
			next()
			r.keyword("notnull")
		}
		for _, t := range c.Types {
			next()
			r.typ(t)
		}
		if c.Flags&symbols.ConstraintNew != 0 {
			next()
			r.keyword("new")
			r.punct("(")
			r.punct(")")
		}
	}
}

// memberHost reports the type declaring a member, or nil.
func (r *renderer) memberHost(sym *symbols.Symbol) *symbols.Symbol {
	c := r.containerOf(sym)
	if c == nil || c.Kind != symbols.SymbolNamedType {
		return nil
	}
	return c
}

func (r *renderer) inInterfaceOrEnum(sym *symbols.Symbol) bool {
	host := r.memberHost(sym)
	return host != nil && (host.TypeKind == symbols.TypeInterface || host.TypeKind == symbols.TypeEnum)
}

func (r *renderer) accessibility(sym *symbols.Symbol) {
	if !r.f.hasMember(MemberIncludeAccessibility) || r.inInterfaceOrEnum(sym) {
		return
	}
	if sym.Kind == symbols.SymbolMethod && sym.MethodKind == symbols.MethodLocalFunction {
		return
	}
	for _, kw := range sym.Access.Keywords() {
		r.keywordSpace(kw)
	}
}

// modifiers renders member modifiers in declaration order. dropStatic hides
// static on the instance form of extension methods.
func (r *renderer) modifiers(sym *symbols.Symbol, dropStatic bool) {
	if !r.f.hasMember(MemberIncludeModifiers) || r.inInterfaceOrEnum(sym) {
		return
	}
	m := sym.Modifiers
	if m&symbols.ModStatic != 0 && m&symbols.ModConst == 0 && !dropStatic {
		r.keywordSpace("static")
	}
	for _, mod := range []struct {
		bit symbols.Modifiers
		kw  string
	}{
		{symbols.ModOverride, "override"},
		{symbols.ModAbstract, "abstract"},
		{symbols.ModSealed, "sealed"},
		{symbols.ModExtern, "extern"},
		{symbols.ModVirtual, "virtual"},
		{symbols.ModRequired, "required"},
	} {
		if m&mod.bit != 0 {
			r.keywordSpace(mod.kw)
		}
	}
	switch sym.Kind {
	case symbols.SymbolField:
		if m&symbols.ModConst != 0 {
			r.keywordSpace("const")
		}
		if m&symbols.ModReadOnly != 0 {
			r.keywordSpace("readonly")
		}
		if m&symbols.ModVolatile != 0 {
			r.keywordSpace("volatile")
		}
	case symbols.SymbolMethod, symbols.SymbolProperty, symbols.SymbolEvent:
		if m&symbols.ModReadOnly != 0 {
			r.keywordSpace("readonly")
		}
	}
}

// returnType renders a member's declared type with its ref kind. Void
// returns always use the keyword.
// inferred reports whether a reduced method's i-th type parameter was
// replaced by a type its receiver fixed.
func (r *renderer) inferred(sym *symbols.Symbol, i int) bool {
	if i >= len(sym.TypeArgs) {
		return false
	}
	tt, ok := r.tab.Types.Lookup(sym.TypeArgs[i])
	return !ok || tt.Kind != types.KindTypeParam || symbols.SymbolID(tt.Decl) != sym.TypeParams[i]
}

func (r *renderer) returnType(sym *symbols.Symbol, withRef bool) {
	if withRef {
		switch sym.RefKind {
		case types.RefRef:
			r.keywordSpace("ref")
		case types.RefReadOnly:
			r.keywordSpace("ref")
			r.keywordSpace("readonly")
		}
	}
	if _, decl := r.typeSymbol(sym.Type); decl != nil && decl.Special == symbols.SpecialVoid {
		r.keyword("void")
	} else {
		r.typ(sym.Type)
	}
	r.customModifiers(sym.CustomModifiers)
}

func (r *renderer) customModifiers(mods []symbols.CustomModifier) {
	if !r.f.hasInternal(IncludeCustomModifiers) {
		return
	}
	for _, m := range mods {
		r.space()
		if m.Required {
			r.keyword("modreq")
		} else {
			r.keyword("modopt")
		}
		r.punct("(")
		r.typ(m.Type)
		r.punct(")")
	}
}

// containingType renders the declaring type followed by a dot.
func (r *renderer) containingType(sym *symbols.Symbol) {
	if !r.f.hasMember(MemberIncludeContainingType) {
		return
	}
	if host := r.memberHost(sym); host != nil {
		r.namedRef(sym.Container, nil)
		r.punct(".")
	}
}

func (r *renderer) explicitInterface(sym *symbols.Symbol) {
	if !sym.ExplicitInterface.IsValid() || !r.f.hasMember(MemberIncludeExplicitInterface) {
		return
	}
	r.typ(sym.ExplicitInterface)
	r.punct(".")
}

// memberName strips the interface qualification an explicit implementation
// carries in its declared name.
func (r *renderer) memberName(id symbols.SymbolID, sym *symbols.Symbol) string {
	name := r.name(id)
	if sym.ExplicitInterface.IsValid() || sym.Flags&symbols.FlagExplicitImpl != 0 {
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
	}
	return name
}

func (r *renderer) method(id symbols.SymbolID, sym *symbols.Symbol, top bool) {
	instance := false
	receiver := types.NoTypeID
	params := sym.Params
	switch {
	case sym.ReducedFrom.IsValid() && r.f.extensions == ExtensionStaticMethod:
		delete(r.visiting, id)
		r.symbol(sym.ReducedFrom, top)
		r.visiting[id] = struct{}{}
		return
	case sym.ReducedFrom.IsValid():
		instance, receiver = true, sym.ReceiverType
	case sym.Flags&symbols.FlagExtensionMethod != 0 && r.f.extensions == ExtensionInstanceMethod && len(params) > 0:
		instance, receiver = true, r.tab.Get(params[0]).Type
		params = params[1:]
	}

	r.accessibility(sym)
	r.modifiers(sym, instance)

	switch sym.MethodKind {
	case symbols.MethodConstructor, symbols.MethodStaticConstructor,
		symbols.MethodDestructor, symbols.MethodConversion:
	default:
		if r.f.hasMember(MemberIncludeType) && sym.Type.IsValid() {
			r.returnType(sym, r.f.hasMember(MemberIncludeRef))
			r.space()
		}
	}

	if r.f.hasMember(MemberIncludeContainingType) && sym.MethodKind != symbols.MethodLocalFunction {
		if instance {
			r.typ(receiver)
			r.punct(".")
		} else {
			r.containingType(sym)
		}
	}
	r.explicitInterface(sym)

	if sym.MethodKind.IsAccessor() {
		r.accessorName(id, sym)
		return
	}
	r.methodName(id, sym)

	if sym.Arity() > 0 && r.f.hasGenerics(IncludeTypeParameters) {
		r.punct("<")
		if len(sym.TypeArgs) == sym.Arity() {
			for i, a := range sym.TypeArgs {
				if i > 0 {
					r.punct(",")
					r.space()
				}
				r.typ(a)
			}
		} else {
			r.typeParams(sym.TypeParams)
		}
		r.punct(">")
	}
	if r.f.hasMember(MemberIncludeParameters) {
		r.paramList(params, "(", ")", instance)
	}
	if top {
		r.constraints(sym)
	}
}

func (r *renderer) methodName(id symbols.SymbolID, sym *symbols.Symbol) {
	metadata := r.f.hasInternal(UseMetadataMethodNames)
	host := r.memberHost(sym)
	switch sym.MethodKind {
	case symbols.MethodConstructor, symbols.MethodStaticConstructor:
		switch {
		case metadata && sym.MethodKind == symbols.MethodConstructor:
			r.add(PartMethodName, ".ctor", id)
		case metadata:
			r.add(PartMethodName, ".cctor", id)
		case host != nil:
			r.typeName(sym.Container, host)
		default:
			r.add(PartMethodName, r.name(id), id)
		}
	case symbols.MethodDestructor:
		switch {
		case metadata:
			r.add(PartMethodName, "Finalize", id)
		case host != nil:
			r.punct("~")
			r.typeName(sym.Container, host)
		default:
			r.add(PartMethodName, r.name(id), id)
		}
	case symbols.MethodOperator:
		name := r.memberName(id, sym)
		tok, ok := OperatorToken(name)
		if metadata || !ok {
			r.add(PartMethodName, name, id)
			return
		}
		r.keywordSpace("operator")
		if sym.Flags&symbols.FlagChecked != 0 {
			r.keywordSpace("checked")
		}
		r.add(PartOperator, tok, id)
	case symbols.MethodConversion:
		if metadata {
			r.add(PartMethodName, r.memberName(id, sym), id)
			return
		}
		if sym.Flags&symbols.FlagImplicitConversion != 0 || r.name(id) == "op_Implicit" {
			r.keywordSpace("implicit")
		} else {
			r.keywordSpace("explicit")
		}
		r.keywordSpace("operator")
		if sym.Flags&symbols.FlagChecked != 0 {
			r.keywordSpace("checked")
		}
		r.returnType(sym, false)
	default:
		r.add(r.nameKind(sym), r.ident(r.memberName(id, sym), false), id)
	}
}

// accessorName renders P.get style names, or get_P under metadata names.
func (r *renderer) accessorName(id symbols.SymbolID, sym *symbols.Symbol) {
	if r.f.hasInternal(UseMetadataMethodNames) {
		r.add(PartMethodName, r.name(id), id)
		return
	}
	owner := r.tab.Get(sym.Associated)
	if owner == nil {
		r.add(PartMethodName, r.name(id), id)
		return
	}
	if owner.Kind == symbols.SymbolProperty {
		r.propertyName(sym.Associated, owner)
	} else {
		r.add(PartEventName, r.ident(r.memberName(sym.Associated, owner), false), sym.Associated)
	}
	r.punct(".")
	switch sym.MethodKind {
	case symbols.MethodPropertyGet:
		r.keyword("get")
	case symbols.MethodPropertySet:
		if sym.Flags&symbols.FlagInitOnly != 0 {
			r.keyword("init")
		} else {
			r.keyword("set")
		}
	case symbols.MethodEventAdd:
		r.keyword("add")
	case symbols.MethodEventRemove:
		r.keyword("remove")
	}
}

func (r *renderer) paramList(ids []symbols.SymbolID, open, close string, hideThis bool) {
	r.punct(open)
	for i, p := range ids {
		if i > 0 {
			r.punct(",")
			r.space()
		}
		r.param(p, hideThis)
	}
	r.punct(close)
}

// param renders one parameter. hideThis suppresses the extension receiver
// marker in instance-form signatures.
func (r *renderer) param(id symbols.SymbolID, hideThis bool) {
	sym := r.tab.Get(id)
	if sym == nil {
		r.unknown()
		return
	}
	optional := sym.Flags&symbols.FlagOptional != 0 || sym.Default != nil
	brackets := optional && r.f.hasParam(ParamIncludeOptionalBrackets)
	if brackets {
		r.punct("[")
	}
	if !hideThis && r.f.hasParam(ParamIncludeExtensionThis) && r.isReceiver(sym) {
		r.keywordSpace("this")
	}
	if r.f.hasParam(ParamIncludeParamsRefOut) {
		if sym.Flags&symbols.FlagScoped != 0 && sym.RefKind != types.RefOut {
			r.keywordSpace("scoped")
		}
		r.refPrefix(sym.RefKind)
		if sym.Flags&symbols.FlagParams != 0 {
			r.keywordSpace("params")
		}
	}
	hasType := r.f.hasParam(ParamIncludeType)
	if hasType {
		r.typ(sym.Type)
		r.customModifiers(sym.CustomModifiers)
	}
	hasName := r.f.hasParam(ParamIncludeName) && r.name(id) != ""
	if hasName {
		if hasType {
			r.space()
		}
		r.add(PartParameterName, r.ident(r.name(id), false), id)
	}
	if r.f.hasParam(ParamIncludeDefaultValue) && sym.Default != nil && (hasType || hasName) {
		r.space()
		r.punct("=")
		r.space()
		r.constant(sym.Type, sym.Default.Value, symbols.NoSymbolID)
	}
	if brackets {
		r.punct("]")
	}
}

func (r *renderer) isReceiver(param *symbols.Symbol) bool {
	if param.Flags&symbols.FlagThis != 0 {
		return true
	}
	owner := r.tab.Get(param.Container)
	return param.Ordinal == 0 && owner != nil && owner.Kind == symbols.SymbolMethod &&
		owner.Flags&symbols.FlagExtensionMethod != 0 && !owner.ReducedFrom.IsValid()
}

func (r *renderer) propertyName(id symbols.SymbolID, sym *symbols.Symbol) {
	if sym.Flags&symbols.FlagIndexer == 0 {
		r.add(PartPropertyName, r.ident(r.memberName(id, sym), false), id)
		return
	}
	r.add(PartKeyword, "this", id)
	if r.f.hasMember(MemberIncludeParameters) && len(sym.Params) > 0 {
		r.paramList(sym.Params, "[", "]", false)
	}
}

func (r *renderer) property(id symbols.SymbolID, sym *symbols.Symbol) {
	r.accessibility(sym)
	r.modifiers(sym, false)
	if r.f.hasMember(MemberIncludeType) {
		r.returnType(sym, r.f.hasMember(MemberIncludeRef))
		r.space()
	}
	r.containingType(sym)
	r.explicitInterface(sym)
	r.propertyName(id, sym)
	if r.f.props != PropertyShowReadWriteDescriptor {
		return
	}
	r.space()
	r.punct("{")
	r.accessorDescriptor(sym, sym.Getter)
	r.accessorDescriptor(sym, sym.Setter)
	r.space()
	r.punct("}")
}

// accessorDescriptor emits " get;" with the accessibility and readonly
// modifier shown only where they differ from the property.
func (r *renderer) accessorDescriptor(prop *symbols.Symbol, id symbols.SymbolID) {
	acc := r.tab.Get(id)
	if acc == nil {
		return
	}
	r.space()
	if r.f.hasMember(MemberIncludeAccessibility) && acc.Access != prop.Access && !r.inInterfaceOrEnum(prop) {
		for _, kw := range acc.Access.Keywords() {
			r.keywordSpace(kw)
		}
	}
	if r.f.hasMember(MemberIncludeModifiers) && acc.Modifiers&symbols.ModReadOnly != 0 &&
		prop.Modifiers&symbols.ModReadOnly == 0 {
		r.keywordSpace("readonly")
	}
	switch {
	case acc.MethodKind == symbols.MethodPropertyGet:
		r.keyword("get")
	case acc.Flags&symbols.FlagInitOnly != 0:
		r.keyword("init")
	default:
		r.keyword("set")
	}
	r.punct(";")
}

func (r *renderer) event(id symbols.SymbolID, sym *symbols.Symbol) {
	r.accessibility(sym)
	r.modifiers(sym, false)
	if r.f.hasKind(IncludeMemberKeyword) {
		r.keywordSpace("event")
	}
	if r.f.hasMember(MemberIncludeType) {
		r.typ(sym.Type)
		r.space()
	}
	r.containingType(sym)
	r.explicitInterface(sym)
	r.add(PartEventName, r.ident(r.memberName(id, sym), false), id)
}

func (r *renderer) field(id symbols.SymbolID, sym *symbols.Symbol) {
	enumMember := r.isEnumMember(sym)
	if !enumMember {
		r.accessibility(sym)
		r.modifiers(sym, false)
		if r.f.hasMember(MemberIncludeType) {
			r.returnType(sym, r.f.hasMember(MemberIncludeRef))
			r.space()
		}
	}
	r.containingType(sym)
	r.add(r.nameKind(sym), r.ident(r.name(id), false), id)
	if !r.f.hasMember(MemberIncludeConstantValue) || sym.Constant == nil {
		return
	}
	r.space()
	r.punct("=")
	r.space()
	if enumMember {
		r.enumMemberValue(sym.Container, sym.Constant.Value, id)
		return
	}
	r.constant(sym.Type, sym.Constant.Value, symbols.NoSymbolID)
}

func (r *renderer) local(id symbols.SymbolID, sym *symbols.Symbol) {
	if r.f.hasLocal(LocalIncludeRef) {
		switch sym.RefKind {
		case types.RefRef:
			r.keywordSpace("ref")
		case types.RefReadOnly:
			r.keywordSpace("ref")
			r.keywordSpace("readonly")
		}
	}
	if r.f.hasLocal(LocalIncludeType) && sym.Type.IsValid() {
		r.typ(sym.Type)
		r.space()
	}
	r.add(PartLocalName, r.ident(r.name(id), false), id)
	if r.f.hasLocal(LocalIncludeConstantValue) && sym.Constant != nil {
		r.space()
		r.punct("=")
		r.space()
		r.constant(sym.Type, sym.Constant.Value, symbols.NoSymbolID)
	}
}
