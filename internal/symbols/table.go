package symbols

import (
	"slices"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"gitlab.com/tozd/go/errors"

	"symdisplay/internal/source"
	"symdisplay/internal/types"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates symbol-related arenas and shared resources.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner
	Types   *types.Interner

	global   SymbolID
	special  map[SpecialType]SymbolID
	tuples   map[int]SymbolID
	fileRoot map[source.FileID]ScopeID
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(errors.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(errors.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	t := &Table{
		Scopes:   NewScopes(scopeCap),
		Symbols:  NewSymbols(symCap),
		Strings:  strings,
		Types:    types.NewInterner(),
		special:  make(map[SpecialType]SymbolID),
		tuples:   make(map[int]SymbolID),
		fileRoot: make(map[source.FileID]ScopeID),
	}
	t.global = t.Symbols.New(&Symbol{
		Kind:  SymbolNamespace,
		Flags: FlagGlobalNamespace,
	})
	return t
}

// Global returns the root namespace.
func (t *Table) Global() SymbolID { return t.global }

// Get returns the symbol or nil for invalid ids.
func (t *Table) Get(id SymbolID) *Symbol { return t.Symbols.Get(id) }

// Name returns the declared name of a symbol.
func (t *Table) Name(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return ""
	}
	return t.Strings.MustLookup(sym.Name)
}

func (t *Table) add(container SymbolID, sym Symbol, member bool) SymbolID {
	sym.Container = container
	id := t.Symbols.New(&sym)
	if member {
		if parent := t.Symbols.Get(container); parent != nil {
			parent.Members = append(parent.Members, id)
		}
	}
	return id
}

// MembersNamed lists members of container with the given name in declaration order.
func (t *Table) MembersNamed(container SymbolID, name string) []SymbolID {
	parent := t.Symbols.Get(container)
	if parent == nil {
		return nil
	}
	key, ok := t.Strings.Find(name)
	if !ok {
		return nil
	}
	var out []SymbolID
	for _, id := range parent.Members {
		if m := t.Symbols.Get(id); m != nil && m.Name == key {
			out = append(out, id)
		}
	}
	return out
}

// NewNamespace returns the namespace name under container, declaring it if needed.
func (t *Table) NewNamespace(container SymbolID, name string) SymbolID {
	for _, id := range t.MembersNamed(container, name) {
		if t.Symbols.Get(id).Kind == SymbolNamespace {
			return id
		}
	}
	return t.add(container, Symbol{
		Name: t.Strings.Intern(name),
		Kind: SymbolNamespace,
	}, true)
}

// NamespacePath declares every component of a dotted namespace path.
func (t *Table) NamespacePath(path string) SymbolID {
	ns := t.global
	if path == "" {
		return ns
	}
	for part := range strings.SplitSeq(path, ".") {
		ns = t.NewNamespace(ns, part)
	}
	return ns
}

// NewType declares a named type inside a namespace or type.
func (t *Table) NewType(container SymbolID, name string, kind TypeKind, access Accessibility) SymbolID {
	return t.add(container, Symbol{
		Name:     t.Strings.Intern(name),
		Kind:     SymbolNamedType,
		TypeKind: kind,
		Access:   access,
	}, true)
}

// NewDelegate declares a delegate type together with its Invoke method.
func (t *Table) NewDelegate(container SymbolID, name string, access Accessibility, ret types.TypeID) (typ, invoke SymbolID) {
	typ = t.NewType(container, name, TypeDelegate, access)
	invoke = t.NewMethod(typ, "Invoke", MethodDelegateInvoke, AccessPublic, ret)
	t.Symbols.Get(typ).DelegateInvoke = invoke
	return typ, invoke
}

// NewErrorType declares an unresolved type carrying its best-effort name.
func (t *Table) NewErrorType(container SymbolID, name string, arity int) SymbolID {
	id := t.add(container, Symbol{
		Name: t.Strings.Intern(name),
		Kind: SymbolErrorType,
	}, false)
	for i := range arity {
		t.NewTypeParameter(id, "T"+strconv.Itoa(i+1))
	}
	return id
}

// NewTypeParameter appends a type parameter to a generic type or method.
func (t *Table) NewTypeParameter(owner SymbolID, name string) SymbolID {
	parent := t.Symbols.Get(owner)
	if parent == nil {
		return NoSymbolID
	}
	id := t.add(owner, Symbol{
		Name:    t.Strings.Intern(name),
		Kind:    SymbolTypeParameter,
		Ordinal: len(parent.TypeParams),
	}, false)
	parent = t.Symbols.Get(owner)
	parent.TypeParams = append(parent.TypeParams, id)
	return id
}

// NewMethod declares a method-like member; ret is NoTypeID for void-less kinds.
func (t *Table) NewMethod(container SymbolID, name string, kind MethodKind, access Accessibility, ret types.TypeID) SymbolID {
	return t.add(container, Symbol{
		Name:       t.Strings.Intern(name),
		Kind:       SymbolMethod,
		MethodKind: kind,
		Access:     access,
		Type:       ret,
	}, true)
}

// NewParameter appends a parameter to a method, delegate invoke or indexer.
func (t *Table) NewParameter(owner SymbolID, name string, typ types.TypeID, ref types.RefKind) SymbolID {
	parent := t.Symbols.Get(owner)
	if parent == nil {
		return NoSymbolID
	}
	id := t.add(owner, Symbol{
		Name:    t.Strings.Intern(name),
		Kind:    SymbolParameter,
		Type:    typ,
		RefKind: ref,
		Ordinal: len(parent.Params),
	}, false)
	parent = t.Symbols.Get(owner)
	parent.Params = append(parent.Params, id)
	return id
}

// SetDefault marks a parameter optional with the given default value.
func (t *Table) SetDefault(param SymbolID, value any) {
	if sym := t.Symbols.Get(param); sym != nil {
		sym.Flags |= FlagOptional
		sym.Default = &ConstantValue{Value: value}
	}
}

// NewField declares a field.
func (t *Table) NewField(container SymbolID, name string, typ types.TypeID, access Accessibility) SymbolID {
	return t.add(container, Symbol{
		Name:   t.Strings.Intern(name),
		Kind:   SymbolField,
		Type:   typ,
		Access: access,
	}, true)
}

// NewConstant declares a const field with its value.
func (t *Table) NewConstant(container SymbolID, name string, typ types.TypeID, access Accessibility, value any) SymbolID {
	id := t.NewField(container, name, typ, access)
	sym := t.Symbols.Get(id)
	sym.Modifiers |= ModConst | ModStatic
	sym.Constant = &ConstantValue{Value: value}
	return id
}

// NewEnumMember declares an enum constant; value is in the enum's underlying type.
func (t *Table) NewEnumMember(enum SymbolID, name string, value any) SymbolID {
	id := t.NewConstant(enum, name, t.TypeOf(enum), AccessPublic, value)
	t.Symbols.Get(id).Ordinal = len(t.Symbols.Get(enum).Members) - 1
	return id
}

// NewProperty declares a property. Indexers are named "this[]".
func (t *Table) NewProperty(container SymbolID, name string, typ types.TypeID, access Accessibility) SymbolID {
	sym := Symbol{
		Name:   t.Strings.Intern(name),
		Kind:   SymbolProperty,
		Type:   typ,
		Access: access,
	}
	if name == "this[]" {
		sym.Flags |= FlagIndexer
		sym.MetadataName = "Item"
	}
	return t.add(container, sym, true)
}

func (t *Table) propertyMetadataName(prop *Symbol) string {
	if prop.MetadataName != "" {
		return prop.MetadataName
	}
	return t.Strings.MustLookup(prop.Name)
}

// AddGetter attaches a get accessor to a property.
func (t *Table) AddGetter(prop SymbolID, access Accessibility) SymbolID {
	p := t.Symbols.Get(prop)
	if p == nil {
		return NoSymbolID
	}
	id := t.NewMethod(p.Container, "get_"+t.propertyMetadataName(p), MethodPropertyGet, access, p.Type)
	t.linkAccessor(prop, id)
	t.Symbols.Get(prop).Getter = id
	return id
}

// AddSetter attaches a set (or init) accessor to a property.
func (t *Table) AddSetter(prop SymbolID, access Accessibility, initOnly bool) SymbolID {
	voidType := t.SpecialType(SpecialVoid)
	p := t.Symbols.Get(prop)
	if p == nil {
		return NoSymbolID
	}
	id := t.NewMethod(p.Container, "set_"+t.propertyMetadataName(p), MethodPropertySet, access, voidType)
	if initOnly {
		t.Symbols.Get(id).Flags |= FlagInitOnly
	}
	t.linkAccessor(prop, id)
	t.Symbols.Get(prop).Setter = id
	return id
}

// NoType is the absent type of constructors and destructors.
const NoType = types.NoTypeID

func (t *Table) linkAccessor(owner, accessor SymbolID) {
	acc := t.Symbols.Get(accessor)
	acc.Associated = owner
	o := t.Symbols.Get(owner)
	acc.Modifiers |= o.Modifiers & (ModStatic | ModAbstract | ModVirtual | ModOverride | ModSealed)
	for _, p := range o.Params {
		src := t.Symbols.Get(p)
		t.NewParameter(accessor, t.Strings.MustLookup(src.Name), src.Type, src.RefKind)
	}
}

// NewEvent declares an event with add and remove accessors.
func (t *Table) NewEvent(container SymbolID, name string, typ types.TypeID, access Accessibility) SymbolID {
	voidType := t.SpecialType(SpecialVoid)
	id := t.add(container, Symbol{
		Name:   t.Strings.Intern(name),
		Kind:   SymbolEvent,
		Type:   typ,
		Access: access,
	}, true)
	add := t.NewMethod(container, "add_"+name, MethodEventAdd, access, voidType)
	t.linkAccessor(id, add)
	t.NewParameter(add, "value", typ, types.RefNone)
	remove := t.NewMethod(container, "remove_"+name, MethodEventRemove, access, voidType)
	t.linkAccessor(id, remove)
	t.NewParameter(remove, "value", typ, types.RefNone)
	ev := t.Symbols.Get(id)
	ev.Adder = add
	ev.Remover = remove
	return id
}

// NewLocal declares a local variable owned by a method.
func (t *Table) NewLocal(owner SymbolID, name string, typ types.TypeID) SymbolID {
	return t.add(owner, Symbol{
		Name: t.Strings.Intern(name),
		Kind: SymbolLocal,
		Type: typ,
	}, false)
}

// NewRangeVariable declares a query range variable.
func (t *Table) NewRangeVariable(owner SymbolID, name string) SymbolID {
	return t.add(owner, Symbol{
		Name: t.Strings.Intern(name),
		Kind: SymbolRangeVariable,
	}, false)
}

// NewLabel declares a statement label.
func (t *Table) NewLabel(owner SymbolID, name string) SymbolID {
	return t.add(owner, Symbol{
		Name: t.Strings.Intern(name),
		Kind: SymbolLabel,
	}, false)
}

// NewAlias declares a using alias naming target.
func (t *Table) NewAlias(name string, target SymbolID) SymbolID {
	return t.add(NoSymbolID, Symbol{
		Name:   t.Strings.Intern(name),
		Kind:   SymbolAlias,
		Target: target,
	}, false)
}

// ReduceExtension produces the instance form of an extension method invoked
// on receiver. The receiver parameter is dropped from the reduced form, and
// type parameters the receiver fixes are substituted into the return type,
// the remaining parameters and the type argument list.
func (t *Table) ReduceExtension(method SymbolID, receiver types.TypeID) SymbolID {
	src := t.Symbols.Get(method)
	if src == nil || src.Flags&FlagExtensionMethod == 0 || len(src.Params) == 0 {
		return NoSymbolID
	}
	decls := make([]types.DeclID, len(src.TypeParams))
	for i, tp := range src.TypeParams {
		decls[i] = types.DeclID(tp)
	}
	bound := types.Bindings{}
	if recv := t.Symbols.Get(src.Params[0]); recv != nil && len(decls) > 0 {
		if !t.Types.Infer(recv.Type, receiver, decls, bound) {
			clear(bound)
		}
	}

	reduced := *src
	reduced.ReducedFrom = method
	reduced.ReceiverType = receiver
	reduced.Type = t.Types.Substitute(src.Type, bound)
	reduced.Params = nil
	reduced.Members = nil
	reduced.TypeParams = slices.Clone(src.TypeParams)
	reduced.TypeArgs = nil
	if len(decls) > 0 {
		reduced.TypeArgs = make([]types.TypeID, len(decls))
		for i, d := range decls {
			reduced.TypeArgs[i] = t.Types.Substitute(t.Types.TypeParam(d), bound)
		}
	}
	params := slices.Clone(src.Params[1:])
	id := t.Symbols.New(&reduced)

	out := make([]SymbolID, 0, len(params))
	for i, p := range params {
		param := *t.Symbols.Get(p)
		param.Type = t.Types.Substitute(param.Type, bound)
		param.Ordinal = i
		param.Flags &^= FlagThis
		out = append(out, t.add(id, param, false))
	}
	t.Symbols.Get(id).Params = out
	return id
}

// TypeOf returns the type reference for a type-declaring symbol.
func (t *Table) TypeOf(id SymbolID, args ...types.TypeID) types.TypeID {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return types.NoTypeID
	}
	switch sym.Kind {
	case SymbolNamedType:
		return t.Types.Named(types.DeclID(id), args...)
	case SymbolTypeParameter:
		return t.Types.TypeParam(types.DeclID(id))
	case SymbolErrorType:
		return t.Types.Error(types.DeclID(id))
	default:
		return types.NoTypeID
	}
}

// Decl returns the declaring symbol of a named, type-parameter or error type.
func (t *Table) Decl(id types.TypeID) SymbolID {
	tt, ok := t.Types.Lookup(id)
	if !ok {
		return NoSymbolID
	}
	switch tt.Kind {
	case types.KindNamed, types.KindTypeParam, types.KindError:
		return SymbolID(tt.Decl)
	}
	return NoSymbolID
}

// Special returns the System declaration of a special type, declaring it on
// first use.
func (t *Table) Special(st SpecialType) SymbolID {
	if id, ok := t.special[st]; ok {
		return id
	}
	if st == SpecialNone || st == SpecialValueTuple {
		return NoSymbolID
	}
	system := t.NamespacePath("System")
	kind := TypeStruct
	if st.IsReferenceType() {
		kind = TypeClass
	}
	id := t.NewType(system, st.MetadataName(), kind, AccessPublic)
	t.Symbols.Get(id).Special = st
	if st == SpecialNullable {
		t.NewTypeParameter(id, "T")
		t.Symbols.Get(id).MetadataName = "Nullable`1"
	}
	t.special[st] = id
	return id
}

// SpecialType returns the type reference of a special type.
func (t *Table) SpecialType(st SpecialType) types.TypeID {
	return t.TypeOf(t.Special(st))
}

// NullableOf wraps a value type in System.Nullable.
func (t *Table) NullableOf(elem types.TypeID) types.TypeID {
	return t.TypeOf(t.Special(SpecialNullable), elem)
}

// ValueTuple returns System.ValueTuple with the given arity (1..8).
func (t *Table) ValueTuple(arity int) SymbolID {
	if arity < 1 || arity > 8 {
		return NoSymbolID
	}
	if id, ok := t.tuples[arity]; ok {
		return id
	}
	system := t.NamespacePath("System")
	id := t.NewType(system, "ValueTuple", TypeStruct, AccessPublic)
	sym := t.Symbols.Get(id)
	sym.Special = SpecialValueTuple
	sym.MetadataName = "ValueTuple`" + strconv.Itoa(arity)
	for i := range arity {
		name := "T" + strconv.Itoa(i+1)
		if i == 7 {
			name = "TRest"
		}
		t.NewTypeParameter(id, name)
	}
	t.tuples[arity] = id
	return id
}

// LookupValueTuple returns System.ValueTuple of the given arity without
// declaring it.
func (t *Table) LookupValueTuple(arity int) (SymbolID, bool) {
	id, ok := t.tuples[arity]
	return id, ok
}

// ContainingType returns the nearest enclosing named type, if any.
func (t *Table) ContainingType(id SymbolID) SymbolID {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return NoSymbolID
	}
	for c := sym.Container; c.IsValid(); c = t.Symbols.Get(c).Container {
		if t.Symbols.Get(c).Kind == SymbolNamedType {
			return c
		}
	}
	return NoSymbolID
}

// Path renders a dotted declaration path for listings and lookups.
func (t *Table) Path(id SymbolID) string {
	var parts []string
	for cur := id; cur.IsValid(); {
		sym := t.Symbols.Get(cur)
		if sym == nil || sym.IsGlobalNamespace() {
			break
		}
		parts = append(parts, t.Strings.MustLookup(sym.Name))
		cur = sym.Container
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// Find resolves a dotted path from the global namespace, taking the first
// member with each name.
func (t *Table) Find(path string) SymbolID {
	cur := t.global
	if path == "" {
		return cur
	}
	for part := range strings.SplitSeq(path, ".") {
		found := t.MembersNamed(cur, part)
		if len(found) == 0 {
			if sym := t.Symbols.Get(cur); sym != nil {
				found = t.findIn(sym.TypeParams, part)
				if len(found) == 0 {
					found = t.findIn(sym.Params, part)
				}
			}
		}
		if len(found) == 0 {
			return NoSymbolID
		}
		cur = found[0]
	}
	return cur
}

func (t *Table) findIn(ids []SymbolID, name string) []SymbolID {
	for _, id := range ids {
		if t.Name(id) == name {
			return []SymbolID{id}
		}
	}
	return nil
}
