package project

import (
	"math/big"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"

	"symdisplay/internal/display"
	"symdisplay/internal/source"
	"symdisplay/internal/symbols"
	"symdisplay/internal/types"
)

// DefaultFile is the file id scopes and aliases use when none is given.
const DefaultFile = source.FileID(1)

// Entry is one renderable declaration of a project.
type Entry struct {
	Path string
	ID   symbols.SymbolID
}

// Project is a loaded symbol graph with its rendering configuration.
type Project struct {
	Path    string
	Digest  Digest
	Table   *symbols.Table
	Format  display.Format
	Entries []Entry

	byPath map[string]symbols.SymbolID
}

// Lookup resolves an entry path, falling back to a dotted walk of the table.
func (p *Project) Lookup(path string) (symbols.SymbolID, bool) {
	if id, ok := p.byPath[path]; ok {
		return id, true
	}
	id := p.Table.Find(path)
	return id, id.IsValid()
}

// ScopeAt returns the lexical position used for minimal rendering.
func (p *Project) ScopeAt(file source.FileID, offset uint32) symbols.ScopeView {
	return p.Table.ScopeAt(file, offset)
}

// Load reads, decodes and builds the manifest at path.
func Load(path string) (*Project, error) {
	m, data, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	p, err := Build(m)
	if err != nil {
		return nil, errors.Errorf("%s: %w", path, err)
	}
	p.Path = path
	p.Digest = HashContent(data)
	return p, nil
}

// Build declares every namespace, type, member, alias and scope of m in a
// fresh table.
func Build(m *Manifest) (*Project, error) {
	tab := symbols.NewTable(symbols.Hints{}, nil)
	b := &builder{
		tab:  tab,
		res:  newResolver(tab),
		vals: valueConverter{tab: tab},
		proj: &Project{Table: tab, byPath: make(map[string]symbols.SymbolID)},
	}
	f, err := BuildFormat(m.Format)
	if err != nil {
		return nil, err
	}
	b.proj.Format = f

	for _, ns := range m.Namespaces {
		container := tab.NamespacePath(ns.Name)
		for _, td := range ns.Types {
			if err := b.declareType(container, td); err != nil {
				return nil, err
			}
		}
	}
	for _, td := range m.Types {
		if err := b.declareType(tab.Global(), td); err != nil {
			return nil, err
		}
	}
	for _, pt := range b.pending {
		if err := b.completeHeader(pt); err != nil {
			return nil, b.wrap(err, pt.id)
		}
	}
	for _, pt := range b.pending {
		if pt.decl.Kind != "enum" {
			continue
		}
		if err := b.enumMembers(pt); err != nil {
			return nil, b.wrap(err, pt.id)
		}
	}
	for _, pt := range b.pending {
		if pt.decl.Kind == "enum" {
			continue
		}
		for _, md := range pt.decl.Members {
			if err := b.member(pt.id, md); err != nil {
				return nil, errors.WithDetails(b.wrap(err, pt.id), "member", md.Name)
			}
		}
	}
	if err := b.scopes(m); err != nil {
		return nil, err
	}
	if err := tab.Validate(); err != nil {
		return nil, errors.WrapWith(err, ErrManifest)
	}
	return b.proj, nil
}

// BuildFormat applies a [format] section on top of its preset.
func BuildFormat(s FormatSection) (display.Format, error) {
	f, ok := display.Preset(s.Preset)
	if !ok {
		return display.Format{}, errors.WithDetails(display.ErrUnknownOption, "group", "preset", "option", s.Preset)
	}
	single := []struct {
		group, name string
	}{
		{"qualification", s.Qualification},
		{"global", s.Global},
		{"delegate", s.Delegate},
		{"extension", s.Extension},
		{"property", s.Property},
	}
	for _, o := range single {
		if o.name == "" {
			continue
		}
		var err error
		if f, err = f.Set(o.group, o.name); err != nil {
			return display.Format{}, err
		}
	}
	lists := []struct {
		group string
		names []string
	}{
		{"generics", s.Generics},
		{"members", s.Members},
		{"parameters", s.Parameters},
		{"kinds", s.Kinds},
		{"locals", s.Locals},
		{"misc", s.Misc},
		{"internal", s.Internal},
	}
	for _, o := range lists {
		for _, name := range o.names {
			var err error
			if f, err = f.Set(o.group, name); err != nil {
				return display.Format{}, err
			}
		}
	}
	return f, nil
}

type pendingType struct {
	id   symbols.SymbolID
	decl TypeDecl
}

type builder struct {
	tab     *symbols.Table
	res     *resolver
	vals    valueConverter
	proj    *Project
	pending []pendingType
}

func (b *builder) wrap(err error, id symbols.SymbolID) error {
	return errors.WithDetails(err, "symbol", b.tab.Path(id))
}

// record adds an entry; overloads get a "#n" suffix in declaration order.
func (b *builder) record(id symbols.SymbolID, path string) {
	key := path
	for n := 2; ; n++ {
		if _, taken := b.proj.byPath[key]; !taken {
			break
		}
		key = path + "#" + strconv.Itoa(n)
	}
	b.proj.byPath[key] = id
	b.proj.Entries = append(b.proj.Entries, Entry{Path: key, ID: id})
}

var typeKinds = map[string]symbols.TypeKind{
	"class":         symbols.TypeClass,
	"struct":        symbols.TypeStruct,
	"interface":     symbols.TypeInterface,
	"enum":          symbols.TypeEnum,
	"delegate":      symbols.TypeDelegate,
	"extension":     symbols.TypeExtension,
	"record":        symbols.TypeRecordClass,
	"record class":  symbols.TypeRecordClass,
	"record struct": symbols.TypeRecordStruct,
}

var accessibilities = map[string]symbols.Accessibility{
	"public":             symbols.AccessPublic,
	"private":            symbols.AccessPrivate,
	"internal":           symbols.AccessInternal,
	"protected":          symbols.AccessProtected,
	"protected internal": symbols.AccessProtectedInternal,
	"private protected":  symbols.AccessPrivateProtected,
}

func parseAccess(text string, fallback symbols.Accessibility) (symbols.Accessibility, error) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return fallback, nil
	}
	a, ok := accessibilities[text]
	if !ok {
		return 0, errors.WithDetails(ErrManifest, "access", text)
	}
	return a, nil
}

func parseModifiers(list []string) (symbols.Modifiers, error) {
	var mods symbols.Modifiers
	for _, text := range list {
		m, ok := symbols.ParseModifier(text)
		if !ok {
			return 0, errors.WithDetails(ErrManifest, "modifier", text)
		}
		mods |= m
	}
	return mods, nil
}

func (b *builder) declareType(container symbols.SymbolID, td TypeDecl) error {
	kindText := td.Kind
	if kindText == "" {
		kindText = "class"
	}
	kind, ok := typeKinds[kindText]
	if !ok {
		return errors.WithDetails(ErrManifest, "type", td.Name, "kind", td.Kind)
	}
	td.Kind = kindText
	fallback := symbols.AccessInternal
	if b.tab.Get(container).Kind == symbols.SymbolNamedType {
		fallback = symbols.AccessPrivate
	}
	access, err := parseAccess(td.Access, fallback)
	if err != nil {
		return errors.WithDetails(err, "type", td.Name)
	}
	mods, err := parseModifiers(td.Modifiers)
	if err != nil {
		return errors.WithDetails(err, "type", td.Name)
	}

	var id symbols.SymbolID
	if kind == symbols.TypeDelegate {
		id, _ = b.tab.NewDelegate(container, td.Name, access, types.NoTypeID)
	} else {
		id = b.tab.NewType(container, td.Name, kind, access)
	}
	sym := b.tab.Get(id)
	sym.Modifiers |= mods
	if td.Flags {
		sym.Flags |= symbols.FlagFlagsEnum
	}
	if td.Attribute {
		sym.Flags |= symbols.FlagAttributeType
	}
	b.typeParams(id, td.TypeParams)
	b.record(id, b.tab.Path(id))
	b.pending = append(b.pending, pendingType{id: id, decl: td})

	for _, nested := range td.Types {
		if err := b.declareType(id, nested); err != nil {
			return err
		}
	}
	return nil
}

// typeParams declares type parameters; an "in " or "out " prefix sets variance.
func (b *builder) typeParams(owner symbols.SymbolID, names []string) {
	for _, name := range names {
		variance := symbols.VarianceNone
		fields := strings.Fields(name)
		if len(fields) == 2 {
			switch fields[0] {
			case "in":
				variance = symbols.VarianceIn
			case "out":
				variance = symbols.VarianceOut
			}
			name = fields[1]
		}
		tp := b.tab.NewTypeParameter(owner, name)
		b.tab.Get(tp).Variance = variance
	}
}

var constraintKeywords = map[string]symbols.ConstraintFlags{
	"class":     symbols.ConstraintClass,
	"class?":    symbols.ConstraintNullableClass,
	"struct":    symbols.ConstraintStruct,
	"notnull":   symbols.ConstraintNotNull,
	"unmanaged": symbols.ConstraintUnmanaged,
	"new()":     symbols.ConstraintNew,
}

func (b *builder) constraints(owner symbols.SymbolID, clauses map[string][]string) error {
	for _, tp := range b.tab.Get(owner).TypeParams {
		list, ok := clauses[b.tab.Name(tp)]
		if !ok {
			continue
		}
		var c symbols.Constraints
		for _, item := range list {
			if flag, ok := constraintKeywords[strings.ReplaceAll(item, " ", "")]; ok {
				c.Flags |= flag
				continue
			}
			t, err := b.res.Type(item, owner)
			if err != nil {
				return err
			}
			c.Types = append(c.Types, t)
		}
		b.tab.Get(tp).Constraints = c
	}
	return nil
}

// completeHeader resolves what a type's declaration line refers to once
// every type name exists.
func (b *builder) completeHeader(pt pendingType) error {
	if err := b.constraints(pt.id, pt.decl.Constraints); err != nil {
		return err
	}
	sym := b.tab.Get(pt.id)
	switch sym.TypeKind {
	case symbols.TypeEnum:
		underlying := pt.decl.Underlying
		if underlying == "" {
			underlying = "int"
		}
		t, err := b.res.Type(underlying, pt.id)
		if err != nil {
			return err
		}
		b.tab.Get(pt.id).EnumUnderlying = t
	case symbols.TypeDelegate:
		invoke := sym.DelegateInvoke
		ret := pt.decl.Returns
		if ret == "" {
			ret = "void"
		}
		t, err := b.res.Type(ret, pt.id)
		if err != nil {
			return err
		}
		b.tab.Get(invoke).Type = t
		return b.params(invoke, pt.decl.Params)
	}
	return nil
}

// enumMembers declares enum constants. A member without a value continues
// from the previous one, starting at zero.
func (b *builder) enumMembers(pt pendingType) error {
	var next any = int64(0)
	for _, md := range pt.decl.Members {
		if md.Kind != "" && md.Kind != "enum_member" {
			return errors.WithDetails(ErrManifest, "member", md.Name, "kind", md.Kind)
		}
		raw := md.Value
		if raw == nil {
			raw = next
		}
		v, err := b.vals.enumValue(pt.id, raw)
		if err != nil {
			return errors.WithDetails(err, "member", md.Name)
		}
		id := b.tab.NewEnumMember(pt.id, md.Name, v)
		b.record(id, b.tab.Path(id))
		next = successor(v)
	}
	return nil
}

// successor spells v+1 in decimal so it converts back through the enum's
// underlying type like a declared value, overflow included.
func successor(v any) string {
	u, _ := toUint64(v)
	n := new(big.Int).SetUint64(u)
	switch v.(type) {
	case int8, int16, int32, int64:
		n.SetInt64(int64(u))
	}
	return n.Add(n, big.NewInt(1)).String()
}

func (b *builder) member(container symbols.SymbolID, md MemberDecl) error {
	fallback := symbols.AccessPrivate
	if b.tab.Get(container).TypeKind == symbols.TypeInterface {
		fallback = symbols.AccessPublic
	}
	access, err := parseAccess(md.Access, fallback)
	if err != nil {
		return err
	}
	mods, err := parseModifiers(md.Modifiers)
	if err != nil {
		return err
	}

	var id symbols.SymbolID
	switch md.Kind {
	case "method", "", "operator", "conversion", "constructor", "destructor":
		id, err = b.method(container, md, access)
	case "field":
		var t types.TypeID
		if t, err = b.res.Type(md.Type, container); err != nil {
			return err
		}
		if md.Value != nil || mods.Has(symbols.ModConst) {
			var v any
			if v, err = b.vals.convert(t, md.Value); err != nil {
				return err
			}
			id = b.tab.NewConstant(container, md.Name, t, access, v)
		} else {
			id = b.tab.NewField(container, md.Name, t, access)
		}
	case "property", "indexer":
		id, err = b.property(container, md, access, mods)
	case "event":
		var t types.TypeID
		if t, err = b.res.Type(md.Type, container); err != nil {
			return err
		}
		id = b.tab.NewEvent(container, md.Name, t, access)
	default:
		return errors.WithDetails(ErrManifest, "kind", md.Kind)
	}
	if err != nil {
		return err
	}

	sym := b.tab.Get(id)
	sym.Modifiers |= mods
	if md.Interface != "" {
		t, err := b.res.Type(md.Interface, container)
		if err != nil {
			return err
		}
		b.tab.Get(id).ExplicitInterface = t
		b.tab.Get(id).Flags |= symbols.FlagExplicitImpl
	}
	b.propagateToAccessors(id)

	path := b.tab.Path(id)
	b.record(id, path)
	for _, acc := range b.accessors(id) {
		b.record(acc.id, path+"."+acc.suffix)
	}
	if md.ReducedOn != "" {
		receiver, err := b.res.Type(md.ReducedOn, container)
		if err != nil {
			return err
		}
		if reduced := b.tab.ReduceExtension(id, receiver); reduced.IsValid() {
			b.record(reduced, path+"@"+md.ReducedOn)
		}
	}
	return b.locals(id, path, md.Locals)
}

func (b *builder) method(container symbols.SymbolID, md MemberDecl, access symbols.Accessibility) (symbols.SymbolID, error) {
	kind := symbols.MethodOrdinary
	name := md.Name
	switch md.Kind {
	case "constructor":
		kind, name = symbols.MethodConstructor, ".ctor"
		for _, m := range md.Modifiers {
			if m == "static" {
				kind, name = symbols.MethodStaticConstructor, ".cctor"
			}
		}
	case "destructor":
		kind, name = symbols.MethodDestructor, "Finalize"
	case "operator":
		kind = symbols.MethodOperator
		if !strings.HasPrefix(name, "op_") {
			return symbols.NoSymbolID, errors.WithDetails(ErrManifest, "operator", name)
		}
	case "conversion":
		kind, name = symbols.MethodConversion, "op_Explicit"
		if md.Implicit {
			name = "op_Implicit"
		}
	}
	if md.Interface != "" && kind == symbols.MethodOrdinary {
		name = md.Interface + "." + name
	}

	id := b.tab.NewMethod(container, name, kind, access, types.NoTypeID)
	b.typeParams(id, md.TypeParams)
	if err := b.constraints(id, md.Constraints); err != nil {
		return symbols.NoSymbolID, err
	}
	if kind != symbols.MethodConstructor && kind != symbols.MethodStaticConstructor && kind != symbols.MethodDestructor {
		ret := md.Type
		if ret == "" {
			ret = "void"
		}
		t, err := b.res.Type(ret, id)
		if err != nil {
			return symbols.NoSymbolID, err
		}
		rk, err := parseRef(md.Ref)
		if err != nil {
			return symbols.NoSymbolID, err
		}
		sym := b.tab.Get(id)
		sym.Type, sym.RefKind = t, rk
	}
	sym := b.tab.Get(id)
	if md.Extension {
		sym.Flags |= symbols.FlagExtensionMethod
		sym.Modifiers |= symbols.ModStatic
	}
	if md.Implicit {
		sym.Flags |= symbols.FlagImplicitConversion
	}
	if md.Checked {
		sym.Flags |= symbols.FlagChecked
	}
	if err := b.params(id, md.Params); err != nil {
		return symbols.NoSymbolID, err
	}
	if params := b.tab.Get(id).Params; md.Extension && len(params) > 0 {
		b.tab.Get(params[0]).Flags |= symbols.FlagThis
	}
	return id, nil
}

func (b *builder) params(owner symbols.SymbolID, list []ParamDecl) error {
	for _, pd := range list {
		t, err := b.res.Type(pd.Type, owner)
		if err != nil {
			return errors.WithDetails(err, "param", pd.Name)
		}
		rk, err := parseRef(pd.Ref)
		if err != nil {
			return errors.WithDetails(err, "param", pd.Name)
		}
		id := b.tab.NewParameter(owner, pd.Name, t, rk)
		sym := b.tab.Get(id)
		if pd.Params {
			sym.Flags |= symbols.FlagParams
		}
		if pd.This {
			sym.Flags |= symbols.FlagThis
		}
		if pd.Scoped {
			sym.Flags |= symbols.FlagScoped
		}
		if pd.Default != nil || pd.Optional {
			v, err := b.vals.convert(t, pd.Default)
			if err != nil {
				return errors.WithDetails(err, "param", pd.Name)
			}
			b.tab.SetDefault(id, v)
		}
	}
	return nil
}

// property declares a property or indexer with accessors such as "get",
// "private set" or "init".
func (b *builder) property(container symbols.SymbolID, md MemberDecl, access symbols.Accessibility, mods symbols.Modifiers) (symbols.SymbolID, error) {
	t, err := b.res.Type(md.Type, container)
	if err != nil {
		return symbols.NoSymbolID, err
	}
	name := md.Name
	if md.Kind == "indexer" {
		name = "this[]"
	}
	id := b.tab.NewProperty(container, name, t, access)
	sym := b.tab.Get(id)
	sym.Modifiers |= mods
	if sym.RefKind, err = parseRef(md.Ref); err != nil {
		return symbols.NoSymbolID, err
	}
	if err := b.params(id, md.Params); err != nil {
		return symbols.NoSymbolID, err
	}
	accessors := md.Accessors
	if len(accessors) == 0 {
		accessors = []string{"get", "set"}
	}
	for _, text := range accessors {
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		keyword := fields[len(fields)-1]
		accAccess, err := parseAccess(strings.Join(fields[:len(fields)-1], " "), access)
		if err != nil {
			return symbols.NoSymbolID, err
		}
		switch keyword {
		case "get":
			b.tab.AddGetter(id, accAccess)
		case "set":
			b.tab.AddSetter(id, accAccess, false)
		case "init":
			b.tab.AddSetter(id, accAccess, true)
		default:
			return symbols.NoSymbolID, errors.WithDetails(ErrManifest, "accessor", text)
		}
	}
	return id, nil
}

type accessorEntry struct {
	id     symbols.SymbolID
	suffix string
}

func (b *builder) accessors(id symbols.SymbolID) []accessorEntry {
	sym := b.tab.Get(id)
	var out []accessorEntry
	for _, acc := range []accessorEntry{
		{sym.Getter, "get"}, {sym.Setter, "set"}, {sym.Adder, "add"}, {sym.Remover, "remove"},
	} {
		if acc.id.IsValid() {
			out = append(out, acc)
		}
	}
	return out
}

// propagateToAccessors copies modifiers and the explicit interface declared
// on a property or event after its accessors were created.
func (b *builder) propagateToAccessors(id symbols.SymbolID) {
	sym := b.tab.Get(id)
	for _, acc := range b.accessors(id) {
		a := b.tab.Get(acc.id)
		a.Modifiers |= sym.Modifiers & (symbols.ModStatic | symbols.ModAbstract | symbols.ModVirtual | symbols.ModOverride | symbols.ModSealed)
		a.ExplicitInterface = sym.ExplicitInterface
	}
}

func (b *builder) locals(owner symbols.SymbolID, path string, list []LocalDecl) error {
	for _, ld := range list {
		var id symbols.SymbolID
		switch ld.Kind {
		case "", "local":
			t, err := b.res.Type(ld.Type, owner)
			if err != nil {
				return errors.WithDetails(err, "local", ld.Name)
			}
			id = b.tab.NewLocal(owner, ld.Name, t)
			sym := b.tab.Get(id)
			if sym.RefKind, err = parseRef(ld.Ref); err != nil {
				return err
			}
			if ld.Value != nil {
				v, err := b.vals.convert(t, ld.Value)
				if err != nil {
					return errors.WithDetails(err, "local", ld.Name)
				}
				sym = b.tab.Get(id)
				sym.Modifiers |= symbols.ModConst
				sym.Constant = &symbols.ConstantValue{Value: v}
			}
		case "range":
			id = b.tab.NewRangeVariable(owner, ld.Name)
		case "label":
			id = b.tab.NewLabel(owner, ld.Name)
		default:
			return errors.WithDetails(ErrManifest, "local", ld.Name, "kind", ld.Kind)
		}
		b.record(id, path+"."+ld.Name)
	}
	return nil
}

// scopes declares aliases and lexical scopes. Each scope nests inside the
// smallest previously declared scope of the same file that encloses it.
func (b *builder) scopes(m *Manifest) error {
	aliases := make(map[string]symbols.SymbolID)
	for _, ad := range m.Aliases {
		target := b.res.Symbol(ad.Target, b.tab.Global())
		if !target.IsValid() {
			return errors.WithDetails(ErrManifest, "alias", ad.Name, "target", ad.Target)
		}
		id := b.tab.NewAlias(ad.Name, target)
		aliases[ad.Name] = id
		b.record(id, ad.Name)
		file := source.FileID(ad.File)
		if file == 0 {
			file = DefaultFile
		}
		b.tab.AddAlias(b.tab.FileRoot(file, source.Span{File: file}), id)
	}

	type declared struct {
		id   symbols.ScopeID
		span source.Span
	}
	byFile := make(map[source.FileID][]declared)
	for i, sd := range m.Scopes {
		file := source.FileID(sd.File)
		if file == 0 {
			file = DefaultFile
		}
		span := source.Span{File: file, Start: sd.Start, End: sd.End}
		kind, owner, err := b.scopeOwner(sd)
		if err != nil {
			return errors.WithDetails(err, "scope", i)
		}
		parent := b.tab.FileRoot(file, source.Span{File: file})
		for _, d := range byFile[file] {
			if d.span.Encloses(span) {
				parent = d.id
			}
		}
		id := b.tab.NewScope(kind, parent, owner, span)
		byFile[file] = append(byFile[file], declared{id: id, span: span})
		for _, name := range sd.Imports {
			ns := b.res.Symbol(name, b.tab.Global())
			if !ns.IsValid() || b.tab.Get(ns).Kind != symbols.SymbolNamespace {
				return errors.WithDetails(ErrManifest, "scope", i, "import", name)
			}
			b.tab.Import(id, ns)
		}
		for _, name := range sd.Aliases {
			alias, ok := aliases[name]
			if !ok {
				return errors.WithDetails(ErrManifest, "scope", i, "alias", name)
			}
			b.tab.AddAlias(id, alias)
		}
	}
	return nil
}

func (b *builder) scopeOwner(sd ScopeDecl) (symbols.ScopeKind, symbols.SymbolID, error) {
	switch {
	case sd.Method != "":
		if id, ok := b.proj.Lookup(sd.Method); ok {
			return symbols.ScopeMethod, id, nil
		}
		return 0, symbols.NoSymbolID, errors.WithDetails(ErrManifest, "method", sd.Method)
	case sd.Type != "":
		if id := b.res.Symbol(sd.Type, b.tab.Global()); id.IsValid() {
			return symbols.ScopeType, id, nil
		}
		return 0, symbols.NoSymbolID, errors.WithDetails(ErrManifest, "type", sd.Type)
	case sd.Namespace != "":
		return symbols.ScopeNamespace, b.tab.NamespacePath(sd.Namespace), nil
	}
	return symbols.ScopeBlock, b.tab.Global(), nil
}
