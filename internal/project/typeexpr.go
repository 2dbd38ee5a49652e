package project

import (
	"strings"
	"unicode"

	"gitlab.com/tozd/go/errors"

	"symdisplay/internal/symbols"
	"symdisplay/internal/types"
)

var keywordTypes = map[string]symbols.SpecialType{
	"object":  symbols.SpecialObject,
	"void":    symbols.SpecialVoid,
	"bool":    symbols.SpecialBoolean,
	"char":    symbols.SpecialChar,
	"sbyte":   symbols.SpecialSByte,
	"byte":    symbols.SpecialByte,
	"short":   symbols.SpecialInt16,
	"ushort":  symbols.SpecialUInt16,
	"int":     symbols.SpecialInt32,
	"uint":    symbols.SpecialUInt32,
	"long":    symbols.SpecialInt64,
	"ulong":   symbols.SpecialUInt64,
	"float":   symbols.SpecialSingle,
	"double":  symbols.SpecialDouble,
	"decimal": symbols.SpecialDecimal,
	"string":  symbols.SpecialString,
}

var refKinds = map[string]types.RefKind{
	"":             types.RefNone,
	"ref":          types.RefRef,
	"out":          types.RefOut,
	"in":           types.RefIn,
	"ref readonly": types.RefReadOnly,
}

func parseRef(text string) (types.RefKind, error) {
	rk, ok := refKinds[strings.Join(strings.Fields(text), " ")]
	if !ok {
		return types.RefNone, errors.WithDetails(ErrManifest, "ref", text)
	}
	return rk, nil
}

// resolver turns type expressions into interned types. Names are looked up
// outward from ctx: type parameters first, then members of each container,
// then from the global namespace.
type resolver struct {
	tab    *symbols.Table
	errors map[string]symbols.SymbolID
}

func newResolver(tab *symbols.Table) *resolver {
	return &resolver{tab: tab, errors: make(map[string]symbols.SymbolID)}
}

// Type parses expr in the context of the symbol ctx. An empty expression is
// NoTypeID.
func (r *resolver) Type(expr string, ctx symbols.SymbolID) (types.TypeID, error) {
	if strings.TrimSpace(expr) == "" {
		return types.NoTypeID, nil
	}
	p := &typeParser{r: r, ctx: ctx, toks: tokenize(expr)}
	t, err := p.parseType()
	if err != nil {
		return types.NoTypeID, errors.WithDetails(err, "type", expr)
	}
	if !p.done() {
		return types.NoTypeID, errors.WithDetails(ErrManifest, "type", expr, "unexpected", p.peek())
	}
	return t, nil
}

// Symbol resolves a dotted name to a type or namespace symbol without
// creating error types.
func (r *resolver) Symbol(name string, ctx symbols.SymbolID) symbols.SymbolID {
	parts := strings.Split(name, ".")
	cur := r.lookupSimple(parts[0], ctx)
	for _, part := range parts[1:] {
		if !cur.IsValid() {
			return symbols.NoSymbolID
		}
		cur = r.member(cur, part)
	}
	return cur
}

func (r *resolver) lookupSimple(name string, ctx symbols.SymbolID) symbols.SymbolID {
	for c := ctx; c.IsValid(); {
		sym := r.tab.Get(c)
		if sym == nil {
			break
		}
		for _, tp := range sym.TypeParams {
			if r.tab.Name(tp) == name {
				return tp
			}
		}
		if id := r.member(c, name); id.IsValid() {
			return id
		}
		c = sym.Container
	}
	return r.member(r.tab.Global(), name)
}

func (r *resolver) member(container symbols.SymbolID, name string) symbols.SymbolID {
	for _, id := range r.tab.MembersNamed(container, name) {
		switch r.tab.Get(id).Kind {
		case symbols.SymbolNamespace, symbols.SymbolNamedType:
			return id
		}
	}
	return symbols.NoSymbolID
}

func (r *resolver) errorType(name string, arity int) types.TypeID {
	id, ok := r.errors[name]
	if !ok {
		id = r.tab.NewErrorType(r.tab.Global(), name, arity)
		r.errors[name] = id
	}
	return r.tab.TypeOf(id)
}

// ensureTuple declares the System.ValueTuple chain backing an n-element tuple.
func (r *resolver) ensureTuple(n int) {
	for n > 7 {
		r.tab.ValueTuple(8)
		n -= 7
	}
	if n >= 1 {
		r.tab.ValueTuple(n)
	}
}

func (r *resolver) isValueType(t types.TypeID) bool {
	tt, ok := r.tab.Types.Lookup(t)
	if !ok {
		return false
	}
	switch tt.Kind {
	case types.KindNamed:
		sym := r.tab.Get(symbols.SymbolID(tt.Decl))
		return sym != nil && sym.TypeKind.IsValueType()
	case types.KindTuple:
		return true
	case types.KindTypeParam:
		sym := r.tab.Get(symbols.SymbolID(tt.Decl))
		return sym != nil && sym.Constraints.Flags&(symbols.ConstraintStruct|symbols.ConstraintUnmanaged) != 0
	}
	return false
}

func tokenize(s string) []string {
	var toks []string
	for i := 0; i < len(s); {
		c := rune(s[i])
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '@' || c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c):
			j := i + 1
			for j < len(s) && (s[j] == '_' || unicode.IsLetter(rune(s[j])) || unicode.IsDigit(rune(s[j]))) {
				j++
			}
			toks = append(toks, s[i:j])
			i = j
		default:
			toks = append(toks, s[i:i+1])
			i++
		}
	}
	return toks
}

type typeParser struct {
	r    *resolver
	ctx  symbols.SymbolID
	toks []string
	pos  int
}

func (p *typeParser) done() bool { return p.pos >= len(p.toks) }

func (p *typeParser) peek() string {
	if p.done() {
		return ""
	}
	return p.toks[p.pos]
}

func (p *typeParser) next() string {
	tok := p.peek()
	p.pos++
	return tok
}

func (p *typeParser) accept(tok string) bool {
	if p.peek() == tok {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) expect(tok string) error {
	if !p.accept(tok) {
		return errors.WithDetails(ErrManifest, "expected", tok, "got", p.peek())
	}
	return nil
}

func isIdent(tok string) bool {
	if tok == "" {
		return false
	}
	c := rune(tok[0])
	return c == '@' || c == '_' || unicode.IsLetter(c)
}

func (p *typeParser) parseType() (types.TypeID, error) {
	var (
		t   types.TypeID
		err error
	)
	switch {
	case p.peek() == "(":
		t, err = p.parseTuple()
	case p.peek() == "delegate":
		t, err = p.parseFunctionPointer()
	case isIdent(p.peek()):
		t, err = p.parseName()
	default:
		return types.NoTypeID, errors.WithDetails(ErrManifest, "unexpected", p.peek())
	}
	if err != nil {
		return types.NoTypeID, err
	}
	return p.parseSuffixes(t)
}

// parseSuffixes applies array, nullable and pointer suffixes. Consecutive
// rank specifiers read outermost first, so C[][,] is an array of C[,].
func (p *typeParser) parseSuffixes(t types.TypeID) (types.TypeID, error) {
	var ranks []uint8
	flush := func() {
		for i := len(ranks) - 1; i >= 0; i-- {
			t = p.r.tab.Types.Array(t, ranks[i])
		}
		ranks = ranks[:0]
	}
	for {
		switch p.peek() {
		case "[":
			p.next()
			rank := uint8(1)
			for p.accept(",") {
				rank++
			}
			if err := p.expect("]"); err != nil {
				return types.NoTypeID, err
			}
			ranks = append(ranks, rank)
		case "?":
			p.next()
			flush()
			if p.r.isValueType(t) {
				t = p.r.tab.NullableOf(t)
			} else {
				t = p.r.tab.Types.Annotate(t, types.AnnotationNullable)
			}
		case "!":
			p.next()
			flush()
			t = p.r.tab.Types.Annotate(t, types.AnnotationNotNull)
		case "*":
			p.next()
			flush()
			t = p.r.tab.Types.Pointer(t)
		default:
			flush()
			return t, nil
		}
	}
}

func (p *typeParser) parseTuple() (types.TypeID, error) {
	if err := p.expect("("); err != nil {
		return types.NoTypeID, err
	}
	var (
		elems []types.TypeID
		names []string
		named bool
	)
	for {
		elem, err := p.parseType()
		if err != nil {
			return types.NoTypeID, err
		}
		name := ""
		if isIdent(p.peek()) {
			name = p.next()
			named = true
		}
		elems = append(elems, elem)
		names = append(names, name)
		if !p.accept(",") {
			break
		}
	}
	if err := p.expect(")"); err != nil {
		return types.NoTypeID, err
	}
	if len(elems) < 2 {
		return types.NoTypeID, errors.WithDetails(ErrManifest, "tuple_elements", len(elems))
	}
	if !named {
		names = nil
	}
	p.r.ensureTuple(len(elems))
	return p.r.tab.Types.Tuple(elems, names), nil
}

// parseFunctionPointer reads delegate*<...> and delegate* unmanaged[Conv]<...>.
func (p *typeParser) parseFunctionPointer() (types.TypeID, error) {
	p.next()
	if err := p.expect("*"); err != nil {
		return types.NoTypeID, err
	}
	var info types.FnPtrInfo
	if isIdent(p.peek()) {
		conv := p.next()
		if p.accept("[") {
			var inner []string
			for !p.done() && p.peek() != "]" {
				inner = append(inner, p.next())
			}
			if err := p.expect("]"); err != nil {
				return types.NoTypeID, err
			}
			conv += "[" + strings.Join(inner, "") + "]"
		}
		info.Convention = conv
	}
	if err := p.expect("<"); err != nil {
		return types.NoTypeID, err
	}
	var sig []types.FnParam
	for {
		ref, err := p.parseRefPrefix()
		if err != nil {
			return types.NoTypeID, err
		}
		t, err := p.parseType()
		if err != nil {
			return types.NoTypeID, err
		}
		if isIdent(p.peek()) {
			p.next()
		}
		sig = append(sig, types.FnParam{Type: t, Ref: ref})
		if !p.accept(",") {
			break
		}
	}
	if err := p.expect(">"); err != nil {
		return types.NoTypeID, err
	}
	last := sig[len(sig)-1]
	info.Params = sig[:len(sig)-1]
	info.Result, info.ResultRef = last.Type, last.Ref
	return p.r.tab.Types.FunctionPointer(info), nil
}

func (p *typeParser) parseRefPrefix() (types.RefKind, error) {
	switch p.peek() {
	case "ref":
		p.next()
		if p.accept("readonly") {
			return types.RefReadOnly, nil
		}
		return types.RefRef, nil
	case "out":
		p.next()
		return types.RefOut, nil
	case "in":
		p.next()
		return types.RefIn, nil
	}
	return types.RefNone, nil
}

func (p *typeParser) parseArgs() ([]types.TypeID, error) {
	if !p.accept("<") {
		return nil, nil
	}
	var args []types.TypeID
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, t)
		if !p.accept(",") {
			break
		}
	}
	return args, p.expect(">")
}

func (p *typeParser) parseName() (types.TypeID, error) {
	first := p.next()
	if st, ok := keywordTypes[first]; ok {
		return p.r.tab.SpecialType(st), nil
	}
	switch first {
	case "dynamic":
		return p.r.tab.Types.Dynamic(), nil
	case "nint":
		return p.r.tab.Types.NativeInt(p.r.tab.SpecialType(symbols.SpecialIntPtr)), nil
	case "nuint":
		return p.r.tab.Types.NativeInt(p.r.tab.SpecialType(symbols.SpecialUIntPtr)), nil
	}

	path := []string{first}
	args, err := p.parseArgs()
	if err != nil {
		return types.NoTypeID, err
	}
	for p.peek() == "." {
		p.next()
		if !isIdent(p.peek()) {
			return types.NoTypeID, errors.WithDetails(ErrManifest, "unexpected", p.peek())
		}
		path = append(path, p.next())
		if args, err = p.parseArgs(); err != nil {
			return types.NoTypeID, err
		}
	}

	name := strings.Join(path, ".")
	id := p.r.Symbol(name, p.ctx)
	if id.IsValid() && p.r.tab.Get(id).Kind == symbols.SymbolNamespace {
		id = symbols.NoSymbolID
	}
	if !id.IsValid() {
		return p.r.errorType(name, len(args)), nil
	}
	if st := p.r.tab.Get(id).Special; st == symbols.SpecialNullable && len(args) == 1 {
		return p.r.tab.NullableOf(args[0]), nil
	}
	return p.r.tab.TypeOf(id, args...), nil
}
