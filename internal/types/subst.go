package types

import "slices"

// Bindings maps type parameter declarations to the types standing in for them.
type Bindings map[DeclID]TypeID

// Infer binds the type parameters in open (restricted to params) by matching
// it structurally against arg. Existing bindings are kept; a parameter already
// bound to a different type is left alone. It reports whether the shapes agree.
func (in *Interner) Infer(open, arg TypeID, params []DeclID, b Bindings) bool {
	ot, ok := in.Lookup(open)
	if !ok {
		return false
	}
	at, ok := in.Lookup(arg)
	if !ok {
		return false
	}
	if ot.Kind == KindTypeParam && slices.Contains(params, ot.Decl) {
		if ot.Annotation != AnnotationOblivious {
			arg = in.Strip(arg)
		}
		if prev, bound := b[ot.Decl]; bound {
			return in.Strip(prev) == in.Strip(arg)
		}
		b[ot.Decl] = arg
		return true
	}
	if ot.Kind != at.Kind {
		return false
	}
	switch ot.Kind {
	case KindArray:
		return ot.Rank == at.Rank && in.Infer(ot.Elem, at.Elem, params, b)
	case KindPointer:
		return in.Infer(ot.Elem, at.Elem, params, b)
	case KindNamed:
		if ot.Decl != at.Decl {
			return false
		}
		oargs, aargs := in.TypeArgs(open), in.TypeArgs(arg)
		if len(oargs) != len(aargs) {
			return false
		}
		for i := range oargs {
			if !in.Infer(oargs[i], aargs[i], params, b) {
				return false
			}
		}
		return true
	case KindTuple:
		oi, _ := in.TupleInfo(open)
		ai, _ := in.TupleInfo(arg)
		if oi == nil || ai == nil || len(oi.Elems) != len(ai.Elems) {
			return false
		}
		oelems, aelems := slices.Clone(oi.Elems), slices.Clone(ai.Elems)
		for i := range oelems {
			if !in.Infer(oelems[i], aelems[i], params, b) {
				return false
			}
		}
		return true
	default:
		return in.Strip(open) == in.Strip(arg)
	}
}

// Substitute rewrites id with every bound type parameter replaced. Types
// without bound parameters come back unchanged.
func (in *Interner) Substitute(id TypeID, b Bindings) TypeID {
	if len(b) == 0 {
		return id
	}
	tt, ok := in.Lookup(id)
	if !ok {
		return id
	}
	var out TypeID
	switch tt.Kind {
	case KindTypeParam:
		sub, bound := b[tt.Decl]
		if !bound {
			return id
		}
		if tt.Annotation == AnnotationOblivious {
			return sub
		}
		return in.Annotate(sub, tt.Annotation)
	case KindArray:
		out = in.Array(in.Substitute(tt.Elem, b), tt.Rank)
	case KindPointer:
		out = in.Pointer(in.Substitute(tt.Elem, b))
	case KindNamed:
		args := slices.Clone(in.TypeArgs(id))
		if len(args) == 0 {
			return id
		}
		for i, a := range args {
			args[i] = in.Substitute(a, b)
		}
		out = in.Named(tt.Decl, args...)
		if tt.Native {
			out = in.NativeInt(out)
		}
	case KindTuple:
		info, _ := in.TupleInfo(id)
		if info == nil {
			return id
		}
		elems, names := slices.Clone(info.Elems), slices.Clone(info.Names)
		for i, e := range elems {
			elems[i] = in.Substitute(e, b)
		}
		out = in.Tuple(elems, names)
	case KindFunctionPointer:
		info, _ := in.FnPtrInfo(id)
		if info == nil {
			return id
		}
		sig := *info
		sig.Params = slices.Clone(info.Params)
		for i := range sig.Params {
			sig.Params[i].Type = in.Substitute(sig.Params[i].Type, b)
		}
		sig.Result = in.Substitute(sig.Result, b)
		out = in.FunctionPointer(sig)
	default:
		return id
	}
	if tt.Annotation != AnnotationOblivious {
		out = in.Annotate(out, tt.Annotation)
	}
	return out
}
