package types

import "slices"

// FnParam is one parameter of a function pointer signature.
type FnParam struct {
	Type TypeID
	Ref  RefKind
}

// FnPtrInfo stores a function pointer signature.
type FnPtrInfo struct {
	Params     []FnParam
	Result     TypeID
	ResultRef  RefKind
	Convention string // "" for managed; otherwise e.g. "unmanaged[Cdecl]"
}

func (f FnPtrInfo) equal(o FnPtrInfo) bool {
	return f.Result == o.Result && f.ResultRef == o.ResultRef &&
		f.Convention == o.Convention && slices.Equal(f.Params, o.Params)
}

// FunctionPointer creates or finds a delegate* type.
func (in *Interner) FunctionPointer(info FnPtrInfo) TypeID {
	for i := 1; i < len(in.fnptrs); i++ {
		if in.fnptrs[i].equal(info) {
			return in.Intern(Type{Kind: KindFunctionPointer, Payload: slot(i, "fnptr")})
		}
	}
	info.Params = slices.Clone(info.Params)
	in.fnptrs = append(in.fnptrs, info)
	return in.Intern(Type{Kind: KindFunctionPointer, Payload: slot(len(in.fnptrs)-1, "fnptr")})
}

// FnPtrInfo retrieves a function pointer signature by TypeID.
func (in *Interner) FnPtrInfo(id TypeID) (*FnPtrInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFunctionPointer {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.fnptrs) {
		return nil, false
	}
	return &in.fnptrs[tt.Payload], true
}
