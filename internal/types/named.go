package types

import "slices"

// NamedInfo stores the type arguments of a constructed named type.
type NamedInfo struct {
	Decl DeclID
	Args []TypeID
}

// Named creates or finds a named type, optionally constructed with args.
func (in *Interner) Named(decl DeclID, args ...TypeID) TypeID {
	if len(args) == 0 {
		return in.Intern(Type{Kind: KindNamed, Decl: decl})
	}
	for i := 1; i < len(in.named); i++ {
		info := in.named[i]
		if info.Decl == decl && slices.Equal(info.Args, args) {
			return in.Intern(Type{Kind: KindNamed, Decl: decl, Payload: slot(i, "named")})
		}
	}
	in.named = append(in.named, NamedInfo{Decl: decl, Args: cloneTypeArgs(args)})
	return in.Intern(Type{Kind: KindNamed, Decl: decl, Payload: slot(len(in.named)-1, "named")})
}

// TypeArgs returns the type arguments of a constructed named type.
func (in *Interner) TypeArgs(id TypeID) []TypeID {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindNamed || tt.Payload == 0 || int(tt.Payload) >= len(in.named) {
		return nil
	}
	return in.named[tt.Payload].Args
}
