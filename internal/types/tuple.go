package types

import "slices"

// TupleInfo stores the element types and optional element names of a tuple.
type TupleInfo struct {
	Elems []TypeID
	Names []string // nil or one entry per element; "" for unnamed elements
}

// Named reports whether any element carries a name.
func (t *TupleInfo) Named() bool {
	for _, n := range t.Names {
		if n != "" {
			return true
		}
	}
	return false
}

// Tuple creates or finds a tuple type.
func (in *Interner) Tuple(elems []TypeID, names []string) TypeID {
	if len(names) != 0 && len(names) != len(elems) {
		names = nil
	}
	for i := 1; i < len(in.tuples); i++ {
		info := in.tuples[i]
		if slices.Equal(info.Elems, elems) && slices.Equal(info.Names, names) {
			return in.Intern(Type{Kind: KindTuple, Payload: slot(i, "tuple")})
		}
	}
	in.tuples = append(in.tuples, TupleInfo{
		Elems: cloneTypeArgs(elems),
		Names: slices.Clone(names),
	})
	return in.Intern(Type{Kind: KindTuple, Payload: slot(len(in.tuples)-1, "tuple")})
}

// TupleInfo returns the element data for a tuple TypeID.
func (in *Interner) TupleInfo(id TypeID) (*TupleInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTuple {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.tuples) {
		return nil, false
	}
	return &in.tuples[tt.Payload], true
}
