package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types  []Type
	index  map[Type]TypeID
	named  []NamedInfo
	tuples []TupleInfo
	fnptrs []FnPtrInfo
}

// NewInterner constructs an empty interner with the invalid sentinel reserved.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Type]TypeID, 64),
	}
	in.types = append(in.types, Type{Kind: KindInvalid})
	in.named = append(in.named, NamedInfo{})
	in.tuples = append(in.tuples, TupleInfo{})
	in.fnptrs = append(in.fnptrs, FnPtrInfo{})
	return in
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if in == nil || id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Len reports the number of interned types excluding the sentinel.
func (in *Interner) Len() int { return len(in.types) - 1 }

// TypeParam describes a use of a type parameter.
func (in *Interner) TypeParam(decl DeclID) TypeID {
	return in.Intern(Type{Kind: KindTypeParam, Decl: decl})
}

// Array describes an array of elem with the given rank; rank 0 is treated as 1.
func (in *Interner) Array(elem TypeID, rank uint8) TypeID {
	if rank == 0 {
		rank = 1
	}
	return in.Intern(Type{Kind: KindArray, Elem: elem, Rank: rank})
}

// Pointer describes T*.
func (in *Interner) Pointer(elem TypeID) TypeID {
	return in.Intern(Type{Kind: KindPointer, Elem: elem})
}

// Dynamic describes the dynamic type.
func (in *Interner) Dynamic() TypeID {
	return in.Intern(Type{Kind: KindDynamic})
}

// Error describes an unresolved type whose reported name lives on decl.
func (in *Interner) Error(decl DeclID) TypeID {
	return in.Intern(Type{Kind: KindError, Decl: decl})
}

// Annotate returns the same type carrying a different nullable annotation.
func (in *Interner) Annotate(id TypeID, ann Annotation) TypeID {
	tt, ok := in.Lookup(id)
	if !ok {
		return NoTypeID
	}
	tt.Annotation = ann
	return in.Intern(tt)
}

// NativeInt marks a named IntPtr/UIntPtr type as nint/nuint.
func (in *Interner) NativeInt(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindNamed {
		return id
	}
	tt.Native = true
	return in.Intern(tt)
}

// Strip removes the annotation, returning the unannotated identity.
func (in *Interner) Strip(id TypeID) TypeID {
	return in.Annotate(id, AnnotationOblivious)
}

func cloneTypeArgs(args []TypeID) []TypeID {
	if len(args) == 0 {
		return nil
	}
	return slices.Clone(args)
}

func slot(n int, what string) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("%s info overflow: %w", what, err))
	}
	return v
}
