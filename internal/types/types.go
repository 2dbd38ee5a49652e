package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// IsValid reports whether the id refers to an interned type.
func (id TypeID) IsValid() bool { return id != NoTypeID }

// DeclID is the opaque handle of the symbol that declares a named type,
// type parameter or error type. It carries a symbols.SymbolID value.
type DeclID uint32

// Kind enumerates the shapes a type reference can take.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNamed
	KindTypeParam
	KindArray
	KindPointer
	KindFunctionPointer
	KindTuple
	KindDynamic
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNamed:
		return "named"
	case KindTypeParam:
		return "type-param"
	case KindArray:
		return "array"
	case KindPointer:
		return "pointer"
	case KindFunctionPointer:
		return "function-pointer"
	case KindTuple:
		return "tuple"
	case KindDynamic:
		return "dynamic"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Annotation is the nullable-reference annotation attached to a type use.
type Annotation uint8

const (
	AnnotationOblivious Annotation = iota
	AnnotationNullable
	AnnotationNotNull
)

// RefKind describes by-reference passing of parameters and returns.
type RefKind uint8

const (
	RefNone RefKind = iota
	RefRef
	RefOut
	RefIn
	RefReadOnly
)

func (r RefKind) String() string {
	switch r {
	case RefRef:
		return "ref"
	case RefOut:
		return "out"
	case RefIn:
		return "in"
	case RefReadOnly:
		return "ref readonly"
	default:
		return ""
	}
}

// Type is a compact descriptor for any type reference.
type Type struct {
	Kind       Kind
	Elem       TypeID // arrays and pointers
	Rank       uint8  // arrays; 1 for T[]
	Decl       DeclID // named types, type parameters, error types
	Annotation Annotation
	Native     bool   // nint/nuint over IntPtr/UIntPtr
	Payload    uint32 // side-table slot for named args, tuples, function pointers
}
