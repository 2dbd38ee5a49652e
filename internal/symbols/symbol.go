package symbols

import (
	"symdisplay/internal/source"
	"symdisplay/internal/types"
)

// ConstantValue is a compile-time value; a nil Value is the null literal.
type ConstantValue struct {
	Value any
}

// Constraints hold the constraint clause of a type parameter. Types keep
// declaration order.
type Constraints struct {
	Flags ConstraintFlags
	Types []types.TypeID
}

// Empty reports whether no constraint is declared.
func (c Constraints) Empty() bool {
	return c.Flags == 0 && len(c.Types) == 0
}

// CustomModifier is a modopt/modreq annotation on a signature type.
type CustomModifier struct {
	Required bool
	Type     types.TypeID
}

// Symbol describes a declared program entity.
type Symbol struct {
	Name       source.StringID
	Kind       SymbolKind
	TypeKind   TypeKind
	MethodKind MethodKind
	Container  SymbolID
	Access     Accessibility
	Modifiers  Modifiers
	Flags      SymbolFlags
	Special    SpecialType
	Span       source.Span

	// Type is the declared type of fields, properties, events, parameters
	// and locals, and the return type of methods.
	Type    types.TypeID
	RefKind types.RefKind

	TypeParams  []SymbolID
	Params      []SymbolID
	Members     []SymbolID
	Ordinal     int
	Variance    Variance
	Constraints Constraints

	EnumUnderlying types.TypeID
	Constant       *ConstantValue
	Default        *ConstantValue

	ExplicitInterface types.TypeID
	Getter            SymbolID
	Setter            SymbolID
	Adder             SymbolID
	Remover           SymbolID
	Associated        SymbolID
	DelegateInvoke    SymbolID

	// Target is what an alias names.
	Target SymbolID
	// ReducedFrom links a reduced extension method to its static declaration;
	// ReceiverType is the type the reduced method was invoked on.
	ReducedFrom  SymbolID
	ReceiverType types.TypeID
	// TypeArgs parallels TypeParams on a reduced method. An entry is the type
	// inferred from the receiver, or the parameter's own type when the
	// receiver does not fix it.
	TypeArgs []types.TypeID

	MetadataName    string
	CustomModifiers []CustomModifier
	Documentation   string
}

// Is reports whether every flag in f is set.
func (s *Symbol) Is(f SymbolFlags) bool { return s.Flags&f == f }

// IsStatic reports the static modifier.
func (s *Symbol) IsStatic() bool { return s.Modifiers&ModStatic != 0 }

// IsGlobalNamespace reports the root namespace.
func (s *Symbol) IsGlobalNamespace() bool {
	return s.Kind == SymbolNamespace && s.Flags&FlagGlobalNamespace != 0
}

// Arity is the number of declared type parameters.
func (s *Symbol) Arity() int { return len(s.TypeParams) }
