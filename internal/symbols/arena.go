package symbols

import (
	"iter"

	"fortio.org/safecast"
	"gitlab.com/tozd/go/errors"

	"symdisplay/internal/source"
)

// arena is a slice-backed store addressed by IDs; slot 0 is the reserved
// invalid ID, so the zero value of ID never resolves.
type arena[ID ~uint32, T any] struct {
	what string
	data []T
}

func newArena[ID ~uint32, T any](what string, capacity uint32) arena[ID, T] {
	return arena[ID, T]{what: what, data: make([]T, 1, capacity+1)}
}

func (a *arena[ID, T]) add(v T) ID {
	value, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(errors.Errorf("%s arena overflow: %w", a.what, err))
	}
	a.data = append(a.data, v)
	return ID(value)
}

// Get returns a pointer into the arena, or nil for an unknown ID. The
// pointer is invalidated by the next allocation.
func (a *arena[ID, T]) Get(id ID) *T {
	if id == 0 || int(id) >= len(a.data) {
		return nil
	}
	return &a.data[id]
}

// Len reports the number of stored values.
func (a *arena[ID, T]) Len() int { return len(a.data) - 1 }

// all yields every stored value in allocation order.
func (a *arena[ID, T]) all() iter.Seq2[ID, *T] {
	return func(yield func(ID, *T) bool) {
		for i := 1; i < len(a.data); i++ {
			if !yield(ID(i), &a.data[i]) {
				return
			}
		}
	}
}

// Scopes stores lexical scopes.
type Scopes struct {
	arena[ScopeID, Scope]
}

// NewScopes creates a scope arena with an optional capacity hint.
func NewScopes(capacity uint32) *Scopes {
	if capacity == 0 {
		capacity = 16
	}
	return &Scopes{newArena[ScopeID, Scope]("scopes", capacity)}
}

// New allocates a scope and links it under parent.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, owner SymbolID, span source.Span) ScopeID {
	id := s.add(Scope{
		Kind:      kind,
		Parent:    parent,
		Owner:     owner,
		Span:      span,
		NameIndex: make(map[source.StringID][]SymbolID),
	})
	if p := s.Get(parent); p != nil {
		p.Children = append(p.Children, id)
	}
	return id
}

// Symbols stores declared symbols.
type Symbols struct {
	arena[SymbolID, Symbol]
}

// NewSymbols creates a symbol arena with an optional capacity hint.
func NewSymbols(capacity uint32) *Symbols {
	if capacity == 0 {
		capacity = 64
	}
	return &Symbols{newArena[SymbolID, Symbol]("symbols", capacity)}
}

// New copies sym into the arena and returns its ID.
func (s *Symbols) New(sym *Symbol) SymbolID {
	if sym == nil {
		panic("symbols.New: nil symbol")
	}
	return s.add(*sym)
}
