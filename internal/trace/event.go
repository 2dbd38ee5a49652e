package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	ScopeBatch   Scope = iota + 1 // one CLI invocation or RenderAll call
	ScopePhase                    // load, render, export
	ScopeRequest                  // one symbol or type rendering
	ScopePart                     // individual display parts
)

func (s Scope) String() string {
	switch s {
	case ScopeBatch:
		return "batch"
	case ScopePhase:
		return "phase"
	case ScopeRequest:
		return "request"
	case ScopePart:
		return "part"
	default:
		return "unknown"
	}
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans
	Name     string // e.g. "render", "request:N1.C.M"
	Detail   string
	Extra    map[string]string
}
