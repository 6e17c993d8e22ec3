package trace

import (
	"sync/atomic"
	"time"
)

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint is an instant event (cache hit, load failure).
	KindPoint
	KindHeartbeat // periodic liveness signal
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent higher-level/coarser events.
type Scope uint8

const (
	// ScopeDriver covers a whole run (check, fix).
	ScopeDriver Scope = iota + 1
	// ScopeFile covers one bundle: load, rules, cache.
	ScopeFile
	// ScopeDecl covers one declaration (most detailed).
	ScopeDecl
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopeFile:
		return "file"
	case ScopeDecl:
		return "decl"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the sink, monotonic per process
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for a root span
	// Bundle is the bundle file the event belongs to; empty for run-level
	// events. Workers check bundles concurrently, so this is what groups
	// interleaved lines.
	Bundle string
	Name   string        // "check", "file", "decl:3 sum"
	Detail string        // optional detail message
	Dur    time.Duration // span length, end events only
	Extra  map[string]string
}

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

func nextSeq() uint64 { return seqCounter.Add(1) }

func nextSpanID() uint64 { return spanCounter.Add(1) }
