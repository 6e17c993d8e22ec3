package trace

import (
	"fmt"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Format represents the output format for trace events.
type Format uint8

const (
	FormatAuto   Format = iota // pick from the output path
	FormatText                 // human-readable text
	FormatNDJSON               // newline-delimited JSON
)

// FormatEvent formats an event according to the specified format.
func FormatEvent(ev Event, format Format) []byte {
	switch format {
	case FormatNDJSON:
		return formatNDJSON(ev)
	default:
		return formatText(ev)
	}
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Bundle   string            `json:"bundle,omitempty"`
	Name     string            `json:"name"`
	DurMS    float64           `json:"dur_ms,omitempty"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// formatNDJSON formats an event as newline-delimited JSON.
func formatNDJSON(ev Event) []byte {
	j := jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Bundle:   ev.Bundle,
		Name:     ev.Name,
		DurMS:    float64(ev.Dur) / float64(time.Millisecond),
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	}

	data, err := json.Marshal(j)
	if err != nil {
		data = []byte(fmt.Sprintf(`{"seq":%d,"error":%q}`, ev.Seq, err.Error()))
	}
	return append(data, '\n')
}

// formatText formats an event as human-readable text.
// Format: #seq [indent]→/← scope:name [bundle] 1.23ms (detail) {k=v}
func formatText(ev Event) []byte {
	var sb strings.Builder

	fmt.Fprintf(&sb, "#%06d ", ev.Seq)

	if ev.ParentID > 0 {
		sb.WriteString(strings.Repeat("  ", int(ev.Scope)-1))
	}

	switch ev.Kind {
	case KindSpanBegin:
		sb.WriteString("→ ") // →
	case KindSpanEnd:
		sb.WriteString("← ") // ←
	case KindPoint:
		sb.WriteString("• ") // •
	case KindHeartbeat:
		sb.WriteString("♡ ") // ♡
	}

	sb.WriteString(ev.Scope.String())
	sb.WriteByte(':')
	sb.WriteString(ev.Name)
	if ev.Bundle != "" {
		sb.WriteString(" [")
		sb.WriteString(ev.Bundle)
		sb.WriteByte(']')
	}
	if ev.Kind == KindSpanEnd && ev.Dur > 0 {
		fmt.Fprintf(&sb, " %.2fms", float64(ev.Dur)/float64(time.Millisecond))
	}

	if ev.Detail != "" {
		sb.WriteString(" (")
		sb.WriteString(ev.Detail)
		sb.WriteString(")")
	}

	if len(ev.Extra) > 0 {
		keys := make([]string, 0, len(ev.Extra))
		for k := range ev.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString("=")
			sb.WriteString(ev.Extra[k])
		}
		sb.WriteString("}")
	}

	sb.WriteString("\n")
	return []byte(sb.String())
}
