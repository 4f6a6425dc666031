// Package metadata carries the immutable description of a callsite: its
// name, target, level, kind, and the FieldSet naming the fields a span
// or event created there may record.
package metadata

import (
	"github.com/dblnz/tracing/callsite"
	"github.com/dblnz/tracing/field"
)

// Metadata describes one callsite. It is constructed once, at
// registration time, and never mutated; every span or event created at
// the callsite shares the same Metadata.
type Metadata struct {
	name   string
	target string
	level  Level
	kind   Kind
	fields *field.FieldSet
}

// Make is used to construct Metadata. The zero value of each member is
// usable: an unnamed callsite with no fields at InfoLevel.
type Make struct {
	Name   string   // the span or event name
	Target string   // the module or subsystem emitting it
	Level  Level    // verbosity level
	Fields []string // ordered field names, fixed for the callsite's lifetime
	Kind   Kind     // span, event, or hint
}

// Metadata builds the Metadata for c. The FieldSet is bound to c's
// identity; Fields is retained, not copied.
func (m Make) Metadata(c Callsite) *Metadata {
	level := m.Level
	if level == 0 {
		level = InfoLevel
	}
	return &Metadata{
		name:   m.Name,
		target: m.Target,
		level:  level,
		kind:   m.Kind,
		fields: field.NewSet(m.Fields, Identify(c)),
	}
}

func (m *Metadata) Name() string   { return m.name }
func (m *Metadata) Target() string { return m.target }
func (m *Metadata) Level() Level   { return m.level }
func (m *Metadata) Kind() Kind     { return m.kind }

// Fields returns the FieldSet owned by this Metadata.
func (m *Metadata) Fields() *field.FieldSet { return m.fields }

// Callsite returns the identity of the callsite this Metadata
// describes.
func (m *Metadata) Callsite() callsite.Identifier { return m.fields.Callsite() }

// Callsite is the capability exposed by a registered callsite. The
// registry that produces and caches callsites lives elsewhere; this
// package only consumes the contract.
type Callsite interface {
	Metadata() *Metadata
	SetInterest(callsite.Interest)
}

// Identify returns the identity handle for c. Two calls with the same
// callsite yield equal Identifiers.
func Identify(c Callsite) callsite.Identifier {
	return callsite.NewIdentifier(c)
}

// Kind distinguishes what a callsite describes.
type Kind uint8

const (
	// KindSpan marks a callsite that opens spans.
	KindSpan Kind = 1 << iota
	// KindEvent marks a callsite that emits point-in-time events.
	KindEvent
	// KindHint marks metadata used only to steer filtering.
	KindHint
)

// Is reports whether k includes o.
func (k Kind) Is(o Kind) bool { return k&o != 0 }

func (k Kind) String() string {
	switch {
	case k.Is(KindSpan):
		return "span"
	case k.Is(KindEvent):
		return "event"
	case k.Is(KindHint):
		return "hint"
	default:
		return "unknown"
	}
}
