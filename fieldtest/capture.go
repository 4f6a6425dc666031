/*
Package fieldtest provides an introspective field.Visitor. Every value
recorded through it is saved to memory and can be examined afterward,
which makes it convenient both for tests of this module and for tests of
collectors built on top of it.
*/
package fieldtest

import (
	"fmt"
	"sync"

	"github.com/dblnz/tracing/field"

	"github.com/google/uuid"
	"github.com/mohae/deepcopy"
)

// EventType says which typed hook a captured value arrived through.
type EventType int

const (
	Int64Event EventType = iota
	Uint64Event
	Int128Event
	Uint128Event
	Float64Event
	BoolEvent
	StringEvent
	BytesEvent
	ErrorEvent
	DebugEvent
)

func (e EventType) String() string {
	switch e {
	case Int64Event:
		return "int64"
	case Uint64Event:
		return "uint64"
	case Int128Event:
		return "int128"
	case Uint128Event:
		return "uint128"
	case Float64Event:
		return "float64"
	case BoolEvent:
		return "bool"
	case StringEvent:
		return "string"
	case BytesEvent:
		return "bytes"
	case ErrorEvent:
		return "error"
	case DebugEvent:
		return "debug"
	default:
		return fmt.Sprintf("EventType(%d)", int(e))
	}
}

var (
	_ field.Visitor        = &Capture{}
	_ field.Int64Visitor   = &Capture{}
	_ field.Uint64Visitor  = &Capture{}
	_ field.Int128Visitor  = &Capture{}
	_ field.Uint128Visitor = &Capture{}
	_ field.Float64Visitor = &Capture{}
	_ field.BoolVisitor    = &Capture{}
	_ field.StringVisitor  = &Capture{}
	_ field.BytesVisitor   = &Capture{}
	_ field.ErrorVisitor   = &Capture{}
)

// New returns an empty Capture.
func New() *Capture {
	return &Capture{
		id: "capture-" + uuid.New().String(),
	}
}

// Capture records every value it visits. It implements all of the typed
// hooks, so nothing reaches it through the debug fallback unless the
// value has no typed representation (Display and Debug wrappers).
//
// Values that arrive as references are materialized at capture time:
// byte slices are deep-copied and errors are reduced to their display
// text, so a Capture never holds borrowed data past the recording call.
type Capture struct {
	lock  sync.Mutex
	id    string
	Lines []*Line
}

// Line is one captured value.
type Line struct {
	Key   field.FieldKey
	Name  string
	Event EventType
	Value any
}

// ID returns the unique identity of this Capture.
func (c *Capture) ID() string { return c.id }

func (c *Capture) add(f field.Field, e EventType, v any) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.Lines = append(c.Lines, &Line{
		Key:   f.Key(),
		Name:  f.Name(),
		Event: e,
		Value: v,
	})
}

func (c *Capture) RecordInt64(f field.Field, v int64) { c.add(f, Int64Event, v) }

func (c *Capture) RecordUint64(f field.Field, v uint64) { c.add(f, Uint64Event, v) }

func (c *Capture) RecordInt128(f field.Field, v field.Int128) { c.add(f, Int128Event, v) }

func (c *Capture) RecordUint128(f field.Field, v field.Uint128) { c.add(f, Uint128Event, v) }

func (c *Capture) RecordFloat64(f field.Field, v float64) { c.add(f, Float64Event, v) }

func (c *Capture) RecordBool(f field.Field, v bool) { c.add(f, BoolEvent, v) }

func (c *Capture) RecordString(f field.Field, v string) { c.add(f, StringEvent, v) }

func (c *Capture) RecordBytes(f field.Field, v []byte) {
	c.add(f, BytesEvent, deepcopy.Copy(v))
}

func (c *Capture) RecordError(f field.Field, err error) {
	c.add(f, ErrorEvent, err.Error())
}

func (c *Capture) RecordDebug(f field.Field, v fmt.Stringer) {
	c.add(f, DebugEvent, v.String())
}

// WithLock runs f while holding the Capture's lock, for examining Lines
// while other goroutines may still be recording.
func (c *Capture) WithLock(f func(*Capture) error) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return f(c)
}

// Find returns the first captured line for the named field, or nil.
func (c *Capture) Find(name string) *Line {
	c.lock.Lock()
	defer c.lock.Unlock()
	for _, line := range c.Lines {
		if line.Name == name {
			return line
		}
	}
	return nil
}

// CountOf returns how many captured lines the named field has.
func (c *Capture) CountOf(name string) int {
	c.lock.Lock()
	defer c.lock.Unlock()
	n := 0
	for _, line := range c.Lines {
		if line.Name == name {
			n++
		}
	}
	return n
}

// Snapshot returns a deep copy of the captured lines, detached from the
// Capture so the caller can examine it without holding the lock.
func (c *Capture) Snapshot() []*Line {
	c.lock.Lock()
	defer c.lock.Unlock()
	return deepcopy.Copy(c.Lines).([]*Line)
}

// Text renders the captured values in recording order, each value in
// its debug form, concatenated without separators.
func (c *Capture) Text() string {
	c.lock.Lock()
	defer c.lock.Unlock()
	s := ""
	for _, line := range c.Lines {
		s += fmt.Sprintf("%v", line.Value)
	}
	return s
}
