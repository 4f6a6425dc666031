package field

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Visitor receives the values recorded for a span or event.
//
// RecordDebug is the only required method: every value can deliver
// itself as a formatted fallback view, so a visitor implementing only
// Visitor is fully conformant. Visitors that want values in their
// native representation additionally implement the typed hook
// interfaces below (Int64Visitor, StringVisitor, ...); dispatch prefers
// a typed hook when the visitor provides one and falls back to
// RecordDebug otherwise. A numeric aggregator, for example, implements
// Int64Visitor and Uint64Visitor and lets everything else flow through
// RecordDebug unexamined.
//
// A visitor may keep internal state (counters, buffers) across calls,
// but must not retain the Field values or the fallback views passed to
// it beyond each call: they borrow data owned by the recording call
// frame.
type Visitor interface {
	// RecordDebug receives a value as its formatted fallback view.
	RecordDebug(field Field, value fmt.Stringer)
}

// Float64Visitor receives 64-bit floats (and widened 32-bit floats).
type Float64Visitor interface {
	RecordFloat64(field Field, value float64)
}

// Int64Visitor receives signed 64-bit integers (and every narrower
// signed integer, widened).
type Int64Visitor interface {
	RecordInt64(field Field, value int64)
}

// Uint64Visitor receives unsigned 64-bit integers (and every narrower
// unsigned integer, widened).
type Uint64Visitor interface {
	RecordUint64(field Field, value uint64)
}

// Int128Visitor receives signed 128-bit integers.
type Int128Visitor interface {
	RecordInt128(field Field, value Int128)
}

// Uint128Visitor receives unsigned 128-bit integers.
type Uint128Visitor interface {
	RecordUint128(field Field, value Uint128)
}

// BoolVisitor receives booleans.
type BoolVisitor interface {
	RecordBool(field Field, value bool)
}

// StringVisitor receives strings.
type StringVisitor interface {
	RecordString(field Field, value string)
}

// BytesVisitor receives byte slices. The slice is borrowed; it must be
// copied if kept.
type BytesVisitor interface {
	RecordBytes(field Field, value []byte)
}

// ErrorVisitor receives error values.
type ErrorVisitor interface {
	RecordError(field Field, err error)
}

// VisitorFunc adapts a function to the Visitor interface. Every value
// reaches the function through the debug fallback path.
type VisitorFunc func(field Field, value fmt.Stringer)

func (f VisitorFunc) RecordDebug(field Field, value fmt.Stringer) { f(field, value) }

var _ Visitor = VisitorFunc(nil)

// FormatVisitor writes "name: value" entries to a sink, separated by
// ", ". It backs the Debug and Display renderings of ValueSet, so the
// text a ValueSet formats to is always exactly what a visitor would
// have observed.
//
// The sink may fail; the first write error is kept and reported by Err,
// and later entries are dropped rather than written out of order.
type FormatVisitor struct {
	w   io.Writer
	n   int
	err error
}

// NewFormatVisitor returns a FormatVisitor writing to w.
func NewFormatVisitor(w io.Writer) *FormatVisitor {
	return &FormatVisitor{w: w}
}

func (v *FormatVisitor) RecordDebug(field Field, value fmt.Stringer) {
	if v.err != nil {
		return
	}
	sep := ""
	if v.n > 0 {
		sep = ", "
	}
	if _, err := fmt.Fprintf(v.w, "%s%s: %s", sep, field.Name(), value.String()); err != nil {
		v.err = errors.Wrapf(err, "write field %q", field.Name())
		return
	}
	v.n++
}

// Count returns the number of entries successfully written.
func (v *FormatVisitor) Count() int { return v.n }

// Err returns the first write error encountered, or nil.
func (v *FormatVisitor) Err() error { return v.err }

var _ Visitor = &FormatVisitor{}
