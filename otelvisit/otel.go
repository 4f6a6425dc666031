/*
Package otelvisit is a gateway from recorded field values into
OpenTelemetry span attributes.

OTEL supports fewer data types than the value catalogue. Most kinds
convert cleanly; unsigned integers that do not fit in an int64, 128-bit
integers, byte slices, and wrapped values are formatted as strings.
*/
package otelvisit

import (
	"fmt"
	"math"

	"github.com/dblnz/tracing/field"

	"go.opentelemetry.io/otel/attribute"
)

var (
	_ field.Visitor        = &Visitor{}
	_ field.Int64Visitor   = &Visitor{}
	_ field.Uint64Visitor  = &Visitor{}
	_ field.Int128Visitor  = &Visitor{}
	_ field.Uint128Visitor = &Visitor{}
	_ field.Float64Visitor = &Visitor{}
	_ field.BoolVisitor    = &Visitor{}
	_ field.StringVisitor  = &Visitor{}
	_ field.BytesVisitor   = &Visitor{}
	_ field.ErrorVisitor   = &Visitor{}
)

// Visitor accumulates OTEL attributes, one per recorded value.
type Visitor struct {
	attrs []attribute.KeyValue
}

// New returns an empty Visitor.
func New() *Visitor { return &Visitor{} }

// Attributes returns the accumulated attributes in recording order.
func (v *Visitor) Attributes() []attribute.KeyValue { return v.attrs }

// Attributes converts every value in vs into an OTEL attribute.
func Attributes(vs *field.ValueSet) []attribute.KeyValue {
	v := New()
	vs.Record(v)
	return v.Attributes()
}

func (v *Visitor) add(kv attribute.KeyValue) { v.attrs = append(v.attrs, kv) }

func (v *Visitor) RecordInt64(f field.Field, value int64) {
	v.add(attribute.Int64(f.Name(), value))
}

// OTEL has no unsigned attribute type; values beyond int64 range are
// kept exact by formatting them as strings.
func (v *Visitor) RecordUint64(f field.Field, value uint64) {
	if value <= math.MaxInt64 {
		v.add(attribute.Int64(f.Name(), int64(value)))
		return
	}
	v.add(attribute.String(f.Name(), field.Uint128From(value).String()))
}

func (v *Visitor) RecordInt128(f field.Field, value field.Int128) {
	v.add(attribute.String(f.Name(), value.String()))
}

func (v *Visitor) RecordUint128(f field.Field, value field.Uint128) {
	v.add(attribute.String(f.Name(), value.String()))
}

func (v *Visitor) RecordFloat64(f field.Field, value float64) {
	v.add(attribute.Float64(f.Name(), value))
}

func (v *Visitor) RecordBool(f field.Field, value bool) {
	v.add(attribute.Bool(f.Name(), value))
}

func (v *Visitor) RecordString(f field.Field, value string) {
	v.add(attribute.String(f.Name(), value))
}

func (v *Visitor) RecordBytes(f field.Field, value []byte) {
	v.add(attribute.String(f.Name(), field.HexBytes(value).String()))
}

func (v *Visitor) RecordError(f field.Field, err error) {
	v.add(attribute.String(f.Name(), err.Error()))
}

func (v *Visitor) RecordDebug(f field.Field, value fmt.Stringer) {
	v.add(attribute.String(f.Name(), value.String()))
}
