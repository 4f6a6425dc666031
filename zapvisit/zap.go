/*
Package zapvisit is a gateway from recorded field values into zap
fields, for collectors that sink into a zap logger.
*/
package zapvisit

import (
	"fmt"

	"github.com/dblnz/tracing/field"

	"go.uber.org/zap"
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

// Visitor accumulates zap fields, one per recorded value. Borrowed data
// is materialized on receipt: byte slices are copied and errors reduced
// to their display text, so the zap fields stay valid after the
// recording call returns.
type Visitor struct {
	fields []zap.Field
}

// New returns an empty Visitor.
func New() *Visitor { return &Visitor{} }

// Fields returns the accumulated zap fields in recording order.
func (v *Visitor) Fields() []zap.Field { return v.fields }

// Fields converts every value in vs into a zap field.
func Fields(vs *field.ValueSet) []zap.Field {
	v := New()
	vs.Record(v)
	return v.Fields()
}

func (v *Visitor) add(f zap.Field) { v.fields = append(v.fields, f) }

func (v *Visitor) RecordInt64(f field.Field, value int64) {
	v.add(zap.Int64(f.Name(), value))
}

func (v *Visitor) RecordUint64(f field.Field, value uint64) {
	v.add(zap.Uint64(f.Name(), value))
}

func (v *Visitor) RecordInt128(f field.Field, value field.Int128) {
	v.add(zap.String(f.Name(), value.String()))
}

func (v *Visitor) RecordUint128(f field.Field, value field.Uint128) {
	v.add(zap.String(f.Name(), value.String()))
}

func (v *Visitor) RecordFloat64(f field.Field, value float64) {
	v.add(zap.Float64(f.Name(), value))
}

func (v *Visitor) RecordBool(f field.Field, value bool) {
	v.add(zap.Bool(f.Name(), value))
}

func (v *Visitor) RecordString(f field.Field, value string) {
	v.add(zap.String(f.Name(), value))
}

func (v *Visitor) RecordBytes(f field.Field, value []byte) {
	b := make([]byte, len(value))
	copy(b, value)
	v.add(zap.Binary(f.Name(), b))
}

func (v *Visitor) RecordError(f field.Field, err error) {
	v.add(zap.String(f.Name(), err.Error()))
}

func (v *Visitor) RecordDebug(f field.Field, value fmt.Stringer) {
	v.add(zap.String(f.Name(), value.String()))
}
