package field

import (
	"fmt"
	"io"

	"github.com/dblnz/tracing/callsite"
)

// Pair binds one Field to an optional Value for a single recording
// call. The zero Value marks an absent slot.
type Pair struct {
	Field Field
	Value Value
}

// ValueSet is the field-to-value binding supplied for one span-creation
// or event-emission call.
//
// A ValueSet borrows its pairs; it owns nothing. A pairing is only
// authoritative when the Field's callsite matches the ValueSet's own
// callsite: pairs built against a different callsite are treated as
// foreign noise and silently filtered, never reported as errors.
//
// ValueSets are obtained through FieldSet.WithValues and are valid only
// inside that call.
type ValueSet struct {
	pairs  []Pair
	fields *FieldSet
}

// WithValues binds pairs to this FieldSet and runs fn with the
// resulting ValueSet. The values are borrowed, not copied.
//
// The ValueSet is valid only for the duration of fn: the values it
// carries borrow data owned by the calling frame, so fn must not retain
// its argument. A ValueSet pointer kept past fn's return is invalidated
// and reports itself empty.
func (fs *FieldSet) WithValues(pairs []Pair, fn func(*ValueSet)) {
	vs := &ValueSet{pairs: pairs, fields: fs}
	defer func() {
		vs.pairs = nil
		vs.fields = nil
	}()
	fn(vs)
}

// Callsite returns the identity of the callsite whose fields this
// ValueSet binds.
func (vs *ValueSet) Callsite() callsite.Identifier {
	if vs.fields == nil {
		return callsite.Identifier{}
	}
	return vs.fields.Callsite()
}

// Record replays every authoritative pair through visitor, in input
// order. Pairs whose field belongs to a different callsite are skipped,
// as are absent slots; Empty sentinel values are present but deliver
// nothing. Recording is idempotent and has no effect on the ValueSet
// itself.
func (vs *ValueSet) Record(visitor Visitor) {
	if vs.fields == nil {
		return
	}
	cs := vs.fields.Callsite()
	for _, p := range vs.pairs {
		if p.Field.Callsite() != cs {
			continue
		}
		if p.Value.typ == UnsetType {
			continue
		}
		p.Value.Record(p.Field, visitor)
	}
}

// Len returns the number of pairs that belong to this ValueSet's
// callsite and carry a present value. Empty sentinel values count as
// present.
func (vs *ValueSet) Len() int {
	if vs.fields == nil {
		return 0
	}
	cs := vs.fields.Callsite()
	n := 0
	for _, p := range vs.pairs {
		if p.Field.Callsite() == cs && p.Value.typ != UnsetType {
			n++
		}
	}
	return n
}

// IsEmpty reports whether this ValueSet carries no values. Only absent
// slots count as missing; a pair holding the Empty sentinel makes
// IsEmpty report false even though Record will never deliver it. That
// asymmetry is long-standing observed behavior, not a contract to lean
// on.
func (vs *ValueSet) IsEmpty() bool {
	if vs.fields == nil {
		return true
	}
	cs := vs.fields.Callsite()
	for _, p := range vs.pairs {
		if p.Field.Callsite() == cs && p.Value.typ != UnsetType {
			return false
		}
	}
	return true
}

// Contains reports whether this ValueSet carries a present value for
// field.
func (vs *ValueSet) Contains(field Field) bool {
	if vs.fields == nil || field.Callsite() != vs.fields.Callsite() {
		return false
	}
	for _, p := range vs.pairs {
		if p.Field.Equal(field) && p.Value.typ != UnsetType {
			return true
		}
	}
	return false
}

// FieldSet returns the FieldSet whose fields this ValueSet binds.
func (vs *ValueSet) FieldSet() *FieldSet { return vs.fields }

// Format renders the ValueSet by replaying Record through a
// FormatVisitor, so the output always agrees with what a real visitor
// would observe. %v and %s give the map form {name: value, ...};
// %#v gives the struct form with the callsite appended.
func (vs *ValueSet) Format(f fmt.State, verb rune) {
	v := NewFormatVisitor(f)
	if verb == 'v' && f.Flag('#') {
		io.WriteString(f, "field.ValueSet{")
		vs.Record(v)
		if v.Count() > 0 {
			io.WriteString(f, ", ")
		}
		fmt.Fprintf(f, "callsite: %v}", vs.Callsite())
		return
	}
	io.WriteString(f, "{")
	vs.Record(v)
	io.WriteString(f, "}")
}

// String renders the map form; see Format.
func (vs *ValueSet) String() string { return fmt.Sprintf("%v", vs) }

var _ fmt.Formatter = &ValueSet{}
