// Package field implements the key/value recording core: callsite-scoped
// field sets, opaque field keys, the closed value catalogue, and the
// transient value sets that carry borrowed values through one recording
// call.
//
// Fields consist of a mapping from a key (corresponding to a string but
// represented internally as an array index) to a Value. The set of field
// names for a given span or event is fixed by its callsite's metadata;
// a Field is an opaque handle into that set. Values are delivered to
// consumers through the Visitor protocol: each value calls the one typed
// visitor hook matching its own kind, so collectors receive typed data
// without runtime type inspection and without allocating on the
// recording path.
package field

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/dblnz/tracing/callsite"
)

// FieldSet describes the ordered field names belonging to one callsite.
//
// A FieldSet is constructed once, alongside the callsite's static
// metadata, and never mutated. The names slice defines the index space:
// index i names field i for the lifetime of the callsite. Copying a
// FieldSet pointer is cheap; the names are shared, never duplicated.
type FieldSet struct {
	names    []string
	callsite callsite.Identifier
}

// NewSet constructs a FieldSet with the given field names, bound to the
// identity of the callsite that owns it. The names slice is retained,
// not copied; it must not be mutated afterward.
func NewSet(names []string, cs callsite.Identifier) *FieldSet {
	return &FieldSet{names: names, callsite: cs}
}

// Callsite returns the identity of the callsite this FieldSet belongs to.
func (fs *FieldSet) Callsite() callsite.Identifier {
	return fs.callsite
}

// Field returns the Field named name, or false if no such field exists.
// The scan is linear over the name sequence; callers that care should
// look a name up once and hold the Field.
func (fs *FieldSet) Field(name string) (Field, bool) {
	for i, n := range fs.names {
		if n == name {
			return Field{i: i, fields: fs}, true
		}
	}
	return Field{}, false
}

// Contains reports whether field belongs to this FieldSet.
//
// A Field that shares a name with one of this set's fields but was
// created by a FieldSet with a different callsite is not contained: if
// two separate callsites both define a field named "foo", the two "foo"
// Fields are not interchangeable.
func (fs *FieldSet) Contains(f Field) bool {
	return f.Callsite() == fs.callsite && f.i < len(fs.names)
}

// Len returns the number of fields in this FieldSet.
func (fs *FieldSet) Len() int { return len(fs.names) }

// IsEmpty reports whether this FieldSet has no fields.
func (fs *FieldSet) IsEmpty() bool { return len(fs.names) == 0 }

// Iter returns an iterator over the Fields in this FieldSet, in index
// order. Iteration is restarted by calling Iter again.
func (fs *FieldSet) Iter() *Iter {
	return &Iter{fields: fs}
}

// strictEquality widens FieldSet equality to also compare name
// sequences. In a well-behaved program two FieldSets with the same
// callsite identity have identical names, so the extra comparison is
// skipped by default; enabling it catches integrations that reuse a
// callsite identity across incompatible field definitions.
var strictEquality atomic.Bool

// SetStrictEquality toggles name-sequence checking in FieldSet.Equal.
// It is safe to call concurrently with Equal.
func SetStrictEquality(on bool) { strictEquality.Store(on) }

// StrictEquality reports whether name-sequence checking is enabled.
func StrictEquality() bool { return strictEquality.Load() }

// Equal reports whether two FieldSets describe the same callsite.
// When strict equality is enabled, the name sequences must match as
// well; see SetStrictEquality.
func (fs *FieldSet) Equal(other *FieldSet) bool {
	if fs == other {
		return true
	}
	if fs == nil || other == nil {
		return false
	}
	if fs.callsite != other.callsite {
		return false
	}
	if !strictEquality.Load() {
		return true
	}
	return slices.Equal(fs.names, other.names)
}

// String renders the field names as a set, eg {foo, bar, baz}.
func (fs *FieldSet) String() string {
	s := "{"
	for i, n := range fs.names {
		if i > 0 {
			s += ", "
		}
		s += n
	}
	return s + "}"
}

// Field is an opaque key allowing O(1) access to a field in a span or
// event's key/value data.
//
// As keys are defined by the metadata of a callsite rather than by an
// individual span, a Field may be used to access the same field across
// all spans with the same metadata: a collector need only look a name up
// once and reuse the key. Field is a small value; copying it never
// copies the underlying name sequence.
type Field struct {
	i      int
	fields *FieldSet
}

// Name returns the name of the field.
func (f Field) Name() string {
	if f.fields == nil {
		return ""
	}
	return f.fields.names[f.i]
}

// Index returns the index of this field within its FieldSet.
func (f Field) Index() int { return f.i }

// Callsite returns the identity of the callsite that defines this field.
func (f Field) Callsite() callsite.Identifier {
	if f.fields == nil {
		return callsite.Identifier{}
	}
	return f.fields.callsite
}

// Equal reports whether two Fields denote the same slot: the same index
// defined by the same callsite. Names are never compared, so two
// callsites that happen to share a field name produce unequal Fields.
func (f Field) Equal(other Field) bool {
	return f.Callsite() == other.Callsite() && f.i == other.i
}

// Key returns a comparable descriptor of this Field, suitable for use
// as a map key. Two Keys are equal exactly when Field.Equal would
// report true, so fields with equal names from different callsites
// occupy distinct map slots.
func (f Field) Key() FieldKey {
	return FieldKey{Callsite: f.Callsite(), Index: f.i}
}

// FieldKey is the comparable (callsite identity, index) descriptor of a
// Field.
type FieldKey struct {
	Callsite callsite.Identifier
	Index    int
}

// String returns the field's name. fmt width and padding flags apply in
// the usual way.
func (f Field) String() string { return f.Name() }

var _ fmt.Stringer = Field{}

// Iter iterates over the Fields of a FieldSet in ascending index order.
type Iter struct {
	i      int
	fields *FieldSet
}

// Next returns the next Field, or false when the set is exhausted.
func (it *Iter) Next() (Field, bool) {
	if it.i >= len(it.fields.names) {
		return Field{}, false
	}
	f := Field{i: it.i, fields: it.fields}
	it.i++
	return f, true
}
