package field_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dblnz/tracing/callsite"
	"github.com/dblnz/tracing/field"
	"github.com/dblnz/tracing/metadata"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCallsite struct {
	md *metadata.Metadata
}

func (c *testCallsite) Metadata() *metadata.Metadata  { return c.md }
func (c *testCallsite) SetInterest(callsite.Interest) {}

var (
	testCallsite1 = &testCallsite{}
	testCallsite2 = &testCallsite{}
)

func init() {
	testCallsite1.md = metadata.Make{
		Name:   "field_test1",
		Target: "field_test",
		Level:  metadata.InfoLevel,
		Fields: []string{"foo", "bar", "baz"},
		Kind:   metadata.KindSpan,
	}.Metadata(testCallsite1)
	testCallsite2.md = metadata.Make{
		Name:   "field_test2",
		Target: "field_test",
		Level:  metadata.InfoLevel,
		Fields: []string{"foo", "bar", "baz"},
		Kind:   metadata.KindSpan,
	}.Metadata(testCallsite2)
}

func mustField(t *testing.T, fs *field.FieldSet, name string) field.Field {
	t.Helper()
	f, ok := fs.Field(name)
	require.True(t, ok, "field %q", name)
	return f
}

func TestValueSetWithNoValuesIsEmpty(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	pairs := []field.Pair{
		{Field: mustField(t, fields, "foo")},
		{Field: mustField(t, fields, "bar")},
		{Field: mustField(t, fields, "baz")},
	}
	fields.WithValues(pairs, func(vs *field.ValueSet) {
		assert.True(t, vs.IsEmpty())
		assert.Equal(t, 0, vs.Len())
	})
}

func TestIndexOfFieldInFieldSetIsCorrect(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	assert.Equal(t, 0, mustField(t, fields, "foo").Index())
	assert.Equal(t, 1, mustField(t, fields, "bar").Index())
	assert.Equal(t, 2, mustField(t, fields, "baz").Index())
}

func TestEmptyValueSetIsEmpty(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	fields.WithValues(nil, func(vs *field.ValueSet) {
		assert.True(t, vs.IsEmpty())
	})
}

func TestValueSetsWithFieldsFromOtherCallsitesAreEmpty(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	pairs := []field.Pair{
		{Field: mustField(t, fields, "foo"), Value: field.Int(1)},
		{Field: mustField(t, fields, "bar"), Value: field.Int(2)},
		{Field: mustField(t, fields, "baz"), Value: field.Int(3)},
	}
	testCallsite2.Metadata().Fields().WithValues(pairs, func(vs *field.ValueSet) {
		assert.True(t, vs.IsEmpty())
		assert.Equal(t, 0, vs.Len())
	})
}

func TestSparseValueSetsAreNotEmpty(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	pairs := []field.Pair{
		{Field: mustField(t, fields, "foo")},
		{Field: mustField(t, fields, "bar"), Value: field.Int(57)},
		{Field: mustField(t, fields, "baz")},
	}
	fields.WithValues(pairs, func(vs *field.ValueSet) {
		assert.False(t, vs.IsEmpty())
		assert.Equal(t, 1, vs.Len())
	})
}

func TestFieldsFromOtherCallsitesAreSkipped(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	pairs := []field.Pair{
		{Field: mustField(t, fields, "foo")},
		{Field: mustField(t, testCallsite2.Metadata().Fields(), "bar"), Value: field.Int(57)},
		{Field: mustField(t, fields, "baz")},
	}
	want := testCallsite1.Metadata().Callsite()
	fields.WithValues(pairs, func(vs *field.ValueSet) {
		vs.Record(field.VisitorFunc(func(f field.Field, _ fmt.Stringer) {
			assert.Equal(t, want, f.Callsite())
		}))
	})
}

func TestEmptyFieldsAreSkipped(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	pairs := []field.Pair{
		{Field: mustField(t, fields, "foo"), Value: field.Empty()},
		{Field: mustField(t, fields, "bar"), Value: field.Int(57)},
		{Field: mustField(t, fields, "baz"), Value: field.Empty()},
	}
	fields.WithValues(pairs, func(vs *field.ValueSet) {
		// the Empty sentinel counts as present for emptiness, but is
		// filtered at record time
		assert.False(t, vs.IsEmpty())
		vs.Record(field.VisitorFunc(func(f field.Field, _ fmt.Stringer) {
			assert.Equal(t, "bar", f.Name())
		}))
	})
}

func TestRecordDebugFunc(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	pairs := []field.Pair{
		{Field: mustField(t, fields, "foo"), Value: field.Int(1)},
		{Field: mustField(t, fields, "bar"), Value: field.Int(2)},
		{Field: mustField(t, fields, "baz"), Value: field.Int(3)},
	}
	var result strings.Builder
	fields.WithValues(pairs, func(vs *field.ValueSet) {
		vs.Record(field.VisitorFunc(func(_ field.Field, v fmt.Stringer) {
			result.WriteString(v.String())
		}))
	})
	assert.Equal(t, "123", result.String())
}

func TestRecordError(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	err := errors.New("lol")
	pairs := []field.Pair{
		{Field: mustField(t, fields, "foo"), Value: field.Error(err)},
		{Field: mustField(t, fields, "bar"), Value: field.Empty()},
		{Field: mustField(t, fields, "baz"), Value: field.Empty()},
	}
	var result strings.Builder
	fields.WithValues(pairs, func(vs *field.ValueSet) {
		vs.Record(field.VisitorFunc(func(_ field.Field, v fmt.Stringer) {
			result.WriteString(v.String())
		}))
	})
	assert.Equal(t, err.Error(), result.String())
}

func TestRecordBytes(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	pairs := []field.Pair{
		{Field: mustField(t, fields, "foo"), Value: field.Bytes([]byte("abc"))},
		{Field: mustField(t, fields, "bar"), Value: field.String(" ")},
		{Field: mustField(t, fields, "baz"), Value: field.Bytes([]byte{0xc0, 0xff, 0xee})},
	}
	var result strings.Builder
	fields.WithValues(pairs, func(vs *field.ValueSet) {
		vs.Record(field.VisitorFunc(func(_ field.Field, v fmt.Stringer) {
			result.WriteString(v.String())
		}))
	})
	assert.Equal(t, `[61 62 63]" "[c0 ff ee]`, result.String())
}

func TestFieldSetContains(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	foo := mustField(t, fields, "foo")
	assert.True(t, fields.Contains(foo))

	foreign := mustField(t, testCallsite2.Metadata().Fields(), "foo")
	assert.False(t, fields.Contains(foreign))
	assert.False(t, foo.Equal(foreign), "same name, different callsite")
	assert.NotEqual(t, foo.Key(), foreign.Key())
}

func TestValueSetContains(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	foo := mustField(t, fields, "foo")
	bar := mustField(t, fields, "bar")
	pairs := []field.Pair{
		{Field: foo, Value: field.String("x")},
		{Field: bar},
	}
	fields.WithValues(pairs, func(vs *field.ValueSet) {
		assert.True(t, vs.Contains(foo))
		assert.False(t, vs.Contains(bar), "absent slot")
		assert.False(t, vs.Contains(mustField(t, testCallsite2.Metadata().Fields(), "foo")))
	})
}

func TestIterYieldsFieldsInOrder(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	var names []string
	it := fields.Iter()
	for f, ok := it.Next(); ok; f, ok = it.Next() {
		names = append(names, f.Name())
		assert.Equal(t, len(names)-1, f.Index())
	}
	assert.Equal(t, []string{"foo", "bar", "baz"}, names)
	assert.Equal(t, 3, fields.Len())
	assert.False(t, fields.IsEmpty())
}

func TestFieldLookupMiss(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	_, ok := fields.Field("nope")
	assert.False(t, ok)
}

func TestFieldSetEquality(t *testing.T) {
	cs := testCallsite1.Metadata().Callsite()
	same := field.NewSet([]string{"foo", "bar", "baz"}, cs)
	mismatched := field.NewSet([]string{"quux"}, cs)

	fields := testCallsite1.Metadata().Fields()
	assert.True(t, fields.Equal(fields))
	assert.True(t, fields.Equal(same))
	// callsite identity is all that matters by default
	assert.True(t, fields.Equal(mismatched))
	assert.False(t, fields.Equal(testCallsite2.Metadata().Fields()))

	field.SetStrictEquality(true)
	defer field.SetStrictEquality(false)
	assert.True(t, fields.Equal(same))
	assert.False(t, fields.Equal(mismatched), "strict mode compares names")
}

func TestValueSetInvalidatedAfterScope(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	pairs := []field.Pair{
		{Field: mustField(t, fields, "foo"), Value: field.Int(1)},
	}
	var escaped *field.ValueSet
	fields.WithValues(pairs, func(vs *field.ValueSet) {
		assert.False(t, vs.IsEmpty())
		escaped = vs
	})
	assert.True(t, escaped.IsEmpty())
	assert.Equal(t, 0, escaped.Len())
	assert.True(t, escaped.Callsite().IsZero())
	called := false
	escaped.Record(field.VisitorFunc(func(field.Field, fmt.Stringer) { called = true }))
	assert.False(t, called)
}

func TestFieldDisplayPadding(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	foo := mustField(t, fields, "foo")
	assert.Equal(t, "foo", foo.String())
	assert.Equal(t, "  foo", fmt.Sprintf("%5s", foo))
	assert.Equal(t, "foo  ", fmt.Sprintf("%-5s", foo))
}

func TestFieldSetString(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	assert.Equal(t, "{foo, bar, baz}", fields.String())
}

func TestValueSetFormatting(t *testing.T) {
	fields := testCallsite1.Metadata().Fields()
	pairs := []field.Pair{
		{Field: mustField(t, fields, "foo"), Value: field.Int(1)},
		{Field: mustField(t, fields, "bar"), Value: field.String("x")},
		{Field: mustField(t, fields, "baz"), Value: field.Empty()},
	}
	fields.WithValues(pairs, func(vs *field.ValueSet) {
		assert.Equal(t, `{foo: 1, bar: "x"}`, vs.String())
		gv := fmt.Sprintf("%#v", vs)
		assert.True(t, strings.HasPrefix(gv, `field.ValueSet{foo: 1, bar: "x", callsite: `), gv)
		assert.True(t, strings.HasSuffix(gv, "}"), gv)
	})
}
