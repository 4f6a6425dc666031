package field

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Type identifies the variant a Value carries. The catalogue is closed:
// every producible value is one of these, and dispatch to a Visitor is a
// switch over this tag rather than runtime type inspection.
type Type uint8

const (
	// UnsetType is the zero Value: an absent slot, the field has no
	// value at all.
	UnsetType Type = iota
	// EmptyType marks a field whose value is not currently present but
	// may be recorded later. Empty values never reach a visitor.
	EmptyType
	Int64Type
	Uint64Type
	Int128Type
	Uint128Type
	Float64Type
	BoolType
	StringType
	BytesType
	ErrorType
	// DisplayType wraps an arbitrary value recorded via its plain %v
	// rendering.
	DisplayType
	// DebugType wraps an arbitrary value recorded via its %+v rendering.
	DebugType
)

func (t Type) String() string {
	switch t {
	case UnsetType:
		return "unset"
	case EmptyType:
		return "empty"
	case Int64Type:
		return "int64"
	case Uint64Type:
		return "uint64"
	case Int128Type:
		return "int128"
	case Uint128Type:
		return "uint128"
	case Float64Type:
		return "float64"
	case BoolType:
		return "bool"
	case StringType:
		return "string"
	case BytesType:
		return "bytes"
	case ErrorType:
		return "error"
	case DisplayType:
		return "display"
	case DebugType:
		return "debug"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Value is a field value of an erased type: one variant of the closed
// catalogue, carried without heap allocation for the numeric, boolean
// and string variants. The zero Value is an absent slot.
//
// A Value is transient. It is built inside the call that records it and
// must not be retained past that call; the bytes and wrapped variants
// hold references to caller-owned data.
type Value struct {
	typ   Type
	num   uint64
	hi    uint64
	str   string
	bytes []byte
	any   any
}

// Type returns the catalogue variant this Value carries.
func (v Value) Type() Type { return v.typ }

// IsNone reports whether this Value is an absent slot.
func (v Value) IsNone() bool { return v.typ == UnsetType }

// None returns an absent slot, equivalent to the zero Value.
func None() Value { return Value{} }

// Empty returns the Empty sentinel: a present value that indicates the
// field will be recorded later. It is skipped during recording.
func Empty() Value { return Value{typ: EmptyType} }

// Signed constrains the signed integer types accepted by Int.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned constrains the unsigned integer types accepted by Uint.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Floating constrains the float types accepted by Float.
type Floating interface {
	~float32 | ~float64
}

// Int returns a Value carrying any signed integer, widened to int64.
func Int[T Signed](v T) Value {
	return Value{typ: Int64Type, num: uint64(int64(v))}
}

// Uint returns a Value carrying any unsigned integer, widened to uint64.
func Uint[T Unsigned](v T) Value {
	return Value{typ: Uint64Type, num: uint64(v)}
}

// Float returns a Value carrying a float, widened to float64.
func Float[T Floating](v T) Value {
	return Value{typ: Float64Type, num: math.Float64bits(float64(v))}
}

// Bool returns a Value carrying a bool.
func Bool(v bool) Value {
	var n uint64
	if v {
		n = 1
	}
	return Value{typ: BoolType, num: n}
}

// String returns a Value carrying a string.
func String(v string) Value {
	return Value{typ: StringType, str: v}
}

// Bytes returns a Value carrying a byte slice. The slice is borrowed,
// not copied; it must stay valid for the duration of the recording call.
func Bytes(v []byte) Value {
	return Value{typ: BytesType, bytes: v}
}

// Error returns a Value carrying an error. A nil error is an absent
// slot.
func Error(err error) Value {
	if err == nil {
		return Value{}
	}
	return Value{typ: ErrorType, any: err}
}

// I128 returns a Value carrying a signed 128-bit integer.
func I128(v Int128) Value {
	return Value{typ: Int128Type, num: v.Lo, hi: uint64(v.Hi)}
}

// U128 returns a Value carrying an unsigned 128-bit integer.
func U128(v Uint128) Value {
	return Value{typ: Uint128Type, num: v.Lo, hi: v.Hi}
}

// Display wraps an arbitrary value so that it is recorded using its
// plain fmt %v rendering. Use this to attach a type outside the closed
// catalogue without extending the catalogue itself.
func Display(v any) Value {
	return Value{typ: DisplayType, any: v}
}

// Debug wraps an arbitrary value so that it is recorded using its fmt
// %+v rendering.
func Debug(v any) Value {
	return Value{typ: DebugType, any: v}
}

// Record delivers this Value to visitor under key. Each variant calls
// the one typed hook matching its kind when the visitor provides it and
// falls back to RecordDebug otherwise. Absent and Empty values call
// nothing.
func (v Value) Record(key Field, visitor Visitor) {
	switch v.typ {
	case UnsetType, EmptyType:
	case Int64Type:
		n := int64(v.num)
		if tv, ok := visitor.(Int64Visitor); ok {
			tv.RecordInt64(key, n)
			return
		}
		visitor.RecordDebug(key, int64Text(n))
	case Uint64Type:
		if tv, ok := visitor.(Uint64Visitor); ok {
			tv.RecordUint64(key, v.num)
			return
		}
		visitor.RecordDebug(key, uint64Text(v.num))
	case Int128Type:
		n := Int128{Hi: int64(v.hi), Lo: v.num}
		if tv, ok := visitor.(Int128Visitor); ok {
			tv.RecordInt128(key, n)
			return
		}
		visitor.RecordDebug(key, n)
	case Uint128Type:
		n := Uint128{Hi: v.hi, Lo: v.num}
		if tv, ok := visitor.(Uint128Visitor); ok {
			tv.RecordUint128(key, n)
			return
		}
		visitor.RecordDebug(key, n)
	case Float64Type:
		n := math.Float64frombits(v.num)
		if tv, ok := visitor.(Float64Visitor); ok {
			tv.RecordFloat64(key, n)
			return
		}
		visitor.RecordDebug(key, float64Text(n))
	case BoolType:
		b := v.num != 0
		if tv, ok := visitor.(BoolVisitor); ok {
			tv.RecordBool(key, b)
			return
		}
		visitor.RecordDebug(key, boolText(b))
	case StringType:
		if tv, ok := visitor.(StringVisitor); ok {
			tv.RecordString(key, v.str)
			return
		}
		visitor.RecordDebug(key, quotedText(v.str))
	case BytesType:
		if tv, ok := visitor.(BytesVisitor); ok {
			tv.RecordBytes(key, v.bytes)
			return
		}
		visitor.RecordDebug(key, HexBytes(v.bytes))
	case ErrorType:
		err := v.any.(error)
		if tv, ok := visitor.(ErrorVisitor); ok {
			tv.RecordError(key, err)
			return
		}
		visitor.RecordDebug(key, errorText{err})
	case DisplayType:
		visitor.RecordDebug(key, displayText{v.any})
	case DebugType:
		visitor.RecordDebug(key, debugText{v.any})
	}
}

// String renders the value alone, without a field name, by replaying
// the value through the debug fallback path. Absent and Empty values
// render as the empty string.
func (v Value) String() string {
	var sb strings.Builder
	v.Record(Field{}, VisitorFunc(func(_ Field, val fmt.Stringer) {
		sb.WriteString(val.String())
	}))
	return sb.String()
}

// Int128 is a signed 128-bit integer, Hi*2^64 + Lo.
type Int128 struct {
	Hi int64
	Lo uint64
}

// Int128From widens an int64 to an Int128.
func Int128From(v int64) Int128 {
	var hi int64
	if v < 0 {
		hi = -1
	}
	return Int128{Hi: hi, Lo: uint64(v)}
}

func (v Int128) String() string {
	b := new(big.Int).SetInt64(v.Hi)
	b.Lsh(b, 64)
	b.Add(b, new(big.Int).SetUint64(v.Lo))
	return b.String()
}

// Uint128 is an unsigned 128-bit integer, Hi*2^64 + Lo.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Uint128From widens a uint64 to a Uint128.
func Uint128From(v uint64) Uint128 {
	return Uint128{Lo: v}
}

func (v Uint128) String() string {
	b := new(big.Int).SetUint64(v.Hi)
	b.Lsh(b, 64)
	b.Add(b, new(big.Int).SetUint64(v.Lo))
	return b.String()
}

// HexBytes renders a byte slice in the canonical bracketed-hex debug
// form: an opening bracket, each byte as exactly two lowercase hex
// digits, bytes separated by single spaces, a closing bracket.
// b"abc" renders as [61 62 63]. This exact form is relied on by
// anything that consumes the default debug rendering of byte values.
type HexBytes []byte

func (h HexBytes) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, b := range h {
		if i > 0 {
			sb.WriteByte(' ')
		}
		const digits = "0123456789abcdef"
		sb.WriteByte(digits[b>>4])
		sb.WriteByte(digits[b&0xf])
	}
	sb.WriteByte(']')
	return sb.String()
}

// Debug fallback views. Each one freezes the textual form a typed value
// takes when it reaches RecordDebug instead of its typed hook.

type int64Text int64

func (v int64Text) String() string { return strconv.FormatInt(int64(v), 10) }

type uint64Text uint64

func (v uint64Text) String() string { return strconv.FormatUint(uint64(v), 10) }

type float64Text float64

func (v float64Text) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

type boolText bool

func (v boolText) String() string { return strconv.FormatBool(bool(v)) }

// quotedText renders a string in its quoted debug form.
type quotedText string

func (v quotedText) String() string { return strconv.Quote(string(v)) }

// errorText renders an error as its display text.
type errorText struct{ err error }

func (v errorText) String() string { return v.err.Error() }

type displayText struct{ v any }

func (v displayText) String() string { return fmt.Sprintf("%v", v.v) }

type debugText struct{ v any }

func (v debugText) String() string { return fmt.Sprintf("%+v", v.v) }
