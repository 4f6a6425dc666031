// Package callsite provides the opaque identity handle for callsites.
//
// A callsite is the static origination point of a span or event: a
// specific definition in source that owns one immutable piece of
// metadata. This package does not implement callsite registration; it
// only defines the identity handle that the rest of the system compares.
package callsite

import "fmt"

// Identifier uniquely identifies a callsite registration.
//
// Two Identifiers are equal if and only if they were produced from the
// same registered callsite value. Equality is address-based: the handle
// wraps the callsite reference and compares it with interface equality,
// so two callsites that happen to carry identical metadata still get
// distinct Identifiers. Identifier is comparable and may be used as a
// map key.
type Identifier struct {
	c any
}

// NewIdentifier wraps a registered callsite in an identity handle.
// The argument must be a pointer (or other reference type) that is
// permanently valid for the life of the process; callers normally go
// through metadata.Identify rather than calling this directly.
func NewIdentifier(c any) Identifier {
	return Identifier{c: c}
}

// IsZero reports whether the Identifier does not denote any callsite.
func (i Identifier) IsZero() bool { return i.c == nil }

func (i Identifier) String() string {
	if i.c == nil {
		return "Identifier(none)"
	}
	return fmt.Sprintf("Identifier(%p)", i.c)
}

// Interest expresses whether a collector wants events from a callsite.
// Interest caching itself lives with the callsite registry, not here;
// the type exists so that callsite implementations can satisfy the
// SetInterest contract.
type Interest int32

const (
	// InterestNever means the callsite is never enabled.
	InterestNever Interest = iota
	// InterestSometimes means enablement must be rechecked per call.
	InterestSometimes
	// InterestAlways means the callsite is always enabled.
	InterestAlways
)

func (i Interest) String() string {
	switch i {
	case InterestNever:
		return "never"
	case InterestSometimes:
		return "sometimes"
	case InterestAlways:
		return "always"
	default:
		return fmt.Sprintf("Interest(%d)", int32(i))
	}
}
