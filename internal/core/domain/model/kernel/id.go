package kernel

import (
	"fmt"
	"strconv"

	"orderdesk/internal/pkg/errs"
)

// ErrIDIsNotConstructed is returned when validating a zero-value ID.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("ID must be created via NewID")

// ID is the identity of an entity. Identities are assigned by storage and are
// always positive; the zero value means "no identity".
type ID struct {
	value int64
}

// NewID wraps value as an identity. Zero and negative values are rejected.
func NewID(value int64) (ID, error) {
	if value <= 0 {
		return ID{}, errs.NewValueIsInvalidErrorWithCause(
			"id is invalid",
			fmt.Errorf("%d is not greater than 0", value),
		)
	}
	return ID{value: value}, nil
}

// MustNewID is NewID for constants and tests. It panics on invalid input.
func MustNewID(value int64) ID {
	id, err := NewID(value)
	if err != nil {
		panic(err)
	}
	return id
}

// IDFromString parses a decimal identity such as a path parameter or a token subject.
func IDFromString(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id is invalid", err)
	}
	return NewID(v)
}

// Int64 returns the raw identity value.
func (id ID) Int64() int64 {
	return id.value
}

// String returns the decimal representation of the identity.
func (id ID) String() string {
	return strconv.FormatInt(id.value, 10)
}

// IsZero reports whether the identity is unset.
func (id ID) IsZero() bool {
	return id.value == 0
}

// IsEqual compares two identities by value.
func (id ID) IsEqual(other ID) bool {
	return id.value == other.value
}

// Validate returns ErrIDIsNotConstructed for the zero value.
func (id ID) Validate() error {
	if id.value <= 0 {
		return ErrIDIsNotConstructed
	}
	return nil
}
