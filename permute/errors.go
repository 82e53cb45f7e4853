package permute

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when a requested range contains no values.
	ErrInvalidRange = errors.New("range must contain at least one element")
	// ErrRangeTooLarge is returned when a range holds more than 2^32 values.
	ErrRangeTooLarge = errors.New("range must contain at most 2^32 elements")
	// ErrEmptySequence is returned for sequences of length zero.
	ErrEmptySequence = errors.New("sequence must not be empty")
	// ErrSequenceTooLarge is returned for sequences longer than 2^32.
	ErrSequenceTooLarge = errors.New("sequence may contain at most 2^32 elements")
)

// maxSize is the largest domain an Engine can address.
const maxSize = 1 << 32

// DomainError describes a domain that was rejected before any value was
// drawn from the Source. Err is one of the sentinel errors of this package.
type DomainError struct {
	Low  string
	High string
	Err  error
}

// Error returns a formatted error message including the rejected bounds.
func (e *DomainError) Error() string {
	return fmt.Sprintf("range %s to %s: %s", e.Low, e.High, e.Err)
}

// Unwrap returns the sentinel error to support errors.Is.
func (e *DomainError) Unwrap() error {
	return e.Err
}

func domainError[T Integer](low, high T, err error) error {
	return &DomainError{
		Low:  fmt.Sprint(low),
		High: fmt.Sprint(high),
		Err:  err,
	}
}

// checkLen validates a sequence length and returns the maximum index.
func checkLen(n int) (uint32, error) {
	if n <= 0 {
		return 0, fmt.Errorf("length %d: %w", n, ErrEmptySequence)
	}
	if uint64(n) > maxSize {
		return 0, fmt.Errorf("length %d: %w", n, ErrSequenceTooLarge)
	}
	return uint32(n - 1), nil
}
