package exec

import "time"

type ValueProvider[T any] interface {
	// Value returns the successful result value
	Value() T
	// CreatedAt time creation (UTC)
	CreatedAt() time.Time
}

// WithError defines an interface for types that can return a value or an error
type WithError[T any] interface {
	ValueProvider[T]
	// Err returns the error if the call failed
	Err() error
	// IsOk returns true if the call completed in full
	IsOk() bool
}

// WithTimeout extends WithError with deadline outcomes
type WithTimeout[T any] interface {
	WithError[T]
	// IsTimeout returns true if the call ran out of budget
	IsTimeout() bool
	// HasPartial returns true if a timeout salvaged a partial accumulator
	HasPartial() bool
}
