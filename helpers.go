package grocer

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// BackoffStrategy selects how retry delays grow
type BackoffStrategy string

const (
	BackoffLinear      BackoffStrategy = "LINEAR"
	BackoffExponential BackoffStrategy = "EXPONENTIAL"
	BackoffNone        BackoffStrategy = "NONE"
)

// Identified is implemented by every entity carrying an integer ID
type Identified interface {
	GetID() int
}

// ToPtr returns a pointer to the given value.
func ToPtr[T any](v T) *T {
	return &v
}

// NextID returns the next ID for a new element of the collection.
// Mimics the auto increment of a backend database: 1 for an empty
// collection, otherwise the highest ID plus one.
func NextID[T Identified](collection []T) int {
	if len(collection) == 0 {
		return 1
	}

	maxID := collection[0].GetID()
	for _, item := range collection[1:] {
		if id := item.GetID(); id > maxID {
			maxID = id
		}
	}

	return maxID + 1
}

// IndexByID returns the index of the element with the given ID, or -1 if absent.
func IndexByID[T Identified](collection []T, id int) int {
	for i, item := range collection {
		if item.GetID() == id {
			return i
		}
	}
	return -1
}

// NewItems returns every element of collection whose ID does not occur in reference,
// preserving the order of collection.
func NewItems[T Identified](reference, collection []T) []T {
	added := []T{}
	for _, item := range collection {
		if IndexByID(reference, item.GetID()) == -1 {
			added = append(added, item)
		}
	}
	return added
}

// RandomColour returns a random colour as a six digit lower-case hex code, e.g. "#0a3f9c".
func RandomColour() string {
	n, err := rand.Int(rand.Reader, big.NewInt(0x1000000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is unavailable
		return "#000000"
	}
	return fmt.Sprintf("#%06x", n.Int64())
}

// CalculateBackoff returns the delay before retry attempt (1-based) of an
// operation. Attempt 0 is the first try and never waits.
//   - EXPONENTIAL: base * 2^(attempt-1)
//   - LINEAR: base * attempt
//   - NONE: no delay
//
// Unknown strategies behave like LINEAR.
func CalculateBackoff(base time.Duration, attempt int, strategy BackoffStrategy) time.Duration {
	if attempt <= 0 {
		return 0
	}

	switch strategy {
	case BackoffExponential:
		return base * time.Duration(1<<(attempt-1))
	case BackoffNone:
		return 0
	default:
		return base * time.Duration(attempt)
	}
}
