package fakephone

import (
	"github.com/brianvoe/gofakeit/v6"
)

// Source supplies uniform random integers. Implementations used by a shared
// Generator must be safe for concurrent use; *rand.Rand from math/rand/v2 satisfies
// the interface for single goroutine callers.
type Source interface {
	// IntN returns a uniform integer in [0, n). n is always positive.
	IntN(n int) int
}

type fakerSource struct {
	faker *gofakeit.Faker
}

var _ Source = &fakerSource{}

// NewSource returns a gofakeit backed Source. A zero seed draws the initial seed
// from crypto/rand. The returned source is safe for concurrent use.
func NewSource(seed int64) Source {
	return &fakerSource{faker: gofakeit.New(seed)}
}

func (s *fakerSource) IntN(n int) int {
	if n <= 1 {
		return 0
	}
	return s.faker.Number(0, n-1)
}

// SourceFunc adapts a bare function to Source.
type SourceFunc func(n int) int

// IntN implements Source for SourceFunc
func (fn SourceFunc) IntN(n int) int {
	return fn(n)
}

func pick[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}
