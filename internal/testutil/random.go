package testutil

import (
	"fmt"

	"github.com/udisondev/chronicle/internal/random"
)

// Scripted is a random.Source that replays fixed values.
// NextN(max) returns the next value and panics if it is out of [0, max)
// or the script is exhausted, so an unexpected roll fails the test loudly.
type Scripted struct {
	values []int
	calls  int64
}

var _ random.Source = (*Scripted)(nil)

// NewScripted returns a source that yields values in order.
func NewScripted(values ...int) *Scripted {
	return &Scripted{values: values}
}

func (s *Scripted) pop() int {
	if int(s.calls) >= len(s.values) {
		panic(fmt.Sprintf("scripted source exhausted after %d calls", s.calls))
	}
	v := s.values[s.calls]
	s.calls++
	return v
}

func (s *Scripted) Next() int { return s.pop() }

func (s *Scripted) NextN(max int) int {
	v := s.pop()
	if v < 0 || (max > 0 && v >= max) {
		panic(fmt.Sprintf("scripted value %d out of [0, %d)", v, max))
	}
	return v
}

func (s *Scripted) NextRange(min, max int) int {
	return min + s.NextN(max-min)
}

func (s *Scripted) NextBytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(s.pop())
	}
	return out
}

func (s *Scripted) NextDouble() float64 { return float64(s.pop()) / 100 }

func (s *Scripted) Seed() int32 { return 0 }

// Calls returns how many values were consumed.
func (s *Scripted) Calls() int64 { return s.calls }

// Remaining returns how many values are left.
func (s *Scripted) Remaining() int { return len(s.values) - int(s.calls) }
