// Package random provides the deterministic random source shared by the
// battle simulator and the enhancement resolver.
//
// # Determinism
//
// Every node that re-executes an action must draw exactly the same numbers.
// Subtractive is specified bit-exactly below so that any conforming
// implementation (in any language) produces the same sequence for the same
// seed and the same call sequence.
//
// A Source is not safe for concurrent use. Each simulation run owns its own
// instance; sharing one instance between goroutines makes the call order and
// therefore the outcome non-deterministic.
package random

import "fmt"

// Source is the random capability threaded through every resolver call.
type Source interface {
	// Next returns a non-negative number in [0, MaxInt32).
	Next() int
	// NextN returns a number in [0, max). Panics if max < 0.
	NextN(max int) int
	// NextRange returns a number in [min, max). Panics if min > max.
	NextRange(min, max int) int
	// NextBytes returns n pseudo-random bytes.
	NextBytes(n int) []byte
	// NextDouble returns a number in [0.0, 1.0).
	NextDouble() float64
	// Seed returns the seed the source was created with.
	Seed() int32
	// Calls returns how many samples were drawn so far.
	Calls() int64
}

const (
	mbig  int32 = 2147483647 // 2^31-1
	mseed int32 = 161803398
	// stateSize = 55 + 1: индекс 0 не используется.
	stateSize = 56
)

// Subtractive is Knuth's subtractive generator (TAOCP vol. 2, 3.6) with
// the following exact parameters:
//
//   - state: 55 int32 words (indices 1..55), modulus 2^31-1
//   - seeding: mj = 161803398 - |seed| (MinInt32 maps to MaxInt32);
//     state[55] = mj, mk = 1; for i = 1..54: ii = 21*i mod 55,
//     state[ii] = mk, mk = mj - mk (+2^31-1 when negative), mj = state[ii];
//     then four passes of state[i] -= state[1 + (i+30) mod 55] for
//     i = 1..55 with 32-bit wrap-around and +2^31-1 when negative
//   - sampling: inext and inextp start at 0 and 21 and advance cyclically
//     through 1..55; v = state[inext] - state[inextp]; v == 2^31-1 becomes
//     2^31-2; negative v gets +2^31-1; v is stored at state[inext]
//   - NextN(max) = int(v * (1/(2^31-1)) * max), NextDouble = v * (1/(2^31-1)),
//     NextBytes emits byte(v % 256) per byte
type Subtractive struct {
	seed   int32
	state  [stateSize]int32
	inext  int
	inextp int
	calls  int64
}

var _ Source = (*Subtractive)(nil)

// New creates a deterministic source from seed.
func New(seed int32) *Subtractive {
	r := &Subtractive{seed: seed}

	var subtraction int32
	switch {
	case seed == -2147483648:
		subtraction = mbig
	case seed < 0:
		subtraction = -seed
	default:
		subtraction = seed
	}

	mj := mseed - subtraction
	r.state[55] = mj
	mk := int32(1)
	for i := 1; i < 55; i++ {
		ii := (21 * i) % 55
		r.state[ii] = mk
		mk = mj - mk
		if mk < 0 {
			mk += mbig
		}
		mj = r.state[ii]
	}

	for k := 1; k < 5; k++ {
		for i := 1; i < stateSize; i++ {
			// переполнение int32 заворачивается, это часть алгоритма
			r.state[i] -= r.state[1+(i+30)%55]
			if r.state[i] < 0 {
				r.state[i] += mbig
			}
		}
	}

	r.inext = 0
	r.inextp = 21
	return r
}

// Restore creates a source from seed and advances it by calls samples.
// Used to resume an audited run at a known position.
func Restore(seed int32, calls int64) *Subtractive {
	r := New(seed)
	for i := int64(0); i < calls; i++ {
		r.sample()
	}
	return r
}

func (r *Subtractive) sample() int32 {
	locINext := r.inext + 1
	if locINext >= stateSize {
		locINext = 1
	}
	locINextp := r.inextp + 1
	if locINextp >= stateSize {
		locINextp = 1
	}

	v := r.state[locINext] - r.state[locINextp]
	if v == mbig {
		v--
	}
	if v < 0 {
		v += mbig
	}

	r.state[locINext] = v
	r.inext = locINext
	r.inextp = locINextp
	r.calls++
	return v
}

func (r *Subtractive) unit() float64 {
	return float64(r.sample()) * (1.0 / float64(mbig))
}

// Next implements Source.
func (r *Subtractive) Next() int {
	return int(r.sample())
}

// NextN implements Source.
func (r *Subtractive) NextN(max int) int {
	if max < 0 {
		panic(fmt.Sprintf("random: NextN called with negative max %d", max))
	}
	return int(r.unit() * float64(max))
}

// NextRange implements Source.
func (r *Subtractive) NextRange(min, max int) int {
	if min > max {
		panic(fmt.Sprintf("random: NextRange called with min %d > max %d", min, max))
	}
	return min + r.NextN(max-min)
}

// NextBytes implements Source.
func (r *Subtractive) NextBytes(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(r.sample() % 256)
	}
	return buf
}

// NextDouble implements Source.
func (r *Subtractive) NextDouble() float64 {
	return r.unit()
}

// Seed implements Source.
func (r *Subtractive) Seed() int32 { return r.seed }

// Calls implements Source.
func (r *Subtractive) Calls() int64 { return r.calls }
