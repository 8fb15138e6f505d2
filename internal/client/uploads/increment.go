package uploads

import "math/rand/v2"

// MaxIncrement is the upper bound of a random progress step.
const MaxIncrement = 10

// IncrementFunc yields the progress step applied on one tick.
type IncrementFunc func() int

// RandomIncrement returns a uniformly distributed step in [1, MaxIncrement].
func RandomIncrement() int {
	return rand.IntN(MaxIncrement) + 1
}

// Sequence returns an IncrementFunc cycling through steps. It is meant for
// deterministic runs and panics when steps is empty.
func Sequence(steps ...int) IncrementFunc {
	if len(steps) == 0 {
		panic("uploads: empty increment sequence")
	}
	i := 0
	return func() int {
		v := steps[i%len(steps)]
		i++
		return v
	}
}
