package autodiff

// Tape records the pullbacks of a chain of steps during the forward pass and
// replays them in reverse during the backward pass.
//
// Each step's pullback maps the tangent of its output to the tangent of its
// input (threaded to the previous step) and a per-step tangent P, such as
// the tangent of a layer's parameters.
//
// Usage:
//
//	tape := autodiff.NewTape[X, P](len(layers))
//	for _, l := range layers {
//	    y, pb := l.ValueWithPullback(x)
//	    tape.Record(...)
//	    x = y
//	}
//	dx, dParams := tape.Backward(seed)
//
// Backward does not consume the tape: it may be called repeatedly.
type Tape[T, P any] struct {
	pullbacks []func(T) (T, P) // Recorded pullbacks, in execution order
}

// NewTape creates a tape with room for capacity steps.
func NewTape[T, P any](capacity int) *Tape[T, P] {
	return &Tape[T, P]{
		pullbacks: make([]func(T) (T, P), 0, capacity),
	}
}

// Record appends a step's pullback.
func (t *Tape[T, P]) Record(pb func(T) (T, P)) {
	t.pullbacks = append(t.pullbacks, pb)
}

// NumOps returns the number of recorded steps.
func (t *Tape[T, P]) NumOps() int {
	return len(t.pullbacks)
}

// Clear removes all recorded steps.
func (t *Tape[T, P]) Clear() {
	t.pullbacks = t.pullbacks[:0]
}

// Backward feeds seed through the recorded pullbacks from last to first.
//
// Returns the tangent of the first step's input and the per-step tangents
// in execution order. An empty tape returns seed unchanged and no tangents.
func (t *Tape[T, P]) Backward(seed T) (T, []P) {
	tangents := make([]P, len(t.pullbacks))
	current := seed
	for i := len(t.pullbacks) - 1; i >= 0; i-- {
		current, tangents[i] = t.pullbacks[i](current)
	}
	return current, tangents
}
