package sunbind

import (
	"sync"

	"github.com/sunbind/sunbind/internal/checkpoint"
	"github.com/sunbind/sunbind/types"
)

// Recorder is a postprocess hook that writes every Nth accepted step to a
// checkpoint store before handing the step on to an optional next hook.
type Recorder struct {
	store *checkpoint.Store
	every int
	next  types.PostprocessFn

	mu    sync.Mutex
	steps uint64
	saved int
	err   error
}

// NewRecorder records one step out of every. every < 1 is treated as 1.
func NewRecorder(store *checkpoint.Store, every int, next types.PostprocessFn) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{store: store, every: every, next: next}
}

// Hook returns the function to install in the postprocess slot.
func (r *Recorder) Hook() types.PostprocessFn {
	return r.postprocess
}

func (r *Recorder) postprocess(t float64, y types.Vector) int {
	r.mu.Lock()
	r.steps++
	step := r.steps
	if step%uint64(r.every) == 0 {
		if err := r.store.Save(checkpoint.Point{Step: step, T: t, Y: y}); err != nil {
			if r.err == nil {
				r.err = err
			}
			r.mu.Unlock()
			return types.StatusPostprocessFail
		}
		r.saved++
	}
	r.mu.Unlock()

	if r.next != nil {
		return r.next(t, y)
	}
	return types.StatusSuccess
}

// Saved returns the number of checkpoints written.
func (r *Recorder) Saved() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved
}

// Err returns the first store error, which also stopped the integrator.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
