package intent

import "sync"

// Recorder is a Dispatcher that keeps every intent in memory. It is safe
// for concurrent use, so it can sit behind the debounced pointer channel.
type Recorder struct {
	mu      sync.Mutex
	intents []Intent
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Dispatch records in.
func (r *Recorder) Dispatch(in Intent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.intents = append(r.intents, in)
}

// Intents returns a copy of the recorded intents in dispatch order.
func (r *Recorder) Intents() []Intent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Intent, len(r.intents))
	copy(out, r.intents)
	return out
}

// Len returns the number of recorded intents.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.intents)
}
