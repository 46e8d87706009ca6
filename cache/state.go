package cache

import "image"

// State is the load state of a cached image.
type State uint8

const (
	// StatePending means the image is still loading.
	StatePending State = iota

	// StateReady means the image is decoded and available.
	StateReady

	// StateError means the load failed. The entry keeps the error until
	// it is evicted.
	StateError
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of a cache entry.
type Snapshot struct {
	URL      string
	State    State
	Width    int // natural width, set once ready
	Height   int // natural height, set once ready
	Bitmap   image.Image
	Err      error
	RefCount int
}

// Ready reports whether the snapshot holds a decoded image.
func (s Snapshot) Ready() bool {
	return s.State == StateReady
}

// snapshot copies e. Caller must hold Cache.mu.
func (e *entry) snapshot() Snapshot {
	return Snapshot{
		URL:      e.url,
		State:    e.state,
		Width:    e.width,
		Height:   e.height,
		Bitmap:   e.bitmap,
		Err:      e.err,
		RefCount: e.refs,
	}
}

// Stats holds cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Pending, Ready and Failed count entries per state.
	Pending, Ready, Failed int
	// Loads is the number of loads started.
	Loads uint64
	// Failures is the number of loads that ended in StateError.
	Failures uint64
	// Evictions is the number of settled entries evicted.
	Evictions uint64
	// Cancellations is the number of pending loads cancelled.
	Cancellations uint64
	// Ignored is the number of completions that arrived after cancellation.
	Ignored uint64
}

// Stats returns current cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	s := Stats{Len: len(c.entries)}
	for _, e := range c.entries {
		switch e.state {
		case StatePending:
			s.Pending++
		case StateReady:
			s.Ready++
		case StateError:
			s.Failed++
		}
	}
	c.mu.Unlock()

	s.Loads = c.loads.Load()
	s.Failures = c.failures.Load()
	s.Evictions = c.evictions.Load()
	s.Cancellations = c.cancellations.Load()
	s.Ignored = c.ignored.Load()
	return s
}
