package cache

import (
	"errors"
	"image"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/text/unicode/norm"
)

// Cache errors.
var (
	// ErrClosed is returned by Acquire after Close.
	ErrClosed = errors.New("cache: closed")

	// ErrEmptyURL is returned by Acquire for an empty URL.
	ErrEmptyURL = errors.New("cache: empty url")

	// ErrNoImage is reported when a loader succeeds without an image.
	ErrNoImage = errors.New("cache: loader returned no image")
)

// LoadID identifies one in-flight load of a Loader.
type LoadID string

// Loader fetches and decodes images for the cache.
//
// Load starts loading url and returns immediately. At most one of
// onSuccess or onError is called, from any goroutine, possibly before Load
// returns; a load that is not cancelled must call one of them. Unload
// tells the loader that a consumer of the load went away; last is true
// when no consumer is left, in which case the loader should cancel the
// work and may drop the callbacks.
type Loader interface {
	Load(url string, onSuccess func(image.Image), onError func(error)) LoadID
	Unload(id LoadID, last bool)
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger for cache transitions. The default discards
// everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Cache is a reference-counted registry of images keyed by URL.
//
// Cache must not be copied after creation (has mutex).
type Cache struct {
	loader Loader
	log    *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
	closed  bool

	// Statistics (atomic for lock-free reads)
	loads         atomic.Uint64
	failures      atomic.Uint64
	evictions     atomic.Uint64
	cancellations atomic.Uint64
	ignored       atomic.Uint64
}

// entry is the shared state of one URL. All fields are guarded by
// Cache.mu.
type entry struct {
	url     string
	state   State
	bitmap  image.Image
	width   int
	height  int
	err     error
	refs    int
	loadID  LoadID
	waiters []waiter
	removed bool

	// owed counts non-last Unloads that arrived before loadID was known.
	owed int
}

type waiter struct {
	ref     *Ref
	onReady func(Snapshot)
	onError func(error)
}

// New creates a cache that loads images with loader.
func New(loader Loader, opts ...Option) *Cache {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache{
		loader:  loader,
		log:     o.logger,
		entries: make(map[string]*entry),
	}
}

// Key returns the cache key of url: surrounding space trimmed and
// Unicode normalised to NFC, so equal URLs typed differently share one
// entry.
func Key(url string) string {
	return norm.NFC.String(strings.TrimSpace(url))
}

// Acquire returns a new reference to the entry for url, creating the entry
// and starting its load when none exists.
func (c *Cache) Acquire(url string) (*Ref, error) {
	key := Key(url)
	if key == "" {
		return nil, ErrEmptyURL
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if e, ok := c.entries[key]; ok {
		e.refs++
		refs := e.refs
		c.mu.Unlock()
		c.log.Debug("cache: shared", slog.String("url", key), slog.Int("refs", refs))
		return &Ref{c: c, e: e}, nil
	}
	e := &entry{url: key, state: StatePending, refs: 1}
	c.entries[key] = e
	ref := &Ref{c: c, e: e}
	c.mu.Unlock()

	c.loads.Add(1)
	c.log.Debug("cache: load", slog.String("url", key))
	id := c.loader.Load(key,
		func(img image.Image) {
			if img == nil {
				c.settle(e, nil, ErrNoImage)
				return
			}
			c.settle(e, img, nil)
		},
		func(err error) { c.settle(e, nil, err) },
	)

	c.mu.Lock()
	cancel := e.removed && e.state == StatePending
	var owed int
	if e.state == StatePending {
		e.loadID = id
		owed, e.owed = e.owed, 0
	}
	c.mu.Unlock()

	// Consumers that left while Load was starting.
	for range owed {
		c.loader.Unload(id, false)
	}
	// Closed while Load was starting.
	if cancel {
		c.loader.Unload(id, true)
	}
	return ref, nil
}

// settle moves e out of StatePending and notifies its waiters.
func (c *Cache) settle(e *entry, img image.Image, err error) {
	c.mu.Lock()
	if e.removed || e.state != StatePending {
		c.mu.Unlock()
		c.ignored.Add(1)
		c.log.Debug("cache: late completion ignored", slog.String("url", e.url))
		return
	}
	if err != nil {
		e.state = StateError
		e.err = err
	} else {
		e.state = StateReady
		e.bitmap = img
		b := img.Bounds()
		e.width, e.height = b.Dx(), b.Dy()
	}
	waiters := e.waiters
	e.waiters = nil
	snap := e.snapshot()
	c.mu.Unlock()

	if err != nil {
		c.failures.Add(1)
		c.log.Warn("cache: load failed", slog.String("url", e.url), slog.Any("err", err))
	} else {
		c.log.Debug("cache: ready", slog.String("url", e.url),
			slog.Int("width", snap.Width), slog.Int("height", snap.Height))
	}

	for _, w := range waiters {
		// The consumer may have recycled while earlier waiters ran.
		if !c.live(w.ref) {
			continue
		}
		if err != nil {
			if w.onError != nil {
				w.onError(err)
			}
		} else if w.onReady != nil {
			w.onReady(snap)
		}
	}
}

func (c *Cache) live(r *Ref) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !r.recycled && !r.e.removed
}

// remove drops e from the registry and releases its bitmap.
// Caller must hold c.mu.
func (c *Cache) remove(e *entry) {
	if c.entries[e.url] == e {
		delete(c.entries, e.url)
	}
	e.removed = true
	e.bitmap = nil
	e.waiters = nil
}

// Lookup returns a snapshot of the entry for url without taking a
// reference.
func (c *Cache) Lookup(url string) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[Key(url)]
	if !ok {
		return Snapshot{}, false
	}
	return e.snapshot(), true
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Close cancels every pending load and drops all entries. Outstanding
// references become inert; their Recycle is a no-op. Close is idempotent.
func (c *Cache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	var pending []LoadID
	for _, e := range c.entries {
		if e.state == StatePending && e.loadID != "" {
			pending = append(pending, e.loadID)
		}
		c.remove(e)
	}
	c.mu.Unlock()

	for _, id := range pending {
		c.cancellations.Add(1)
		c.loader.Unload(id, true)
	}
}

// Ref is one consumer's reference to a cached image. A Ref must be
// recycled exactly once when the consumer no longer needs the image;
// further Recycle calls are no-ops.
type Ref struct {
	c *Cache
	e *entry

	// guarded by c.mu
	recycled bool
}

// URL returns the cache key of the referenced image.
func (r *Ref) URL() string {
	return r.e.url
}

// Snapshot returns the current state of the referenced entry.
func (r *Ref) Snapshot() Snapshot {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	return r.e.snapshot()
}

// Load registers continuations for the referenced image. If the entry has
// already settled, the matching continuation runs before Load returns;
// otherwise it runs once the load completes. Either function may be nil.
// Nothing runs once the reference is recycled.
func (r *Ref) Load(onReady func(Snapshot), onError func(error)) {
	c := r.c
	c.mu.Lock()
	if r.recycled || r.e.removed {
		c.mu.Unlock()
		return
	}

	switch r.e.state {
	case StatePending:
		r.e.waiters = append(r.e.waiters, waiter{ref: r, onReady: onReady, onError: onError})
		c.mu.Unlock()
	case StateReady:
		snap := r.e.snapshot()
		c.mu.Unlock()
		if onReady != nil {
			onReady(snap)
		}
	default:
		err := r.e.err
		c.mu.Unlock()
		if onError != nil {
			onError(err)
		}
	}
}

// Recycle releases the reference.
//
// The "last reference" decision comes from the entry's reference count.
// For a pending entry the loader is told through Unload, and the last
// reference cancels the load and removes the entry. A settled entry is
// evicted when its count reaches zero. Continuations registered through
// this reference never run afterwards.
func (r *Ref) Recycle() {
	c := r.c
	c.mu.Lock()
	if r.recycled {
		c.mu.Unlock()
		return
	}
	r.recycled = true

	e := r.e
	if e.removed {
		c.mu.Unlock()
		return
	}

	e.refs--
	e.waiters = slices.DeleteFunc(e.waiters, func(w waiter) bool { return w.ref == r })
	last := e.refs <= 0
	state, id := e.state, e.loadID
	if last {
		c.remove(e)
	} else if state == StatePending && id == "" {
		e.owed++
	}
	c.mu.Unlock()

	switch {
	case state == StatePending:
		if last {
			c.cancellations.Add(1)
			c.log.Debug("cache: load cancelled", slog.String("url", e.url))
		}
		// An empty id means Acquire is still starting the load; it sends
		// the owed notifications once Load returns.
		if id != "" {
			c.loader.Unload(id, last)
		}
	case last:
		c.evictions.Add(1)
		c.log.Debug("cache: evicted", slog.String("url", e.url))
	}
}
