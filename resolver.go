package imagefill

import (
	"log/slog"
	"math"
	"sync"

	"github.com/gogpu/imagefill/cache"
)

// Resolver turns image paint requests into fills.
//
// Each host+attribute pair owns at most one binding: a cache reference for
// the requested URL. Resolving the pair again replaces the binding, and
// Recycle releases every binding of a host. Hosts are used as map keys and
// must be comparable; pointer hosts are the usual choice.
//
// Resolver is safe for concurrent use. Load completions arrive on loader
// goroutines; Host methods are called from there without any Resolver or
// cache lock held.
type Resolver struct {
	cache    *cache.Cache
	renderer PatternRenderer
	log      *slog.Logger

	mu       sync.Mutex
	bindings map[bindingKey]*binding
	closed   bool
}

type bindingKey struct {
	host Host
	attr string
}

type binding struct {
	ref *cache.Ref
	req PaintRequest
	box Box
}

// NewResolver creates a Resolver on top of c.
func NewResolver(c *cache.Cache, opts ...ResolverOption) *Resolver {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.renderer == nil {
		o.renderer = NewSoftwareRenderer()
	}
	return &Resolver{
		cache:    c,
		renderer: o.renderer,
		log:      o.logger,
		bindings: make(map[bindingKey]*binding),
	}
}

func (r *Resolver) logger() *slog.Logger {
	if r.log != nil {
		return r.log
	}
	return logger()
}

// Resolve returns the fill for the paint attr of host, painted inside box.
//
// A ready image yields a pattern fill unless auto-sizing changed the host,
// in which case the host is asked to re-layout and the placeholder is
// returned. A pending image yields the placeholder; when the load
// completes the host gets one ForceUpdate followed by an EventLoaded, or
// an EventError on failure. A failed image yields the placeholder and
// emits an EventError with the original cause on every resolve.
//
// Resolve never blocks on I/O.
func (r *Resolver) Resolve(host Host, attr string, req PaintRequest, box Box) Fill {
	key := bindingKey{host: host, attr: attr}

	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		r.fail(host, attr, req, ErrResolverClosed)
		return placeholderFill(req)
	}

	ref, err := r.cache.Acquire(req.URL)
	if err != nil {
		r.release(r.detach(key))
		r.fail(host, attr, req, err)
		return placeholderFill(req)
	}

	b := &binding{ref: ref, req: req, box: box}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		ref.Recycle()
		r.fail(host, attr, req, ErrResolverClosed)
		return placeholderFill(req)
	}
	old := r.bindings[key]
	r.bindings[key] = b
	r.mu.Unlock()

	// The new reference is taken first so re-resolving the same URL keeps
	// the entry alive.
	r.release(old)

	return r.resolve(host, attr, b)
}

func (r *Resolver) resolve(host Host, attr string, b *binding) Fill {
	if snap := b.ref.Snapshot(); snap.State == cache.StateReady {
		fill, _ := r.readyFill(host, b, snap)
		return fill
	}

	// A failed entry reports its error right away.
	b.ref.Load(
		func(s cache.Snapshot) { r.loaded(host, attr, b, s) },
		func(err error) { r.failed(host, attr, b, err) },
	)
	return placeholderFill(b.req)
}

// readyFill builds the fill of a ready image. The bool result reports
// whether auto-sizing changed the host, which then has been asked to
// re-layout.
func (r *Resolver) readyFill(host Host, b *binding, snap cache.Snapshot) (Fill, bool) {
	w, h := float64(snap.Width), float64(snap.Height)
	if autoSize(host, w, h) {
		r.logger().Debug("imagefill: auto-sized host",
			slog.String("url", snap.URL),
			slog.Int("width", snap.Width),
			slog.Int("height", snap.Height))
		host.ForceUpdate(DimWidth)
		return placeholderFill(b.req), true
	}

	req, box := b.req, b.box
	m, ok := ModeTransform(req, box, w, h)

	bw, bh := snap.Width, snap.Height
	if req.Mode == ModeStretch && !box.SameSize(w, h) {
		bw, bh = int(math.Round(box.Width)), int(math.Round(box.Height))
	}
	bitmap := r.renderer.PrepareBitmap(snap.Bitmap, bw, bh, req.opacity())

	tileable := req.Mode.Tileable()
	handle := r.renderer.CreateFillHandle(bitmap, tileable)
	fill := Fill{
		Kind:      FillPattern,
		URL:       req.URL,
		Pattern:   handle,
		Tileable:  tileable,
		Opacity:   req.opacity(),
		BlendMode: req.BlendMode,
	}
	if ok {
		r.renderer.ApplyTransform(handle, m)
		fill.Transform = &m
	}
	return fill, false
}

func (r *Resolver) loaded(host Host, attr string, b *binding, snap cache.Snapshot) {
	if !r.bound(host, attr, b) {
		return
	}
	fill, sized := r.readyFill(host, b, snap)
	if !sized {
		host.ForceUpdate(DimWidth)
	}
	r.logger().Debug("imagefill: image loaded", slog.String("url", snap.URL), slog.String("attr", attr))
	host.EmitEvent(Event{Kind: EventLoaded, Attr: attr, Request: b.req, Fill: fill})
}

func (r *Resolver) failed(host Host, attr string, b *binding, err error) {
	if !r.bound(host, attr, b) {
		return
	}
	r.fail(host, attr, b.req, err)
}

func (r *Resolver) fail(host Host, attr string, req PaintRequest, err error) {
	lerr := &LoadError{URL: req.URL, Cause: err}
	r.logger().Warn("imagefill: image failed", slog.String("url", req.URL), slog.Any("err", err))
	host.EmitEvent(Event{Kind: EventError, Attr: attr, Request: req, Err: lerr})
}

// bound reports whether b is still the live binding of host+attr.
func (r *Resolver) bound(host Host, attr string, b *binding) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return !r.closed && r.bindings[bindingKey{host: host, attr: attr}] == b
}

func (r *Resolver) detach(key bindingKey) *binding {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := r.bindings[key]
	delete(r.bindings, key)
	return b
}

func (r *Resolver) release(b *binding) {
	if b != nil {
		b.ref.Recycle()
	}
}

// Recycle releases every binding owned by host. Pending loads nobody else
// waits for are cancelled, and images nobody else uses are evicted.
// Recycling a host without bindings is a no-op.
func (r *Resolver) Recycle(host Host) {
	r.mu.Lock()
	var owned []*binding
	for key, b := range r.bindings {
		if key.host == host {
			owned = append(owned, b)
			delete(r.bindings, key)
		}
	}
	r.mu.Unlock()

	for _, b := range owned {
		b.ref.Recycle()
	}
	if len(owned) > 0 {
		r.logger().Debug("imagefill: recycled host", slog.Int("bindings", len(owned)))
	}
}

// Bindings returns the number of live host+attribute bindings.
func (r *Resolver) Bindings() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.bindings)
}

// Close releases all bindings. Later Resolve calls report
// ErrResolverClosed to the host. The cache is not closed.
func (r *Resolver) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	bindings := r.bindings
	r.bindings = make(map[bindingKey]*binding)
	r.mu.Unlock()

	for _, b := range bindings {
		b.ref.Recycle()
	}
}
