// Package cache provides the reference-counted image registry shared by
// every paint that draws the same image.
//
// Entries are keyed by the image URL. The first Acquire of a URL creates a
// pending entry and starts a load through the injected Loader; later
// Acquires share the entry, whether it is still loading or already
// settled, so an image is fetched and decoded once.
//
//	c := cache.New(loader.New(cfg))
//	defer c.Close()
//
//	ref, err := c.Acquire("https://example.com/tile.png")
//	if err != nil {
//		return err
//	}
//	ref.Load(
//		func(s cache.Snapshot) { /* s.Bitmap is ready */ },
//		func(err error) { /* load failed */ },
//	)
//	...
//	ref.Recycle()
//
// # Lifecycle
//
// An entry moves from StatePending to StateReady or StateError exactly
// once. Continuations registered with Ref.Load run at most once, in
// registration order. Error entries stay cached until their last
// reference is recycled; nothing is retried automatically.
//
// Recycling the last reference of a pending entry cancels the load and
// removes the entry. A completion that still arrives afterwards is
// ignored. Settled entries are evicted, and their bitmap released, when
// the reference count drops to zero.
//
// # Thread Safety
//
// Cache is safe for concurrent use. Bookkeeping is serialised by a single
// mutex; continuations are always invoked without the lock held, so they
// may call back into the cache.
package cache
