// Package imagefill resolves how raster images are painted inside the
// rectangular boxes of a 2D scene.
//
// # Overview
//
// A shape configures an image paint with a PaintRequest: a URL, a layout
// mode and optional offset, scale, rotation, opacity and blend mode. The
// Resolver turns the request into a Fill for the shape's current box. The
// image behind the URL is loaded once and shared by every shape that
// paints it, through a reference-counted cache (package cache).
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/imagefill"
//		"github.com/gogpu/imagefill/cache"
//		"github.com/gogpu/imagefill/loader"
//	)
//
//	l := loader.New(loader.WithBaseDir("assets"))
//	defer l.Close()
//
//	c := cache.New(l)
//	defer c.Close()
//
//	r := imagefill.NewResolver(c)
//	defer r.Close()
//
//	fill := r.Resolve(shape, "fill", imagefill.PaintRequest{
//		URL:  "photo.png",
//		Mode: imagefill.ModeCover,
//	}, imagefill.NewBox(0, 0, 320, 200))
//
// Resolve never blocks. While the image loads it returns the transparent
// placeholder; on completion the shape receives ForceUpdate and an
// EventLoaded carrying the real fill. Failures arrive as EventError with
// a *LoadError, and the placeholder stays.
//
// # Modes
//
//   - ModeCover: uniform scale covering the box, centered (default)
//   - ModeFit: uniform scale fitting inside the box, centered
//   - ModeStretch: the bitmap is resized to the box
//   - ModeClip: natural size, panned by offset, zoomed by scale
//   - ModeRepeat: tiled; only quarter-turn rotations apply
//
// Fit and cover turn the image about the box center. Any rotation other
// than a half turn swaps the image axes when the scale is chosen.
//
// # Transforms
//
// Matrix is an affine transform in canvas order. ModeTransform and the
// per-mode helpers (FitTransform, CoverTransform, ClipTransform,
// RepeatTransform, StretchTransform) compute the image-to-box transform
// without touching the cache, so they can be used on their own.
//
// # Auto-sizing
//
// A host without explicit width or height adopts the natural image size
// the first time the image is ready. The change is reported with one
// ForceUpdate so the host re-lays out and resolves again.
//
// # Renderers
//
// Fills carry an opaque PatternHandle built by a PatternRenderer. The
// default SoftwareRenderer builds CPU patterns and can paint them into any
// draw.Image.
//
// # Logging
//
// The package is silent by default. Call SetLogger to route its
// diagnostics to a slog.Logger.
package imagefill
