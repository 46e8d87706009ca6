package imagefill

import "image"

// PatternHandle is an opaque pattern created by a PatternRenderer.
type PatternHandle any

// PatternRenderer turns decoded images into fill patterns.
type PatternRenderer interface {
	// PrepareBitmap returns src resized to width x height with opacity
	// applied. A width or height of zero keeps the natural size.
	PrepareBitmap(src image.Image, width, height int, opacity float64) image.Image

	// CreateFillHandle creates a pattern from bitmap. Tileable patterns
	// repeat in both directions; others are transparent outside the
	// bitmap.
	CreateFillHandle(bitmap image.Image, tileable bool) PatternHandle

	// ApplyTransform sets the image-to-box transform of a pattern.
	ApplyTransform(h PatternHandle, m Matrix)
}
