package imagefill

import (
	"log/slog"
	"math"
)

// ModeTransform derives the transform that maps image-local space into box
// for the request's mode. The bool result is false when no transform is
// needed: the box sits at the origin with exactly the image size and the
// request sets no offset, scale or rotation, or the mode needs no transform
// for this box.
func ModeTransform(req PaintRequest, box Box, imageW, imageH float64) (Matrix, bool) {
	if box.X == 0 && box.Y == 0 && box.SameSize(imageW, imageH) && !req.hasGeometry() {
		return Identity(), false
	}

	switch req.Mode {
	case ModeStretch:
		return StretchTransform(box)
	case ModeClip:
		return ClipTransform(box, req.Offset, req.Scale, req.Rotation)
	case ModeRepeat:
		return RepeatTransform(box, imageW, imageH, req.Scale, req.Rotation), true
	case ModeFit:
		return FitTransform(box, imageW, imageH, req.Rotation), true
	default:
		return CoverTransform(box, imageW, imageH, req.Rotation), true
	}
}

// StretchTransform returns the transform of a stretched image. The bitmap
// itself is resized to the box by the renderer, so only the box origin is
// carried, and only when it is not zero.
func StretchTransform(box Box) (Matrix, bool) {
	if box.X == 0 && box.Y == 0 {
		return Identity(), false
	}
	return Identity().Translate(box.X, box.Y), true
}

// ClipTransform pans, zooms and turns an image of natural size inside box:
// translate(box) then translate(offset) then scale then rotate.
// All three parameters are optional.
func ClipTransform(box Box, offset *Point, scale *ScaleValue, rotation float64) (Matrix, bool) {
	if offset == nil && !scale.isSet() && rotation == 0 && box.X == 0 && box.Y == 0 {
		return Identity(), false
	}

	m := Identity().Translate(box.X, box.Y)
	if offset != nil {
		m = m.Translate(offset.X, offset.Y)
	}
	if scale.isSet() {
		m = m.Scale(scale.X, scale.Y)
	}
	if rotation != 0 {
		m = m.Rotate(rotation)
	}
	return m, true
}

// RepeatTransform returns the tiling transform for an image of w x h.
//
// A quarter-turn rotation is applied first, followed by a translation that
// brings the rotated tile back to the positive quadrant, so the tiling
// stays anchored to the box. Other rotations are ignored. The box
// translation follows, and the scale pivots about the box origin.
func RepeatTransform(box Box, w, h float64, scale *ScaleValue, rotation float64) Matrix {
	m := Identity()

	if rotation != 0 {
		switch quarter := normalizeDegrees(rotation); quarter {
		case 90:
			m = m.Rotate(90).Translate(h, 0)
		case 180:
			m = m.Rotate(180).Translate(w, h)
		case 270:
			m = m.Rotate(270).Translate(0, w)
		case 0:
		default:
			logger().Debug("imagefill: repeat ignores non quarter-turn rotation",
				slog.Float64("rotation", rotation))
		}
	}

	m = m.Translate(box.X, box.Y)
	if scale.isSet() {
		m = m.ScaleAbout(box.Origin(), scale.X, scale.Y)
	}
	return m
}

// FitTransform scales an image of w x h uniformly to fit inside box and
// centers it. The rotation turns it about the box center.
func FitTransform(box Box, w, h, rotation float64) Matrix {
	return fitOrCover(box, w, h, rotation, math.Min)
}

// CoverTransform scales an image of w x h uniformly to cover box and
// centers it. The rotation turns it about the box center.
func CoverTransform(box Box, w, h, rotation float64) Matrix {
	return fitOrCover(box, w, h, rotation, math.Max)
}

// FitScale returns the uniform scale picked by FitTransform.
func FitScale(box Box, w, h, rotation float64) float64 {
	sw, sh := axisScales(box, w, h, rotation)
	return math.Min(sw, sh)
}

// CoverScale returns the uniform scale picked by CoverTransform.
func CoverScale(box Box, w, h, rotation float64) float64 {
	sw, sh := axisScales(box, w, h, rotation)
	return math.Max(sw, sh)
}

func fitOrCover(box Box, w, h, rotation float64, pick func(a, b float64) float64) Matrix {
	scale := pick(axisScales(box, w, h, rotation))
	x := box.X + (box.Width-w*scale)/2
	y := box.Y + (box.Height-h*scale)/2

	m := Identity().Translate(x, y).ScaleUniform(scale)
	if rotation != 0 {
		m = m.RotateAbout(box.Center(), rotation)
	}
	return m
}

// axisScales returns the per-axis scales of an image of w x h into box.
// Any rotation other than a half turn swaps the image axes.
func axisScales(box Box, w, h, rotation float64) (sw, sh float64) {
	if rotation != 0 && rotation != 180 {
		w, h = h, w
	}
	return box.Width / w, box.Height / h
}

// normalizeDegrees maps deg into [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
