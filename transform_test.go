package imagefill

import "testing"

func TestModeTransformSkipsSameSize(t *testing.T) {
	box := NewBox(0, 0, 100, 80)
	for _, mode := range []PaintMode{ModeCover, ModeFit, ModeStretch, ModeClip, ModeRepeat} {
		t.Run(mode.String(), func(t *testing.T) {
			if m, ok := ModeTransform(PaintRequest{Mode: mode}, box, 100, 80); ok || !m.IsIdentity() {
				t.Errorf("ModeTransform = %+v, %v; want identity, false", m, ok)
			}
		})
	}

	// Geometry disables the shortcut.
	req := PaintRequest{Mode: ModeClip, Offset: &Point{X: 1}}
	if _, ok := ModeTransform(req, box, 100, 80); !ok {
		t.Error("clip with offset should produce a transform")
	}
}

func TestModeTransformSameSizeMovedBox(t *testing.T) {
	for _, mode := range []PaintMode{ModeCover, ModeFit, ModeStretch, ModeClip, ModeRepeat} {
		t.Run(mode.String(), func(t *testing.T) {
			m, ok := ModeTransform(PaintRequest{Mode: mode}, NewBox(10, 10, 40, 20), 40, 20)
			if !ok {
				t.Fatal("expected a transform")
			}
			if got := m.TransformPoint(Pt(0, 0)); !nearPoint(got, Pt(10, 10)) {
				t.Errorf("origin -> %v, want (10, 10)", got)
			}
		})
	}
}

func TestFitAndCoverScale(t *testing.T) {
	box := NewBox(0, 0, 100, 50)
	if got := FitScale(box, 200, 200, 0); got != 0.25 {
		t.Errorf("FitScale = %v, want 0.25", got)
	}
	if got := CoverScale(box, 200, 200, 0); got != 0.5 {
		t.Errorf("CoverScale = %v, want 0.5", got)
	}
	// A quarter turn swaps the image axes.
	if got := FitScale(box, 200, 100, 90); got != 0.25 {
		t.Errorf("FitScale(90) = %v, want 0.25", got)
	}
	if got := FitScale(box, 200, 100, 180); got != 0.5 {
		t.Errorf("FitScale(180) = %v, want 0.5", got)
	}
}

func TestFitCoverTransform(t *testing.T) {
	box := NewBox(0, 0, 100, 50)
	tests := []struct {
		name     string
		mode     PaintMode
		w, h     float64
		rotation float64
		in, want Point
	}{
		{"fit origin", ModeFit, 200, 200, 0, Pt(0, 0), Pt(25, 0)},
		{"fit corner", ModeFit, 200, 200, 0, Pt(200, 200), Pt(75, 50)},
		{"cover origin", ModeCover, 200, 200, 0, Pt(0, 0), Pt(0, -25)},
		{"cover corner", ModeCover, 200, 200, 0, Pt(200, 200), Pt(100, 75)},
		{"fit rotated center", ModeFit, 200, 100, 90, Pt(100, 50), Pt(50, 25)},
		{"fit rotated origin", ModeFit, 200, 100, 90, Pt(0, 0), Pt(62.5, 0)},
		{"fit rotated corner", ModeFit, 200, 100, 90, Pt(200, 100), Pt(37.5, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := ModeTransform(PaintRequest{Mode: tt.mode, Rotation: tt.rotation}, box, tt.w, tt.h)
			if !ok {
				t.Fatal("expected a transform")
			}
			if got := m.TransformPoint(tt.in); !nearPoint(got, tt.want) {
				t.Errorf("%v -> %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFitCoverOffsetBox(t *testing.T) {
	box := NewBox(20, 30, 100, 100)
	m := FitTransform(box, 50, 100, 0)
	if got := m.TransformPoint(Pt(0, 0)); !nearPoint(got, Pt(45, 30)) {
		t.Errorf("origin -> %v, want (45, 30)", got)
	}
	m = CoverTransform(box, 50, 100, 0)
	if got := m.TransformPoint(Pt(25, 50)); !nearPoint(got, box.Center()) {
		t.Errorf("image center -> %v, want box center %v", got, box.Center())
	}
}

func TestStretchTransform(t *testing.T) {
	if _, ok := StretchTransform(NewBox(0, 0, 50, 50)); ok {
		t.Error("stretch at the origin needs no transform")
	}
	m, ok := StretchTransform(NewBox(5, 7, 50, 50))
	if !ok || m != Translate(5, 7) {
		t.Errorf("StretchTransform = %+v, %v; want Translate(5, 7)", m, ok)
	}
}

func TestClipTransform(t *testing.T) {
	tests := []struct {
		name     string
		box      Box
		offset   *Point
		scale    *ScaleValue
		rotation float64
		ok       bool
		in, want Point
	}{
		{"no params at origin", NewBox(0, 0, 10, 10), nil, nil, 0, false, Pt(1, 1), Pt(1, 1)},
		{"no params moved box", NewBox(10, 20, 10, 10), nil, nil, 0, true, Pt(1, 1), Pt(11, 21)},
		{"offset and scale", NewBox(10, 20, 10, 10), &Point{X: 5, Y: 5}, UniformScale(2), 0, true, Pt(1, 1), Pt(17, 27)},
		{"axis scale", NewBox(0, 0, 10, 10), nil, AxisScale(2, 3), 0, true, Pt(1, 1), Pt(2, 3)},
		{"zero scale ignored", NewBox(0, 0, 10, 10), nil, UniformScale(0), 0, false, Pt(1, 1), Pt(1, 1)},
		{"rotation", NewBox(0, 0, 10, 10), nil, nil, 90, true, Pt(1, 0), Pt(0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := ClipTransform(tt.box, tt.offset, tt.scale, tt.rotation)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got := m.TransformPoint(tt.in); !nearPoint(got, tt.want) {
				t.Errorf("%v -> %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRepeatTransform(t *testing.T) {
	const w, h = 40, 60
	tests := []struct {
		name     string
		box      Box
		scale    *ScaleValue
		rotation float64
		in, want Point
	}{
		{"plain", NewBox(0, 0, 100, 100), nil, 0, Pt(3, 4), Pt(3, 4)},
		{"box origin", NewBox(10, 20, 100, 100), nil, 0, Pt(0, 0), Pt(10, 20)},
		{"90 origin", NewBox(0, 0, 100, 100), nil, 90, Pt(0, 0), Pt(60, 0)},
		{"90 far corner", NewBox(0, 0, 100, 100), nil, 90, Pt(40, 60), Pt(0, 40)},
		{"180 origin", NewBox(0, 0, 100, 100), nil, 180, Pt(0, 0), Pt(40, 60)},
		{"270 origin", NewBox(0, 0, 100, 100), nil, 270, Pt(0, 0), Pt(0, 40)},
		{"-90 is 270", NewBox(0, 0, 100, 100), nil, -90, Pt(0, 0), Pt(0, 40)},
		{"45 ignored", NewBox(0, 0, 100, 100), nil, 45, Pt(3, 4), Pt(3, 4)},
		{"scale about box origin", NewBox(10, 10, 100, 100), UniformScale(2), 0, Pt(1, 1), Pt(12, 12)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := RepeatTransform(tt.box, w, h, tt.scale, tt.rotation)
			if got := m.TransformPoint(tt.in); !nearPoint(got, tt.want) {
				t.Errorf("%v -> %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRepeatRotatedTileStaysInPositiveQuadrant(t *testing.T) {
	const w, h = 40, 60
	box := NewBox(0, 0, 100, 100)
	for _, deg := range []float64{90, 180, 270} {
		m := RepeatTransform(box, w, h, nil, deg)
		for _, c := range []Point{Pt(0, 0), Pt(w, 0), Pt(0, h), Pt(w, h)} {
			p := m.TransformPoint(c)
			if p.X < -epsilon || p.Y < -epsilon {
				t.Errorf("rotation %v: corner %v -> %v outside positive quadrant", deg, c, p)
			}
		}
	}
}
