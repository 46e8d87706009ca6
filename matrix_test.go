package imagefill

import (
	"math"
	"testing"

	"golang.org/x/image/math/f64"
)

const epsilon = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func nearPoint(p, q Point) bool {
	return near(p.X, q.X) && near(p.Y, q.Y)
}

func nearMatrix(m, n Matrix) bool {
	return near(m.A, n.A) && near(m.B, n.B) && near(m.C, n.C) &&
		near(m.D, n.D) && near(m.E, n.E) && near(m.F, n.F)
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Point
		want Point
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translate", Translate(10, -5), Pt(1, 1), Pt(11, -4)},
		{"scale", Scale(2, 3), Pt(1, 1), Pt(2, 3)},
		{"rotate 90", Rotate(90), Pt(1, 0), Pt(0, 1)},
		{"rotate 180", Rotate(180), Pt(1, 2), Pt(-1, -2)},
		{"rotate 270", Rotate(270), Pt(1, 0), Pt(0, -1)},
		{"rotate -90", Rotate(-90), Pt(1, 0), Pt(0, -1)},
		{"rotate 45", Rotate(45), Pt(1, 0), Pt(math.Sqrt2/2, math.Sqrt2/2)},
		{"rotate 450", Rotate(450), Pt(1, 0), Pt(0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.in); !nearPoint(got, tt.want) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuarterTurnsAreExact(t *testing.T) {
	for _, deg := range []float64{90, 180, 270, -90, -180, -270, 360} {
		m := Rotate(deg)
		for _, v := range []float64{m.A, m.B, m.C, m.D} {
			if v != 0 && v != 1 && v != -1 {
				t.Errorf("Rotate(%v) = %+v, want exact entries", deg, m)
				break
			}
		}
	}
}

func TestMultiplyOrder(t *testing.T) {
	// Scale applies first, then the translation.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	if got := m.TransformPoint(Pt(1, 1)); !nearPoint(got, Pt(12, 2)) {
		t.Errorf("got %v, want (12, 2)", got)
	}
}

func TestTranslateOuterAndInner(t *testing.T) {
	m := Scale(2, 2)
	if got := m.Translate(1, 0).TransformPoint(Point{}); !nearPoint(got, Pt(1, 0)) {
		t.Errorf("Translate: origin -> %v, want (1, 0)", got)
	}
	if got := m.TranslateInner(1, 0).TransformPoint(Point{}); !nearPoint(got, Pt(2, 0)) {
		t.Errorf("TranslateInner: origin -> %v, want (2, 0)", got)
	}
	if m != Scale(2, 2) {
		t.Error("methods must not modify the receiver")
	}
}

func TestScaleDefaultsAndUniform(t *testing.T) {
	if Identity().ScaleUniform(3) != Identity().Scale(3, 3) {
		t.Error("ScaleUniform(s) should equal Scale(s, s)")
	}
	m := Translate(5, 5).Scale(2, 4)
	if got := m.TransformPoint(Pt(1, 1)); !nearPoint(got, Pt(7, 9)) {
		t.Errorf("got %v, want (7, 9)", got)
	}
}

func TestRotateKeepsTranslation(t *testing.T) {
	m := Translate(10, 20).Rotate(90)
	if m.E != 10 || m.F != 20 {
		t.Errorf("translation = (%v, %v), want (10, 20)", m.E, m.F)
	}
	if got := m.TransformPoint(Pt(1, 0)); !nearPoint(got, Pt(10, 21)) {
		t.Errorf("got %v, want (10, 21)", got)
	}
}

func TestRotateAbout(t *testing.T) {
	tests := []struct {
		name   string
		m      Matrix
		center Point
		deg    float64
		in     Point
		want   Point
	}{
		{"half turn", Identity(), Pt(1, 1), 180, Pt(0, 0), Pt(2, 2)},
		{"center fixed", Identity(), Pt(5, 5), 37, Pt(5, 5), Pt(5, 5)},
		{"quarter turn", Identity(), Pt(10, 10), 90, Pt(11, 10), Pt(10, 11)},
		{"after scale", Scale(2, 2), Pt(4, 4), 180, Pt(0, 0), Pt(8, 8)},
		{"after translate", Translate(10, 0), Pt(10, 0), 90, Pt(1, 0), Pt(10, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.RotateAbout(tt.center, tt.deg).TransformPoint(tt.in)
			if !nearPoint(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScaleAbout(t *testing.T) {
	m := Identity().ScaleAbout(Pt(10, 10), 2, 3)
	if got := m.TransformPoint(Pt(10, 10)); !nearPoint(got, Pt(10, 10)) {
		t.Errorf("center moved to %v", got)
	}
	if got := m.TransformPoint(Pt(11, 11)); !nearPoint(got, Pt(12, 13)) {
		t.Errorf("got %v, want (12, 13)", got)
	}
}

func TestInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"translate", Translate(3, -7)},
		{"scale", Scale(2, 0.5)},
		{"rotate", Rotate(30)},
		{"composed", Translate(10, 20).Scale(2, 3).Rotate(45)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Multiply(tt.m.Invert()); !nearMatrix(got, Identity()) {
				t.Errorf("m * m^-1 = %+v, want identity", got)
			}
		})
	}

	if got := Scale(0, 1).Invert(); !got.IsIdentity() {
		t.Errorf("singular Invert() = %+v, want identity", got)
	}
}

func TestIsIdentity(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Error("Identity() should be identity")
	}
	if Translate(1, 0).IsIdentity() || (Matrix{}).IsIdentity() {
		t.Error("non-identity matrices reported as identity")
	}
}

func TestAff3(t *testing.T) {
	m := Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	if got, want := m.Aff3(), (f64.Aff3{1, 3, 5, 2, 4, 6}); got != want {
		t.Errorf("Aff3() = %v, want %v", got, want)
	}
}
