package math3d

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	if got := a.Add(b); got != V3(5, 7, 9) {
		t.Errorf("Add = %v, want (5, 7, 9)", got)
	}
	if got := b.Sub(a); got != V3(3, 3, 3) {
		t.Errorf("Sub = %v, want (3, 3, 3)", got)
	}
	if got := a.Scale(2); got != V3(2, 4, 6) {
		t.Errorf("Scale = %v, want (2, 4, 6)", got)
	}
	if got := a.Negate(); got != V3(-1, -2, -3) {
		t.Errorf("Negate = %v, want (-1, -2, -3)", got)
	}
}

func TestVec3DotCross(t *testing.T) {
	if got := V3(1, 2, 3).Dot(V3(4, 5, 6)); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}

	x := V3(1, 0, 0)
	y := V3(0, 1, 0)
	if got := x.Cross(y); got != V3(0, 0, 1) {
		t.Errorf("X cross Y = %v, want Z", got)
	}
	if got := y.Cross(x); got != V3(0, 0, -1) {
		t.Errorf("Y cross X = %v, want -Z", got)
	}
}

func TestVec3Length(t *testing.T) {
	v := V3(3, 4, 0)
	if got := v.Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
	if got := v.LenSq(); got != 25 {
		t.Errorf("LenSq = %v, want 25", got)
	}

	n := V3(10, 0, 0).Normalize()
	if n != V3(1, 0, 0) {
		t.Errorf("Normalize = %v, want (1, 0, 0)", n)
	}
	if got := V3(1, 2, 3).Normalize().Len(); math.Abs(got-1) > 1e-12 {
		t.Errorf("normalized length = %v, want 1", got)
	}
	if got := V3(0, 0, 0).Normalize(); got != V3(0, 0, 0) {
		t.Errorf("zero vector normalized = %v, want zero", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := V3(0, 0, 0)
	b := V3(10, -10, 20)
	if got := a.Lerp(b, 0.5); got != V3(5, -5, 10) {
		t.Errorf("Lerp midpoint = %v, want (5, -5, 10)", got)
	}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := V3(1, 5, -2)
	b := V3(3, 2, -4)
	if got := a.Min(b); got != V3(1, 2, -4) {
		t.Errorf("Min = %v, want (1, 2, -4)", got)
	}
	if got := a.Max(b); got != V3(3, 5, -2) {
		t.Errorf("Max = %v, want (3, 5, -2)", got)
	}
}

func TestVec2Basics(t *testing.T) {
	a := V2(1, 2)
	b := V2(3, 5)

	if got := a.Add(b); got != V2(4, 7) {
		t.Errorf("Add = %v, want (4, 7)", got)
	}
	if got := b.Sub(a); got != V2(2, 3) {
		t.Errorf("Sub = %v, want (2, 3)", got)
	}
	if got := a.Scale(3); got != V2(3, 6) {
		t.Errorf("Scale = %v, want (3, 6)", got)
	}
	if got := a.Dot(b); got != 13 {
		t.Errorf("Dot = %v, want 13", got)
	}
	if got := a.Lerp(b, 0.5); got != V2(2, 3.5) {
		t.Errorf("Lerp = %v, want (2, 3.5)", got)
	}
}
