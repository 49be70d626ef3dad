package render

import (
	"math"
	"testing"
)

func TestNewContextValidation(t *testing.T) {
	cam := NewCamera()

	if _, err := NewContext(0, 10, cam, RGBA2222); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := NewContext(10, -1, cam, RGBA2222); err == nil {
		t.Error("expected error for negative height")
	}

	bad := NewCamera()
	bad.Near = 0
	if _, err := NewContext(10, 10, bad, RGBA2222); err == nil {
		t.Error("expected error for zero near plane")
	}

	bad = NewCamera()
	bad.Far = bad.Near
	if _, err := NewContext(10, 10, bad, RGBA2222); err == nil {
		t.Error("expected error for far <= near")
	}
}

func TestNewContextWindowDerivation(t *testing.T) {
	cam := NewCamera()
	cam.Fov = 90
	cam.Aspect = 2
	cam.Near = 1

	ctx, err := NewContext(4, 4, cam, RGBA2222)
	if err != nil {
		t.Fatal(err)
	}

	// tan(45 degrees) = 1, so t=near and r=t*aspect.
	if math.Abs(ctx.window.t-1) > 1e-12 || math.Abs(ctx.window.b+1) > 1e-12 {
		t.Errorf("window t/b = %v/%v, want 1/-1", ctx.window.t, ctx.window.b)
	}
	if math.Abs(ctx.window.r-2) > 1e-12 || math.Abs(ctx.window.l+2) > 1e-12 {
		t.Errorf("window r/l = %v/%v, want 2/-2", ctx.window.r, ctx.window.l)
	}
}

func TestContextBufferSizes(t *testing.T) {
	cam := NewCamera()

	ctx, err := NewContext(6, 4, cam, RGBA2222)
	if err != nil {
		t.Fatal(err)
	}
	if len(ctx.Depth) != 24 || len(ctx.Color) != 24 {
		t.Errorf("buffer sizes %d/%d, want 24/24", len(ctx.Depth), len(ctx.Color))
	}

	ctx, err = NewContext(6, 4, cam, RGBA8888)
	if err != nil {
		t.Fatal(err)
	}
	if len(ctx.Color) != 96 {
		t.Errorf("RGBA8888 color buffer size %d, want 96", len(ctx.Color))
	}
}

func TestContextReset(t *testing.T) {
	cam := NewCamera()
	ctx, err := NewContext(5, 3, cam, RGBA8888)
	if err != nil {
		t.Fatal(err)
	}

	for i := range ctx.Depth {
		ctx.Depth[i] = 1.5
	}
	for i := range ctx.Color {
		ctx.Color[i] = 0xFF
	}

	ctx.Reset()

	for i, d := range ctx.Depth {
		if d != cam.Far {
			t.Fatalf("depth[%d] = %v, want %v", i, d, cam.Far)
		}
	}
	for i, b := range ctx.Color {
		if b != 0 {
			t.Fatalf("color[%d] = %d, want 0", i, b)
		}
	}
}

func TestContextImage(t *testing.T) {
	cam := NewCamera()
	ctx, err := NewContext(2, 2, cam, RGBA8888)
	if err != nil {
		t.Fatal(err)
	}
	ctx.Format.Encode(ctx.Color, 3, RGB(10, 20, 30))

	img := ctx.Image()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("image bounds %v, want 2x2", img.Bounds())
	}
	if got := img.RGBAAt(1, 1); got != RGB(10, 20, 30) {
		t.Errorf("pixel (1,1) = %v, want RGB(10,20,30)", got)
	}
}

func TestPixelAtOutOfBounds(t *testing.T) {
	cam := NewCamera()
	ctx, err := NewContext(2, 2, cam, RGBA8888)
	if err != nil {
		t.Fatal(err)
	}

	if got := ctx.PixelAt(-1, 0); got.A != 0 {
		t.Errorf("out of bounds pixel = %v, want zero", got)
	}
	if got := ctx.DepthAt(2, 0); got != cam.Far {
		t.Errorf("out of bounds depth = %v, want far plane", got)
	}
}
