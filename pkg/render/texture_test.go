package render

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRawTexture(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "tex.raw")
	data := []byte{
		0x03, 0x0C, // row 0: red, green (RGBA2222, alpha 0)
		0x30, 0xC0, // row 1: blue, alpha only
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	tex, err := LoadRawTexture(path, 2, 2, RGBA2222)
	if err != nil {
		t.Fatalf("LoadRawTexture: %v", err)
	}
	if tex.Width != 2 || tex.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", tex.Width, tex.Height)
	}
	if got := tex.At(0, 0); got != (color.RGBA{R: 255}) {
		t.Errorf("texel (0,0) = %v, want pure red", got)
	}
	if got := tex.At(1, 0); got != (color.RGBA{G: 255}) {
		t.Errorf("texel (1,0) = %v, want pure green", got)
	}
	if got := tex.At(0, 1); got != (color.RGBA{B: 255}) {
		t.Errorf("texel (0,1) = %v, want pure blue", got)
	}
	if got := tex.At(1, 1); got != (color.RGBA{A: 255}) {
		t.Errorf("texel (1,1) = %v, want alpha only", got)
	}
}

func TestLoadRawTextureMissingFile(t *testing.T) {
	tex, err := LoadRawTexture(filepath.Join(t.TempDir(), "nope.raw"), 4, 4, RGBA2222)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if tex != nil {
		t.Fatal("expected nil texture on error")
	}
}

func TestLoadRawTextureShortFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.raw")
	// 4x4 RGBA8888 needs 64 bytes
	if err := os.WriteFile(path, make([]byte, 10), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRawTexture(path, 4, 4, RGBA8888); err == nil {
		t.Fatal("expected error for short file")
	}
}

func TestSampleClamp(t *testing.T) {
	tex := NewTexture(4, 4, RGBA8888)
	for y := range 4 {
		for x := range 4 {
			tex.SetPixel(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}

	tests := []struct {
		u, v float64
		x, y uint8
	}{
		{0, 0, 0, 0},
		{0.999, 0.999, 3, 3},
		{1, 1, 3, 3},   // u=1 maps to the last texel, not past it
		{-0.5, 0, 0, 0},
		{1.5, 2.0, 3, 3},
	}
	for _, tc := range tests {
		got := tex.Sample(tc.u, tc.v)
		if got.R != tc.x || got.G != tc.y {
			t.Errorf("Sample(%v, %v) = texel (%d,%d), want (%d,%d)", tc.u, tc.v, got.R, got.G, tc.x, tc.y)
		}
	}
}

func TestSampleRepeat(t *testing.T) {
	tex := NewTexture(4, 4, RGBA8888)
	for y := range 4 {
		for x := range 4 {
			tex.SetPixel(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	tex.WrapU = WrapRepeat
	tex.WrapV = WrapRepeat

	tests := []struct {
		u, v float64
		x, y uint8
	}{
		{1.25, 0, 1, 0},
		{-0.25, 0, 3, 0},
		{2.0, 3.5, 0, 2},
	}
	for _, tc := range tests {
		got := tex.Sample(tc.u, tc.v)
		if got.R != tc.x || got.G != tc.y {
			t.Errorf("Sample(%v, %v) = texel (%d,%d), want (%d,%d)", tc.u, tc.v, got.R, got.G, tc.x, tc.y)
		}
	}
}

func TestSampleIntoCopiesRawBytes(t *testing.T) {
	tex := NewTexture(2, 1, RGBA2222)
	tex.Pixels[0] = 0xAB
	tex.Pixels[1] = 0xCD

	dst := make([]byte, 4)
	tex.sampleInto(dst, 2, 0.9, 0)
	if dst[2] != 0xCD {
		t.Errorf("dst[2] = %#x, want 0xCD", dst[2])
	}
	tex.sampleInto(dst, 0, 0.1, 0)
	if dst[0] != 0xAB {
		t.Errorf("dst[0] = %#x, want 0xAB", dst[0])
	}
}

func TestCheckerTexture(t *testing.T) {
	c1 := RGB(255, 255, 255)
	c2 := RGB(0, 0, 0)
	tex := NewCheckerTexture(8, 8, 2, c1, c2, RGBA8888)

	if got := tex.At(0, 0); got != c1 {
		t.Errorf("texel (0,0) = %v, want %v", got, c1)
	}
	if got := tex.At(2, 0); got != c2 {
		t.Errorf("texel (2,0) = %v, want %v", got, c2)
	}
	if got := tex.At(2, 2); got != c1 {
		t.Errorf("texel (2,2) = %v, want %v", got, c1)
	}
}
