package screen

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func splitImage(w, h int, top, bottom color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := top
		if y >= h/2 {
			c = bottom
		}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestPixelSize(t *testing.T) {
	w, h := PixelSize(80, 20, 4)
	if w != 320 || h != 160 {
		t.Fatalf("expected 320x160, got %dx%d", w, h)
	}
	if w, h := PixelSize(0, 20, 4); w != 0 || h != 0 {
		t.Fatalf("expected empty size, got %dx%d", w, h)
	}
}

func TestRenderASCIIUsesBrightnessRamp(t *testing.T) {
	r := NewRendererWithProfile(termenv.Ascii)
	if r.Color() {
		t.Fatal("expected Ascii profile to disable colour")
	}
	img := splitImage(8, 8, color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255})

	got := r.Render(img, 4, 2)
	if got != "@@@@\n    " {
		t.Fatalf("unexpected ASCII frame %q", got)
	}
}

func TestRenderHalfBlockPacksTwoRows(t *testing.T) {
	r := NewRendererWithProfile(termenv.TrueColor)
	img := splitImage(4, 4, color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255})

	got := r.Render(img, 2, 1)
	want := "\x1b[38;2;255;0;0m\x1b[48;2;0;0;255m▀▀" + ansiReset
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if strings.Count(r.Render(img, 2, 2), "\n") != 1 {
		t.Fatal("expected one newline between two rows")
	}
}

func TestRenderAveragesBlocks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{200, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 0, 0, 255})
	if got := blockAverage(img, 0, 0, 1, 1); got.R != 100 {
		t.Fatalf("expected averaged red 100, got %v", got)
	}
}

func TestRenderRejectsEmptyInput(t *testing.T) {
	r := NewRendererWithProfile(termenv.ANSI256)
	if r.Render(nil, 10, 10) != "" {
		t.Fatal("expected empty output for nil image")
	}
	if r.Render(image.NewRGBA(image.Rect(0, 0, 4, 4)), 0, 3) != "" {
		t.Fatal("expected empty output for zero columns")
	}
}

func TestRenderBrailleRaisesLitDots(t *testing.T) {
	r := NewRendererWithProfile(termenv.Ascii)
	r.SetMode(ModeBraille)
	img := splitImage(4, 8, color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255})

	if got := r.Render(img, 2, 1); got != "⠛⠛" {
		t.Fatalf("unexpected braille frame %q", got)
	}

	r = NewRendererWithProfile(termenv.TrueColor)
	r.SetMode(ModeBraille)
	want := "\x1b[38;2;255;255;255m⠛⠛" + ansiReset
	if got := r.Render(img, 2, 1); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("Braille") != ModeBraille {
		t.Fatal("expected braille mode")
	}
	if m := ParseMode("whatever"); m != ModeBlocks || m.String() != "blocks" {
		t.Fatalf("expected blocks fallback, got %v", m)
	}
}
