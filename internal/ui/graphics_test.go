package ui

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderPicture(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "me.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out, err := RenderPicture(path, TerminalCapabilities{Colored: false}, 8, 4)
	if err != nil {
		t.Fatalf("RenderPicture: %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Error("RenderPicture returned no art")
	}

	if _, err := RenderPicture(filepath.Join(t.TempDir(), "missing.png"), TerminalCapabilities{}, 8, 4); err == nil {
		t.Error("missing picture did not fail")
	}

	notImage := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(notImage, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := RenderPicture(notImage, TerminalCapabilities{}, 8, 4); err == nil {
		t.Error("non-image did not fail")
	}
}
