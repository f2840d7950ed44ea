package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zurustar/pendraw/pkg/graphics"
)

func TestDefault(t *testing.T) {
	s := Default()
	if s.Canvas.Width != 640 || s.Canvas.Height != 480 {
		t.Errorf("expected 640x480, got %dx%d", s.Canvas.Width, s.Canvas.Height)
	}
	if s.Canvas.Background != "#FFFFFF" {
		t.Errorf("expected white background, got %q", s.Canvas.Background)
	}
	if *s.Pointer.Size != 5 || s.Pointer.Color != "#FF0000" {
		t.Errorf("expected red 5px pointer, got %d %q", *s.Pointer.Size, s.Pointer.Color)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestParse(t *testing.T) {
	src := `
canvas:
  width: 800
  background: "#000000"
pointer:
  size: 0
window:
  title: my drawing
`
	s, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Canvas.Width != 800 || s.Canvas.Height != 480 {
		t.Errorf("expected 800x480 with default height, got %dx%d", s.Canvas.Width, s.Canvas.Height)
	}
	if s.Canvas.Background != "#000000" {
		t.Errorf("unexpected background %q", s.Canvas.Background)
	}
	if *s.Pointer.Size != 0 {
		t.Errorf("explicit pointer size 0 must be kept, got %d", *s.Pointer.Size)
	}
	if s.Pointer.Color != "#FF0000" {
		t.Errorf("expected default pointer colour, got %q", s.Pointer.Color)
	}
	if s.Window.Title != "my drawing" {
		t.Errorf("unexpected title %q", s.Window.Title)
	}
}

func TestParse_Empty(t *testing.T) {
	s, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Canvas.Width != 640 || s.Window.Title != "pendraw" {
		t.Errorf("expected defaults for empty input, got %+v", s)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown key", "canvas:\n  depth: 3\n"},
		{"bad colour", "canvas:\n  background: blue\n"},
		{"negative size", "canvas:\n  width: -5\n"},
		{"negative pointer", "pointer:\n  size: -1\n"},
		{"not yaml", "canvas: [1, 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.src)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	s, err := Load("")
	if err != nil || s.Canvas.Width != 640 {
		t.Fatalf("expected defaults for empty path, got %+v (err=%v)", s, err)
	}

	path := filepath.Join(t.TempDir(), "pendraw.yaml")
	if err := os.WriteFile(path, []byte("canvas:\n  height: 200\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err = Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Canvas.Height != 200 {
		t.Errorf("expected height 200, got %d", s.Canvas.Height)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCanvasOptions(t *testing.T) {
	s, err := Parse(strings.NewReader("canvas:\n  background: \"#00FF00\"\n  width: 20\n  height: 20\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cv := graphics.NewCanvas(s.Canvas.Width, s.Canvas.Height, s.CanvasOptions()...)
	if got := cv.Image().RGBAAt(10, 10); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("expected green background, got %v", got)
	}
}
