// Package config loads the optional YAML settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zurustar/pendraw/pkg/graphics"
)

// Settings is the on-disk configuration. Every field is optional; zero
// values are replaced by Default() when the file is loaded.
type Settings struct {
	Canvas  CanvasSettings  `yaml:"canvas"`
	Pointer PointerSettings `yaml:"pointer"`
	Window  WindowSettings  `yaml:"window"`
}

// CanvasSettings controls the drawing surface.
type CanvasSettings struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Background string  `yaml:"background"`
	LineWidth  float32 `yaml:"line_width"`
	TextColor  string  `yaml:"text_color"`
}

// PointerSettings controls the cursor marker.
type PointerSettings struct {
	Size  *int   `yaml:"size"` // 0 hides the pointer
	Color string `yaml:"color"`
}

// WindowSettings controls the interactive window.
type WindowSettings struct {
	Title string `yaml:"title"`
}

// Default returns the built-in settings.
func Default() *Settings {
	size := graphics.DefaultPointerSize
	return &Settings{
		Canvas: CanvasSettings{
			Width:      graphics.DefaultWidth,
			Height:     graphics.DefaultHeight,
			Background: graphics.FormatHexColor(graphics.DefaultBackground),
			LineWidth:  graphics.DefaultLineWidth,
			TextColor:  graphics.FormatHexColor(graphics.DefaultTextColor),
		},
		Pointer: PointerSettings{
			Size:  &size,
			Color: graphics.FormatHexColor(graphics.DefaultPointerColor),
		},
		Window: WindowSettings{
			Title: "pendraw",
		},
	}
}

// Load reads settings from path. An empty path returns the defaults.
func Load(path string) (*Settings, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML settings, fills in defaults and validates the result.
// Unknown keys are rejected.
func Parse(r io.Reader) (*Settings, error) {
	var s Settings
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) applyDefaults() {
	d := Default()
	if s.Canvas.Width == 0 {
		s.Canvas.Width = d.Canvas.Width
	}
	if s.Canvas.Height == 0 {
		s.Canvas.Height = d.Canvas.Height
	}
	if s.Canvas.Background == "" {
		s.Canvas.Background = d.Canvas.Background
	}
	if s.Canvas.LineWidth == 0 {
		s.Canvas.LineWidth = d.Canvas.LineWidth
	}
	if s.Canvas.TextColor == "" {
		s.Canvas.TextColor = d.Canvas.TextColor
	}
	if s.Pointer.Size == nil {
		s.Pointer.Size = d.Pointer.Size
	}
	if s.Pointer.Color == "" {
		s.Pointer.Color = d.Pointer.Color
	}
	if s.Window.Title == "" {
		s.Window.Title = d.Window.Title
	}
}

// Validate checks sizes and colours.
func (s *Settings) Validate() error {
	if s.Canvas.Width < 0 || s.Canvas.Height < 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", s.Canvas.Width, s.Canvas.Height)
	}
	if s.Canvas.LineWidth < 0 {
		return fmt.Errorf("line_width must be positive, got %v", s.Canvas.LineWidth)
	}
	if s.Pointer.Size != nil && *s.Pointer.Size < 0 {
		return fmt.Errorf("pointer size must not be negative, got %d", *s.Pointer.Size)
	}
	for name, value := range map[string]string{
		"canvas.background": s.Canvas.Background,
		"canvas.text_color": s.Canvas.TextColor,
		"pointer.color":     s.Pointer.Color,
	} {
		if _, err := graphics.ParseHexColor(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// CanvasOptions converts the settings into canvas options.
// Call it on validated settings only.
func (s *Settings) CanvasOptions() []graphics.CanvasOption {
	bg := mustColor(s.Canvas.Background)
	text := mustColor(s.Canvas.TextColor)
	pointer := mustColor(s.Pointer.Color)

	size := graphics.DefaultPointerSize
	if s.Pointer.Size != nil {
		size = *s.Pointer.Size
	}
	return []graphics.CanvasOption{
		graphics.WithBackground(bg),
		graphics.WithTextColor(text),
		graphics.WithPointer(size, pointer),
		graphics.WithLineWidth(s.Canvas.LineWidth),
	}
}

func mustColor(s string) color.RGBA {
	c, err := graphics.ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
