package interpreter

import (
	"image"
	"image/color"
)

// mockCall records one Renderer call.
type mockCall struct {
	Op      string
	Points  []image.Point
	Size    []int
	Color   color.RGBA
	Fill    bool
	Message string
}

// MockRenderer is a Renderer that records every call for assertions.
type MockRenderer struct {
	calls []mockCall
}

func (m *MockRenderer) MoveTo(p image.Point) {
	m.calls = append(m.calls, mockCall{Op: "MoveTo", Points: []image.Point{p}})
}

func (m *MockRenderer) DrawLine(from, to image.Point, c color.RGBA) {
	m.calls = append(m.calls, mockCall{Op: "DrawLine", Points: []image.Point{from, to}, Color: c})
}

func (m *MockRenderer) DrawCircle(center image.Point, radius int, c color.RGBA, fill bool) {
	m.calls = append(m.calls, mockCall{Op: "DrawCircle", Points: []image.Point{center}, Size: []int{radius}, Color: c, Fill: fill})
}

func (m *MockRenderer) DrawRectangle(origin image.Point, width, height int, c color.RGBA, fill bool) {
	m.calls = append(m.calls, mockCall{Op: "DrawRectangle", Points: []image.Point{origin}, Size: []int{width, height}, Color: c, Fill: fill})
}

func (m *MockRenderer) DrawPolygon(vertices []image.Point, c color.RGBA, fill bool) {
	pts := append([]image.Point(nil), vertices...)
	m.calls = append(m.calls, mockCall{Op: "DrawPolygon", Points: pts, Color: c, Fill: fill})
}

func (m *MockRenderer) SetPenColor(c color.RGBA) {
	m.calls = append(m.calls, mockCall{Op: "SetPenColor", Color: c})
}

func (m *MockRenderer) SetFill(fill bool) {
	m.calls = append(m.calls, mockCall{Op: "SetFill", Fill: fill})
}

func (m *MockRenderer) Clear() {
	m.calls = append(m.calls, mockCall{Op: "Clear"})
}

func (m *MockRenderer) DrawPointer(p image.Point) {
	m.calls = append(m.calls, mockCall{Op: "DrawPointer", Points: []image.Point{p}})
}

func (m *MockRenderer) DisplayMessage(msg string) {
	m.calls = append(m.calls, mockCall{Op: "DisplayMessage", Message: msg})
}

// Count returns how many times op was called.
func (m *MockRenderer) Count(op string) int {
	n := 0
	for _, c := range m.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Last returns the most recent call to op.
func (m *MockRenderer) Last(op string) (mockCall, bool) {
	for i := len(m.calls) - 1; i >= 0; i-- {
		if m.calls[i].Op == op {
			return m.calls[i], true
		}
	}
	return mockCall{}, false
}
