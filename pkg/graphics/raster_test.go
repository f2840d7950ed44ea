package graphics

import (
	"testing"
)

func TestClipPolygon(t *testing.T) {
	inside := rectPath(1, 1, 5, 5)
	if got := clipPolygon(inside, 10, 10); len(got) != 4 {
		t.Errorf("expected polygon inside bounds to be unchanged, got %v", got)
	}

	if got := clipPolygon(rectPath(-20, -20, -10, -10), 10, 10); len(got) != 0 {
		t.Errorf("expected polygon outside bounds to vanish, got %v", got)
	}

	got := clipPolygon(rectPath(-5, -5, 5, 5), 10, 10)
	for _, p := range got {
		if p.X < 0 || p.Y < 0 || p.X > 10 || p.Y > 10 {
			t.Errorf("clipped point %v is outside the bounds", p)
		}
	}
	if len(got) != 4 {
		t.Errorf("expected clipped square to keep 4 vertices, got %v", got)
	}
}

func TestCirclePath(t *testing.T) {
	pts := circlePath(0, 0, 100)
	if len(pts) != 200 {
		t.Errorf("expected 200 segments for radius 100, got %d", len(pts))
	}
	if n := len(circlePath(0, 0, 1)); n != 24 {
		t.Errorf("expected minimum of 24 segments, got %d", n)
	}
	if n := len(circlePath(0, 0, 10000)); n != 360 {
		t.Errorf("expected maximum of 360 segments, got %d", n)
	}
}

func TestReversed(t *testing.T) {
	path := []fpoint{{0, 0}, {1, 0}, {1, 1}}
	r := reversed(path)
	if r[0] != path[2] || r[2] != path[0] {
		t.Errorf("unexpected reversal: %v", r)
	}
}
