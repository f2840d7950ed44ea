package graphics

import (
	"image"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// 0xRRGGBB の値は ColorFromInt と ColorToInt で往復しても変わらない
func TestProperty_ColorIntRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("packed colour survives conversion", prop.ForAll(
		func(c int) bool {
			return ColorToInt(ColorFromInt(c)) == c
		},
		gen.IntRange(0, 0xFFFFFF),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// クリップ後の多角形の頂点はすべてキャンバス内に収まる
func TestProperty_ClipPolygonStaysInBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	const w, h = 100, 80
	const eps = 1e-3
	coord := gen.Float32Range(-300, 300)

	properties.Property("clipped vertices lie inside the canvas", prop.ForAll(
		func(x1, y1, x2, y2, x3, y3 float32) bool {
			poly := []fpoint{{x1, y1}, {x2, y2}, {x3, y3}}
			for _, p := range clipPolygon(poly, w, h) {
				if p.X < -eps || p.X > w+eps || p.Y < -eps || p.Y > h+eps {
					return false
				}
			}
			return true
		},
		coord, coord, coord, coord, coord, coord,
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// 範囲外に大きくはみ出した図形を描いてもパニックせず、描画後もサイズは変わらない
func TestProperty_DrawingOutsideCanvasIsSafe(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("shapes anywhere keep the canvas intact", prop.ForAll(
		func(x, y, size int, fill bool) bool {
			cv := NewCanvas(64, 48)
			p := image.Pt(x, y)
			cv.DrawRectangle(p, size, size, DefaultTextColor, fill)
			cv.DrawCircle(p, size, DefaultTextColor, fill)
			cv.DrawLine(p, image.Pt(-x, -y), DefaultTextColor)
			img := cv.Snapshot()
			return img.Bounds() == image.Rect(0, 0, 64, 48)
		},
		gen.IntRange(-1000, 1000),
		gen.IntRange(-1000, 1000),
		gen.IntRange(1, 500),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
