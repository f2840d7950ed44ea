package graphics

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// fpoint is a point in canvas space. Integer coordinates name pixel
// corners, so the centre of pixel (x, y) is (x+0.5, y+0.5).
type fpoint struct {
	X, Y float32
}

func pixelCentre(p image.Point) fpoint {
	return fpoint{float32(p.X) + 0.5, float32(p.Y) + 0.5}
}

// fillPolygons rasterises the polygons as one shape with the non-zero
// winding rule, so a polygon wound the other way cuts a hole.
// Every polygon is clipped to the destination first.
func fillPolygons(dst *image.RGBA, c color.RGBA, polys ...[]fpoint) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over

	drawn := false
	for _, poly := range polys {
		clipped := clipPolygon(poly, float32(b.Dx()), float32(b.Dy()))
		if len(clipped) < 3 {
			continue
		}
		z.MoveTo(clipped[0].X, clipped[0].Y)
		for _, p := range clipped[1:] {
			z.LineTo(p.X, p.Y)
		}
		z.ClosePath()
		drawn = true
	}
	if !drawn {
		return
	}
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// strokeSegment draws a line of the given width between two points.
func strokeSegment(dst *image.RGBA, from, to fpoint, width float32, c color.RGBA) {
	half := width / 2
	dx, dy := to.X-from.X, to.Y-from.Y
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		fillPolygons(dst, c, rectPath(from.X-half, from.Y-half, from.X+half, from.Y+half))
		return
	}
	// Unit direction and normal, both scaled to half the width.
	ux, uy := dx/length*half, dy/length*half
	nx, ny := -uy, ux
	fillPolygons(dst, c, []fpoint{
		{from.X - ux + nx, from.Y - uy + ny},
		{to.X + ux + nx, to.Y + uy + ny},
		{to.X + ux - nx, to.Y + uy - ny},
		{from.X - ux - nx, from.Y - uy - ny},
	})
}

// rectPath returns a clockwise rectangle.
func rectPath(x0, y0, x1, y1 float32) []fpoint {
	return []fpoint{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

// circlePath approximates a circle with a regular polygon. Segment count
// grows with the radius so large circles stay smooth.
func circlePath(cx, cy, radius float32) []fpoint {
	n := int(radius * 2)
	n = max(n, 24)
	n = min(n, 360)
	pts := make([]fpoint, n)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = fpoint{
			cx + radius*float32(math.Cos(a)),
			cy + radius*float32(math.Sin(a)),
		}
	}
	return pts
}

// reversed returns the path with its winding flipped.
func reversed(path []fpoint) []fpoint {
	out := make([]fpoint, len(path))
	for i, p := range path {
		out[len(path)-1-i] = p
	}
	return out
}

// clipPolygon clips a polygon to [0,w]x[0,h] (Sutherland-Hodgman).
func clipPolygon(poly []fpoint, w, h float32) []fpoint {
	edges := []struct {
		inside    func(fpoint) bool
		intersect func(a, b fpoint) fpoint
	}{
		{
			func(p fpoint) bool { return p.X >= 0 },
			func(a, b fpoint) fpoint { return lerpAtX(a, b, 0) },
		},
		{
			func(p fpoint) bool { return p.X <= w },
			func(a, b fpoint) fpoint { return lerpAtX(a, b, w) },
		},
		{
			func(p fpoint) bool { return p.Y >= 0 },
			func(a, b fpoint) fpoint { return lerpAtY(a, b, 0) },
		},
		{
			func(p fpoint) bool { return p.Y <= h },
			func(a, b fpoint) fpoint { return lerpAtY(a, b, h) },
		},
	}

	out := poly
	for _, e := range edges {
		if len(out) == 0 {
			return nil
		}
		in := out
		out = make([]fpoint, 0, len(in)+4)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur) && e.inside(prev):
				out = append(out, cur)
			case e.inside(cur):
				out = append(out, e.intersect(prev, cur), cur)
			case e.inside(prev):
				out = append(out, e.intersect(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

func lerpAtX(a, b fpoint, x float32) fpoint {
	t := (x - a.X) / (b.X - a.X)
	return fpoint{x, a.Y + t*(b.Y-a.Y)}
}

func lerpAtY(a, b fpoint, y float32) fpoint {
	t := (y - a.Y) / (b.Y - a.Y)
	return fpoint{a.X + t*(b.X-a.X), y}
}
