package interpreter

import (
	"image"
	"image/color"
	"math"
	"slices"
	"strings"
)

// penColors is the set of colour names accepted by the pen command.
var penColors = map[string]color.RGBA{
	"black":  {0, 0, 0, 255},
	"red":    {255, 0, 0, 255},
	"green":  {0, 128, 0, 255},
	"blue":   {0, 0, 255, 255},
	"white":  {255, 255, 255, 255},
	"yellow": {255, 255, 0, 255},
}

// PenColorNames returns the supported pen colour names in sorted order.
func PenColorNames() []string {
	names := make([]string, 0, len(penColors))
	for name := range penColors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LookupPenColor returns the colour for a pen colour name (case-insensitive).
func LookupPenColor(name string) (color.RGBA, bool) {
	c, ok := penColors[strings.ToLower(name)]
	return c, ok
}

// resolvePoint resolves an x,y operand pair.
func resolvePoint(xRef, yRef string, ctx *Context) (image.Point, error) {
	x, err := ResolveOperand(xRef, ctx)
	if err != nil {
		return image.Point{}, err
	}
	y, err := ResolveOperand(yRef, ctx)
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(x, y), nil
}

// resolvePositive resolves ref and rejects values that are not strictly positive.
func resolvePositive(ref, what string, ctx *Context) (int, error) {
	v, err := ResolveOperand(ref, ctx)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, NewInvalidParameterError("%s must be a positive value but '%s' resolved to %d", what, ref, v)
	}
	return v, nil
}

// MoveTo moves the cursor without drawing.
type MoveTo struct {
	source
	X, Y string
}

func (c *MoveTo) Kind() Kind { return KindMoveTo }

func (c *MoveTo) Execute(r Renderer, ctx *Context) error {
	p, err := resolvePoint(c.X, c.Y, ctx)
	if err != nil {
		return err
	}
	ctx.Position = p
	r.MoveTo(p)
	return nil
}

// DrawTo draws a line from the cursor to a point and moves the cursor there.
type DrawTo struct {
	source
	X, Y string
}

func (c *DrawTo) Kind() Kind { return KindDrawTo }

func (c *DrawTo) Execute(r Renderer, ctx *Context) error {
	p, err := resolvePoint(c.X, c.Y, ctx)
	if err != nil {
		return err
	}
	r.DrawLine(ctx.Position, p, ctx.Color)
	ctx.Position = p
	r.MoveTo(p)
	return nil
}

// SetPen selects a named pen colour. The name is validated when the command is built.
type SetPen struct {
	source
	Name  string
	Color color.RGBA
}

func (c *SetPen) Kind() Kind { return KindSetPen }

func (c *SetPen) Execute(r Renderer, ctx *Context) error {
	ctx.Color = c.Color
	r.SetPenColor(c.Color)
	return nil
}

// SetColour sets the pen colour from explicit red, green and blue channels.
type SetColour struct {
	source
	R, G, B string
}

func (c *SetColour) Kind() Kind { return KindSetColour }

func (c *SetColour) Execute(r Renderer, ctx *Context) error {
	var channels [3]uint8
	for i, ref := range []string{c.R, c.G, c.B} {
		v, err := ResolveOperand(ref, ctx)
		if err != nil {
			return err
		}
		if v < 0 || v > 255 {
			return NewInvalidParameterError("colour channel '%s' resolved to %d, expected 0-255", ref, v)
		}
		channels[i] = uint8(v)
	}
	col := color.RGBA{channels[0], channels[1], channels[2], 255}
	ctx.Color = col
	r.SetPenColor(col)
	return nil
}

// DrawRectangle draws a rectangle with its top-left corner at the cursor.
type DrawRectangle struct {
	source
	Width, Height string
}

func (c *DrawRectangle) Kind() Kind { return KindDrawRectangle }

func (c *DrawRectangle) Execute(r Renderer, ctx *Context) error {
	w, err := resolvePositive(c.Width, "rectangle width", ctx)
	if err != nil {
		return err
	}
	h, err := resolvePositive(c.Height, "rectangle height", ctx)
	if err != nil {
		return err
	}
	r.DrawRectangle(ctx.Position, w, h, ctx.Color, ctx.Fill)
	return nil
}

// DrawCircle draws a circle centred on the cursor.
type DrawCircle struct {
	source
	Radius string
}

func (c *DrawCircle) Kind() Kind { return KindDrawCircle }

func (c *DrawCircle) Execute(r Renderer, ctx *Context) error {
	radius, err := resolvePositive(c.Radius, "circle radius", ctx)
	if err != nil {
		return err
	}
	r.DrawCircle(ctx.Position, radius, ctx.Color, ctx.Fill)
	return nil
}

// DrawTriangle draws an equilateral triangle whose base starts at the cursor
// and extends to the right, apex pointing up. The cursor then advances to
// the right end of the base.
type DrawTriangle struct {
	source
	Side string
}

func (c *DrawTriangle) Kind() Kind { return KindDrawTriangle }

func (c *DrawTriangle) Execute(r Renderer, ctx *Context) error {
	side, err := resolvePositive(c.Side, "triangle side length", ctx)
	if err != nil {
		return err
	}
	vertices := TriangleVertices(ctx.Position, side)
	r.DrawPolygon(vertices, ctx.Color, ctx.Fill)
	ctx.Position = vertices[1]
	r.MoveTo(ctx.Position)
	return nil
}

// TriangleVertices returns the three vertices of an equilateral triangle
// with the given side whose base starts at pos.
func TriangleVertices(pos image.Point, side int) []image.Point {
	height := math.Sqrt(3) / 2 * float64(side)
	return []image.Point{
		pos,
		image.Pt(pos.X+side, pos.Y),
		image.Pt(pos.X+int(math.Round(float64(side)/2)), pos.Y-int(math.Round(height))),
	}
}

// SetFill turns shape filling on or off.
type SetFill struct {
	source
	On bool
}

func (c *SetFill) Kind() Kind { return KindSetFill }

func (c *SetFill) Execute(r Renderer, ctx *Context) error {
	ctx.Fill = c.On
	r.SetFill(c.On)
	return nil
}

// Reset moves the cursor back to the origin.
type Reset struct {
	source
}

func (c *Reset) Kind() Kind { return KindReset }

func (c *Reset) Execute(r Renderer, ctx *Context) error {
	ctx.Position = image.Point{}
	r.MoveTo(ctx.Position)
	return nil
}

// Clear erases the drawing surface and redraws the cursor where it is.
type Clear struct {
	source
}

func (c *Clear) Kind() Kind { return KindClear }

func (c *Clear) Execute(r Renderer, ctx *Context) error {
	r.Clear()
	r.DrawPointer(ctx.Position)
	return nil
}
