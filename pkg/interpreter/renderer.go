package interpreter

import (
	"image"
	"image/color"
)

// Renderer is the drawing surface commands operate on.
// All coordinates are integer pixel positions.
//
// Implementations shared between concurrently running scripts must
// serialise their own mutating operations; the interpreter does no locking.
type Renderer interface {
	// MoveTo moves the cursor indicator to p.
	MoveTo(p image.Point)
	DrawLine(from, to image.Point, c color.RGBA)
	DrawCircle(center image.Point, radius int, c color.RGBA, fill bool)
	DrawRectangle(origin image.Point, width, height int, c color.RGBA, fill bool)
	DrawPolygon(vertices []image.Point, c color.RGBA, fill bool)
	SetPenColor(c color.RGBA)
	SetFill(fill bool)
	// Clear erases the whole surface.
	Clear()
	// DrawPointer redraws the cursor indicator at p.
	DrawPointer(p image.Point)
	DisplayMessage(msg string)
}
