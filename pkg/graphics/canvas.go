// Package graphics provides the drawing surfaces pendraw scripts render to.
package graphics

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Canvas defaults.
const (
	DefaultWidth       = 640
	DefaultHeight      = 480
	DefaultPointerSize = 5
	DefaultLineWidth   = 1
)

var (
	DefaultBackground   = color.RGBA{255, 255, 255, 255}
	DefaultPointerColor = color.RGBA{255, 0, 0, 255}
	DefaultTextColor    = color.RGBA{0, 0, 0, 255}
)

// messageOrigin is where DisplayMessage starts writing (top-left of the first line).
var messageOrigin = image.Pt(10, 10)

// Canvas is an in-memory raster surface.
//
// All methods are safe for concurrent use; scripts running in parallel
// share one Canvas and their calls are serialised.
// The cursor pointer is not part of the drawing: it is overlaid by
// Snapshot, so clearing or moving it never erases artwork.
type Canvas struct {
	mu sync.Mutex

	img        *image.RGBA
	background color.RGBA
	lineWidth  float32

	pen  color.RGBA
	fill bool

	pointer      image.Point
	pointerSize  int
	pointerColor color.RGBA
	showPointer  bool

	textColor color.RGBA
	messages  []string

	// version は描画のたびに増える（ウインドウ側の再転送判定用）
	version uint64

	log *slog.Logger
}

// CanvasOption configures a Canvas.
type CanvasOption func(*Canvas)

// WithBackground sets the colour Clear paints with.
func WithBackground(c color.RGBA) CanvasOption {
	return func(cv *Canvas) {
		cv.background = c
	}
}

// WithPointer sets the pointer diameter and colour. A size of 0 hides it.
func WithPointer(size int, c color.RGBA) CanvasOption {
	return func(cv *Canvas) {
		cv.pointerSize = size
		cv.pointerColor = c
	}
}

// WithLineWidth sets the stroke width for lines and outlines.
func WithLineWidth(w float32) CanvasOption {
	return func(cv *Canvas) {
		cv.lineWidth = w
	}
}

// WithTextColor sets the colour of DisplayMessage text.
func WithTextColor(c color.RGBA) CanvasOption {
	return func(cv *Canvas) {
		cv.textColor = c
	}
}

// WithCanvasLogger sets the logger.
func WithCanvasLogger(log *slog.Logger) CanvasOption {
	return func(cv *Canvas) {
		cv.log = log
	}
}

// NewCanvas creates a width x height canvas filled with the background colour.
// Non-positive sizes fall back to the defaults.
func NewCanvas(width, height int, opts ...CanvasOption) *Canvas {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	cv := &Canvas{
		img:          image.NewRGBA(image.Rect(0, 0, width, height)),
		background:   DefaultBackground,
		lineWidth:    DefaultLineWidth,
		pen:          color.RGBA{0, 0, 0, 255},
		pointerSize:  DefaultPointerSize,
		pointerColor: DefaultPointerColor,
		showPointer:  true,
		textColor:    DefaultTextColor,
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(cv)
	}

	draw.Draw(cv.img, cv.img.Bounds(), image.NewUniform(cv.background), image.Point{}, draw.Src)

	cv.log.Debug("Canvas created", "width", width, "height", height)
	return cv
}

// Size returns the canvas dimensions.
func (cv *Canvas) Size() (int, int) {
	b := cv.img.Bounds()
	return b.Dx(), b.Dy()
}

// Version returns a counter that changes whenever the visible image changes.
func (cv *Canvas) Version() uint64 {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return cv.version
}

// MoveTo moves the pointer.
func (cv *Canvas) MoveTo(p image.Point) {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	cv.pointer = p
	cv.version++
}

// DrawLine draws a straight line between two points.
func (cv *Canvas) DrawLine(from, to image.Point, c color.RGBA) {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	strokeSegment(cv.img, pixelCentre(from), pixelCentre(to), cv.lineWidth, c)
	cv.version++
}

// DrawCircle draws a circle, filled or as an outline.
func (cv *Canvas) DrawCircle(center image.Point, radius int, c color.RGBA, fill bool) {
	cv.mu.Lock()
	defer cv.mu.Unlock()

	ctr := pixelCentre(center)
	r := float32(radius)
	if fill {
		fillPolygons(cv.img, c, circlePath(ctr.X, ctr.Y, r))
	} else {
		half := cv.lineWidth / 2
		paths := [][]fpoint{circlePath(ctr.X, ctr.Y, r+half)}
		if inner := r - half; inner > 0 {
			paths = append(paths, reversed(circlePath(ctr.X, ctr.Y, inner)))
		}
		fillPolygons(cv.img, c, paths...)
	}
	cv.version++
}

// DrawRectangle draws a width x height rectangle whose top-left corner is origin.
func (cv *Canvas) DrawRectangle(origin image.Point, width, height int, c color.RGBA, fill bool) {
	cv.mu.Lock()
	defer cv.mu.Unlock()

	x0, y0 := float32(origin.X), float32(origin.Y)
	x1, y1 := x0+float32(width), y0+float32(height)
	if fill {
		fillPolygons(cv.img, c, rectPath(x0, y0, x1, y1))
	} else {
		// The outline is centred on the pixel rows and columns of the edges.
		half := cv.lineWidth / 2
		outer := rectPath(x0+0.5-half, y0+0.5-half, x1+0.5+half, y1+0.5+half)
		paths := [][]fpoint{outer}
		if x1-x0 > cv.lineWidth && y1-y0 > cv.lineWidth {
			paths = append(paths, reversed(rectPath(x0+0.5+half, y0+0.5+half, x1+0.5-half, y1+0.5-half)))
		}
		fillPolygons(cv.img, c, paths...)
	}
	cv.version++
}

// DrawPolygon draws a closed polygon through the given vertices.
func (cv *Canvas) DrawPolygon(vertices []image.Point, c color.RGBA, fill bool) {
	if len(vertices) < 2 {
		return
	}

	cv.mu.Lock()
	defer cv.mu.Unlock()

	pts := make([]fpoint, len(vertices))
	for i, v := range vertices {
		pts[i] = pixelCentre(v)
	}
	if fill {
		fillPolygons(cv.img, c, pts)
	} else {
		for i := range pts {
			strokeSegment(cv.img, pts[i], pts[(i+1)%len(pts)], cv.lineWidth, c)
		}
	}
	cv.version++
}

// SetPenColor records the current pen colour.
func (cv *Canvas) SetPenColor(c color.RGBA) {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	cv.pen = c
}

// SetFill records the current fill mode.
func (cv *Canvas) SetFill(fill bool) {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	cv.fill = fill
}

// PenState returns the last pen colour and fill mode set on the canvas.
func (cv *Canvas) PenState() (color.RGBA, bool) {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return cv.pen, cv.fill
}

// Clear paints the whole canvas with the background colour and drops any
// displayed messages.
func (cv *Canvas) Clear() {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	draw.Draw(cv.img, cv.img.Bounds(), image.NewUniform(cv.background), image.Point{}, draw.Src)
	cv.messages = nil
	cv.version++
	cv.log.Debug("Canvas cleared")
}

// DrawPointer shows the pointer at p.
func (cv *Canvas) DrawPointer(p image.Point) {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	cv.pointer = p
	cv.showPointer = true
	cv.version++
}

// Pointer returns the pointer position.
func (cv *Canvas) Pointer() image.Point {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return cv.pointer
}

// DisplayMessage writes msg onto the canvas below any earlier messages.
// Multi-line messages are split on newlines.
func (cv *Canvas) DisplayMessage(msg string) {
	cv.mu.Lock()
	defer cv.mu.Unlock()

	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil() + 2

	d := &font.Drawer{
		Dst:  cv.img,
		Src:  image.NewUniform(cv.textColor),
		Face: face,
	}
	for _, line := range strings.Split(strings.ReplaceAll(msg, "\r\n", "\n"), "\n") {
		y := messageOrigin.Y + len(cv.messages)*lineHeight + face.Metrics().Ascent.Ceil()
		d.Dot = fixed.P(messageOrigin.X, y)
		d.DrawString(line)
		cv.messages = append(cv.messages, line)
	}
	cv.version++
	cv.log.Debug("Message displayed", "message", msg)
}

// Messages returns the lines written by DisplayMessage since the last Clear.
func (cv *Canvas) Messages() []string {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return append([]string(nil), cv.messages...)
}

// Image returns a copy of the drawing without the pointer.
func (cv *Canvas) Image() *image.RGBA {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return cloneRGBA(cv.img)
}

// Snapshot returns a copy of the drawing with the pointer overlaid.
func (cv *Canvas) Snapshot() *image.RGBA {
	cv.mu.Lock()
	defer cv.mu.Unlock()

	out := cloneRGBA(cv.img)
	if cv.showPointer && cv.pointerSize > 0 {
		ctr := pixelCentre(cv.pointer)
		fillPolygons(out, cv.pointerColor, circlePath(ctr.X, ctr.Y, float32(cv.pointerSize)/2))
	}
	return out
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
