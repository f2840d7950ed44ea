package graphics

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ColorFromInt converts a packed 0xRRGGBB value to an opaque colour.
func ColorFromInt(c int) color.RGBA {
	return color.RGBA{
		R: uint8((c >> 16) & 0xFF),
		G: uint8((c >> 8) & 0xFF),
		B: uint8(c & 0xFF),
		A: 0xFF,
	}
}

// ColorToInt converts a colour to a packed 0xRRGGBB value.
func ColorToInt(c color.Color) int {
	r, g, b, _ := c.RGBA()
	// RGBA() returns 16-bit values, so shift right by 8 to get 8-bit values
	return int(r>>8)<<16 | int(g>>8)<<8 | int(b>>8)
}

// ParseHexColor parses "#RRGGBB", "RRGGBB" or the short form "#RGB".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: expected #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return ColorFromInt(int(v)), nil
}

// FormatHexColor formats c as "#RRGGBB".
func FormatHexColor(c color.Color) string {
	return fmt.Sprintf("#%06X", ColorToInt(c))
}
