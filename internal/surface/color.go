package surface

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor reads a "#rrggbb" colour as an opaque NRGBA. The leading '#'
// may be omitted.
func ParseColor(hex string) (color.NRGBA, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// ParsePalette reads a list of "#rrggbb" colours.
func ParsePalette(hex ...string) ([]color.NRGBA, error) {
	out := make([]color.NRGBA, 0, len(hex))
	for _, h := range hex {
		c, err := ParseColor(h)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// MustPalette is ParsePalette for compile-time constant palettes.
func MustPalette(hex ...string) []color.NRGBA {
	p, err := ParsePalette(hex...)
	if err != nil {
		panic(err)
	}
	return p
}
