package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Palette holds the two colours used to present the monochrome display.
type Palette struct {
	Foreground color.RGBA
	Background color.RGBA
}

// NewPalette resolves the foreground and background colour specifications.
func NewPalette(foreground, background string) (Palette, error) {
	fg, err := ParseColor(foreground)
	if err != nil {
		return Palette{}, fmt.Errorf("parsing foreground colour: %w", err)
	}
	bg, err := ParseColor(background)
	if err != nil {
		return Palette{}, fmt.Errorf("parsing background colour: %w", err)
	}
	return Palette{Foreground: fg, Background: bg}, nil
}

// ParseColor parses an SVG colour name like "lime" or a hex value in the
// form #rrggbb.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 {
			return color.RGBA{}, fmt.Errorf("invalid hex colour '%s'", s)
		}
		value, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex colour '%s': %w", s, err)
		}
		return color.RGBA{
			R: uint8(value >> 16),
			G: uint8(value >> 8),
			B: uint8(value),
			A: 0xFF,
		}, nil
	}

	c, ok := colornames.Map[s]
	if !ok {
		return color.RGBA{}, fmt.Errorf("unknown colour name '%s'", s)
	}
	return c, nil
}
