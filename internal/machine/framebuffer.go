package machine

import "strings"

// Framebuffer holds one byte per pixel of the 64x32 display, row by row.
// Every cell is either 0 or 1.
type Framebuffer [DisplayWidth * DisplayHeight]byte

// At returns whether the pixel at the given coordinates is set.
// Coordinates wrap around the display edges.
func (f *Framebuffer) At(x, y int) bool {
	return f[pixelIndex(x, y)] != 0
}

// Lit returns the number of set pixels.
func (f *Framebuffer) Lit() int {
	var n int
	for _, p := range f {
		n += int(p)
	}
	return n
}

// String renders the framebuffer as text, one line per row, using '#'
// for set and '.' for unset pixels.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((DisplayWidth + 1) * DisplayHeight)
	for y := range DisplayHeight {
		for x := range DisplayWidth {
			if f[y*DisplayWidth+x] != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (f *Framebuffer) clear() {
	*f = Framebuffer{}
}

// xorPixel flips the pixel at the given coordinates and returns whether it
// was set before, which is a collision.
func (f *Framebuffer) xorPixel(x, y int) bool {
	i := pixelIndex(x, y)
	collision := f[i] == 1
	f[i] ^= 1
	return collision
}

func pixelIndex(x, y int) int {
	x %= DisplayWidth
	if x < 0 {
		x += DisplayWidth
	}
	y %= DisplayHeight
	if y < 0 {
		y += DisplayHeight
	}
	return y*DisplayWidth + x
}
