// Package window implements a desktop frontend built on ebiten.
package window

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

const title = "retrochip8"

// keyMap maps the left side of a QWERTY keyboard to the hex keypad:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  <=  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var keyMap = map[ebiten.Key]int{
	ebiten.Key1: 0x1, ebiten.Key2: 0x2, ebiten.Key3: 0x3, ebiten.Key4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

// Window shows the display in a desktop window and reads the keypad from the
// keyboard. It implements ebiten.Game, all methods are called from the game
// loop goroutine.
type Window struct {
	logger  *log.Logger
	palette config.Palette
	scale   int

	ctx    context.Context
	frame  func() error
	pixels []byte
	image  *ebiten.Image
	keys   [machine.KeyCount]bool
}

// New returns a window frontend. The display starts out in the background
// colour.
func New(logger *log.Logger, palette config.Palette, scale int) *Window {
	w := &Window{
		logger:  logger,
		palette: palette,
		scale:   scale,
		pixels:  make([]byte, machine.DisplayWidth*machine.DisplayHeight*4),
	}
	_ = w.Present(machine.Framebuffer{})
	return w
}

// Run opens the window and calls frame fps times per second until the
// window is closed, Escape is pressed or the context is done.
func (w *Window) Run(ctx context.Context, fps int, frame func() error) error {
	w.ctx = ctx
	w.frame = frame

	ebiten.SetWindowSize(machine.DisplayWidth*w.scale, machine.DisplayHeight*w.scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetTPS(fps)

	w.logger.Debug("Opening window", log.Int("scale", w.scale), log.Int("fps", fps))
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Present converts the framebuffer to RGBA pixels, they are uploaded on the
// next Draw.
func (w *Window) Present(fb machine.Framebuffer) error {
	for i, cell := range fb {
		c := w.palette.Background
		if cell != 0 {
			c = w.palette.Foreground
		}
		setPixel(w.pixels[i*4:], c)
	}
	return nil
}

// Keys returns the key state read during the last Update.
func (w *Window) Keys() [machine.KeyCount]bool {
	return w.keys
}

// Update reads the keyboard and runs one emulation frame.
func (w *Window) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || w.ctx.Err() != nil {
		return ebiten.Termination
	}

	w.keys = [machine.KeyCount]bool{}
	for key, index := range keyMap {
		if ebiten.IsKeyPressed(key) {
			w.keys[index] = true
		}
	}

	return w.frame()
}

// Draw uploads the last presented frame and draws it onto the screen.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(machine.DisplayWidth, machine.DisplayHeight)
	}
	w.image.WritePixels(w.pixels)
	screen.DrawImage(w.image, nil)
}

// Layout keeps the logical screen at the display resolution, ebiten scales
// it to the window size.
func (w *Window) Layout(_, _ int) (int, int) {
	return machine.DisplayWidth, machine.DisplayHeight
}

func setPixel(p []byte, c color.RGBA) {
	p[0] = c.R
	p[1] = c.G
	p[2] = c.B
	p[3] = c.A
}
