// Package options contains the program options.
package options

// Supported frontends.
const (
	FrontendEbiten   = "ebiten"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Frontends lists all supported frontend names.
var Frontends = []string{FrontendEbiten, FrontendTerminal, FrontendHeadless}

// Parameters contains file path options.
type Parameters struct {
	Input string // ROM file to run
}

// Flags contains behavior options.
type Flags struct {
	Frontend string
	Disasm   bool // print a listing of the ROM instead of running it
	Trace    bool // log every executed instruction
	Debug    bool
	Quiet    bool
}

// Emulation contains options that control how the machine is driven.
type Emulation struct {
	Speed  int  // instructions per second
	FPS    int  // frames per second, timers and presentation run at this rate
	Frames int  // number of frames to run in headless mode, 0 runs until interrupted
	Dump   bool // print the final framebuffer in headless mode
	Mute   bool
}

// Display contains presentation options.
type Display struct {
	Scale      int
	Foreground string // colour name or #rrggbb
	Background string
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Emulation
	Display
}

// StepsPerFrame returns the number of instructions to execute per frame.
func (p Program) StepsPerFrame() int {
	if p.FPS <= 0 {
		return max(p.Speed, 1)
	}
	return max(p.Speed/p.FPS, 1)
}
