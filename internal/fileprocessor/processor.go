// Package fileprocessor loads a ROM file and runs or lists it
package fileprocessor

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete file processing workflow. Listings and
// headless framebuffer dumps are written to output.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, output io.Writer) error {
	detector.New(logger).Detect(opts.Input)

	program, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if opts.Disasm {
		if err := disasm.WriteListing(output, program, machine.ProgramStart); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
		return nil
	}

	m := machine.New(logger)
	if err := m.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	if !opts.Quiet {
		logger.Info("Running ROM",
			log.String("file", opts.Input),
			log.Int("size", len(program)),
			log.String("frontend", opts.Frontend))
	}

	switch opts.Frontend {
	case options.FrontendHeadless:
		return runHeadless(ctx, logger, m, opts, output)
	case options.FrontendTerminal:
		return runTerminal(ctx, logger, m, opts)
	default:
		return runWindow(ctx, logger, m, opts)
	}
}

func runHeadless(ctx context.Context, logger *log.Logger, m *machine.Machine,
	opts options.Program, output io.Writer) error {

	emu := emulator.New(logger, m, opts, nil, nil, nil)
	runErr := emu.Run(ctx)

	fb := m.Framebuffer()
	logger.Info("Emulation finished",
		log.Int("frames", emu.Frames()),
		log.Int("lit_pixels", fb.Lit()),
		log.Int("unknown_opcodes", int(m.UnknownOpcodes())))

	if opts.Dump {
		if _, err := io.WriteString(output, fb.String()); err != nil {
			return fmt.Errorf("writing framebuffer: %w", err)
		}
	}
	return runErr
}

func runTerminal(ctx context.Context, logger *log.Logger, m *machine.Machine, opts options.Program) error {
	term := terminal.New(logger)
	if err := term.Start(); err != nil {
		return fmt.Errorf("starting terminal: %w", err)
	}
	defer func() { _ = term.Close() }()

	speaker, closeSpeaker := createSpeaker(logger, opts)
	defer closeSpeaker()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-term.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	emu := emulator.New(logger, m, opts, term, term, speaker)
	return emu.Run(ctx)
}

func runWindow(ctx context.Context, logger *log.Logger, m *machine.Machine, opts options.Program) error {
	palette, err := config.NewPalette(opts.Foreground, opts.Background)
	if err != nil {
		return fmt.Errorf("creating palette: %w", err)
	}

	speaker, closeSpeaker := createSpeaker(logger, opts)
	defer closeSpeaker()

	win := window.New(logger, palette, opts.Scale)
	emu := emulator.New(logger, m, opts, win, win, speaker)
	return win.Run(ctx, opts.FPS, emu.Frame)
}

// createSpeaker returns the audio output for the options. A missing audio
// device only disables the sound.
func createSpeaker(logger *log.Logger, opts options.Program) (emulator.Speaker, func()) {
	if opts.Mute {
		return audio.Silent{}, func() {}
	}

	beeper, err := audio.NewBeeper(logger)
	if err != nil {
		logger.Warn("Audio output not available", log.Err(err))
		return audio.Silent{}, func() {}
	}

	return beeper, func() {
		if err := beeper.Close(); err != nil {
			logger.Error("Closing audio output failed", log.Err(err))
		}
	}
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}
