package fileprocessor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// drawZero shows the font glyph 0 in the top left corner and loops.
var drawZero = []byte{
	0x60, 0x00, // ld V0, $00
	0xF0, 0x29, // ld F, V0
	0xD0, 0x05, // drw V0, V0, $5
	0x12, 0x06, // jp $206
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func headlessOptions(input string) options.Program {
	return options.Program{
		Parameters: options.Parameters{Input: input},
		Flags:      options.Flags{Frontend: options.FrontendHeadless},
		Emulation:  options.Emulation{Speed: 4000, FPS: 1000, Frames: 2},
	}
}

func TestProcessFile_HeadlessDump(t *testing.T) {
	opts := headlessOptions(createTempFile(t, drawZero))
	opts.Dump = true

	var buf bytes.Buffer
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf)
	assert.NoError(t, err)

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "####", lines[0][:4])
	assert.Equal(t, "#..#", lines[1][:4])
	assert.Equal(t, "####", lines[4][:4])
}

func TestProcessFile_HeadlessWithoutDump(t *testing.T) {
	opts := headlessOptions(createTempFile(t, drawZero))

	var buf bytes.Buffer
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf)
	assert.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestProcessFile_HeadlessHalt(t *testing.T) {
	opts := headlessOptions(createTempFile(t, []byte{0x00, 0xEE}))
	opts.Dump = true

	var buf bytes.Buffer
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf)
	assert.True(t, errors.Is(err, machine.ErrStackUnderflow))
	assert.NotEmpty(t, buf.String())
}

func TestProcessFile_Disasm(t *testing.T) {
	opts := headlessOptions(createTempFile(t, drawZero))
	opts.Disasm = true

	var buf bytes.Buffer
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf)
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, ".org $200")
	assert.Contains(t, out, "ld F, V0")
	assert.Contains(t, out, "drw V0, V0, $5")
	assert.Contains(t, out, "jp $206")
}

func TestProcessFile_LoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"empty ROM", createTempFile(t, nil), loader.ErrROMEmpty},
		{"oversized ROM", createTempFile(t, make([]byte, machine.MaxProgramSize+1)), loader.ErrROMTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := ProcessFile(context.Background(), log.NewTestLogger(t), headlessOptions(tt.input), &buf)
			assert.True(t, errors.Is(err, tt.err))
		})
	}
}

func TestProcessFile_MissingFile(t *testing.T) {
	var buf bytes.Buffer
	opts := headlessOptions(filepath.Join(t.TempDir(), "missing.ch8"))

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf)
	assert.ErrorContains(t, err, "loading ROM")
}

func TestProcessFile_Cancelled(t *testing.T) {
	opts := headlessOptions(createTempFile(t, drawZero))
	opts.Frames = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := ProcessFile(ctx, log.NewTestLogger(t), opts, &buf)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)
	PrintBanner(logger, options.Program{}, "1.0.0", "abcdef0123", "2026-01-01")
	PrintBanner(logger, options.Program{Flags: options.Flags{Quiet: true}}, "dev", "", "")
}
