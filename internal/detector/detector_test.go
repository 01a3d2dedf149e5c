package detector

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected bool
	}{
		{"ch8 extension", "pong.ch8", true},
		{"c8 extension", "maze.c8", true},
		{"rom extension", "games/tetris.rom", true},
		{"upper case extension", "PONG.CH8", true},
		{"nes extension", "game.nes", false},
		{"no extension", "pong", false},
	}

	d := New(log.NewTestLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.Detect(tt.filename))
		})
	}
}
