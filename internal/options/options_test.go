package options

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestProgram_StepsPerFrame(t *testing.T) {
	tests := []struct {
		name     string
		speed    int
		fps      int
		expected int
	}{
		{"default rate", 600, 60, 10},
		{"rounds down", 700, 60, 11},
		{"slower than frame rate", 30, 60, 1},
		{"zero speed", 0, 60, 1},
		{"zero fps", 500, 0, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Program{Emulation: Emulation{Speed: tt.speed, FPS: tt.fps}}
			assert.Equal(t, tt.expected, opts.StepsPerFrame())
		})
	}
}
