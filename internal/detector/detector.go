// Package detector handles ROM type detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// Detector checks whether input files look like CHIP-8 ROMs.
type Detector struct {
	logger *log.Logger
}

// New creates a new ROM detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect reports whether the filename has a known CHIP-8 ROM extension.
// Other files are still run, the mismatch is only logged as a warning.
func (d *Detector) Detect(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ch8", ".c8", ".rom":
		d.logger.Debug("Detected CHIP-8 ROM", log.String("file", filename))
		return true
	default:
		d.logger.Warn("File extension is not a known CHIP-8 ROM extension",
			log.String("file", filename),
			log.String("extension", ext))
		return false
	}
}
