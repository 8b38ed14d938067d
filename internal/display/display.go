// Package display shows the original and reduced images after a toll run.
package display

import (
	"errors"
	"fmt"
	"image"
)

// ErrWindowUnavailable is returned by window displays in builds without OpenCV
var ErrWindowUnavailable = errors.New("window display requires building with the gocv tag")

// Display defines how scan results are presented
type Display interface {
	// Show presents both images. Implementations may block.
	Show(original image.Image, binary *image.Gray) error
}

// Window titles
const (
	OriginalTitle = "Original Image"
	BinaryTitle   = "Preprocessed Image"
)

// None discards the images
type None struct{}

// Show implements Display
func (None) Show(image.Image, *image.Gray) error {
	return nil
}

// Mode names accepted by New
const (
	ModeNone   = "none"
	ModeWindow = "window"
	ModeFiles  = "files"
)

// New builds the display for mode. dir is only used by ModeFiles.
func New(mode, dir string) (Display, error) {
	switch mode {
	case "", ModeNone:
		return None{}, nil
	case ModeWindow:
		return NewWindow(), nil
	case ModeFiles:
		return NewFiles(dir)
	default:
		return nil, fmt.Errorf("unknown display mode %q (want %s, %s or %s)", mode, ModeNone, ModeWindow, ModeFiles)
	}
}
