//go:build !gocv

package display

import "image"

// Window is the OpenCV window display; this build has no OpenCV.
type Window struct{}

// NewWindow creates a window display that always fails
func NewWindow() *Window {
	return &Window{}
}

// Show returns ErrWindowUnavailable
func (w *Window) Show(image.Image, *image.Gray) error {
	return ErrWindowUnavailable
}
