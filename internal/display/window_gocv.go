//go:build gocv

package display

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Window opens one OpenCV window per image and waits for a key press
type Window struct{}

// NewWindow creates a window display
func NewWindow() *Window {
	return &Window{}
}

// Show implements Display. It blocks until a key is pressed in either window.
func (w *Window) Show(original image.Image, binary *image.Gray) error {
	origMat, err := gocv.ImageToMatRGB(original)
	if err != nil {
		return fmt.Errorf("converting original image: %w", err)
	}
	defer origMat.Close()

	binMat, err := gocv.ImageGrayToMatGray(binary)
	if err != nil {
		return fmt.Errorf("converting binary image: %w", err)
	}
	defer binMat.Close()

	origWin := gocv.NewWindow(OriginalTitle)
	defer origWin.Close()
	binWin := gocv.NewWindow(BinaryTitle)
	defer binWin.Close()

	origWin.IMShow(origMat)
	binWin.IMShow(binMat)
	origWin.WaitKey(0)
	return nil
}
