package display

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Files writes the images as PNGs into a directory
type Files struct {
	basePath string
}

// NewFiles creates a Files display, creating basePath if it doesn't exist
func NewFiles(basePath string) (*Files, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating display directory: %w", err)
	}
	return &Files{basePath: basePath}, nil
}

// Show implements Display
func (f *Files) Show(original image.Image, binary *image.Gray) error {
	if _, err := f.Save("original.png", original); err != nil {
		return err
	}
	if _, err := f.Save("binary.png", binary); err != nil {
		return err
	}
	return nil
}

// Save writes img under filename and returns the full path
func (f *Files) Save(filename string, img image.Image) (string, error) {
	path := filepath.Join(f.basePath, filename)
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("writing %s: %w", filename, err)
	}
	slog.Info("Saved image", "path", path)
	return path, nil
}
