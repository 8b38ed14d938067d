package scanning

import (
	"image"
	"log/slog"
)

// TagReading is what a scan extracts from an image
type TagReading struct {
	TagID  TagID
	Mean   float64     // mean brightness of the tag region
	Binary *image.Gray // reduced image the tag was read from
}

// Scanner defines the interface for reading a tag from an image
type Scanner interface {
	// ScanTag reduces img and classifies its tag region
	ScanTag(img image.Image) (*TagReading, error)
	// Close releases any resources held by the scanner
	Close() error
}

// BrightnessScanner guesses the tag from the average brightness of a fixed region
type BrightnessScanner struct {
	Region     image.Rectangle
	Reduce     ReduceOptions
	Thresholds Thresholds
}

// NewBrightnessScanner creates a scanner with the stock region and thresholds
func NewBrightnessScanner() *BrightnessScanner {
	return &BrightnessScanner{
		Region:     DefaultRegion,
		Reduce:     DefaultReduceOptions(),
		Thresholds: DefaultThresholds(),
	}
}

// ScanTag implements Scanner
func (s *BrightnessScanner) ScanTag(img image.Image) (*TagReading, error) {
	binary := Reduce(img, s.Reduce)
	mean := RegionMean(binary, s.Region)
	tagID := Classify(mean, s.Thresholds)

	slog.Debug("Scanned tag region",
		"region", FormatRegion(s.Region),
		"mean", mean,
		"tag", tagID,
	)

	return &TagReading{
		TagID:  tagID,
		Mean:   mean,
		Binary: binary,
	}, nil
}

// Close implements Scanner
func (s *BrightnessScanner) Close() error {
	return nil
}
