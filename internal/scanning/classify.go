package scanning

import (
	"image"
	"math"
)

// TagID is a simulated tag identifier
type TagID string

const (
	TagID1 TagID = "FASTAG1"
	TagID2 TagID = "FASTAG2"
	TagID3 TagID = "FASTAG3"

	// TagIDUnknown is never produced by Classify; the three bands cover every mean.
	TagIDUnknown TagID = "UNKNOWN"
)

// DefaultRegion is the area of the binary image the tag is read from
var DefaultRegion = RegionFromXYWH(100, 50, 300, 80)

// RegionFromXYWH converts an origin plus size into a rectangle
func RegionFromXYWH(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}

// Thresholds splits the mean brightness range into the three tag bands
type Thresholds struct {
	High float64
	Low  float64
}

// DefaultThresholds returns the stock band edges
func DefaultThresholds() Thresholds {
	return Thresholds{High: 150, Low: 80}
}

// Classify maps a mean brightness to a tag ID.
// Above High is FASTAG1, above Low is FASTAG2, everything else (NaN included) is FASTAG3.
func Classify(mean float64, th Thresholds) TagID {
	if mean > th.High {
		return TagID1
	}
	if mean > th.Low {
		return TagID2
	}
	return TagID3
}

// RegionMean averages the pixels of img inside region. The region is clipped to
// the image; an empty intersection gives NaN.
func RegionMean(img *image.Gray, region image.Rectangle) float64 {
	roi, ok := img.SubImage(region).(*image.Gray)
	if !ok {
		return math.NaN()
	}
	b := roi.Bounds()
	if b.Empty() {
		return math.NaN()
	}

	var sum uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := roi.PixOffset(b.Min.X, y)
		for _, v := range roi.Pix[off : off+b.Dx()] {
			sum += uint64(v)
		}
	}
	return float64(sum) / float64(b.Dx()*b.Dy())
}
