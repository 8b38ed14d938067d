package scanning

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// ParseRegion parses an "x,y,width,height" string into a rectangle
func ParseRegion(text string) (image.Rectangle, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "(")
	text = strings.TrimSuffix(text, ")")

	parts := strings.Split(text, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("region %q: want x,y,width,height", text)
	}

	var vals [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("region %q: parsing value %d: %w", text, i, err)
		}
		vals[i] = v
	}

	if vals[0] < 0 || vals[1] < 0 {
		return image.Rectangle{}, fmt.Errorf("region %q: origin must not be negative", text)
	}
	if vals[2] <= 0 || vals[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("region %q: width and height must be positive", text)
	}

	return RegionFromXYWH(vals[0], vals[1], vals[2], vals[3]), nil
}

// FormatRegion renders a rectangle back into "x,y,width,height"
func FormatRegion(r image.Rectangle) string {
	return fmt.Sprintf("%d,%d,%d,%d", r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}
