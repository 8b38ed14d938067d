package scanning

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// DefaultBinarizeThreshold is the intensity above which a smoothed pixel turns white
const DefaultBinarizeThreshold uint8 = 60

// gaussianSigma is the sigma OpenCV derives for a 5x5 kernel when none is given
const gaussianSigma = 0.3*((5-1)*0.5-1) + 0.8

// kernelRadius is how far the 5x5 kernel reaches past the center pixel
const kernelRadius = 2

var gaussian5x5 = gaussianKernel(gaussianSigma)

// ReduceOptions controls binarization
type ReduceOptions struct {
	Threshold uint8
}

// DefaultReduceOptions returns the stock reducer settings
func DefaultReduceOptions() ReduceOptions {
	return ReduceOptions{Threshold: DefaultBinarizeThreshold}
}

// Reduce turns a color image into a black and white one of the same bounds:
// luminance grayscale, 5x5 Gaussian blur, then a fixed threshold.
func Reduce(img image.Image, opts ReduceOptions) *image.Gray {
	gray := imaging.Grayscale(img)
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()

	// imaging repeats edge pixels when convolving; mirror the border first so
	// the edge rows and columns blur the way OpenCV's default border does.
	padded := padReflect101(gray, kernelRadius)
	blurred := imaging.Convolve5x5(padded, gaussian5x5, nil)
	blurred = imaging.Crop(blurred, image.Rect(kernelRadius, kernelRadius, kernelRadius+w, kernelRadius+h))

	threshold := opts.Threshold
	binary := imaging.AdjustFunc(blurred, func(c color.NRGBA) color.NRGBA {
		v := uint8(0)
		if c.R > threshold {
			v = 255
		}
		return color.NRGBA{R: v, G: v, B: v, A: 255}
	})

	// imaging always returns images anchored at (0,0)
	out := image.NewGray(img.Bounds())
	for y := 0; y < h; y++ {
		src := binary.Pix[y*binary.Stride : y*binary.Stride+w*4]
		dst := out.Pix[y*out.Stride : y*out.Stride+w]
		for x := range dst {
			dst[x] = src[x*4]
		}
	}
	return out
}

// padReflect101 surrounds img with pad pixels mirrored about the edge pixel
// (dcb|abcd|cba), the layout OpenCV calls BORDER_REFLECT_101.
func padReflect101(img *image.NRGBA, pad int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w+2*pad, h+2*pad))
	for y := 0; y < h+2*pad; y++ {
		sy := reflect101(y-pad, h)
		for x := 0; x < w+2*pad; x++ {
			sx := reflect101(x-pad, w)
			si := img.PixOffset(b.Min.X+sx, b.Min.Y+sy)
			di := out.PixOffset(x, y)
			copy(out.Pix[di:di+4], img.Pix[si:si+4])
		}
	}
	return out
}

// reflect101 maps i into [0, n) by mirroring about the first and last index
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*(n-1) - i
		}
	}
	return i
}

// gaussianKernel builds a normalized 5x5 kernel as the outer product of two 1D Gaussians
func gaussianKernel(sigma float64) [25]float64 {
	var row [5]float64
	var sum float64
	for i := range row {
		d := float64(i - 2)
		row[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
		sum += row[i]
	}
	for i := range row {
		row[i] /= sum
	}

	var k [25]float64
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			k[y*5+x] = row[y] * row[x]
		}
	}
	return k
}
