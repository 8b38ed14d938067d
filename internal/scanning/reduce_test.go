package scanning

import (
	"image"
	"image/color"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func uniformRGBA(r image.Rectangle, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func distinctValues(img *image.Gray) map[uint8]bool {
	seen := map[uint8]bool{}
	for _, v := range img.Pix {
		seen[v] = true
	}
	return seen
}

var _ = Describe("Reduce", func() {
	var (
		input image.Image
		opts  ReduceOptions
		out   *image.Gray
	)

	BeforeEach(func() {
		opts = DefaultReduceOptions()
	})

	JustBeforeEach(func() {
		out = Reduce(input, opts)
	})

	When("the input has an offset origin", func() {
		BeforeEach(func() {
			input = uniformRGBA(image.Rect(10, 10, 50, 40), color.RGBA{200, 200, 200, 255})
		})

		It("keeps the same bounds", func() {
			Expect(out.Bounds()).To(Equal(input.Bounds()))
		})

		It("turns bright pixels white", func() {
			Expect(out.GrayAt(10, 10).Y).To(Equal(uint8(255)))
			Expect(out.GrayAt(49, 39).Y).To(Equal(uint8(255)))
		})
	})

	When("the input is just above the threshold", func() {
		BeforeEach(func() {
			input = uniformRGBA(image.Rect(0, 0, 20, 20), color.RGBA{61, 61, 61, 255})
		})

		It("is white", func() {
			Expect(distinctValues(out)).To(Equal(map[uint8]bool{255: true}))
		})
	})

	When("the input is at the threshold", func() {
		BeforeEach(func() {
			input = uniformRGBA(image.Rect(0, 0, 20, 20), color.RGBA{60, 60, 60, 255})
		})

		It("is black", func() {
			Expect(distinctValues(out)).To(Equal(map[uint8]bool{0: true}))
		})
	})

	When("the threshold is overridden", func() {
		BeforeEach(func() {
			opts.Threshold = 220
			input = uniformRGBA(image.Rect(0, 0, 20, 20), color.RGBA{200, 200, 200, 255})
		})

		It("uses the new threshold", func() {
			Expect(distinctValues(out)).To(Equal(map[uint8]bool{0: true}))
		})
	})

	When("the input is colored", func() {
		BeforeEach(func() {
			img := uniformRGBA(image.Rect(0, 0, 40, 20), color.RGBA{255, 0, 0, 255})
			for y := 0; y < 20; y++ {
				for x := 20; x < 40; x++ {
					img.SetRGBA(x, y, color.RGBA{0, 0, 255, 255})
				}
			}
			input = img
		})

		It("weights channels by luminance", func() {
			// red is about 76, blue about 29
			Expect(out.GrayAt(5, 10).Y).To(Equal(uint8(255)))
			Expect(out.GrayAt(35, 10).Y).To(Equal(uint8(0)))
		})

		It("only produces black and white", func() {
			for v := range distinctValues(out) {
				Expect(v).To(Or(Equal(uint8(0)), Equal(uint8(255))))
			}
		})
	})

	When("the input has an isolated bright pixel", func() {
		BeforeEach(func() {
			img := uniformRGBA(image.Rect(0, 0, 21, 21), color.RGBA{0, 0, 0, 255})
			img.SetRGBA(10, 10, color.RGBA{255, 255, 255, 255})
			input = img
		})

		It("smooths it away", func() {
			// 255 * center weight of the blur kernel is well under 60
			Expect(out.GrayAt(10, 10).Y).To(Equal(uint8(0)))
		})
	})
})

var _ = Describe("Reduce at the image edge", func() {
	It("mirrors the border instead of repeating the edge pixel", func() {
		// column 0 is black, column 1 is gray 200, the rest is black.
		// Mirroring puts column 1 on both sides of column 0 (about 98 after
		// blurring, white); repeating the edge would give about 49 (black).
		img := uniformRGBA(image.Rect(0, 0, 12, 12), color.RGBA{0, 0, 0, 255})
		for y := 0; y < 12; y++ {
			img.SetRGBA(1, y, color.RGBA{200, 200, 200, 255})
		}

		out := Reduce(img, DefaultReduceOptions())

		for y := 0; y < 12; y++ {
			Expect(out.GrayAt(0, y).Y).To(Equal(uint8(255)))
		}
		Expect(out.GrayAt(4, 6).Y).To(Equal(uint8(0)))
	})

	It("handles single pixel images", func() {
		img := uniformRGBA(image.Rect(0, 0, 1, 1), color.RGBA{90, 90, 90, 255})
		out := Reduce(img, DefaultReduceOptions())
		Expect(out.GrayAt(0, 0).Y).To(Equal(uint8(255)))
	})
})

var _ = Describe("reflect101", func() {
	DescribeTable("mirrors indexes about the edge pixels",
		func(i, n, want int) {
			Expect(reflect101(i, n)).To(Equal(want))
		},
		Entry("inside", 3, 5, 3),
		Entry("one before", -1, 5, 1),
		Entry("two before", -2, 5, 2),
		Entry("one after", 5, 5, 3),
		Entry("two after", 6, 5, 2),
		Entry("two wide", -2, 2, 0),
		Entry("one wide", -2, 1, 0),
	)
})

var _ = Describe("gaussianKernel", func() {
	It("sums to one", func() {
		var sum float64
		for _, w := range gaussian5x5 {
			sum += w
		}
		Expect(sum).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("is symmetric and peaks in the center", func() {
		k := gaussian5x5
		Expect(k[0]).To(BeNumerically("~", k[24], 1e-12))
		Expect(k[2]).To(BeNumerically("~", k[10], 1e-12))
		for i, w := range k {
			if i != 12 {
				Expect(w).To(BeNumerically("<", k[12]))
			}
		}
	})
})
