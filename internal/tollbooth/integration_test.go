package tollbooth

import (
	"bytes"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/fastag-sim/internal/display"
	"github.com/zombor/fastag-sim/internal/ledger"
	"github.com/zombor/fastag-sim/internal/scanning"
)

var _ = Describe("Integration", func() {
	var (
		tempDir    string
		imagePath  string
		displayDir string
		shade      uint8
		toll       string
		accts      *ledger.Ledger
		out        *bytes.Buffer
		result     *Result
		err        error
	)

	BeforeEach(func() {
		tempDir = GinkgoT().TempDir()
		imagePath = filepath.Join(tempDir, "fastag_image.png")
		displayDir = filepath.Join(tempDir, "display")
		accts = ledger.New(ledger.DefaultSeed())
		out = &bytes.Buffer{}
		toll = "20\n"
	})

	JustBeforeEach(func() {
		src := imaging.New(500, 200, color.NRGBA{R: shade, G: shade, B: shade, A: 255})
		Expect(imaging.Save(src, imagePath)).To(Succeed())

		files, filesErr := display.NewFiles(displayDir)
		Expect(filesErr).NotTo(HaveOccurred())

		service := NewServiceWithDeps(defaultImageLoader{}, scanning.NewBrightnessScanner(), accts, files, strings.NewReader(toll), out)
		result, err = service.Run(imagePath)
	})

	When("a bright tag is charged", func() {
		BeforeEach(func() {
			shade = 230
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should read FASTAG1 and debit it", func() {
			Expect(result.Reading.TagID).To(Equal(scanning.TagID1))
			Expect(out.String()).To(ContainSubstring("Transaction successful. New balance: 30\n"))
			Expect(out.String()).To(ContainSubstring("Updated Account Balances: {FASTAG1: 30, FASTAG2: 75, FASTAG3: 100}\n"))
		})

		It("should write both images", func() {
			Expect(filepath.Join(displayDir, "original.png")).To(BeAnExistingFile())
			Expect(filepath.Join(displayDir, "binary.png")).To(BeAnExistingFile())
		})
	})

	When("a dark tag is charged more than its balance", func() {
		BeforeEach(func() {
			shade = 20
			toll = "150\n"
		})

		It("should read FASTAG3 and refuse the debit", func() {
			Expect(result.Reading.TagID).To(Equal(scanning.TagID3))
			Expect(result.Outcome.Status).To(Equal(ledger.StatusInsufficientBalance))
			Expect(out.String()).To(ContainSubstring("Updated Account Balances: {FASTAG1: 50, FASTAG2: 75, FASTAG3: 100}\n"))
		})
	})

	When("the image path is wrong", func() {
		JustBeforeEach(func() {
			service := NewServiceWithDeps(defaultImageLoader{}, scanning.NewBrightnessScanner(), accts, display.None{}, strings.NewReader(toll), out)
			result, err = service.Run(filepath.Join(tempDir, "nope.png"))
		})

		It("returns ErrImageLoad", func() {
			Expect(err).To(MatchError(ErrImageLoad))
			Expect(result).To(BeNil())
		})
	})
})
