package tollbooth

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/zombor/fastag-sim/internal/display"
	"github.com/zombor/fastag-sim/internal/ledger"
	"github.com/zombor/fastag-sim/internal/scanning"
)

// ErrImageLoad is returned when the input image cannot be loaded
var ErrImageLoad = errors.New("could not load image")

// ImageLoader loads the image a toll run reads its tag from
type ImageLoader interface {
	Load(path string) (image.Image, error)
}

// defaultImageLoader reads images from the local filesystem
type defaultImageLoader struct{}

func (defaultImageLoader) Load(path string) (image.Image, error) {
	return scanning.LoadImage(path)
}

// Result summarizes one toll run
type Result struct {
	Reading *scanning.TagReading
	Outcome ledger.Outcome
	// Charged is false when no debit was attempted
	Charged bool
}

// Service runs the toll booth sequence: load, scan, prompt, debit, report, display
type Service struct {
	loader  ImageLoader
	scanner scanning.Scanner
	ledger  *ledger.Ledger
	display display.Display
	in      *bufio.Reader
	out     io.Writer
}

// NewService creates a Service reading from stdin and writing to stdout
func NewService(scanner scanning.Scanner, l *ledger.Ledger, disp display.Display) *Service {
	return NewServiceWithDeps(defaultImageLoader{}, scanner, l, disp, os.Stdin, os.Stdout)
}

// NewServiceWithDeps creates a Service with custom dependencies for testing
func NewServiceWithDeps(loader ImageLoader, scanner scanning.Scanner, l *ledger.Ledger, disp display.Display, in io.Reader, out io.Writer) *Service {
	return &Service{
		loader:  loader,
		scanner: scanner,
		ledger:  l,
		display: disp,
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// Run processes one vehicle from the image at imagePath.
// Only a failed image load or scan is returned as an error; rejected
// transactions are reported on the output and in the Result.
func (s *Service) Run(imagePath string) (*Result, error) {
	img, err := s.loader.Load(imagePath)
	if err != nil {
		fmt.Fprintf(s.out, "Error: Could not load image from %s\n", imagePath)
		return nil, fmt.Errorf("%w from %s: %w", ErrImageLoad, imagePath, err)
	}

	reading, err := s.scanner.ScanTag(img)
	if err != nil {
		return nil, fmt.Errorf("scanning tag: %w", err)
	}
	fmt.Fprintf(s.out, "Extracted Tag ID: %s\n", reading.TagID)

	result := &Result{Reading: reading}

	// Classify covers every mean, so this branch only guards the contract.
	if reading.TagID == scanning.TagIDUnknown {
		fmt.Fprintln(s.out, "Could not extract tag ID")
	} else {
		toll, err := s.promptToll()
		if err != nil {
			return nil, err
		}

		result.Outcome = s.ledger.Debit(string(reading.TagID), toll)
		result.Charged = true
		s.report(reading.TagID, toll, result.Outcome)
	}

	if err := s.display.Show(img, reading.Binary); err != nil {
		slog.Warn("Failed to display images", "error", err)
	}

	return result, nil
}

func (s *Service) promptToll() (string, error) {
	fmt.Fprint(s.out, "Enter Toll Amount: ")
	line, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading toll amount: %w", err)
	}
	return line, nil
}

func (s *Service) report(tagID scanning.TagID, toll string, outcome ledger.Outcome) {
	if outcome.OK() {
		fmt.Fprintf(s.out, "Transaction successful. New balance: %s\n", outcome.Balance.String())
		slog.Info("Toll charged", "tag", tagID, "balance", outcome.Balance.String())
	} else {
		fmt.Fprintf(s.out, "Transaction failed: %s\n", outcome.Status)
		slog.Info("Toll rejected", "tag", tagID, "toll", strings.TrimSpace(toll), "status", outcome.Status.String())
	}
	fmt.Fprintf(s.out, "Updated Account Balances: %s\n", s.ledger)
}
