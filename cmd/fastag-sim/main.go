package main

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/zombor/fastag-sim/internal/display"
	"github.com/zombor/fastag-sim/internal/ledger"
	"github.com/zombor/fastag-sim/internal/scanning"
	"github.com/zombor/fastag-sim/internal/tollbooth"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("fastag-sim")
	var (
		imagePath   = fs.StringLong("image", "fastag_image.png", "Image to read the tag from")
		region      = fs.StringLong("region", scanning.FormatRegion(scanning.DefaultRegion), "Tag region as x,y,width,height")
		binarize    = fs.IntLong("binarize-threshold", int(scanning.DefaultBinarizeThreshold), "Gray level above which a pixel becomes white (0-255)")
		highTh      = fs.Float64Long("high-threshold", scanning.DefaultThresholds().High, "Mean brightness above which the tag is FASTAG1")
		lowTh       = fs.Float64Long("low-threshold", scanning.DefaultThresholds().Low, "Mean brightness above which the tag is FASTAG2")
		accounts    = fs.StringListLong("account", "Opening balance as LABEL=AMOUNT (repeatable, replaces the built-in accounts)")
		displayMode = fs.StringLong("display", display.ModeNone, "How to show the images: 'none', 'window' or 'files'")
		displayDir  = fs.StringLong("display-dir", "./fastag-display", "Output directory for --display=files")
		logLevel    = fs.StringLong("log-level", "info", "Log level: debug, info, warn or error")
		_           = fs.StringLong("config", "", "Config file path (optional)")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("FASTAG"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithConfigAllowMissingFile(),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		if errors.Is(err, ff.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid log level %q\n", *logLevel)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	scanner, err := newScanner(*region, *binarize, *highTh, *lowTh)
	if err != nil {
		slog.Error("Invalid scanner configuration", "error", err)
		os.Exit(1)
	}
	defer scanner.Close()

	seed := ledger.DefaultSeed()
	if len(*accounts) > 0 {
		seed, err = ledger.ParseSeed(*accounts)
		if err != nil {
			slog.Error("Invalid account configuration", "error", err)
			os.Exit(1)
		}
	}
	accts := ledger.New(seed)

	disp, err := display.New(*displayMode, *displayDir)
	if err != nil {
		slog.Error("Failed to initialize display", "mode", *displayMode, "error", err)
		os.Exit(1)
	}

	fmt.Println("Digital Image Processing - Fastag Simulation")
	fmt.Println("-------------------------------------------")

	slog.Debug("Starting toll run",
		"image", *imagePath,
		"region", *region,
		"display", *displayMode,
		"accounts", accts.String(),
	)

	service := tollbooth.NewService(scanner, accts, disp)
	if _, err := service.Run(*imagePath); err != nil {
		slog.Error("Toll run failed", "error", err)
		scanner.Close()
		os.Exit(1)
	}
}

func newScanner(region string, binarize int, high, low float64) (*scanning.BrightnessScanner, error) {
	rect, err := scanning.ParseRegion(region)
	if err != nil {
		return nil, fmt.Errorf("parsing region: %w", err)
	}
	if binarize < 0 || binarize > 255 {
		return nil, fmt.Errorf("binarize threshold %d is outside 0-255", binarize)
	}
	if low > high {
		return nil, fmt.Errorf("low threshold %v is above high threshold %v", low, high)
	}

	scanner := scanning.NewBrightnessScanner()
	scanner.Region = rect
	scanner.Reduce.Threshold = uint8(binarize)
	scanner.Thresholds = scanning.Thresholds{High: high, Low: low}
	return scanner, nil
}
