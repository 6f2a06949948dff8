package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ironsheep/plate-gate/internal/booking"
	"github.com/ironsheep/plate-gate/internal/config"
	"github.com/ironsheep/plate-gate/internal/detection"
	"github.com/ironsheep/plate-gate/internal/ocr"
	"github.com/ironsheep/plate-gate/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("plate-gate %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	fs := flag.NewFlagSet("plate-gate", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config file (optional)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "plate-gate - authorize vehicle access by license plate")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage: plate-gate [-config file] <image>")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Environment variables (override config file):")
		fmt.Fprintln(os.Stderr, "  PLATEGATE_DATABASE_DSN             schedule database connection string")
		fmt.Fprintln(os.Stderr, "  PLATEGATE_OCR_TESSDATA_PREFIX      tesseract training data directory")
		fmt.Fprintln(os.Stderr, "  PLATEGATE_DETECTION_MIN_AREA       minimum candidate area (pixels^2)")
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	imagePath := fs.Arg(0)

	if err := run(*configPath, imagePath); err != nil {
		fmt.Fprintf(os.Stderr, "plate-gate: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, imagePath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	selector, err := detection.SelectorByName(cfg.Detection.Selection)
	if err != nil {
		return err
	}

	recognizer := pipeline.New(pipeline.Options{
		Detection: detection.Params{
			ScaleFactor:  cfg.Detection.ScaleFactor,
			MinNeighbors: cfg.Detection.MinNeighbors,
			MinArea:      cfg.Detection.MinArea,
		},
		Selector: selector,
		Reader: ocr.NewEngine(ocr.Config{
			TessdataPrefix: cfg.OCR.TessdataPrefix,
			Language:       cfg.OCR.Language,
		}),
		OpenSchedule: func() (booking.Store, error) {
			return booking.OpenPostgres(cfg.Database.DSN)
		},
		ArtifactDir: cfg.Artifacts.Dir,
		Log:         log,
	})

	result, err := recognizer.Authorize(context.Background(), imagePath)
	if err != nil {
		return err
	}

	if !result.PlateFound {
		fmt.Println("No plate detected.")
		return nil
	}
	fmt.Printf("Extracted text: %s\n", result.Plate)

	for _, d := range result.Outcome.Diagnostics {
		fmt.Printf("  [%s] %s\n", d.Reason, d.Note)
	}
	if result.Authorized {
		fmt.Println("Access authorized.")
	} else {
		fmt.Println("Access denied: no active booking for this plate.")
	}
	return nil
}
