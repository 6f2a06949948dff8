package ocr

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// ErrEngineUnavailable indicates the OCR engine could not be located,
// configured, or invoked. Fatal to a recognition run.
var ErrEngineUnavailable = errors.New("ocr engine unavailable")

// Result holds raw OCR output. The text may contain misread characters,
// stray punctuation, and whitespace.
type Result struct {
	RawText string `json:"raw_text"`
}

// Config locates and configures the OCR engine.
type Config struct {
	// TessdataPrefix is the directory holding Tesseract training data.
	// Empty means the engine's own default location.
	TessdataPrefix string

	// Language is the Tesseract language code. Defaults to "eng".
	Language string
}

// Engine runs Tesseract in single-line mode over plate crops.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine from injected configuration.
func NewEngine(cfg Config) *Engine {
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &Engine{cfg: cfg}
}

// ReadLine recognizes the single line of text in img.
//
// Tesseract consumes file paths, so the image is handed over via a
// temporary PNG that is removed before returning. Configuration and
// invocation failures are wrapped in ErrEngineUnavailable.
func (e *Engine) ReadLine(img image.Image) (*Result, error) {
	tmpPath, err := writeTempPNG(img)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	client := gosseract.NewClient()
	defer client.Close()

	if e.cfg.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.cfg.TessdataPrefix); err != nil {
			return nil, fmt.Errorf("%w: set tessdata prefix: %v", ErrEngineUnavailable, err)
		}
	}
	if err := client.SetLanguage(e.cfg.Language); err != nil {
		return nil, fmt.Errorf("%w: set language %q: %v", ErrEngineUnavailable, e.cfg.Language, err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		return nil, fmt.Errorf("%w: set page segmentation mode: %v", ErrEngineUnavailable, err)
	}
	if err := client.SetImage(tmpPath); err != nil {
		return nil, fmt.Errorf("%w: set image: %v", ErrEngineUnavailable, err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("%w: recognize: %v", ErrEngineUnavailable, err)
	}
	return &Result{RawText: text}, nil
}

// writeTempPNG stores img in the system temp directory for the engine to
// read. The caller removes the file.
func writeTempPNG(img image.Image) (string, error) {
	f, err := os.CreateTemp("", "plate-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()

	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to encode temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
