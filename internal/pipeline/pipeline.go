// Package pipeline wires detection, preprocessing, OCR, and booking
// matching into one synchronous recognition run.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ironsheep/plate-gate/internal/booking"
	"github.com/ironsheep/plate-gate/internal/detection"
	"github.com/ironsheep/plate-gate/internal/imaging"
	"github.com/ironsheep/plate-gate/internal/ocr"
	"github.com/ironsheep/plate-gate/internal/plate"
)

// LineReader recognizes a single line of text in an image. Satisfied by
// *ocr.Engine; tests substitute a fake so no Tesseract install is needed.
type LineReader interface {
	ReadLine(img image.Image) (*ocr.Result, error)
}

// Options configures a Recognizer. Zero-value fields fall back to
// defaults where a default exists; Reader and OpenSchedule are required.
type Options struct {
	// Detection holds the candidate-scan parameters.
	Detection detection.Params

	// Selector chooses which surviving candidate advances to OCR.
	// Defaults to detection.FirstCandidate.
	Selector detection.Selector

	// Reader is the OCR engine.
	Reader LineReader

	// OpenSchedule opens the schedule store for one read. The store is
	// closed before Authorize returns, on every path.
	OpenSchedule func() (booking.Store, error)

	// ArtifactDir, when non-empty, receives the selected crop and the
	// preprocessed image as PNG files for audit. Optional; failures to
	// write artifacts never fail the run.
	ArtifactDir string

	// Now supplies the current time for window matching. Defaults to
	// time.Now; tests inject a fixed clock.
	Now func() time.Time

	Log zerolog.Logger
}

// Recognizer runs the full authorize-by-plate pipeline. Every stage is a
// blocking call executed in strict sequence; a Recognizer holds no state
// shared between runs, so concurrent deployments use one Recognizer (and
// one store connection) per pipeline.
type Recognizer struct {
	opts Options
}

// New builds a Recognizer, applying defaults for optional fields.
func New(opts Options) *Recognizer {
	if opts.Selector == nil {
		opts.Selector = detection.FirstCandidate
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Detection == (detection.Params{}) {
		opts.Detection = detection.DefaultParams()
	}
	return &Recognizer{opts: opts}
}

// RunResult is the outcome of one recognition run.
type RunResult struct {
	// RunID identifies this run in logs and audit trails.
	RunID uuid.UUID `json:"run_id"`

	// Candidates is every region that survived the area filter, in
	// discovery order.
	Candidates []detection.Candidate `json:"candidates"`

	// PlateFound is false when detection yielded no surviving
	// candidate. That is a normal terminal state, not an error; the
	// caller decides whether to retry with another image.
	PlateFound bool `json:"plate_found"`

	// RawText is the unprocessed OCR output.
	RawText string `json:"raw_text,omitempty"`

	// Plate is the canonical plate text after normalization.
	Plate string `json:"plate,omitempty"`

	// Outcome carries the matching decision and per-record trail.
	Outcome booking.Outcome `json:"outcome"`

	// Authorized mirrors Outcome.Matched; it is the only field that
	// drives the access decision.
	Authorized bool `json:"authorized"`
}

// Authorize recognizes the plate in the image at imagePath and checks it
// against the booking schedule.
//
// Fatal failures (undecodable image, unavailable OCR engine, unreadable
// schedule) return an error and no result. A plate that simply is not
// found, or found but not booked, is a normal result with Authorized
// false and a diagnostic trail explaining every record comparison.
func (r *Recognizer) Authorize(ctx context.Context, imagePath string) (*RunResult, error) {
	result := &RunResult{RunID: uuid.New()}
	log := r.opts.Log.With().Stringer("run_id", result.RunID).Logger()

	img, err := imaging.Load(imagePath)
	if err != nil {
		log.Error().Err(err).Str("image", imagePath).Msg("failed to load source image")
		return nil, err
	}

	candidates, err := detection.DetectPlates(img, r.opts.Detection)
	if err != nil {
		return nil, fmt.Errorf("detection failed: %w", err)
	}
	result.Candidates = candidates
	log.Info().Int("candidates", len(candidates)).Msg("detection complete")

	selected, ok := r.opts.Selector(candidates)
	if !ok {
		log.Info().Msg("no plate detected")
		return result, nil
	}
	result.PlateFound = true

	crop, err := cropCandidate(img, selected)
	if err != nil {
		return nil, fmt.Errorf("failed to crop candidate: %w", err)
	}
	prepared := imaging.PrepareForOCR(crop)
	r.saveArtifacts(log, crop, prepared)

	text, err := r.opts.Reader.ReadLine(prepared)
	if err != nil {
		log.Error().Err(err).Msg("ocr failed")
		return nil, err
	}
	result.RawText = text.RawText
	result.Plate = plate.Normalize(text.RawText)
	log.Info().Str("raw_text", result.RawText).Str("plate", result.Plate).Msg("extracted plate text")

	if result.Plate == "" {
		log.Info().Msg("no text recognized on plate")
		return result, nil
	}

	outcome, err := r.matchSchedule(ctx, result.Plate)
	if err != nil {
		log.Error().Err(err).Msg("schedule matching failed")
		return nil, err
	}
	result.Outcome = outcome
	result.Authorized = outcome.Matched

	log.Info().
		Str("plate", result.Plate).
		Bool("authorized", result.Authorized).
		Int("records_scanned", len(outcome.Diagnostics)).
		Msg("authorization decision")
	return result, nil
}

// matchSchedule reads the full schedule and matches the plate against it
// at the current date and time. The store connection lives only for the
// duration of this call.
func (r *Recognizer) matchSchedule(ctx context.Context, plateText string) (booking.Outcome, error) {
	store, err := r.opts.OpenSchedule()
	if err != nil {
		return booking.Outcome{}, err
	}
	defer store.Close()

	records, err := store.ListRecords(ctx)
	if err != nil {
		return booking.Outcome{}, err
	}

	now := r.opts.Now()
	date := now.Format("2006-01-02")
	clock := now.Format("15:04")
	return booking.Match(plateText, date, clock, records), nil
}

// cropCandidate clamps the candidate's bounds to the image before
// cropping; merged boxes can extend a pixel past the edge.
func cropCandidate(img image.Image, c detection.Candidate) (image.Image, error) {
	b := img.Bounds()
	x1 := clampInt(c.Bounds.X1, b.Min.X, b.Max.X-1)
	y1 := clampInt(c.Bounds.Y1, b.Min.Y, b.Max.Y-1)
	x2 := clampInt(c.Bounds.X2, x1+1, b.Max.X)
	y2 := clampInt(c.Bounds.Y2, y1+1, b.Max.Y)
	return imaging.CropRegion(img, x1, y1, x2, y2)
}

func (r *Recognizer) saveArtifacts(log zerolog.Logger, crop image.Image, prepared image.Image) {
	if r.opts.ArtifactDir == "" {
		return
	}
	cropPath := filepath.Join(r.opts.ArtifactDir, "plate_0.png")
	if err := imaging.SavePNG(crop, cropPath); err != nil {
		log.Warn().Err(err).Msg("failed to save crop artifact")
	}
	processedPath := filepath.Join(r.opts.ArtifactDir, "processed.png")
	if err := imaging.SavePNG(prepared, processedPath); err != nil {
		log.Warn().Err(err).Msg("failed to save preprocessed artifact")
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
