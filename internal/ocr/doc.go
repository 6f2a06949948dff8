// Package ocr extracts plate text from a preprocessed image using
// Tesseract.
//
// The engine treats its input as a single line of text (no layout
// analysis) because a plate crop contains exactly one line. Output is
// raw: whatever Tesseract read, noise included. Cleanup belongs to the
// plate package.
//
// Tesseract is linked via gosseract and must be installed on the host.
// The training-data location and language are injected configuration,
// never embedded here; a missing or misconfigured engine surfaces as
// ErrEngineUnavailable, which is an environment failure and is not
// retried.
package ocr
