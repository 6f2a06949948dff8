// Package imaging handles image loading, candidate cropping, and the
// deterministic preprocessing that turns a plate crop into an OCR-ready
// image.
//
// # Preprocessing
//
// PrepareForOCR applies a fixed-order pipeline with no configurable
// branching:
//
//  1. Grayscale conversion (BT.601 luminance)
//  2. Global binarization with an Otsu-selected threshold — the
//     threshold minimizing intra-class intensity variance over the
//     crop's histogram
//  3. 2x upscale in both dimensions using Catmull-Rom (cubic)
//     interpolation
//
// The pipeline contains no randomness: the same crop always produces a
// byte-identical output image.
//
// # File artifacts
//
// All pipeline stages pass images in memory. SavePNG exists for callers
// that want per-candidate crops or the preprocessed image on disk for
// audit; nothing in the core path requires it.
package imaging
