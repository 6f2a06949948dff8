// Package detection locates license plate candidates in a photograph.
//
// The detector runs a multi-scale region-proposal scan: the source image
// is Gaussian-blurred (to suppress false positives from sensor noise),
// converted to grayscale, and scanned for rectangular contours at a
// pyramid of scales. Boxes that recur across enough scales are merged
// into candidates, then filtered by a minimum-area threshold.
//
// # Parameters
//
// Three knobs control the scan, all injected by the caller rather than
// embedded here:
//
//   - ScaleFactor: how much the image shrinks between pyramid levels.
//     Smaller values (closer to 1.0) scan more levels and find more
//     candidates at the cost of time. Default 1.1.
//   - MinNeighbors: how many pyramid levels must agree on a region
//     before it becomes a candidate. Higher values reject noise.
//     Default 4.
//   - MinArea: bounding boxes whose area does not exceed this many
//     square pixels are discarded. The comparison is strict: a box of
//     exactly MinArea is excluded. Default 500.
//
// # Ordering
//
// Candidates are returned in native discovery order — the order in which
// the scan first proposed each region — never sorted by area or
// confidence. Which candidate advances to OCR is a separate, explicit
// policy; see Selector.
//
// # Results
//
// Zero surviving candidates is a normal result, not an error: it signals
// "no plate found" and the caller decides what to do next. Candidate
// crops stay in memory; persisting them to files is the caller's
// (optional) concern.
package detection
