package detection

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Bounds is a rectangular bounding box in source-image pixel coordinates.
// (X1, Y1) is the top-left corner (inclusive); (X2, Y2) the bottom-right.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Point is a 2D pixel coordinate, origin at the top-left.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Params configures the multi-scale scan. All three values must come from
// configuration; nothing in this package hardcodes them.
type Params struct {
	// ScaleFactor is the pyramid step between scan levels. Must be > 1.
	ScaleFactor float64

	// MinNeighbors is the number of pyramid levels that must propose
	// overlapping boxes before a region is emitted.
	MinNeighbors int

	// MinArea excludes boxes whose width*height is not strictly greater
	// than this value, in square pixels.
	MinArea int
}

// DefaultParams returns the standard scan parameters.
func DefaultParams() Params {
	return Params{ScaleFactor: 1.1, MinNeighbors: 4, MinArea: 500}
}

// Candidate is one proposed plate region.
type Candidate struct {
	// Bounds encloses the region in source-image coordinates.
	Bounds Bounds `json:"bounds"`

	// Center is the midpoint of the bounds.
	Center Point `json:"center"`

	Width  int `json:"width"`
	Height int `json:"height"`

	// Area is Width * Height in square pixels.
	Area int `json:"area"`

	// Neighbors is how many pyramid levels proposed this region.
	Neighbors int `json:"neighbors"`

	// FillColor is the hex color sampled at the region center, for
	// diagnostics. Empty if sampling fails.
	FillColor string `json:"fill_color,omitempty"`
}

// DetectPlates scans img for plate-like rectangular regions.
//
// The image is blurred and grayscaled once, then contour boxes are
// collected at each pyramid level from full size down. Boxes proposed by
// at least MinNeighbors levels merge into one candidate. Candidates whose
// area is not strictly greater than MinArea are dropped. Survivors are
// returned in discovery order.
func DetectPlates(img image.Image, p Params) ([]Candidate, error) {
	if p.ScaleFactor <= 1 {
		return nil, fmt.Errorf("scale factor must be > 1, got %g", p.ScaleFactor)
	}
	if p.MinNeighbors < 1 {
		return nil, fmt.Errorf("min neighbors must be >= 1, got %d", p.MinNeighbors)
	}

	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()
	if srcW == 0 || srcH == 0 {
		return nil, nil
	}

	// Blur before scanning so compression artifacts and sensor noise do
	// not produce spurious contours.
	smoothed := imaging.Grayscale(blur.Gaussian(img, 1.4))

	var raw []Bounds
	for scale := 1.0; ; scale /= p.ScaleFactor {
		w := int(float64(srcW)*scale + 0.5)
		h := int(float64(srcH)*scale + 0.5)
		if w < minScanSize || h < minScanSize {
			break
		}

		level := smoothed
		if scale != 1.0 {
			level = imaging.Resize(smoothed, w, h, imaging.Linear)
		}

		for _, b := range boxesAtLevel(level) {
			raw = append(raw, Bounds{
				X1: int(float64(b.X1) / scale),
				Y1: int(float64(b.Y1) / scale),
				X2: int(float64(b.X2) / scale),
				Y2: int(float64(b.Y2) / scale),
			})
		}
	}

	merged := mergeNeighbors(raw, p.MinNeighbors)

	candidates := make([]Candidate, 0, len(merged))
	for _, g := range merged {
		c := g
		if c.Area <= p.MinArea {
			continue
		}
		c.FillColor = sampleHex(img, c.Center.X+img.Bounds().Min.X, c.Center.Y+img.Bounds().Min.Y)
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// minScanSize is the smallest pyramid level worth scanning. Below this a
// plate occupies too few pixels for contour analysis.
const minScanSize = 32

// boxesAtLevel finds the bounding boxes of plate-like contours in one
// grayscale pyramid level, in contour discovery order.
func boxesAtLevel(gray image.Image) []Bounds {
	w := gray.Bounds().Dx()
	h := gray.Bounds().Dy()

	edges := edgeMap(gray, w, h)
	visited := make([]bool, w*h)

	var boxes []Bounds
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !edges[y*w+x] || visited[y*w+x] {
				continue
			}
			x1, y1, x2, y2, size := traceComponent(edges, visited, x, y, w, h)
			if size < minContourSize {
				continue
			}
			bw := x2 - x1
			bh := y2 - y1
			// Plates are wider than tall; discard upright boxes early.
			if bw < bh || bw == 0 || bh == 0 {
				continue
			}
			boxes = append(boxes, Bounds{X1: x1, Y1: y1, X2: x2, Y2: y2})
		}
	}
	return boxes
}

// minContourSize discards connected components too small to be a plate
// outline even at the lowest pyramid level.
const minContourSize = 10

// edgeMap marks pixels whose horizontal or vertical gradient exceeds a
// fixed grayscale threshold. Border pixels are never edges.
func edgeMap(gray image.Image, w, h int) []bool {
	const threshold = 30

	min := gray.Bounds().Min
	edges := make([]bool, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			c := luma(gray, min.X+x, min.Y+y)
			dx := c - luma(gray, min.X+x+1, min.Y+y)
			dy := c - luma(gray, min.X+x, min.Y+y+1)
			if dx < 0 {
				dx = -dx
			}
			if dy < 0 {
				dy = -dy
			}
			if dx > threshold || dy > threshold {
				edges[y*w+x] = true
			}
		}
	}
	return edges
}

// luma returns the BT.601 luminance of a pixel as an int in [0, 255].
func luma(img image.Image, x, y int) int {
	r, g, b, _ := img.At(x, y).RGBA()
	return int(float64(r>>8)*0.299 + float64(g>>8)*0.587 + float64(b>>8)*0.114)
}

// traceComponent flood-fills the 8-connected edge component containing
// (startX, startY), marking it visited, and returns its bounding box and
// pixel count. Iterative to stay safe on large components.
func traceComponent(edges, visited []bool, startX, startY, w, h int) (x1, y1, x2, y2, size int) {
	x1, y1 = startX, startY
	x2, y2 = startX, startY

	stack := []Point{{X: startX, Y: startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		idx := p.Y*w + p.X
		if visited[idx] || !edges[idx] {
			continue
		}
		visited[idx] = true
		size++

		if p.X < x1 {
			x1 = p.X
		}
		if p.X > x2 {
			x2 = p.X
		}
		if p.Y < y1 {
			y1 = p.Y
		}
		if p.Y > y2 {
			y2 = p.Y
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	return x1, y1, x2, y2, size
}

// mergeNeighbors groups raw boxes that refer to the same region across
// pyramid levels and emits one candidate per group with at least
// minNeighbors members. Groups are emitted in the discovery order of
// their first member; member boxes are averaged into the final bounds.
func mergeNeighbors(raw []Bounds, minNeighbors int) []Candidate {
	type group struct {
		sumX1, sumY1, sumX2, sumY2 int
		count                      int
	}

	var groups []group
	for _, b := range raw {
		placed := false
		for i := range groups {
			g := &groups[i]
			avg := Bounds{
				X1: g.sumX1 / g.count,
				Y1: g.sumY1 / g.count,
				X2: g.sumX2 / g.count,
				Y2: g.sumY2 / g.count,
			}
			if overlaps(avg, b) {
				g.sumX1 += b.X1
				g.sumY1 += b.Y1
				g.sumX2 += b.X2
				g.sumY2 += b.Y2
				g.count++
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, group{b.X1, b.Y1, b.X2, b.Y2, 1})
		}
	}

	out := make([]Candidate, 0, len(groups))
	for _, g := range groups {
		if g.count < minNeighbors {
			continue
		}
		b := Bounds{
			X1: g.sumX1 / g.count,
			Y1: g.sumY1 / g.count,
			X2: g.sumX2 / g.count,
			Y2: g.sumY2 / g.count,
		}
		width := b.X2 - b.X1
		height := b.Y2 - b.Y1
		out = append(out, Candidate{
			Bounds:    b,
			Center:    Point{X: (b.X1 + b.X2) / 2, Y: (b.Y1 + b.Y2) / 2},
			Width:     width,
			Height:    height,
			Area:      width * height,
			Neighbors: g.count,
		})
	}
	return out
}

// overlaps reports whether two boxes cover substantially the same region:
// their intersection must be at least half the smaller box's area.
func overlaps(a, b Bounds) bool {
	ix1 := maxInt(a.X1, b.X1)
	iy1 := maxInt(a.Y1, b.Y1)
	ix2 := minInt(a.X2, b.X2)
	iy2 := minInt(a.Y2, b.Y2)
	if ix1 >= ix2 || iy1 >= iy2 {
		return false
	}
	inter := (ix2 - ix1) * (iy2 - iy1)
	areaA := (a.X2 - a.X1) * (a.Y2 - a.Y1)
	areaB := (b.X2 - b.X1) * (b.Y2 - b.Y1)
	smaller := minInt(areaA, areaB)
	if smaller == 0 {
		return false
	}
	return inter*2 >= smaller
}

// sampleHex returns the "#rrggbb" color at (x, y), or "" when the pixel
// cannot be represented (e.g. fully transparent).
func sampleHex(img image.Image, x, y int) string {
	if !image.Pt(x, y).In(img.Bounds()) {
		return ""
	}
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		return ""
	}
	return c.Hex()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
