package imaging

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

// createBimodalImage draws dark text-like blocks on a light background,
// approximating a plate crop's intensity histogram.
func createBimodalImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/8+y/8)%3 == 0 {
				img.Set(x, y, color.RGBA{40, 40, 40, 255})
			} else {
				img.Set(x, y, color.RGBA{210, 210, 210, 255})
			}
		}
	}
	return img
}

func TestPrepareForOCR_Dimensions(t *testing.T) {
	crop := createBimodalImage(120, 40)

	out := PrepareForOCR(crop)
	if out.Bounds().Dx() != 240 || out.Bounds().Dy() != 80 {
		t.Errorf("output is %dx%d, want exactly 2x input (240x80)",
			out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestPrepareForOCR_Deterministic(t *testing.T) {
	crop := createBimodalImage(100, 30)

	first := PrepareForOCR(crop)
	second := PrepareForOCR(crop)

	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("identical input must produce byte-identical output")
	}
}

func TestPrepareForOCR_Binarized(t *testing.T) {
	out := PrepareForOCR(createBimodalImage(80, 24))

	// Before upscaling the image is strictly black/white; cubic
	// resampling interpolates, so the dominant mass must still sit at
	// the extremes.
	extreme := 0
	total := 0
	bounds := out.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := out.NRGBAAt(x, y).R
			total++
			if v < 32 || v > 223 {
				extreme++
			}
		}
	}
	if extreme*10 < total*8 {
		t.Errorf("expected >=80%% near-extreme pixels after binarize+upscale, got %d/%d", extreme, total)
	}
}

func TestOtsuThreshold_SeparatesModes(t *testing.T) {
	gray := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			v := uint8(50)
			if x >= 10 {
				v = 200
			}
			gray.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}

	th := otsuThreshold(gray)
	if th < 50 || th >= 200 {
		t.Errorf("threshold %d should fall between the two modes (50, 200)", th)
	}
}

func TestBinarize(t *testing.T) {
	gray := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	for i, v := range []uint8{0, 100, 101, 255} {
		gray.SetNRGBA(i, 0, color.NRGBA{R: v, G: v, B: v, A: 255})
	}

	out := binarize(gray, 100)
	want := []uint8{0, 0, 255, 255}
	for i, w := range want {
		if got := out.NRGBAAt(i, 0).R; got != w {
			t.Errorf("pixel %d = %d, want %d", i, got, w)
		}
	}
}
