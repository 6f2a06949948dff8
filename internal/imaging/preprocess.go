package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// PrepareForOCR converts one plate crop into the binarized, upscaled
// image the OCR engine reads. The steps run in a fixed order with no
// configurable branching: grayscale, Otsu binarization, 2x cubic
// upscale. Output is byte-identical across runs for identical input.
func PrepareForOCR(crop image.Image) *image.NRGBA {
	gray := imaging.Grayscale(crop)
	bin := binarize(gray, otsuThreshold(gray))
	return imaging.Resize(bin, bin.Bounds().Dx()*2, bin.Bounds().Dy()*2, imaging.CatmullRom)
}

// otsuThreshold selects the global binarization threshold that maximizes
// between-class variance (equivalently, minimizes intra-class variance)
// over the image's intensity histogram.
func otsuThreshold(gray *image.NRGBA) uint8 {
	var hist [256]int
	bounds := gray.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// Grayscale NRGBA has R == G == B.
			hist[gray.NRGBAAt(x, y).R]++
		}
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var (
		sumBelow   float64
		countBelow int
		bestVar    float64
		best       uint8
	)
	for t := 0; t < 256; t++ {
		countBelow += hist[t]
		if countBelow == 0 {
			continue
		}
		countAbove := total - countBelow
		if countAbove == 0 {
			break
		}
		sumBelow += float64(t) * float64(hist[t])

		meanBelow := sumBelow / float64(countBelow)
		meanAbove := (sum - sumBelow) / float64(countAbove)
		diff := meanBelow - meanAbove
		between := float64(countBelow) * float64(countAbove) * diff * diff

		if between > bestVar {
			bestVar = between
			best = uint8(t)
		}
	}
	return best
}

// binarize maps every pixel at or below threshold to black and the rest
// to white.
func binarize(gray *image.NRGBA, threshold uint8) *image.NRGBA {
	bounds := gray.Bounds()
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := uint8(255)
			if gray.NRGBAAt(x, y).R <= threshold {
				v = 0
			}
			out.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return out
}
