package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
)

// ErrImageLoad indicates the source image is missing or undecodable.
// This is fatal to a recognition run: the pipeline aborts before
// detection and produces no partial result.
var ErrImageLoad = errors.New("image cannot be loaded")

// Load opens and decodes an image file. Supported formats are PNG, JPEG,
// and GIF. Any open or decode failure is wrapped in ErrImageLoad.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrImageLoad, path, err)
	}
	return img, nil
}
