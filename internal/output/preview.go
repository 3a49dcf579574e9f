package output

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/nfnt/resize"
	"github.com/pavletto/reliefgrid/internal/grid"
)

// PreviewImage renders levels as greyscale, north up: level 0 is black and
// maxLevel is white. width 0 keeps one pixel per cell; otherwise the image
// is scaled with nearest-neighbour so layer edges stay sharp.
func PreviewImage(levels *grid.Grid[int], maxLevel int, width uint) (image.Image, error) {
	if levels.Len() == 0 {
		return nil, fmt.Errorf("empty grid")
	}
	if maxLevel < 1 {
		maxLevel = 1
	}

	img := image.NewGray(image.Rect(0, 0, levels.Cols(), levels.Rows()))
	for r := 0; r < levels.Rows(); r++ {
		for c, v := range levels.Row(r) {
			v = min(max(v, 0), maxLevel)
			img.SetGray(c, r, color.Gray{Y: uint8(v * 255 / maxLevel)})
		}
	}

	if width == 0 || int(width) == levels.Cols() {
		return img, nil
	}
	height := max(width*uint(levels.Rows())/uint(levels.Cols()), 1)
	return resize.Resize(width, height, img, resize.NearestNeighbor), nil
}

// WritePreview writes PreviewImage as a PNG file.
func WritePreview(path string, levels *grid.Grid[int], maxLevel int, width uint) error {
	img, err := PreviewImage(levels, maxLevel, width)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return writeAtomic(path, func(w io.Writer) error {
		return png.Encode(w, img)
	})
}
