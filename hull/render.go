package hull

import (
	"image"
	"image/png"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// WritePNG encodes the hull as a PNG image with each panel drawn as a
// scale by scale square.
func WritePNG(w io.Writer, h *Hull, scale int) error {
	if scale < 1 {
		return errors.Errorf("invalid scale %d", scale)
	}
	src := h.Image()
	dst := image.NewPaletted(image.Rectangle{Max: src.Bounds().Size().Mul(scale)}, Palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return errors.Wrap(png.Encode(w, dst), "WritePNG")
}
