package borders

import (
	"image"
	"math/rand"

	"github.com/ironsheep/image-borders-mcp/internal/imaging"
)

// Prepare resizes frame to maxSize (0 = no cap) and converts it to luma.
// scale maps rows of buf back to pixels of frame.
func Prepare(frame image.Image, maxSize int, luma imaging.LumaModel) (scale float64, buf *image.Gray) {
	fitted, scale := imaging.Fit(frame, maxSize)
	return scale, imaging.Grayscale(fitted, luma)
}

// Chop builds the working strip from a sample of buf's columns. The sampled
// columns keep their full height and are laid out in draw order. When
// sampling is bypassed buf itself is returned.
func Chop(rng *rand.Rand, buf *image.Gray, density float64, limit int) (*image.Gray, error) {
	w, h := buf.Rect.Dx(), buf.Rect.Dy()
	columns, all, err := Sample(rng, w, autoDensity(w, density, limit), limit)
	if err != nil {
		return nil, err
	}
	if all {
		return buf, nil
	}

	strip := image.NewGray(image.Rect(0, 0, len(columns), h))
	for y := 0; y < h; y++ {
		in := buf.Pix[buf.PixOffset(buf.Rect.Min.X, buf.Rect.Min.Y+y):]
		out := strip.Pix[y*strip.Stride:]
		for i, col := range columns {
			out[i] = in[col]
		}
	}
	return strip, nil
}
