package imaging

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// LumaModel selects how color pixels are reduced to a single 8-bit channel.
type LumaModel int

const (
	// LumaRec601 uses the ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B).
	LumaRec601 LumaModel = iota

	// LumaLightness uses the CIE L* lightness of the pixel, which tracks
	// perceived brightness more closely for saturated colors.
	LumaLightness
)

// String returns the name accepted by ParseLumaModel.
func (m LumaModel) String() string {
	switch m {
	case LumaRec601:
		return "rec601"
	case LumaLightness:
		return "lightness"
	default:
		return fmt.Sprintf("LumaModel(%d)", int(m))
	}
}

// ParseLumaModel converts a model name to a LumaModel.
// The empty string selects LumaRec601.
func ParseLumaModel(name string) (LumaModel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rec601":
		return LumaRec601, nil
	case "lightness":
		return LumaLightness, nil
	default:
		return 0, fmt.Errorf("unknown luma model: %s", name)
	}
}

// Grayscale converts img to a single-channel luma buffer anchored at (0,0).
//
// Under LumaLightness fully transparent pixels map to 0.
func Grayscale(img image.Image, model LumaModel) *image.Gray {
	if model == LumaLightness {
		return lightness(img)
	}
	return grayFromNRGBA(imaging.Grayscale(img))
}

func lightness(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		row := out.Pix[y*out.Stride:]
		for x := 0; x < b.Dx(); x++ {
			c, ok := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
			if !ok {
				continue
			}
			l, _, _ := c.Lab()
			row[x] = uint8(math.Round(math.Max(0, math.Min(1, l)) * 255))
		}
	}
	return out
}

// grayFromNRGBA keeps the red channel of an NRGBA image whose channels are
// already equal, as produced by imaging.Grayscale and its rotations.
func grayFromNRGBA(src *image.NRGBA) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		in := src.Pix[y*src.Stride:]
		row := out.Pix[y*out.Stride:]
		for x := range row[:b.Dx()] {
			row[x] = in[x*4]
		}
	}
	return out
}

// Rotate90 rotates a luma buffer 90 degrees counter-clockwise, so the
// rightmost column becomes the top row.
func Rotate90(g *image.Gray) *image.Gray {
	return grayFromNRGBA(imaging.Rotate90(g))
}

// Fit downsamples img with a Lanczos filter so that its longer side equals
// maxSize, preserving the aspect ratio.
//
// The returned scale maps coordinates in the result back to coordinates in
// img: it is longer/maxSize after a resize and exactly 1.0 when img already
// fits or maxSize is 0.
func Fit(img image.Image, maxSize int) (image.Image, float64) {
	b := img.Bounds()
	longer := max(b.Dx(), b.Dy())
	if maxSize <= 0 || longer <= maxSize {
		return img, 1.0
	}
	return imaging.Fit(img, maxSize, maxSize, imaging.Lanczos), float64(longer) / float64(maxSize)
}

// Region is a rectangle with inclusive top-left (X1,Y1) and exclusive
// bottom-right (X2,Y2) corners.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Validate checks that the region is non-empty and lies within bounds.
func (r Region) Validate(bounds image.Rectangle) error {
	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	return nil
}
