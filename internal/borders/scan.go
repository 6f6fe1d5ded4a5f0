package borders

import (
	"image"
	"math"
	"math/rand"

	"github.com/ironsheep/image-borders-mcp/internal/imaging"
)

// Borders holds the margin, in pixels of the original image, measured from
// each edge towards the center.
type Borders struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Min returns the element-wise minimum of b and other.
func (b Borders) Min(other Borders) Borders {
	return Borders{
		Top:    min(b.Top, other.Top),
		Right:  min(b.Right, other.Right),
		Bottom: min(b.Bottom, other.Bottom),
		Left:   min(b.Left, other.Left),
	}
}

// Content returns the rectangle left inside the borders of a width x height
// image. Opposing borders that overlap yield an empty rectangle.
func (b Borders) Content(width, height int) image.Rectangle {
	return image.Rect(b.Left, b.Top, max(b.Left, width-b.Right), max(b.Top, height-b.Bottom))
}

// ScanSide returns the row of strip at which content begins below its top
// edge, or 0 when no border is found. The row is relative to strip.Rect.Min.
//
// Only rows above round(depth*height) are candidates. For each candidate the
// entropy of the rows between the current border and the candidate is divided
// by the entropy of an equally tall block below it; the candidate with the
// smallest ratio under threshold wins. With deep set the search restarts from
// the winner until no further progress is made.
func ScanSide(strip *image.Gray, depth, threshold float64, deep bool) int {
	w, h := strip.Rect.Dx(), strip.Rect.Dy()
	x0, y0 := strip.Rect.Min.X, strip.Rect.Min.Y
	height := int(math.Round(depth * float64(h)))
	border := 0

	for {
		start := border + 1
		for center := border + 1; center < height; center++ {
			if Entropy(strip, x0, y0+border, w, center-border) > 0 {
				start = center
				break
			}
		}

		sub, delta := 0, threshold
		for center := height - 1; center >= start; center-- {
			upper := Entropy(strip, x0, y0+border, w, center-border)
			// The block below is cut short at the bottom of the strip.
			lower := Entropy(strip, x0, y0+center, w, min(center-border, h-center))
			diff := threshold
			if lower != 0 {
				diff = upper / lower
			}
			if diff < delta && diff < threshold {
				delta = diff
				sub = center
			}
		}

		if sub == 0 || sub == border {
			break
		}
		border = sub
		if !deep {
			break
		}
	}

	return border
}

// ScanFrame detects the four borders of a single frame.
//
// The frame is prepared once. For each edge a column sample of the current
// orientation is scanned, then the full luma buffer is rotated a quarter turn
// counter-clockwise so that the next edge (right, bottom, left) is on top.
func ScanFrame(rng *rand.Rand, frame image.Image, o Options) (Borders, error) {
	scale, luma := Prepare(frame, o.MaxSize, o.Luma)

	var raw [4]int
	for side := range raw {
		strip, err := Chop(rng, luma, o.ColumnDensity, o.ColumnLimit)
		if err != nil {
			return Borders{}, err
		}
		raw[side] = ScanSide(strip, o.Depth, o.Threshold, o.Deep)
		if side != len(raw)-1 {
			luma = imaging.Rotate90(luma)
		}
	}

	b := frame.Bounds()
	return Borders{
		Top:    project(raw[0], scale, b.Dy()),
		Right:  project(raw[1], scale, b.Dx()),
		Bottom: project(raw[2], scale, b.Dy()),
		Left:   project(raw[3], scale, b.Dx()),
	}, nil
}

// project maps a working-buffer row to original pixels, keeping it below dim.
func project(row int, scale float64, dim int) int {
	v := int(math.Round(float64(row) * scale))
	return max(0, min(v, dim-1))
}
