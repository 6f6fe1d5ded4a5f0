package borders

import (
	"fmt"
	"image"
	"math"
)

// Entropy returns the Shannon entropy, in bits, of the luma histogram of the
// region [x, x+width) x [y, y+height) of buf.
//
// A uniform region has entropy 0, as does an empty one. The result never
// exceeds 8. Regions outside buf are a caller bug and panic.
func Entropy(buf *image.Gray, x, y, width, height int) float64 {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("borders: negative entropy region %dx%d", width, height))
	}
	area := width * height
	if area == 0 {
		return 0
	}
	r := image.Rect(x, y, x+width, y+height)
	if !r.In(buf.Rect) {
		panic(fmt.Sprintf("borders: entropy region %v outside buffer %v", r, buf.Rect))
	}

	var hist [256]int
	for row := r.Min.Y; row < r.Max.Y; row++ {
		off := buf.PixOffset(r.Min.X, row)
		for _, v := range buf.Pix[off : off+width] {
			hist[v]++
		}
	}

	var e float64
	n := float64(area)
	for _, count := range hist {
		if count == 0 {
			continue
		}
		p := float64(count) / n
		e -= p * math.Log2(p)
	}
	return math.Max(0, e)
}
