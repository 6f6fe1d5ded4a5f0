package borders

import (
	"context"
	"fmt"
	"image"
	"math/rand"

	"github.com/anthonynsimon/bild/parallel"
)

// FrameSource supplies decoded, fully composited frames.
// *imaging.Source implements it.
type FrameSource interface {
	FrameCount() int
	Frames(keep func(index int) bool) ([]image.Image, error)
}

// Aggregate scans a sample of the frames of src and folds the per-frame
// borders with an element-wise minimum.
//
// Frames are scanned concurrently; each scan owns its buffers and its own
// random source derived from rng, and the fold runs only after every frame
// has finished. ctx is checked before each frame scan, a scan in progress is
// not interrupted.
func Aggregate(ctx context.Context, rng *rand.Rand, src FrameSource, o Options) (Borders, error) {
	total := src.FrameCount()
	indices, all, err := Sample(rng, total, autoDensity(total, o.FrameDensity, o.FrameLimit), o.FrameLimit)
	if err != nil {
		return Borders{}, err
	}

	keep := func(int) bool { return true }
	if !all {
		selected := make(map[int]bool, len(indices))
		for _, i := range indices {
			selected[i] = true
		}
		keep = func(i int) bool { return selected[i] }
	}

	frames, err := src.Frames(keep)
	if err != nil {
		return Borders{}, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	if len(frames) == 0 {
		return Borders{}, fmt.Errorf("%w: no frames selected out of %d", ErrDecodeFailure, total)
	}

	seeds := make([]int64, len(frames))
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	results := make([]Borders, len(frames))
	errs := make([]error, len(frames))
	parallel.Line(len(frames), func(start, end int) {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				continue
			}
			results[i], errs[i] = ScanFrame(rand.New(rand.NewSource(seeds[i])), frames[i], o)
		}
	})

	for _, err := range errs {
		if err != nil {
			return Borders{}, err
		}
	}

	combined := results[0]
	for _, b := range results[1:] {
		combined = combined.Min(b)
	}
	return combined, nil
}
