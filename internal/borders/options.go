package borders

import (
	"fmt"
	"math/rand"

	"github.com/ironsheep/image-borders-mcp/internal/imaging"
)

// Default tunables.
const (
	DefaultDepth     = 0.25
	DefaultThreshold = 0.5
)

// Options holds the tunables of a detection run.
type Options struct {
	// FrameLimit caps how many frames of an animation are scanned.
	// 0 scans every frame.
	FrameLimit int

	// FrameDensity is the fraction of frames sampled when FrameLimit is set.
	// 0 spreads FrameLimit frames evenly over the animation.
	FrameDensity float64

	// MaxSize caps the longer side of each frame before scanning.
	// 0 disables resizing.
	MaxSize int

	// ColumnLimit caps how many columns of each edge strip are scanned.
	// 0 scans every column.
	ColumnLimit int

	// ColumnDensity is the fraction of columns sampled when ColumnLimit is set.
	// 0 spreads ColumnLimit columns evenly over the strip.
	ColumnDensity float64

	// Depth is the fraction of the working height searched per edge, in [0,1].
	Depth float64

	// Threshold is the entropy ratio under which a row counts as a border.
	// Smaller values are more conservative.
	Threshold float64

	// Deep repeats the search from each newly found border.
	Deep bool

	// Luma selects the grayscale conversion.
	Luma imaging.LumaModel

	// Rand is the random source for sampling. nil uses a time-seeded source.
	Rand *rand.Rand
}

// Option configures a detection run.
type Option func(*Options)

// DefaultOptions returns full-coverage options: no frame or column sampling,
// no resize, depth 0.25, threshold 0.5 and deep scanning.
func DefaultOptions() Options {
	return Options{
		Depth:     DefaultDepth,
		Threshold: DefaultThreshold,
		Deep:      true,
		Luma:      imaging.LumaRec601,
	}
}

// WithFrameLimit scans at most n frames of an animation.
func WithFrameLimit(n int) Option {
	return func(o *Options) { o.FrameLimit = n }
}

// WithFrameDensity sets the fraction of frames to sample.
func WithFrameDensity(d float64) Option {
	return func(o *Options) { o.FrameDensity = d }
}

// WithMaxSize resizes frames so that their longer side is at most n pixels.
func WithMaxSize(n int) Option {
	return func(o *Options) { o.MaxSize = n }
}

// WithColumnLimit scans at most n columns per edge.
func WithColumnLimit(n int) Option {
	return func(o *Options) { o.ColumnLimit = n }
}

// WithColumnDensity sets the fraction of columns to sample.
func WithColumnDensity(d float64) Option {
	return func(o *Options) { o.ColumnDensity = d }
}

// WithDepth sets the searched fraction of the working height.
func WithDepth(d float64) Option {
	return func(o *Options) { o.Depth = d }
}

// WithThreshold sets the entropy ratio threshold.
func WithThreshold(t float64) Option {
	return func(o *Options) { o.Threshold = t }
}

// WithDeep toggles iterative refinement.
func WithDeep(deep bool) Option {
	return func(o *Options) { o.Deep = deep }
}

// WithLumaModel selects the grayscale conversion.
func WithLumaModel(m imaging.LumaModel) Option {
	return func(o *Options) { o.Luma = m }
}

// WithRand sets the random source used for sampling.
func WithRand(rng *rand.Rand) Option {
	return func(o *Options) { o.Rand = rng }
}

// Validate reports the first out-of-range tunable.
func (o Options) Validate() error {
	switch {
	case !(o.Depth >= 0 && o.Depth <= 1):
		return fmt.Errorf("%w: depth %v outside [0,1]", ErrInvalidParameter, o.Depth)
	case !(o.Threshold > 0):
		return fmt.Errorf("%w: threshold %v must be positive", ErrInvalidParameter, o.Threshold)
	case !(o.FrameDensity >= 0 && o.FrameDensity <= 1):
		return fmt.Errorf("%w: frame density %v outside [0,1]", ErrInvalidParameter, o.FrameDensity)
	case !(o.ColumnDensity >= 0 && o.ColumnDensity <= 1):
		return fmt.Errorf("%w: column density %v outside [0,1]", ErrInvalidParameter, o.ColumnDensity)
	case o.FrameLimit < 0:
		return fmt.Errorf("%w: negative frame limit %d", ErrInvalidParameter, o.FrameLimit)
	case o.ColumnLimit < 0:
		return fmt.Errorf("%w: negative column limit %d", ErrInvalidParameter, o.ColumnLimit)
	case o.MaxSize < 0:
		return fmt.Errorf("%w: negative max size %d", ErrInvalidParameter, o.MaxSize)
	case o.Luma != imaging.LumaRec601 && o.Luma != imaging.LumaLightness:
		return fmt.Errorf("%w: unknown luma model %v", ErrInvalidParameter, o.Luma)
	}
	return nil
}
