package borders

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/ironsheep/image-borders-mcp/internal/imaging"
)

// Detect finds the borders of src.
//
// Options are applied over DefaultOptions and validated before any frame is
// decoded. Static sources are scanned once; animations go through Aggregate.
func Detect(ctx context.Context, src FrameSource, opts ...Option) (Borders, error) {
	o, err := resolve(opts)
	if err != nil {
		return Borders{}, err
	}

	rng := o.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return Aggregate(ctx, rng, src, o)
}

// DetectFile loads path through cache and finds its borders.
//
// I/O errors are returned unchanged; undecodable content is reported as
// ErrDecodeFailure.
func DetectFile(ctx context.Context, cache *imaging.ImageCache, path string, opts ...Option) (Borders, *imaging.Source, error) {
	if _, err := resolve(opts); err != nil {
		return Borders{}, nil, err
	}

	src, err := cache.Load(path)
	if err != nil {
		if errors.Is(err, imaging.ErrDecode) {
			return Borders{}, nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
		}
		return Borders{}, nil, err
	}

	b, err := Detect(ctx, src, opts...)
	if err != nil {
		return Borders{}, nil, err
	}
	return b, src, nil
}

func resolve(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.Validate()
}
