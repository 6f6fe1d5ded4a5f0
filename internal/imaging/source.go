package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrDecode is wrapped by every error caused by malformed or unsupported
// image data, as opposed to I/O failures while reading it.
var ErrDecode = errors.New("image decode failed")

// Source is a decoded image ready for analysis.
//
// A Source is either a single static raster or an animated GIF. Animated
// sources keep the raw GIF frames and composite them on demand, so loading a
// long animation does not materialize every full-canvas frame up front.
//
// Source values are immutable after Decode and safe for concurrent use.
type Source struct {
	// Width is the canvas width in pixels.
	Width int

	// Height is the canvas height in pixels.
	Height int

	// Format is the format name reported by the registered decoder
	// ("png", "jpeg", "gif", "bmp", "tiff", "webp").
	Format string

	static image.Image
	anim   *gif.GIF
}

// Decode reads an image from r and returns it as a Source.
//
// The container format is sniffed from the content. GIF data is decoded with
// all of its frames; every other format yields a single-frame Source.
//
// # Errors
//
//   - I/O errors from r are returned as-is
//   - Unknown formats and corrupt data are wrapped with ErrDecode
func Decode(r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	src := &Source{Width: cfg.Width, Height: cfg.Height, Format: format}

	if format == "gif" {
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if len(g.Image) == 0 {
			return nil, fmt.Errorf("%w: gif has no frames", ErrDecode)
		}
		if g.Config.Width == 0 || g.Config.Height == 0 {
			g.Config.Width, g.Config.Height = src.Width, src.Height
		}
		src.anim = g
		return src, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	src.static = img
	return src, nil
}

// NewSource wraps an already decoded static image.
func NewSource(img image.Image) *Source {
	b := img.Bounds()
	return &Source{Width: b.Dx(), Height: b.Dy(), Format: "raw", static: img}
}

// NewAnimatedSource wraps an already decoded GIF animation.
func NewAnimatedSource(g *gif.GIF) *Source {
	return &Source{Width: g.Config.Width, Height: g.Config.Height, Format: "gif", anim: g}
}

// FrameCount returns the number of frames, 1 for static images.
func (s *Source) FrameCount() int {
	if s.anim != nil {
		return len(s.anim.Image)
	}
	return 1
}

// Animated reports whether the source has more than one frame.
func (s *Source) Animated() bool {
	return s.FrameCount() > 1
}

// Frames returns the fully composited frames whose index satisfies keep,
// in frame order.
//
// For animations every frame is replayed onto the canvas (GIF frames are
// deltas), honouring each frame's disposal method, and a snapshot of the
// canvas is taken for the kept indices. Static sources return the single
// image when keep(0) is true.
//
// # Errors
//
// A frame whose bounds fall outside the logical screen is reported as
// missing frame data and wrapped with ErrDecode. No partial result is
// returned.
func (s *Source) Frames(keep func(index int) bool) ([]image.Image, error) {
	if s.anim == nil {
		if s.static == nil {
			return nil, fmt.Errorf("%w: source holds no image data", ErrDecode)
		}
		if keep(0) {
			return []image.Image{s.static}, nil
		}
		return nil, nil
	}
	return composite(s.anim, keep)
}

// composite replays GIF frames onto an NRGBA canvas.
func composite(g *gif.GIF, keep func(int) bool) ([]image.Image, error) {
	canvas := image.NewNRGBA(image.Rect(0, 0, g.Config.Width, g.Config.Height))
	var out []image.Image

	for i, frame := range g.Image {
		b := frame.Bounds()
		if !b.In(canvas.Bounds()) {
			return nil, fmt.Errorf("%w: frame %d bounds %v outside %dx%d screen",
				ErrDecode, i, b, g.Config.Width, g.Config.Height)
		}

		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		var previous *image.NRGBA
		if disposal == gif.DisposalPrevious {
			previous = imaging.Clone(canvas)
		}

		draw.Draw(canvas, b, frame, b.Min, draw.Over)

		if keep(i) {
			out = append(out, imaging.Clone(canvas))
		}

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, b, image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}

	return out, nil
}
