package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"testing"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	white = color.RGBA{255, 255, 255, 255}
)

// solidFrame returns a paletted frame covering r in a single color.
func solidFrame(r image.Rectangle, c color.Color) *image.Paletted {
	return image.NewPaletted(r, color.Palette{c})
}

func newAnim(width, height int, frames []*image.Paletted, disposal []byte) *gif.GIF {
	return &gif.GIF{
		Image:    frames,
		Delay:    make([]int, len(frames)),
		Disposal: disposal,
		Config:   image.Config{Width: width, Height: height},
	}
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func all(int) bool { return true }

func TestDecode_Static(t *testing.T) {
	var buf bytes.Buffer
	g := image.NewGray(image.Rect(0, 0, 7, 3))
	if err := gif.Encode(&buf, g, nil); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	src, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if src.Width != 7 || src.Height != 3 || src.FrameCount() != 1 || src.Animated() {
		t.Errorf("got %dx%d frames=%d", src.Width, src.Height, src.FrameCount())
	}
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{0x00, 0x01, 0x02}))
	if !errors.Is(err, ErrDecode) {
		t.Errorf("got %v, want ErrDecode", err)
	}
}

func TestDecode_TruncatedGIF(t *testing.T) {
	var buf bytes.Buffer
	anim := newAnim(10, 10, []*image.Paletted{
		solidFrame(image.Rect(0, 0, 10, 10), red),
		solidFrame(image.Rect(0, 0, 10, 10), blue),
	}, nil)
	if err := gif.EncodeAll(&buf, anim); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	data := buf.Bytes()
	_, err := Decode(bytes.NewReader(data[:len(data)-8]))
	if !errors.Is(err, ErrDecode) {
		t.Errorf("got %v, want ErrDecode", err)
	}
}

func TestSource_StaticFrames(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src := NewSource(img)

	frames, err := src.Frames(all)
	if err != nil {
		t.Fatalf("Frames failed: %v", err)
	}
	if len(frames) != 1 || frames[0] != image.Image(img) {
		t.Errorf("expected the wrapped image, got %d frames", len(frames))
	}

	frames, err = src.Frames(func(int) bool { return false })
	if err != nil || len(frames) != 0 {
		t.Errorf("expected no frames, got %d (%v)", len(frames), err)
	}
}

func TestComposite_DisposalNone(t *testing.T) {
	// Second frame only covers the left half; the right half keeps frame 0.
	anim := newAnim(10, 10, []*image.Paletted{
		solidFrame(image.Rect(0, 0, 10, 10), red),
		solidFrame(image.Rect(0, 0, 5, 10), blue),
	}, []byte{gif.DisposalNone, gif.DisposalNone})

	frames, err := NewAnimatedSource(anim).Frames(all)
	if err != nil {
		t.Fatalf("Frames failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if got := rgbaAt(frames[1], 2, 5); got != blue {
		t.Errorf("left half: got %v, want blue", got)
	}
	if got := rgbaAt(frames[1], 8, 5); got != red {
		t.Errorf("right half: got %v, want red", got)
	}
	// Snapshots are independent of later frames.
	if got := rgbaAt(frames[0], 2, 5); got != red {
		t.Errorf("frame 0 was modified: got %v", got)
	}
}

func TestComposite_DisposalBackground(t *testing.T) {
	anim := newAnim(10, 10, []*image.Paletted{
		solidFrame(image.Rect(0, 0, 10, 10), red),
		solidFrame(image.Rect(0, 0, 5, 5), blue),
		solidFrame(image.Rect(5, 5, 10, 10), white),
	}, []byte{gif.DisposalNone, gif.DisposalBackground, gif.DisposalNone})

	frames, err := NewAnimatedSource(anim).Frames(all)
	if err != nil {
		t.Fatalf("Frames failed: %v", err)
	}
	// Frame 1's area is cleared to transparent before frame 2 is drawn.
	if got := rgbaAt(frames[2], 2, 2); got.A != 0 {
		t.Errorf("disposed area: got %v, want transparent", got)
	}
	if got := rgbaAt(frames[2], 7, 2); got != red {
		t.Errorf("untouched area: got %v, want red", got)
	}
	if got := rgbaAt(frames[2], 7, 7); got != white {
		t.Errorf("new area: got %v, want white", got)
	}
}

func TestComposite_DisposalPrevious(t *testing.T) {
	anim := newAnim(10, 10, []*image.Paletted{
		solidFrame(image.Rect(0, 0, 10, 10), red),
		solidFrame(image.Rect(0, 0, 10, 10), blue),
		solidFrame(image.Rect(0, 0, 2, 2), white),
	}, []byte{gif.DisposalNone, gif.DisposalPrevious, gif.DisposalNone})

	frames, err := NewAnimatedSource(anim).Frames(all)
	if err != nil {
		t.Fatalf("Frames failed: %v", err)
	}
	if got := rgbaAt(frames[1], 5, 5); got != blue {
		t.Errorf("frame 1: got %v, want blue", got)
	}
	// Frame 1 is rolled back, so frame 2 is drawn over frame 0.
	if got := rgbaAt(frames[2], 5, 5); got != red {
		t.Errorf("frame 2: got %v, want red", got)
	}
}

func TestComposite_KeepSelection(t *testing.T) {
	anim := newAnim(4, 4, []*image.Paletted{
		solidFrame(image.Rect(0, 0, 4, 4), red),
		solidFrame(image.Rect(0, 0, 4, 4), blue),
		solidFrame(image.Rect(0, 0, 4, 4), white),
	}, nil)

	frames, err := NewAnimatedSource(anim).Frames(func(i int) bool { return i == 1 })
	if err != nil {
		t.Fatalf("Frames failed: %v", err)
	}
	if len(frames) != 1 || rgbaAt(frames[0], 0, 0) != blue {
		t.Errorf("expected only the blue frame, got %d frames", len(frames))
	}
}

func TestComposite_FrameOutsideScreen(t *testing.T) {
	anim := newAnim(10, 10, []*image.Paletted{
		solidFrame(image.Rect(0, 0, 10, 10), red),
		solidFrame(image.Rect(5, 5, 15, 15), blue),
	}, nil)

	_, err := NewAnimatedSource(anim).Frames(all)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("got %v, want ErrDecode", err)
	}
}
