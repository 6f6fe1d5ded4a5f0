package imaging

import (
	"fmt"
	"image"
	"os"
	"sync"
)

// ImageCache provides thread-safe caching of decoded sources to avoid redundant disk reads.
//
// The cache stores decoded *Source values keyed by their file path. Once an image
// is loaded, subsequent Load() calls for the same path return the cached copy without
// disk I/O. Animated GIFs are cached with all raw frames; compositing happens per
// request in Source.Frames.
//
// ImageCache is safe for concurrent use by multiple goroutines. All methods use
// appropriate locking to prevent data races.
//
// # Memory Management
//
// Cached sources remain in memory until explicitly removed via Evict() or Clear().
// For long-running processes handling many images, consider periodic cleanup to
// prevent unbounded memory growth.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	src, err := cache.Load("/path/to/image.gif")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(src.FrameCount())
//	cache.Evict("/path/to/image.gif") // Optional: free memory
type ImageCache struct {
	mu      sync.RWMutex
	sources map[string]*Source
}

// NewImageCache creates and initializes a new empty image cache.
//
// The returned cache is ready for immediate use and is safe for concurrent access.
func NewImageCache() *ImageCache {
	return &ImageCache{
		sources: make(map[string]*Source),
	}
}

// Load retrieves a source from the cache or decodes it from disk if not cached.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported formats are
//     PNG, JPEG, GIF (including animations), BMP, TIFF and WebP.
//
// Returns:
//   - *Source: The decoded source.
//   - error: Non-nil if the file cannot be opened or decoded.
//
// The source is cached using the exact path string provided. Different paths to the
// same file (e.g., relative vs absolute) will result in separate cache entries.
//
// # Errors
//
//   - Returns the wrapped *os.PathError if the file does not exist or cannot be read
//   - Returns an error wrapping ErrDecode if the content is not a supported image
func (c *ImageCache) Load(path string) (*Source, error) {
	c.mu.RLock()
	if src, ok := c.sources[path]; ok {
		c.mu.RUnlock()
		return src, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	src, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	c.mu.Lock()
	c.sources[path] = src
	c.mu.Unlock()

	return src, nil
}

// Clear removes all sources from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.sources = make(map[string]*Source)
	c.mu.Unlock()
}

// Evict removes a specific source from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
// After eviction, the next Load() call for this path will read from disk.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.sources, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected image format: "png", "jpeg", "gif", "bmp", "tiff" or "webp".
	// Detection is based on file contents, not the file extension.
	Format string `json:"format"`

	// FrameCount is the number of frames; 1 for static images.
	FrameCount int `json:"frame_count"`

	// Animated is true when FrameCount is greater than one.
	Animated bool `json:"animated"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image and returns metadata about it.
//
// This function loads the source into the cache (if not already cached) and
// reports dimensions, content-sniffed format, frame count, color depth, alpha
// channel presence, and file size.
//
// # Color Depth Detection
//
// Color depth is determined by the Go image type of the first frame:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
//
// Animated GIFs always report an alpha channel, since frames may leave
// parts of the canvas transparent.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	src, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := src.anim != nil
	colorDepth := "8-bit"
	switch src.static.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	return &ImageInfo{
		Width:         src.Width,
		Height:        src.Height,
		Format:        src.Format,
		FrameCount:    src.FrameCount(),
		Animated:      src.Animated(),
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	src, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	return &DimensionsResult{
		Width:  src.Width,
		Height: src.Height,
	}, nil
}
