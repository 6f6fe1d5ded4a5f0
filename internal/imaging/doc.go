// Package imaging provides image loading and the pixel plumbing used by the
// border detector.
//
// Images are decoded once into a Source, which keeps either a single still
// image or the full frame list of an animated GIF. Frames are composited on
// demand onto the logical screen, honouring each frame's disposal method, so
// callers only pay for the frames they ask for.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Luma
//
// Grayscale converts a frame to an 8-bit luma buffer using either the
// Rec. 601 weighting or the CIE L* lightness channel. Rotate90 and Fit
// operate on those buffers and on source frames respectively.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. A Source is immutable after
// decoding and may be shared between goroutines.
package imaging
