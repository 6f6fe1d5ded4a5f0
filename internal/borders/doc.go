// Package borders detects uniform margins around image content.
//
// Detection is a fast entropy heuristic. Each edge is scanned from the
// outside in, comparing the Shannon entropy of the region between the
// current border and a candidate row with the entropy of an equally tall
// region just below it. When the ratio drops under a threshold the candidate
// row is taken as the point where content begins. The same top-edge scan is
// reused for all four edges by rotating the luma buffer between passes.
//
// # Sampling
//
// Work is bounded by stratified random sampling: the domain (frames of an
// animation, columns of a strip) is split into runs and one index is drawn
// from each run. Sampling is disabled when the limit is 0 or the density is 1.
// The random source is always an explicit *rand.Rand; tests inject a seeded one.
//
// # Animated Images
//
// Every selected frame is scanned independently and the four offsets are
// folded with an element-wise minimum, so a margin is only reported where no
// sampled frame has content.
//
// # Errors
//
// Out-of-range tunables fail with ErrInvalidParameter before any work is done.
// Decode and compositing failures fail with ErrDecodeFailure. No partial
// report is ever returned.
package borders
