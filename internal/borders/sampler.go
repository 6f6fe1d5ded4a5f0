package borders

import (
	"fmt"
	"math"
	"math/rand"
)

// Sample draws a stratified random subset of [0, total).
//
// The domain is cut into runs of round(1/density) indices (capped at total)
// and one index is drawn uniformly from every full run and from the trailing
// partial run, if any. The draws are shuffled and truncated to limit.
//
// When density is 1 or limit is 0 sampling is bypassed: all is true, indices
// is nil and the caller should use the whole domain.
func Sample(rng *rand.Rand, total int, density float64, limit int) (indices []int, all bool, err error) {
	if !(density >= 0 && density <= 1) {
		return nil, false, fmt.Errorf("%w: density %v outside [0,1]", ErrInvalidParameter, density)
	}
	if limit < 0 {
		return nil, false, fmt.Errorf("%w: negative sample limit %d", ErrInvalidParameter, limit)
	}
	if density == 1 || limit == 0 {
		return nil, true, nil
	}
	if total <= 0 {
		return []int{}, false, nil
	}

	run := total
	if density > 0 {
		if r := int(math.Round(1 / density)); r < total {
			run = r
		}
	}

	full, rem := total/run, total%run
	indices = make([]int, 0, full+1)
	for i := 0; i < full; i++ {
		indices = append(indices, i*run+rng.Intn(run))
	}
	if rem != 0 {
		indices = append(indices, full*run+rng.Intn(rem))
	}

	rng.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
	if len(indices) > limit {
		indices = indices[:limit]
	}
	return indices, false, nil
}

// autoDensity resolves a zero density to the fraction that spreads limit
// draws evenly over total. Explicit densities are returned unchanged.
func autoDensity(total int, density float64, limit int) float64 {
	if density != 0 || limit <= 0 || total <= 0 {
		return density
	}
	return math.Min(1, float64(limit)/float64(total))
}
