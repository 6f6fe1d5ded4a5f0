package borders

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"
)

func TestSample_Bypass(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name    string
		density float64
		limit   int
	}{
		{"full density", 1.0, 10},
		{"zero limit", 0.25, 0},
		{"full density zero limit", 1.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			indices, all, err := Sample(rng, 1000, tt.density, tt.limit)
			if err != nil {
				t.Fatalf("Sample failed: %v", err)
			}
			if !all {
				t.Error("expected sampling to be bypassed")
			}
			if indices != nil {
				t.Errorf("bypass should not materialize indices, got %d", len(indices))
			}
		})
	}
}

func TestSample_InvalidDensity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, d := range []float64{-0.1, 1.5, math.NaN(), math.Inf(1)} {
		_, _, err := Sample(rng, 100, d, 10)
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("density %v: got %v, want ErrInvalidParameter", d, err)
		}
	}
}

func TestSample_NegativeLimit(t *testing.T) {
	_, _, err := Sample(rand.New(rand.NewSource(1)), 100, 0.5, -1)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
}

func TestSample_Coverage(t *testing.T) {
	tests := []struct {
		total   int
		density float64
		limit   int
	}{
		{100, 0.1, 5},
		{100, 0.1, 1000},
		{7, 0.5, 3},
		{1, 0.9, 4},
		{1000, 0.01, 7},
		{33, 0.3, 33},
		{50, 0, 10},
	}

	for _, tt := range tests {
		rng := rand.New(rand.NewSource(int64(tt.total)))
		indices, all, err := Sample(rng, tt.total, tt.density, tt.limit)
		if err != nil {
			t.Fatalf("Sample(%d, %v, %d) failed: %v", tt.total, tt.density, tt.limit, err)
		}
		if all {
			t.Fatalf("Sample(%d, %v, %d) unexpectedly bypassed", tt.total, tt.density, tt.limit)
		}
		if len(indices) > min(tt.limit, tt.total) {
			t.Errorf("Sample(%d, %v, %d) returned %d indices", tt.total, tt.density, tt.limit, len(indices))
		}
		seen := make(map[int]bool)
		for _, i := range indices {
			if i < 0 || i >= tt.total {
				t.Errorf("index %d outside [0,%d)", i, tt.total)
			}
			if seen[i] {
				t.Errorf("duplicate index %d", i)
			}
			seen[i] = true
		}
	}
}

func TestSample_OnePerStratum(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	// Runs of 10 over 25 indices: [0,10), [10,20) and the partial [20,25).
	indices, _, err := Sample(rng, 25, 0.1, 100)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if len(indices) != 3 {
		t.Fatalf("got %d indices, want 3", len(indices))
	}

	sort.Ints(indices)
	bounds := [][2]int{{0, 10}, {10, 20}, {20, 25}}
	for i, b := range bounds {
		if indices[i] < b[0] || indices[i] >= b[1] {
			t.Errorf("index %d = %d, want in [%d,%d)", i, indices[i], b[0], b[1])
		}
	}
}

func TestSample_ZeroDensitySingleRun(t *testing.T) {
	indices, all, err := Sample(rand.New(rand.NewSource(3)), 40, 0, 5)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if all || len(indices) != 1 {
		t.Errorf("got all=%v len=%d, want a single draw", all, len(indices))
	}
}

func TestSample_EmptyDomain(t *testing.T) {
	indices, all, err := Sample(rand.New(rand.NewSource(3)), 0, 0.5, 5)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if all || len(indices) != 0 {
		t.Errorf("got all=%v len=%d, want empty sample", all, len(indices))
	}
}

func TestAutoDensity(t *testing.T) {
	tests := []struct {
		total   int
		density float64
		limit   int
		want    float64
	}{
		{100, 0, 10, 0.1},
		{100, 0, 200, 1},
		{100, 0.3, 10, 0.3},
		{100, 0, 0, 0},
		{0, 0, 10, 0},
	}

	for _, tt := range tests {
		got := autoDensity(tt.total, tt.density, tt.limit)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("autoDensity(%d, %v, %d) = %v, want %v", tt.total, tt.density, tt.limit, got, tt.want)
		}
	}
}
