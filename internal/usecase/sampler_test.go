package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampler_Indices(t *testing.T) {
	sampler := NewSampler(42)

	tests := []struct {
		name    string
		n, k    int
		wantLen int
	}{
		{"fewer than available", 10, 3, 3},
		{"more than available", 4, 10, 4},
		{"empty population", 0, 3, 0},
		{"zero requested", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			indices := sampler.Indices(tt.n, tt.k)
			assert.Len(t, indices, tt.wantLen)

			seen := make(map[int]bool)
			for _, idx := range indices {
				assert.True(t, idx >= 0 && idx < tt.n, "index %d out of range", idx)
				assert.False(t, seen[idx], "index %d repeated", idx)
				seen[idx] = true
			}
		})
	}
}

func TestSampler_Deterministic(t *testing.T) {
	a := NewSampler(7)
	b := NewSampler(7)

	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Indices(20, 5), b.Indices(20, 5))
		assert.Equal(t, a.Choice([]string{"x", "y", "z"}), b.Choice([]string{"x", "y", "z"}))
	}
}

func TestSampler_Choice(t *testing.T) {
	sampler := NewSampler(1)

	assert.Equal(t, "", sampler.Choice(nil))
	assert.Equal(t, "only", sampler.Choice([]string{"only"}))
	assert.Contains(t, []string{"a", "b"}, sampler.Choice([]string{"a", "b"}))
}
