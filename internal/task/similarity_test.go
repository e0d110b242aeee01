package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity_Identical(t *testing.T) {
	for _, s := range []string{"", "a", "payment", "user auth flow"} {
		assert.Equal(t, 1.0, Similarity(s, s), "similarity(%q, %q)", s, s)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"flaw", "lawn"},
		{"", "abc"},
		{"color", "colour"},
	}
	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), "similarity(%q, %q)", p[0], p[1])
	}
}

func TestSimilarity_KnownDistances(t *testing.T) {
	// kitten -> sitting: distance 3, max len 7.
	assert.InDelta(t, 1-3.0/7.0, Similarity("kitten", "sitting"), 1e-9)
	// color -> colour: distance 1, max len 6.
	assert.InDelta(t, 1-1.0/6.0, Similarity("color", "colour"), 1e-9)
	// Completely disjoint strings of equal length score 0.
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
}

func TestSimilarity_EmptyVsNonEmpty(t *testing.T) {
	// Distance equals the longer length, so the score is 0.
	assert.Equal(t, 0.0, Similarity("", "abcd"))
}

func TestSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"a", "b"},
		{"short", "a much longer string entirely"},
		{"same", "same"},
	}
	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}
