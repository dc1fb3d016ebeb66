package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio_ReferenceVectors(t *testing.T) {
	testCases := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "stop", "stop", 1.0},
		{"disjoint", "xyz", "abc", 0.0},
		{"classic overlap", "abcd", "bcde", 0.75},
		{"prefix", "learn new", "learn new command", 18.0 / 26.0},
		{"transposed words", "stop nova", "nova stop", 8.0 / 18.0},
		{"both empty", "", "", 1.0},
		{"one empty", "", "stop", 0.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Ratio(tc.a, tc.b), 1e-9)
		})
	}
}

func TestRatio_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"open notepad", "open note"},
		{"goodbye", "good buy"},
		{"learn new", "learn new command"},
	}
	for _, p := range pairs {
		assert.InDelta(t, Ratio(p[0], p[1]), Ratio(p[1], p[0]), 1e-9, "%q vs %q", p[0], p[1])
	}
}

func TestSimilar(t *testing.T) {
	testCases := []struct {
		name      string
		a         string
		b         string
		threshold float64
		want      bool
	}{
		{"contained phrase", "learn new", "learn new command", DefaultThreshold, true},
		{"containing phrase", "open notepad please", "open notepad", DefaultThreshold, true},
		{"disjoint", "xyz", "abc", DefaultThreshold, false},
		{"transposed words below bar", "stop nova", "nova stop", ExitThreshold, false},
		{"empty against phrase", "", "stop", DefaultThreshold, false},
		{"both empty", "", "", DefaultThreshold, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Similar(tc.a, tc.b, tc.threshold))
		})
	}
}
