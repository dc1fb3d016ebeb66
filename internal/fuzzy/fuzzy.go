// Package fuzzy scores similarity between short phrases.
//
// The score is a normalized sequence-alignment ratio in [0,1]: twice the
// total length of the matching blocks divided by the combined length of
// both strings. The block-finding algorithm mirrors the reference
// implementation exactly so stored thresholds keep their meaning.
package fuzzy

import "strings"

// Matching thresholds. Exit commands use a stricter bar so a mumbled
// utterance can't shut the assistant down by accident.
const (
	DefaultThreshold = 0.75
	ExitThreshold    = 0.8
)

// Similar reports whether two phrases denote the same command at the
// given threshold.
//
// A non-empty phrase contained in the other always matches; otherwise
// the alignment ratio must clear the threshold.
func Similar(a, b string, threshold float64) bool {
	if a != "" && b != "" {
		if strings.Contains(a, b) || strings.Contains(b, a) {
			return true
		}
	}
	return Ratio(a, b) >= threshold
}

// Ratio computes the alignment ratio between a and b.
//
// Two identical strings score 1.0, two strings with nothing in common
// score 0.0. Two empty strings score 1.0.
func Ratio(a, b string) float64 {
	ar := []rune(a)
	br := []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 1.0
	}

	m := newMatcher(ar, br)
	matched := 0
	for _, bl := range m.matchingBlocks() {
		matched += bl.size
	}
	return 2.0 * float64(matched) / float64(total)
}

// block is a maximal run a[a:a+size] == b[b:b+size].
type block struct {
	a    int
	b    int
	size int
}

type matcher struct {
	a       []rune
	b       []rune
	b2j     map[rune][]int
	popular map[rune]bool
}

func newMatcher(a, b []rune) *matcher {
	m := &matcher{
		a:       a,
		b:       b,
		b2j:     make(map[rune][]int),
		popular: make(map[rune]bool),
	}
	for j, r := range b {
		m.b2j[r] = append(m.b2j[r], j)
	}

	// For long sequences, runes occurring in more than 1% of b are too
	// common to anchor a match on. They are dropped from the index but
	// can still extend a match found either side of them.
	if n := len(b); n >= 200 {
		thresh := n/100 + 1
		for r, indices := range m.b2j {
			if len(indices) > thresh {
				m.popular[r] = true
				delete(m.b2j, r)
			}
		}
	}
	return m
}

// findLongestMatch returns the longest matching block within
// a[alo:ahi] and b[blo:bhi]. Ties resolve to the block starting
// earliest in a, then earliest in b.
func (m *matcher) findLongestMatch(alo, ahi, blo, bhi int) block {
	besti, bestj, bestsize := alo, blo, 0
	j2len := make(map[int]int)

	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	// Extend over equal runes on either side. This picks up popular
	// runes that were dropped from the index above.
	for besti > alo && bestj > blo && m.a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestsize = besti-1, bestj-1, bestsize+1
	}
	for besti+bestsize < ahi && bestj+bestsize < bhi &&
		m.a[besti+bestsize] == m.b[bestj+bestsize] {
		bestsize++
	}

	return block{besti, bestj, bestsize}
}

// matchingBlocks finds all maximal non-overlapping, order-preserving
// matching blocks by recursing left and right of each longest match.
// Block order is unspecified; Ratio only sums the sizes.
func (m *matcher) matchingBlocks() []block {
	type span struct {
		alo, ahi, blo, bhi int
	}
	queue := []span{{0, len(m.a), 0, len(m.b)}}
	var matched []block

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		bl := m.findLongestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if bl.size == 0 {
			continue
		}
		matched = append(matched, bl)
		if s.alo < bl.a && s.blo < bl.b {
			queue = append(queue, span{s.alo, bl.a, s.blo, bl.b})
		}
		if bl.a+bl.size < s.ahi && bl.b+bl.size < s.bhi {
			queue = append(queue, span{bl.a + bl.size, s.ahi, bl.b + bl.size, s.bhi})
		}
	}
	return matched
}
