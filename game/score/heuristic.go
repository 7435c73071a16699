// Package score turns a guess into the game's 0-1000 score scale.
package score

import "strings"

const (
	// Perfect is reserved for a guess equal to the target after normalization.
	Perfect = 1000
	// Max is the best score any other guess can reach.
	Max = 999
)

// Heuristic scores guess against target using string features only.
// It is the fallback used when no semantic signal is available, so it is
// deliberately simple. Both strings are expected to be normalized.
//
//	length closeness     max(0, 200 - 20*|len(guess)-len(target)|)
//	shared letters       min(300, 30 * guess letters found in target)
//	aligned letters      min(250, 50 * index-aligned matches)
//	same first letter    100
//	same last letter     50
//	3-letter prefix      100 when either contains the other's prefix
//
// Repeated guess letters are each counted by the shared letters feature.
func Heuristic(guess, target string) int {
	g, t := []rune(guess), []rune(target)
	var total int

	total += max(0, 200-20*abs(len(g)-len(t)))

	inTarget := make(map[rune]struct{}, len(t))
	for _, r := range t {
		inTarget[r] = struct{}{}
	}
	var shared int
	for _, r := range g {
		if _, ok := inTarget[r]; ok {
			shared++
		}
	}
	total += min(300, 30*shared)

	var aligned int
	for i := 0; i < min(len(g), len(t)); i++ {
		if g[i] == t[i] {
			aligned++
		}
	}
	total += min(250, 50*aligned)

	if len(g) > 0 && len(t) > 0 {
		if g[0] == t[0] {
			total += 100
		}
		if g[len(g)-1] == t[len(t)-1] {
			total += 50
		}
	}

	if strings.Contains(guess, prefix(t, 3)) || strings.Contains(target, prefix(g, 3)) {
		total += 100
	}

	return clamp(total, 0, Max)
}

// prefix returns the first n runes of r as a string.
func prefix(r []rune, n int) string {
	if len(r) < n {
		return string(r)
	}
	return string(r[:n])
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
