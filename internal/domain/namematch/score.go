package namematch

import (
	"math"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

const (
	unbaseScale  = 0.95
	partialScale = 0.90
	// partial matches between very different lengths are heavily discounted
	farPartialScale = 0.60
)

// Ratio is the normalized indel similarity of a and b in [0, 100]:
// twice the longest common subsequence over the combined rune length.
func Ratio(a, b string) float64 {
	total := len([]rune(a)) + len([]rune(b))
	if total == 0 {
		return 100
	}
	return 200 * float64(edlib.LCS(a, b)) / float64(total)
}

// PartialRatio is the best Ratio of the shorter string against every
// same-length window of the longer one, including windows clipped at either edge.
func PartialRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		if len(ra) == len(rb) {
			return 100
		}
		return 0
	}
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	best := partialWindows(ra, rb)
	if len(ra) == len(rb) && best < 100 {
		best = math.Max(best, partialWindows(rb, ra))
	}
	return best
}

func partialWindows(short, long []rune) float64 {
	needle := string(short)
	best := 0.0
	consider := func(window []rune) bool {
		if score := Ratio(needle, string(window)); score > best {
			best = score
		}
		return best == 100
	}

	m, n := len(short), len(long)
	for i := 1; i < m; i++ {
		if consider(long[:i]) {
			return best
		}
	}
	for i := 0; i+m <= n; i++ {
		if consider(long[i : i+m]) {
			return best
		}
	}
	for i := n - m + 1; i < n; i++ {
		if consider(long[i:]) {
			return best
		}
	}
	return best
}

// TokenSortRatio compares the whitespace tokens of a and b in sorted order.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortedJoin(tokens(a)), sortedJoin(tokens(b)))
}

// TokenSetRatio compares the shared tokens against each side's shared plus
// unique tokens and keeps the best of the three pairings.
func TokenSetRatio(a, b string) float64 {
	inter, onlyA, onlyB := splitTokens(a, b)
	if len(inter) == 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 0
	}
	base := strings.Join(inter, " ")
	left := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	right := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))
	return math.Max(Ratio(base, left), math.Max(Ratio(base, right), Ratio(left, right)))
}

// partialTokenRatio is 100 as soon as the token sets overlap and falls back
// to PartialRatio over the sorted unique tokens otherwise.
func partialTokenRatio(a, b string) float64 {
	inter, onlyA, onlyB := splitTokens(a, b)
	if len(inter) > 0 {
		return 100
	}
	return PartialRatio(strings.Join(onlyA, " "), strings.Join(onlyB, " "))
}

// WRatio blends Ratio with token and partial scorers depending on how
// different the two lengths are, and rounds the result to an integer score.
func WRatio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	la, lb := float64(len([]rune(a))), float64(len([]rune(b)))
	lengthRatio := math.Max(la, lb) / math.Min(la, lb)

	best := Ratio(a, b)
	if lengthRatio < 1.5 {
		best = math.Max(best, TokenSortRatio(a, b)*unbaseScale)
		best = math.Max(best, TokenSetRatio(a, b)*unbaseScale)
		return int(math.RoundToEven(best))
	}

	scale := partialScale
	if lengthRatio >= 8 {
		scale = farPartialScale
	}
	best = math.Max(best, PartialRatio(a, b)*scale)
	best = math.Max(best, partialTokenRatio(a, b)*unbaseScale*scale)
	return int(math.RoundToEven(best))
}

func sortedJoin(ts []string) string {
	sorted := append([]string(nil), ts...)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}

// splitTokens returns the sorted unique tokens shared by a and b and those
// unique to each side.
func splitTokens(a, b string) (inter, onlyA, onlyB []string) {
	setA := unique(tokens(a))
	setB := unique(tokens(b))
	for t := range setA {
		if _, ok := setB[t]; ok {
			inter = append(inter, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range setB {
		if _, ok := setA[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(inter)
	sort.Strings(onlyA)
	sort.Strings(onlyB)
	return inter, onlyA, onlyB
}

func unique(ts []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ts))
	for _, t := range ts {
		out[t] = struct{}{}
	}
	return out
}
