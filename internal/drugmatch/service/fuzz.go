package service

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// Indel distance: a substitution costs as much as a delete plus an insert.
var indelParams = levenshtein.NewParams().SubCost(2)

const (
	unbaseScale       = 0.95
	partialScale      = 0.90
	longPartialScale  = 0.60
	partialLenRatio   = 1.5
	longPartialLenCap = 8.0
)

// Score is the weighted-ratio similarity of two strings as an integer 0..100.
func Score(a, b string) int {
	return int(math.Round(weightedRatio(a, b)))
}

// weightedRatio picks the best of the plain, partial and token ratios,
// discounting the partial and token variants so an exact match always wins.
// The partial variants only count when one string is clearly longer.
func weightedRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	lenRatio := float64(max(la, lb)) / float64(min(la, lb))

	best := ratio(a, b)
	if lenRatio < partialLenRatio {
		tok := max(tokenSortRatio(a, b), tokenSetRatio(a, b))
		return max(best, tok*unbaseScale)
	}

	scale := partialScale
	if lenRatio >= longPartialLenCap {
		scale = longPartialScale
	}
	best = max(best, partialRatio(a, b)*scale)
	return max(best, partialTokenRatio(a, b)*unbaseScale*scale)
}

// ratio is the normalized Indel similarity.
func ratio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 || a == b {
		return 100
	}
	d := levenshtein.Distance(a, b, indelParams)
	return 100 * (1 - float64(d)/float64(total))
}

// partialRatio aligns the shorter string against every window of the longer
// one, including windows clipped at either end, and keeps the best ratio.
func partialRatio(a, b string) float64 {
	if utf8.RuneCountInString(a) > utf8.RuneCountInString(b) {
		a, b = b, a
	}
	if a == "" {
		return 0
	}
	if strings.Contains(b, a) {
		return 100
	}

	short, long := []rune(a), []rune(b)
	ls, ll := len(short), len(long)
	chars := make(map[rune]struct{}, ls)
	for _, r := range short {
		chars[r] = struct{}{}
	}
	has := func(r rune) bool { _, ok := chars[r]; return ok }

	best := 0.0
	try := func(w []rune) bool {
		if v := ratio(a, string(w)); v > best {
			best = v
		}
		return best == 100
	}

	for i := 1; i < ls; i++ {
		if has(long[i-1]) && try(long[:i]) {
			return best
		}
	}
	for i := 0; i+ls <= ll; i++ {
		if (has(long[i]) || has(long[i+ls-1])) && try(long[i:i+ls]) {
			return best
		}
	}
	for i := ll - ls + 1; i < ll; i++ {
		if i > 0 && has(long[i]) && try(long[i:]) {
			return best
		}
	}
	return best
}

func tokenSortRatio(a, b string) float64 {
	return ratio(tokenSort(a), tokenSort(b))
}

// tokenSetRatio compares the shared tokens against each side's full token
// set, so a string whose words are a subset of the other's scores 100.
func tokenSetRatio(a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	var sect, onlyA, onlyB []string
	for t := range ta {
		if _, ok := tb[t]; ok {
			sect = append(sect, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range tb {
		if _, ok := ta[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}

	s := joinSorted(sect)
	combA := strings.TrimSpace(s + " " + joinSorted(onlyA))
	combB := strings.TrimSpace(s + " " + joinSorted(onlyB))

	best := ratio(combA, combB)
	if s != "" {
		best = max(best, ratio(s, combA), ratio(s, combB))
	}
	return best
}

// partialTokenRatio is partialRatio over sorted token sets; any shared token
// is treated as a full match.
func partialTokenRatio(a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	for t := range ta {
		if _, ok := tb[t]; ok {
			return 100
		}
	}
	return partialRatio(joinSet(ta), joinSet(tb))
}

// tokenSort sorts whitespace separated tokens, so word order stops mattering.
func tokenSort(s string) string {
	f := strings.Fields(s)
	sort.Strings(f)
	return strings.Join(f, " ")
}

func tokenSet(s string) map[string]struct{} {
	f := strings.Fields(s)
	m := make(map[string]struct{}, len(f))
	for _, t := range f {
		m[t] = struct{}{}
	}
	return m
}

func joinSet(m map[string]struct{}) string {
	out := make([]string, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	return joinSorted(out)
}

func joinSorted(tokens []string) string {
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
