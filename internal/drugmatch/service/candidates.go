package service

import (
	"sort"
	"strings"
	"unicode/utf8"

	"drugmatch-service/internal/drugmatch/model"
)

// keywordHints mark lines that look like a product label (dosage form, unit).
// Matched case-sensitively against the light-normalized text.
var keywordHints = []string{"점안", "안연고", "mL", "mg", "%", "현탁", "겔"}

const (
	maxCandidates  = 80
	minCandidateRL = 2
	hintBonus      = 2
	maxLengthBonus = 3
)

// RankCandidates light-normalizes OCR lines, drops fragments shorter than two
// characters, scores the rest and sorts them by score. Equal scores keep input
// order. Duplicates are not removed here.
func RankCandidates(lines []string) []model.Candidate {
	cands := make([]model.Candidate, 0, len(lines))
	for i, line := range lines {
		t := NormalizeText(line)
		n := utf8.RuneCountInString(t)
		if n < minCandidateRL {
			continue
		}
		cands = append(cands, model.Candidate{Text: t, Score: candidateScore(t, n), Order: i})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].Order < cands[j].Order
	})
	return cands
}

// ExtractCandidates returns at most 80 distinct candidate texts, best first.
func ExtractCandidates(lines []string) []string {
	ranked := RankCandidates(lines)
	seen := make(map[string]struct{}, len(ranked))
	out := make([]string, 0, min(len(ranked), maxCandidates))
	for _, c := range ranked {
		if _, ok := seen[c.Text]; ok {
			continue
		}
		seen[c.Text] = struct{}{}
		out = append(out, c.Text)
		if len(out) == maxCandidates {
			break
		}
	}
	return out
}

func candidateScore(text string, runes int) int {
	score := 0
	for _, h := range keywordHints {
		if strings.Contains(text, h) {
			score += hintBonus
			break
		}
	}
	return score + min(runes/8, maxLengthBonus)
}
