package service

import (
	"maps"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"drugmatch-service/internal/drugmatch/model"
)

const (
	overallCandidates = 20 // joined into the cross-line pseudo-query
	focusedCandidates = 40 // matched one by one
	focusedLimit      = 5
)

// Match scores query against every catalog name and returns up to topK
// results with score >= minScore, best first, ties by catalog order.
// A query that normalizes to nothing yields an empty slice.
func Match(query string, cat *Catalog, topK, minScore int) []model.MatchResult {
	q := NormalizeName(query)
	if q == "" || topK <= 0 || cat == nil || cat.Len() == 0 {
		return []model.MatchResult{}
	}

	type hit struct{ idx, score int }
	hits := make([]hit, len(cat.Normalized))
	for i, name := range cat.Normalized {
		hits[i] = hit{idx: i, score: Score(q, name)}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > topK {
		hits = hits[:topK]
	}

	out := make([]model.MatchResult, 0, len(hits))
	for _, h := range hits {
		if h.score < minScore {
			continue
		}
		out = append(out, cat.result(h.idx, h.score))
	}
	return out
}

// Aggregate matches a whole document: one pass over the first 20 candidates
// joined with spaces (finds names split across lines) plus one pass per each
// of the first 40 candidates, merged by best score per catalog row.
func Aggregate(candidates []string, cat *Catalog, topK int) []model.MatchResult {
	return aggregate(candidates, cat, topK, 1)
}

func aggregate(candidates []string, cat *Catalog, topK, workers int) []model.MatchResult {
	if topK <= 0 || len(candidates) == 0 {
		return []model.MatchResult{}
	}
	focused := candidates[:min(len(candidates), focusedCandidates)]

	passes := make([][]model.MatchResult, 1+len(focused))
	passes[0] = Match(strings.Join(candidates[:min(len(candidates), overallCandidates)], " "), cat, topK, 0)

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i, c := range focused {
		i, c := i, c
		g.Go(func() error {
			passes[i+1] = Match(c, cat, focusedLimit, 0)
			return nil
		})
	}
	_ = g.Wait()

	merged := mergeResults(passes...)
	if len(merged) > topK {
		merged = merged[:topK]
	}
	return merged
}

type mergeKey struct {
	name string
	row  int
}

// mergeResults keeps the highest score seen for each (name, row) and sorts by
// score, then row index. Rows that share a display name stay distinct.
func mergeResults(passes ...[]model.MatchResult) []model.MatchResult {
	best := make(map[mergeKey]int)
	var out []model.MatchResult
	for _, pass := range passes {
		for _, r := range pass {
			k := mergeKey{name: r.MatchedName, row: r.RowIndex}
			if i, ok := best[k]; ok {
				if r.Score > out[i].Score {
					out[i] = r
				}
				continue
			}
			best[k] = len(out)
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].RowIndex < out[j].RowIndex
	})
	if out == nil {
		out = []model.MatchResult{}
	}
	return out
}

func (c *Catalog) result(idx, score int) model.MatchResult {
	e := c.Entries[idx]
	return model.MatchResult{
		Score:       score,
		MatchedName: e.Name,
		RowIndex:    e.Index,
		Company:     e.Company,
		Row:         maps.Clone(e.Row),
	}
}

// Matcher serves the caller-facing operations over one shared catalog.
type Matcher struct {
	cat     *Catalog
	workers int
	log     zerolog.Logger
}

func NewMatcher(cat *Catalog, workers int, logger zerolog.Logger) *Matcher {
	return &Matcher{cat: cat, workers: max(workers, 1), log: logger}
}

func (m *Matcher) Catalog() *Catalog { return m.cat }

// MatchSingleQuery matches one text, typically a line or a typed name.
func (m *Matcher) MatchSingleQuery(text string, topK, minScore int) []model.MatchResult {
	start := time.Now()
	res := Match(text, m.cat, topK, minScore)
	m.log.Debug().
		Int("query_len", len(text)).
		Int("hits", len(res)).
		Dur("elapsed", time.Since(start)).
		Msg("match query")
	return res
}

// MatchManyLines matches each non-blank line on its own, keyed by the trimmed
// line. Lines are kept even when nothing reaches minScore.
func (m *Matcher) MatchManyLines(lines []string, topK, minScore int) map[string][]model.MatchResult {
	start := time.Now()
	out := make(map[string][]model.MatchResult, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out[line] = Match(line, m.cat, topK, minScore)
	}
	m.log.Debug().
		Int("lines", len(lines)).
		Int("keys", len(out)).
		Dur("elapsed", time.Since(start)).
		Msg("match lines")
	return out
}

// MatchDocument runs the aggregator over already extracted candidates.
func (m *Matcher) MatchDocument(candidates []string, topK int) []model.MatchResult {
	start := time.Now()
	res := aggregate(candidates, m.cat, topK, m.workers)
	m.log.Debug().
		Int("candidates", len(candidates)).
		Int("hits", len(res)).
		Dur("elapsed", time.Since(start)).
		Msg("match document")
	return res
}
