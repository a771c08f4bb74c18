// Package rank merges, deduplicates and orders completion candidates from
// multiple generators.
package rank

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/robottwo/tabby/pkg/candidate"
	"github.com/sahilm/fuzzy"
)

// Dedup merges candidates by base name (final path segment). An
// executable wins over a same-named plain file; otherwise the first-seen
// candidate wins. Ordering is stable.
func Dedup(candidates []candidate.Candidate) []candidate.Candidate {
	out := make([]candidate.Candidate, 0, len(candidates))
	index := make(map[string]int)

	for _, c := range candidates {
		key := baseName(c.Text)
		at, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, c)
			continue
		}
		if c.Category == candidate.CategoryExecutable && out[at].Category == candidate.CategoryFile {
			out[at] = c
		}
	}
	return out
}

func baseName(text string) string {
	return filepath.Base(strings.TrimSuffix(text, "/"))
}

// matchClass orders exact matches before prefix matches before fuzzy
// subsequence matches.
type matchClass int

const (
	classExact matchClass = iota
	classPrefix
	classFuzzy
	classNone
)

type scored struct {
	cand  candidate.Candidate
	class matchClass
	score int
	order int
}

// Smart sorts candidates for query: exact over prefix over fuzzy, fuzzy
// matches by subsequence score, ties broken by priority then original
// order. Candidates that do not match at all keep their relative order at
// the end; the generators have already prefix-filtered, so this is the
// ranking layer, not a filter.
func Smart(candidates []candidate.Candidate, query string) []candidate.Candidate {
	if query == "" || len(candidates) < 2 {
		return candidates
	}

	items := make([]scored, len(candidates))
	for i, c := range candidates {
		items[i] = scored{cand: c, class: classify(c.Text, query), order: i}
	}

	// Score only the fuzzy class; sahilm/fuzzy returns higher-is-better.
	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Text
	}
	for _, m := range fuzzy.Find(query, texts) {
		if items[m.Index].class == classFuzzy {
			items[m.Index].score = m.Score
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.class != b.class {
			return a.class < b.class
		}
		if a.class == classFuzzy && a.score != b.score {
			return a.score > b.score
		}
		if a.cand.Priority != b.cand.Priority {
			return a.cand.Priority < b.cand.Priority
		}
		return a.order < b.order
	})

	out := make([]candidate.Candidate, len(items))
	for i, it := range items {
		out[i] = it.cand
	}
	return out
}

func classify(text, query string) matchClass {
	switch {
	case text == query:
		return classExact
	case strings.HasPrefix(text, query):
		return classPrefix
	case isSubsequence(query, text):
		return classFuzzy
	default:
		return classNone
	}
}

func isSubsequence(needle, haystack string) bool {
	if needle == "" {
		return true
	}
	i := 0
	for _, r := range haystack {
		if rune(needle[i]) == r {
			i++
			if i == len(needle) {
				return true
			}
		}
	}
	return false
}

// SortStable orders candidates by priority then text, used when no query
// is available to rank against.
func SortStable(candidates []candidate.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority < candidates[j].Priority
		}
		return candidates[i].Text < candidates[j].Text
	})
}
