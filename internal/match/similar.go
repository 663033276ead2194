// Package match ranks pictogram candidates by lexical similarity to a query
// word. The scorer rewards near-identity, substring containment, and
// common-prefix agreement on top of a sequence-alignment base ratio.
package match

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/openaac/pictoapi/internal/domain"
)

// DefaultThreshold is the minimum score a candidate must reach to be
// returned by FindSimilar.
const DefaultThreshold = 0.6

const (
	containmentBonus = 0.2
	prefixBonusScale = 0.1
)

// Match pairs a candidate with its similarity score in [0, 1].
type Match struct {
	Candidate domain.Candidate
	Score     float64
}

// Ratio computes the sequence-alignment similarity of two strings:
// 2*M/T where M is the total size of matched blocks and T the combined
// length, operating on runes. Symmetric, in [0, 1].
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// FindSimilar scores every corpus candidate against the query and returns
// those at or above threshold, sorted by descending score. Ties keep their
// relative corpus order (stable sort, no secondary key).
//
// A case-insensitive exact match scores 1.0 and skips the composite scorer.
// Candidates with an empty name are skipped. An empty corpus yields an
// empty (non-nil) result.
func FindSimilar(query string, corpus []domain.Candidate, threshold float64) []Match {
	if query == "" {
		return []Match{}
	}
	queryLower := strings.ToLower(query)

	results := make([]Match, 0, len(corpus))
	for _, cand := range corpus {
		if cand.Name == "" {
			continue
		}
		nameLower := strings.ToLower(cand.Name)

		if queryLower == nameLower {
			results = append(results, Match{Candidate: cand, Score: 1.0})
			continue
		}

		score := Ratio(queryLower, nameLower)
		if strings.Contains(nameLower, queryLower) {
			score += containmentBonus
		}
		score += prefixBonusScale * (float64(commonPrefixLen(query, cand.Name)) / float64(len([]rune(query))))
		if score > 1.0 {
			score = 1.0
		}

		if score >= threshold {
			results = append(results, Match{Candidate: cand, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Options returns the candidate names from FindSimilar, deduplicated
// preserving first occurrence.
func Options(query string, corpus []domain.Candidate, threshold float64) []string {
	matches := FindSimilar(query, corpus, threshold)

	seen := make(map[string]struct{}, len(matches))
	options := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m.Candidate.Name]; ok {
			continue
		}
		seen[m.Candidate.Name] = struct{}{}
		options = append(options, m.Candidate.Name)
	}
	return options
}

// commonPrefixLen counts leading positions where the two words agree,
// case-insensitively, up to the shorter length.
func commonPrefixLen(a, b string) int {
	ar := []rune(strings.ToLower(a))
	br := []rune(strings.ToLower(b))
	n := len(ar)
	if len(br) < n {
		n = len(br)
	}
	count := 0
	for i := 0; i < n; i++ {
		if ar[i] != br[i] {
			break
		}
		count++
	}
	return count
}
