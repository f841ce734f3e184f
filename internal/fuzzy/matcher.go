// Package fuzzy ranks chore names against loosely typed input, so commands
// can take "bins" where they mean "Take out the bins".
package fuzzy

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultThreshold is the lowest score a command accepts as a match.
const DefaultThreshold = 40

type MatchResult struct {
	Text  string
	Score int
	Index int
}

// Match scores pattern against text from 0 (no match) to 100 (same text,
// ignoring case and surrounding space).
func Match(pattern, text string) int {
	p := []rune(strings.ToLower(strings.TrimSpace(pattern)))
	t := []rune(strings.ToLower(strings.TrimSpace(text)))
	if len(p) == 0 || len(t) == 0 || len(p) > len(t) {
		return 0
	}

	if string(p) == string(t) {
		return 100
	}

	// substring: prefix and word starts beat matches inside a word
	if idx := strings.Index(string(t), string(p)); idx >= 0 {
		pos := len([]rune(string(t)[:idx]))
		score := 70
		switch {
		case pos == 0:
			score = 90
		case isWordStart(t, pos):
			score = 80
		}
		return clamp(score + coverageBonus(len(p), len(t)))
	}

	positions := subsequence(p, t)
	if positions == nil {
		return 0
	}

	score := 30
	for i, pos := range positions {
		if isWordStart(t, pos) {
			score += 4
		}
		if i > 0 && pos == positions[i-1]+1 {
			score += 2
		}
	}
	score -= (positions[len(positions)-1] - positions[0] + 1 - len(p)) // gaps

	return clamp(score + coverageBonus(len(p), len(t)))
}

// MatchMany returns the texts scoring at least threshold, best first.
// Equal scores keep their input order.
func MatchMany(pattern string, texts []string, threshold int) []MatchResult {
	results := make([]MatchResult, 0, len(texts))

	for i, text := range texts {
		score := Match(pattern, text)
		if score > 0 && score >= threshold {
			results = append(results, MatchResult{
				Text:  text,
				Score: score,
				Index: i,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// Best picks the single best match. It reports false when nothing reaches
// threshold or when the top two candidates tie.
func Best(pattern string, texts []string, threshold int) (MatchResult, bool) {
	results := MatchMany(pattern, texts, threshold)
	if len(results) == 0 {
		return MatchResult{}, false
	}
	if len(results) > 1 && results[0].Score == results[1].Score {
		return MatchResult{}, false
	}
	return results[0], true
}

// positions of each pattern rune in text, in order, or nil
func subsequence(pattern, text []rune) []int {
	positions := make([]int, 0, len(pattern))
	pi := 0
	for ti := 0; ti < len(text) && pi < len(pattern); ti++ {
		if text[ti] == pattern[pi] {
			positions = append(positions, ti)
			pi++
		}
	}
	if pi < len(pattern) {
		return nil
	}
	return positions
}

func isWordStart(text []rune, pos int) bool {
	if pos == 0 {
		return true
	}
	prev := text[pos-1]
	return unicode.IsSpace(prev) || unicode.IsPunct(prev)
}

// up to 9 points for covering more of the text
func coverageBonus(patternLen, textLen int) int {
	return patternLen * 9 / textLen
}

func clamp(score int) int {
	if score > 99 {
		return 99
	}
	if score < 0 {
		return 0
	}
	return score
}
