// Package relevance scores a text blob against a keyword set.
package relevance

import "strings"

// Whole-word matches outweigh bare substring occurrences 3:1.
const (
	wholeWordWeight = 3
	substringWeight = 1
)

// TitleWeight is how much heavier callers count a title score than a body
// score when combining the two.
const TitleWeight = 2

// Score sums keyword occurrences in a text: each whole-word match counts
// three, each additional substring occurrence counts one. Matching is
// case-insensitive; the result is always non-negative.
func Score(text string, keywords []string) int {
	if text == "" || len(keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	score := 0
	for _, kw := range keywords {
		k := strings.ToLower(kw)
		if k == "" {
			continue
		}
		total := strings.Count(lower, k)
		if total == 0 {
			continue
		}
		whole := countWholeWords(lower, k)
		score += whole*wholeWordWeight + (total-whole)*substringWeight
	}
	return score
}

// Combine merges a separately computed title score into the body score,
// weighting title hits by TitleWeight.
func Combine(bodyScore, titleScore int) int {
	return bodyScore + titleScore*TitleWeight
}

// countWholeWords counts occurrences of k in text that are bounded by
// word boundaries on both sides.
func countWholeWords(text, k string) int {
	count := 0
	for i := 0; ; {
		j := strings.Index(text[i:], k)
		if j < 0 {
			break
		}
		start := i + j
		end := start + len(k)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			count++
		}
		i = start + 1
	}
	return count
}

func boundaryBefore(text string, i int) bool {
	return i == 0 || !isWordByte(text[i-1])
}

func boundaryAfter(text string, i int) bool {
	return i >= len(text) || !isWordByte(text[i])
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
