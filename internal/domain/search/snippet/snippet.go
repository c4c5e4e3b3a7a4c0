// Package snippet renders the keyword-densest window of a text as a
// bounded preview.
package snippet

import "strings"

// DefaultMaxLength is the preview length used when callers pass no limit.
const DefaultMaxLength = 200

// windowStep is how far the scoring window advances per probe.
const windowStep = 50

const ellipsis = "..."

// Extract slides a window of maxLength across the text in fixed steps,
// scores each window by raw keyword occurrence count, and renders the
// best one (first window wins ties). The window edges are aligned to
// spaces where possible and an ellipsis marks each truncated end. The
// returned preview never exceeds maxLength plus the two ellipses.
func Extract(text string, keywords []string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	text = strings.TrimSpace(text)
	if len(text) <= maxLength {
		return text
	}

	lower := strings.ToLower(text)
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}

	bestStart, bestScore := 0, -1
	for start := 0; start < len(lower); start += windowStep {
		end := start + maxLength
		if end > len(lower) {
			end = len(lower)
		}
		window := lower[start:end]
		score := 0
		for _, kw := range lowered {
			if kw != "" {
				score += strings.Count(window, kw)
			}
		}
		if score > bestScore {
			bestScore, bestStart = score, start
		}
		if end == len(lower) {
			break
		}
	}

	start := bestStart
	end := start + maxLength
	if end > len(text) {
		end = len(text)
	}

	// Align truncated edges to spaces so the preview starts and ends on
	// whole words.
	if start > 0 {
		if idx := strings.IndexByte(text[start:end], ' '); idx >= 0 {
			start += idx + 1
		}
	}
	if end < len(text) {
		if idx := strings.LastIndexByte(text[start:end], ' '); idx >= 0 {
			end = start + idx
		}
	}

	out := strings.TrimSpace(text[start:end])
	if start > 0 {
		out = ellipsis + out
	}
	if end < len(text) {
		out += ellipsis
	}
	return out
}
