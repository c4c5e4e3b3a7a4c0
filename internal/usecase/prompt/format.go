// Package prompt renders ranked search results for model consumption and
// for user-facing attribution.
package prompt

import (
	"fmt"
	"strings"

	"github.com/tabulahq/tabula/internal/domain/search/result"
)

const contextPreamble = "Relevant content from the user's workspace:"

// ForModel renders results as a context block for the model prompt. Each
// block carries the result's complete flattened content, not the preview
// snippet, so the model can quote source details verbatim. An empty result
// list renders as an empty string.
func ForModel(results []result.Result) string {
	if len(results) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(contextPreamble)
	b.WriteString("\n")
	for i := range results {
		r := &results[i]
		fmt.Fprintf(&b, "\n--- [%s] %s (%s) ---\n", r.Kind(), r.Title(), locatorCollection(r))
		content := strings.TrimSpace(r.FullContent())
		if content == "" {
			content = "(no content)"
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String()
}

// Citations renders a numbered source list for appending to informational
// replies. An empty result list renders as an empty string.
func Citations(results []result.Result) string {
	if len(results) == 0 {
		return ""
	}
	lines := make([]string, 0, len(results)+1)
	lines = append(lines, "Sources:")
	for i := range results {
		lines = append(lines, fmt.Sprintf("[%d] %s", i+1, locator(&results[i])))
	}
	return strings.Join(lines, "\n")
}

// locator is the human-readable place a result came from.
func locator(r *result.Result) string {
	switch r.Kind() {
	case result.KindTask:
		return fmt.Sprintf("Task %q in project %s", r.Title(), r.Collection())
	case result.KindPage:
		return fmt.Sprintf("Page %q in notebook %s", r.Title(), r.Collection())
	default:
		return fmt.Sprintf("Project %q", r.Title())
	}
}

func locatorCollection(r *result.Result) string {
	switch r.Kind() {
	case result.KindTask:
		return "project: " + r.Collection()
	case result.KindPage:
		return "notebook: " + r.Collection()
	default:
		return "project"
	}
}
