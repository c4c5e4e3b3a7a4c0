package assistant

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tabulahq/tabula/internal/domain"
	"github.com/tabulahq/tabula/internal/usecase/dispatch"
)

// modelReply is the JSON object the model is instructed to answer with.
type modelReply struct {
	Response   string         `json:"response"`
	Action     string         `json:"action"`
	Parameters map[string]any `json:"parameters"`
}

// parseReply extracts the structured reply from raw model output. Models
// routinely wrap the object in a markdown code fence or surround it with
// prose, so the fence is stripped first and, failing a clean unmarshal,
// the outermost brace-delimited span is tried.
func parseReply(raw string) (modelReply, error) {
	cleaned := stripFence(raw)

	var mr modelReply
	if err := json.Unmarshal([]byte(cleaned), &mr); err == nil && replyUsable(mr) {
		return mr, nil
	}

	if start := strings.Index(cleaned, "{"); start >= 0 {
		if end := strings.LastIndex(cleaned, "}"); end > start {
			if err := json.Unmarshal([]byte(cleaned[start:end+1]), &mr); err == nil && replyUsable(mr) {
				return mr, nil
			}
		}
	}

	return modelReply{}, fmt.Errorf("%w: no command object in model reply", domain.ErrParse)
}

func replyUsable(mr modelReply) bool {
	return mr.Response != "" || mr.Action != ""
}

// stripFence removes a surrounding markdown code fence with an optional
// language tag.
func stripFence(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	if idx := strings.Index(cleaned, "\n"); idx >= 0 {
		cleaned = cleaned[idx+1:]
	}
	if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	return strings.TrimSpace(cleaned)
}

var (
	quotedTaskIntent = regexp.MustCompile(`(?i)\b(?:create|add|new|make)\s+(?:a\s+)?task:?\s*"([^"]+)"`)
	plainTaskIntent  = regexp.MustCompile(`(?i)\b(?:create|add|new|make)\s+(?:a\s+)?task:\s*(\S.*)$`)
)

// fallbackCommand recovers a minimal create_task intent from the raw user
// message when the model reply carried no parseable JSON.
func fallbackCommand(message string) (dispatch.Action, dispatch.Params, bool) {
	if m := quotedTaskIntent.FindStringSubmatch(message); m != nil {
		return dispatch.ActionCreateTask, dispatch.Params{"title": m[1]}, true
	}
	if m := plainTaskIntent.FindStringSubmatch(strings.TrimSpace(message)); m != nil {
		return dispatch.ActionCreateTask, dispatch.Params{"title": strings.TrimSpace(m[1])}, true
	}
	return "", nil, false
}
