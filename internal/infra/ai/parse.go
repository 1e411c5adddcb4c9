package ai

import (
	"encoding/json"
	"strings"
)

const nextActionMarker = "Next action:"

const (
	parseStructured = "structured"
	parseHeuristic  = "heuristic"
)

// parseContent turns model output into a Result. Stage one is a strict JSON
// parse; stage two splits free text on the "Next action:" marker. Defaults
// fill whatever is missing, so a Result always comes back.
func parseContent(content string) (Result, string) {
	var parsed Result
	if err := json.Unmarshal([]byte(content), &parsed); err == nil {
		if parsed.Summary == "" {
			parsed.Summary = "No summary generated"
		}
		if parsed.NextAction == "" {
			parsed.NextAction = "No action suggested"
		}
		return parsed, parseStructured
	}

	summary, action, _ := strings.Cut(content, nextActionMarker)

	summary = strings.TrimSpace(summary)
	if summary == "" {
		summary = "Summary generated"
	}

	action = strings.TrimSpace(action)
	if action == "" {
		action = "Contact the lead"
	}

	return Result{Summary: summary, NextAction: action}, parseHeuristic
}
