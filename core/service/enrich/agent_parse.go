package enrich

import (
	"strings"

	"github.com/goccy/go-json"

	"agent_server/core/domain"
)

// actionItemsPayload is the expected JSON shape of the extract_actions
// model output.
type actionItemsPayload struct {
	ActionSummary string `json:"action_summary"`
	Tasks         []struct {
		Task     string `json:"task"`
		Deadline string `json:"deadline"`
		Priority string `json:"priority"`
	} `json:"tasks"`
}

// stripFences removes markdown code fences the model sometimes wraps
// around JSON output.
func stripFences(resp string) string {
	resp = strings.TrimSpace(resp)
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")
	return strings.TrimSpace(resp)
}

// parseActionItems parses model output into action items. A response
// that cannot be parsed yields an empty list plus a parse-failure flag,
// never an error: malformed model output must not fail the pipeline.
func parseActionItems(resp string) (items []domain.ActionItem, parseFailed bool) {
	var payload actionItemsPayload
	if err := json.Unmarshal([]byte(stripFences(resp)), &payload); err != nil {
		return []domain.ActionItem{}, true
	}

	items = make([]domain.ActionItem, 0, len(payload.Tasks))
	for _, t := range payload.Tasks {
		description := strings.TrimSpace(t.Task)
		if description == "" {
			continue
		}
		deadline := strings.TrimSpace(t.Deadline)
		if strings.EqualFold(deadline, "n/a") {
			deadline = ""
		}
		items = append(items, domain.ActionItem{
			Description: description,
			Deadline:    deadline,
			Priority:    domain.ParseActionPriority(t.Priority),
		})
	}

	return items, false
}
