package domain

import "strings"

// ActionPriority represents the urgency of an extracted action item.
type ActionPriority string

const (
	ActionPriorityHigh   ActionPriority = "High"
	ActionPriorityMedium ActionPriority = "Medium"
	ActionPriorityLow    ActionPriority = "Low"
)

// ParseActionPriority normalizes model output to a priority level,
// defaulting to Medium when the value is unrecognized.
func ParseActionPriority(raw string) ActionPriority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high", "urgent":
		return ActionPriorityHigh
	case "low":
		return ActionPriorityLow
	default:
		return ActionPriorityMedium
	}
}

// ActionItem is a task extracted from an email body. Action items belong to
// exactly one email and are replaced wholesale on re-extraction.
type ActionItem struct {
	Description string         `json:"description"`
	Deadline    string         `json:"deadline,omitempty"` // free text, e.g. "EOD Friday" or "N/A"
	Priority    ActionPriority `json:"priority"`
}
