package domain

import (
	"strings"
	"time"
)

// Category is the classification assigned to an email by the categorize task.
type Category string

const (
	CategoryWork          Category = "Work"
	CategoryPersonal      Category = "Personal"
	CategoryFinance       Category = "Finance"
	CategoryPromotions    Category = "Promotions"
	CategoryNotifications Category = "Notifications"
	CategoryUncategorized Category = "Uncategorized"
)

// ValidCategories returns the fixed category set.
func ValidCategories() []Category {
	return []Category{
		CategoryWork,
		CategoryPersonal,
		CategoryFinance,
		CategoryPromotions,
		CategoryNotifications,
		CategoryUncategorized,
	}
}

// NormalizeCategory maps free-form model output onto the fixed category set.
// Anything outside the set falls back to Uncategorized.
func NormalizeCategory(raw string) Category {
	cleaned := strings.Trim(strings.TrimSpace(raw), `"'.`)
	for _, c := range ValidCategories() {
		if strings.EqualFold(string(c), cleaned) {
			return c
		}
	}
	return CategoryUncategorized
}

// EnrichmentStatus tracks the per-task state of a derived field.
type EnrichmentStatus string

const (
	EnrichmentPending EnrichmentStatus = "pending" // task never completed
	EnrichmentDone    EnrichmentStatus = "done"
	EnrichmentFailed  EnrichmentStatus = "failed" // retries exhausted, previous value kept
)

// Email is a single inbox message plus its derived enrichment state.
// Derived fields (Category, ActionItems, DraftReply and their statuses)
// are written only by the enrichment pipeline.
type Email struct {
	ID         string    `json:"id"`
	Sender     string    `json:"sender"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
	IsRead     bool      `json:"is_read"`

	// Derived by the categorize task
	Category       *Category        `json:"category,omitempty"`
	CategoryStatus EnrichmentStatus `json:"category_status"`
	CategoryRev    int              `json:"category_prompt_rev,omitempty"`

	// Derived by the extract_actions task
	ActionItems   []ActionItem     `json:"action_items"`
	ParseFailed   bool             `json:"parse_failed"`
	ActionsStatus EnrichmentStatus `json:"actions_status"`
	ActionsRev    int              `json:"actions_prompt_rev,omitempty"`

	// Derived by the draft_reply task
	DraftReply  *string          `json:"draft_reply,omitempty"`
	DraftStatus EnrichmentStatus `json:"draft_status"`
	DraftRev    int              `json:"draft_prompt_rev,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PendingEnrichment reports whether any task has not completed successfully.
func (e *Email) PendingEnrichment() bool {
	return e.CategoryStatus != EnrichmentDone ||
		e.ActionsStatus != EnrichmentDone ||
		e.DraftStatus != EnrichmentDone
}

// StatusFor returns the enrichment status for a task.
func (e *Email) StatusFor(task TaskType) EnrichmentStatus {
	switch task {
	case TaskCategorize:
		return e.CategoryStatus
	case TaskExtractActions:
		return e.ActionsStatus
	case TaskDraftReply:
		return e.DraftStatus
	}
	return EnrichmentPending
}

// EmailFilter narrows a mailbox listing.
type EmailFilter struct {
	Category *Category
	Pending  *bool // true: at least one task not done; false: fully enriched
	Limit    int
	Offset   int
}
