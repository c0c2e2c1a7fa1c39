package domain

import "time"

// TaskType identifies an enrichment task.
type TaskType string

const (
	TaskCategorize     TaskType = "categorize"
	TaskExtractActions TaskType = "extract_actions"
	TaskDraftReply     TaskType = "draft_reply"
)

// AllTasks returns every enrichment task.
func AllTasks() []TaskType {
	return []TaskType{TaskCategorize, TaskExtractActions, TaskDraftReply}
}

// IsValidTask checks whether a string names a known task.
func IsValidTask(s string) bool {
	switch TaskType(s) {
	case TaskCategorize, TaskExtractActions, TaskDraftReply:
		return true
	}
	return false
}

// PromptTemplate is the user-customizable instruction for one task.
// Defaults are seeded at startup; an edit overwrites the content in place
// and bumps Revision. Templates are never deleted, only reset to default.
type PromptTemplate struct {
	Task      TaskType  `json:"task"`
	Content   string    `json:"content"`
	Revision  int       `json:"revision"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultPromptContent returns the seed user-rules text for a task.
// The text is spliced into the task's system prompt by the pipeline.
func DefaultPromptContent(task TaskType) string {
	switch task {
	case TaskCategorize:
		return "Classify the email into exactly one of: Work, Personal, Finance, Promotions, Notifications. " +
			"If none clearly applies, respond with Uncategorized."
	case TaskExtractActions:
		return "Extract only tasks explicitly assigned to the recipient. " +
			"Keep each task description short and imperative. Use 'N/A' when no deadline is stated."
	case TaskDraftReply:
		return "Write a concise, polite reply in a professional tone. " +
			"Acknowledge the sender's request and confirm next steps."
	}
	return ""
}
