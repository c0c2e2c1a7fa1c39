package enrich

import (
	"fmt"

	"agent_server/core/domain"
)

// System prompt frames per task. The user-editable template text is
// spliced into the frame at invocation time, so a prompt edit takes
// effect on the very next call.

const categorizeFrame = `You are an email classification engine. Your single task is to classify the provided email text.

## Rules
%s

## Output Format
Respond with ONLY the single category name. Do not include any other text, explanation, or punctuation.`

const extractActionsFrame = `You are a task extraction engine. Extract all actions assigned to the recipient from the provided email text.

## Rules
%s

## Output Format
Respond with ONLY a JSON object in this exact shape:
{
  "action_summary": "one-sentence summary of the overall action required",
  "tasks": [
    {"task": "the exact task to perform", "deadline": "explicit or implied deadline, or 'N/A'", "priority": "High|Medium|Low"}
  ]
}
If no action items are found, "tasks" must be an empty array.`

const draftReplyFrame = `You are an email drafting engine. Write the body of a reply to the provided email.

## Rules
%s

## Output Format
Output ONLY the reply body text.
- Do not include a subject line or To:/From: headers.
- Do not include markdown formatting.
- Do not include conversational text like 'Here is the draft'.`

// buildInstruction splices the current template text into the task's
// system prompt frame.
func buildInstruction(task domain.TaskType, template string) string {
	switch task {
	case domain.TaskCategorize:
		return fmt.Sprintf(categorizeFrame, template)
	case domain.TaskExtractActions:
		return fmt.Sprintf(extractActionsFrame, template)
	case domain.TaskDraftReply:
		return fmt.Sprintf(draftReplyFrame, template)
	}
	return template
}

// buildContent renders the email as model input.
func buildContent(email *domain.Email) string {
	return fmt.Sprintf("From: %s\nSubject: %s\n\nBody:\n%s", email.Sender, email.Subject, email.Body)
}
