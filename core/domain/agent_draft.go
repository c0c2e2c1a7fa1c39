package domain

import "time"

// Draft is a saved reply draft. Drafts are created by the draft_reply task
// or directly by the user, and can be edited or deleted independently of
// the email they answer.
type Draft struct {
	ID        int64     `json:"id"`
	EmailID   string    `json:"email_id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
