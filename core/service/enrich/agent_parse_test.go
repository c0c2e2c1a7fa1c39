package enrich

import (
	"strings"
	"testing"

	"agent_server/core/domain"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text",
			input:    "Work",
			expected: "Work",
		},
		{
			name:     "json fence",
			input:    "```json\n{\"tasks\": []}\n```",
			expected: `{"tasks": []}`,
		},
		{
			name:     "bare fence",
			input:    "```\nhello\n```",
			expected: "hello",
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n Work \n ",
			expected: "Work",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := stripFences(tt.input)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestParseActionItems(t *testing.T) {
	t.Run("well formed payload", func(t *testing.T) {
		resp := `{
			"action_summary": "Send the slides and confirm the meeting",
			"tasks": [
				{"task": "Send the slides", "deadline": "Thursday", "priority": "High"},
				{"task": "Confirm the meeting", "deadline": "N/A", "priority": "Low"}
			]
		}`

		items, parseFailed := parseActionItems(resp)
		if parseFailed {
			t.Fatal("expected parse success")
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if items[0].Description != "Send the slides" {
			t.Errorf("unexpected description %q", items[0].Description)
		}
		if items[0].Deadline != "Thursday" {
			t.Errorf("unexpected deadline %q", items[0].Deadline)
		}
		if items[0].Priority != domain.ActionPriorityHigh {
			t.Errorf("unexpected priority %q", items[0].Priority)
		}
		// N/A deadlines are stored as empty
		if items[1].Deadline != "" {
			t.Errorf("expected empty deadline, got %q", items[1].Deadline)
		}
	})

	t.Run("fenced payload", func(t *testing.T) {
		resp := "```json\n{\"action_summary\": \"ok\", \"tasks\": []}\n```"
		items, parseFailed := parseActionItems(resp)
		if parseFailed {
			t.Fatal("expected parse success")
		}
		if len(items) != 0 {
			t.Errorf("expected no items, got %d", len(items))
		}
	})

	t.Run("malformed output flags but does not error", func(t *testing.T) {
		items, parseFailed := parseActionItems("Sure! Here are the tasks I found:")
		if !parseFailed {
			t.Error("expected parse failure flag")
		}
		if items == nil || len(items) != 0 {
			t.Errorf("expected empty non-nil item set, got %v", items)
		}
	})

	t.Run("unknown priority defaults to medium", func(t *testing.T) {
		resp := `{"tasks": [{"task": "Review doc", "deadline": "", "priority": "whenever"}]}`
		items, parseFailed := parseActionItems(resp)
		if parseFailed {
			t.Fatal("expected parse success")
		}
		if items[0].Priority != domain.ActionPriorityMedium {
			t.Errorf("expected medium, got %q", items[0].Priority)
		}
	})

	t.Run("blank task descriptions are dropped", func(t *testing.T) {
		resp := `{"tasks": [{"task": "  ", "deadline": "", "priority": "High"}, {"task": "Real task"}]}`
		items, parseFailed := parseActionItems(resp)
		if parseFailed {
			t.Fatal("expected parse success")
		}
		if len(items) != 1 || items[0].Description != "Real task" {
			t.Errorf("expected only the real task, got %v", items)
		}
	})
}

func TestBuildInstruction(t *testing.T) {
	instruction := buildInstruction(domain.TaskCategorize, "Only use Work or Personal.")
	if !strings.Contains(instruction, "Only use Work or Personal.") {
		t.Error("expected template text spliced into the frame")
	}
	if !strings.Contains(instruction, "classification engine") {
		t.Error("expected the categorize frame around the template")
	}
}

func TestBuildContent(t *testing.T) {
	email := &domain.Email{
		Sender:  "boss@corp.com",
		Subject: "Q3 planning",
		Body:    "Please send the slides by Thursday.",
	}

	content := buildContent(email)
	for _, want := range []string{"From: boss@corp.com", "Subject: Q3 planning", "Please send the slides by Thursday."} {
		if !strings.Contains(content, want) {
			t.Errorf("content missing %q:\n%s", want, content)
		}
	}
}
