package usecase

import (
	"strings"
	"testing"
	"time"

	"task-assignment-bot/internal/model"
	"task-assignment-bot/pkg/temporal"
)

func TestSanitizeJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON",
			input: `{"task": "x"}`,
			want:  `{"task": "x"}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"task\": \"x\"}\n```",
			want:  `{"task": "x"}`,
		},
		{
			name:  "bare fence",
			input: "```\n{\"task\": \"x\"}\n```",
			want:  `{"task": "x"}`,
		},
		{
			name:  "surrounding prose",
			input: "Sure, here is the JSON: {\"task\": \"x\"} Hope that helps!",
			want:  `{"task": "x"}`,
		},
		{
			name:  "no JSON at all",
			input: "I cannot parse that.",
			want:  "I cannot parse that.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeJSONResponse(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildParsePromptLowConfidence(t *testing.T) {
	now := time.Date(2025, 7, 10, 14, 30, 0, 0, time.UTC)
	ext := temporal.Extraction{Confidence: temporal.ConfidenceNone}

	prompt := buildParsePrompt("do the thing", ext, "Colin", now)

	if !strings.Contains(prompt, "Message: do the thing") {
		t.Errorf("expected raw message, got:\n%s", prompt)
	}
	if strings.Contains(prompt, "Pre-parsed") {
		t.Errorf("low confidence must not inject hints:\n%s", prompt)
	}
	if !strings.Contains(prompt, "It is currently 14:30 on 2025-07-10 where Colin is located") {
		t.Errorf("missing context line:\n%s", prompt)
	}
}

func TestBuildParsePromptWithHints(t *testing.T) {
	now := time.Date(2025, 7, 10, 14, 30, 0, 0, time.UTC)
	ext := temporal.Extraction{
		ProcessedText: "check the generator [on 2025-07-11 at 15:00]",
		Confidence:    temporal.ConfidenceDistinctRemind,
		Data: temporal.Data{
			DueDate:         "2025-07-11",
			DueTime:         "16:00",
			ReminderDate:    "2025-07-11",
			ReminderTime:    "15:30",
			TimezoneContext: "CST",
		},
	}

	prompt := buildParsePrompt("raw text", ext, "Colin", now)

	for _, want := range []string{
		"Task: check the generator [on 2025-07-11 at 15:00]",
		"Pre-parsed due date: 2025-07-11",
		"Pre-parsed due time: 16:00",
		"Pre-parsed reminder time: 15:30",
		"Detected timezone: CST",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "Message: raw text") {
		t.Errorf("hint prompt should not include the raw message:\n%s", prompt)
	}
}

func TestBuildParsePromptSkipsRedundantReminder(t *testing.T) {
	ext := temporal.Extraction{
		ProcessedText: "x",
		Confidence:    temporal.ConfidenceIdiom,
		Data: temporal.Data{
			DueDate:      "2025-07-10",
			DueTime:      "23:59",
			ReminderDate: "2025-07-10",
			ReminderTime: "23:59",
		},
	}

	prompt := buildParsePrompt("x", ext, "Colin", time.Now())
	if strings.Contains(prompt, "Pre-parsed reminder time") {
		t.Errorf("reminder equal to due time should not be repeated:\n%s", prompt)
	}
}

func TestOverlayExtraction(t *testing.T) {
	fields := parsedFields{
		Task:     "check the generator",
		Assignee: "Joel",
		DueDate:  "2030-01-01",
		DueTime:  "09:00",
	}
	overlayExtraction(&fields, temporal.Extraction{
		Confidence: temporal.ConfidenceGeneric,
		Data:       temporal.Data{DueDate: "2025-07-11", DueTime: "15:00"},
	})

	if fields.DueDate != "2025-07-11" || fields.DueTime != "15:00" {
		t.Errorf("extraction should override LLM temporal fields: %+v", fields)
	}
	if fields.Task != "check the generator" || fields.Assignee != "Joel" {
		t.Errorf("non-temporal fields must survive the overlay: %+v", fields)
	}

	// Below the threshold nothing moves.
	low := parsedFields{DueDate: "2030-01-01"}
	overlayExtraction(&low, temporal.Extraction{
		Confidence: 0.5,
		Data:       temporal.Data{DueDate: "2025-07-11"},
	})
	if low.DueDate != "2030-01-01" {
		t.Errorf("low confidence must not overlay: %+v", low)
	}
}

func TestNormalizePriority(t *testing.T) {
	for input, want := range map[string]string{
		"low":    "low",
		"High":   "high",
		"urgent": "medium",
		"":       "medium",
	} {
		if got := normalizePriority(input); got != want {
			t.Errorf("normalizePriority(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFormatConfirmation(t *testing.T) {
	full := model.Task{
		Task:           "check the generator",
		Assignee:       "Joel",
		DueDate:        "2025-07-11",
		DueTime:        "17:00",
		ReminderDate:   "2025-07-11",
		ReminderTime:   "16:30",
		Site:           "north site",
		RepeatInterval: "weekly",
		TimezoneInfo:   &model.TimezoneInfo{Converted: true},
	}
	got := formatConfirmation(full)
	for _, want := range []string{
		"📋 Task: check the generator",
		"👤 Assigned to: Joel",
		"📅 Due by 2025-07-11 at 17:00 (Joel's local time)",
		"⏰ Reminder set for 2025-07-11 at 16:30",
		"📍 Site: north site",
		"🔄 Repeats: weekly",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing line %q in:\n%s", want, got)
		}
	}

	minimal := model.Task{Task: "stretch", Assignee: "Colin"}
	got = formatConfirmation(minimal)
	if strings.Contains(got, "📅") || strings.Contains(got, "⏰") || strings.Contains(got, "📍") {
		t.Errorf("minimal task should only render task and assignee:\n%s", got)
	}
}
