package temporal_test

import (
	"testing"
	"time"

	"task-assignment-bot/pkg/temporal"
)

// Thursday, July 10 2025, 14:30 in Los Angeles — fixed reference for all
// relative-expression tests.
func testReference(t *testing.T) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("failed to load test timezone: %v", err)
	}
	return time.Date(2025, 7, 10, 14, 30, 0, 0, loc)
}

func newTestPreprocessor(t *testing.T) *temporal.Preprocessor {
	t.Helper()
	p, err := temporal.NewPreprocessor("America/Los_Angeles")
	if err != nil {
		t.Fatalf("unexpected error creating preprocessor: %v", err)
	}
	return p
}

func TestNewPreprocessor(t *testing.T) {
	if _, err := temporal.NewPreprocessor("America/Chicago"); err != nil {
		t.Fatalf("unexpected error for valid timezone: %v", err)
	}
	if _, err := temporal.NewPreprocessor("Invalid/Timezone"); err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestPreprocess(t *testing.T) {
	p := newTestPreprocessor(t)
	ref := testReference(t)

	tests := []struct {
		name          string
		input         string
		minConfidence float64
		want          temporal.Data
	}{
		{
			name:          "Tomorrow with time",
			input:         "Remind Joel tomorrow at 3pm to check batteries",
			minConfidence: 0.7,
			want: temporal.Data{
				DueDate:      "2025-07-11",
				DueTime:      "15:00",
				ReminderDate: "2025-07-11",
				ReminderTime: "15:00",
			},
		},
		{
			name:          "End of the hour",
			input:         "Check telemetry at end of the hour",
			minConfidence: 0.9,
			want: temporal.Data{
				DueDate:      "2025-07-10",
				DueTime:      "14:59",
				ReminderDate: "2025-07-10",
				ReminderTime: "14:59",
			},
		},
		{
			name:          "Top of the hour",
			input:         "Meeting at top of the hour",
			minConfidence: 0.9,
			want: temporal.Data{
				DueDate:      "2025-07-10",
				DueTime:      "15:00",
				ReminderDate: "2025-07-10",
				ReminderTime: "15:00",
			},
		},
		{
			name:          "End of day",
			input:         "Submit readings by end of the day",
			minConfidence: 0.9,
			want: temporal.Data{
				DueDate:      "2025-07-10",
				DueTime:      "23:59",
				ReminderDate: "2025-07-10",
				ReminderTime: "23:59",
			},
		},
		{
			name:          "End of tonight",
			input:         "Lock the yard by end of tonight",
			minConfidence: 0.9,
			want: temporal.Data{
				DueDate:      "2025-07-10",
				DueTime:      "23:59",
				ReminderDate: "2025-07-10",
				ReminderTime: "23:59",
			},
		},
		{
			name:          "This weekend from a Thursday",
			input:         "Do maintenance this weekend",
			minConfidence: 0.9,
			want: temporal.Data{
				DueDate:      "2025-07-12",
				DueTime:      "09:00",
				ReminderDate: "2025-07-12",
				ReminderTime: "09:00",
			},
		},
		{
			name:          "Minutes-before reminder",
			input:         "Remind Joel 30 minutes before the 4pm meeting",
			minConfidence: 0.8,
			want: temporal.Data{
				DueDate:      "2025-07-10",
				DueTime:      "16:00",
				ReminderDate: "2025-07-10",
				ReminderTime: "15:30",
			},
		},
		{
			name:          "Explicit timezone abbreviation",
			input:         "Call Bryan at 3pm CST tomorrow",
			minConfidence: 0.7,
			want: temporal.Data{
				DueDate:         "2025-07-11",
				DueTime:         "15:00",
				ReminderDate:    "2025-07-11",
				ReminderTime:    "15:00",
				TimezoneContext: "CST",
			},
		},
		{
			name:          "City time phrase",
			input:         "Check pumps tomorrow at 9am houston time",
			minConfidence: 0.7,
			want: temporal.Data{
				DueDate:         "2025-07-11",
				DueTime:         "09:00",
				ReminderDate:    "2025-07-11",
				ReminderTime:    "09:00",
				TimezoneContext: "CST",
			},
		},
		{
			name:          "Idiom keeps extracted timezone",
			input:         "Wrap up by end of the day CST",
			minConfidence: 0.9,
			want: temporal.Data{
				DueDate:         "2025-07-10",
				DueTime:         "23:59",
				ReminderDate:    "2025-07-10",
				ReminderTime:    "23:59",
				TimezoneContext: "CST",
			},
		},
		{
			name:          "Clock already passed rolls to tomorrow",
			input:         "Inspect tanks at 9am",
			minConfidence: 0.7,
			want: temporal.Data{
				DueDate:      "2025-07-11",
				DueTime:      "09:00",
				ReminderDate: "2025-07-11",
				ReminderTime: "09:00",
			},
		},
		{
			name:          "Numeric month and day",
			input:         "Service the generator 7/15 at 2pm",
			minConfidence: 0.7,
			want: temporal.Data{
				DueDate:      "2025-07-15",
				DueTime:      "14:00",
				ReminderDate: "2025-07-15",
				ReminderTime: "14:00",
			},
		},
		{
			name:          "Reminder crossing midnight decrements the date",
			input:         "Remind Joel 30 minutes before the 12:10am call",
			minConfidence: 0.8,
			want: temporal.Data{
				DueDate:      "2025-07-11",
				DueTime:      "00:10",
				ReminderDate: "2025-07-10",
				ReminderTime: "23:40",
			},
		},
		{
			name:          "12am is midnight",
			input:         "Call Joel tomorrow at 12:05am",
			minConfidence: 0.7,
			want: temporal.Data{
				DueDate:      "2025-07-11",
				DueTime:      "00:05",
				ReminderDate: "2025-07-11",
				ReminderTime: "00:05",
			},
		},
		{
			name:          "12pm is noon",
			input:         "Lunch with Bryan tomorrow at 12pm",
			minConfidence: 0.7,
			want: temporal.Data{
				DueDate:      "2025-07-11",
				DueTime:      "12:00",
				ReminderDate: "2025-07-11",
				ReminderTime: "12:00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Preprocess(tt.input, ref)
			if got.Confidence < tt.minConfidence {
				t.Fatalf("Preprocess() confidence = %v, want >= %v", got.Confidence, tt.minConfidence)
			}
			if got.Data != tt.want {
				t.Errorf("Preprocess() data = %+v, want %+v", got.Data, tt.want)
			}
		})
	}
}

func TestPreprocessNoMatch(t *testing.T) {
	p := newTestPreprocessor(t)
	ref := testReference(t)

	inputs := []string{
		"Fix the generator",
		"",
		"Tell Bryan about the new site layout",
	}

	for _, input := range inputs {
		got := p.Preprocess(input, ref)
		if got.Confidence != 0 {
			t.Errorf("Preprocess(%q) confidence = %v, want 0", input, got.Confidence)
		}
		if !got.Data.Empty() {
			t.Errorf("Preprocess(%q) data = %+v, want empty", input, got.Data)
		}
		if got.ProcessedText != input {
			t.Errorf("Preprocess(%q) processed = %q, want unchanged", input, got.ProcessedText)
		}
	}
}

func TestPreprocessTimezoneOnlyIsNoMatch(t *testing.T) {
	p := newTestPreprocessor(t)

	got := p.Preprocess("Ping Bryan CST", testReference(t))
	if got.Confidence != 0 {
		t.Fatalf("confidence = %v, want 0 for timezone-only input", got.Confidence)
	}
	if !got.Data.Empty() {
		t.Fatalf("data = %+v, want empty for timezone-only input", got.Data)
	}
}

func TestPreprocessInvariants(t *testing.T) {
	p := newTestPreprocessor(t)
	ref := testReference(t)

	inputs := []string{
		"Remind Joel tomorrow at 3pm to check batteries",
		"Check telemetry at end of the hour",
		"Do maintenance this weekend",
		"Remind Joel 30 minutes before the 4pm meeting",
		"Fix the generator",
		"Call Bryan at 3pm CST tomorrow",
	}

	for _, input := range inputs {
		got := p.Preprocess(input, ref)

		if got.Confidence < 0 || got.Confidence > 1 {
			t.Errorf("%q: confidence %v out of [0,1]", input, got.Confidence)
		}
		if (got.Confidence == 0) != got.Data.Empty() {
			t.Errorf("%q: confidence %v inconsistent with data %+v", input, got.Confidence, got.Data)
		}
		if got.Data.DueTime != "" && got.Confidence >= 0.9 {
			// Idioms never produce a distinct reminder.
			if got.Data.ReminderTime != got.Data.DueTime || got.Data.ReminderDate != got.Data.DueDate {
				t.Errorf("%q: idiom reminder %s %s differs from due %s %s",
					input, got.Data.ReminderDate, got.Data.ReminderTime, got.Data.DueDate, got.Data.DueTime)
			}
		}
	}
}

func TestPreprocessBoundaries(t *testing.T) {
	p := newTestPreprocessor(t)
	loc, _ := time.LoadLocation("America/Los_Angeles")

	t.Run("End of hour at exactly HH:59 rolls forward", func(t *testing.T) {
		ref := time.Date(2025, 7, 10, 14, 59, 0, 0, loc)
		got := p.Preprocess("wrap up at end of the hour", ref)
		if got.Data.DueTime != "15:59" {
			t.Errorf("due time = %q, want 15:59", got.Data.DueTime)
		}
	})

	t.Run("Top of hour is strictly future", func(t *testing.T) {
		ref := time.Date(2025, 7, 10, 15, 0, 0, 0, loc)
		got := p.Preprocess("sync at top of the hour", ref)
		if got.Data.DueTime != "16:00" {
			t.Errorf("due time = %q, want 16:00", got.Data.DueTime)
		}
	})

	t.Run("Weekend on Saturday at noon rolls to Sunday", func(t *testing.T) {
		ref := time.Date(2025, 7, 12, 12, 0, 0, 0, loc) // Saturday
		got := p.Preprocess("clean the shop this weekend", ref)
		if got.Data.DueDate != "2025-07-13" {
			t.Errorf("due date = %q, want 2025-07-13", got.Data.DueDate)
		}
	})

	t.Run("Weekend on Saturday morning is today", func(t *testing.T) {
		ref := time.Date(2025, 7, 12, 9, 30, 0, 0, loc) // Saturday
		got := p.Preprocess("clean the shop this weekend", ref)
		if got.Data.DueDate != "2025-07-12" {
			t.Errorf("due date = %q, want 2025-07-12", got.Data.DueDate)
		}
	})
}

func TestProcessedTextAnnotation(t *testing.T) {
	p := newTestPreprocessor(t)

	got := p.Preprocess("Remind Joel tomorrow at 3pm to check batteries", testReference(t))
	want := "Remind Joel to check batteries [on 2025-07-11 at 15:00]"
	if got.ProcessedText != want {
		t.Errorf("processed text = %q, want %q", got.ProcessedText, want)
	}
}
