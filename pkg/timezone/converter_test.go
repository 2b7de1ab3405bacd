package timezone_test

import (
	"strings"
	"testing"
	"time"

	"task-assignment-bot/pkg/timezone"
)

// stubDirectory is a fixed three-person roster. Normalization lowercases and
// strips a leading "@"; unknown users resolve to UTC.
type stubDirectory struct {
	zones map[string]string
}

func newStubDirectory(t *testing.T) *stubDirectory {
	t.Helper()
	return &stubDirectory{zones: map[string]string{
		"colin": "America/Los_Angeles",
		"joel":  "America/Chicago",
		"bryan": "America/Chicago",
	}}
}

func (d *stubDirectory) Normalize(raw string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "@"))
}

func (d *stubDirectory) Timezone(username string) *time.Location {
	name, ok := d.zones[d.Normalize(username)]
	if !ok {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func TestConvertTimeBetweenUsers(t *testing.T) {
	c := timezone.NewConverter(newStubDirectory(t))

	tests := []struct {
		name     string
		date     string
		clock    string
		from     string
		to       string
		wantDate string
		wantTime string
	}{
		{
			name: "LA to Chicago summer offset",
			date: "2025-07-10", clock: "16:00",
			from: "Colin", to: "Joel",
			wantDate: "2025-07-10", wantTime: "18:00",
		},
		{
			name: "LA to Chicago winter offset",
			date: "2025-01-10", clock: "16:00",
			from: "Colin", to: "Joel",
			wantDate: "2025-01-10", wantTime: "18:00",
		},
		{
			name: "Late evening crosses into next day",
			date: "2025-07-10", clock: "23:30",
			from: "Colin", to: "Joel",
			wantDate: "2025-07-11", wantTime: "01:30",
		},
		{
			name: "Chicago to LA goes backwards",
			date: "2025-07-10", clock: "08:00",
			from: "Joel", to: "Colin",
			wantDate: "2025-07-10", wantTime: "06:00",
		},
		{
			name: "Early morning crosses into previous day",
			date: "2025-07-10", clock: "01:00",
			from: "Joel", to: "Colin",
			wantDate: "2025-07-09", wantTime: "23:00",
		},
		{
			name: "Same user is a no-op",
			date: "2025-07-10", clock: "16:00",
			from: "Colin", to: "Colin",
			wantDate: "2025-07-10", wantTime: "16:00",
		},
		{
			name: "Normalization makes handle and name the same user",
			date: "2025-07-10", clock: "16:00",
			from: "@joel", to: "Joel",
			wantDate: "2025-07-10", wantTime: "16:00",
		},
		{
			name: "Date-only passes through",
			date: "2025-07-10", clock: "",
			from: "Colin", to: "Joel",
			wantDate: "2025-07-10", wantTime: "",
		},
		{
			name: "Unknown user defaults to UTC",
			date: "2025-07-10", clock: "12:00",
			from: "nobody", to: "Joel",
			wantDate: "2025-07-10", wantTime: "07:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDate, gotTime, err := c.ConvertTimeBetweenUsers(tt.date, tt.clock, tt.from, tt.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotDate != tt.wantDate || gotTime != tt.wantTime {
				t.Errorf("got (%s, %s), want (%s, %s)", gotDate, gotTime, tt.wantDate, tt.wantTime)
			}
		})
	}
}

func TestConvertTimeBetweenUsersRoundTrip(t *testing.T) {
	c := timezone.NewConverter(newStubDirectory(t))

	dates := []string{"2025-07-10", "2025-01-10", "2025-03-10", "2025-11-03"}
	clocks := []string{"00:00", "09:15", "16:00", "23:45"}

	for _, date := range dates {
		for _, clock := range clocks {
			d2, t2, err := c.ConvertTimeBetweenUsers(date, clock, "Colin", "Joel")
			if err != nil {
				t.Fatalf("forward %s %s: %v", date, clock, err)
			}
			d3, t3, err := c.ConvertTimeBetweenUsers(d2, t2, "Joel", "Colin")
			if err != nil {
				t.Fatalf("back %s %s: %v", d2, t2, err)
			}
			if d3 != date || t3 != clock {
				t.Errorf("round trip %s %s -> %s %s -> %s %s", date, clock, d2, t2, d3, t3)
			}
		}
	}
}

func TestConvertTimeBetweenUsersInvalidInput(t *testing.T) {
	c := timezone.NewConverter(newStubDirectory(t))

	if _, _, err := c.ConvertTimeBetweenUsers("not-a-date", "16:00", "Colin", "Joel"); err == nil {
		t.Errorf("expected error for malformed date")
	}
	if _, _, err := c.ConvertTimeBetweenUsers("2025-07-10", "25:99", "Colin", "Joel"); err == nil {
		t.Errorf("expected error for malformed time")
	}
}

func TestProcessTask(t *testing.T) {
	c := timezone.NewConverter(newStubDirectory(t))

	t.Run("Assigner-local times convert to the assignee's clock", func(t *testing.T) {
		f := &timezone.Fields{
			Assignee: "Joel",
			DueDate:  "2025-07-10", DueTime: "16:00",
			ReminderDate: "2025-07-10", ReminderTime: "15:30",
			Context: timezone.ContextAssignerLocal,
		}
		info, err := c.ProcessTask(f, "Colin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !info.Converted {
			t.Errorf("converted = false, want true")
		}
		if f.DueDate != "2025-07-10" || f.DueTime != "18:00" {
			t.Errorf("due = %s %s, want 2025-07-10 18:00", f.DueDate, f.DueTime)
		}
		if f.ReminderDate != "2025-07-10" || f.ReminderTime != "17:30" {
			t.Errorf("reminder = %s %s, want 2025-07-10 17:30", f.ReminderDate, f.ReminderTime)
		}
		if info.AssignerTZ != "America/Los_Angeles" || info.AssigneeTZ != "America/Chicago" {
			t.Errorf("zones = %s / %s", info.AssignerTZ, info.AssigneeTZ)
		}
	})

	t.Run("Empty context means assigner-local", func(t *testing.T) {
		f := &timezone.Fields{Assignee: "Joel", DueDate: "2025-07-10", DueTime: "16:00"}
		info, err := c.ProcessTask(f, "Colin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !info.Converted || f.DueTime != "18:00" {
			t.Errorf("converted = %v, due time = %s, want true / 18:00", info.Converted, f.DueTime)
		}
	})

	t.Run("Explicit timezone context blocks conversion", func(t *testing.T) {
		f := &timezone.Fields{
			Assignee: "Joel",
			DueDate:  "2025-07-10", DueTime: "16:00",
			Context: "CST",
		}
		info, err := c.ProcessTask(f, "Colin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info.Converted {
			t.Errorf("converted = true, want false")
		}
		if info.TimesAreIn != "CST" {
			t.Errorf("times_are_in = %q, want CST", info.TimesAreIn)
		}
		if f.DueTime != "16:00" {
			t.Errorf("due time changed to %s", f.DueTime)
		}
	})

	t.Run("Self-assignment skips conversion but records zones", func(t *testing.T) {
		f := &timezone.Fields{
			Assignee: "@colin",
			DueDate:  "2025-07-10", DueTime: "16:00",
		}
		info, err := c.ProcessTask(f, "Colin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info.Converted {
			t.Errorf("converted = true, want false")
		}
		if f.DueTime != "16:00" {
			t.Errorf("due time changed to %s", f.DueTime)
		}
		if info.AssignerTZ != "America/Los_Angeles" || info.AssigneeTZ != "America/Los_Angeles" {
			t.Errorf("zones = %s / %s", info.AssignerTZ, info.AssigneeTZ)
		}
	})

	t.Run("Date-only task converts nothing but is marked converted", func(t *testing.T) {
		f := &timezone.Fields{Assignee: "Joel", DueDate: "2025-07-10"}
		info, err := c.ProcessTask(f, "Colin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !info.Converted {
			t.Errorf("converted = false, want true")
		}
		if f.DueDate != "2025-07-10" || f.DueTime != "" {
			t.Errorf("due = %s %s, want unchanged", f.DueDate, f.DueTime)
		}
	})

	t.Run("Malformed reminder leaves the task untouched", func(t *testing.T) {
		f := &timezone.Fields{
			Assignee: "Joel",
			DueDate:  "2025-07-10", DueTime: "16:00",
			ReminderDate: "garbage", ReminderTime: "15:30",
		}
		info, err := c.ProcessTask(f, "Colin")
		if err == nil {
			t.Fatalf("expected error for malformed reminder date")
		}
		if info.Converted {
			t.Errorf("converted = true, want false")
		}
		if f.DueTime != "16:00" {
			t.Errorf("due time changed to %s despite error", f.DueTime)
		}
	})
}
