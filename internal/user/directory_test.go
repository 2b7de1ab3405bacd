package user_test

import (
	"sort"
	"testing"

	"task-assignment-bot/internal/user"
)

func testDirectory(t *testing.T) *user.Directory {
	t.Helper()
	d, err := user.NewDirectory([]user.Config{
		{Name: "Colin", Timezone: "America/Los_Angeles", Aliases: []string{"col"}},
		{Name: "Joel", Timezone: "America/Chicago"},
		{Name: "Bryan", Timezone: "America/Chicago", Aliases: []string{"b"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return d
}

func TestNewDirectory(t *testing.T) {
	if _, err := user.NewDirectory([]user.Config{{Name: "X", Timezone: "Not/AZone"}}); err == nil {
		t.Errorf("expected error for invalid timezone")
	}
	if _, err := user.NewDirectory([]user.Config{{Timezone: "UTC"}}); err == nil {
		t.Errorf("expected error for empty name")
	}
}

func TestNormalize(t *testing.T) {
	d := testDirectory(t)

	tests := []struct {
		raw  string
		want string
	}{
		{"Joel", "Joel"},
		{"joel", "Joel"},
		{"@joel", "Joel"},
		{"  JOEL  ", "Joel"},
		{"col", "Colin"},
		{"Colin Smith | Example Corp", "Colin"},
		{"Joel Doe", "Joel"},
		{"stranger", "stranger"},
		{"@stranger | Acme", "stranger"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := d.Normalize(tt.raw); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestTimezone(t *testing.T) {
	d := testDirectory(t)

	if got := d.Timezone("@joel").String(); got != "America/Chicago" {
		t.Errorf("Timezone(@joel) = %s, want America/Chicago", got)
	}
	if got := d.Timezone("col").String(); got != "America/Los_Angeles" {
		t.Errorf("Timezone(col) = %s, want America/Los_Angeles", got)
	}
	if got := d.Timezone("stranger").String(); got != "UTC" {
		t.Errorf("Timezone(stranger) = %s, want UTC", got)
	}
}

func TestKnown(t *testing.T) {
	d := testDirectory(t)

	if !d.Known("@joel") {
		t.Errorf("Known(@joel) = false, want true")
	}
	if !d.Known("Colin Smith | Example Corp") {
		t.Errorf("Known with org suffix = false, want true")
	}
	if d.Known("stranger") {
		t.Errorf("Known(stranger) = true, want false")
	}
}

func TestDisabledEntriesAreSkipped(t *testing.T) {
	d, err := user.NewDirectory([]user.Config{
		{Name: "Colin", Timezone: "America/Los_Angeles"},
		{Name: "Gone", Timezone: "America/Chicago", Disabled: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Known("Gone") {
		t.Errorf("Known(Gone) = true, want false for disabled entry")
	}
	if got := d.Timezone("Gone").String(); got != "UTC" {
		t.Errorf("Timezone(Gone) = %s, want UTC", got)
	}
}

func TestDefaultReminderMinutes(t *testing.T) {
	d, err := user.NewDirectory([]user.Config{
		{Name: "Colin", Timezone: "America/Los_Angeles", DefaultReminderMinutes: 30},
		{Name: "Joel", Timezone: "America/Chicago"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := d.DefaultReminderMinutes("@colin"); got != 30 {
		t.Errorf("DefaultReminderMinutes(@colin) = %d, want 30", got)
	}
	if got := d.DefaultReminderMinutes("Joel"); got != 0 {
		t.Errorf("DefaultReminderMinutes(Joel) = %d, want 0", got)
	}
	if got := d.DefaultReminderMinutes("stranger"); got != 0 {
		t.Errorf("DefaultReminderMinutes(stranger) = %d, want 0", got)
	}

	if _, err := user.NewDirectory([]user.Config{
		{Name: "X", Timezone: "UTC", DefaultReminderMinutes: -5},
	}); err == nil {
		t.Errorf("expected error for negative default reminder minutes")
	}
}

func TestNames(t *testing.T) {
	d := testDirectory(t)

	names := d.Names()
	sort.Strings(names)
	want := []string{"Bryan", "Colin", "Joel"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}
