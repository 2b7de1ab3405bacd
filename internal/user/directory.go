package user

import (
	"fmt"
	"strings"
	"time"
)

// Config is one roster entry as it appears in configuration. Entries are
// active unless Disabled is set.
type Config struct {
	Name                   string   `mapstructure:"name"`
	Timezone               string   `mapstructure:"timezone"`
	Aliases                []string `mapstructure:"aliases"`
	DefaultReminderMinutes int      `mapstructure:"default_reminder_minutes"`
	Disabled               bool     `mapstructure:"disabled"`
}

type entry struct {
	name            string
	location        *time.Location
	reminderMinutes int
}

// Directory is the read-only username roster: it normalizes raw chat
// identifiers to canonical names and maps names to IANA timezones.
// Safe for concurrent use after construction.
type Directory struct {
	byKey map[string]entry // lowercased canonical name or alias -> entry
}

// NewDirectory builds a directory from configured roster entries. Every
// timezone is resolved up front so a typo in config fails at startup, not
// on the first task.
func NewDirectory(users []Config) (*Directory, error) {
	d := &Directory{byKey: make(map[string]entry, len(users))}
	for _, u := range users {
		if u.Name == "" {
			return nil, fmt.Errorf("roster entry with empty name")
		}
		if u.Disabled {
			continue
		}
		loc, err := time.LoadLocation(u.Timezone)
		if err != nil {
			return nil, fmt.Errorf("user %q: invalid timezone %q: %w", u.Name, u.Timezone, err)
		}
		if u.DefaultReminderMinutes < 0 {
			return nil, fmt.Errorf("user %q: negative default_reminder_minutes", u.Name)
		}
		e := entry{name: u.Name, location: loc, reminderMinutes: u.DefaultReminderMinutes}
		d.byKey[strings.ToLower(u.Name)] = e
		for _, alias := range u.Aliases {
			d.byKey[strings.ToLower(alias)] = e
		}
	}
	return d, nil
}

// Normalize reduces a raw chat identifier to a canonical roster name:
// "@joel" and "Joel" both become "Joel", and display names with an
// organization suffix like "Jane Doe | Example Corp" reduce to their first
// name. Identifiers not on the roster come back as the cleaned first name
// so callers can still display something sensible.
func (d *Directory) Normalize(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.TrimPrefix(name, "@")
	if i := strings.Index(name, "|"); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	if fields := strings.Fields(name); len(fields) > 0 {
		name = fields[0]
	}
	if e, ok := d.byKey[strings.ToLower(name)]; ok {
		return e.name
	}
	return name
}

// Timezone returns the IANA location for a username, normalizing first.
// Unknown usernames default to UTC.
func (d *Directory) Timezone(username string) *time.Location {
	if e, ok := d.byKey[strings.ToLower(d.Normalize(username))]; ok {
		return e.location
	}
	return time.UTC
}

// DefaultReminderMinutes returns how many minutes before a due time the
// user wants a reminder when the instruction names none. Zero means no
// default is configured.
func (d *Directory) DefaultReminderMinutes(username string) int {
	if e, ok := d.byKey[strings.ToLower(d.Normalize(username))]; ok {
		return e.reminderMinutes
	}
	return 0
}

// Known reports whether the identifier resolves to a roster entry. Callers
// use this to warn before a conversion silently falls back to UTC.
func (d *Directory) Known(raw string) bool {
	_, ok := d.byKey[strings.ToLower(d.Normalize(raw))]
	return ok
}

// Names returns the canonical roster names, for prompt construction and
// display. Order is not specified.
func (d *Directory) Names() []string {
	seen := make(map[string]bool, len(d.byKey))
	names := make([]string, 0, len(d.byKey))
	for _, e := range d.byKey {
		if !seen[e.name] {
			seen[e.name] = true
			names = append(names, e.name)
		}
	}
	return names
}
