package timezone

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateFormat  = "2006-01-02"
	clockFormat = "15:04"
)

// ContextAssignerLocal is the sentinel timezone context meaning "the clock
// values were written in the assigner's local timezone". Only tasks in this
// context are converted to the assignee's clock.
const ContextAssignerLocal = "assigner_local"

// UserDirectory resolves raw chat identifiers to canonical usernames and
// their IANA timezones. Lookups are side-effect-free; unknown usernames
// resolve to UTC.
type UserDirectory interface {
	Normalize(raw string) string
	Timezone(username string) *time.Location
}

// Converter re-expresses task times between users' local clocks.
type Converter struct {
	users UserDirectory
}

func NewConverter(users UserDirectory) *Converter {
	return &Converter{users: users}
}

// ConvertTimeBetweenUsers converts a wall-clock date and HH:MM time from
// fromUser's timezone into toUser's. The offset applied is whichever is in
// effect in each zone on that specific date, so conversions across a DST
// boundary come out right.
//
// An empty clock means a date-only task: the date passes through unchanged
// and the returned time stays empty.
//
// A wall-clock value skipped by a spring-forward transition is normalized
// forward to the next valid instant; a repeated fall-back value resolves to
// its first occurrence.
func (c *Converter) ConvertTimeBetweenUsers(date, clock, fromUser, toUser string) (string, string, error) {
	if clock == "" {
		return date, "", nil
	}

	day, err := time.Parse(dateFormat, date)
	if err != nil {
		return "", "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	hm, err := time.Parse(clockFormat, clock)
	if err != nil {
		return "", "", fmt.Errorf("invalid time %q: %w", clock, err)
	}

	fromTZ := c.users.Timezone(c.users.Normalize(fromUser))
	toTZ := c.users.Timezone(c.users.Normalize(toUser))

	local := time.Date(day.Year(), day.Month(), day.Day(), hm.Hour(), hm.Minute(), 0, 0, fromTZ)
	converted := local.In(toTZ)

	return converted.Format(dateFormat), converted.Format(clockFormat), nil
}

// Fields are the temporal fields of one task record, as produced by parsing.
// ProcessTask mutates them in place when it decides to convert.
type Fields struct {
	Assignee     string
	DueDate      string
	DueTime      string
	ReminderDate string
	ReminderTime string
	Context      string // timezone context reported by extraction; empty means assigner-local
}

// Info records what ProcessTask decided, for display and storage alongside
// the task.
type Info struct {
	TimesAreIn string
	AssignerTZ string
	AssigneeTZ string
	Converted  bool
}

// ProcessTask decides whether the task's due and reminder times need
// converting from the assigner's clock to the assignee's, and applies the
// conversion when they do.
//
// No conversion happens when the times were recorded in an explicit timezone
// (Context set and not assigner-local), or when assigner and assignee
// normalize to the same person. Otherwise due and reminder are converted
// independently; a date-only due passes through untouched.
func (c *Converter) ProcessTask(f *Fields, assigner string) (Info, error) {
	assignerName := c.users.Normalize(assigner)
	assigneeName := c.users.Normalize(f.Assignee)

	info := Info{
		AssignerTZ: c.users.Timezone(assignerName).String(),
		AssigneeTZ: c.users.Timezone(assigneeName).String(),
	}

	if f.Context != "" && f.Context != ContextAssignerLocal {
		info.TimesAreIn = f.Context
		return info, nil
	}
	if strings.EqualFold(assignerName, assigneeName) {
		return info, nil
	}

	dueDate, dueTime := f.DueDate, f.DueTime
	if f.DueTime != "" {
		var err error
		dueDate, dueTime, err = c.ConvertTimeBetweenUsers(f.DueDate, f.DueTime, assignerName, assigneeName)
		if err != nil {
			return info, err
		}
	}

	remDate, remTime := f.ReminderDate, f.ReminderTime
	if f.ReminderDate != "" && f.ReminderTime != "" {
		var err error
		remDate, remTime, err = c.ConvertTimeBetweenUsers(f.ReminderDate, f.ReminderTime, assignerName, assigneeName)
		if err != nil {
			return info, err
		}
	}

	// Fields are only written once both conversions succeeded, so a bad
	// reminder string cannot leave the task half-converted.
	f.DueDate, f.DueTime = dueDate, dueTime
	f.ReminderDate, f.ReminderTime = remDate, remTime
	info.Converted = true
	return info, nil
}
