package temporal

import (
	"regexp"
	"time"
)

// idiom is one catalog entry: a phrase the general parser mishandles but
// that has exactly one meaning here. Adding an idiom is a data change.
type idiom struct {
	re     *regexp.Regexp
	handle func(text string, re *regexp.Regexp, ref time.Time) (string, Data)
}

var idiomCatalog = []idiom{
	{regexp.MustCompile(`(?i)end of (?:the )?hour`), handleEndOfHour},
	{regexp.MustCompile(`(?i)top of (?:the )?hour`), handleTopOfHour},
	{regexp.MustCompile(`(?i)end of (?:the )?day`), handleEndOfDay},
	{regexp.MustCompile(`(?i)end of tonight`), handleEndOfDay},
	{regexp.MustCompile(`(?i)(?:this )?weekend`), handleWeekend},
}

func idiomData(due time.Time, withTime bool) Data {
	d := Data{
		DueDate:      due.Format(dateFormat),
		ReminderDate: due.Format(dateFormat),
	}
	if withTime {
		d.DueTime = due.Format(clockFormat)
		d.ReminderTime = due.Format(clockFormat)
	}
	return d
}

// "end of the hour" -> HH:59 of the current hour; at exactly HH:59 the
// target rolls to the next hour so the result is never in the past.
func handleEndOfHour(text string, re *regexp.Regexp, ref time.Time) (string, Data) {
	due := time.Date(ref.Year(), ref.Month(), ref.Day(), ref.Hour(), 59, 0, 0, ref.Location())
	if !due.After(ref) {
		due = due.Add(time.Hour)
	}
	return re.ReplaceAllString(text, "at "+due.Format(clockFormat)), idiomData(due, true)
}

// "top of the hour" -> start of the next hour, strictly in the future.
func handleTopOfHour(text string, re *regexp.Regexp, ref time.Time) (string, Data) {
	due := time.Date(ref.Year(), ref.Month(), ref.Day(), ref.Hour(), 0, 0, 0, ref.Location())
	if !due.After(ref) {
		due = due.Add(time.Hour)
	}
	return re.ReplaceAllString(text, "at "+due.Format(clockFormat)), idiomData(due, true)
}

// "end of the day" / "end of tonight" -> 23:59 of the reference day.
func handleEndOfDay(text string, re *regexp.Regexp, ref time.Time) (string, Data) {
	due := time.Date(ref.Year(), ref.Month(), ref.Day(), 23, 59, 0, 0, ref.Location())
	return re.ReplaceAllString(text, "at 23:59"), idiomData(due, true)
}

// "(this) weekend" -> next Saturday 09:00. On a Saturday at or past noon the
// weekend has already started, so the target rolls to Sunday; before noon it
// is today.
func handleWeekend(text string, re *regexp.Regexp, ref time.Time) (string, Data) {
	daysUntil := (int(time.Saturday) - int(ref.Weekday()) + 7) % 7
	target := ref
	if daysUntil == 0 {
		if ref.Hour() >= 12 {
			target = ref.AddDate(0, 0, 1)
		}
	} else {
		target = ref.AddDate(0, 0, daysUntil)
	}
	due := time.Date(target.Year(), target.Month(), target.Day(), 9, 0, 0, 0, ref.Location())
	return re.ReplaceAllString(text, "on "+due.Format(dateFormat)), idiomData(due, true)
}
