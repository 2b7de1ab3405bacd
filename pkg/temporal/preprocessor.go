package temporal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

const (
	dateFormat  = "2006-01-02"
	clockFormat = "15:04"
)

// Preprocessor recognizes a fixed catalog of temporal phrases in task text
// ahead of the LLM. Everything it cannot resolve deterministically is left
// for the LLM fallback, signalled through the confidence score.
type Preprocessor struct {
	location *time.Location
	nlp      *when.Parser
}

// NewPreprocessor creates a preprocessor for the given IANA timezone string,
// e.g. "America/Los_Angeles". The timezone anchors relative expressions when
// no reference time is supplied.
func NewPreprocessor(timezone string) (*Preprocessor, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	nlp := when.New(nil)
	nlp.Add(en.All...)
	nlp.Add(common.All...)

	return &Preprocessor{location: loc, nlp: nlp}, nil
}

// Preprocess scans text for temporal expressions relative to referenceTime.
// A zero referenceTime means "now" in the preprocessor's timezone.
//
// Unresolvable input is not an error: the extraction comes back with
// confidence 0 and empty data, and the caller routes to the LLM.
func (p *Preprocessor) Preprocess(text string, referenceTime time.Time) Extraction {
	if referenceTime.IsZero() {
		referenceTime = time.Now().In(p.location)
	} else {
		referenceTime = referenceTime.In(p.location)
	}

	ext := Extraction{OriginalText: text, ProcessedText: text}

	// Timezone mention first, stripped so it cannot collide with the
	// date/time scans below.
	working := text
	tzContext, cleaned, found := extractTimezone(working)
	if found {
		working = cleaned
	}

	// Exact idioms win outright; first match short-circuits.
	for _, idiom := range idiomCatalog {
		if !idiom.re.MatchString(working) {
			continue
		}
		processed, data := idiom.handle(working, idiom.re, referenceTime)
		data.TimezoneContext = tzContext
		ext.ProcessedText = processed
		ext.Data = data
		ext.Confidence = ConfidenceIdiom
		return ext
	}

	sp := extractSpans(working)
	if sp.datePart == "" && sp.timePart == "" {
		// A lone timezone mention is not a usable extraction; report
		// no match so confidence and data stay consistent.
		return ext
	}

	data, ok := p.resolveSpans(sp, referenceTime)
	if !ok {
		return ext
	}
	data.TimezoneContext = tzContext

	ext.Data = data
	ext.ProcessedText = buildProcessedText(working, sp, data)
	ext.Confidence = ConfidenceGeneric
	if data.ReminderTime != "" && data.ReminderTime != data.DueTime {
		ext.Confidence = ConfidenceDistinctRemind
	}
	return ext
}

// spans are the raw phrase fragments found by the category scans.
type spans struct {
	datePart      string
	timePart      string
	reminderPart  string
	minutesBefore int // > 0 when the reminder phrase is "N minutes before"
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\btomorrow\b`),
	regexp.MustCompile(`(?i)\btoday\b`),
	regexp.MustCompile(`(?i)\byesterday\b`),
	regexp.MustCompile(`(?i)\bnext \w+`),
	regexp.MustCompile(`(?i)\bthis \w+`),
	regexp.MustCompile(`(?i)\bon \w+`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}\b`),
	regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec) \d{1,2}(?:st|nd|rd|th)?\b`),
}

var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bat \d{1,2}(?::\d{2})?\s*(?:am|pm)?\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s*(?:am|pm)\b`),
	regexp.MustCompile(`(?i)\b(?:before|after) \w+`),
	regexp.MustCompile(`(?i)\b\d{1,2}\s*(?:hours?|minutes?)\s*(?:before|after|from now)\b`),
}

// The "N minutes before" form is checked ahead of the absolute reminder
// patterns: it is always relative to the due time, and the absolute pattern
// would otherwise capture the bare minute count as a clock value.
var (
	reminderMinutesBeforeRe = regexp.MustCompile(`(?i)remind.*?(\d+)\s*minutes?\s*before`)
	reminderAbsolutePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)remind\s+\w+\s+(?:at\s+)?(\d{1,2}(?::\d{2})?\s*(?:am|pm)?)`),
		regexp.MustCompile(`(?i)(\d{1,2}(?::\d{2})?\s*(?:am|pm)?)\s+reminder`),
	}
)

func extractSpans(text string) spans {
	var sp spans

	for _, re := range datePatterns {
		if m := re.FindString(text); m != "" {
			sp.datePart = m
			break
		}
	}

	for _, re := range timePatterns {
		if m := re.FindString(text); m != "" {
			sp.timePart = m
			break
		}
	}

	if m := reminderMinutesBeforeRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			sp.minutesBefore = n
			sp.reminderPart = m[0]
			return sp
		}
	}

	for _, re := range reminderAbsolutePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			sp.reminderPart = m[1]
			break
		}
	}

	return sp
}

// resolveSpans turns the found spans into concrete fields. Returns false when
// the combined span could not be parsed; that is a non-match, not an error.
func (p *Preprocessor) resolveSpans(sp spans, ref time.Time) (Data, bool) {
	var data Data

	due, ok := p.parseDateTime(sp.datePart, sp.timePart, ref)
	if !ok {
		return Data{}, false
	}

	data.DueDate = due.Format(dateFormat)
	if sp.timePart != "" {
		data.DueTime = due.Format(clockFormat)
	}

	switch {
	case sp.minutesBefore > 0:
		// Relative reminder only makes sense against a resolved due time.
		if data.DueTime != "" {
			rem := due.Add(-time.Duration(sp.minutesBefore) * time.Minute)
			data.ReminderDate = rem.Format(dateFormat)
			data.ReminderTime = rem.Format(clockFormat)
		}
	case sp.reminderPart != "":
		if rem, ok := p.parseDateTime("", sp.reminderPart, ref); ok {
			data.ReminderTime = rem.Format(clockFormat)
			data.ReminderDate = data.DueDate
		}
	}

	// "Remind me" defaults to "remind at the due time" absent other signal.
	if data.DueTime != "" && data.ReminderTime == "" {
		data.ReminderTime = data.DueTime
		data.ReminderDate = data.DueDate
	}

	return data, true
}

var slashDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`)

// parseDateTime resolves a date span plus optional time span against ref.
// Numeric M/D dates are handled directly (the NL parser has no rule for
// them); everything else goes through the NL parser with a prefer-future
// adjustment for ambiguous relative phrases.
func (p *Preprocessor) parseDateTime(datePart, timePart string, ref time.Time) (time.Time, bool) {
	if m := slashDateRe.FindStringSubmatch(datePart); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}, false
		}
		base := time.Date(ref.Year(), time.Month(month), day, 0, 0, 0, 0, p.location)
		if base.Before(startOfDay(ref)) {
			base = base.AddDate(1, 0, 0)
		}
		if timePart == "" {
			return base, true
		}
		// The date is already pinned; parse the clock against its midnight
		// so no prefer-future adjustment can move the day.
		result, err := p.nlp.Parse(timePart, base)
		if err != nil || result == nil {
			return time.Time{}, false
		}
		return fixTwelveAM(result.Time, timePart), true
	}

	combined := strings.TrimSpace(strings.TrimSpace(datePart) + " " + strings.TrimSpace(timePart))
	if combined == "" {
		return time.Time{}, false
	}
	return p.parseWithNLP(combined, datePart, timePart, ref)
}

func (p *Preprocessor) parseWithNLP(text, datePart, timePart string, base time.Time) (time.Time, bool) {
	result, err := p.nlp.Parse(text, base)
	if err != nil || result == nil {
		return time.Time{}, false
	}
	t := fixTwelveAM(result.Time, timePart)
	return p.preferFuture(t, base, datePart, timePart), true
}

var twelveAMRe = regexp.MustCompile(`(?i)\b12(?::\d{2})?\s*am\b`)

// fixTwelveAM corrects the NL parser's reading of the 12am hour: "12:10am"
// means ten past midnight, not noon. 12pm already parses as noon and stays
// put.
func fixTwelveAM(t time.Time, timePart string) time.Time {
	if t.Hour() == 12 && twelveAMRe.MatchString(timePart) {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, t.Minute(), 0, 0, t.Location())
	}
	return t
}

// preferFuture resolves ambiguous relative phrases forward, matching the
// "prefer future dates" parser setting: a bare clock time that already passed
// today means tomorrow. Explicit backward references ("yesterday") stay put.
func (p *Preprocessor) preferFuture(t, ref time.Time, datePart, timePart string) time.Time {
	if !t.Before(ref) {
		return t
	}
	if strings.Contains(strings.ToLower(datePart), "yesterday") {
		return t
	}
	if datePart == "" && timePart != "" {
		return t.AddDate(0, 0, 1)
	}
	return t
}

var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

// buildProcessedText removes the matched spans and appends one bracketed
// canonical annotation, e.g. "check batteries [on 2025-07-11 at 15:00]".
func buildProcessedText(text string, sp spans, data Data) string {
	processed := text
	for _, part := range []string{sp.datePart, sp.timePart} {
		if part != "" {
			processed = strings.Replace(processed, part, "", 1)
		}
	}
	processed = multiSpaceRe.ReplaceAllString(strings.TrimSpace(processed), " ")

	var parts []string
	if data.DueDate != "" {
		parts = append(parts, "on "+data.DueDate)
	}
	if data.DueTime != "" {
		parts = append(parts, "at "+data.DueTime)
	}
	if len(parts) == 0 {
		return processed
	}
	return strings.TrimSpace(processed + " [" + strings.Join(parts, " ") + "]")
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
