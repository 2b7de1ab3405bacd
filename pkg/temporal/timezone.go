package temporal

import (
	"regexp"
	"strings"
)

// US timezone abbreviations recognized inline ("3pm CST").
var tzAbbrevRe = regexp.MustCompile(`(?i)\b(CST|CDT|PST|PDT|EST|EDT|MST|MDT)\b`)

// City-name phrases ("houston time") mapped to the abbreviation they imply.
// Ordered so scanning is deterministic; first match wins.
var cityTimezones = []struct {
	city   string
	abbrev string
	re     *regexp.Regexp
}{
	{city: "houston", abbrev: "CST"},
	{city: "chicago", abbrev: "CST"},
	{city: "dallas", abbrev: "CST"},
	{city: "austin", abbrev: "CST"},
	{city: "la", abbrev: "PST"},
	{city: "los angeles", abbrev: "PST"},
	{city: "san francisco", abbrev: "PST"},
	{city: "seattle", abbrev: "PST"},
	{city: "new york", abbrev: "EST"},
	{city: "nyc", abbrev: "EST"},
	{city: "boston", abbrev: "EST"},
	{city: "miami", abbrev: "EST"},
}

func init() {
	for i := range cityTimezones {
		cityTimezones[i].re = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(cityTimezones[i].city) + `\s+time\b`)
	}
}

// extractTimezone pulls an explicit timezone mention out of text. The matched
// phrase is removed from the returned text so it does not confuse the
// date/time scans. Returns ("", text, false) when nothing matched.
func extractTimezone(text string) (abbrev string, cleaned string, found bool) {
	if m := tzAbbrevRe.FindString(text); m != "" {
		cleaned = strings.TrimSpace(tzAbbrevRe.ReplaceAllString(text, ""))
		return strings.ToUpper(m), cleaned, true
	}

	for _, ct := range cityTimezones {
		if ct.re.MatchString(text) {
			cleaned = strings.TrimSpace(ct.re.ReplaceAllString(text, ""))
			return ct.abbrev, cleaned, true
		}
	}

	return "", text, false
}
