package task

import (
	"log"
	"regexp"
	"strings"
	"time"
)

// priorityMarkers lists the inline title markers in evaluation order.
// The first marker present in the title wins, even if a later marker
// occurs earlier in the string.
var priorityMarkers = []struct {
	token    string
	priority Priority
}{
	{"!1", PriorityCritical},
	{"!2", PriorityHigh},
	{"!3", PriorityMedium},
	{"!4", PriorityLow},
}

var (
	markerReplacer   = strings.NewReplacer("!1", "", "!2", "", "!3", "", "!4", "")
	deadlineMarkerRe = regexp.MustCompile(`!before\s+(\d{2}[.-]\d{2}[.-]\d{4})`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
)

// MacroResult is the outcome of scanning a title for inline markers.
type MacroResult struct {
	Title    string
	Priority Priority   // empty when no priority marker was present
	Deadline *time.Time // nil when no valid !before marker was present
}

// ParseTitleMacros extracts structured attributes embedded in a free-text
// title. Priority markers !1..!4 map to CRITICAL..LOW; every recognized
// marker is stripped regardless of which one set the priority. A
// "!before DD.MM.YYYY" (or DD-MM-YYYY) marker sets the deadline and is
// removed together with its date token. A marker whose date does not parse
// stays in the title untouched and sets no deadline; the failure is logged
// and never surfaced to the caller. Unrecognized tokens such as !5 are
// left alone. Whitespace left over from removals is collapsed and the
// result is trimmed.
func ParseTitleMacros(title string) MacroResult {
	var res MacroResult

	for _, m := range priorityMarkers {
		if strings.Contains(title, m.token) {
			res.Priority = m.priority
			break
		}
	}
	title = markerReplacer.Replace(title)

	if loc := deadlineMarkerRe.FindStringSubmatchIndex(title); loc != nil {
		dateStr := title[loc[2]:loc[3]]
		if deadline, err := parseMarkerDate(dateStr); err == nil {
			res.Deadline = &deadline
			title = title[:loc[0]] + title[loc[1]:]
		} else {
			log.Printf("[task] invalid date in deadline marker %q: %v", dateStr, err)
		}
	}

	res.Title = strings.TrimSpace(whitespaceRe.ReplaceAllString(title, " "))
	return res
}

// parseMarkerDate parses a marker date, trying the dot format first and
// the dash format second. Mixed separators fail both and are rejected.
func parseMarkerDate(s string) (time.Time, error) {
	deadline, err := time.Parse("02.01.2006", s)
	if err != nil {
		deadline, err = time.Parse("02-01-2006", s)
	}
	return deadline, err
}
