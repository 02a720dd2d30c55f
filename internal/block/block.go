package block

import (
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/teemow/tasknotes/internal/tasks"
)

// Filter is the parse result for one block, scoped to a single render
// pass.
type Filter struct {
	// From and To bound the due-date window; nil means unbounded.
	From *time.Time
	To   *time.Time

	// List is the verbatim list selector. Resolution against real lists
	// is the task client's concern.
	List string

	// Visibility is the completion-status mode.
	Visibility tasks.Visibility
}

// keyLine matches one "key: value" line. Unmatched lines are silently
// ignored.
var keyLine = regexp.MustCompile(`(?i)^(from|to|date|list|completed)\s*:\s*(.+)$`)

// filenameDate matches a DD.MM.YYYY substring in a file name.
var filenameDate = regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{4})`)

// Parse parses a block body into a Filter. contextPath is the path of
// the note containing the block; its final segment feeds the
// "date: filename" form. Parsing never fails: malformed lines and
// unparseable values leave the corresponding fields at their defaults.
func Parse(source, contextPath string) Filter {
	filter := Filter{Visibility: tasks.VisibilityIncomplete}

	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := keyLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key := strings.ToLower(m[1])
		value := strings.TrimSpace(m[2])

		switch key {
		case "list":
			filter.List = value
		case "completed":
			filter.Visibility = parseVisibility(value)
		case "date":
			if d, ok := resolveDate(value, contextPath); ok {
				from := startOfDay(d)
				to := endOfDay(d)
				filter.From = &from
				filter.To = &to
			}
		case "from":
			if t, ok := parseInstant(value); ok {
				filter.From = &t
			}
		case "to":
			if t, ok := parseInstant(value); ok {
				filter.To = &t
			}
		}
	}

	return filter
}

func parseVisibility(value string) tasks.Visibility {
	switch strings.ToLower(value) {
	case "all", "both":
		return tasks.VisibilityAll
	case "true", "yes", "1":
		return tasks.VisibilityCompleted
	default:
		return tasks.VisibilityIncomplete
	}
}

// resolveDate resolves a date value to a calendar day. The filename
// forms scan the context path; "today" is the current local date;
// anything else goes through the explicit formats.
func resolveDate(value, contextPath string) (time.Time, bool) {
	switch strings.ToLower(value) {
	case "{{filename}}", "filename":
		return dateFromFilename(contextPath)
	case "today":
		return time.Now(), true
	default:
		return parseInstant(value)
	}
}

// dateFromFilename extracts a DD.MM.YYYY date from the final path
// segment. Day and month get a range check only; further calendar
// validation is left to time.Date's normalization.
func dateFromFilename(contextPath string) (time.Time, bool) {
	base := path.Base(strings.ReplaceAll(contextPath, "\\", "/"))
	m := filenameDate.FindStringSubmatch(base)
	if m == nil {
		return time.Time{}, false
	}
	d := atoi2(m[1])
	mo := atoi2(m[2])
	y := atoi4(m[3])
	if d < 1 || d > 31 || mo < 1 || mo > 12 {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.Local), true
}

// instantLayouts are the accepted explicit formats. A single space
// between date and time is normalized to "T" before matching.
var instantLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// parseInstant parses an explicit date or date-time in local time.
func parseInstant(value string) (time.Time, bool) {
	v := strings.Replace(strings.TrimSpace(value), " ", "T", 1)
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// atoi2 and atoi4 convert fixed-width digit groups already validated by
// the regexp.
func atoi2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

func atoi4(s string) int {
	n := 0
	for i := 0; i < 4; i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
