package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Comparison names accepted by CheckBusinessDays.
const (
	CompareNDaysAgo       = "n_days_ago"
	CompareNDaysAfter     = "n_days_after"
	CompareWithinNDaysAgo = "within_n_days_ago"
	CompareLessThan       = "less_than"
	CompareGreaterThan    = "greater_than"
	ComparePassed         = "passed"
	CompareTodayOrFuture  = "today_or_future"
)

// AddBusinessDays shifts start by n business days (Mon-Fri). The start day
// itself counts as day 1, so AddBusinessDays(d, 1) is d for a weekday start.
// A weekend start first rolls to the nearest weekday in the direction of
// travel: forward when n > 0, backward when n < 0.
func AddBusinessDays(start time.Time, n int) time.Time {
	if n == 0 {
		return start
	}

	dir := 1
	if n < 0 {
		dir = -1
		n = -n
	}

	d := start
	for isWeekend(d) {
		d = d.AddDate(0, 0, dir)
	}
	for remaining := n - 1; remaining > 0; remaining-- {
		d = d.AddDate(0, 0, dir)
		for isWeekend(d) {
			d = d.AddDate(0, 0, dir)
		}
	}
	return d
}

// CheckBusinessDays evaluates a named comparison between date and the window
// n business days around today. Only calendar dates are compared; the time of
// day is ignored. An unknown comparison name is an invalid-argument error.
func CheckBusinessDays(date time.Time, n int, comparison string, today time.Time) (bool, error) {
	// Civil dates are anchored in UTC so values parsed in different
	// locations still compare by calendar day.
	d := civil(date)
	t := civil(today)
	ago := civil(AddBusinessDays(today, -n))
	after := civil(AddBusinessDays(today, n))

	switch comparison {
	case CompareNDaysAgo:
		return d.Equal(ago), nil
	case CompareNDaysAfter:
		return d.Equal(after), nil
	case CompareWithinNDaysAgo:
		return !d.Before(ago) && !d.After(t), nil
	case CompareLessThan:
		return !d.Before(ago), nil
	case CompareGreaterThan:
		return d.Before(ago), nil
	case ComparePassed:
		return d.Before(t), nil
	case CompareTodayOrFuture:
		return !d.Before(t), nil
	default:
		return false, fmt.Errorf("invalid comparison %q", comparison)
	}
}

// datePattern matches day-first dates like 25/8/24, 25-08-2024 or 25.8.2024.
var datePattern = regexp.MustCompile(`(\d{1,2})[.\-/]+(\d{1,2})[.\-/]+(\d{4}|\d{2})`)

// ExtractDate scans free text for a day-first date and parses it. Two-digit
// years are expanded by prefixing "20". The second return is false when no
// pattern matches or the matched digits do not form a real date.
func ExtractDate(text string, loc *time.Location) (time.Time, bool) {
	m := datePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(expandYear(m[3]))

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	// time.Date normalises overflow (e.g. 31/2 becomes 2-3 March); reject it.
	if d.Day() != day || d.Month() != time.Month(month) || d.Year() != year {
		return time.Time{}, false
	}
	return d, true
}

func expandYear(s string) string {
	if len(s) == 2 {
		return "20" + s
	}
	return s
}

// cellLayouts are the formats attempted for date cells such as DateIssued and
// QIDDate. Day-first layouts are tried before ISO ones.
var cellLayouts = []string{
	"2/1/2006",
	"02/01/2006",
	"2-1-2006",
	"02-01-2006",
	"2/1/06",
	"02/01/06",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2/1/2006 15:04",
	"02/01/2006 15:04:05",
	"2-Jan-06",
	"02-Jan-06",
	"2 Jan 2006",
}

// ParseCellDate parses a spreadsheet date cell, trying the known layouts in
// order. It never returns an error; a false second return means the value is
// absent or in no recognised format.
func ParseCellDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range cellLayouts {
		if d, err := time.ParseInLocation(layout, value, loc); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// DateOnly truncates a timestamp to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
