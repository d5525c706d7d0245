package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

// shortYearPivot is the first two-digit year read as 19yy by calendar parsing.
const shortYearPivot = 50

// dateMatchers are tried in order; the first match that parses wins.
var dateMatchers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)date[:\s]*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
	regexp.MustCompile(`(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
	regexp.MustCompile(`(?i)(\d{1,2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\w*\s+\d{2,4})`),
	regexp.MustCompile(`(\d{2,4}[/\-.]\d{1,2}[/\-.]\d{1,2})`),
}

var (
	dateCharsRE = regexp.MustCompile(`[^\d/\-.]`)
	monthWordRE = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?`)
)

// genericLayouts stand in for a plain calendar parser. Numeric forms are
// read month first.
var genericLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
	"1/2/2006",
	"1-2-2006",
	"1.2.2006",
	"1/2/06",
	"1-2-06",
	"1.2.06",
	"2 Jan 2006",
	"2 Jan 06",
	"Jan 2 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// ParseDate reads a date token and returns it as YYYY-MM-DD. Slash dates
// follow the preferred format, except that a part above 31 is always taken
// as the year. Anything else goes through generic calendar parsing.
func ParseDate(token string, format DateFormat) (string, bool) {
	clean := strings.TrimSpace(dateCharsRE.ReplaceAllString(token, ""))

	var t time.Time
	ok := false
	if strings.Contains(clean, "/") {
		t, ok = parseSlashDate(clean, format)
	}
	if !ok {
		t, ok = parseGeneric(token)
	}
	if !ok || t.Year() <= 1990 || t.Year() >= 2100 {
		return "", false
	}
	return t.Format(isoLayout), true
}

func parseSlashDate(clean string, format DateFormat) (time.Time, bool) {
	parts := strings.Split(clean, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	var p [3]int
	for i, s := range parts {
		n, err := strconv.Atoi(s)
		if err != nil {
			return time.Time{}, false
		}
		p[i] = n
	}
	p1, p2, p3 := p[0], p[1], p[2]

	switch format {
	case DayMonthYear:
		if p3 > 31 {
			return calendarDate(p3, p2, p1)
		} else if p1 > 31 {
			return calendarDate(p1, p2, p3)
		}
	case MonthDayYear:
		if p3 > 31 {
			return calendarDate(p3, p1, p2)
		} else if p1 > 31 {
			return calendarDate(p1, p3, p2)
		}
	case YearMonthDay:
		if p1 > 31 {
			return calendarDate(p1, p2, p3)
		} else if p3 > 31 {
			return calendarDate(p3, p1, p2)
		}
	}
	return time.Time{}, false
}

// calendarDate builds a date, rejecting values that would roll over into
// another month. Two-digit years land in the 1900s.
func calendarDate(year, month, day int) (time.Time, bool) {
	if year < 100 {
		year += 1900
	}
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func parseGeneric(token string) (time.Time, bool) {
	s := monthWordRE.ReplaceAllStringFunc(token, func(m string) string {
		w := strings.ToLower(m[:3])
		return strings.ToUpper(w[:1]) + w[1:]
	})
	s = strings.Join(strings.Fields(s), " ")
	for _, layout := range genericLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		// Two-digit years 50-99 belong to the 1900s. time.Parse pivots at 69.
		if !strings.Contains(layout, "2006") && t.Year() >= 2000+shortYearPivot {
			t = t.AddDate(-100, 0, 0)
		}
		return t, true
	}
	return time.Time{}, false
}

// findDate runs the date cascade over text.
func findDate(text string, format DateFormat) (string, bool) {
	for _, re := range dateMatchers {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if d, ok := ParseDate(m[1], format); ok {
				return d, true
			}
		}
	}
	return "", false
}

// FormatDateForDisplay renders an ISO date in the preferred layout. Input
// that is not an ISO date comes back unchanged.
func FormatDateForDisplay(iso string, format DateFormat) string {
	t, err := time.Parse(isoLayout, iso)
	if err != nil {
		return iso
	}
	switch format {
	case MonthDayYear:
		return t.Format("01/02/2006")
	case YearMonthDay:
		return t.Format("2006/01/02")
	default:
		return t.Format("02/01/2006")
	}
}
