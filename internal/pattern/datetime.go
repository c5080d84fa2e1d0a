package pattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The normalizer understands two phrase syntaxes:
//
//  1. compact:   "21jan to 23jan 2026" with a separate "Time: 10 to 18" phrase
//  2. composite: "25/01/2026 7am to 31/01/2026 7am" (separators / - .)
//
// Output timestamps are canonical "YYYY-MM-DD HH:MM". Anything that matches
// neither syntax leaves the period fields unset; parse failures never surface.

var (
	reCompactDates = regexp.MustCompile(`(?i)(\d{1,2})(\w{3})\s*to\s*(\d{1,2})(\w{3})\s*(\d{4})`)
	reCompactTimes = regexp.MustCompile(`(?i)time[:\s-]*(\d{1,2}(?::\d{2})?(?:am|pm)?)\s*to\s*(\d{1,2}(?::\d{2})?(?:am|pm)?)`)
	reComposite    = regexp.MustCompile(`(?i)(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{4})\s*(\d{1,2}(?::\d{2})?(?:am|pm)?)\s*(?:to|till|-)\s*(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{4})\s*(\d{1,2}(?::\d{2})?(?:am|pm)?)`)
	reDuration     = regexp.MustCompile(`(?i)duration[:\s-]*(\d+)\s*days?`)
	reDateSep      = regexp.MustCompile(`[/.\-]`)
)

var monthAbbrevs = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

type period struct {
	start    string
	end      string
	duration int
}

// parsePeriod extracts the booking period from text. ok is false when neither
// timestamp syntax nor an explicit duration phrase is present.
func parsePeriod(text string) (period, bool) {
	var p period

	if m := reCompactDates.FindStringSubmatch(text); m != nil {
		startDay, _ := strconv.Atoi(m[1])
		endDay, _ := strconv.Atoi(m[3])
		year, _ := strconv.Atoi(m[5])
		startMonth := monthNumber(m[2])
		endMonth := monthNumber(m[4])

		startTime, endTime := "0", "0"
		if tm := reCompactTimes.FindStringSubmatch(text); tm != nil {
			startTime, endTime = tm[1], tm[2]
		}
		p.start = canonicalTimestamp(year, startMonth, startDay, startTime)
		p.end = canonicalTimestamp(year, endMonth, endDay, endTime)
	} else if m := reComposite.FindStringSubmatch(text); m != nil {
		var ok1, ok2 bool
		p.start, ok1 = normalizeDatetime(m[1], m[2])
		p.end, ok2 = normalizeDatetime(m[3], m[4])
		if !ok1 || !ok2 {
			p.start, p.end = "", ""
		}
	}

	if p.start != "" && p.end != "" {
		if d, ok := elapsedDays(p.start, p.end); ok {
			p.duration = d
		}
	}

	// Explicit "Duration: N days" backstops a missing or unparseable period.
	if p.duration == 0 {
		if m := reDuration.FindStringSubmatch(text); m != nil {
			if n, ok := parseInt(m[1]); ok && n > 0 {
				p.duration = n
			}
		}
	}

	return p, p.start != "" || p.duration > 0
}

// monthNumber maps a three-letter abbreviation via the fixed 12-entry table.
// Unknown abbreviations resolve to January.
func monthNumber(abbrev string) int {
	if n, ok := monthAbbrevs[strings.ToLower(abbrev)]; ok {
		return n
	}
	return 1
}

// normalizeDatetime converts a "D/M/Y" date (separators / - .) plus a time
// token into the canonical form.
func normalizeDatetime(dateStr, timeStr string) (string, bool) {
	parts := reDateSep.Split(dateStr, -1)
	if len(parts) != 3 {
		return "", false
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return "", false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	return canonicalTimestamp(year, month, day, timeStr), true
}

// canonicalTimestamp renders "YYYY-MM-DD HH:MM", zero-padded.
func canonicalTimestamp(year, month, day int, timeStr string) string {
	hour, minute := parseClock(timeStr)
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d", year, month, day, hour, minute)
}

// parseClock accepts "H" and "H:MM" with an optional am/pm suffix.
// 12am maps to hour 0; pm adds 12 except for 12pm itself. An empty token
// defaults to midnight.
func parseClock(timeStr string) (hour, minute int) {
	s := strings.ToLower(strings.TrimSpace(timeStr))
	if s == "" {
		return 0, 0
	}
	isPM := strings.Contains(s, "pm")
	isAM := strings.Contains(s, "am")
	s = strings.TrimSpace(strings.NewReplacer("am", "", "pm", "").Replace(s))

	if h, m, found := strings.Cut(s, ":"); found {
		hour, _ = strconv.Atoi(h)
		minute, _ = strconv.Atoi(m)
	} else if s != "" {
		hour, _ = strconv.Atoi(s)
	}

	if isPM && hour != 12 {
		hour += 12
	} else if isAM && hour == 12 {
		hour = 0
	}
	return hour, minute
}

// elapsedDays computes whole days between two canonical timestamps, floored
// at 1 so a same-day span still counts as one rental day.
func elapsedDays(start, end string) (int, bool) {
	const layout = "2006-01-02 15:04"
	s, err := time.Parse(layout, start)
	if err != nil {
		return 0, false
	}
	e, err := time.Parse(layout, end)
	if err != nil {
		return 0, false
	}
	days := int(e.Sub(s).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days, true
}
