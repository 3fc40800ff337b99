package forumscope

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Keeps word characters and basic punctuation, drops everything else.
	specialCharRe = regexp.MustCompile(`[^\w\s.,!?;:\-()]`)
	digitsRe      = regexp.MustCompile(`\d+`)
)

// CleanText collapses runs of whitespace to single spaces, strips
// characters outside word characters and basic punctuation, and trims
// the result.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = specialCharRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// AnonymizeUsername masks a username for privacy. Names of one or two
// characters become "User_" followed by as many X characters; longer
// names keep their first and last characters with X filling the middle.
// Length is measured in runes so multi-byte names mask correctly.
func AnonymizeUsername(username string) string {
	runes := []rune(username)
	if len(runes) <= 2 {
		return "User_" + strings.Repeat("X", len(runes))
	}
	return string(runes[0]) + strings.Repeat("X", len(runes)-2) + string(runes[len(runes)-1])
}

// ParseRelativeTime resolves phrases like "5 minutes ago" against now
// and returns an RFC 3339 timestamp. Phrases it cannot resolve are
// returned lowercased and otherwise untouched, so downstream consumers
// can still see the original wording.
func ParseRelativeTime(text string, now time.Time) string {
	text = strings.ToLower(text)

	if strings.Contains(text, "ago") {
		var unit time.Duration
		switch {
		case strings.Contains(text, "minute"):
			unit = time.Minute
		case strings.Contains(text, "hour"):
			unit = time.Hour
		case strings.Contains(text, "day"):
			unit = 24 * time.Hour
		}
		if unit != 0 {
			if m := digitsRe.FindString(text); m != "" {
				n, err := strconv.Atoi(m)
				if err == nil {
					return now.Add(-time.Duration(n) * unit).Format(time.RFC3339)
				}
			}
		}
	}

	return text
}

// timestampLayouts are the absolute formats ParseTimestamp accepts, in
// order of preference.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// ParseTimestamp parses a timestamp string in any of the accepted
// absolute formats. The second return value reports whether parsing
// succeeded; relative phrases and free text fail.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

var urlRe = regexp.MustCompile(`(?i)^https?://(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|localhost|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})(?::\d+)?(?:/?|[/?]\S+)$`)

// ValidateURL reports whether rawURL looks like a well-formed HTTP or
// HTTPS URL.
func ValidateURL(rawURL string) bool {
	return urlRe.MatchString(rawURL)
}
