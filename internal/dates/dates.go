// Package dates parses the free-form due-date text users type into task
// forms and classifies how urgent a task is relative to today.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status is the derived urgency of a due date. It is computed on read and
// never persisted.
type Status int

const (
	StatusUnknown Status = iota
	StatusOverdue
	StatusDueToday
	StatusDueSoon
	StatusOnTime
)

func (s Status) String() string {
	switch s {
	case StatusOverdue:
		return "OVERDUE"
	case StatusDueToday:
		return "DUE_TODAY"
	case StatusDueSoon:
		return "DUE_SOON"
	case StatusOnTime:
		return "ON_TIME"
	default:
		return "UNKNOWN"
	}
}

// Bucket is the dashboard section a task renders in.
type Bucket int

const (
	BucketPast Bucket = iota
	BucketToday
	BucketUpcoming
)

// Layouts tried in order. The non-padded forms accept both "7/9/2025" and
// "07/09/2025".
var dueDateLayouts = []string{
	"2/1/2006",
	"2006-1-2",
	"2-1-2006",
	"2/1/06",
}

// ParseDueDate parses due-date text with "/" or "-" separators. A bare
// zero-padded "DD/MM" assumes the current year. Returns ok=false for empty
// or unrecognizable input; it never panics.
func ParseDueDate(text string) (time.Time, bool) {
	return parseDueDateAt(text, time.Now())
}

func parseDueDateAt(text string, now time.Time) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	candidates := []string{text}
	if len(text) == 5 && strings.Contains(text, "/") {
		candidates = append(candidates, fmt.Sprintf("%s/%d", text, now.Year()))
	}

	for _, candidate := range candidates {
		for _, layout := range dueDateLayouts {
			if d, err := time.Parse(layout, candidate); err == nil {
				return d, true
			}
		}
	}
	return time.Time{}, false
}

// DaysRemaining returns the whole days between today and the due date
// (negative when overdue). ok is false when the text cannot be parsed, in
// which case days is 0 and callers decide the display fallback.
func DaysRemaining(text string) (int, bool) {
	return daysRemainingAt(text, time.Now())
}

func daysRemainingAt(text string, now time.Time) (int, bool) {
	due, ok := parseDueDateAt(text, now)
	if !ok {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(due.Sub(today).Hours() / 24), true
}

// ClassifyDays maps a days-remaining count onto a Status.
func ClassifyDays(days int) Status {
	switch {
	case days < 0:
		return StatusOverdue
	case days == 0:
		return StatusDueToday
	case days <= 3:
		return StatusDueSoon
	default:
		return StatusOnTime
	}
}

// StatusFor classifies due-date text directly. Unparseable text yields
// StatusUnknown rather than being conflated with "due today".
func StatusFor(text string) Status {
	return statusForAt(text, time.Now())
}

func statusForAt(text string, now time.Time) Status {
	days, ok := daysRemainingAt(text, now)
	if !ok {
		return StatusUnknown
	}
	return ClassifyDays(days)
}

// BucketFor assigns due-date text to a dashboard section. Empty or
// unparseable dates sort with the upcoming work.
func BucketFor(text string) Bucket {
	return bucketForAt(text, time.Now())
}

func bucketForAt(text string, now time.Time) Bucket {
	days, ok := daysRemainingAt(text, now)
	switch {
	case !ok:
		return BucketUpcoming
	case days < 0:
		return BucketPast
	case days == 0:
		return BucketToday
	default:
		return BucketUpcoming
	}
}

// FormatDate rewrites numeric day/month/year text as zero-padded
// "DD/MM/YYYY". Anything that is not three numeric parts is returned
// unchanged, so callers can always render the result.
func FormatDate(text string) string {
	parts := strings.Split(strings.ReplaceAll(text, "-", "/"), "/")
	if len(parts) != 3 {
		return text
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return text
		}
		nums[i] = n
	}
	return fmt.Sprintf("%02d/%02d/%04d", nums[0], nums[1], nums[2])
}
