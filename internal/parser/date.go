package parser

import (
	"fmt"
	"strconv"
	"time"
)

// parseStatementDate converts the statement's DD.MM.YYYY form into a date at
// noon UTC. Noon keeps a later reformat to a UTC date string from shifting
// the day across timezones.
func parseStatementDate(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("not a statement date: %q", s)
	}
	dd, _ := strconv.Atoi(s[0:2])
	mm, _ := strconv.Atoi(s[3:5])
	yy, _ := strconv.Atoi(s[6:])
	return time.Date(yy, time.Month(mm), dd, 12, 0, 0, 0, time.UTC), nil
}

// FormatDate renders a date in the canonical YYYYMMDD form used by the OFX
// output.
func FormatDate(t time.Time) string {
	return t.UTC().Format("20060102")
}

// FormatDateTime renders a full timestamp, for contexts that need more than
// a day (statement metadata, server timestamps).
func FormatDateTime(t time.Time) string {
	return t.UTC().Format("20060102 15:04:05 UTC")
}
