package utils

import (
	"strconv"
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// MillisID returns the string form of t in epoch milliseconds. Request
// and payment ids use this scheme, same as the legacy frontend's
// Date.now(). Not collision-proof under rapid succession.
func MillisID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// FormatDate formats t as YYYY-MM-DD in local time.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// ParseDate parses YYYY-MM-DD, falling back to RFC 3339 for timestamps
// written by earlier saves.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(layoutDate, s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
