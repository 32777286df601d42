package domain

import "time"

// Storage-layer date formats. Both are fixed, locale-invariant layouts;
// documents written by the mobile clients use exactly these strings, so
// they must not change.
const (
	// DateKeyLayout is the per-date ledger key format, "yy_MM_dd".
	DateKeyLayout = "06_01_02"

	// TimestampLayout is the consumption-time format, "yy_MM_dd HH:mm:ss".
	TimestampLayout = "06_01_02 15:04:05"
)

// FormatDateKey renders a time as a ledger date key.
func FormatDateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// FormatTimestamp renders a time as a consumption timestamp, to second
// granularity.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses a consumption timestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}

// ValidDateKey reports whether s is a well-formed ledger date key.
func ValidDateKey(s string) bool {
	_, err := time.Parse(DateKeyLayout, s)
	return err == nil
}
