package helper

import (
	"fmt"
	"time"
)

// FormatLapTime converts a duration to minutes:seconds.milliseconds. Minutes
// are not padded, sub-millisecond precision is truncated.
func FormatLapTime(d time.Duration) string {
	if d < 0 {
		return "-" + FormatLapTime(-d)
	}
	minutes := int(d / time.Minute)
	seconds := int((d % time.Minute) / time.Second)
	milliseconds := int((d % time.Second) / time.Millisecond)
	return fmt.Sprintf("%d:%02d.%03d", minutes, seconds, milliseconds)
}

// FormatGap renders the difference to a reference lap, e.g. "+0.284s".
func FormatGap(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return fmt.Sprintf("+%.3fs", d.Seconds())
}
