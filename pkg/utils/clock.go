package utils

import "time"

const ClockLayout = "15:04"

// IsClock reports whether s is a zero padded 24h HH:MM time.
func IsClock(s string) bool {
	if len(s) != len(ClockLayout) {
		return false
	}
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}
