package model

import "fmt"

// FormatDuration renders seconds as H:MM:SS with unpadded hours.
// Negative values keep their sign in front of the magnitude.
func FormatDuration(seconds int) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%s%d:%02d:%02d", sign, hours, minutes, secs)
}
