package corpus

import (
	"fmt"
	"unicode/utf8"
)

// TruncateTitle shortens a title for display, keeping its beginning.
// Lengths count characters, not bytes.
func TruncateTitle(title string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	n := utf8.RuneCountInString(title)
	if n <= maxLen {
		return title
	}
	if maxLen < 4 {
		return string([]rune(title)[:maxLen])
	}
	return string([]rune(title)[:maxLen-3]) + "..."
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
