package template

import "fmt"

// FormatCurrency renders a USD amount with two-decimal fixed point.
func FormatCurrency(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// FormatDuration renders whole seconds as M:SS.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

const defaultCategoryColor = "#6b7280"

var sentimentColors = map[string]string{
	"positive": "#10b981",
	"neutral":  "#f59e0b",
	"negative": "#ef4444",
}

// SentimentColor maps a call sentiment to its display color. Unknown values
// get the neutral gray default, never an error.
func SentimentColor(sentiment string) string {
	if c, ok := sentimentColors[sentiment]; ok {
		return c
	}
	return defaultCategoryColor
}

var callStatusColors = map[string]string{
	"completed": "#10b981",
	"failed":    "#ef4444",
	"no-answer": "#f59e0b",
	"busy":      "#f59e0b",
	"cancelled": "#6b7280",
}

// CallStatusColor maps a call status to its display color, defaulting for
// unrecognized statuses.
func CallStatusColor(status string) string {
	if c, ok := callStatusColors[status]; ok {
		return c
	}
	return defaultCategoryColor
}

var priorityColors = map[string]string{
	"urgent": "#dc2626",
	"high":   "#ea580c",
	"medium": "#d97706",
	"low":    "#65a30d",
}

// PriorityColor maps a lead urgency to its display color, defaulting for
// unrecognized values.
func PriorityColor(urgency string) string {
	if c, ok := priorityColors[urgency]; ok {
		return c
	}
	return defaultCategoryColor
}
