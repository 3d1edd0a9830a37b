package nfchat

import (
	"fmt"
	"strings"
)

// RenderFooter renders selection position, the active predicate, and the
// source name on one muted line.
func RenderFooter(current, total int, predicate, source string, width int) string {

	left := fmt.Sprintf("%d/%d", current, total)
	right := source
	middle := predicate

	// Truncate long predicates before padding
	room := width - len(left) - len(right) - 4
	if room < 0 {
		room = 0
	}
	if len(middle) > room {
		middle = truncate(middle, room)
	}

	padding := width - len(left) - len(middle) - len(right) - 4
	if padding < 0 {
		padding = 0
	}

	line := left + "  " + middle + strings.Repeat(" ", padding) + "  " + right
	return mutedStyle.Render(line)
}
