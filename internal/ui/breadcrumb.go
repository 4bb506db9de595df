// Package ui provides small terminal presentation helpers.
package ui

import (
	"strings"

	"github.com/muesli/reflow/truncate"
)

// BreadcrumbSeparator joins breadcrumb entries on one line.
const BreadcrumbSeparator = " > "

// Breadcrumb renders a breadcrumb trail as a single line, truncated to
// width. When the full trail does not fit, leading entries are elided so the
// current position stays visible.
func Breadcrumb(entries []string, width int) string {
	if len(entries) == 0 {
		return ""
	}
	line := strings.Join(entries, BreadcrumbSeparator)
	if width < 1 || len(line) <= width {
		return line
	}

	for start := 1; start < len(entries); start++ {
		line = "..." + BreadcrumbSeparator + strings.Join(entries[start:], BreadcrumbSeparator)
		if len(line) <= width {
			return line
		}
	}
	return truncate.StringWithTail(entries[len(entries)-1], uint(width), "...")
}
