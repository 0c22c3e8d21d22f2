package assembly

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// buildPlainText is the guaranteed terminal assembly step: fields grouped by
// category under underlined section headers. Pure string building.
func buildPlainText(req *Request, now time.Time) []byte {
	var sb strings.Builder

	sb.WriteString(req.ProgramName + "\n")
	sb.WriteString(strings.Repeat("=", headerWidth(req.ProgramName)) + "\n\n")

	for _, sec := range groupSections(req.Contents) {
		sb.WriteString("\n" + sec.Title + "\n")
		sb.WriteString(strings.Repeat("-", headerWidth(sec.Title)) + "\n\n")
		for _, item := range sec.Items {
			sb.WriteString("▪ " + item.Content + "\n\n")
		}
	}

	fmt.Fprintf(&sb, "\n\n작성일: %s\n", now.Format("2006. 1. 2."))

	return []byte(sb.String())
}

// headerWidth sizes an underline to the title's character count, not its
// byte count, so Korean titles are not triple-underlined.
func headerWidth(title string) int {
	n := utf8.RuneCountInString(title)
	if n < 1 {
		return 1
	}
	return n
}
