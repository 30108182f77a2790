package transcript

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RenderMarkdown produces the human-readable companion document: one block
// per entry with sender, date, member ids, and quoted text.
func RenderMarkdown(chatName string, entries []Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Messages from %q\n\n", chatName)
	b.WriteString("_Generated for easy reading and reference._\n\n---\n\n")

	for _, e := range entries {
		if len(e.IDs) == 1 {
			fmt.Fprintf(&b, "### Message ID: %d\n", e.IDs[0])
		} else {
			fmt.Fprintf(&b, "### Message IDs: %s\n", joinIDs(e.IDs))
		}
		fmt.Fprintf(&b, "**From:** %s (%s)\n", orUnknown(e.From), orUnknown(e.FromID))
		fmt.Fprintf(&b, "**Date:** %s\n\n", FormatUnixtime(e.Unixtime))

		// Quote the text, keeping member boundaries as quoted paragraphs.
		quoted := strings.ReplaceAll(e.Text, "\n", "\n> ")
		fmt.Fprintf(&b, "> %s\n\n---\n\n", quoted)
	}

	return b.String()
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// FormatUnixtime renders a timestamp in UTC so output does not depend on the
// operator's machine.
func FormatUnixtime(ts int64) string {
	if ts == 0 {
		return "Unknown date"
	}
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04:05")
}
