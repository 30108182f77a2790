// Package transcript holds the simplified message records shared by the
// pipeline stages and the pipe-delimited line format they exchange.
package transcript

import (
	"fmt"
	"strconv"
	"strings"
)

// Header is the optional comment line documenting the wire format. Downstream
// stages pass it through untouched and never treat it as data.
const Header = "# Format: id|date_unixtime|from|from_id|text"

// Message is a single normalized chat message extracted from an export.
type Message struct {
	ID       int64
	Unixtime int64
	From     string
	FromID   string
	Text     string
}

// Entry is a consolidated record covering one or more messages from the same
// sender. Unixtime is the timestamp of the first member.
type Entry struct {
	IDs      []int64
	Unixtime int64
	From     string
	FromID   string
	Text     string
}

// Line is one parsed record from an intermediate text file. Raw preserves the
// original line so later stages can re-emit it byte-identically.
type Line struct {
	Raw      string
	ID       int64
	Unixtime int64
	From     string
	FromID   string
	Text     string
}

// RenderLine serializes an entry as id|unixtime|from|from_id|text. Pipes in
// the text are escaped and newlines flattened to spaces so the record stays
// on a single line.
func RenderLine(e Entry) string {
	text := strings.ReplaceAll(e.Text, "|", `\|`)
	text = strings.ReplaceAll(text, "\n", " ")
	return fmt.Sprintf("%d|%d|%s|%s|%s", e.IDs[0], e.Unixtime, e.From, e.FromID, text)
}

// ParseLine splits an intermediate line back into its five fields. Lines with
// fewer than five fields are malformed. Non-numeric id or timestamp fields
// parse as zero, matching the tolerant read of the first stage's output.
func ParseLine(raw string) (Line, error) {
	parts := strings.SplitN(raw, "|", 5)
	if len(parts) < 5 {
		return Line{}, fmt.Errorf("expected 5 fields, got %d", len(parts))
	}

	ln := Line{
		Raw:    raw,
		From:   parts[2],
		FromID: parts[3],
		Text:   strings.ReplaceAll(parts[4], `\|`, "|"),
	}
	if id, err := strconv.ParseInt(parts[0], 10, 64); err == nil {
		ln.ID = id
	}
	if ts, err := strconv.ParseInt(parts[1], 10, 64); err == nil {
		ln.Unixtime = ts
	}
	return ln, nil
}

// IsHeader reports whether a line is the format comment.
func IsHeader(line string) bool {
	return strings.HasPrefix(line, "# Format:")
}
