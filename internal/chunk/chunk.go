// Package chunk splits a simplified transcript into bounded-size files for
// submission to a context-limited consumer.
package chunk

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Options configure where Write puts the chunks. The size budget lives with
// Plan, which decides the grouping.
type Options struct {
	Prefix string // chunk filename prefix, e.g. "chunk_"
}

// Chunk describes one written piece.
type Chunk struct {
	File      string
	Lines     int
	Chars     int
	FirstUnix int64 // 0 when the boundary line carries no timestamp
	LastUnix  int64
}

// Plan groups whole lines greedily so each group stays within maxChars,
// counting one trailing newline per line. Lines are never split; a single
// line over the budget becomes its own chunk.
func Plan(lines []string, maxChars int) [][]string {
	var groups [][]string
	var current []string
	chars := 0

	for _, line := range lines {
		lineChars := len(line) + 1
		if len(current) > 0 && chars+lineChars > maxChars {
			groups = append(groups, current)
			current = nil
			chars = 0
		}
		current = append(current, line)
		chars += lineChars
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// Write emits one numbered file per group. The header goes only atop the
// first chunk and never counts toward its size. trailingNewline records
// whether the source ended with a newline, so concatenating the chunks in
// order reproduces it byte for byte.
func Write(groups [][]string, header string, trailingNewline bool, opts Options) ([]Chunk, error) {
	chunks := make([]Chunk, 0, len(groups))

	for i, group := range groups {
		name := fmt.Sprintf("%s%03d.txt", opts.Prefix, i+1)

		var b strings.Builder
		if i == 0 && header != "" {
			b.WriteString(header)
			b.WriteByte('\n')
		}
		chars := 0
		for j, line := range group {
			b.WriteString(line)
			chars += len(line) + 1
			if i == len(groups)-1 && j == len(group)-1 && !trailingNewline {
				chars--
				break
			}
			b.WriteByte('\n')
		}

		if err := os.WriteFile(name, []byte(b.String()), 0o644); err != nil {
			return chunks, fmt.Errorf("write chunk %s: %w", name, err)
		}

		first, last := TimeRange(group)
		chunks = append(chunks, Chunk{
			File:      name,
			Lines:     len(group),
			Chars:     chars,
			FirstUnix: first,
			LastUnix:  last,
		})
	}

	return chunks, nil
}

// TimeRange reads the timestamps of a group's first and last lines. A line
// without a parsable timestamp field leaves its bound at zero.
func TimeRange(lines []string) (first, last int64) {
	if len(lines) == 0 {
		return 0, 0
	}
	return lineUnixtime(lines[0]), lineUnixtime(lines[len(lines)-1])
}

func lineUnixtime(line string) int64 {
	parts := strings.SplitN(line, "|", 3)
	if len(parts) < 2 {
		return 0
	}
	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0
	}
	return ts
}

// WriteSummary records each chunk's time coverage as CSV for quick scanning
// of era boundaries.
func WriteSummary(path string, chunks []Chunk) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Chunk", "Start Date", "End Date", "Start Unixtime", "End Unixtime"}); err != nil {
		return err
	}
	for _, c := range chunks {
		rec := []string{
			c.File,
			FormatUnixtime(c.FirstUnix),
			FormatUnixtime(c.LastUnix),
			strconv.FormatInt(c.FirstUnix, 10),
			strconv.FormatInt(c.LastUnix, 10),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// FormatUnixtime renders a timestamp in UTC, or "Unknown" for a missing one.
func FormatUnixtime(ts int64) string {
	if ts == 0 {
		return "Unknown"
	}
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04:05")
}
