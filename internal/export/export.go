// Package export reads structured chat export documents and normalizes their
// records into the pipeline's message form.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cast"

	"github.com/lazypower/chatsift/internal/transcript"
)

// Document is the top level of an export: the chat name and its ordered
// message records.
type Document struct {
	Name     string       `json:"name"`
	Messages []RawMessage `json:"messages"`
}

// RawMessage is one record as exported. Depending on export version, id and
// date_unixtime arrive as JSON numbers or strings, so they are coerced later.
// The text field is polymorphic: a plain string, or an array mixing strings
// with typed fragments (links, mentions, bold spans).
type RawMessage struct {
	Type         string          `json:"type"`
	ID           any             `json:"id"`
	DateUnixtime any             `json:"date_unixtime"`
	From         string          `json:"from"`
	FromID       string          `json:"from_id"`
	Text         json.RawMessage `json:"text"`
}

// fragment is one typed piece of a structured text body.
type fragment struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Stats tallies records dropped during normalization.
type Stats struct {
	Total     int // records in the document
	Service   int // non-message records (joins, pins, calls)
	Empty     int // messages with no text content
	Malformed int // messages missing or mangling mandatory fields
}

// Load reads and decodes an export file. An unreadable file or undecodable
// top-level document is fatal to the run.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	return Parse(data)
}

// Parse decodes an export document from raw bytes.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	return &doc, nil
}

// Normalize converts the document's records into messages, one-to-one,
// skipping service records and records without usable text or mandatory
// fields. Problems never abort the run; they are counted instead.
func Normalize(doc *Document) ([]transcript.Message, Stats) {
	stats := Stats{Total: len(doc.Messages)}
	msgs := make([]transcript.Message, 0, len(doc.Messages))

	for _, raw := range doc.Messages {
		if raw.Type != "message" {
			stats.Service++
			continue
		}

		text := FlattenText(raw.Text)
		if text == "" {
			stats.Empty++
			continue
		}

		id, err := cast.ToInt64E(raw.ID)
		if err != nil {
			stats.Malformed++
			continue
		}
		ts, err := cast.ToInt64E(raw.DateUnixtime)
		if err != nil {
			stats.Malformed++
			continue
		}

		msgs = append(msgs, transcript.Message{
			ID:       id,
			Unixtime: ts,
			From:     raw.From,
			FromID:   raw.FromID,
			Text:     text,
		})
	}

	return msgs, stats
}

// FlattenText collapses a polymorphic text body into one plain string. A
// string body passes through; an array body concatenates fragment text in
// order, with entity fragments contributing their display text.
func FlattenText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return ""
	}

	var out []byte
	for _, item := range items {
		var piece string
		if err := json.Unmarshal(item, &piece); err == nil {
			out = append(out, piece...)
			continue
		}
		var f fragment
		if err := json.Unmarshal(item, &f); err == nil {
			out = append(out, f.Text...)
		}
	}
	return string(out)
}
