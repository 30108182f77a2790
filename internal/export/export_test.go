package export

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lazypower/chatsift/internal/transcript"
)

const sampleExport = `{
  "name": "Test Group",
  "messages": [
    {"id": 1, "type": "message", "date_unixtime": "1700000000", "from": "Alice", "from_id": "user1", "text": "hello"},
    {"id": 2, "type": "service", "date_unixtime": "1700000050", "from": "Alice", "from_id": "user1", "text": ""},
    {"id": 3, "type": "message", "date_unixtime": 1700000100, "from": "Bob", "from_id": "user2",
     "text": ["see ", {"type": "link", "text": "https://example.com", "href": "https://example.com"}, " for details"]},
    {"id": 4, "type": "message", "date_unixtime": "1700000200", "from": "Bob", "from_id": "user2", "text": ""},
    {"id": {"bad": true}, "type": "message", "date_unixtime": "1700000300", "from": "Carol", "from_id": "user3", "text": "mangled id"}
  ]
}`

func TestNormalize(t *testing.T) {
	doc, err := Parse([]byte(sampleExport))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Name != "Test Group" {
		t.Errorf("doc.Name = %q", doc.Name)
	}

	msgs, stats := Normalize(doc)

	want := []transcript.Message{
		{ID: 1, Unixtime: 1700000000, From: "Alice", FromID: "user1", Text: "hello"},
		{ID: 3, Unixtime: 1700000100, From: "Bob", FromID: "user2", Text: "see https://example.com for details"},
	}
	if diff := cmp.Diff(want, msgs); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}

	if stats.Total != 5 {
		t.Errorf("stats.Total = %d, want 5", stats.Total)
	}
	if stats.Service != 1 {
		t.Errorf("stats.Service = %d, want 1", stats.Service)
	}
	if stats.Empty != 1 {
		t.Errorf("stats.Empty = %d, want 1", stats.Empty)
	}
	if stats.Malformed != 1 {
		t.Errorf("stats.Malformed = %d, want 1", stats.Malformed)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Error("expected error for undecodable document")
	}
}

func TestFlattenText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain string", `"hello there"`, "hello there"},
		{"empty string", `""`, ""},
		{
			"mixed array",
			`["a ", {"type": "bold", "text": "b"}, " c"]`,
			"a b c",
		},
		{
			"link fragment contributes display text",
			`[{"type": "link", "text": "https://go.dev", "href": "https://go.dev"}]`,
			"https://go.dev",
		},
		{
			"mention fragment",
			`["ping ", {"type": "mention", "text": "@alice"}]`,
			"ping @alice",
		},
		{"number is not text", `42`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FlattenText(json.RawMessage(tt.raw))
			if got != tt.want {
				t.Errorf("FlattenText(%s) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
