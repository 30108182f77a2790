package transcript

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var defaultOpts = ConsolidateOptions{Enabled: true, Window: 180, MaxLength: 300}

func msg(id, ts int64, fromID, text string) Message {
	names := map[string]string{"alice": "Alice", "bob": "Bob"}
	return Message{ID: id, Unixtime: ts, From: names[fromID], FromID: fromID, Text: text}
}

func TestConsolidateSameSenderRun(t *testing.T) {
	base := int64(1700000000)
	msgs := []Message{
		msg(1, base, "alice", "a"),
		msg(2, base+60, "alice", "b"),
		msg(3, base+90, "alice", "c"),
		msg(4, base+100, "bob", "d"),
	}

	got := Consolidate(msgs, defaultOpts)

	want := []Entry{
		{IDs: []int64{1, 2, 3}, Unixtime: base, From: "Alice", FromID: "alice", Text: "a\nb\nc"},
		{IDs: []int64{4}, Unixtime: base + 100, From: "Bob", FromID: "bob", Text: "d"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Consolidate mismatch (-want +got):\n%s", diff)
	}
}

func TestConsolidateEntryTimestampIsFirstMember(t *testing.T) {
	msgs := []Message{
		msg(1, 1000, "alice", "first"),
		msg(2, 1050, "alice", "second"),
	}

	got := Consolidate(msgs, defaultOpts)
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].Unixtime != 1000 {
		t.Errorf("entry timestamp = %d, want first member's 1000", got[0].Unixtime)
	}
}

func TestConsolidateWindowBreak(t *testing.T) {
	msgs := []Message{
		msg(1, 1000, "alice", "a"),
		msg(2, 1181, "alice", "b"), // 181s gap, just over the window
	}

	got := Consolidate(msgs, defaultOpts)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries across window break, got %d", len(got))
	}
}

func TestConsolidateWindowRelativeToLastMember(t *testing.T) {
	// Each gap is within the window even though the run's total span is not.
	msgs := []Message{
		msg(1, 1000, "alice", "a"),
		msg(2, 1150, "alice", "b"),
		msg(3, 1300, "alice", "c"),
	}

	got := Consolidate(msgs, defaultOpts)
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if diff := cmp.Diff([]int64{1, 2, 3}, got[0].IDs); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestConsolidateLengthCap(t *testing.T) {
	opts := ConsolidateOptions{Enabled: true, Window: 180, MaxLength: 10}
	msgs := []Message{
		msg(1, 1000, "alice", "abcd"), // 4
		msg(2, 1010, "alice", "efg"),  // 4+1+3 = 8, joins
		msg(3, 1020, "alice", "hi"),   // 8+1+2 = 11 > 10, new group
	}

	got := Consolidate(msgs, opts)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Text != "abcd\nefg" {
		t.Errorf("first entry text = %q", got[0].Text)
	}
	if got[1].Text != "hi" {
		t.Errorf("second entry text = %q", got[1].Text)
	}
}

func TestConsolidateOversizedMessageIsSingleton(t *testing.T) {
	long := strings.Repeat("x", 301)
	msgs := []Message{
		msg(1, 1000, "alice", "before"),
		msg(2, 1010, "alice", long),
		msg(3, 1020, "alice", "after"),
	}

	got := Consolidate(msgs, defaultOpts)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries around oversized message, got %d", len(got))
	}
	if got[1].Text != long || len(got[1].IDs) != 1 {
		t.Errorf("oversized message did not stay a singleton: ids=%v", got[1].IDs)
	}
}

func TestConsolidateDisabledIsOneToOne(t *testing.T) {
	msgs := []Message{
		msg(1, 1000, "alice", "a"),
		msg(2, 1010, "alice", "b"),
		msg(3, 1020, "alice", "c"),
	}

	got := Consolidate(msgs, ConsolidateOptions{Enabled: false, Window: 180, MaxLength: 300})

	want := []Entry{
		{IDs: []int64{1}, Unixtime: 1000, From: "Alice", FromID: "alice", Text: "a"},
		{IDs: []int64{2}, Unixtime: 1010, From: "Alice", FromID: "alice", Text: "b"},
		{IDs: []int64{3}, Unixtime: 1020, From: "Alice", FromID: "alice", Text: "c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("disabled consolidation mismatch (-want +got):\n%s", diff)
	}
}

func TestConsolidateEmpty(t *testing.T) {
	if got := Consolidate(nil, defaultOpts); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestConsolidateCountsRunes(t *testing.T) {
	// 5 three-byte runes: rune length 5, byte length 15.
	opts := ConsolidateOptions{Enabled: true, Window: 180, MaxLength: 11}
	msgs := []Message{
		msg(1, 1000, "alice", "ありがとう"),
		msg(2, 1010, "alice", "ありがとう"), // 5+1+5 = 11, fits only if counted in runes
	}

	got := Consolidate(msgs, opts)
	if len(got) != 1 {
		t.Fatalf("expected rune-counted merge into 1 entry, got %d", len(got))
	}
}
