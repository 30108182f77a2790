package transcript

import (
	"strings"
	"unicode/utf8"
)

// joinSep separates member texts inside a consolidated entry.
const joinSep = "\n"

// ConsolidateOptions bound the merging of sequential messages.
type ConsolidateOptions struct {
	Enabled   bool
	Window    int64 // max seconds between adjacent members
	MaxLength int   // max accumulated text length in characters
}

// group is the open accumulator threaded through the consolidation pass.
type group struct {
	ids      []int64
	unixtime int64 // first member
	from     string
	fromID   string
	texts    []string
	textLen  int   // accumulated rune length including separators
	last     int64 // unixtime of the most recently added member
}

func newGroup(m Message) *group {
	return &group{
		ids:      []int64{m.ID},
		unixtime: m.Unixtime,
		from:     m.From,
		fromID:   m.FromID,
		texts:    []string{m.Text},
		textLen:  utf8.RuneCountInString(m.Text),
		last:     m.Unixtime,
	}
}

// accepts reports whether m may join the group: same sender, within the time
// window of the last member, and the accumulated text plus separator stays
// under the cap. A message longer than the cap by itself can never join,
// which also keeps an oversized seed a singleton.
func (g *group) accepts(m Message, opts ConsolidateOptions) bool {
	if m.FromID != g.fromID {
		return false
	}
	if m.Unixtime-g.last > opts.Window {
		return false
	}
	return g.textLen+len(joinSep)+utf8.RuneCountInString(m.Text) <= opts.MaxLength
}

func (g *group) add(m Message) {
	g.ids = append(g.ids, m.ID)
	g.texts = append(g.texts, m.Text)
	g.textLen += len(joinSep) + utf8.RuneCountInString(m.Text)
	g.last = m.Unixtime
}

func (g *group) entry() Entry {
	return Entry{
		IDs:      g.ids,
		Unixtime: g.unixtime,
		From:     g.from,
		FromID:   g.fromID,
		Text:     strings.Join(g.texts, joinSep),
	}
}

func singleton(m Message) Entry {
	return Entry{
		IDs:      []int64{m.ID},
		Unixtime: m.Unixtime,
		From:     m.From,
		FromID:   m.FromID,
		Text:     m.Text,
	}
}

// Consolidate merges contiguous same-sender runs into entries in a single
// forward pass. Input order is preserved; the input is assumed already
// ordered by id/time and is never sorted. With consolidation disabled every
// message becomes its own entry.
func Consolidate(msgs []Message, opts ConsolidateOptions) []Entry {
	if len(msgs) == 0 {
		return nil
	}

	if !opts.Enabled {
		out := make([]Entry, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, singleton(m))
		}
		return out
	}

	var out []Entry
	cur := newGroup(msgs[0])
	for _, m := range msgs[1:] {
		if cur.accepts(m, opts) {
			cur.add(m)
			continue
		}
		out = append(out, cur.entry())
		cur = newGroup(m)
	}
	return append(out, cur.entry())
}
