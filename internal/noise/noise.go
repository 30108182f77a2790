// Package noise implements the second-stage filter that drops low-value
// lines from an already-simplified transcript.
package noise

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lazypower/chatsift/internal/transcript"
)

// Rejection reasons, also the keys of the per-run tally.
const (
	ReasonStartID     = "before-start-id"
	ReasonStartDate   = "before-start-date"
	ReasonEmpty       = "empty"
	ReasonLowValue    = "low-value-phrase"
	ReasonOffTopic    = "off-topic"
	ReasonEmojiOnly   = "emoji-only"
	ReasonLinkOnly    = "link-only"
	ReasonBelowMinLen = "below-min-length"
)

// Options hold the per-invocation thresholds.
type Options struct {
	MinLength int   // 0 disables the length floor
	StartID   int64 // 0 disables the id floor
	StartUnix int64 // 0 disables the date floor
}

// Decision is the verdict for one line.
type Decision struct {
	Keep   bool
	Reason string // rejection reason when Keep is false
}

// Engine applies the thresholds and compiled rule sets to parsed lines.
type Engine struct {
	opts     Options
	lowValue []compiledRule
	offTopic []compiledRule
}

// compiledRule pairs a pattern with the reason reported when it rejects a
// line.
type compiledRule struct {
	re     *regexp.Regexp
	reason string
}

// NewEngine compiles the rule sets. Patterns are compiled case-insensitive;
// an invalid pattern is fatal so operators hear about typos up front. A rule
// without its own reason tag reports its set's default.
func NewEngine(rules Rules, opts Options) (*Engine, error) {
	e := &Engine{opts: opts}

	var err error
	if e.lowValue, err = compile(rules.LowValue, ReasonLowValue); err != nil {
		return nil, fmt.Errorf("low-value rule: %w", err)
	}
	if e.offTopic, err = compile(rules.OffTopic, ReasonOffTopic); err != nil {
		return nil, fmt.Errorf("off-topic rule: %w", err)
	}
	return e, nil
}

func compile(rules []Rule, defaultReason string) ([]compiledRule, error) {
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", r.Pattern, err)
		}
		reason := r.Reason
		if reason == "" {
			reason = defaultReason
		}
		out = append(out, compiledRule{re: re, reason: reason})
	}
	return out, nil
}

// Decide applies every filter to one parsed line. All must pass for the line
// to be retained.
func (e *Engine) Decide(ln transcript.Line) Decision {
	if e.opts.StartID > 0 && ln.ID < e.opts.StartID {
		return Decision{Reason: ReasonStartID}
	}
	if e.opts.StartUnix > 0 && ln.Unixtime < e.opts.StartUnix {
		return Decision{Reason: ReasonStartDate}
	}

	text := strings.ToLower(strings.TrimSpace(ln.Text))
	if text == "" {
		return Decision{Reason: ReasonEmpty}
	}

	for _, r := range e.lowValue {
		if r.re.MatchString(text) {
			return Decision{Reason: r.reason}
		}
	}
	for _, r := range e.offTopic {
		if r.re.MatchString(text) {
			return Decision{Reason: r.reason}
		}
	}
	if e.opts.MinLength > 0 && utf8.RuneCountInString(strings.TrimSpace(ln.Text)) < e.opts.MinLength {
		return Decision{Reason: ReasonBelowMinLen}
	}

	return Decision{Keep: true}
}

// Result summarizes one filter run.
type Result struct {
	Header    string   // format comment line, empty if the input had none
	Kept      []string // retained lines, original bytes, input order
	Removed   map[string]int
	Malformed int
}

// Filter runs the engine over raw input lines. The header line passes
// through unfiltered and first; malformed lines are dropped and counted.
func (e *Engine) Filter(lines []string) Result {
	res := Result{Removed: make(map[string]int)}

	for i, raw := range lines {
		if i == 0 && transcript.IsHeader(raw) {
			res.Header = raw
			continue
		}

		ln, err := transcript.ParseLine(raw)
		if err != nil {
			res.Malformed++
			continue
		}

		d := e.Decide(ln)
		if !d.Keep {
			res.Removed[d.Reason]++
			continue
		}
		res.Kept = append(res.Kept, raw)
	}

	return res
}

// ParseStartDate resolves a date floor given as either a Unix timestamp or
// an ISO calendar date. Calendar dates mean midnight UTC of that day, so
// runs are reproducible across machines.
func ParseStartDate(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if isDigits(s) {
		return strconv.ParseInt(s, 10, 64)
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("parse start date %q: %w", s, err)
	}
	return t.Unix(), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
