package transcript

import (
	"regexp"
	"strings"
)

// BotFilterOptions configure the automated-sender classifier.
type BotFilterOptions struct {
	Enabled   bool
	KnownBots []string // display names or sender ids always treated as bots
}

// servicePatterns match text that group-management bots produce. Operators
// tune the sender list instead; these cover the announcements themselves.
var servicePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)hey there .+, and welcome to`),
	regexp.MustCompile(`(?i)please remember to follow the rules`),
	regexp.MustCompile(`(?i)this group has rules that you agreed to`),
	regexp.MustCompile(`(?i)has joined the group`),
	regexp.MustCompile(`(?i)has left the group`),
	regexp.MustCompile(`(?i)has been banned`),
	regexp.MustCompile(`(?i)has been removed`),
}

// IsBotLike classifies a message as automated. It is a pure predicate over
// the message; false positives are acceptable and tuned via KnownBots. With
// the filter disabled it always reports false.
func IsBotLike(m Message, opts BotFilterOptions) bool {
	if !opts.Enabled {
		return false
	}

	for _, bot := range opts.KnownBots {
		if bot != "" && (m.From == bot || m.FromID == bot) {
			return true
		}
	}

	if strings.HasSuffix(strings.ToLower(m.From), "bot") {
		return true
	}

	for _, re := range servicePatterns {
		if re.MatchString(m.Text) {
			return true
		}
	}

	return isCommandOnly(m.Text)
}

// isCommandOnly reports whether the text consists entirely of /command
// tokens, e.g. "/price" or "/ban /mute".
func isCommandOnly(text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !strings.HasPrefix(f, "/") || len(f) < 2 {
			return false
		}
	}
	return true
}
