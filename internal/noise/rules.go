package noise

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule is one operator-tunable pattern with an optional reason tag for the
// run report.
type Rule struct {
	Pattern string `yaml:"pattern"`
	Reason  string `yaml:"reason,omitempty"`
}

// Rules holds both pattern sets. They are data, not code: operators adjust
// them per chat without rebuilding the tool.
type Rules struct {
	LowValue []Rule `yaml:"low_value"`
	OffTopic []Rule `yaml:"off_topic"`
}

// DefaultRules returns the built-in pattern sets: standalone acknowledgments,
// filler, emoji-only, and bare link tokens on the low-value side, moderation
// redirects on the off-topic side. A rule's reason tags its rejections in the
// run report; rules without one report their set's default.
func DefaultRules() Rules {
	return Rules{
		LowValue: []Rule{
			{Pattern: `^(agreed|agree|this|that|yes|no|yep|nope|maybe|ok|okay|lol|haha|hmm|cool|nice|great|\+1|-1|same|\^|indeed|true|false|correct|wrong|right|exactly|precisely|ofc|of course|def|definitely|absolutely)$`},
			{Pattern: `^(thanks|thank you|ty|thx|tnx|thanks!|ty!)$`},
			{Pattern: `^([hm]+|[ha]+|[lo]+|[eh]+)$`},
			{Pattern: `^[kw]{1,3}$`},
			{Pattern: `^[.!?…,:;]+$`},
			// Nothing but emoji and filler punctuation.
			{Pattern: `^[\s\W]*[\x{1F300}-\x{1F6FF}\x{1F700}-\x{1F77F}\x{1F780}-\x{1F7FF}\x{1F800}-\x{1F8FF}\x{1F900}-\x{1F9FF}\x{1FA00}-\x{1FA6F}\x{1FA70}-\x{1FAFF}\x{2702}-\x{27B0}\x{24C2}-\x{1F251}]+[\s\W]*$`, Reason: ReasonEmojiOnly},
			// Solely a rewritten link token like [example.com], the residue
			// of a URL-only message from the first pass.
			{Pattern: `^\s*\[[\w.]+\]\s*$`, Reason: ReasonLinkOnly},
		},
		OffTopic: []Rule{
			{Pattern: `^(/off|/price)\b`},
			{Pattern: `please (take|move|continue) this (discussion|conversation|topic) to`},
			{Pattern: `this (discussion|conversation|topic) belongs in`},
			{Pattern: `there('s| is) a (channel|group|chat) for (this|that|price)`},
			{Pattern: `let's (keep|stay) on topic`},
			{Pattern: `this is (off|getting off) topic`},
		},
	}
}

// LoadRules reads a YAML rule file. A section present in the file replaces
// the corresponding default set; an absent section keeps the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read rules: %w", err)
	}

	var loaded Rules
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return rules, fmt.Errorf("decode rules: %w", err)
	}

	if len(loaded.LowValue) > 0 {
		rules.LowValue = loaded.LowValue
	}
	if len(loaded.OffTopic) > 0 {
		rules.OffTopic = loaded.OffTopic
	}
	return rules, nil
}
