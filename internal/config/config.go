// Package config holds the pipeline option groups and their documented
// defaults. All behavior toggles are per-invocation flags; there is no
// persisted configuration file.
package config

// Config collects the defaults for every stage.
type Config struct {
	Simplify SimplifyConfig
	Noise    NoiseConfig
	Split    SplitConfig
}

// SimplifyConfig controls the first stage: extraction, bot filtering, URL
// rewriting, and consolidation.
type SimplifyConfig struct {
	Consolidate bool
	BotFilter   bool
	Window      int64  // max seconds between consolidated messages
	MaxLength   int    // max accumulated text length in characters
	URLMode     string // "preserve", "replace", or "domain"
	KnownBots   []string
}

// NoiseConfig controls the second stage thresholds.
type NoiseConfig struct {
	MinLength int
	StartID   int64
	StartDate string
	RulesFile string
}

// SplitConfig controls the chunking stage.
type SplitConfig struct {
	Prefix   string
	MaxChars int
	Summary  string
}

// Default returns the documented defaults for every stage.
func Default() Config {
	return Config{
		Simplify: SimplifyConfig{
			Consolidate: true,
			BotFilter:   true,
			Window:      180,
			MaxLength:   300,
			URLMode:     "domain",
			KnownBots:   []string{"Rose", "user609517172"},
		},
		Noise: NoiseConfig{
			MinLength: 0, // disabled
		},
		Split: SplitConfig{
			Prefix:   "chunk_",
			MaxChars: 50000,
			Summary:  "chunk_summary.csv",
		},
	}
}
