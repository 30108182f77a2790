package cli

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lazypower/chatsift/internal/config"
	"github.com/lazypower/chatsift/internal/noise"
)

var (
	noiseMinLength int
	noiseStartID   int64
	noiseStartDate string
	noiseRulesFile string
)

var noiseCmd = &cobra.Command{
	Use:   "noise <input.txt> <output.txt>",
	Short: "Remove low-value lines from a simplified transcript",
	Long: "Noise re-reads the simplified pipe-delimited transcript and drops\n" +
		"lines matching the low-value and off-topic pattern sets, plus lines\n" +
		"below the configured id, date, and length floors. Calendar dates for\n" +
		"--start-date mean midnight UTC of that day.",
	Args: cobra.ExactArgs(2),
	RunE: runNoise,
}

func init() {
	defs := config.Default().Noise
	f := noiseCmd.Flags()
	f.IntVar(&noiseMinLength, "min-length", defs.MinLength, "Reject lines with text shorter than this (0 = disabled)")
	f.Int64Var(&noiseStartID, "start-msg", defs.StartID, "Keep only lines with message id >= this value")
	f.StringVar(&noiseStartDate, "start-date", defs.StartDate, "Keep only lines from this date on (YYYY-MM-DD or unix timestamp)")
	f.StringVar(&noiseRulesFile, "rules", defs.RulesFile, "YAML file overriding the built-in pattern sets")
}

func runNoise(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]

	startUnix, err := noise.ParseStartDate(noiseStartDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; date floor disabled\n", err)
		startUnix = 0
	}

	rules := noise.DefaultRules()
	if noiseRulesFile != "" {
		if rules, err = noise.LoadRules(noiseRulesFile); err != nil {
			return err
		}
	}

	engine, err := noise.NewEngine(rules, noise.Options{
		MinLength: noiseMinLength,
		StartID:   noiseStartID,
		StartUnix: startUnix,
	})
	if err != nil {
		return err
	}

	lines, err := readLines(input)
	if err != nil {
		return err
	}
	fmt.Printf("Read %s lines from %s\n", humanize.Comma(int64(len(lines))), input)

	res := engine.Filter(lines)

	var b strings.Builder
	if res.Header != "" {
		b.WriteString(res.Header)
		b.WriteByte('\n')
	}
	for _, line := range res.Kept {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(output, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	removed := 0
	for _, n := range res.Removed {
		removed += n
	}
	fmt.Printf("\nRemoved %s noise lines (%.1f%% of input):\n",
		humanize.Comma(int64(removed)), pct(removed, len(lines)))
	for _, reason := range sortedReasons(res.Removed) {
		fmt.Printf("  %-18s %s\n", reason, humanize.Comma(int64(res.Removed[reason])))
	}
	if res.Malformed > 0 {
		fmt.Printf("Dropped %s malformed lines\n", humanize.Comma(int64(res.Malformed)))
	}
	fmt.Printf("Kept %s lines, saved to %s\n", humanize.Comma(int64(len(res.Kept))), output)
	reportSizeReduction(os.Stdout, input, output)

	return nil
}

func sortedReasons(counts map[string]int) []string {
	reasons := make([]string, 0, len(counts))
	for r := range counts {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	return reasons
}

// readLines reads a whole text file as lines. The line buffer is generous:
// consolidated entries can run long.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}
	return lines, nil
}
