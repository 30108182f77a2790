package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lazypower/chatsift/internal/config"
	"github.com/lazypower/chatsift/internal/export"
	"github.com/lazypower/chatsift/internal/transcript"
)

var (
	simplifyMarkdown      string
	simplifyNoMarkdown    bool
	simplifyNoConsolidate bool
	simplifyNoBotFilter   bool
	simplifyWindow        int64
	simplifyMaxLength     int
	simplifyURLMode       string
	simplifyKnownBots     []string
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify <export.json> [output.txt]",
	Short: "Convert a chat export into a simplified pipe-delimited transcript",
	Long: "Simplify reads a structured chat export, drops service and bot\n" +
		"messages, rewrites URLs, consolidates rapid sequential messages from\n" +
		"the same sender, and writes one pipe-delimited record per line.\n" +
		"Without an output file the lines go to stdout.",
	Args: cobra.RangeArgs(1, 2),
	RunE: runSimplify,
}

func init() {
	defs := config.Default().Simplify
	f := simplifyCmd.Flags()
	f.StringVar(&simplifyMarkdown, "markdown", "", "Write a human-readable markdown version to this file")
	f.BoolVar(&simplifyNoMarkdown, "no-markdown", false, "Skip the default markdown companion file")
	f.BoolVar(&simplifyNoConsolidate, "no-consolidate", !defs.Consolidate, "Do not consolidate sequential messages")
	f.BoolVar(&simplifyNoBotFilter, "no-bot-filter", !defs.BotFilter, "Do not filter out bot/machine messages")
	f.Int64Var(&simplifyWindow, "window", defs.Window, "Consolidation time window in seconds")
	f.IntVar(&simplifyMaxLength, "max-length", defs.MaxLength, "Max consolidated text length in characters")
	f.StringVar(&simplifyURLMode, "url-mode", defs.URLMode, "URL handling: preserve, replace, or domain")
	f.StringSliceVar(&simplifyKnownBots, "known-bot", defs.KnownBots, "Sender name or id always treated as a bot (repeatable)")
}

func runSimplify(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := ""
	if len(args) > 1 {
		output = args[1]
	}

	if !transcript.ValidURLMode(simplifyURLMode) {
		return fmt.Errorf("invalid url mode %q (want preserve, replace, or domain)", simplifyURLMode)
	}

	// When the transcript itself streams to stdout, the run report moves to
	// stderr so a redirected stream stays a valid stage-2 input.
	report := io.Writer(os.Stdout)
	if output == "" {
		report = os.Stderr
	}

	doc, err := export.Load(input)
	if err != nil {
		return err
	}

	msgs, stats := export.Normalize(doc)
	total := stats.Total

	fmt.Fprintf(report, "Extracted %s messages with text content\n", humanize.Comma(int64(len(msgs))))
	if stats.Malformed > 0 {
		fmt.Fprintf(report, "Skipped %s malformed records\n", humanize.Comma(int64(stats.Malformed)))
	}

	botOpts := transcript.BotFilterOptions{
		Enabled:   !simplifyNoBotFilter,
		KnownBots: simplifyKnownBots,
	}
	kept := make([]transcript.Message, 0, len(msgs))
	botCount := 0
	for _, m := range msgs {
		if transcript.IsBotLike(m, botOpts) {
			botCount++
			continue
		}
		kept = append(kept, m)
	}
	if botOpts.Enabled {
		fmt.Fprintf(report, "Removed %s bot/machine messages (%.1f%% of total)\n",
			humanize.Comma(int64(botCount)), pct(botCount, total))
	}

	mode := transcript.URLMode(simplifyURLMode)
	urlCount := 0
	for i := range kept {
		text, changed := transcript.TransformURLs(kept[i].Text, mode)
		if changed {
			urlCount++
		}
		kept[i].Text = text
	}
	if urlCount > 0 {
		fmt.Fprintf(report, "Transformed URLs in %s messages\n", humanize.Comma(int64(urlCount)))
	}

	entries := transcript.Consolidate(kept, transcript.ConsolidateOptions{
		Enabled:   !simplifyNoConsolidate,
		Window:    simplifyWindow,
		MaxLength: simplifyMaxLength,
	})
	if !simplifyNoConsolidate && len(kept) > 0 {
		fmt.Fprintf(report, "Consolidated %s messages into %s entries (%.1f%% reduction)\n",
			humanize.Comma(int64(len(kept))), humanize.Comma(int64(len(entries))),
			pct(len(kept)-len(entries), len(kept)))
	}

	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, transcript.Header)
	for _, e := range entries {
		lines = append(lines, transcript.RenderLine(e))
	}
	content := strings.Join(lines, "\n") + "\n"

	if output == "" {
		fmt.Print(content)
	} else {
		if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		reportSizeReduction(report, input, output)
		fmt.Fprintf(report, "Processed %s input records into %s output lines\n",
			humanize.Comma(int64(total)), humanize.Comma(int64(len(entries))))
	}

	mdPath := simplifyMarkdown
	if mdPath == "" && !simplifyNoMarkdown && output != "" {
		mdPath = strings.TrimSuffix(output, filepath.Ext(output)) + ".md"
	}
	if mdPath != "" {
		name := doc.Name
		if name == "" {
			name = "Chat Export"
		}
		md := transcript.RenderMarkdown(name, entries)
		if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}
		fmt.Fprintf(report, "Markdown version saved to %s\n", mdPath)
	}

	return nil
}

func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// reportSizeReduction compares input and output sizes. Best effort: a stat
// failure only suppresses the report.
func reportSizeReduction(w io.Writer, input, output string) {
	in, err := os.Stat(input)
	if err != nil {
		return
	}
	out, err := os.Stat(output)
	if err != nil {
		return
	}
	saved := in.Size() - out.Size()
	fmt.Fprintf(w, "File size: %s -> %s bytes (%s saved, %.1f%%)\n",
		humanize.Comma(in.Size()), humanize.Comma(out.Size()),
		humanize.Comma(saved), pct(int(saved), int(in.Size())))
}
