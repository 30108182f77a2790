package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lazypower/chatsift/internal/chunk"
	"github.com/lazypower/chatsift/internal/config"
	"github.com/lazypower/chatsift/internal/transcript"
)

var (
	splitPrefix   string
	splitMaxChars int
	splitSummary  string
)

var splitCmd = &cobra.Command{
	Use:   "split <input.txt>",
	Short: "Split a transcript into bounded-size chunk files",
	Long: "Split cuts the filtered transcript into sequentially numbered files\n" +
		"of at most --max-chars bytes each, never breaking a line, and reports\n" +
		"the timestamp range each chunk covers.",
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	defs := config.Default().Split
	f := splitCmd.Flags()
	f.StringVar(&splitPrefix, "prefix", defs.Prefix, "Chunk filename prefix")
	f.IntVar(&splitMaxChars, "max-chars", defs.MaxChars, "Maximum bytes per chunk")
	f.StringVar(&splitSummary, "summary", defs.Summary, "Chunk summary CSV path (empty to skip)")
}

func runSplit(cmd *cobra.Command, args []string) error {
	input := args[0]

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	content := string(data)
	if content == "" {
		return fmt.Errorf("no content to split in %s", input)
	}

	trailingNewline := strings.HasSuffix(content, "\n")
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	header := ""
	if transcript.IsHeader(lines[0]) {
		header = lines[0]
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return fmt.Errorf("no content to split in %s", input)
	}

	fmt.Printf("Read %s lines (%s bytes) from %s\n",
		humanize.Comma(int64(len(lines))), humanize.Comma(int64(len(content))), input)

	groups := chunk.Plan(lines, splitMaxChars)
	chunks, err := chunk.Write(groups, header, trailingNewline, chunk.Options{
		Prefix: splitPrefix,
	})
	if err != nil {
		return err
	}

	for _, c := range chunks {
		fmt.Printf("Created %s (%s bytes, %s lines)\n",
			c.File, humanize.Comma(int64(c.Chars)), humanize.Comma(int64(c.Lines)))
		fmt.Printf("  time range: %s to %s (unix %d to %d)\n",
			chunk.FormatUnixtime(c.FirstUnix), chunk.FormatUnixtime(c.LastUnix),
			c.FirstUnix, c.LastUnix)
	}
	fmt.Printf("\nSplit into %d chunks\n", len(chunks))

	if splitSummary != "" {
		if err := chunk.WriteSummary(splitSummary, chunks); err != nil {
			return err
		}
		fmt.Printf("Chunk summary saved to %s\n", splitSummary)
	}

	return nil
}
