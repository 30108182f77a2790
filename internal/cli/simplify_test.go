package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lazypower/chatsift/internal/transcript"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns what
// it wrote.
func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	old := os.Stdout
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = old
	data, readErr := io.ReadAll(r)
	r.Close()

	if runErr != nil {
		t.Fatalf("run: %v", runErr)
	}
	if readErr != nil {
		t.Fatalf("read captured stdout: %v", readErr)
	}
	return string(data)
}

func TestSimplifyStdoutIsCleanTranscript(t *testing.T) {
	input := filepath.Join(t.TempDir(), "export.json")
	doc := `{
  "name": "Test Group",
  "messages": [
    {"id": 1, "type": "message", "date_unixtime": "1700000000", "from": "Alice", "from_id": "user1", "text": "first thought"},
    {"id": 2, "type": "message", "date_unixtime": "1700000060", "from": "Alice", "from_id": "user1", "text": "second thought"}
  ]
}`
	if err := os.WriteFile(input, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	out := captureStdout(t, func() error {
		return runSimplify(simplifyCmd, []string{input})
	})

	// With no output file the stream on stdout must be a valid next-stage
	// input: header first, every following line a parsable record, and no
	// run-report lines mixed in.
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("stdout has %d lines, want header + 1 entry:\n%s", len(lines), out)
	}
	if lines[0] != transcript.Header {
		t.Fatalf("first stdout line = %q, want the format header", lines[0])
	}
	ln, err := transcript.ParseLine(lines[1])
	if err != nil {
		t.Fatalf("stdout line not parsable: %v", err)
	}
	if ln.ID != 1 || ln.Text != "first thought second thought" {
		t.Errorf("parsed line = %+v", ln)
	}
}
