package console

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestIsAffirmative(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"y", true},
		{"Y", true},
		{"yes", true},
		{"Yolo", true},
		{"", false},
		{"n", false},
		{" y", false},
		{"no", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			if got := IsAffirmative(tt.input); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	in := strings.NewReader("y\n\nnope\nYes")
	var out bytes.Buffer
	c := New(in, &out, &out, false)

	want := []bool{true, false, false, true, false}
	for i, w := range want {
		if got := c.Confirm("Pull?"); got != w {
			t.Errorf("answer %d: expected %v, got %v", i, w, got)
		}
	}

	if strings.Count(out.String(), "Pull? [y/N]: ") != len(want) {
		t.Errorf("expected one prompt per question, got %q", out.String())
	}
}

func TestDebugfOnlyWhenVerbose(t *testing.T) {
	var quiet, loud bytes.Buffer
	New(strings.NewReader(""), &quiet, &quiet, false).Debugf("  [STEP] %s", "fetch")
	New(strings.NewReader(""), &loud, &loud, true).Debugf("  [STEP] %s", "fetch")

	if quiet.Len() != 0 {
		t.Errorf("expected no output when not verbose, got %q", quiet.String())
	}
	if loud.String() != "  [STEP] fetch\n" {
		t.Errorf("expected newline-terminated line, got %q", loud.String())
	}
}

func TestReadLine(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("/srv/wiki\r\n"), &out, &out, false)

	line, err := c.ReadLine("Enter MediaWiki installation path: ")
	if err != nil {
		t.Fatal(err)
	}
	if line != "/srv/wiki" {
		t.Errorf("expected trimmed path, got %q", line)
	}

	if _, err := c.ReadLine("again: "); err == nil {
		t.Error("expected an error at end of input")
	}
}

func TestSetOutputFileMirrors(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out, &out, false)
	path := filepath.Join(t.TempDir(), "logs", "run.log")

	if err := c.SetOutputFile(path); err != nil {
		t.Fatal(err)
	}
	c.Infof("checking %d\n", 3)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	c.Infoln("after close")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "checking 3\n" {
		t.Errorf("unexpected log file contents %q", data)
	}
	if out.String() != "checking 3\nafter close\n" {
		t.Errorf("unexpected stdout contents %q", out.String())
	}
}

func TestSetOutputFileRecordsPromptsAndAnswers(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("y\nn\n"), &out, &out, false)
	path := filepath.Join(t.TempDir(), "run.log")

	if err := c.SetOutputFile(path); err != nil {
		t.Fatal(err)
	}
	if !c.Confirm("Pull updates for 'Cite'") {
		t.Error("expected first answer to confirm")
	}
	if c.Confirm("Pull updates for 'Echo'") {
		t.Error("expected second answer to decline")
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "Pull updates for 'Cite' [y/N]: y\nPull updates for 'Echo' [y/N]: n\n"
	if string(data) != want {
		t.Errorf("unexpected log file contents %q, want %q", data, want)
	}
	if out.String() != "Pull updates for 'Cite' [y/N]: Pull updates for 'Echo' [y/N]: " {
		t.Errorf("unexpected stdout contents %q", out.String())
	}
}

// interleaveReader records which prompt was most recently written when each
// read happens, so a read that belongs to another prompt is detectable.
type interleaveReader struct {
	mu     sync.Mutex
	out    *bytes.Buffer
	reads  []string
	answer string
}

func (r *interleaveReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	text := r.out.String()
	r.reads = append(r.reads, text[strings.LastIndex(text, "<")+1:])
	return copy(p, r.answer), nil
}

func TestConfirmSerializesPromptAndRead(t *testing.T) {
	out := &bytes.Buffer{}
	reader := &interleaveReader{out: out, answer: "y\n"}

	c := New(reader, out, out, true)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Debugf("  [STEP] worker %d", i)
			if !c.Confirm(fmt.Sprintf("<repo-%d>", i)) {
				t.Errorf("worker %d: expected confirmation", i)
			}
			c.Debugf("  [INFO] worker %d done", i)
		}(i)
	}
	wg.Wait()

	if len(reader.reads) != 8 {
		t.Fatalf("expected 8 reads, got %d", len(reader.reads))
	}
	for _, r := range reader.reads {
		if !strings.HasPrefix(r, "repo-") || !strings.HasSuffix(r, "> [y/N]: ") {
			t.Errorf("read happened while another write was pending: %q", r)
		}
	}
}
