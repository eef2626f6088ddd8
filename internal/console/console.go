// Package console owns the terminal for a run. Every write and every
// prompt-and-read cycle happens under one lock, so output from concurrent
// repository checks never interleaves with a pending question.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type Console struct {
	mu      sync.Mutex
	in      *bufio.Reader
	out     io.Writer
	stdout  io.Writer
	errOut  io.Writer
	verbose bool

	file     *os.File
	filePath string
}

func New(in io.Reader, out, errOut io.Writer, verbose bool) *Console {
	return &Console{
		in:      bufio.NewReader(in),
		out:     out,
		stdout:  out,
		errOut:  errOut,
		verbose: verbose,
	}
}

// Std returns a console bound to the process streams.
func Std(verbose bool) *Console {
	return New(os.Stdin, os.Stdout, os.Stderr, verbose)
}

func (c *Console) Verbose() bool {
	return c.verbose
}

// SetOutputFile mirrors everything written to out into path as well.
// Passing an empty path disables mirroring.
func (c *Console) SetOutputFile(path string) error {
	path = strings.TrimSpace(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if path == c.filePath {
		return nil
	}
	if err := c.closeFileLocked(); err != nil {
		return err
	}
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	c.file = f
	c.filePath = path
	c.out = io.MultiWriter(c.stdout, f)
	return nil
}

func (c *Console) closeFileLocked() error {
	c.out = c.stdout
	if c.file == nil {
		return nil
	}
	err := c.file.Close()
	c.file = nil
	c.filePath = ""
	return err
}

func (c *Console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeFileLocked()
}

func (c *Console) Infof(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Infoln(args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, args...)
}

// Write lets the console stand in for an io.Writer (report rendering).
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.out.Write(p)
}

func (c *Console) Warnf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.errOut, format, args...)
}

// Debugf prints only in verbose mode. A trailing newline is added when
// missing so each call is one or more whole lines.
func (c *Console) Debugf(format string, args ...any) {
	if !c.verbose {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	io.WriteString(c.out, msg)
}

// ReadLine prints prompt and returns the next input line without its
// line ending.
func (c *Console) ReadLine(prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readLineLocked(prompt)
}

func (c *Console) readLineLocked(prompt string) (string, error) {
	io.WriteString(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	// The terminal echoes the answer; the log file needs it written.
	if c.file != nil {
		io.WriteString(c.file, line+"\n")
	}
	return line, nil
}

// Confirm asks a yes/no question. Only an answer starting with y or Y
// counts as yes; empty input and read errors decline.
func (c *Console) Confirm(prompt string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	answer, err := c.readLineLocked(prompt + " [y/N]: ")
	if err != nil {
		return false
	}
	return IsAffirmative(answer)
}

func IsAffirmative(answer string) bool {
	return answer != "" && (answer[0] == 'y' || answer[0] == 'Y')
}
