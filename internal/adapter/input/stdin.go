package input

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/jmylchreest/dropmenu/internal/menu"
)

// DefaultPrompt labels the menu built from plain stdin lines.
const DefaultPrompt = "Menu"

// StdinOptions configures how plain lines become a menu.
type StdinOptions struct {
	Prompt    string // Trigger label; defaults to DefaultPrompt
	Separator string // Splits "label<sep>value"; empty keeps whole lines
}

// StdinSource reads menus from standard input.
type StdinSource struct {
	reader io.Reader
	opts   StdinOptions
}

// NewStdinSource creates a new StdinSource reading from os.Stdin.
func NewStdinSource(opts StdinOptions) *StdinSource {
	return &StdinSource{reader: os.Stdin, opts: opts}
}

// NewStdinSourceWithReader creates a new StdinSource with a custom reader.
func NewStdinSourceWithReader(r io.Reader, opts StdinOptions) *StdinSource {
	return &StdinSource{reader: r, opts: opts}
}

// Name returns the source identifier.
func (s *StdinSource) Name() string {
	return "stdin"
}

// Load reads menus from standard input.
// Supports two formats:
//  1. A YAML menu file (a document with a top-level "menus" key)
//  2. One item per line, dmenu style, forming a single menu
func (s *StdinSource) Load(ctx context.Context) (*menu.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		lines []string
		err   error
	}
	done := make(chan result, 1)

	// A blocked read cannot observe ctx, so it runs on its own goroutine.
	go func() {
		lines, err := s.readLines()
		done <- result{lines: lines, err: err}
	}()

	var lines []string
	select {
	case <-ctx.Done():
		return nil, &SourceError{
			Source:  "stdin",
			Message: "gave up waiting for stdin",
			Err:     ctx.Err(),
		}
	case r := <-done:
		if r.err != nil {
			return nil, &SourceError{
				Source:  "stdin",
				Message: "failed to read stdin",
				Err:     r.err,
			}
		}
		lines = r.lines
	}

	data := []byte(strings.Join(lines, "\n"))
	if isMenuDocument(data) {
		f, err := menu.Parse(data)
		if err != nil {
			return nil, &SourceError{Source: "stdin", Message: "invalid menu document", Err: err}
		}
		return f, nil
	}

	return s.fromLines(lines)
}

func (s *StdinSource) readLines() ([]string, error) {
	scanner := bufio.NewScanner(s.reader)
	const maxSize = 1024 * 1024 // 1MB max line
	scanner.Buffer(make([]byte, 64*1024), maxSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// fromLines builds a single menu with one item per non-blank line.
func (s *StdinSource) fromLines(lines []string) (*menu.File, error) {
	prompt := s.opts.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	m := menu.Menu{Label: prompt}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		it := menu.Item{Label: line}
		if s.opts.Separator != "" {
			if label, value, ok := strings.Cut(line, s.opts.Separator); ok {
				it.Label = strings.TrimSpace(label)
				it.Value = strings.TrimSpace(value)
			}
		}
		m.Items = append(m.Items, it)
	}

	if len(m.Items) == 0 {
		return nil, &SourceError{Source: "stdin", Message: "no menu items on stdin", Err: menu.ErrNoMenus}
	}

	f, err := menu.New([]menu.Menu{m})
	if err != nil {
		return nil, &SourceError{Source: "stdin", Message: "invalid menu", Err: err}
	}
	return f, nil
}

func isMenuDocument(data []byte) bool {
	for _, line := range bytes.Split(data, []byte("\n")) {
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 || trimmed[0] == '#' || bytes.Equal(trimmed, []byte("---")) {
			continue
		}
		return bytes.HasPrefix(line, []byte("menus:"))
	}
	return false
}
