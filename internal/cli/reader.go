package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

type line struct {
	text string
	err  error
}

// LineReader reads trimmed lines from a terminal-like source while honoring
// context cancellation. One goroutine owns the underlying reader, so a line
// that arrives after a canceled read is handed to the next ReadLine instead
// of being lost.
type LineReader struct {
	src   *bufio.Reader
	lines chan line
	start sync.Once
}

// NewLineReader wraps r.
func NewLineReader(r io.Reader) *LineReader {
	if r == nil {
		panic("reader cannot be nil")
	}
	return &LineReader{src: bufio.NewReader(r), lines: make(chan line)}
}

func (r *LineReader) pump() {
	for {
		text, err := r.src.ReadString('\n')
		// A final line without a newline still counts; EOF follows it.
		if errors.Is(err, io.EOF) && text != "" {
			r.lines <- line{text: text}
			continue
		}
		r.lines <- line{text: text, err: err}
		if err != nil {
			close(r.lines)
			return
		}
	}
}

// ReadLine returns the next line with surrounding whitespace removed. It
// returns ErrInputCancelled when ctx is done first and io.EOF once the
// input is exhausted.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}
	r.start.Do(func() { go r.pump() })

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case l, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}
