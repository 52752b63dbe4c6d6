package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ErrInputCancelled is returned when a prompt is abandoned through its context.
var ErrInputCancelled = errors.New("input canceled")

// Prompter asks questions on a terminal. Reads honour context cancellation
// so Ctrl+C during a prompt exits cleanly.
type Prompter struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
	mu     sync.Mutex
}

// NewPrompter reads answers from in and writes questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		panic("reader cannot be nil")
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{in: in, out: out, reader: bufio.NewReader(in)}
}

// ReadLine reads one trimmed line.
func (p *Prompter) ReadLine(ctx context.Context) (string, error) {
	return p.await(ctx, func() (string, error) {
		line, err := p.reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", err
		}
		return strings.TrimSpace(line), nil
	})
}

func (p *Prompter) await(ctx context.Context, read func() (string, error)) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		value, err := read()
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		// The read goroutine finishes on its own once input arrives.
		return "", ErrInputCancelled
	case res := <-resultCh:
		return res.value, res.err
	}
}

// Ask prints label and returns the answer, or def when the answer is empty.
func (p *Prompter) Ask(ctx context.Context, label, def string) (string, error) {
	prompt := label
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", label, def)
	}
	if _, err := fmt.Fprint(p.out, FormatPrompt(prompt)); err != nil {
		return "", err
	}
	answer, err := p.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question. Anything but y or yes is a no.
func (p *Prompter) Confirm(ctx context.Context, label string) (bool, error) {
	answer, err := p.Ask(ctx, label+" (y/N)", "")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// Secret asks for a value without echoing it when reading from a terminal.
func (p *Prompter) Secret(ctx context.Context, label string) (string, error) {
	if _, err := fmt.Fprint(p.out, FormatPrompt(label)); err != nil {
		return "", err
	}
	f, ok := p.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return p.ReadLine(ctx)
	}
	value, err := p.await(ctx, func() (string, error) {
		b, err := term.ReadPassword(int(f.Fd()))
		return string(b), err
	})
	_, _ = fmt.Fprintln(p.out)
	return strings.TrimSpace(value), err
}
