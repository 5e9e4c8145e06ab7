package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// ConfirmPrompt is printed before waiting for an answer.
const ConfirmPrompt = "\nDo you want to search using these values? Y/n   "

// PromptConfirmer asks the user on a terminal. Only "y" (any case) confirms.
type PromptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptConfirmer creates a confirmer reading answers from in.
func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints the prompt and blocks until a line is read or ctx is done.
// End of input without an answer declines.
func (p *PromptConfirmer) Confirm(ctx context.Context) (bool, error) {
	if _, err := fmt.Fprint(p.out, ConfirmPrompt); err != nil {
		return false, err
	}

	type answer struct {
		line string
		err  error
	}
	answers := make(chan answer, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		answers <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a := <-answers:
		if a.err != nil && a.err != io.EOF {
			return false, a.err
		}
		return strings.EqualFold(strings.TrimSpace(a.line), "y"), nil
	}
}

// AutoConfirmer confirms every search.
type AutoConfirmer struct{}

func (AutoConfirmer) Confirm(context.Context) (bool, error) {
	return true, nil
}
