package collect

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"subclash/internal/link"
)

// Options controls how Lines talks to the operator.
type Options struct {
	Prompt      string // printed once before reading
	Terminator  string // case-insensitive keyword that ends input
	Interactive bool   // print a "> " cue before each line
}

type scanResult struct {
	line string
	err  error
	eof  bool
}

// Lines reads candidate links from in until a blank line, the terminator
// keyword, end of input or cancellation of ctx. Cancellation is not an error:
// whatever was collected so far is returned.
func Lines(ctx context.Context, in io.Reader, out io.Writer, opts Options) ([]string, error) {
	if opts.Prompt != "" {
		fmt.Fprintln(out, opts.Prompt)
	}

	results := make(chan scanResult)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case results <- scanResult{line: scanner.Text()}:
			case <-stop:
				return
			}
		}
		select {
		case results <- scanResult{err: scanner.Err(), eof: true}:
		case <-stop:
		}
	}()

	var lines []string
	for {
		if opts.Interactive {
			fmt.Fprint(out, "> ")
		}

		select {
		case <-ctx.Done():
			return lines, nil
		case res := <-results:
			if res.eof {
				if res.err != nil {
					return lines, fmt.Errorf("failed to read input: %w", res.err)
				}
				return lines, nil
			}

			line := link.FixIllegalUrl(res.line)
			if line == "" || isTerminator(line, opts.Terminator) {
				return lines, nil
			}
			lines = append(lines, line)
		}
	}
}

func isTerminator(line, keyword string) bool {
	keyword = strings.TrimSpace(keyword)
	return keyword != "" && strings.EqualFold(line, keyword)
}
