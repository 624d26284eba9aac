package seed

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

	"github.com/masbusiness/business-os/internal/seeder"
)

var errNotInteractive = errors.New("confirmation needs an interactive terminal, rerun with --force")

// lineReader feeds lines of r to every prompt through one goroutine. A
// prompt abandoned on ctx leaves its pending line for the next prompt
// instead of a second reader racing for stdin. The goroutine ends at EOF.
type lineReader struct {
	r     io.Reader
	once  sync.Once
	lines chan string
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: r, lines: make(chan string, 1)}
}

func (l *lineReader) start() {
	go func() {
		defer close(l.lines)
		sc := bufio.NewScanner(l.r)
		for sc.Scan() {
			l.lines <- sc.Text()
		}
	}()
}

// next returns the next line. ok is false once the input is exhausted.
func (l *lineReader) next(ctx context.Context) (line string, ok bool, err error) {
	l.once.Do(l.start)
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case line, ok = <-l.lines:
		return line, ok, nil
	}
}

// terminalConfirmer asks on out and reads the answer from in. Only "y" or
// "yes" approve. A real stdin that is not a terminal cannot answer, which is
// an error rather than a silent decline.
func terminalConfirmer(in io.Reader, out io.Writer) seeder.Confirmer {
	lines := newLineReader(in)
	return func(ctx context.Context, prompt string) (bool, error) {
		if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
			return false, errNotInteractive
		}

		_, _ = fmt.Fprintf(out, "%s [y/N]: ", prompt)

		line, _, err := lines.next(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}
