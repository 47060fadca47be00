// Package shell runs the interactive menu over a catalog.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ssargent/frota/pkg/catalog"
	"github.com/ssargent/frota/pkg/storage"
)

const clearSequence = "\033[H\033[2J"

// Session is one interactive run over a catalog. It owns the catalog for
// the duration of Run.
type Session struct {
	cat    *catalog.Catalog
	in     io.Reader
	out    io.Writer
	opts   *options
	styles styles

	lines <-chan string
	done  chan struct{}
}

// New creates a session reading answers from in and writing to out
func New(cat *catalog.Catalog, in io.Reader, out io.Writer, opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if cat == nil {
		cat = catalog.New()
	}

	return &Session{
		cat:    cat,
		in:     in,
		out:    out,
		opts:   o,
		styles: newStyles(out),
	}
}

// Catalog returns the catalog the session works on
func (s *Session) Catalog() *catalog.Catalog {
	return s.cat
}

type action func(ctx context.Context) bool

func (s *Session) actions() map[string]action {
	byName := map[string]action{}
	register := func(a action, names ...string) {
		for _, n := range names {
			byName[n] = a
		}
	}
	register(s.list, "L", "LIST", "LISTAR")
	register(s.search, "P", "SEARCH", "PESQUISAR")
	register(s.add, "A", "ADD", "ADICIONAR")
	register(s.remove, "R", "REMOVE", "REMOVER")
	register(s.save, "G", "SAVE", "GUARDAR")
	return byName
}

func isQuit(choice string) bool {
	switch choice {
	case "T", "QUIT", "EXIT", "TERMINAR":
		return true
	}
	return false
}

// Run shows the menu until the user quits, the input ends or ctx is
// cancelled. None of these is an error.
func (s *Session) Run(ctx context.Context) error {
	s.startReader()
	defer close(s.done)

	s.opts.logger.Debug("session started", "records", s.cat.Len())
	actions := s.actions()

	for ctx.Err() == nil {
		if s.opts.clearScreen {
			fmt.Fprint(s.out, clearSequence)
		}
		fmt.Fprintln(s.out, indent(s.styles.renderMenu(), s.opts.indent))
		fmt.Fprintln(s.out)

		choice, ok := s.prompt(ctx, "OPTION> ")
		if !ok {
			break
		}
		choice = strings.ToUpper(choice)

		if isQuit(choice) {
			break
		}

		act, found := actions[choice]
		if !found {
			s.fail(fmt.Sprintf("Invalid option %q", choice))
			if !s.pause(ctx) {
				break
			}
			continue
		}

		if !act(ctx) || !s.pause(ctx) {
			break
		}
	}

	s.opts.logger.Debug("session ended", "records", s.cat.Len())
	return nil
}

// startReader feeds input lines to the session so prompts can also watch
// the context.
func (s *Session) startReader() {
	lines := make(chan string)
	done := make(chan struct{})
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	s.lines, s.done = lines, done
}

// prompt writes msg and returns the trimmed answer. ok is false once input
// is exhausted or ctx is done.
func (s *Session) prompt(ctx context.Context, msg string) (string, bool) {
	fmt.Fprint(s.out, strings.Repeat(" ", s.opts.indent)+msg)

	if ctx.Err() != nil {
		fmt.Fprintln(s.out)
		return "", false
	}

	select {
	case <-ctx.Done():
		fmt.Fprintln(s.out)
		return "", false
	case line, open := <-s.lines:
		if !open {
			fmt.Fprintln(s.out)
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}

// ask prompts and upper-cases the answer.
func (s *Session) ask(ctx context.Context, msg string) (string, bool) {
	answer, ok := s.prompt(ctx, msg)
	return strings.ToUpper(answer), ok
}

func (s *Session) pause(ctx context.Context) bool {
	if !s.opts.pause {
		return true
	}
	_, ok := s.prompt(ctx, "Press ENTER to continue...")
	return ok
}

func (s *Session) say(text string) {
	fmt.Fprintln(s.out, indent(text, s.opts.indent))
}

func (s *Session) succeed(text string) {
	s.say(s.styles.success.Render(text))
}

func (s *Session) fail(text string) {
	s.say(s.styles.failure.Render(text))
}

// record journals and counts a finished operation.
func (s *Session) record(ctx context.Context, op, plate, detail string, err error) {
	if m := s.opts.metrics; m != nil {
		m.RecordOperation(op, err == nil)
		m.SetCatalogRecords(s.cat.Len())
	}
	if err != nil || s.opts.journal == nil {
		return
	}

	entry := storage.Entry{Op: op, Plate: plate, Detail: detail, At: time.Now().UTC()}
	if _, jerr := s.opts.journal.Append(ctx, entry); jerr != nil {
		s.opts.logger.Warn("failed to journal operation", "op", op, "plate", plate, "error", jerr)
	}
}
