// Package repl runs the interactive command loop over an Explorer.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/discochess/repertoire"
	"github.com/discochess/repertoire/internal/report"
)

// DefaultConfirmThreshold is the game count from which the games command
// asks before printing.
const DefaultConfirmThreshold = 10

// Session reads commands from one input and writes to one output.
// A Session is not safe for concurrent use.
type Session struct {
	ex        *repertoire.Explorer
	in        *bufio.Scanner
	out       io.Writer
	width     int
	confirmAt int
	logger    *zap.Logger

	// Input is read on its own goroutine so a blocked read never delays
	// cancellation.
	lines   chan string
	done    chan struct{}
	readErr error
}

// Option configures a Session.
type Option func(*Session)

// WithWidth sets the output width used to wrap the move line.
func WithWidth(width int) Option {
	return func(s *Session) { s.width = width }
}

// WithConfirmThreshold sets the game count from which games asks for
// confirmation.
func WithConfirmThreshold(n int) Option {
	return func(s *Session) { s.confirmAt = n }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates a Session over ex.
func New(ex *repertoire.Explorer, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		ex:        ex,
		in:        bufio.NewScanner(in),
		out:       out,
		width:     report.DefaultWidth,
		confirmAt: DefaultConfirmThreshold,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run prints the starting position and executes commands until quit, the
// end of input or ctx is done. Cancellation ends the session like quit.
// Run must be called at most once.
func (s *Session) Run(ctx context.Context) error {
	defer s.stopReading()
	s.stats()
	for {
		line, err := s.readLine(ctx, s.ex.Color().String()+">>> ")
		if err != nil {
			fmt.Fprintln(s.out)
			if ctx.Err() != nil {
				s.logger.Debug("session interrupted", zap.Error(ctx.Err()))
				return nil
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}
		if quit := s.Execute(ctx, line); quit {
			return nil
		}
	}
}

// Execute runs one command line and reports whether it ends the session.
func (s *Session) Execute(ctx context.Context, line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch {
	case cmd == "quit" || cmd == "exit":
		return true
	case cmd == "back" && len(args) <= 1:
		s.back(args)
	case cmd == "start" && len(args) == 0:
		s.ex.Restart()
		s.stats()
	case cmd == "flip" && len(args) == 0:
		s.ex.Flip()
		s.stats()
	case cmd == "board" && len(args) == 0:
		s.board()
	case cmd == "stats" && len(args) == 0:
		s.stats()
	case cmd == "games" && len(args) == 0:
		s.games(ctx)
	case cmd == "help" && len(args) == 0:
		fmt.Fprintln(s.out, report.Help)
	default:
		s.advance(strings.TrimSpace(line))
	}
	return false
}

func (s *Session) advance(move string) {
	if err := s.ex.Advance(move); err != nil {
		if errors.Is(err, repertoire.ErrInvalidMove) {
			fmt.Fprintln(s.out, "No games found.")
			return
		}
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.stats()
}

func (s *Session) back(args []string) {
	if len(args) == 0 {
		if err := s.ex.Backtrack(); errors.Is(err, repertoire.ErrAlreadyAtStart) {
			fmt.Fprintln(s.out, "Already at the starting position.")
			return
		}
		s.stats()
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		s.back(nil)
		return
	}
	if err := s.ex.BacktrackTo(n); errors.Is(err, repertoire.ErrMoveNumberOutOfRange) {
		fmt.Fprintf(s.out, "No move %d in the current line.\n", n)
		return
	}
	s.stats()
}

func (s *Session) board() {
	diagram, err := s.ex.Board()
	if err != nil {
		s.logger.Warn("drawing board", zap.Error(err))
		fmt.Fprintf(s.out, "Cannot draw the board: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, diagram)
}

func (s *Session) stats() {
	report.Stats(s.out, s.ex, s.width)
}

func (s *Session) games(ctx context.Context) {
	games := s.ex.Games()
	if len(games) == 0 {
		fmt.Fprintln(s.out, "No games.")
		return
	}
	if len(games) >= s.confirmAt && !s.confirm(ctx, fmt.Sprintf("Show all %d games? [y/n] ", len(games))) {
		return
	}
	report.Games(s.out, games)
}

// confirm asks until the answer starts with y or n. The end of input or
// cancellation counts as no.
func (s *Session) confirm(ctx context.Context, prompt string) bool {
	for {
		answer, err := s.readLine(ctx, prompt)
		if err != nil {
			return false
		}
		switch {
		case strings.HasPrefix(strings.ToLower(answer), "y"):
			return true
		case strings.HasPrefix(strings.ToLower(answer), "n"):
			return false
		}
	}
}

// readLine prompts and returns the next trimmed input line. It returns
// io.EOF at the end of input and ctx.Err() once ctx is done.
func (s *Session) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(s.out, prompt)
	select {
	case line, ok := <-s.input():
		if !ok {
			if s.readErr != nil {
				return "", s.readErr
			}
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// input starts the reader goroutine on first use.
func (s *Session) input() <-chan string {
	if s.lines == nil {
		s.lines = make(chan string)
		s.done = make(chan struct{})
		go s.read()
	}
	return s.lines
}

func (s *Session) read() {
	defer close(s.lines)
	for s.in.Scan() {
		select {
		case s.lines <- s.in.Text():
		case <-s.done:
			return
		}
	}
	s.readErr = s.in.Err()
}

// stopReading releases the reader goroutine once it has a line to hand
// over. A read already blocked on the input stays blocked until the input
// yields or the process exits.
func (s *Session) stopReading() {
	if s.done != nil {
		close(s.done)
	}
}
