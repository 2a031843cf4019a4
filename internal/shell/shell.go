// Package shell implements the job-control core: the read/eval loop, the
// builtin commands, external command dispatch, and the reaper that keeps the
// job table in step with child state changes.
package shell

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"jobsh/internal/config"
	"jobsh/internal/history"
	"jobsh/internal/job"
	"jobsh/internal/parser"
	"jobsh/internal/sio"
)

type Shell struct {
	cfg    *config.Config
	hist   *history.History
	notify *sio.Notifier

	// mu serializes every job-table access, main loop and reaper alike.
	// fgDone is broadcast by the reaper after each table mutation so a
	// blocked foreground wait can re-check its condition; Wait releases
	// mu and sleeps as one step, which is what keeps the wait race-free.
	mu     sync.Mutex
	fgDone *sync.Cond
	table  *job.Table

	sigs           chan os.Signal
	interruptCount int
}

func New(cfg *config.Config) (*Shell, error) {
	hist, err := history.New(cfg.HistoryFile)
	if err != nil {
		return nil, fmt.Errorf("error loading history: %w", err)
	}

	s := &Shell{
		cfg:    cfg,
		hist:   hist,
		notify: sio.Stdout(),
		table:  job.NewTable(cfg.MaxJobs),
		sigs:   make(chan os.Signal, 16),
	}
	s.fgDone = sync.NewCond(&s.mu)
	return s, nil
}

// Run drives the read/eval loop until EOF or quit.
func (s *Shell) Run() error {
	signal.Notify(s.sigs, syscall.SIGINT, syscall.SIGTSTP, syscall.SIGCHLD)
	defer signal.Stop(s.sigs)

	go s.handleSignals()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      s.prompt(),
		HistoryFile: s.cfg.HistoryFile,
	})
	if err != nil {
		return fmt.Errorf("error initializing readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if s.interruptCount++; s.interruptCount >= 2 {
				fmt.Println("\nForced exit")
				break
			}
			continue
		} else if err == io.EOF {
			break
		} else if err != nil {
			return fmt.Errorf("error reading line: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.hist.Add(line)
		s.Eval(line)
		s.interruptCount = 0
	}

	return s.hist.Save()
}

func (s *Shell) prompt() string {
	if s.cfg.Prompt == "" {
		return ""
	}
	return color.New(color.FgGreen, color.Bold).Sprint(s.cfg.Prompt)
}

// Eval parses and executes one command line. Per-command failures are
// reported as single lines and never propagate; the loop must outlive them.
func (s *Shell) Eval(line string) {
	result, tok := parser.Parse(line)
	if result == parser.ResultError || result == parser.ResultEmpty {
		return
	}

	switch tok.Builtin {
	case parser.BuiltinQuit:
		s.quit()
	case parser.BuiltinJobs:
		s.jobs(tok)
	case parser.BuiltinBg:
		s.resumeJob(tok, job.Background)
	case parser.BuiltinFg:
		s.resumeJob(tok, job.Foreground)
	case parser.BuiltinHistory:
		s.showHistory()
	default:
		s.runExternal(result, tok, line)
	}
}

func (s *Shell) logf(format string, args ...interface{}) {
	if s.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "jobsh: "+format+"\n", args...)
	}
}
