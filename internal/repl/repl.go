// Package repl is the interactive terminal front end: it prompts for a
// function, prints its derivative and keeps a line history.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/njchilds90/symdiff"
	"github.com/njchilds90/symdiff/internal/config"
)

// LineReader is the part of *liner.State the loop uses.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type REPL struct {
	in       LineReader
	out      io.Writer
	pipeline *symdiff.Pipeline
	prompt   string
	log      *slog.Logger
}

func New(in LineReader, out io.Writer, p *symdiff.Pipeline, prompt string, log *slog.Logger) *REPL {
	if prompt == "" {
		prompt = symdiff.Prompt
	}
	return &REPL{in: in, out: out, pipeline: p, prompt: prompt, log: log}
}

// Loop answers lines until the input ends, the user presses Ctrl+C or ctx
// is cancelled. Blank lines are ignored.
func (r *REPL) Loop(ctx context.Context) error {
	for ctx.Err() == nil {
		line, err := r.in.Prompt(r.prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("repl: reading input: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		reply := r.pipeline.Reply(line)
		r.log.Debug("repl line", slog.String("input", line), slog.String("reply", reply))
		fmt.Fprintln(r.out, reply)
		r.in.AppendHistory(line)
	}
	return nil
}

// Run starts a terminal session on stdin/stdout, loading and saving the
// history file named in cfg.
func Run(ctx context.Context, cfg config.REPLConfig, p *symdiff.Pipeline, log *slog.Logger) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			if _, err := ln.ReadHistory(f); err != nil {
				log.Warn("reading history", slog.String("path", cfg.HistoryFile), slog.String("error", err.Error()))
			}
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(cfg.HistoryFile)
			if err != nil {
				log.Warn("saving history", slog.String("path", cfg.HistoryFile), slog.String("error", err.Error()))
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	return New(ln, os.Stdout, p, cfg.Prompt, log).Loop(ctx)
}
