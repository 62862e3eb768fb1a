package repl_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symdiff"
	"github.com/njchilds90/symdiff/internal/repl"
)

// script replays lines and then ends with err.
type script struct {
	lines   []string
	err     error
	prompts []string
	history []string
}

func (s *script) Prompt(p string) (string, error) {
	s.prompts = append(s.prompts, p)
	if len(s.lines) == 0 {
		return "", s.err
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *script) AppendHistory(item string) { s.history = append(s.history, item) }

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestLoop(t *testing.T) {
	in := &script{lines: []string{"x^2", "", "sin(", "help"}, err: io.EOF}
	var out bytes.Buffer

	err := repl.New(in, &out, symdiff.Default(), "", discard).Loop(context.Background())
	require.NoError(t, err)

	want := "Производная: d(f)/d(x) = 2x\n" +
		"Ошибка в выражении на позиции 3: '('\n" +
		symdiff.HelpText + "\n" +
		"\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, []string{"x^2", "sin(", "help"}, in.history)
	assert.Len(t, in.prompts, 5)
	assert.Equal(t, symdiff.Prompt, in.prompts[0])
}

func TestLoop_CtrlCExits(t *testing.T) {
	in := &script{lines: []string{"x*y"}, err: liner.ErrPromptAborted}
	var out bytes.Buffer
	require.NoError(t, repl.New(in, &out, symdiff.Default(), "> ", discard).Loop(context.Background()))
	assert.Equal(t, "Производная: d(f)/d(x, y) = x+y\n\n", out.String())
	assert.Equal(t, "> ", in.prompts[0])
}

func TestLoop_ReadError(t *testing.T) {
	boom := errors.New("tty gone")
	in := &script{err: boom}
	err := repl.New(in, io.Discard, symdiff.Default(), "", discard).Loop(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestLoop_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := &script{lines: []string{"x"}}
	require.NoError(t, repl.New(in, io.Discard, symdiff.Default(), "", discard).Loop(ctx))
	assert.Empty(t, in.prompts)
}
