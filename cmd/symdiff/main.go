// Command symdiff differentiates functions of x and y written in informal
// notation.
//
//	symdiff                 interactive prompt (same as symdiff repl)
//	symdiff eval "sin2x"    print the derivative of one expression
//	symdiff serve           HTTP tool server
//	symdiff bot             Telegram bot (TELEGRAM_BOT_TOKEN)
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/njchilds90/symdiff"
	"github.com/njchilds90/symdiff/internal/bot"
	"github.com/njchilds90/symdiff/internal/config"
	"github.com/njchilds90/symdiff/internal/repl"
	"github.com/njchilds90/symdiff/internal/server"
)

// errReported marks a failure whose message was already printed.
var errReported = errors.New("reported")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

type app struct {
	configPath string
	cfg        *config.Config
	log        *slog.Logger
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = config.NewLogger(cfg.Log, cmd.ErrOrStderr())
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "symdiff",
		Short:             "Total derivative of f(x, y) in informal notation",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
		RunE:              a.runREPL,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "repl",
			Short: "Interactive prompt",
			Args:  cobra.NoArgs,
			RunE:  a.runREPL,
		},
		&cobra.Command{
			Use:   "eval <expression>",
			Short: "Differentiate one expression and print the result line",
			Args:  cobra.MinimumNArgs(1),
			RunE:  a.runEval,
		},
		a.serveCmd(),
		&cobra.Command{
			Use:   "bot",
			Short: "Run the Telegram bot",
			Args:  cobra.NoArgs,
			RunE:  a.runBot,
		},
	)
	return root
}

func (a *app) runREPL(cmd *cobra.Command, _ []string) error {
	return repl.Run(cmd.Context(), a.cfg.REPL, symdiff.Default(), a.log)
}

func (a *app) runEval(cmd *cobra.Command, args []string) error {
	input := strings.Join(args, " ")
	out := cmd.OutOrStdout()
	if symdiff.IsHelp(input) {
		fmt.Fprintln(out, symdiff.HelpText)
		return nil
	}
	res, err := symdiff.Evaluate(input)
	fmt.Fprintln(out, symdiff.Message(res, err))
	if err != nil {
		return errReported
	}
	return nil
}

func (a *app) serveCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP tool server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != "" {
				a.cfg.Server.Port = port
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}
			return server.New(a.cfg.Server, symdiff.Default(), a.log).Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides config)")
	return cmd
}

func (a *app) runBot(cmd *cobra.Command, _ []string) error {
	api, err := bot.Connect(a.cfg.Bot.Token)
	if err != nil {
		return err
	}
	a.log.Info("telegram bot authorised", slog.String("username", api.Self.UserName))
	return bot.New(api, symdiff.Default(), a.cfg.Bot, a.log).Run(cmd.Context())
}
