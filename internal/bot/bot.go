// Package bot answers derivative requests in Telegram chats over long
// polling.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/njchilds90/symdiff"
	"github.com/njchilds90/symdiff/internal/config"
)

// API is the part of *tgbotapi.BotAPI the bot uses.
type API interface {
	GetUpdates(u tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

const idlePause = 200 * time.Millisecond

type Bot struct {
	api      API
	pipeline *symdiff.Pipeline
	cfg      config.BotConfig
	log      *slog.Logger
}

func New(api API, p *symdiff.Pipeline, cfg config.BotConfig, log *slog.Logger) *Bot {
	return &Bot{api: api, pipeline: p, cfg: cfg, log: log}
}

// Connect authenticates with the Telegram API using token.
func Connect(token string) (*tgbotapi.BotAPI, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("bot: telegram token is empty")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = false
	return api, nil
}

// Run polls for updates until ctx is cancelled. Polling errors are retried
// with a delay between the configured backoff bounds.
func (b *Bot) Run(ctx context.Context) error {
	offset := 0
	idle := idlePause
	if idle > b.cfg.MaxBackoff {
		idle = b.cfg.MaxBackoff
	}

	for {
		if ctx.Err() != nil {
			b.log.Info("polling stopped")
			return nil
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = b.cfg.PollTimeout

		updates, err := b.api.GetUpdates(u)
		if err != nil {
			d := clamp(retryDelayFromError(err), b.cfg.MinBackoff, b.cfg.MaxBackoff)
			b.log.Warn("polling error", slog.String("error", err.Error()), slog.Duration("retry_in", d))
			sleep(ctx, d)
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			b.HandleUpdate(upd)
		}
		if len(updates) == 0 {
			sleep(ctx, idle)
		}
	}
}

// HandleUpdate answers a text message. /start and /help get the usage
// text; anything else is differentiated.
func (b *Bot) HandleUpdate(upd tgbotapi.Update) {
	m := upd.Message
	if m == nil || m.Text == "" {
		return
	}

	var reply string
	switch m.Command() {
	case "start", "help":
		reply = symdiff.HelpText
	default:
		reply = b.pipeline.Reply(m.Text)
	}

	msg := tgbotapi.NewMessage(m.Chat.ID, reply)
	msg.ReplyToMessageID = m.MessageID
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("send failed", slog.Int64("chat_id", m.Chat.ID), slog.String("error", err.Error()))
		return
	}
	b.log.Debug("answered", slog.Int64("chat_id", m.Chat.ID), slog.String("input", m.Text))
}

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) && tgErr.RetryAfter > 0 {
		return time.Duration(tgErr.RetryAfter) * time.Second
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") {
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return time.Second
}

func clamp(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		d = lo
	}
	if d > hi {
		d = hi
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
