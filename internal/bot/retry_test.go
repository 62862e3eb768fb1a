package bot

import (
	"errors"
	"fmt"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestRetryDelayFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want time.Duration
	}{
		{"nil", nil, 0},
		{"telegram retry_after", &tgbotapi.Error{Code: 429, Message: "Too Many Requests", ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: 7}}, 7 * time.Second},
		{"retry after in text", errors.New("Too Many Requests: retry after 12"), 12 * time.Second},
		{"rate limited", errors.New("Too Many Requests"), 3 * time.Second},
		{"timeout", fmt.Errorf("get updates: %w", timeoutErr{}), 2 * time.Second},
		{"other", errors.New("bad gateway"), time.Second},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, retryDelayFromError(c.err))
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, time.Second, clamp(time.Millisecond, time.Second, 15*time.Second))
	assert.Equal(t, 15*time.Second, clamp(time.Minute, time.Second, 15*time.Second))
	assert.Equal(t, 3*time.Second, clamp(3*time.Second, time.Second, 15*time.Second))
}
