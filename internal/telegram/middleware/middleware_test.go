package middleware

import (
	"sync"
	"testing"
	"time"

	"github.com/MVVYSHNAV/idea-generator/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	mu    sync.Mutex
	texts []string
}

func (s *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		s.texts = append(s.texts, msg.Text)
	}
	return tgbotapi.Message{}, nil
}

func textUpdate(userID int64) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: userID},
			Chat: &tgbotapi.Chat{ID: userID},
			Text: "hello",
		},
	}
}

func TestRateLimiterAllowsBurstThenBlocks(t *testing.T) {
	sender := &recordingSender{}
	rl := NewRateLimiterMiddleware(6, 2, zap.NewNop(), sender)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	calls := 0
	next := func(tgbotapi.Update) { calls++ }

	for i := 0; i < 4; i++ {
		rl.Handle(textUpdate(1), next)
	}
	assert.Equal(t, 2, calls)
	require.Len(t, sender.texts, 1, "one warning per interval")
	assert.Equal(t, render.ErrRateLimitFirst, sender.texts[0])

	// 6 per minute refills one token every 10s
	now = now.Add(10 * time.Second)
	rl.Handle(textUpdate(1), next)
	assert.Equal(t, 3, calls)
}

func TestRateLimiterIsPerUser(t *testing.T) {
	rl := NewRateLimiterMiddleware(1, 1, zap.NewNop(), &recordingSender{})

	calls := 0
	next := func(tgbotapi.Update) { calls++ }

	rl.Handle(textUpdate(1), next)
	rl.Handle(textUpdate(1), next)
	rl.Handle(textUpdate(2), next)

	assert.Equal(t, 2, calls)
}

func TestRateLimiterPassesUnknownUpdates(t *testing.T) {
	rl := NewRateLimiterMiddleware(1, 1, zap.NewNop(), &recordingSender{})

	called := false
	rl.Handle(tgbotapi.Update{UpdateID: 9}, func(tgbotapi.Update) { called = true })

	assert.True(t, called)
}

func TestRecoveryNotifiesUser(t *testing.T) {
	sender := &recordingSender{}
	m := NewRecoveryMiddleware(zap.NewNop(), sender)

	assert.NotPanics(t, func() {
		m.Handle(textUpdate(5), func(tgbotapi.Update) { panic("boom") })
	})
	assert.Equal(t, []string{render.ErrGeneric}, sender.texts)
}

func TestLoggingCallsNext(t *testing.T) {
	called := false
	NewLoggingMiddleware(zap.NewNop()).Handle(textUpdate(1), func(tgbotapi.Update) { called = true })
	assert.True(t, called)
}
