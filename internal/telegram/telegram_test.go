package telegram

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MVVYSHNAV/idea-generator/internal/completion"
	"github.com/MVVYSHNAV/idea-generator/internal/config"
	"github.com/MVVYSHNAV/idea-generator/internal/fallback"
	"github.com/MVVYSHNAV/idea-generator/internal/integration/llm/mock"
	"github.com/MVVYSHNAV/idea-generator/internal/pkg/formatter"
	"github.com/MVVYSHNAV/idea-generator/internal/prompt"
	"github.com/MVVYSHNAV/idea-generator/internal/repository"
	"github.com/MVVYSHNAV/idea-generator/internal/telegram/bot"
	"github.com/MVVYSHNAV/idea-generator/internal/telegram/render"
	"github.com/MVVYSHNAV/idea-generator/internal/telegram/state"
	"github.com/MVVYSHNAV/idea-generator/internal/usecase/planner"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAPI struct {
	mu      sync.Mutex
	texts   []string
	updates chan tgbotapi.Update
	stopped bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{updates: make(chan tgbotapi.Update, 10)}
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.texts = append(f.texts, msg.Text)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeAPI) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

func newTestBot(t *testing.T) (*bot.Bot, *fakeAPI, *state.Manager) {
	t.Helper()

	bank, err := fallback.Default()
	require.NoError(t, err)
	chain, err := completion.NewChain([]completion.ChainProvider{
		{Adapter: mock.NewAdapter(), Models: []string{"mock-1"}},
	}, bank, time.Second)
	require.NoError(t, err)

	store := repository.NewMemoryStore()
	uc := planner.NewUsecase(chain, prompt.NewComposer(), repository.NewProjectRepository(store), formatter.NewFactory())
	states := state.NewManager(repository.NewTelegramStateRepository(store))

	api := newFakeAPI()
	cfg := &config.TelegramConfig{UpdateTimeout: 1, RateLimitPerMinute: 60, RateLimitBurst: 20, ShutdownTimeout: 5}
	b := bot.NewWithAPI(api, cfg, states, zap.NewNop())
	RegisterHandlers(b, uc, zap.NewNop())

	return b, api, states
}

func textUpdate(id int, s string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: id,
		Message: &tgbotapi.Message{
			MessageID: id,
			From:      &tgbotapi.User{ID: 7},
			Chat:      &tgbotapi.Chat{ID: 70},
			Text:      s,
		},
	}
}

func commandUpdate(id int, name string) tgbotapi.Update {
	u := textUpdate(id, "/"+name)
	u.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name) + 1}}
	return u
}

func TestBotRoutesByProjectState(t *testing.T) {
	ctx := context.Background()
	b, api, states := newTestBot(t)

	b.HandleUpdate(ctx, commandUpdate(1, "start"))
	assert.Equal(t, []string{render.MsgWelcome, render.MsgAskIdea}, api.sent())

	b.HandleUpdate(ctx, textUpdate(2, "A marketplace for used bikes"))
	session, err := states.GetSession(ctx, 7)
	require.NoError(t, err)
	require.NotEmpty(t, session.ProjectID, "first text after /start creates the project")

	b.HandleUpdate(ctx, textUpdate(3, "Who should I talk to first?"))
	sent := api.sent()
	assert.Equal(t, "[MOCK] Let's dig into that: Who should I talk to first?", sent[len(sent)-1])
}

func TestBotRejectsNonText(t *testing.T) {
	b, api, _ := newTestBot(t)

	u := textUpdate(1, "")
	u.Message.Sticker = &tgbotapi.Sticker{FileID: "x"}
	b.HandleUpdate(context.Background(), u)

	assert.Equal(t, []string{render.ErrTextOnly}, api.sent())
}

func TestBotCallbackRouting(t *testing.T) {
	b, api, states := newTestBot(t)

	b.HandleUpdate(context.Background(), tgbotapi.Update{
		UpdateID: 1,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb",
			From:    &tgbotapi.User{ID: 7},
			Message: &tgbotapi.Message{MessageID: 5, Chat: &tgbotapi.Chat{ID: 70}},
			Data:    "mode:investor",
		},
	})

	session, err := states.GetSession(context.Background(), 7)
	require.NoError(t, err)
	assert.EqualValues(t, "investor", session.Mode)
	assert.Len(t, api.sent(), 1)
}

func TestBotStartStop(t *testing.T) {
	b, api, _ := newTestBot(t)

	require.NoError(t, b.Start(context.Background()))
	api.updates <- commandUpdate(1, "help")

	assert.Eventually(t, func() bool {
		return len(api.sent()) == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, b.Stop())
	assert.True(t, api.stopped)
	assert.Equal(t, []string{render.MsgHelp}, api.sent())
}
