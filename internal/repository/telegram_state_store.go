package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/telegram/state"
)

const telegramKeyPrefix = "telegram:"

var _ state.Storage = &TelegramStateRepository{}

// TelegramStateRepository implements state.Storage on top of a Store
type TelegramStateRepository struct {
	store Store
}

func NewTelegramStateRepository(store Store) *TelegramStateRepository {
	return &TelegramStateRepository{store: store}
}

func telegramKey(userID int64) string {
	return telegramKeyPrefix + strconv.FormatInt(userID, 10)
}

func (r *TelegramStateRepository) Get(ctx context.Context, userID int64) (*state.TelegramSession, error) {
	data, err := r.store.Get(ctx, telegramKey(userID))
	if err != nil {
		if errors.Is(err, entity.ErrKeyNotFound) {
			return nil, state.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get telegram session: %w", err)
	}

	var session state.TelegramSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode telegram session: %w", err)
	}

	return &session, nil
}

func (r *TelegramStateRepository) Set(ctx context.Context, session *state.TelegramSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode telegram session: %w", err)
	}

	return r.store.Set(ctx, telegramKey(session.UserID), data)
}

func (r *TelegramStateRepository) Delete(ctx context.Context, userID int64) error {
	return r.store.Delete(ctx, telegramKey(userID))
}
