package state

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
)

var ErrSessionNotFound = errors.New("telegram session not found")

// TelegramSession maps a telegram user to the project they are chatting in
type TelegramSession struct {
	UserID    int64              `json:"user_id"`
	ProjectID string             `json:"project_id,omitempty"`
	Mode      entity.ModeTag     `json:"mode"`
	Register  entity.RegisterTag `json:"register"`
	StateData json.RawMessage    `json:"state_data,omitempty"` // Telegram-specific UI state
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// StateData contains telegram-specific UI state (stored in StateData)
type StateData struct {
	Version int `json:"version,omitempty"`

	// Set while a completion for this user is in flight
	IsProcessing      bool      `json:"is_processing,omitempty"`
	ProcessingStarted time.Time `json:"processing_started,omitempty"`
}

const (
	// StateDataCurrentVersion is the current version of StateData
	StateDataCurrentVersion = 1
)

// Storage defines the interface for telegram session persistence
type Storage interface {
	// Get retrieves telegram session by user ID, ErrSessionNotFound if absent
	Get(ctx context.Context, userID int64) (*TelegramSession, error)

	// Set saves telegram session
	Set(ctx context.Context, session *TelegramSession) error

	// Delete removes telegram session
	Delete(ctx context.Context, userID int64) error
}
