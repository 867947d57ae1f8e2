package entity

import "encoding/json"

// ChatRequest is the stateless chat turn: the caller owns the history
type ChatRequest struct {
	Messages     []Message `json:"messages"`
	SelectedMode string    `json:"selectedMode"`
	ReplyMode    string    `json:"replyMode"`
}

type ChatResponse struct {
	Role         Role            `json:"role"`
	Content      string          `json:"content"`
	Roadmap      json.RawMessage `json:"roadmap,omitempty"`
	UsedFallback bool            `json:"used_fallback"`
}

type SummaryRequest struct {
	Idea      string          `json:"idea"`
	Memory    *Memory         `json:"memory,omitempty"`
	Roadmap   json.RawMessage `json:"roadmap,omitempty"`
	ReplyMode string          `json:"replyMode"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type DevGuideRequest struct {
	Idea        string          `json:"idea"`
	Memory      *Memory         `json:"memory,omitempty"`
	Roadmap     json.RawMessage `json:"roadmap,omitempty"`
	Summary     string          `json:"summary"`
	Language    string          `json:"language"`
	Framework   string          `json:"framework"`
	BackendTech string          `json:"backend_tech"`
	ReplyLevel  string          `json:"replyLevel"`
}

type DevGuideResponse struct {
	Guide *DevGuidePayload `json:"guide"`
}
