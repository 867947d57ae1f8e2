package entity

import (
	"encoding/json"
	"time"
)

// Memory holds what the conversation has settled so far
type Memory struct {
	Decisions   []string `json:"decisions"`
	Assumptions []string `json:"assumptions"`
	Scope       []string `json:"scope"`
}

// StackChoice is the technology stack the dev guide is written for
type StackChoice struct {
	Framework   string `json:"framework"`
	Language    string `json:"language"`
	BackendTech string `json:"backend_tech"`
}

const (
	DefaultFramework   = "Next.js"
	DefaultLanguage    = "JavaScript"
	DefaultBackendTech = "Node.js"
)

// WithDefaults fills blank fields the same way the stack picker does
func (s StackChoice) WithDefaults() StackChoice {
	if s.Framework == "" {
		s.Framework = DefaultFramework
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	if s.BackendTech == "" {
		s.BackendTech = DefaultBackendTech
	}
	return s
}

type Project struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Idea       string           `json:"idea"`
	ReplyLevel RegisterTag      `json:"reply_level"`
	Mode       ModeTag          `json:"mode"`
	Messages   []Message        `json:"messages"`
	Memory     Memory           `json:"memory"`
	Roadmap    json.RawMessage  `json:"roadmap,omitempty"`
	Summary    string           `json:"summary,omitempty"`
	DevGuide   *DevGuidePayload `json:"dev_guide,omitempty"`
	Stack      *StackChoice     `json:"stack,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

const projectTitleLen = 30

// ProjectTitle derives a display title from the idea text
func ProjectTitle(idea string) string {
	runes := []rune(idea)
	if len(runes) <= projectTitleLen {
		return idea
	}
	return string(runes[:projectTitleLen]) + "..."
}
