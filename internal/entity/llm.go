package entity

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return nil
	default:
		return fmt.Errorf("unknown message role: %s", r)
	}
}

// Message is a single conversation turn
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ModeTag selects the advisor persona
type ModeTag string

const (
	ModeBrainstorm ModeTag = "brainstorm"
	ModeMVP        ModeTag = "mvp"
	ModeRisk       ModeTag = "risk"
	ModeRoadmap    ModeTag = "roadmap"
	ModeInvestor   ModeTag = "investor"
	ModeLegal      ModeTag = "legal"
)

// Modes lists every supported mode in display order
var Modes = []ModeTag{ModeBrainstorm, ModeMVP, ModeRisk, ModeRoadmap, ModeInvestor, ModeLegal}

// ParseMode never fails: anything unknown resolves to brainstorm
func ParseMode(s string) ModeTag {
	m := ModeTag(strings.ToLower(strings.TrimSpace(s)))
	if m.IsKnown() {
		return m
	}
	return ModeBrainstorm
}

func (m ModeTag) IsKnown() bool {
	for _, known := range Modes {
		if m == known {
			return true
		}
	}
	return false
}

// RegisterTag selects audience calibration independently of mode
type RegisterTag string

const (
	RegisterTech    RegisterTag = "tech"
	RegisterNonTech RegisterTag = "non-tech"
)

// ParseRegister resolves anything unrecognized to non-tech
func ParseRegister(s string) RegisterTag {
	switch RegisterTag(strings.ToLower(strings.TrimSpace(s))) {
	case RegisterTech:
		return RegisterTech
	case RegisterNonTech:
		return RegisterNonTech
	default:
		return RegisterNonTech
	}
}

// ParseRegisterOr behaves like ParseRegister but lets the caller pick the default
// used for empty input.
func ParseRegisterOr(s string, def RegisterTag) RegisterTag {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return ParseRegister(s)
}

// TaskKind describes what the completion is for and drives output-format rules
type TaskKind string

const (
	TaskChat     TaskKind = "chat"
	TaskRoadmap  TaskKind = "roadmap"
	TaskSummary  TaskKind = "summary"
	TaskDevGuide TaskKind = "dev-guide"
)

// CompletionRequest is built once per user turn or on-demand generation.
// Use NewCompletionRequest; the conversation slice is copied on construction.
type CompletionRequest struct {
	SystemInstruction string
	Conversation      []Message
	Mode              ModeTag
	Register          RegisterTag
	Task              TaskKind
	MaxOutputTokens   int
	Temperature       float64
	// ExpectJSON marks strict JSON tasks: replies that do not look like JSON
	// are not accepted as a provider success.
	ExpectJSON bool
}

type CompletionOption func(*CompletionRequest)

func WithTokenCap(maxTokens int) CompletionOption {
	return func(r *CompletionRequest) {
		r.MaxOutputTokens = maxTokens
	}
}

func WithTemperature(t float64) CompletionOption {
	return func(r *CompletionRequest) {
		r.Temperature = t
	}
}

func WithExpectJSON() CompletionOption {
	return func(r *CompletionRequest) {
		r.ExpectJSON = true
	}
}

func NewCompletionRequest(
	systemInstruction string,
	conversation []Message,
	mode ModeTag,
	register RegisterTag,
	task TaskKind,
	opts ...CompletionOption,
) CompletionRequest {
	conv := make([]Message, len(conversation))
	copy(conv, conversation)

	req := CompletionRequest{
		SystemInstruction: systemInstruction,
		Conversation:      conv,
		Mode:              mode,
		Register:          register,
		Task:              task,
		MaxOutputTokens:   1000,
		Temperature:       0.7,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeEmpty   Outcome = "empty"
	OutcomeError   Outcome = "error"
)

// ProviderResult is produced once per provider attempt
type ProviderResult struct {
	Outcome     Outcome
	Text        string
	ErrorDetail string
	Provider    string
	Model       string
}

// OK reports a success carrying non-blank text
func (r ProviderResult) OK() bool {
	return r.Outcome == OutcomeSuccess && strings.TrimSpace(r.Text) != ""
}

func SuccessResult(provider, model, text string) ProviderResult {
	return ProviderResult{Outcome: OutcomeSuccess, Text: text, Provider: provider, Model: model}
}

func EmptyResult(provider, model, detail string) ProviderResult {
	return ProviderResult{Outcome: OutcomeEmpty, ErrorDetail: detail, Provider: provider, Model: model}
}

func ErrorResult(provider, model, detail string) ProviderResult {
	return ProviderResult{Outcome: OutcomeError, ErrorDetail: detail, Provider: provider, Model: model}
}
