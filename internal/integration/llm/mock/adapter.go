// Package mock is a deterministic provider used with ENABLE_MOCKS
package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/MVVYSHNAV/idea-generator/internal/completion"
	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/integration/llm"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const Name = "mock"

const roadmapReply = `{"problem_statement":"[MOCK] Turning the idea into a validated product","target_users":"Early adopters","key_assumptions":["Users feel the problem weekly"],"mvp_features":["Sign up","Core workflow"],"roadmap_phases":[{"phase":"Research","tasks":["Talk to 5 users"]},{"phase":"Build","tasks":["Ship the core workflow"]}],"risks":["Low retention"],"open_questions":["Who pays?"]}`

const devGuideReply = "```json\n" + `{"overview":"[MOCK] Development guide","architecture":"Single web app with an API backend","steps":[{"title":"Set up the project","description":"Create the repository and install dependencies."},{"title":"Build the core workflow","description":"Implement the main user journey."}],"deployment":"Deploy to a managed platform","estimated_timeline":"4 weeks","risk_analysis":"Scope creep","git_strategy":"Feature branches with pull requests"}` + "\n```"

const summaryReply = `# Project Overview

[MOCK] Executive summary of the idea.

## Next Action Steps
- Validate the problem with five users`

// Adapter never talks to the network; replies depend only on the call
type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string {
	return Name
}

func (a *Adapter) Invoke(ctx context.Context, call completion.Call) entity.ProviderResult {
	ctxzap.Info(ctx, "[MOCK] generating completion", zap.String("model", call.Model))

	sys := call.SystemInstruction
	user := llm.LastUserText(call.Conversation)

	switch {
	case strings.Contains(sys, `"git_strategy"`):
		return entity.SuccessResult(Name, call.Model, devGuideReply)
	case strings.Contains(sys, "SECTIONS TO INCLUDE"):
		return entity.SuccessResult(Name, call.Model, summaryReply)
	case strings.Contains(sys, `"roadmap_phases"`) && strings.Contains(strings.ToLower(user), "roadmap"):
		return entity.SuccessResult(Name, call.Model, "Here is the plan.\n"+roadmapReply)
	default:
		return entity.SuccessResult(Name, call.Model, fmt.Sprintf("[MOCK] Let's dig into that: %s", firstLine(user)))
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
