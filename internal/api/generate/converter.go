package generate

import (
	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/usecase/planner"
)

func toChatResponse(reply *planner.ChatReply) *entity.ChatResponse {
	resp := &entity.ChatResponse{
		Role:         entity.RoleAssistant,
		Content:      reply.Text,
		UsedFallback: reply.UsedFallback,
	}
	if reply.Roadmap != nil {
		resp.Roadmap = reply.Roadmap.Raw
	}
	return resp
}

func memoryOf(m *entity.Memory) entity.Memory {
	if m == nil {
		return entity.Memory{}
	}
	return *m
}

func toSummaryInput(req *entity.SummaryRequest) planner.SummaryInput {
	return planner.SummaryInput{
		Idea:     req.Idea,
		Memory:   memoryOf(req.Memory),
		Roadmap:  req.Roadmap,
		Register: entity.ParseRegister(req.ReplyMode),
	}
}

// dev guides default to the tech register
func toDevGuideInput(req *entity.DevGuideRequest) planner.DevGuideInput {
	return planner.DevGuideInput{
		Idea:    req.Idea,
		Summary: req.Summary,
		Memory:  memoryOf(req.Memory),
		Roadmap: req.Roadmap,
		Stack: entity.StackChoice{
			Framework:   req.Framework,
			Language:    req.Language,
			BackendTech: req.BackendTech,
		},
		Register: entity.ParseRegisterOr(req.ReplyLevel, entity.RegisterTech),
	}
}
