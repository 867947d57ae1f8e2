package validator

import (
	"strings"
	"testing"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestValidateChat(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     entity.ChatRequest
		wantErr bool
	}{
		{name: "ok", req: entity.ChatRequest{Messages: []entity.Message{{Role: entity.RoleUser, Content: "hi"}}}},
		{name: "no messages", req: entity.ChatRequest{}, wantErr: true},
		{name: "bad role", req: entity.ChatRequest{Messages: []entity.Message{{Role: "bot", Content: "hi"}}}, wantErr: true},
		{name: "blank content", req: entity.ChatRequest{Messages: []entity.Message{{Role: entity.RoleUser, Content: "  "}}}, wantErr: true},
		{name: "unknown mode is fine", req: entity.ChatRequest{
			Messages:     []entity.Message{{Role: entity.RoleUser, Content: "hi"}},
			SelectedMode: "pirate",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateChat(&tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, entity.ErrInvalidParameter)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateIdeaFields(t *testing.T) {
	v := New()

	assert.NoError(t, v.ValidateSummary(&entity.SummaryRequest{Idea: "x"}))
	assert.ErrorIs(t, v.ValidateSummary(&entity.SummaryRequest{Idea: " "}), entity.ErrInvalidParameter)
	assert.ErrorIs(t, v.ValidateCreateProject(&entity.CreateProjectRequest{}), entity.ErrInvalidParameter)
	assert.ErrorIs(t, v.ValidateCreateProject(&entity.CreateProjectRequest{Idea: strings.Repeat("a", MaxIdeaLength+1)}),
		entity.ErrInvalidParameter)
	assert.ErrorIs(t, v.ValidateDevGuide(&entity.DevGuideRequest{Idea: "x", Framework: strings.Repeat("f", MaxStackFieldSize+1)}),
		entity.ErrInvalidParameter)
	assert.ErrorIs(t, v.ValidateProjectMessage(&entity.ProjectMessageRequest{}), entity.ErrInvalidParameter)
	assert.NoError(t, v.ValidateProjectDevGuide(&entity.ProjectDevGuideRequest{}))
}
