package extract

import (
	"testing"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload *entity.Payload
		valid   bool
	}{
		{name: "nil payload", payload: nil},
		{name: "unknown schema", payload: &entity.Payload{Schema: "poem"}},
		{name: "roadmap missing", payload: &entity.Payload{Schema: entity.SchemaRoadmap}},
		{
			name: "roadmap without phases",
			payload: &entity.Payload{Schema: entity.SchemaRoadmap, Roadmap: &entity.RoadmapPayload{
				TargetUsers: "Early adopters",
			}},
		},
		{
			name: "roadmap with unnamed phase",
			payload: &entity.Payload{Schema: entity.SchemaRoadmap, Roadmap: &entity.RoadmapPayload{
				RoadmapPhases: []entity.RoadmapPhase{{Tasks: []string{"a"}}},
			}},
		},
		{
			name: "roadmap ok",
			payload: &entity.Payload{Schema: entity.SchemaRoadmap, Roadmap: &entity.RoadmapPayload{
				RoadmapPhases: []entity.RoadmapPhase{{Phase: "Build"}},
			}},
			valid: true,
		},
		{
			name: "dev guide without overview",
			payload: &entity.Payload{Schema: entity.SchemaDevGuide, DevGuide: &entity.DevGuidePayload{
				Steps: []entity.DevGuideStep{{Title: "Setup"}},
			}},
		},
		{
			name: "dev guide ok",
			payload: &entity.Payload{Schema: entity.SchemaDevGuide, DevGuide: &entity.DevGuidePayload{
				Overview: "o",
				Steps:    []entity.DevGuideStep{{Title: "Setup"}},
			}},
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Validate(tt.payload)

			assert.Equal(t, tt.valid, v.Valid)
			if tt.valid {
				assert.Empty(t, v.Reason)
			} else {
				assert.NotEmpty(t, v.Reason)
			}
		})
	}
}
