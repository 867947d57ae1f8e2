package render

import (
	"encoding/json"
	"testing"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderRoadmap(t *testing.T) {
	raw := json.RawMessage(`{"problem_statement":"Kids struggle with math","mvp_features":["Quiz"],"roadmap_phases":[{"phase":"Build","tasks":["Ship quiz","Invite testers"]}],"risks":[]}`)

	text, err := RenderRoadmap(raw)
	require.NoError(t, err)

	assert.Contains(t, text, "🎯 Problem\nKids struggle with math")
	assert.Contains(t, text, "🧩 MVP features\n• Quiz")
	assert.Contains(t, text, "1. Build\n   • Ship quiz\n   • Invite testers")
	assert.NotContains(t, text, "Risks")
	assert.NotContains(t, text, "Target users")
}

func TestRenderRoadmapLooseShapes(t *testing.T) {
	raw := json.RawMessage(`{"target_users":["devs","founders"],"roadmap_phases":[{"phase":"Build","tasks":["x"]}],"risks":[{"risk":"Churn","mitigation":"Onboarding"}]}`)

	text, err := RenderRoadmap(raw)
	require.NoError(t, err)

	assert.Contains(t, text, "👥 Target users\ndevs, founders")
	assert.Contains(t, text, "⚠️ Risks\n• Churn - Onboarding")
}

func TestRenderRoadmapRejectsGarbage(t *testing.T) {
	_, err := RenderRoadmap(json.RawMessage(`not json`))
	assert.Error(t, err)
}

func TestTitles(t *testing.T) {
	assert.Equal(t, "🗺 Roadmap", ModeTitle(entity.ModeRoadmap))
	assert.Equal(t, "unknown", ModeTitle(entity.ModeTag("unknown")))
	assert.Equal(t, "✅ Replies are now 🧑‍💻 technical.", RenderLevelSet(entity.RegisterTech))
}
