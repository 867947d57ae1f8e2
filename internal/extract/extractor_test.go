package extract

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const roadmapJSON = `{"problem_statement":"Tutors are hard to find","target_users":"Parents","key_assumptions":["Parents pay"],"mvp_features":["Search"],"roadmap_phases":[{"phase":"Research","tasks":["Interview parents"]},{"phase":"Build","tasks":["Search page"]}],"risks":["Trust"],"open_questions":["Pricing?"]}`

const devGuideJSON = `{
  "overview": "Build a \"tutor\" marketplace",
  "architecture": "Next.js + Node.js",
  "steps": [{"title": "Setup", "description": "npx create-next-app"}],
  "deployment": "Vercel",
  "estimated_timeline": "6 weeks",
  "risk_analysis": "Low",
  "git_strategy": "Trunk based"
}`

func TestEmbeddedRoadmapAmongProse(t *testing.T) {
	raw := "Here is the plan we discussed.\n" + roadmapJSON + "\nLet me know what you think."

	res := Embedded(raw)

	require.NotNil(t, res.Payload)
	assert.Equal(t, entity.SchemaRoadmap, res.Payload.Schema)

	var want entity.RoadmapPayload
	require.NoError(t, json.Unmarshal([]byte(roadmapJSON), &want))
	assert.Equal(t, &want, res.Payload.Roadmap)
	assert.JSONEq(t, roadmapJSON, string(res.Payload.Raw))

	assert.NotContains(t, res.ConversationalText, "{")
	assert.NotContains(t, res.ConversationalText, "}")
	assert.Equal(t, "Here is the plan we discussed.\n\nLet me know what you think.", res.ConversationalText)
}

func TestEmbeddedRoadmapOnlyUsesConfirmation(t *testing.T) {
	res := Embedded("  " + roadmapJSON + "\n")

	require.NotNil(t, res.Payload)
	assert.Equal(t, ConfirmationText, res.ConversationalText)
}

func TestEmbeddedFencedRoadmap(t *testing.T) {
	res := Embedded("```json\n" + roadmapJSON + "\n```")

	require.NotNil(t, res.Payload)
	assert.Equal(t, ConfirmationText, res.ConversationalText)
}

func TestEmbeddedLeavesTextUntouched(t *testing.T) {
	cases := map[string]string{
		"no json":           "1. Idea A\n2. Idea B",
		"not a roadmap":     `Config looks like {"name": "x"} to me`,
		"broken json":       `Plan: {"roadmap_phases": [ {"phase": "Build"` + "}",
		"braces in prose":   "Use {curly} braces for templates",
		"empty":             "",
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var res Result
			require.NotPanics(t, func() { res = Embedded(raw) })
			assert.Nil(t, res.Payload)
			assert.Equal(t, raw, res.ConversationalText)
		})
	}
}

func TestEmbeddedRoadmapWithLooseFieldShapes(t *testing.T) {
	obj := `{"problem_statement":"p","target_users":["devs","founders"],` +
		`"roadmap_phases":[{"phase":"Build","tasks":["x"]},"Launch"],` +
		`"risks":[{"risk":"r","mitigation":"m"}],"open_questions":"Pricing?"}`
	raw := "Here is the plan.\n" + obj + "\nLet me know."

	res := Embedded(raw)

	require.NotNil(t, res.Payload)
	assert.JSONEq(t, obj, string(res.Payload.Raw))
	assert.Equal(t, "Here is the plan.\n\nLet me know.", res.ConversationalText)

	roadmap := res.Payload.Roadmap
	require.NotNil(t, roadmap)
	assert.Equal(t, "devs, founders", roadmap.TargetUsers)
	assert.Equal(t, []string{"r - m"}, roadmap.Risks)
	assert.Equal(t, []string{"Pricing?"}, roadmap.OpenQuestions)
	assert.Equal(t, []entity.RoadmapPhase{{Phase: "Build", Tasks: []string{"x"}}, {Phase: "Launch"}}, roadmap.RoadmapPhases)
}

func TestEmbeddedAcceptsAnyRoadmapKeyedObject(t *testing.T) {
	res := Embedded(`{"roadmap_phases": "soon"}`)

	require.NotNil(t, res.Payload)
	assert.Equal(t, ConfirmationText, res.ConversationalText)
	assert.Empty(t, res.Payload.Roadmap.RoadmapPhases)
}

func TestDecodeRoadmapRejectsNonObject(t *testing.T) {
	_, err := DecodeRoadmap([]byte(`["roadmap_phases"]`))
	assert.Error(t, err)
}

func TestStrictFencedDevGuideWithProse(t *testing.T) {
	raw := "\n\n  Sure, here is your guide:\n```json\n" + devGuideJSON + "\n```\nGood luck!  \n"

	res, err := Strict(raw, entity.SchemaDevGuide)

	require.NoError(t, err)
	require.NotNil(t, res.Payload)
	require.NotNil(t, res.Payload.DevGuide)
	assert.Equal(t, `Build a "tutor" marketplace`, res.Payload.DevGuide.Overview)
	assert.Equal(t, "Trunk based", res.Payload.DevGuide.GitStrategy)
	require.Len(t, res.Payload.DevGuide.Steps, 1)
	assert.Equal(t, "Setup", res.Payload.DevGuide.Steps[0].Title)
}

func TestStrictBareFence(t *testing.T) {
	res, err := Strict("```\n"+devGuideJSON+"\n```", entity.SchemaDevGuide)

	require.NoError(t, err)
	assert.Equal(t, "6 weeks", res.Payload.DevGuide.EstimatedTimeline)
	assert.Empty(t, res.ConversationalText)
}

func TestStrictRoadmap(t *testing.T) {
	res, err := Strict(roadmapJSON, entity.SchemaRoadmap)

	require.NoError(t, err)
	require.NotNil(t, res.Payload.Roadmap)
	assert.Len(t, res.Payload.Roadmap.RoadmapPhases, 2)
}

func TestStrictMalformed(t *testing.T) {
	cases := map[string]string{
		"no object":       "I could not generate a guide, sorry.",
		"unbalanced":      "```json\n{\"overview\": \"x\", \"steps\": [\n```",
		"invalid escapes": `{"overview": "say "hi"", "steps": []}`,
		"missing steps":   `{"overview": "x"}`,
		"untitled step":   `{"overview": "x", "steps": [{"description": "d"}]}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Strict(raw, entity.SchemaDevGuide)

			var malformed *MalformedPayloadError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, entity.SchemaDevGuide, malformed.Schema)
			assert.NotEmpty(t, malformed.Reason)
			assert.NotEmpty(t, malformed.Raw)
			assert.ErrorIs(t, err, entity.ErrInvalidFormat)
		})
	}
}

func TestStrictMalformedKeepsRawSlice(t *testing.T) {
	raw := "prefix {\"overview\": oops} suffix"

	_, err := Strict(raw, entity.SchemaDevGuide)

	var malformed *MalformedPayloadError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, `{"overview": oops}`, malformed.Raw)
	assert.True(t, strings.HasPrefix(malformed.Error(), "malformed dev-guide payload"))
}
