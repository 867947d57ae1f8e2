package entity

import "encoding/json"

// Field names below are a wire contract with the roadmap and dev guide viewers.

type RoadmapPhase struct {
	Phase string   `json:"phase"`
	Tasks []string `json:"tasks"`
}

type RoadmapPayload struct {
	ProblemStatement string         `json:"problem_statement"`
	TargetUsers      string         `json:"target_users"`
	KeyAssumptions   []string       `json:"key_assumptions"`
	MVPFeatures      []string       `json:"mvp_features"`
	RoadmapPhases    []RoadmapPhase `json:"roadmap_phases"`
	Risks            []string       `json:"risks"`
	OpenQuestions    []string       `json:"open_questions"`
}

type DevGuideStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type DevGuidePayload struct {
	Overview          string         `json:"overview"`
	Architecture      string         `json:"architecture"`
	Steps             []DevGuideStep `json:"steps"`
	Deployment        string         `json:"deployment"`
	EstimatedTimeline string         `json:"estimated_timeline"`
	RiskAnalysis      string         `json:"risk_analysis"`
	GitStrategy       string         `json:"git_strategy"`
}

type SchemaTag string

const (
	SchemaRoadmap  SchemaTag = "roadmap"
	SchemaDevGuide SchemaTag = "dev-guide"
)

// RoadmapKey decides whether a parsed object is a roadmap
const RoadmapKey = "roadmap_phases"

// Payload is a structured object extracted from a model reply.
// Exactly one of Roadmap and DevGuide is set, matching Schema.
type Payload struct {
	Schema   SchemaTag
	Roadmap  *RoadmapPayload
	DevGuide *DevGuidePayload
	// Raw is the JSON exactly as the model produced it
	Raw json.RawMessage
}
