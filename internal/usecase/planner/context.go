package planner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
)

// SummaryInput is a snapshot of everything the summary is written from
type SummaryInput struct {
	Idea     string
	Memory   entity.Memory
	Roadmap  json.RawMessage
	Register entity.RegisterTag
}

// DevGuideInput is a snapshot of everything the dev guide is written from
type DevGuideInput struct {
	Idea     string
	Summary  string
	Memory   entity.Memory
	Roadmap  json.RawMessage
	Stack    entity.StackChoice
	Register entity.RegisterTag
}

func summaryContext(in SummaryInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Idea: %s\n\n", strings.TrimSpace(in.Idea))
	b.WriteString("Project Memory (Decisions/Assumptions):\n")
	fmt.Fprintf(&b, "Decisions: %s\n", joinOr(in.Memory.Decisions, "None tracked"))
	fmt.Fprintf(&b, "Assumptions: %s\n", joinOr(in.Memory.Assumptions, "None tracked"))
	fmt.Fprintf(&b, "Scope: %s\n\n", joinOr(in.Memory.Scope, "None tracked"))
	fmt.Fprintf(&b, "Roadmap:\n%s", roadmapOr(in.Roadmap, "No roadmap generated yet."))

	return b.String()
}

func devGuideContext(in DevGuideInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Project Idea: %s\n", strings.TrimSpace(in.Idea))
	fmt.Fprintf(&b, "Executive Summary: %s\n\n", strings.TrimSpace(in.Summary))
	fmt.Fprintf(&b, "Roadmap Context:\n%s\n\n", roadmapOr(in.Roadmap, "No roadmap data."))
	fmt.Fprintf(&b, "Key Decisions: %s\n", joinOr(in.Memory.Decisions, "None"))
	fmt.Fprintf(&b, "Scopes: %s", joinOr(in.Memory.Scope, "None"))

	return b.String()
}

func joinOr(items []string, none string) string {
	if len(items) == 0 {
		return none
	}
	return strings.Join(items, ", ")
}

// roadmapOr renders the roadmap compacted so equal snapshots give equal text
func roadmapOr(raw json.RawMessage, none string) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return none
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}
	return buf.String()
}
