package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
)

// DecodeRoadmap reads any JSON object into a RoadmapPayload. Models vary the
// field shapes (lists of objects, arrays where text is expected), so values
// are coerced to text instead of failing the whole roadmap.
func DecodeRoadmap(raw []byte) (*entity.RoadmapPayload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode roadmap: %w", err)
	}
	return roadmapFromFields(fields), nil
}

func roadmapFromFields(fields map[string]json.RawMessage) *entity.RoadmapPayload {
	return &entity.RoadmapPayload{
		ProblemStatement: flatten(fields["problem_statement"]),
		TargetUsers:      flatten(fields["target_users"]),
		KeyAssumptions:   textList(fields["key_assumptions"]),
		MVPFeatures:      textList(fields["mvp_features"]),
		RoadmapPhases:    phaseList(fields[entity.RoadmapKey]),
		Risks:            textList(fields["risks"]),
		OpenQuestions:    textList(fields["open_questions"]),
	}
}

// flatten renders a JSON value as one line of text. Object values keep
// their document order.
func flatten(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return ""
		}
		return joinFlat(items, ", ")
	case '{':
		return joinFlat(objectValues(raw), " - ")
	case 'n':
		return ""
	default:
		return string(raw)
	}
}

func textList(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	if raw[0] != '[' {
		if s := flatten(raw); s != "" {
			return []string{s}
		}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := flatten(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func phaseList(raw json.RawMessage) []entity.RoadmapPhase {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	phases := make([]entity.RoadmapPhase, 0, len(items))
	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			if name := flatten(item); name != "" {
				phases = append(phases, entity.RoadmapPhase{Phase: name})
			}
			continue
		}
		phases = append(phases, entity.RoadmapPhase{
			Phase: firstText(fields, "phase", "name", "title"),
			Tasks: textList(fields["tasks"]),
		})
	}
	return phases
}

func firstText(fields map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		if s := flatten(fields[key]); s != "" {
			return s
		}
	}
	return ""
}

func objectValues(raw json.RawMessage) []json.RawMessage {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil
	}

	var values []json.RawMessage
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			break
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			break
		}
		values = append(values, v)
	}
	return values
}

func joinFlat(items []json.RawMessage, sep string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if s := flatten(item); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}
