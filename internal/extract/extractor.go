// Package extract pulls roadmap and dev guide JSON objects out of model replies.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
)

// ConfirmationText replaces a chat reply that consisted of nothing but a roadmap
const ConfirmationText = "I've generated your strategic roadmap! You can view it by clicking the button in the top right."

const fence = "```"

type Result struct {
	ConversationalText string
	Payload            *entity.Payload
}

// MalformedPayloadError is returned by Strict when the reply holds no usable object
type MalformedPayloadError struct {
	Schema entity.SchemaTag
	Raw    string
	Reason string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed %s payload: %s", e.Schema, e.Reason)
}

func (e *MalformedPayloadError) Unwrap() error {
	return entity.ErrInvalidFormat
}

// Strict handles JSON-only replies. Code fences and surrounding prose are
// dropped, the slice from the first '{' to the last '}' must decode into the
// requested schema and pass validation.
func Strict(raw string, schema entity.SchemaTag) (Result, error) {
	text := stripFences(raw)

	start, end, ok := objectBounds(text)
	if !ok {
		return Result{}, &MalformedPayloadError{Schema: schema, Raw: raw, Reason: "no JSON object found"}
	}
	slice := text[start : end+1]

	payload, err := decode(slice, schema)
	if err != nil {
		return Result{}, &MalformedPayloadError{Schema: schema, Raw: slice, Reason: err.Error()}
	}
	if v := Validate(payload); !v.Valid {
		return Result{}, &MalformedPayloadError{Schema: schema, Raw: slice, Reason: v.Reason}
	}

	return Result{
		ConversationalText: remainder(text, start, end),
		Payload:            payload,
	}, nil
}

// Embedded handles chat replies that may carry a roadmap among prose.
// Any JSON object holding the roadmap_phases key counts as a roadmap, whatever
// the shape of its fields. Anything else leaves the text untouched.
func Embedded(raw string) Result {
	start, end, ok := objectBounds(raw)
	if !ok {
		return Result{ConversationalText: raw}
	}
	slice := raw[start : end+1]

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(slice), &keys); err != nil {
		return Result{ConversationalText: raw}
	}
	if _, found := keys[entity.RoadmapKey]; !found {
		return Result{ConversationalText: raw}
	}

	payload := &entity.Payload{
		Schema:  entity.SchemaRoadmap,
		Roadmap: roadmapFromFields(keys),
		Raw:     json.RawMessage(slice),
	}

	text := remainder(raw, start, end)
	if text == "" {
		text = ConfirmationText
	}
	return Result{ConversationalText: text, Payload: payload}
}

func decode(slice string, schema entity.SchemaTag) (*entity.Payload, error) {
	payload := &entity.Payload{
		Schema: schema,
		Raw:    json.RawMessage(slice),
	}

	switch schema {
	case entity.SchemaRoadmap:
		r, err := DecodeRoadmap([]byte(slice))
		if err != nil {
			return nil, err
		}
		payload.Roadmap = r
	case entity.SchemaDevGuide:
		var g entity.DevGuidePayload
		if err := json.Unmarshal([]byte(slice), &g); err != nil {
			return nil, fmt.Errorf("decode dev guide: %w", err)
		}
		payload.DevGuide = &g
	default:
		return nil, fmt.Errorf("unknown schema %q", schema)
	}

	return payload, nil
}

// objectBounds returns the greedy span from the first '{' to the last '}'
func objectBounds(text string) (int, int, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return 0, 0, false
	}
	return start, end, true
}

func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, fence+"json") {
		text = text[len(fence+"json"):]
	} else if strings.HasPrefix(text, fence) {
		text = text[len(fence):]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), fence)
	return strings.TrimSpace(text)
}

// remainder cuts text[start:end+1] out together with a fence wrapping it
func remainder(text string, start, end int) string {
	before := strings.TrimSpace(text[:start])
	after := strings.TrimSpace(text[end+1:])

	if strings.HasSuffix(before, fence+"json") {
		before = strings.TrimSuffix(before, fence+"json")
		after = strings.TrimPrefix(after, fence)
	} else if strings.HasSuffix(before, fence) {
		before = strings.TrimSuffix(before, fence)
		after = strings.TrimPrefix(after, fence)
	}
	before = strings.TrimSpace(before)
	after = strings.TrimSpace(after)

	switch {
	case before == "":
		return after
	case after == "":
		return before
	default:
		return before + "\n\n" + after
	}
}
