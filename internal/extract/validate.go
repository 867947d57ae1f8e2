package extract

import (
	"errors"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validation is the tagged outcome of a schema check
type Validation struct {
	Valid  bool
	Reason string
}

func Validate(p *entity.Payload) Validation {
	if p == nil {
		return invalid(errors.New("payload is missing"))
	}

	var err error
	switch p.Schema {
	case entity.SchemaRoadmap:
		err = ValidateRoadmap(p.Roadmap)
	case entity.SchemaDevGuide:
		err = ValidateDevGuide(p.DevGuide)
	default:
		err = errors.New("unknown schema " + string(p.Schema))
	}
	if err != nil {
		return invalid(err)
	}
	return Validation{Valid: true}
}

// ValidateRoadmap requires at least one named phase
func ValidateRoadmap(r *entity.RoadmapPayload) error {
	if r == nil {
		return errors.New("roadmap is missing")
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.RoadmapPhases, validation.Required, validation.Each(validation.By(namedPhase))),
	)
}

// ValidateDevGuide requires an overview and at least one titled step
func ValidateDevGuide(g *entity.DevGuidePayload) error {
	if g == nil {
		return errors.New("dev guide is missing")
	}
	return validation.ValidateStruct(g,
		validation.Field(&g.Overview, validation.Required),
		validation.Field(&g.Steps, validation.Required, validation.Each(validation.By(titledStep))),
	)
}

func namedPhase(value interface{}) error {
	phase, ok := value.(entity.RoadmapPhase)
	if !ok {
		return errors.New("must be a roadmap phase")
	}
	return validation.Validate(phase.Phase, validation.Required.Error("phase name is required"))
}

func titledStep(value interface{}) error {
	step, ok := value.(entity.DevGuideStep)
	if !ok {
		return errors.New("must be a dev guide step")
	}
	return validation.Validate(step.Title, validation.Required.Error("step title is required"))
}

func invalid(err error) Validation {
	return Validation{Reason: err.Error()}
}
