package validator

import (
	"fmt"
	"strings"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxIdeaLength     = 5000
	MaxMessageLength  = 20000
	MaxMessages       = 200
	MaxStackFieldSize = 100
)

// Validator checks inbound request bodies before they reach the use case
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateChat(req *entity.ChatRequest) error {
	return wrap(validation.ValidateStruct(req,
		validation.Field(&req.Messages,
			validation.Required,
			validation.Length(1, MaxMessages),
			validation.Each(validation.By(validMessage)),
		),
	))
}

func (v *Validator) ValidateSummary(req *entity.SummaryRequest) error {
	return wrap(validation.ValidateStruct(req,
		validation.Field(&req.Idea, validation.Required, validation.By(notBlank), validation.RuneLength(1, MaxIdeaLength)),
	))
}

func (v *Validator) ValidateDevGuide(req *entity.DevGuideRequest) error {
	return wrap(validation.ValidateStruct(req,
		validation.Field(&req.Idea, validation.Required, validation.By(notBlank), validation.RuneLength(1, MaxIdeaLength)),
		validation.Field(&req.Framework, validation.RuneLength(0, MaxStackFieldSize)),
		validation.Field(&req.Language, validation.RuneLength(0, MaxStackFieldSize)),
		validation.Field(&req.BackendTech, validation.RuneLength(0, MaxStackFieldSize)),
	))
}

func (v *Validator) ValidateCreateProject(req *entity.CreateProjectRequest) error {
	return wrap(validation.ValidateStruct(req,
		validation.Field(&req.Idea, validation.Required, validation.By(notBlank), validation.RuneLength(1, MaxIdeaLength)),
	))
}

func (v *Validator) ValidateProjectMessage(req *entity.ProjectMessageRequest) error {
	return wrap(validation.ValidateStruct(req,
		validation.Field(&req.Content, validation.Required, validation.By(notBlank), validation.RuneLength(1, MaxMessageLength)),
	))
}

func (v *Validator) ValidateProjectDevGuide(req *entity.ProjectDevGuideRequest) error {
	return wrap(validation.ValidateStruct(req,
		validation.Field(&req.Framework, validation.RuneLength(0, MaxStackFieldSize)),
		validation.Field(&req.Language, validation.RuneLength(0, MaxStackFieldSize)),
		validation.Field(&req.BackendTech, validation.RuneLength(0, MaxStackFieldSize)),
	))
}

func validMessage(value interface{}) error {
	m, ok := value.(entity.Message)
	if !ok {
		return fmt.Errorf("must be a message")
	}
	if err := m.Role.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(m.Content) == "" {
		return fmt.Errorf("content cannot be empty")
	}
	if len([]rune(m.Content)) > MaxMessageLength {
		return fmt.Errorf("content is longer than %d characters", MaxMessageLength)
	}
	return nil
}

func notBlank(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be blank")
	}
	return nil
}

// wrap tags validation failures with ErrInvalidParameter
func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", entity.ErrInvalidParameter, err.Error())
}
