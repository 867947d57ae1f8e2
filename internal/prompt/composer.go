// Package prompt builds system instructions from mode, register and task.
package prompt

import (
	"fmt"
	"strings"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
)

type options struct {
	stack entity.StackChoice
}

type Option func(*options)

// WithStack sets the technology stack a dev guide is written for
func WithStack(stack entity.StackChoice) Option {
	return func(o *options) {
		o.stack = stack
	}
}

// Composer assembles system instructions. The zero value is ready to use.
type Composer struct{}

func NewComposer() *Composer {
	return &Composer{}
}

// Compose never fails: unknown mode falls back to brainstorm, unknown
// register to non-tech. Section order is role framing, persona, register,
// output format, tone.
func (c *Composer) Compose(mode entity.ModeTag, register entity.RegisterTag, task entity.TaskKind, opts ...Option) string {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if !mode.IsKnown() {
		mode = entity.ModeBrainstorm
	}
	register = entity.ParseRegister(string(register))

	var sections []string
	switch task {
	case entity.TaskSummary:
		sections = []string{
			"You are an expert executive consultant. Your task is to generate a professional project summary for a startup idea.",
			"",
			registerBlock(register, summaryRegisters),
			summaryFormat,
			summaryTone,
		}
	case entity.TaskDevGuide:
		stack := o.stack.WithDefaults()
		sections = []string{
			devGuideFraming(stack),
			`IMPORTANT:
If the user selected a specific framework (e.g., Frappe, Django, Laravel), your guide MUST follow that framework's best practices, folder structure, and CLI commands.
Do not give generic advice if a framework is specified.`,
			registerBlock(register, devGuideRegisters),
			devGuideFormat,
			devGuideTone(register),
		}
	default:
		format := ""
		if task == entity.TaskRoadmap {
			format = roadmapFormat
		}
		sections = []string{
			fmt.Sprintf("You are an expert co-founder and startup advisor strictly operating in %s mode.", strings.ToUpper(string(mode))),
			"PERSONA INSTRUCTIONS:\n" + modePersonas[mode],
			"REPLY STYLE INSTRUCTIONS:\n" + registerBlock(register, chatRegisters),
			format,
			chatTone,
		}
	}

	var b strings.Builder
	for _, s := range sections {
		if s == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s)
	}
	return b.String()
}

func registerBlock(register entity.RegisterTag, blocks map[entity.RegisterTag]string) string {
	block, ok := blocks[register]
	if !ok {
		register = entity.RegisterNonTech
		block = blocks[register]
	}
	return "AUDIENCE: " + string(register) + "\n" + block
}

func devGuideFraming(stack entity.StackChoice) string {
	return fmt.Sprintf(`You are a Senior Software Architect and Technical Mentor.
Your goal is to convert a business idea into a concrete, step-by-step development guide.

CONTEXT:
Frontend Framework: %s (Language: %s)
Backend Stack: %s`, stack.Framework, stack.Language, stack.BackendTech)
}

func devGuideTone(register entity.RegisterTag) string {
	if register == entity.RegisterTech {
		return "Tone: Technical & Precise"
	}
	return "Tone: Educational & Concept-focused"
}
