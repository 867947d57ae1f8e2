package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/pkg/formatter"
	"github.com/MVVYSHNAV/idea-generator/internal/telegram/keyboard"
	"github.com/MVVYSHNAV/idea-generator/internal/telegram/render"
	"github.com/MVVYSHNAV/idea-generator/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ProcessingStaleAfter releases a processing flag left behind by a crash
const ProcessingStaleAfter = 5 * time.Minute

// Actions are the project operations shared by commands and buttons
type Actions struct {
	BaseHandler
	planner  PlannerUsecase
	states   *state.Manager
	keyboard *keyboard.Builder
	bot      Sender
	logger   *zap.Logger
	now      func() time.Time
}

// NewActions creates the shared action set
func NewActions(
	bot Sender,
	stateManager *state.Manager,
	planner PlannerUsecase,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *Actions {
	return &Actions{
		BaseHandler: BaseHandler{messageSender: NewMessageSender(bot, logger)},
		planner:     planner,
		states:      stateManager,
		keyboard:    kb,
		bot:         bot,
		logger:      logger,
		now:         time.Now,
	}
}

// Fail reports err to the user. A project deleted elsewhere is also
// detached from the user's session.
func (a *Actions) Fail(ctx context.Context, msg *Message, err error) {
	if errors.Is(err, entity.ErrProjectNotFound) {
		if session, getErr := a.states.GetOrCreateSession(ctx, msg.UserID); getErr == nil && session.ProjectID != "" {
			session.ProjectID = ""
			if setErr := a.states.SetSession(ctx, session); setErr != nil {
				ctxzap.Error(ctx, "failed to detach project", zap.Error(setErr))
			}
		}
	}

	a.HandleError(ctx, msg.ChatID, err)
}

// NewProject forgets the current project and asks for a new idea
func (a *Actions) NewProject(ctx context.Context, msg *Message) error {
	session, err := a.states.GetOrCreateSession(ctx, msg.UserID)
	if err != nil {
		return err
	}

	session.ProjectID = ""
	if err := a.states.SetSession(ctx, session); err != nil {
		return err
	}

	a.sendMessage(msg.ChatID, render.MsgAskIdea, nil)
	return nil
}

func (a *Actions) ShowModes(ctx context.Context, msg *Message) error {
	session, err := a.states.GetOrCreateSession(ctx, msg.UserID)
	if err != nil {
		return err
	}

	a.sendMessage(msg.ChatID, render.MsgChooseMode, a.keyboard.ModeKeyboard(session.Mode))
	return nil
}

func (a *Actions) ShowLevels(ctx context.Context, msg *Message) error {
	a.sendMessage(msg.ChatID, render.MsgChooseLevel, a.keyboard.LevelKeyboard())
	return nil
}

// SetMode applies to the next chat turn of the current and future projects
func (a *Actions) SetMode(ctx context.Context, msg *Message, mode entity.ModeTag) error {
	session, err := a.states.GetOrCreateSession(ctx, msg.UserID)
	if err != nil {
		return err
	}

	session.Mode = mode
	if err := a.states.SetSession(ctx, session); err != nil {
		return err
	}

	a.sendMessage(msg.ChatID, render.RenderModeSet(mode), nil)
	return nil
}

func (a *Actions) SetLevel(ctx context.Context, msg *Message, register entity.RegisterTag) error {
	session, err := a.states.GetOrCreateSession(ctx, msg.UserID)
	if err != nil {
		return err
	}

	session.Register = register
	if err := a.states.SetSession(ctx, session); err != nil {
		return err
	}

	a.sendMessage(msg.ChatID, render.RenderLevelSet(register), nil)
	return nil
}

// ShowRoadmap prints the last roadmap stored on the project
func (a *Actions) ShowRoadmap(ctx context.Context, msg *Message) error {
	projectID, err := a.activeProject(ctx, msg.UserID)
	if err != nil {
		return err
	}

	project, err := a.planner.GetProject(ctx, projectID)
	if err != nil {
		return err
	}

	if len(project.Roadmap) == 0 {
		a.sendMessage(msg.ChatID, render.MsgNoRoadmap, nil)
		return nil
	}

	text, err := render.RenderRoadmap(project.Roadmap)
	if err != nil {
		return err
	}

	a.sendMessage(msg.ChatID, text, nil)
	return nil
}

// Summary generates the project summary and offers downloads
func (a *Actions) Summary(ctx context.Context, msg *Message) error {
	projectID, err := a.activeProject(ctx, msg.UserID)
	if err != nil {
		return err
	}

	return a.Exclusive(ctx, msg, func() error {
		a.sendMessage(msg.ChatID, render.MsgGeneratingSummary, nil)

		summary, err := withTyping(ctx, a, msg.ChatID, func() (string, error) {
			return a.planner.GenerateSummary(ctx, projectID)
		})
		if err != nil {
			return err
		}

		a.sendMessage(msg.ChatID, summary, nil)
		a.sendMessage(msg.ChatID, render.MsgChooseExport, a.keyboard.ExportKeyboard(keyboard.KindSummary))
		return nil
	})
}

// DevGuide generates the development guide. args is an optional
// "framework, language, backend" list.
func (a *Actions) DevGuide(ctx context.Context, msg *Message, args string) error {
	projectID, err := a.activeProject(ctx, msg.UserID)
	if err != nil {
		return err
	}

	req := parseStack(args)

	return a.Exclusive(ctx, msg, func() error {
		a.sendMessage(msg.ChatID, render.MsgGeneratingDevGuide, nil)

		text, err := withTyping(ctx, a, msg.ChatID, func() (string, error) {
			guide, err := a.planner.GenerateDevGuide(ctx, projectID, req)
			if err != nil {
				return "", err
			}
			return formatter.DevGuideMarkdown(guide), nil
		})
		if err != nil {
			return err
		}

		a.sendMessage(msg.ChatID, text, nil)
		a.sendMessage(msg.ChatID, render.MsgChooseExport, a.keyboard.ExportKeyboard(keyboard.KindDevGuide))
		return nil
	})
}

// Export uploads a stored document in the requested format
func (a *Actions) Export(ctx context.Context, msg *Message, kind string, format entity.ResultFormat) error {
	if !format.IsValid() {
		return fmt.Errorf("%w: format %q", entity.ErrInvalidParameter, format)
	}

	projectID, err := a.activeProject(ctx, msg.UserID)
	if err != nil {
		return err
	}

	var file *entity.ExportFile
	switch kind {
	case keyboard.KindSummary:
		file, err = a.planner.ExportSummary(ctx, projectID, format)
	case keyboard.KindDevGuide:
		file, err = a.planner.ExportDevGuide(ctx, projectID, format)
	default:
		return fmt.Errorf("%w: document %q", entity.ErrInvalidParameter, kind)
	}
	if err != nil {
		return err
	}

	return a.messageSender.SendDocument(msg.ChatID, file)
}

// Exclusive runs fn unless another completion for the same user is in
// flight. The flag lives in the session state so it survives restarts.
func (a *Actions) Exclusive(ctx context.Context, msg *Message, fn func() error) error {
	data, err := a.states.GetStateData(ctx, msg.UserID)
	if err != nil {
		return err
	}

	if data.IsProcessing && a.now().Sub(data.ProcessingStarted) < ProcessingStaleAfter {
		ctxzap.Info(ctx, "completion already in flight", zap.Int64("user_id", msg.UserID))
		a.sendMessage(msg.ChatID, render.MsgStillProcessing, nil)
		return nil
	}

	data.IsProcessing = true
	data.ProcessingStarted = a.now()
	if err := a.states.UpdateStateData(ctx, msg.UserID, data); err != nil {
		return err
	}

	defer func() {
		data.IsProcessing = false
		data.ProcessingStarted = time.Time{}
		if err := a.states.UpdateStateData(ctx, msg.UserID, data); err != nil {
			ctxzap.Error(ctx, "failed to clear processing flag", zap.Error(err))
		}
	}()

	return fn()
}

func (a *Actions) activeProject(ctx context.Context, userID int64) (string, error) {
	session, err := a.states.GetOrCreateSession(ctx, userID)
	if err != nil {
		return "", err
	}
	if session.ProjectID == "" {
		return "", ErrNoActiveProject
	}
	return session.ProjectID, nil
}

// withTyping keeps the typing indicator on while fn runs
func withTyping[T any](ctx context.Context, a *Actions, chatID int64, fn func() (T, error)) (T, error) {
	typing := NewTypingNotifier(a.bot, chatID, a.logger)
	typing.Start(ctx)
	defer typing.Stop()

	return fn()
}

// parseStack reads "framework, language, backend". Missing parts stay
// blank and get defaults downstream.
func parseStack(args string) *entity.ProjectDevGuideRequest {
	req := &entity.ProjectDevGuideRequest{}
	parts := strings.Split(args, ",")
	fields := []*string{&req.Framework, &req.Language, &req.BackendTech}
	for i, field := range fields {
		if i < len(parts) {
			*field = strings.TrimSpace(parts[i])
		}
	}
	return req
}
