package keyboard

import (
	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback actions
const (
	ActionMode     = "mode"
	ActionLevel    = "level"
	ActionGenerate = "gen"
	ActionExport   = "export"
)

// Document kinds for gen and export callbacks
const (
	KindSummary  = "summary"
	KindDevGuide = "guide"
)

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// ModeKeyboard lists every advisor mode, two per row. The current one is marked.
func (b *Builder) ModeKeyboard(current entity.ModeTag) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}

	var row []tgbotapi.InlineKeyboardButton
	for _, mode := range entity.Modes {
		label := render.ModeTitle(mode)
		if mode == current {
			label = "• " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, EncodeCallback(ActionMode, string(mode))))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// LevelKeyboard offers the two reply registers
func (b *Builder) LevelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(render.LevelTitle(entity.RegisterTech), EncodeCallback(ActionLevel, string(entity.RegisterTech))),
			tgbotapi.NewInlineKeyboardButtonData(render.LevelTitle(entity.RegisterNonTech), EncodeCallback(ActionLevel, string(entity.RegisterNonTech))),
		),
	)
}

// GenerateKeyboard offers the summary and dev guide
func (b *Builder) GenerateKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Summary", EncodeCallback(ActionGenerate, KindSummary)),
			tgbotapi.NewInlineKeyboardButtonData("🧑‍💻 Dev guide", EncodeCallback(ActionGenerate, KindDevGuide)),
		),
	)
}

// ExportKeyboard creates download buttons for a generated document
func (b *Builder) ExportKeyboard(kind string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 .md", EncodeCallback(ActionExport, kind, string(entity.FormatMarkdown))),
			tgbotapi.NewInlineKeyboardButtonData("📕 .pdf", EncodeCallback(ActionExport, kind, string(entity.FormatPDF))),
			tgbotapi.NewInlineKeyboardButtonData("📘 .docx", EncodeCallback(ActionExport, kind, string(entity.FormatDOCX))),
		),
	)
}
