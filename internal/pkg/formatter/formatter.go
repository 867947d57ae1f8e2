package formatter

import (
	"fmt"
	"strings"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
)

// Document is a titled markdown body ready for export
type Document struct {
	Title string
	Body  string
}

type Formatter interface {
	Format(doc Document) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %s", entity.ErrInvalidParameter, format)
	}
}

// line is one body line with its markdown heading level (0 for plain text)
type line struct {
	level int
	text  string
}

func splitLines(body string) []line {
	raw := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	lines := make([]line, 0, len(raw))
	for _, l := range raw {
		trimmed := strings.TrimSpace(l)
		level := 0
		for level < len(trimmed) && level < 6 && trimmed[level] == '#' {
			level++
		}
		if level > 0 && level < len(trimmed) && trimmed[level] == ' ' {
			lines = append(lines, line{level: level, text: strings.TrimSpace(trimmed[level:])})
			continue
		}
		lines = append(lines, line{text: l})
	}
	return lines
}
