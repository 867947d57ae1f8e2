package entity

import (
	"encoding/json"
	"time"
)

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

type CreateProjectRequest struct {
	Idea       string `json:"idea"`
	ReplyLevel string `json:"reply_level"`
}

type ListProjectsResponse struct {
	Projects []*ProjectSummary `json:"projects"`
}

type ProjectSummary struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	ReplyLevel RegisterTag `json:"reply_level"`
	HasRoadmap bool        `json:"has_roadmap"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type DeleteProjectResponse struct {
	Status string `json:"status"`
}

// ProjectMessageRequest is one user chat turn inside a stored project
type ProjectMessageRequest struct {
	Content    string `json:"content"`
	Mode       string `json:"mode"`
	ReplyLevel string `json:"reply_level,omitempty"`
}

type ProjectMessageResponse struct {
	Reply        Message         `json:"reply"`
	Roadmap      json.RawMessage `json:"roadmap,omitempty"`
	UsedFallback bool            `json:"used_fallback"`
	Project      *Project        `json:"project"`
}

type ProjectDevGuideRequest struct {
	Framework   string `json:"framework"`
	Language    string `json:"language"`
	BackendTech string `json:"backend_tech"`
}

type ProjectSummaryResponse struct {
	Summary string `json:"summary"`
}

// ExportFile is a rendered document ready to be served as an attachment
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
