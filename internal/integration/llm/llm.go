// Package llm holds helpers shared by the provider adapters in its subpackages.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	pkghttp "github.com/MVVYSHNAV/idea-generator/pkg/http"
)

// MissingKeyDetail is reported when a provider has no credential configured
const MissingKeyDetail = "api key not configured"

const maxDetailLen = 300

// Describe turns a transport error into a short diagnostic detail
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var httpErr *pkghttp.HTTPError
	var netErr *pkghttp.NetworkError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout: " + truncate(err.Error())
	case errors.Is(err, context.Canceled):
		return "canceled: " + truncate(err.Error())
	case errors.As(err, &httpErr):
		return fmt.Sprintf("HTTP %d: %s", httpErr.StatusCode, truncate(strings.TrimSpace(httpErr.Message)))
	case errors.As(err, &netErr):
		return truncate(netErr.Error())
	default:
		return truncate(err.Error())
	}
}

func truncate(s string) string {
	if len(s) <= maxDetailLen {
		return s
	}
	cut := maxDetailLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// LastUserText returns the content of the latest user message
func LastUserText(conv []entity.Message) string {
	for i := len(conv) - 1; i >= 0; i-- {
		if conv[i].Role == entity.RoleUser {
			return conv[i].Content
		}
	}
	return ""
}
