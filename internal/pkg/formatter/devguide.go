package formatter

import (
	"fmt"
	"strings"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
)

// DevGuideMarkdown renders a dev guide payload as a markdown body
func DevGuideMarkdown(g *entity.DevGuidePayload) string {
	var b strings.Builder

	section := func(title, body string) {
		if strings.TrimSpace(body) == "" {
			return
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", title, strings.TrimSpace(body))
	}

	section("Overview", g.Overview)
	section("Architecture", g.Architecture)

	if len(g.Steps) > 0 {
		b.WriteString("## Implementation Steps\n\n")
		for i, s := range g.Steps {
			fmt.Fprintf(&b, "### %d. %s\n\n%s\n\n", i+1, s.Title, strings.TrimSpace(s.Description))
		}
	}

	section("Deployment", g.Deployment)
	section("Estimated Timeline", g.EstimatedTimeline)
	section("Risk Analysis", g.RiskAnalysis)
	section("Git Strategy", g.GitStrategy)

	return strings.TrimSpace(b.String())
}
