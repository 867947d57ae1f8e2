package planner

import (
	"strings"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
)

var (
	decisionTriggers   = []string{"i've decided", "we've agreed"}
	decisionKeywords   = []string{"decided", "agreed"}
	assumptionTriggers = []string{"assuming", "assumption"}
	assumptionKeywords = []string{"assum"}
)

// ObserveMemory records decisions and assumptions stated in an assistant
// reply. The first sentence carrying a keyword is stored once.
func ObserveMemory(mem entity.Memory, reply string) entity.Memory {
	normalized := strings.ReplaceAll(reply, "’", "'")
	lower := strings.ToLower(normalized)

	if containsAny(lower, decisionTriggers) {
		if s := firstSentenceWith(normalized, decisionKeywords); s != "" {
			mem.Decisions = appendUnique(mem.Decisions, s)
		}
	}

	if containsAny(lower, assumptionTriggers) {
		if s := firstSentenceWith(normalized, assumptionKeywords); s != "" {
			mem.Assumptions = appendUnique(mem.Assumptions, s)
		}
	}

	return mem
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func firstSentenceWith(text string, keywords []string) string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	for _, s := range sentences {
		if containsAny(strings.ToLower(s), keywords) {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func appendUnique(items []string, item string) []string {
	for _, existing := range items {
		if existing == item {
			return items
		}
	}
	out := make([]string, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}
