package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/extract"
)

const (
	// Welcome messages
	MsgWelcome = `👋 Hi! I'm your AI co-founder.

Tell me about the idea you want to work on and I'll help you shape it:
• Brainstorm and challenge it
• Plan an MVP and a roadmap
• Write a project summary and a development guide`

	MsgAskIdea = `💡 Describe your idea in a few sentences. What problem does it solve and for whom?`

	MsgHelp = `🤖 Commands:

/start - Start over with a new idea
/new - Start a new project
/mode - Choose the advisor mode
/level - Choose technical or plain replies
/roadmap - Show the latest roadmap
/summary - Generate the project summary
/guide - Generate the development guide
/help - Show this help

Just write a message to keep talking about your project.`

	MsgChooseMode  = `🧭 Which mode should I use?`
	MsgChooseLevel = `🎚 How technical should my replies be?`
	MsgModeSet     = `✅ Mode switched to %s.`
	MsgLevelSet    = `✅ Replies are now %s.`

	MsgGeneratingSummary  = `⏳ Writing the project summary...`
	MsgGeneratingDevGuide = `⏳ Writing the development guide. This can take a minute...`
	MsgChooseExport       = `📥 Download it as a file:`
	MsgNoRoadmap          = `🗺 There is no roadmap yet. Switch to Roadmap mode with /mode and ask me to "generate a roadmap".`
	MsgStillProcessing    = `⏳ I'm still working on your previous message.`
	MsgFallbackNotice     = `ℹ️ All AI providers are busy, so this is a generic reply. Try again in a moment.`
	MsgCallbackAccepted   = `⏳ On it...`

	// Errors
	ErrGeneric            = `❌ Something went wrong. Try again or press /start`
	ErrNoProject          = `❌ You don't have an active project yet. Send me your idea first.`
	ErrProjectNotFound    = `❌ That project no longer exists. Send me a new idea to start over.`
	ErrNoSummary          = `❌ There is no summary yet. Generate one with /summary.`
	ErrNoDevGuide         = `❌ There is no development guide yet. Generate one with /guide.`
	ErrGenerationFailed   = `❌ The AI providers could not produce this right now. Try again in a minute.`
	ErrInvalidOutput      = `❌ The AI returned an unreadable document. Try generating it again.`
	ErrInvalidInput       = `❌ I couldn't use that message. Try writing it differently.`
	ErrUnknownCommand     = `❌ Unknown command. Use /help`
	ErrTextOnly           = `❌ I can only read text messages for now.`
	ErrInvalidCallback    = `❌ Invalid button`
	ErrNetworkIssue       = `❌ Connection problem. Try again later.`
	ErrTimeout            = `❌ That took too long. Try again.`
	ErrRateLimitFirst     = `⚠️ Too many requests. Please wait a moment.`
	ErrRateLimitSecond    = `⚠️ Rate limit exceeded. Wait about 30 seconds before trying again.`
	ErrRateLimitPersisted = `🛑 You are sending requests too often. Please wait a minute.`
)

var modeTitles = map[entity.ModeTag]string{
	entity.ModeBrainstorm: "💡 Brainstorm",
	entity.ModeMVP:        "🛠 MVP Planning",
	entity.ModeRisk:       "⚠️ Risk Analysis",
	entity.ModeRoadmap:    "🗺 Roadmap",
	entity.ModeInvestor:   "💼 Investor Pitch",
	entity.ModeLegal:      "⚖️ Legal Check",
}

// ModeTitle returns the button label for a mode
func ModeTitle(mode entity.ModeTag) string {
	if title, ok := modeTitles[mode]; ok {
		return title
	}
	return string(mode)
}

// LevelTitle returns the button label for a register
func LevelTitle(register entity.RegisterTag) string {
	if register == entity.RegisterTech {
		return "🧑‍💻 Technical"
	}
	return "🙂 Plain language"
}

func RenderModeSet(mode entity.ModeTag) string {
	return fmt.Sprintf(MsgModeSet, ModeTitle(mode))
}

func RenderLevelSet(register entity.RegisterTag) string {
	return fmt.Sprintf(MsgLevelSet, strings.ToLower(LevelTitle(register)))
}

// RenderRoadmap formats a stored roadmap for a chat message.
// Blank sections are left out.
func RenderRoadmap(raw json.RawMessage) (string, error) {
	r, err := extract.DecodeRoadmap(raw)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("🗺 Roadmap\n")

	if r.ProblemStatement != "" {
		fmt.Fprintf(&b, "\n🎯 Problem\n%s\n", r.ProblemStatement)
	}
	if r.TargetUsers != "" {
		fmt.Fprintf(&b, "\n👥 Target users\n%s\n", r.TargetUsers)
	}
	writeList(&b, "🤔 Key assumptions", r.KeyAssumptions)
	writeList(&b, "🧩 MVP features", r.MVPFeatures)

	if len(r.RoadmapPhases) > 0 {
		b.WriteString("\n📅 Phases\n")
		for i, phase := range r.RoadmapPhases {
			fmt.Fprintf(&b, "%d. %s\n", i+1, phase.Phase)
			for _, task := range phase.Tasks {
				fmt.Fprintf(&b, "   • %s\n", task)
			}
		}
	}

	writeList(&b, "⚠️ Risks", r.Risks)
	writeList(&b, "❓ Open questions", r.OpenQuestions)

	return strings.TrimRight(b.String(), "\n"), nil
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "• %s\n", item)
	}
}
