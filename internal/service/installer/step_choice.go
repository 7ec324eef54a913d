package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type choice struct {
	label string
	value string
}

// ChoiceStep is a single-select menu storing the chosen value under key.
type ChoiceStep struct {
	title   string
	key     string
	choices []choice
	cursor  int
	skip    func(*InstallState) bool
}

// Init fires a nextMsg so skipped steps advance without a keypress.
func (s *ChoiceStep) Init() tea.Cmd {
	return advance
}

func (s *ChoiceStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.skip != nil && s.skip(state) {
		return nil, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			state.EnvVars[s.key] = s.choices[s.cursor].value
			return nil, nil
		}
	}
	return s, nil
}

func (s *ChoiceStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.title + "\n\n")
	for i, c := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("❯ %s", c.label)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", c.label)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}

func NewLanguageStep() Step {
	return &ChoiceStep{
		title: "Select the default conversation language:",
		key:   KeyLanguage,
		choices: []choice{
			{label: "English", value: "en"},
			{label: "한국어 (Korean)", value: "ko"},
			{label: "中文 (Chinese)", value: "zh"},
		},
	}
}

func NewProviderStep() Step {
	return &ChoiceStep{
		title: "Select the LLM used for small talk the rules cannot answer:",
		key:   KeyProvider,
		choices: []choice{
			{label: "None (rules only)", value: "none"},
			{label: "Anthropic", value: "anthropic"},
			{label: "OpenAI", value: "openai"},
			{label: "OpenRouter", value: "openrouter"},
			{label: "Ollama", value: "ollama"},
			{label: "Custom OpenAI-compatible", value: "custom"},
			{label: "HTTP assist gateway", value: "gateway"},
		},
	}
}

func NewChannelStep() Step {
	return &ChoiceStep{
		title: "Select the chat channels to serve:",
		key:   keyChannel,
		choices: []choice{
			{label: "HTTP API", value: "http"},
			{label: "Telegram", value: "telegram"},
			{label: "HTTP API + Telegram", value: "http+telegram"},
		},
	}
}

func NewCacheStep() Step {
	return &ChoiceStep{
		title: "Select the response cache backend:",
		key:   KeyCacheBackend,
		choices: []choice{
			{label: "In-memory", value: "memory"},
			{label: "Redis", value: "redis"},
		},
	}
}
