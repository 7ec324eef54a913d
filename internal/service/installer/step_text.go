package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TextStep collects one free-form value. An empty answer falls back to the
// placeholder when useDefault is set, and is stored empty otherwise.
type TextStep struct {
	input      textinput.Model
	title      string
	key        string
	useDefault bool
	skip       func(*InstallState) bool
}

func newTextStep(title, key, placeholder string, secret bool) *TextStep {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 50
	ti.Placeholder = placeholder
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return &TextStep{input: ti, title: title, key: key}
}

func (s *TextStep) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, advance)
}

func (s *TextStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.skip != nil && s.skip(state) {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" && s.useDefault {
			val = s.input.Placeholder
		}
		state.EnvVars[s.key] = val
		return nil, nil
	}
	return s, cmd
}

func (s *TextStep) View(state *InstallState) string {
	return s.title + "\n\n" + s.input.View() + "\n\n(press enter to confirm)\n"
}

func NewAPIKeyStep() Step {
	s := newTextStep("Enter the LLM API key (press Enter to skip if none is needed):", KeyAPIKey, "sk-...", true)
	s.skip = func(st *InstallState) bool { return st.provider() == "none" }
	return s
}

func NewBaseURLStep() Step {
	s := newTextStep("Enter the LLM base URL:", KeyBaseURL, "http://localhost:11434", false)
	s.useDefault = true
	s.skip = func(st *InstallState) bool {
		switch st.provider() {
		case "ollama", "custom", "gateway":
			return false
		}
		return true
	}
	return s
}

func NewTelegramTokenStep() Step {
	s := newTextStep("Enter your Telegram Bot Token:", KeyTelegramToken, "123456789:ABCDEF...", true)
	s.skip = func(st *InstallState) bool { return !st.wantsTelegram() }
	return s
}

func NewTelegramChatsStep() Step {
	s := newTextStep("Restrict the bot to these chat ids (comma separated, Enter for everyone):", KeyTelegramChats, "123456789,-100987654", false)
	s.skip = func(st *InstallState) bool { return !st.wantsTelegram() }
	return s
}

func NewRedisAddrStep() Step {
	s := newTextStep("Enter the Redis address:", KeyRedisAddr, "localhost:6379", false)
	s.useDefault = true
	s.skip = func(st *InstallState) bool { return st.EnvVars[KeyCacheBackend] != "redis" }
	return s
}
