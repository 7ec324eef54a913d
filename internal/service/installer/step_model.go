package installer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/intake/internal/providers/llm"
)

// Suggested models per hosted provider. Ollama lists what is pulled locally.
var suggestedModels = map[string][]item{
	"anthropic": {
		{id: "claude-3-5-haiku-latest", title: "Claude 3.5 Haiku", desc: "Fast and inexpensive"},
		{id: "claude-3-7-sonnet-latest", title: "Claude 3.7 Sonnet", desc: "Higher quality replies"},
	},
	"openai": {
		{id: "gpt-4o-mini", title: "GPT-4o mini", desc: "Fast and inexpensive"},
		{id: "gpt-4o", title: "GPT-4o", desc: "Higher quality replies"},
	},
	"openrouter": {
		{id: "openai/gpt-4o-mini", title: "OpenAI GPT-4o mini", desc: "via OpenRouter"},
		{id: "anthropic/claude-3.5-haiku", title: "Claude 3.5 Haiku", desc: "via OpenRouter"},
		{id: "meta-llama/llama-3.1-8b-instruct", title: "Llama 3.1 8B Instruct", desc: "via OpenRouter"},
	},
}

// ModelStep picks the model from a list, or asks for a name when there is
// nothing to list.
type ModelStep struct {
	list     list.Model
	input    textinput.Model
	freeForm bool
	loading  bool
	fetching bool // Ensures we only trigger the fetch once
	err      error
}

func NewModelStep() Step {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select AI Model"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	ti := textinput.New()
	ti.Focus()
	ti.Width = 50

	return &ModelStep{
		list:    l,
		input:   ti,
		loading: true,
	}
}

func (s *ModelStep) Init() tea.Cmd {
	return advance
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	provider := state.provider()
	if provider == "none" || provider == "gateway" {
		return nil, nil
	}

	// 1. Resolve the source once when we enter the step
	if s.loading && !s.fetching {
		s.fetching = true
		switch provider {
		case "ollama":
			baseURL := state.EnvVars[KeyBaseURL]
			return s, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				names, err := llm.NewOllama(baseURL, "", "", 10*time.Second).Models(ctx)
				if err != nil {
					return errMsg(err)
				}
				items := make([]list.Item, 0, len(names))
				for _, n := range names {
					items = append(items, item{id: n, title: n, desc: "pulled locally"})
				}
				return modelsMsg(items)
			}
		default:
			suggested, ok := suggestedModels[provider]
			if !ok {
				s.freeForm = true
				s.loading = false
				s.input.Placeholder = "model-name"
				return s, textinput.Blink
			}
			items := make([]list.Item, 0, len(suggested))
			for _, it := range suggested {
				items = append(items, it)
			}
			return s, func() tea.Msg { return modelsMsg(items) }
		}
	}

	if s.freeForm {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" && s.input.Value() != "" {
			state.EnvVars[KeyModel] = s.input.Value()
			return nil, nil
		}
		return s, cmd
	}

	// Update list size
	s.list.SetSize(width, height-4)

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case modelsMsg:
		s.list.SetItems(msg)
		s.loading = false
		s.fetching = false
		if len(msg) == 0 {
			s.freeForm = true
			s.input.Placeholder = "llama3"
			return s, textinput.Blink
		}
		return s, nil

	case errMsg:
		s.loading = false
		s.fetching = false
		s.err = msg
		return s, nil // Return nil command to break the error loop

	case tea.KeyMsg:
		// If there's an error, allow retry with Enter
		if s.err != nil {
			if msg.String() == "enter" {
				s.err = nil
				s.loading = true
				s.fetching = false
				return s, advance
			}
			return s, nil
		}

		if msg.String() == "enter" {
			wasFiltering := s.list.FilterState() == list.Filtering
			s.list, cmd = s.list.Update(msg)

			if wasFiltering || s.list.FilterState() == list.Filtering {
				return s, cmd
			}

			if i, ok := s.list.SelectedItem().(item); ok {
				state.EnvVars[KeyModel] = i.id
				return nil, nil
			}
			return s, cmd
		}
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error fetching models: %v", s.err)) +
			"\n\nCheck the base URL and that the server is running.\n\n(press enter to retry, ctrl+c to quit)\n"
	}
	if s.freeForm {
		return "Enter the model name:\n\n" + s.input.View() + "\n\n(press enter to confirm)\n"
	}
	if s.loading {
		return "Loading models...\n"
	}
	return s.list.View()
}
