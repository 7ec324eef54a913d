package installer

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	stepStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

var ErrInterrupted = errors.New("setup interrupted")

// Step is one screen of the wizard. Update returns nil once the step is done.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

// setupSteps is the full question order. Steps that do not apply to earlier
// answers skip themselves.
func setupSteps() []Step {
	return []Step{
		NewLanguageStep(),
		NewProviderStep(),
		NewBaseURLStep(),
		NewAPIKeyStep(),
		NewModelStep(),
		NewChannelStep(),
		NewTelegramTokenStep(),
		NewTelegramChatsStep(),
		NewCacheStep(),
		NewRedisAddrStep(),
		NewFinalizationStep(),
		NewSaveEnvStep(),
		NewInitializeFilesStep(),
	}
}

type item struct {
	id    string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.id }

type modelsMsg []list.Item
type errMsg error
type nextMsg struct{}

func advance() tea.Msg { return nextMsg{} }

type wizard struct {
	steps    []Step
	current  int
	state    *InstallState
	quitting bool
	err      error
	width    int
	height   int
}

func newWizard(steps []Step) wizard {
	return wizard{steps: steps, state: NewInstallState()}
}

func (w wizard) done() bool {
	return w.current >= len(w.steps)
}

func (w wizard) Init() tea.Cmd {
	if w.done() {
		return tea.Quit
	}
	return w.steps[0].Init()
}

func (w wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width, w.height = msg.Width, msg.Height
	case errMsg:
		w.err = msg
		return w, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			w.quitting = true
			return w, tea.Quit
		}
	}

	if w.done() {
		return w, tea.Quit
	}

	next, cmd := w.steps[w.current].Update(msg, w.state, w.width, w.height)
	if next != nil {
		w.steps[w.current] = next
		return w, cmd
	}

	w.current++
	if w.done() {
		return w, tea.Quit
	}
	return w, w.steps[w.current].Init()
}

func (w wizard) View() string {
	switch {
	case w.quitting:
		return "Setup cancelled.\n"
	case w.err != nil:
		return errorStyle.Render(fmt.Sprintf("Error: %v", w.err)) + "\n\n(press ctrl+c to quit)\n"
	case w.done():
		return "Configuration complete!\n"
	}

	header := titleStyle.Render("Setting up Intake") + " " +
		stepStyle.Render(fmt.Sprintf("(%d/%d)", w.current+1, len(w.steps)))
	return header + "\n\n" + w.steps[w.current].View(w.state)
}

// RunWizard asks the setup questions and returns the collected settings.
func RunWizard() (*InstallState, error) {
	m, err := tea.NewProgram(newWizard(setupSteps()), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}

	final := m.(wizard)
	if final.quitting {
		return nil, ErrInterrupted
	}
	return final.state, nil
}
