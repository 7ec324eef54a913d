package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep computes derived values and final env var formatting
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return advance
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(state)
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

func finalize(state *InstallState) {
	channel := state.EnvVars[keyChannel]
	state.EnvVars[KeyEnableHTTP] = boolString(channel == "" || channel == "http" || channel == "http+telegram")
	state.EnvVars[KeyEnableTelegram] = boolString(state.wantsTelegram() && state.EnvVars[KeyTelegramToken] != "")

	// Set defaults
	if state.EnvVars[KeyDebug] == "" {
		state.EnvVars[KeyDebug] = "0"
	}
	if state.EnvVars[KeyProvider] == "" {
		state.EnvVars[KeyProvider] = "none"
	}

	// Only used as intermediate state
	delete(state.EnvVars, keyChannel)

	// Drop answers left empty so env defaults apply.
	for k, v := range state.EnvVars {
		if v == "" {
			delete(state.EnvVars, k)
		}
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
