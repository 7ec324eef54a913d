package command

import (
	"github.com/sandevgo/intake/internal/service/dialogue"
)

func NewCommands(sessions *dialogue.Registry) []Command {
	return []Command{
		NewResetCommand(sessions),
		NewLanguageCommand(sessions),
	}
}
