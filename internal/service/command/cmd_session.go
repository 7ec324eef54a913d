package command

import (
	"context"

	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/internal/service/dialogue"
)

// ResetCommand discards the conversation, including an unfinished interview,
// and starts over in the same language.
type ResetCommand struct {
	sessions *dialogue.Registry
}

func NewResetCommand(sessions *dialogue.Registry) *ResetCommand {
	return &ResetCommand{sessions: sessions}
}

func (c *ResetCommand) Name() string { return "reset" }

func (c *ResetCommand) Description() string { return "start the conversation over" }

func (c *ResetCommand) Execute(ctx context.Context, sessionID string, _ []string) (string, error) {
	var lang core.Language
	if conv, err := c.sessions.Get(sessionID); err == nil {
		lang = conv.Language()
	}
	return restart(ctx, c.sessions, sessionID, lang), nil
}

// LanguageCommand restarts the conversation in another language.
type LanguageCommand struct {
	sessions *dialogue.Registry
	fmt      *ResponseFormatter
}

func NewLanguageCommand(sessions *dialogue.Registry) *LanguageCommand {
	return &LanguageCommand{sessions: sessions, fmt: NewResponseFormatter()}
}

func (c *LanguageCommand) Name() string { return "lang" }

func (c *LanguageCommand) Description() string { return "switch language: en, ko or zh" }

func (c *LanguageCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) != 1 {
		return c.fmt.Combine(c.fmt.Usage("/lang <en|ko|zh>"), c.fmt.Examples([]string{"/lang ko"})), nil
	}
	lang, err := core.ParseLanguage(args[0])
	if err != nil {
		return "", err
	}
	return restart(ctx, c.sessions, sessionID, lang), nil
}

func restart(ctx context.Context, sessions *dialogue.Registry, id string, lang core.Language) string {
	sessions.Delete(ctx, id)
	return sessions.Create(ctx, id, lang).Greeting()
}
