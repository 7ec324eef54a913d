package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/intake/internal/config"
	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/internal/service/command"
	"github.com/sandevgo/intake/internal/service/dialogue"
	"github.com/sandevgo/intake/internal/service/ui"
	"github.com/sandevgo/intake/pkg/conv"
	"github.com/sandevgo/intake/pkg/log"
)

const defaultSessionID = "cli-local"

type ReadLine struct {
	cfg      *config.AppConfig
	sessions *dialogue.Registry
	commands *command.Router
	rl       *readline.Instance
	lang     core.Language
}

func NewReadLine(sessions *dialogue.Registry, commands *command.Router, cfg *config.AppConfig, lang core.Language) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:      cfg,
		sessions: sessions,
		commands: commands,
		rl:       rl,
		lang:     lang,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("ReadLine chat started. Type 'exit' to quit, '/help' for commands.")

	chat := r.open(ctx)
	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if out, ok := r.commands.Execute(ctx, defaultSessionID, line); ok {
			// Commands may replace the conversation.
			chat = r.sessions.GetOrCreate(ctx, defaultSessionID)
			r.print(out, chat.QuickReplies())
			continue
		}

		res := chat.Turn(ctx, line)
		r.print(res.Text, chat.QuickReplies())
		logger.Debug().Str("branch", res.Branch.String()).Bool("collecting", res.Collecting).Msg("turn")
	}
}

func (r *ReadLine) open(ctx context.Context) *dialogue.Conversation {
	chat := r.sessions.Create(ctx, defaultSessionID, r.lang)
	r.print(chat.Greeting(), chat.QuickReplies())
	return chat
}

func (r *ReadLine) print(text string, replies []string) {
	out := r.rl.Stdout()
	fmt.Fprintln(out, ui.AgentStyle.Render(conv.MarkdownToPlainText([]byte(text))))
	if hint := formatReplies(replies); hint != "" {
		fmt.Fprintln(out, ui.DescStyle.Render(hint))
	}
}

func formatReplies(replies []string) string {
	if len(replies) == 0 {
		return ""
	}
	quoted := make([]string, len(replies))
	for i, r := range replies {
		quoted[i] = "[" + r + "]"
	}
	return "  " + strings.Join(quoted, " ")
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
