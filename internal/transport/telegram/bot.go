package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/intake/internal/config"
	"github.com/sandevgo/intake/internal/service/command"
	"github.com/sandevgo/intake/internal/service/dialogue"
	"github.com/sandevgo/intake/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Bot struct {
	bot      *tele.Bot
	cfg      *config.TelegramConfig
	sessions *dialogue.Registry
	commands *command.Router
	sender   *sender
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	sessions *dialogue.Registry,
	commands *command.Router,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      b,
		cfg:      cfg,
		sessions: sessions,
		commands: commands,
		sender:   newSender(b),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !cfg.IsAllowed(c.Chat().ID) {
				return nil
			}
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// handleStart drops any previous conversation for the chat and greets.
func (b *Bot) handleStart(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	id := sessionID(c.Chat().ID)

	b.sessions.Delete(ctx, id)
	conv := b.sessions.Create(ctx, id, "")

	return b.sender.sendMarkdown(ctx, c.Chat(), conv.Greeting(), keyboard(conv.QuickReplies()))
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	id := sessionID(c.Chat().ID)

	if out, ok := b.commands.Execute(ctx, id, c.Text()); ok {
		conv := b.sessions.GetOrCreate(ctx, id)
		return b.sender.sendMarkdown(ctx, c.Chat(), out, keyboard(conv.QuickReplies()))
	}

	conv := b.sessions.GetOrCreate(ctx, id)
	_ = c.Notify(tele.Typing)

	res := conv.Turn(ctx, c.Text())
	return b.sender.sendMarkdown(ctx, c.Chat(), res.Text, keyboard(conv.QuickReplies()))
}

func sessionID(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}
