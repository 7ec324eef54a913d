package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/pkg/log"
	"github.com/sandevgo/intake/pkg/retry"
)

var languageNames = map[core.Language]string{
	core.LangEnglish: "English",
	core.LangKorean:  "Korean",
	core.LangChinese: "Simplified Chinese",
}

const systemPrompt = `You are the front-desk assistant of a web design and development studio.
Answer briefly and politely in %s.
Do not invent prices or deadlines. If the visitor describes a project, invite them to share details so the team can prepare a quote.`

// ChatAssistant answers turns through a chat-completion provider.
type ChatAssistant struct {
	provider core.ChatProvider
	budget   *Budget
	retrier  *retry.Retrier
}

func NewChatAssistant(provider core.ChatProvider, budget *Budget, retrier *retry.Retrier) *ChatAssistant {
	if retrier == nil {
		retrier = retry.NewDefaultRetrier()
	}
	return &ChatAssistant{provider: provider, budget: budget, retrier: retrier}
}

func (a *ChatAssistant) Reply(ctx context.Context, req core.AssistRequest) (core.AssistResponse, error) {
	lang, ok := languageNames[req.Language]
	if !ok {
		lang = languageNames[core.LangEnglish]
	}

	history := a.budget.Trim(req.ConversationHistory)
	messages := make([]core.Message, 0, len(history)+2)
	messages = append(messages, core.Message{Role: core.RoleSystem, Content: fmt.Sprintf(systemPrompt, lang)})
	messages = append(messages, history...)
	messages = append(messages, core.Message{Role: core.RoleUser, Content: req.Message})

	var reply core.Message
	err := a.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		reply, err = a.provider.Chat(ctx, messages)
		if errors.Is(err, core.ErrEmptyResponse) {
			return retry.Permanent(err)
		}
		return err
	})
	if err != nil {
		log.FromCtx(ctx).Debug().Err(err).Msg("chat provider failed")
		if errors.Is(err, context.DeadlineExceeded) {
			return core.AssistResponse{}, fmt.Errorf("%w: %v", core.ErrBackendTimeout, err)
		}
		return core.AssistResponse{}, err
	}

	text := strings.TrimSpace(reply.Content)
	if text == "" {
		return core.AssistResponse{}, core.ErrEmptyResponse
	}
	return core.AssistResponse{ResponseText: text}, nil
}
