package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/pkg/retry"
)

// Gateway calls an external assistant service speaking the intake contract:
// POST {message, conversationHistory, language} and receive {responseText}.
type Gateway struct {
	baseProvider
	budget  *Budget
	retrier *retry.Retrier
}

func NewGateway(endpoint, apiKey string, timeout time.Duration, budget *Budget, retrier *retry.Retrier) *Gateway {
	if retrier == nil {
		retrier = retry.NewDefaultRetrier()
	}
	return &Gateway{
		baseProvider: newBaseProvider(endpoint, apiKey, "", timeout),
		budget:       budget,
		retrier:      retrier,
	}
}

func (g *Gateway) Reply(ctx context.Context, req core.AssistRequest) (core.AssistResponse, error) {
	req.ConversationHistory = g.budget.Trim(req.ConversationHistory)
	if req.ConversationHistory == nil {
		req.ConversationHistory = []core.Message{}
	}

	headers := map[string]string{}
	if g.apiKey != "" {
		headers["Authorization"] = "Bearer " + g.apiKey
	}

	var out core.AssistResponse
	err := g.retrier.Do(ctx, func(ctx context.Context) error {
		resp, err := g.doRequest(ctx, http.MethodPost, "", req, headers)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := readBody(resp)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &out); err != nil {
			return retry.Permanent(fmt.Errorf("%w: decode: %v", core.ErrBackendUnavailable, err))
		}
		return nil
	})
	if err != nil {
		return core.AssistResponse{}, err
	}

	out.ResponseText = strings.TrimSpace(out.ResponseText)
	if out.ResponseText == "" {
		return core.AssistResponse{}, core.ErrEmptyResponse
	}
	return out, nil
}
