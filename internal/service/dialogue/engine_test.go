package dialogue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/internal/service/compose"
	"github.com/sandevgo/intake/internal/service/slots"
)

type fakeGateway struct {
	mu      sync.Mutex
	records []core.InquiryRecord
	err     error
}

func (g *fakeGateway) SaveInquiry(_ context.Context, r core.InquiryRecord) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.records = append(g.records, r)
	return g.err
}

type fakeAssistant struct {
	calls int
	last  core.AssistRequest
	reply string
	err   error
	block bool
}

func (a *fakeAssistant) Reply(ctx context.Context, req core.AssistRequest) (core.AssistResponse, error) {
	a.calls++
	a.last = req
	if a.block {
		<-ctx.Done()
		return core.AssistResponse{}, ctx.Err()
	}
	return core.AssistResponse{ResponseText: a.reply}, a.err
}

type countingLoader struct {
	calls map[core.Language]int
	items []core.KnowledgeItem
}

func (l *countingLoader) LoadKnowledge(_ context.Context, lang core.Language) ([]core.KnowledgeItem, error) {
	if l.calls == nil {
		l.calls = map[core.Language]int{}
	}
	l.calls[lang]++
	var out []core.KnowledgeItem
	for _, it := range l.items {
		if it.Language == lang {
			out = append(out, it)
		}
	}
	return out, nil
}

type memTranscripts struct {
	msgs map[string][]core.ChatMessage
}

func (m *memTranscripts) AddMessage(_ context.Context, sessionID string, msg core.ChatMessage) error {
	if m.msgs == nil {
		m.msgs = map[string][]core.ChatMessage{}
	}
	m.msgs[sessionID] = append(m.msgs[sessionID], msg)
	return nil
}

func (m *memTranscripts) GetMessages(_ context.Context, sessionID string, _ int) ([]core.ChatMessage, error) {
	return m.msgs[sessionID], nil
}

func newTestEngine(t *testing.T, deps Deps) (*Engine, *Session) {
	t.Helper()
	if deps.Gateway == nil {
		deps.Gateway = &fakeGateway{}
	}
	e := NewEngine(deps)
	return e, e.NewSession(context.Background(), "test", core.LangEnglish)
}

func stepField(t *testing.T, s *Session) string {
	t.Helper()
	require.True(t, s.Context.Collecting())
	return slots.DefaultScript[s.Context.Step].Field
}

func TestEngine_ServiceInquiryStartsCollection(t *testing.T) {
	e, s := newTestEngine(t, Deps{})

	res := e.HandleTurn(context.Background(), s, "I need a logo design")

	assert.Equal(t, core.IntentServiceInquiry, res.Intent.Category)
	assert.GreaterOrEqual(t, res.Intent.Confidence, 0.8)
	assert.Equal(t, compose.BranchCollect, res.Branch)
	assert.True(t, res.Collecting)
	assert.Equal(t, 0, s.Context.Step)
	assert.Contains(t, res.Text, slots.DefaultScript[0].Prompt(core.LangEnglish))
	assert.Equal(t, "logo design", s.Context.Slots[core.FieldServiceNeeded])
}

func TestEngine_MalformedEmailIsReasked(t *testing.T) {
	e, s := newTestEngine(t, Deps{})
	ctx := context.Background()

	e.HandleTurn(ctx, s, "I need a logo design")
	e.HandleTurn(ctx, s, "John Smith")
	require.Equal(t, core.FieldEmail, stepField(t, s))
	step := s.Context.Step

	res := e.HandleTurn(ctx, s, "john@example")
	email := slots.DefaultScript[step]
	assert.Equal(t, step, s.Context.Step)
	assert.Equal(t, compose.BranchCollect, res.Branch)
	assert.Contains(t, res.Text, email.Prompt(core.LangEnglish))
	assert.Contains(t, res.Text, email.Hint(core.LangEnglish))
	assert.Empty(t, s.Context.Slots[core.FieldEmail])
}

func TestEngine_PricingQuestionUsesTemplate(t *testing.T) {
	e, s := newTestEngine(t, Deps{})

	res := e.HandleTurn(context.Background(), s, "What does it cost?")

	assert.Equal(t, core.IntentPricing, res.Intent.Category)
	assert.GreaterOrEqual(t, res.Intent.Confidence, 0.7)
	assert.Equal(t, compose.BranchTemplate, res.Branch)
	assert.Contains(t, res.Text, "Pricing depends on the scope")
	assert.False(t, s.Context.Collecting())
}

func TestEngine_CompletionSavesExactlyOnce(t *testing.T) {
	gw := &fakeGateway{}
	e, s := newTestEngine(t, Deps{Gateway: gw})
	ctx := context.Background()

	turns := []string{
		"I need a logo design",
		"Jane Doe",
		"my email is jane@example.com",
		"skip",
		"skip",
		"skip",
		"in about 2 months",
	}
	for _, in := range turns {
		res := e.HandleTurn(ctx, s, in)
		require.True(t, res.Collecting, "still collecting after %q", in)
	}
	require.Equal(t, core.FieldDescription, stepField(t, s))

	res := e.HandleTurn(ctx, s, "We are opening a new bakery and need a modern logo")

	assert.Equal(t, compose.BranchComplete, res.Branch)
	assert.False(t, res.Collecting)
	assert.Contains(t, res.Text, "Jane Doe")
	assert.Contains(t, res.Text, "jane@example.com")

	require.Len(t, gw.records, 1)
	rec := gw.records[0]
	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "jane@example.com", rec.Email)
	assert.Empty(t, rec.Phone)
	assert.Equal(t, core.IntentServiceInquiry, rec.InquiryType)
	assert.Equal(t, core.LangEnglish, rec.Language)
	assert.Contains(t, rec.Description, "Service: logo design")
	assert.Contains(t, rec.Description, "Timeline: 2 months")
	assert.Contains(t, rec.Description, "We are opening a new bakery")
	assert.NotEmpty(t, rec.ID)

	var meta inquiryMetadata
	require.NoError(t, json.Unmarshal(rec.Metadata, &meta))
	assert.True(t, meta.Complete)
	assert.Equal(t, "bakery", meta.Slots[core.FieldBusinessType])
	assert.Len(t, meta.History, 2*len(turns)+1)

	assert.False(t, s.Context.Collecting())
	assert.Empty(t, s.Context.Slots)

	// Casual conversation resumes without a second save.
	e.HandleTurn(ctx, s, "thanks")
	assert.Len(t, gw.records, 1)
}

func TestEngine_SaveFailureKeepsAnswersAndRetries(t *testing.T) {
	gw := &fakeGateway{err: errors.New("db locked")}
	e, s := newTestEngine(t, Deps{Gateway: gw})
	ctx := context.Background()

	s.Context.Slots = map[string]string{
		core.FieldName:          "Jane",
		core.FieldEmail:         "jane@example.com",
		core.FieldPhone:         "",
		core.FieldCompany:       "",
		core.FieldServiceNeeded: "website",
		core.FieldBudget:        "",
		core.FieldTimeline:      "ASAP",
	}
	s.Context.Step = len(slots.DefaultScript) - 1

	res := e.HandleTurn(ctx, s, "A website for our family restaurant")

	assert.Equal(t, compose.BranchError, res.Branch)
	assert.Contains(t, res.Text, "couldn't submit")
	assert.False(t, res.Collecting)
	require.Len(t, gw.records, 1)
	assert.True(t, s.Context.PendingSave)
	assert.Equal(t, "Jane", s.Context.Slots[core.FieldName])
	assert.Equal(t, "A website for our family restaurant", s.Context.Slots[core.FieldDescription])

	// Still failing: answers survive another attempt.
	res = e.HandleTurn(ctx, s, "retry")
	assert.Equal(t, compose.BranchError, res.Branch)
	require.Len(t, gw.records, 2)
	assert.True(t, s.Context.PendingSave)

	gw.err = nil
	res = e.HandleTurn(ctx, s, "retry")

	assert.Equal(t, compose.BranchComplete, res.Branch)
	assert.Contains(t, res.Text, "Jane")
	require.Len(t, gw.records, 3)
	assert.Equal(t, gw.records[0].ID, gw.records[2].ID)
	assert.Equal(t, "jane@example.com", gw.records[2].Email)
	assert.Contains(t, gw.records[2].Description, "family restaurant")
	assert.False(t, s.Context.PendingSave)
	assert.Empty(t, s.Context.Slots)

	e.HandleTurn(ctx, s, "thanks")
	assert.Len(t, gw.records, 3)
}

func TestEngine_SaveFailureLogOmitsPersonalData(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	gw := &fakeGateway{err: errors.New("db locked")}
	e, s := newTestEngine(t, Deps{Gateway: gw})
	s.Context.Slots = map[string]string{
		core.FieldName:          "Jane",
		core.FieldEmail:         "jane@example.com",
		core.FieldServiceNeeded: "website",
		core.FieldTimeline:      "ASAP",
	}
	s.Context.Step = len(slots.DefaultScript) - 1

	e.HandleTurn(ctx, s, "A website for our family restaurant")

	out := buf.String()
	require.Len(t, gw.records, 1)
	assert.Contains(t, out, "failed to save inquiry")
	assert.Contains(t, out, gw.records[0].ID)
	assert.Contains(t, out, "db locked")
	assert.NotContains(t, out, "jane@example.com")
	assert.NotContains(t, out, "family restaurant")
}

func TestEngine_AssistantFailureLeavesContextUntouched(t *testing.T) {
	tests := []struct {
		name      string
		assistant *fakeAssistant
		timeout   time.Duration
	}{
		{"error", &fakeAssistant{err: core.ErrBackendUnavailable}, time.Second},
		{"empty reply", &fakeAssistant{}, time.Second},
		{"timeout", &fakeAssistant{block: true}, 50 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, s := newTestEngine(t, Deps{Assistant: tt.assistant})
			s.Context.Slots[core.FieldBudget] = "$100"
			before := s.Context.Clone()

			ctx, cancel := context.WithTimeout(context.Background(), tt.timeout)
			defer cancel()
			res := e.HandleTurn(ctx, s, "random words without signal, I run a bakery")

			assert.Equal(t, compose.BranchError, res.Branch)
			assert.NotEmpty(t, res.Text)
			assert.Contains(t, res.Text, "technical issue")
			assert.Equal(t, 1, tt.assistant.calls)

			after := s.Context.Clone()
			assert.Equal(t, before.Turns+1, after.Turns)
			after.Turns = before.Turns
			assert.Equal(t, before, after)

			// The failed reply must not be memoized.
			e.HandleTurn(ctx, s, "random words without signal, I run a bakery")
			assert.Equal(t, 2, tt.assistant.calls)
		})
	}
}

func TestEngine_AssistantReplyIsCachedAndGetsHistory(t *testing.T) {
	a := &fakeAssistant{reply: "We are a small design studio."}
	e, s := newTestEngine(t, Deps{Assistant: a})
	ctx := context.Background()

	e.HandleTurn(ctx, s, "hello")
	assert.Equal(t, 0, a.calls, "matched greetings use templates")

	res := e.HandleTurn(ctx, s, "tell me something about yourselves")
	assert.Equal(t, compose.BranchAssistant, res.Branch)
	assert.Equal(t, "We are a small design studio.", res.Text)
	assert.Equal(t, "tell me something about yourselves", a.last.Message)
	assert.Equal(t, core.LangEnglish, a.last.Language)
	require.Len(t, a.last.ConversationHistory, 2)
	assert.Equal(t, core.RoleUser, a.last.ConversationHistory[0].Role)
	assert.Equal(t, core.RoleAssistant, a.last.ConversationHistory[1].Role)

	res = e.HandleTurn(ctx, s, "Tell me something about yourselves ")
	assert.True(t, res.Cached)
	assert.Equal(t, "We are a small design studio.", res.Text)
	assert.Equal(t, 1, a.calls)
}

func TestEngine_ResponsesAreIdempotentWithinSession(t *testing.T) {
	e, s := newTestEngine(t, Deps{})
	ctx := context.Background()

	inputs := []string{"What does it cost?", "Which payment methods do you accept?", "hmm okay"}
	for _, in := range inputs {
		first := e.HandleTurn(ctx, s, in)
		require.False(t, first.Cached)
		second := e.HandleTurn(ctx, s, in)
		assert.True(t, second.Cached, in)
		assert.Equal(t, first.Text, second.Text, in)
	}
}

func TestEngine_CollectionPromptsAreNotCached(t *testing.T) {
	e, s := newTestEngine(t, Deps{})
	ctx := context.Background()

	e.HandleTurn(ctx, s, "Could we schedule a meeting?")
	require.True(t, s.Context.Collecting())
	_, ok := s.cache.Get(ctx, core.LangEnglish, "Could we schedule a meeting?")
	assert.False(t, ok)
}

func TestEngine_KnowledgeAnswer(t *testing.T) {
	e, s := newTestEngine(t, Deps{})
	res := e.HandleTurn(context.Background(), s, "Which payment methods do you accept?")
	assert.Equal(t, compose.BranchKnowledge, res.Branch)
	assert.Contains(t, res.Text, "bank transfer")
}

func TestEngine_SupportRequestDoesNotStartInterview(t *testing.T) {
	for _, in := range []string{"I need a refund", "I can't create an account, error", "Which services do you offer?"} {
		t.Run(in, func(t *testing.T) {
			e, s := newTestEngine(t, Deps{})
			res := e.HandleTurn(context.Background(), s, in)
			assert.False(t, res.Collecting)
			assert.NotEqual(t, core.IntentServiceInquiry, res.Intent.Category)
		})
	}
}

func TestEngine_LanguageSwitchReloadsKnowledge(t *testing.T) {
	loader := &countingLoader{items: []core.KnowledgeItem{
		{Question: "결제 방법", Answer: "계좌이체 가능합니다", Language: core.LangKorean},
	}}
	e, s := newTestEngine(t, Deps{Knowledge: loader})
	ctx := context.Background()
	require.Equal(t, 1, loader.calls[core.LangEnglish])

	res := e.HandleTurn(ctx, s, "결제 방법이 궁금해요")
	assert.Equal(t, core.LangKorean, s.Context.Language)
	assert.Equal(t, 1, loader.calls[core.LangKorean])
	assert.Equal(t, compose.BranchKnowledge, res.Branch)
	assert.Equal(t, "계좌이체 가능합니다", res.Text)

	e.HandleTurn(ctx, s, "감사합니다")
	assert.Equal(t, 1, loader.calls[core.LangKorean], "same language does not reload")
}

func TestEngine_LanguageIsKeptDuringCollection(t *testing.T) {
	e, s := newTestEngine(t, Deps{})
	ctx := context.Background()

	e.HandleTurn(ctx, s, "I need a website")
	res := e.HandleTurn(ctx, s, "김민수")

	assert.Equal(t, core.LangEnglish, s.Context.Language)
	assert.Equal(t, "김민수", s.Context.Slots[core.FieldName])
	assert.Contains(t, res.Text, slots.DefaultScript[1].Prompt(core.LangEnglish))
}

func TestEngine_PricingWithServiceStartsCollection(t *testing.T) {
	e, s := newTestEngine(t, Deps{})
	res := e.HandleTurn(context.Background(), s, "How much is a mobile app? Our budget is $8,000")
	assert.True(t, res.Collecting)
	assert.Equal(t, "$8,000", s.Context.Slots[core.FieldBudget])
	assert.Equal(t, "mobile app", s.Context.Slots[core.FieldServiceNeeded])
}

func TestEngine_EmptyInput(t *testing.T) {
	e, s := newTestEngine(t, Deps{})
	res := e.HandleTurn(context.Background(), s, "   ")
	assert.Equal(t, core.IntentGeneral, res.Intent.Category)
	assert.Equal(t, compose.BranchFallback, res.Branch)
	assert.NotEmpty(t, res.Text)
}

func TestEngine_HistoryAndTranscripts(t *testing.T) {
	tr := &memTranscripts{}
	e, s := newTestEngine(t, Deps{Transcripts: tr})
	ctx := context.Background()

	e.HandleTurn(ctx, s, "hello")
	e.HandleTurn(ctx, s, "What does it cost?")

	msgs := s.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, core.SenderUser, msgs[0].Sender)
	assert.Equal(t, core.SenderAgent, msgs[1].Sender)
	assert.Equal(t, "What does it cost?", msgs[2].Content)
	assert.NotEqual(t, msgs[0].ID, msgs[2].ID)
	assert.Equal(t, msgs, tr.msgs["test"])
}

func TestEngine_QuickReplies(t *testing.T) {
	e, s := newTestEngine(t, Deps{})
	ctx := context.Background()

	assert.Len(t, e.QuickReplies(s), 3)

	e.HandleTurn(ctx, s, "I need a website")
	assert.Empty(t, e.QuickReplies(s), "name is required")

	e.HandleTurn(ctx, s, "Jane")
	e.HandleTurn(ctx, s, "jane@example.com")
	require.Equal(t, core.FieldPhone, stepField(t, s))
	assert.Equal(t, []string{"Skip"}, e.QuickReplies(s))
}

func TestEngine_StepNeverExceedsScript(t *testing.T) {
	e, s := newTestEngine(t, Deps{})
	ctx := context.Background()

	e.HandleTurn(ctx, s, "I want to build a website")
	last := s.Context.Step
	for _, in := range []string{"x", "Al", "bad", "al@example.com", "", "", "", "", "", "x", "soon", "short", "A long enough description"} {
		e.HandleTurn(ctx, s, in)
		if !s.Context.Collecting() {
			break
		}
		require.GreaterOrEqual(t, s.Context.Step, last)
		require.Less(t, s.Context.Step, len(slots.DefaultScript))
		last = s.Context.Step
	}
	assert.False(t, s.Context.Collecting())
}
