package dialogue

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/internal/service/cache"
	"github.com/sandevgo/intake/internal/service/compose"
	"github.com/sandevgo/intake/internal/service/intent"
	"github.com/sandevgo/intake/internal/service/knowledge"
	"github.com/sandevgo/intake/internal/service/slots"
	"github.com/sandevgo/intake/pkg/log"
)

// Recorder receives per-turn telemetry.
type Recorder interface {
	Turn(branch string, category core.IntentCategory, elapsed time.Duration)
	CacheLookup(hit bool)
	ExternalFailure(kind string)
	InquirySaved()
}

type nopRecorder struct{}

func (nopRecorder) Turn(string, core.IntentCategory, time.Duration) {}
func (nopRecorder) CacheLookup(bool) {}
func (nopRecorder) ExternalFailure(string) {}
func (nopRecorder) InquirySaved() {}

// Deps wires the engine. Gateway and Knowledge are required; everything else
// has a usable default.
type Deps struct {
	Gateway     core.InquiryGateway
	Knowledge   core.KnowledgeLoader
	Assistant   core.Assistant
	Transcripts core.TranscriptRepository
	Cache       cache.Factory
	Detector    intent.Detector
	Script      []slots.Definition
	Recorder    Recorder
	// HistoryLimit caps how many past messages are sent to the assistant.
	HistoryLimit int
}

// Engine runs turns. It holds only read-only collaborators and is safe to
// share between sessions.
type Engine struct {
	classifier  *intent.Classifier
	detector    intent.Detector
	collector   *slots.Collector
	composer    *compose.Composer
	knowledge   core.KnowledgeLoader
	gateway     core.InquiryGateway
	assistant   core.Assistant
	transcripts core.TranscriptRepository
	caches      cache.Factory
	recorder    Recorder
	historyCap  int
}

func NewEngine(deps Deps) *Engine {
	e := &Engine{
		classifier:  intent.NewClassifier(intent.NewMatcher()),
		detector:    deps.Detector,
		collector:   slots.NewCollector(deps.Script),
		composer:    compose.NewComposer(),
		knowledge:   deps.Knowledge,
		gateway:     deps.Gateway,
		assistant:   deps.Assistant,
		transcripts: deps.Transcripts,
		caches:      deps.Cache,
		recorder:    deps.Recorder,
		historyCap:  deps.HistoryLimit,
	}
	if e.detector == nil {
		e.detector = intent.NewScriptDetector()
	}
	if e.knowledge == nil {
		e.knowledge = knowledge.NewLoader(nil)
	}
	if e.caches == nil {
		e.caches = cache.MemoryFactory(0)
	}
	if e.recorder == nil {
		e.recorder = nopRecorder{}
	}
	if e.historyCap <= 0 {
		e.historyCap = 20
	}
	return e
}

// NewSession starts a conversation in lang and loads its knowledge.
func (e *Engine) NewSession(ctx context.Context, id string, lang core.Language) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	s := &Session{
		ID:        id,
		Context:   NewContext(lang),
		CreatedAt: time.Now(),
		cache:     e.caches(id),
	}
	e.loadKnowledge(ctx, s)
	return s
}

// Result is everything a caller may want to know about a finished turn.
type Result struct {
	Text       string
	Branch     compose.Branch
	Intent     core.Intent
	Collecting bool
	Cached     bool
}

// HandleTurn processes one utterance and always produces a response.
func (e *Engine) HandleTurn(ctx context.Context, s *Session, utterance string) Result {
	start := time.Now()
	ctx = log.WithSession(ctx, s.ID)

	s.Context.Turns++
	e.record(ctx, s, core.SenderUser, utterance)

	var res Result
	switch {
	case s.Context.PendingSave:
		res = e.complete(ctx, s, e.classifier.Classify(utterance, s.Context.Language))
	case s.Context.Collecting():
		res = e.collect(ctx, s, utterance)
	default:
		res = e.converse(ctx, s, utterance)
	}
	res.Collecting = s.Context.Collecting()

	e.record(ctx, s, core.SenderAgent, res.Text)

	e.recorder.Turn(res.Branch.String(), res.Intent.Category, time.Since(start))
	log.FromCtx(ctx).Debug().
		Str("intent", string(res.Intent.Category)).
		Float64("confidence", res.Intent.Confidence).
		Str("branch", res.Branch.String()).
		Bool("cache_hit", res.Cached).
		Int("turn", s.Context.Turns).
		Msg("turn handled")

	return res
}

// EndSession releases what the session holds outside the process.
func (e *Engine) EndSession(ctx context.Context, s *Session) {
	if err := s.cache.Clear(ctx); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("session", s.ID).Msg("failed to clear response cache")
	}
}

// Greeting is the unsolicited opening line for the session's language.
func (e *Engine) Greeting(s *Session) string {
	return e.composer.Greeting(s.Context.Language)
}

// QuickReplies suggests canned answers for the session's current position.
func (e *Engine) QuickReplies(s *Session) []string {
	if !s.Context.Collecting() {
		return e.composer.QuickReplies(nil, s.Context.Language)
	}
	step, ok := e.collector.Step(s.Context.Step)
	if !ok {
		return nil
	}
	return e.composer.QuickReplies(&step, s.Context.Language)
}

func (e *Engine) converse(ctx context.Context, s *Session, utterance string) Result {
	if lang, ok := e.detector.Detect(utterance); ok && lang != s.Context.Language {
		log.FromCtx(ctx).Debug().Str("from", string(s.Context.Language)).Str("to", string(lang)).Msg("language changed")
		s.Context.Language = lang
		e.loadKnowledge(ctx, s)
	}
	lang := s.Context.Language

	in := e.classifier.Classify(utterance, lang)

	if slots.ShouldStart(in) {
		s.Context.Merge(in.Entities)
		s.Context.Topic = in.Category
		return e.startCollection(ctx, s, in)
	}

	if cached, ok := s.cache.Get(ctx, lang, utterance); ok {
		e.recorder.CacheLookup(true)
		s.Context.Merge(in.Entities)
		return Result{Text: cached, Branch: compose.BranchCached, Intent: in, Cached: true}
	}
	e.recorder.CacheLookup(false)

	answer, _ := s.knowledge.FindBestAnswer(utterance, lang)

	var (
		text   string
		branch compose.Branch
	)
	if answer == "" && e.wantsAssistant(in) {
		reply, err := e.ask(ctx, s, utterance)
		if err != nil {
			e.recorder.ExternalFailure("assistant")
			log.FromCtx(ctx).Warn().Err(err).Str("intent", string(in.Category)).Msg("assistant call failed")
			return Result{Text: e.composer.TechnicalError(lang), Branch: compose.BranchError, Intent: in}
		}
		text, branch = reply, compose.BranchAssistant
	} else {
		text, branch = e.composer.Compose(in, compose.Snapshot{Values: s.Context.Slots}, answer, lang)
	}

	s.Context.Merge(in.Entities)
	if branch.Cacheable() {
		s.cache.Put(ctx, lang, utterance, text)
	}
	return Result{Text: text, Branch: branch, Intent: in}
}

func (e *Engine) startCollection(ctx context.Context, s *Session, in core.Intent) Result {
	out := e.collector.Start(s.Context.Slots)
	if out.State == slots.StateComplete {
		return e.complete(ctx, s, in)
	}

	s.Context.Step = out.Index
	step, _ := e.collector.Step(out.Index)
	text, branch := e.composer.Compose(in, compose.Snapshot{
		Values: s.Context.Slots,
		Prompt: &compose.Prompt{Step: step, Opening: true},
	}, "", s.Context.Language)
	return Result{Text: text, Branch: branch, Intent: in}
}

func (e *Engine) collect(ctx context.Context, s *Session, utterance string) Result {
	lang := s.Context.Language
	in := e.classifier.Classify(utterance, lang)

	step, _ := e.collector.Step(s.Context.Step)
	answer := utterance
	// A recognised entity for the asked field is a cleaner answer than the
	// whole sentence, e.g. "my email is a@b.co".
	if v := in.Entities[step.Field]; v != "" {
		answer = v
	}

	others := make(map[string]string, len(in.Entities))
	for k, v := range in.Entities {
		if k != step.Field {
			others[k] = v
		}
	}
	s.Context.Fill(others)

	out := e.collector.Advance(s.Context.Step, answer, s.Context.Slots)
	if out.State == slots.StateComplete {
		return e.complete(ctx, s, in)
	}

	s.Context.Step = out.Index
	next, _ := e.collector.Step(out.Index)
	text, branch := e.composer.Compose(in, compose.Snapshot{
		Values: s.Context.Slots,
		Prompt: &compose.Prompt{Step: next, Retry: out.Rejected},
	}, "", lang)
	return Result{Text: text, Branch: branch, Intent: in}
}

// complete hands the finished interview to the gateway. The context is reset
// only after a successful save; a failure keeps the answers and retries on the
// next turn.
func (e *Engine) complete(ctx context.Context, s *Session, in core.Intent) Result {
	lang := s.Context.Language
	if s.Context.InquiryID == "" {
		s.Context.InquiryID = uuid.NewString()
	}
	s.Context.Step = notCollecting
	record := e.buildRecord(s)

	if err := e.gateway.SaveInquiry(ctx, record); err != nil {
		s.Context.PendingSave = true
		e.recorder.ExternalFailure("persistence")
		log.FromCtx(ctx).Error().Err(err).Str("inquiry", record.ID).Msg("failed to save inquiry")
		return Result{Text: e.composer.SaveFailed(lang), Branch: compose.BranchError, Intent: in}
	}

	values := s.Context.Clone().Slots
	s.Context.Reset()
	e.recorder.InquirySaved()
	log.FromCtx(ctx).Info().Str("inquiry", record.ID).Msg("inquiry saved")
	return Result{Text: e.composer.Completion(values, lang), Branch: compose.BranchComplete, Intent: in}
}

// wantsAssistant routes unmatched small talk to the language model when one is configured.
func (e *Engine) wantsAssistant(in core.Intent) bool {
	return e.assistant != nil && in.Category == core.IntentGeneral && in.Confidence <= 0.3
}

func (e *Engine) ask(ctx context.Context, s *Session, utterance string) (string, error) {
	// The current utterance is already the last history entry.
	past := s.History[:len(s.History)-1]
	if len(past) > e.historyCap {
		past = past[len(past)-e.historyCap:]
	}
	history := make([]core.Message, 0, len(past))
	for _, m := range past {
		history = append(history, core.Message{Role: m.Role(), Content: m.Content})
	}

	resp, err := e.assistant.Reply(ctx, core.AssistRequest{
		Message:             utterance,
		ConversationHistory: history,
		Language:            s.Context.Language,
	})
	if err != nil {
		return "", err
	}
	if resp.ResponseText == "" {
		return "", core.ErrEmptyResponse
	}
	return resp.ResponseText, nil
}

func (e *Engine) loadKnowledge(ctx context.Context, s *Session) {
	items, err := e.knowledge.LoadKnowledge(ctx, s.Context.Language)
	if err != nil {
		e.recorder.ExternalFailure("knowledge")
		log.FromCtx(ctx).Warn().Err(err).Str("lang", string(s.Context.Language)).Msg("failed to load knowledge")
	}
	s.knowledge = knowledge.NewStore(items)
}

func (e *Engine) record(ctx context.Context, s *Session, sender core.Sender, content string) {
	msg := core.ChatMessage{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    sender,
		Timestamp: time.Now(),
	}
	s.History = append(s.History, msg)

	if e.transcripts == nil {
		return
	}
	if err := e.transcripts.AddMessage(ctx, s.ID, msg); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to store message")
	}
}
