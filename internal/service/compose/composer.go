package compose

import (
	"strings"

	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/internal/service/slots"
)

// Branch names the path that produced a response.
type Branch int

const (
	BranchCollect Branch = iota + 1
	BranchKnowledge
	BranchTemplate
	BranchFallback
	BranchAssistant
	BranchError
	BranchComplete
	BranchCached
)

func (b Branch) String() string {
	switch b {
	case BranchCollect:
		return "collect"
	case BranchKnowledge:
		return "knowledge"
	case BranchTemplate:
		return "template"
	case BranchFallback:
		return "fallback"
	case BranchAssistant:
		return "assistant"
	case BranchError:
		return "error"
	case BranchComplete:
		return "complete"
	case BranchCached:
		return "cached"
	}
	return "unknown"
}

// Cacheable reports whether responses from this branch may be memoized.
func (b Branch) Cacheable() bool {
	switch b {
	case BranchKnowledge, BranchTemplate, BranchFallback, BranchAssistant:
		return true
	}
	return false
}

// Prompt describes the collection step to ask, if any.
type Prompt struct {
	Step slots.Definition
	// Retry is set when the previous answer for Step was rejected.
	Retry bool
	// Opening is set on the turn that starts collection.
	Opening bool
}

// Snapshot is the read-only view of session state the composer needs.
type Snapshot struct {
	Values map[string]string
	Prompt *Prompt
}

// Composer renders localized responses. It keeps no state.
type Composer struct{}

func NewComposer() *Composer {
	return &Composer{}
}

// Compose picks, in order: the active collection prompt, the knowledge answer,
// an intent template, the generic fallback.
func (c *Composer) Compose(intent core.Intent, snap Snapshot, answer string, lang core.Language) (string, Branch) {
	if snap.Prompt != nil {
		return c.prompt(*snap.Prompt, lang), BranchCollect
	}
	if answer != "" {
		return answer, BranchKnowledge
	}
	if text, ok := c.template(intent, snap.Values, lang); ok {
		return text, BranchTemplate
	}
	return c.Fallback(lang), BranchFallback
}

func (c *Composer) prompt(p Prompt, lang core.Language) string {
	text := p.Step.Prompt(lang)
	if p.Retry {
		if hint := p.Step.Hint(lang); hint != "" {
			text = hint + " " + text
		}
	}
	if p.Opening {
		text = pick(leadInText, lang) + "\n\n" + text
	}
	return text
}

func (c *Composer) template(intent core.Intent, values map[string]string, lang core.Language) (string, bool) {
	var set localizedTemplates
	switch intent.Category {
	case core.IntentServiceInquiry:
		set = serviceTemplates
	case core.IntentPricing:
		set = pricingTemplates
	case core.IntentConsultation:
		set = consultationTemplates
	case core.IntentSupport:
		set = supportTemplates
	case core.IntentGeneral:
		// An unmatched utterance only carries the baseline confidence and is
		// answered by the fallback instead of a greeting.
		if intent.Confidence <= baselineConfidence {
			return "", false
		}
		set = generalTemplates
	default:
		return "", false
	}

	fields := merged(values, intent.Entities)
	variants, ok := set[lang]
	if !ok {
		variants = set[core.LangEnglish]
	}
	for _, t := range variants {
		if satisfied(t.requires, fields) {
			return fill(t.text, fields), true
		}
	}
	return "", false
}

const baselineConfidence = 0.3

// Greeting opens a conversation before the user has said anything.
func (c *Composer) Greeting(lang core.Language) string {
	return pick(greetingText, lang)
}

func (c *Composer) Fallback(lang core.Language) string {
	return pick(fallbackText, lang)
}

func (c *Composer) TechnicalError(lang core.Language) string {
	return pick(technicalErrorText, lang)
}

func (c *Composer) SaveFailed(lang core.Language) string {
	return pick(saveFailedText, lang)
}

func (c *Composer) Completion(values map[string]string, lang core.Language) string {
	return fill(pick(completionText, lang), values)
}

// QuickReplies suggests canned answers: entry points when idle, a skip option
// on optional steps, nothing on required steps.
func (c *Composer) QuickReplies(step *slots.Definition, lang core.Language) []string {
	if step == nil {
		idle, ok := quickReplyIdle[lang]
		if !ok {
			idle = quickReplyIdle[core.LangEnglish]
		}
		return append([]string(nil), idle...)
	}
	if step.Required {
		return nil
	}
	return []string{pick(quickReplySkip, lang)}
}

func pick(m map[core.Language]string, lang core.Language) string {
	if v, ok := m[lang]; ok {
		return v
	}
	return m[core.LangEnglish]
}

func merged(values, entities map[string]string) map[string]string {
	out := make(map[string]string, len(values)+len(entities))
	for k, v := range entities {
		out[k] = v
	}
	// Collected values are confirmed by the user and win over fresh guesses.
	for k, v := range values {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

func satisfied(requires []string, fields map[string]string) bool {
	for _, f := range requires {
		if fields[f] == "" {
			return false
		}
	}
	return true
}

func fill(text string, fields map[string]string) string {
	pairs := make([]string, 0, len(fields)*2)
	for k, v := range fields {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
