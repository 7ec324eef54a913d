package intent

import (
	"strings"

	"github.com/sandevgo/intake/internal/core"
)

// Classifier turns matcher signals into a single ranked intent.
type Classifier struct {
	matcher *Matcher
}

func NewClassifier(matcher *Matcher) *Classifier {
	if matcher == nil {
		matcher = NewMatcher()
	}
	return &Classifier{matcher: matcher}
}

// Classify never fails: empty or unmatched text yields a low-confidence general intent.
func (c *Classifier) Classify(text string, lang core.Language) core.Intent {
	result := core.Intent{
		Category:   core.IntentGeneral,
		Confidence: baselineConfidence,
	}
	if strings.TrimSpace(text) == "" {
		return result
	}

	signals := c.matcher.Match(text, lang)
	if len(signals.Entities) > 0 {
		result.Entities = signals.Entities
	}

	best := Signal{}
	for _, category := range core.IntentPriority {
		sig := signals.Intents[category]
		// Strict comparison keeps the earlier (higher priority) category on ties.
		if sig.Hits > best.Hits {
			best = sig
			result.Category = category
		}
	}

	if best.Hits > 0 {
		result.Confidence = clamp(best.Confidence)
	}
	return result
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
