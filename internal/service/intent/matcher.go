package intent

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sandevgo/intake/internal/core"
)

// Confidence floors per category once at least one keyword matched.
var confidenceFloor = map[core.IntentCategory]float64{
	core.IntentServiceInquiry: 0.8,
	core.IntentPricing:        0.7,
	core.IntentConsultation:   0.6,
	core.IntentSupport:        0.5,
	core.IntentGeneral:        0.4,
}

const (
	baselineConfidence = 0.3
	perHitBoost        = 0.05
	maxConfidence      = 0.95
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s\-().]{6,}\d`)

	budgetPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[$€£₩¥]\s?\d[\d,]*(?:\.\d+)?(?:\s?[kKmM]\b)?`),
		regexp.MustCompile(`(?i)\d[\d,]*(?:\.\d+)?\s?(?:k\s?)?(?:usd|dollars?|eur|euros?|krw|won|bucks)\b`),
		regexp.MustCompile(`\d[\d,]*(?:\.\d+)?\s?(?:만\s?원|천\s?원|억\s?원|원|万元|万|元|块)`),
	}

	timelinePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b\d+\s?(?:-\s?\d+\s?)?(?:days?|weeks?|months?|years?)\b`),
		regexp.MustCompile(`\d+\s?(?:-\s?\d+\s?)?(?:일|주|개월|달|년|天|周|个月|月|年)`),
	}
)

// Signal is the raw evidence for one intent category.
type Signal struct {
	Hits       int
	Confidence float64
}

// Signals is the output of a single Match call.
type Signals struct {
	Intents  map[core.IntentCategory]Signal
	Entities map[string]string
}

// Matcher scores text against keyword tables and entity patterns. It holds no
// mutable state and is safe for concurrent use.
type Matcher struct{}

func NewMatcher() *Matcher {
	return &Matcher{}
}

func (m *Matcher) Match(text string, lang core.Language) Signals {
	signals := Signals{
		Intents:  make(map[core.IntentCategory]Signal, len(core.IntentPriority)),
		Entities: make(map[string]string),
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return signals
	}

	norm := normalize(trimmed)
	for _, tableLang := range searchLanguages(lang) {
		for _, category := range core.IntentPriority {
			for _, kw := range intentKeywords[tableLang][category] {
				if containsKeyword(norm, kw) {
					signals.hit(category)
				}
			}
		}
	}

	m.extractEntities(trimmed, norm, lang, signals.Entities)

	// A currency amount is pricing evidence even without a pricing keyword.
	if _, ok := signals.Entities[core.FieldBudget]; ok {
		signals.hit(core.IntentPricing)
	}

	return signals
}

func (s Signals) hit(category core.IntentCategory) {
	sig := s.Intents[category]
	sig.Hits++

	conf := confidenceFloor[category] + perHitBoost*float64(sig.Hits-1)
	if conf > maxConfidence {
		conf = maxConfidence
	}
	// Confidence only ever rises within a turn.
	if conf > sig.Confidence {
		sig.Confidence = conf
	}
	s.Intents[category] = sig
}

func (m *Matcher) extractEntities(raw, norm string, lang core.Language, out map[string]string) {
	if email := emailPattern.FindString(raw); email != "" {
		out[core.FieldEmail] = email
	}

	// Strip emails first so their digits are not read as a phone number.
	withoutEmail := emailPattern.ReplaceAllString(raw, " ")
	for _, p := range budgetPatterns {
		if v := p.FindString(withoutEmail); v != "" {
			out[core.FieldBudget] = strings.TrimSpace(v)
			break
		}
	}

	for _, p := range timelinePatterns {
		if v := p.FindString(withoutEmail); v != "" {
			out[core.FieldTimeline] = strings.TrimSpace(v)
			break
		}
	}
	if _, ok := out[core.FieldTimeline]; !ok {
		for _, tableLang := range searchLanguages(lang) {
			if v := firstKeyword(norm, urgencyWords[tableLang]); v != "" {
				out[core.FieldTimeline] = v
				break
			}
		}
	}

	if _, isBudget := out[core.FieldBudget]; !isBudget {
		if v := phonePattern.FindString(withoutEmail); v != "" && countDigits(v) >= 8 {
			out[core.FieldPhone] = strings.TrimSpace(v)
		}
	}

	for _, tableLang := range searchLanguages(lang) {
		if v := firstKeyword(norm, businessTypes[tableLang]); v != "" {
			out[core.FieldBusinessType] = v
			break
		}
	}

	for _, entry := range serviceCatalog {
		if firstKeyword(norm, entry.keywords) != "" {
			out[core.FieldServiceNeeded] = entry.label(lang)
			break
		}
	}
}

func (e serviceEntry) label(lang core.Language) string {
	if l, ok := e.labels[lang]; ok {
		return l
	}
	return e.labels[core.LangEnglish]
}

// searchLanguages returns the hint language followed by English, which is
// commonly mixed into non-English messages.
func searchLanguages(lang core.Language) []core.Language {
	if lang == "" || lang == core.LangEnglish {
		return []core.Language{core.LangEnglish}
	}
	return []core.Language{lang, core.LangEnglish}
}

func firstKeyword(norm string, keywords []string) string {
	for _, kw := range keywords {
		if containsKeyword(norm, kw) {
			return kw
		}
	}
	return ""
}

// normalize lowercases text and turns punctuation into single spaces, padded
// on both ends so whole-word checks can look for " kw".
func normalize(text string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '\'':
			return unicode.ToLower(r)
		default:
			return ' '
		}
	}, text)
	return " " + strings.Join(strings.Fields(mapped), " ") + " "
}

var inflections = []string{"", "s", "es", "ed", "ing", "er"}

// containsKeyword matches ASCII keywords on word boundaries (allowing simple
// English inflections) and other scripts by plain substring containment.
func containsKeyword(norm, kw string) bool {
	if !isASCII(kw) {
		return strings.Contains(norm, kw)
	}

	needle := " " + kw
	rest := norm
	for {
		idx := strings.Index(rest, needle)
		if idx < 0 {
			return false
		}
		tail := rest[idx+len(needle):]
		for _, suffix := range inflections {
			if strings.HasPrefix(tail, suffix+" ") {
				return true
			}
		}
		rest = rest[idx+1:]
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
