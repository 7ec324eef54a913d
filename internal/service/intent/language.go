package intent

import (
	"unicode"

	"github.com/sandevgo/intake/internal/core"
)

// Detector guesses the language of an utterance. ok is false when the text
// carries no letters to judge by.
type Detector interface {
	Detect(text string) (lang core.Language, ok bool)
}

// ScriptDetector classifies by Unicode script: Hangul wins over Han, Han over Latin.
type ScriptDetector struct{}

func NewScriptDetector() ScriptDetector {
	return ScriptDetector{}
}

func (ScriptDetector) Detect(text string) (core.Language, bool) {
	var hangul, han, latin int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Hangul, r):
			hangul++
		case unicode.Is(unicode.Han, r):
			han++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}

	switch {
	case hangul > 0:
		return core.LangKorean, true
	case han > 0:
		return core.LangChinese, true
	case latin > 0:
		return core.LangEnglish, true
	}
	return "", false
}
