package slots

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validator reports whether a trimmed answer is acceptable for a step.
type Validator func(value string) bool

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@.]{2,}$`)

// MinLength accepts answers with at least n characters (runes, not bytes).
func MinLength(n int) Validator {
	return func(value string) bool {
		return utf8.RuneCountInString(strings.TrimSpace(value)) >= n
	}
}

func Email(value string) bool {
	return emailShape.MatchString(strings.TrimSpace(value))
}

// Any accepts everything, including an empty answer.
func Any(string) bool {
	return true
}

var skipWords = map[string]struct{}{
	"skip": {}, "no": {}, "none": {}, "n/a": {}, "na": {}, "-": {}, "pass": {},
	"건너뛰기": {}, "스킵": {}, "없음": {}, "없어요": {}, "아니요": {},
	"跳过": {}, "没有": {}, "无": {}, "不用": {},
}

// IsSkip reports whether the answer asks to leave an optional field blank.
func IsSkip(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.TrimRight(v, ".!。！")
	_, ok := skipWords[v]
	return ok
}
