package knowledge

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sandevgo/intake/internal/core"
)

// MinOverlap is the number of shared words a question needs before its answer is served.
const MinOverlap = 2

// stopWords never count towards an overlap.
var stopWords = map[string]struct{}{
	"the": {}, "is": {}, "are": {}, "do": {}, "does": {}, "you": {}, "your": {},
	"what": {}, "how": {}, "can": {}, "and": {}, "for": {}, "of": {}, "to": {},
	"in": {}, "it": {}, "we": {}, "my": {}, "me": {}, "an": {},
}

// Store holds one language's knowledge entries in load order. It is read-only
// after construction and can be shared between sessions.
type Store struct {
	items []entry
}

type entry struct {
	item  core.KnowledgeItem
	words []string
}

func NewStore(items []core.KnowledgeItem) *Store {
	s := &Store{items: make([]entry, 0, len(items))}
	for _, it := range items {
		s.items = append(s.items, entry{item: it, words: tokenize(it.Question)})
	}
	return s
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

func (s *Store) Items() []core.KnowledgeItem {
	if s == nil {
		return nil
	}
	out := make([]core.KnowledgeItem, len(s.items))
	for i, e := range s.items {
		out[i] = e.item
	}
	return out
}

// FindBestAnswer returns the answer of the first entry in lang whose question
// shares at least MinOverlap words with the utterance. Words overlap when one
// contains the other.
func (s *Store) FindBestAnswer(utterance string, lang core.Language) (string, bool) {
	if s == nil {
		return "", false
	}
	words := tokenize(utterance)
	if len(words) == 0 {
		return "", false
	}

	for _, e := range s.items {
		if e.item.Language != lang {
			continue
		}
		if overlap(e.words, words) >= MinOverlap {
			return e.item.Answer, true
		}
	}
	return "", false
}

func overlap(question, utterance []string) int {
	n := 0
	for _, qw := range question {
		for _, uw := range utterance {
			if strings.Contains(uw, qw) || strings.Contains(qw, uw) {
				n++
				break
			}
		}
	}
	return n
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	words := fields[:0]
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < 2 {
			continue
		}
		if _, ok := stopWords[f]; ok {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		words = append(words, f)
	}
	return words
}
