package knowledge

import (
	"context"
	"fmt"

	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/pkg/log"
)

// Loader reads knowledge from a repository and falls back to the built-in
// entries when the repository has nothing for a language.
type Loader struct {
	repo     core.KnowledgeLoader
	defaults []core.KnowledgeItem
}

// NewLoader accepts a nil repo, in which case only built-in entries are served.
func NewLoader(repo core.KnowledgeLoader) *Loader {
	return &Loader{repo: repo, defaults: Defaults()}
}

func (l *Loader) LoadKnowledge(ctx context.Context, lang core.Language) ([]core.KnowledgeItem, error) {
	if l.repo != nil {
		items, err := l.repo.LoadKnowledge(ctx, lang)
		if err != nil {
			return nil, fmt.Errorf("failed to load knowledge for %s: %w", lang, err)
		}
		if len(items) > 0 {
			return items, nil
		}
		log.FromCtx(ctx).Debug().Str("lang", string(lang)).Msg("no stored knowledge, using built-in entries")
	}

	var out []core.KnowledgeItem
	for _, it := range l.defaults {
		if it.Language == lang {
			out = append(out, it)
		}
	}
	return out, nil
}

// Load builds a Store for lang.
func (l *Loader) Load(ctx context.Context, lang core.Language) (*Store, error) {
	items, err := l.LoadKnowledge(ctx, lang)
	if err != nil {
		return nil, err
	}
	return NewStore(items), nil
}
