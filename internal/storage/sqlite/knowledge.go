package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sandevgo/intake/internal/core"
)

type KnowledgeRepo struct {
	db *sql.DB
}

func NewKnowledgeRepo(db *sql.DB) *KnowledgeRepo {
	return &KnowledgeRepo{db: db}
}

// LoadKnowledge returns entries for lang in insertion order, which is the
// order matching walks them.
func (r *KnowledgeRepo) LoadKnowledge(ctx context.Context, lang core.Language) ([]core.KnowledgeItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, question, answer, tags, language FROM knowledge WHERE language = ? ORDER BY id`,
		string(lang))
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge: %w", err)
	}
	defer rows.Close()
	return scanKnowledge(rows)
}

// List returns every entry, optionally filtered by language.
func (r *KnowledgeRepo) List(ctx context.Context, lang core.Language) ([]core.KnowledgeItem, error) {
	if lang != "" {
		return r.LoadKnowledge(ctx, lang)
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, question, answer, tags, language FROM knowledge ORDER BY language, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge: %w", err)
	}
	defer rows.Close()
	return scanKnowledge(rows)
}

// Upsert inserts items in order; an existing (language, question) pair gets
// its answer, category and tags replaced but keeps its position.
func (r *KnowledgeRepo) Upsert(ctx context.Context, items []core.KnowledgeItem) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO knowledge (category, question, answer, tags, language) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (language, question) DO UPDATE SET
		   category = excluded.category, answer = excluded.answer, tags = excluded.tags`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare knowledge upsert: %w", err)
	}
	defer stmt.Close()

	for _, it := range items {
		tags, err := json.Marshal(it.Tags)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal tags: %w", err)
		}
		if it.Tags == nil {
			tags = []byte("[]")
		}
		if _, err := stmt.ExecContext(ctx, it.Category, it.Question, it.Answer, string(tags), string(it.Language)); err != nil {
			return 0, fmt.Errorf("failed to upsert knowledge %q: %w", it.Question, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(items), nil
}

func scanKnowledge(rows *sql.Rows) ([]core.KnowledgeItem, error) {
	var items []core.KnowledgeItem
	for rows.Next() {
		var (
			it   core.KnowledgeItem
			tags string
			lang string
		)
		if err := rows.Scan(&it.ID, &it.Category, &it.Question, &it.Answer, &tags, &lang); err != nil {
			return nil, fmt.Errorf("failed to scan knowledge: %w", err)
		}
		if tags != "" {
			if err := json.Unmarshal([]byte(tags), &it.Tags); err != nil {
				return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
			}
		}
		it.Language = core.Language(lang)
		items = append(items, it)
	}
	return items, rows.Err()
}
