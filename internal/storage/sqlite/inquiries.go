package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/intake/internal/core"
)

// InquiryRepo is the persistence gateway for completed interviews.
type InquiryRepo struct {
	db *sql.DB
}

func NewInquiryRepo(db *sql.DB) *InquiryRepo {
	return &InquiryRepo{db: db}
}

func (r *InquiryRepo) SaveInquiry(ctx context.Context, rec core.InquiryRecord) error {
	meta := string(rec.Metadata)
	if meta == "" {
		meta = "{}"
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO inquiries (id, name, email, phone, inquiry_type, description, language, metadata, created_at, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Email, rec.Phone, string(rec.InquiryType), rec.Description,
		string(rec.Language), meta, rec.CreatedAt.UTC(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%w: insert inquiry: %v", core.ErrPersistenceFailed, err)
	}
	return nil
}

// ListInquiries returns the newest inquiries first.
func (r *InquiryRepo) ListInquiries(ctx context.Context, limit int) ([]core.StoredInquiry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, phone, inquiry_type, description, language, metadata, created_at, saved_at
		 FROM inquiries ORDER BY saved_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query inquiries: %w", err)
	}
	defer rows.Close()

	var out []core.StoredInquiry
	for rows.Next() {
		var (
			s        core.StoredInquiry
			kind     string
			lang     string
			metadata string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &kind, &s.Description,
			&lang, &metadata, &s.CreatedAt, &s.SavedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		s.InquiryType = core.IntentCategory(kind)
		s.Language = core.Language(lang)
		s.Metadata = []byte(metadata)
		out = append(out, s)
	}
	return out, rows.Err()
}
