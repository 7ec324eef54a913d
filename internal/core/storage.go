package core

import (
	"context"
	"time"
)

// InquiryGateway persists a completed inquiry. It must report success synchronously.
type InquiryGateway interface {
	SaveInquiry(ctx context.Context, record InquiryRecord) error
}

// KnowledgeLoader returns the ordered knowledge entries for one language.
type KnowledgeLoader interface {
	LoadKnowledge(ctx context.Context, lang Language) ([]KnowledgeItem, error)
}

// TranscriptRepository stores chat messages per session.
type TranscriptRepository interface {
	AddMessage(ctx context.Context, sessionID string, msg ChatMessage) error
	GetMessages(ctx context.Context, sessionID string, limit int) ([]ChatMessage, error)
}

type StoredInquiry struct {
	InquiryRecord
	SavedAt time.Time `json:"saved_at"`
}
