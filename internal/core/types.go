package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	AppName       = "Intake"
	AppUserAgent  = "Intake-Agent/0.1"
	RepositoryURL = "https://github.com/sandevgo/intake"
	AppVersion    = "0.1.0"
)

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// ChatMessage is one immutable entry of a session transcript.
type ChatMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Role maps the sender onto the chat-completion role vocabulary.
func (m ChatMessage) Role() string {
	if m.Sender == SenderAgent {
		return RoleAssistant
	}
	return RoleUser
}

type Language string

const (
	LangEnglish Language = "en"
	LangKorean  Language = "ko"
	LangChinese Language = "zh"
)

// Languages lists every supported language in display order.
var Languages = []Language{LangEnglish, LangKorean, LangChinese}

func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LangEnglish:
		return LangEnglish, nil
	case LangKorean:
		return LangKorean, nil
	case LangChinese:
		return LangChinese, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

type IntentCategory string

const (
	IntentServiceInquiry IntentCategory = "service_inquiry"
	IntentPricing        IntentCategory = "pricing"
	IntentConsultation   IntentCategory = "consultation"
	IntentSupport        IntentCategory = "support"
	IntentGeneral        IntentCategory = "general"
)

// IntentPriority is the tie-break order used when two categories score equally.
var IntentPriority = []IntentCategory{
	IntentServiceInquiry,
	IntentPricing,
	IntentConsultation,
	IntentGeneral,
	IntentSupport,
}

// Intent is recomputed on every turn and never persisted.
type Intent struct {
	Category   IntentCategory    `json:"category"`
	Confidence float64           `json:"confidence"`
	Entities   map[string]string `json:"entities,omitempty"`
}

// KnowledgeItem is a question/answer pair served verbatim when matched.
type KnowledgeItem struct {
	ID       int64    `json:"id,omitempty" yaml:"id,omitempty"`
	Category string   `json:"category" yaml:"category"`
	Question string   `json:"question" yaml:"question"`
	Answer   string   `json:"answer" yaml:"answer"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty,flow"`
	Language Language `json:"language" yaml:"language"`
}

// InquiryRecord is handed to the persistence gateway once slot collection completes.
type InquiryRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone,omitempty"`
	InquiryType IntentCategory  `json:"inquiry_type"`
	Description string          `json:"description"`
	Language    Language        `json:"language"`
	Metadata    json.RawMessage `json:"metadata"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Slot field keys shared by the interview script, templates and entity extraction.
const (
	FieldName          = "name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldCompany       = "company"
	FieldServiceNeeded = "serviceNeeded"
	FieldBudget        = "budget"
	FieldTimeline      = "timeline"
	FieldDescription   = "description"
	FieldBusinessType  = "businessType"
)
