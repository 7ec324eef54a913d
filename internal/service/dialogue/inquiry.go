package dialogue

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/intake/internal/core"
)

type inquiryMetadata struct {
	Slots    map[string]string  `json:"slots"`
	Turns    int                `json:"turns"`
	Topic    string             `json:"topic"`
	Session  string             `json:"session"`
	History  []core.ChatMessage `json:"history"`
	Complete bool               `json:"complete"`
}

var summaryFields = []struct {
	key   string
	label string
}{
	{core.FieldServiceNeeded, "Service"},
	{core.FieldCompany, "Company"},
	{core.FieldBusinessType, "Business type"},
	{core.FieldBudget, "Budget"},
	{core.FieldTimeline, "Timeline"},
	{core.FieldPhone, "Phone"},
}

func (e *Engine) buildRecord(s *Session) core.InquiryRecord {
	values := s.Context.Slots
	topic := s.Context.Topic
	if topic == "" {
		topic = core.IntentServiceInquiry
	}

	meta, err := json.Marshal(inquiryMetadata{
		Slots:    values,
		Turns:    s.Context.Turns,
		Topic:    string(topic),
		Session:  s.ID,
		History:  s.History,
		Complete: e.collector.Complete(values),
	})
	if err != nil {
		meta = []byte("{}")
	}

	return core.InquiryRecord{
		ID:          s.Context.InquiryID,
		Name:        values[core.FieldName],
		Email:       values[core.FieldEmail],
		Phone:       values[core.FieldPhone],
		InquiryType: topic,
		Description: describe(values),
		Language:    s.Context.Language,
		Metadata:    meta,
		CreatedAt:   time.Now().UTC(),
	}
}

// describe turns collected slots into the human readable inquiry body.
func describe(values map[string]string) string {
	var b strings.Builder
	for _, f := range summaryFields {
		if v := values[f.key]; v != "" {
			fmt.Fprintf(&b, "%s: %s\n", f.label, v)
		}
	}
	if d := values[core.FieldDescription]; d != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(d)
	}
	return strings.TrimRight(b.String(), "\n")
}
