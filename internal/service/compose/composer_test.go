package compose

import (
	"testing"

	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/internal/service/slots"
	"github.com/stretchr/testify/assert"
)

func TestComposer_BranchOrder(t *testing.T) {
	c := NewComposer()
	pricing := core.Intent{Category: core.IntentPricing, Confidence: 0.7}
	step := slots.DefaultScript[1]

	text, branch := c.Compose(pricing, Snapshot{Prompt: &Prompt{Step: step}}, "stored answer", core.LangEnglish)
	assert.Equal(t, BranchCollect, branch)
	assert.Equal(t, step.Prompt(core.LangEnglish), text)

	text, branch = c.Compose(pricing, Snapshot{}, "stored answer", core.LangEnglish)
	assert.Equal(t, BranchKnowledge, branch)
	assert.Equal(t, "stored answer", text)

	text, branch = c.Compose(pricing, Snapshot{}, "", core.LangEnglish)
	assert.Equal(t, BranchTemplate, branch)
	assert.Contains(t, text, "Pricing depends on the scope")

	unmatched := core.Intent{Category: core.IntentGeneral, Confidence: 0.3}
	text, branch = c.Compose(unmatched, Snapshot{}, "", core.LangKorean)
	assert.Equal(t, BranchFallback, branch)
	assert.Equal(t, c.Fallback(core.LangKorean), text)
}

func TestComposer_RetryAndOpening(t *testing.T) {
	c := NewComposer()
	email := slots.DefaultScript[1]

	text, _ := c.Compose(core.Intent{}, Snapshot{Prompt: &Prompt{Step: email, Retry: true}}, "", core.LangEnglish)
	assert.Contains(t, text, email.Hint(core.LangEnglish))
	assert.Contains(t, text, email.Prompt(core.LangEnglish))

	name := slots.DefaultScript[0]
	text, _ = c.Compose(core.Intent{}, Snapshot{Prompt: &Prompt{Step: name, Opening: true}}, "", core.LangChinese)
	assert.Contains(t, text, leadInText[core.LangChinese])
	assert.Contains(t, text, name.Prompt(core.LangChinese))
}

func TestComposer_TemplateVariants(t *testing.T) {
	c := NewComposer()
	tests := []struct {
		name     string
		intent   core.Intent
		values   map[string]string
		lang     core.Language
		contains string
	}{
		{
			name: "budget and service",
			intent: core.Intent{Category: core.IntentPricing, Confidence: 0.75, Entities: map[string]string{
				core.FieldBudget: "$5,000", core.FieldServiceNeeded: "website",
			}},
			lang:     core.LangEnglish,
			contains: "a budget of $5,000 for website",
		},
		{
			name:     "budget from collected values",
			intent:   core.Intent{Category: core.IntentPricing, Confidence: 0.7},
			values:   map[string]string{core.FieldBudget: "500만원"},
			lang:     core.LangKorean,
			contains: "예산 500만원",
		},
		{
			name: "service with business",
			intent: core.Intent{Category: core.IntentServiceInquiry, Confidence: 0.8, Entities: map[string]string{
				core.FieldServiceNeeded: "website", core.FieldBusinessType: "bakery",
			}},
			lang:     core.LangEnglish,
			contains: "your website for your bakery",
		},
		{
			name:     "greeting by name",
			intent:   core.Intent{Category: core.IntentGeneral, Confidence: 0.4},
			values:   map[string]string{core.FieldName: "Mina"},
			lang:     core.LangKorean,
			contains: "Mina님",
		},
		{
			name:     "unknown language falls back to english",
			intent:   core.Intent{Category: core.IntentSupport, Confidence: 0.5},
			lang:     core.Language("fr"),
			contains: "Sorry to hear",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, branch := c.Compose(tt.intent, Snapshot{Values: tt.values}, "", tt.lang)
			assert.Equal(t, BranchTemplate, branch)
			assert.Contains(t, text, tt.contains)
			assert.NotContains(t, text, "{")
		})
	}
}

func TestTemplates_EveryCategoryAndLanguageResolves(t *testing.T) {
	c := NewComposer()
	for _, category := range core.IntentPriority {
		for _, lang := range core.Languages {
			intent := core.Intent{Category: category, Confidence: 0.9}
			text, branch := c.Compose(intent, Snapshot{}, "", lang)
			assert.Equal(t, BranchTemplate, branch, "%s/%s", category, lang)
			assert.NotEmpty(t, text)
			assert.NotContains(t, text, "{", "%s/%s", category, lang)
		}
	}
}

func TestComposer_Completion(t *testing.T) {
	c := NewComposer()
	text := c.Completion(map[string]string{core.FieldName: "Jane", core.FieldEmail: "jane@example.com"}, core.LangEnglish)
	assert.Equal(t, "Thank you, Jane! Your inquiry has been submitted. Our team will contact you at jane@example.com shortly.", text)
}

func TestComposer_GreetingPerLanguage(t *testing.T) {
	c := NewComposer()
	assert.Contains(t, c.Greeting(core.LangEnglish), "Hello")
	assert.Contains(t, c.Greeting(core.LangKorean), "안녕하세요")
	assert.Contains(t, c.Greeting(core.LangChinese), "您好")
	assert.Equal(t, c.Greeting(core.LangEnglish), c.Greeting("fr"))
}

func TestComposer_QuickReplies(t *testing.T) {
	c := NewComposer()

	idle := c.QuickReplies(nil, core.LangKorean)
	assert.Len(t, idle, 3)

	required := slots.DefaultScript[0]
	assert.Empty(t, c.QuickReplies(&required, core.LangEnglish))

	optional := slots.DefaultScript[2]
	skip := c.QuickReplies(&optional, core.LangChinese)
	assert.Equal(t, []string{"跳过"}, skip)
	assert.True(t, slots.IsSkip(skip[0]))
}

func TestBranch_Cacheable(t *testing.T) {
	assert.False(t, BranchCollect.Cacheable())
	assert.False(t, BranchError.Cacheable())
	assert.False(t, BranchComplete.Cacheable())
	assert.True(t, BranchKnowledge.Cacheable())
	assert.True(t, BranchTemplate.Cacheable())
	assert.True(t, BranchFallback.Cacheable())
}
