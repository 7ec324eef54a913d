package dialogue

import "github.com/sandevgo/intake/internal/core"

// notCollecting marks a context with no active interview step.
const notCollecting = -1

// Context accumulates what a session has learned. Slot keys are unique; later
// values overwrite earlier ones.
type Context struct {
	Slots    map[string]string
	Turns    int
	Language core.Language
	Step     int
	// Topic is the intent that opened the current interview.
	Topic core.IntentCategory
	// PendingSave is set when a finished interview could not be saved yet.
	PendingSave bool
	// InquiryID stays fixed across save attempts of one interview.
	InquiryID string
}

func NewContext(lang core.Language) *Context {
	return &Context{
		Slots:    make(map[string]string),
		Language: lang,
		Step:     notCollecting,
	}
}

func (c *Context) Collecting() bool {
	return c.Step != notCollecting
}

// Merge overwrites slots with every non-empty entity.
func (c *Context) Merge(entities map[string]string) {
	for k, v := range entities {
		if v != "" {
			c.Slots[k] = v
		}
	}
}

// Fill only sets slots that are still empty.
func (c *Context) Fill(entities map[string]string) {
	for k, v := range entities {
		if v != "" && c.Slots[k] == "" {
			c.Slots[k] = v
		}
	}
}

// Reset ends an interview and forgets its answers.
func (c *Context) Reset() {
	c.Step = notCollecting
	c.Topic = ""
	c.PendingSave = false
	c.InquiryID = ""
	c.Slots = make(map[string]string)
}

// Clone returns a deep copy, safe to hand out to readers.
func (c *Context) Clone() Context {
	out := *c
	out.Slots = make(map[string]string, len(c.Slots))
	for k, v := range c.Slots {
		out.Slots[k] = v
	}
	return out
}
