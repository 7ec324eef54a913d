package slots

import (
	"strings"

	"github.com/sandevgo/intake/internal/core"
)

type State int

const (
	StateIdle State = iota
	StateCollecting
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateCollecting:
		return "collecting"
	case StateComplete:
		return "complete"
	default:
		return "idle"
	}
}

// Outcome describes where the collector stands after a call.
type Outcome struct {
	State    State
	Index    int
	Rejected bool
	// Field is the key of the step that was just answered (or rejected).
	Field string
}

// Collector walks a fixed interview script. It holds no session state; callers
// keep the current index and the collected values.
type Collector struct {
	steps []Definition
}

func NewCollector(steps []Definition) *Collector {
	if len(steps) == 0 {
		steps = DefaultScript
	}
	return &Collector{steps: steps}
}

func (c *Collector) Len() int {
	return len(c.steps)
}

func (c *Collector) Step(i int) (Definition, bool) {
	if i < 0 || i >= len(c.steps) {
		return Definition{}, false
	}
	return c.steps[i], true
}

// ShouldStart reports whether an intent calls for gathering inquiry details.
// Pricing questions only qualify when they already name a service.
func ShouldStart(intent core.Intent) bool {
	switch intent.Category {
	case core.IntentServiceInquiry, core.IntentConsultation:
		return true
	case core.IntentPricing:
		return intent.Entities[core.FieldServiceNeeded] != ""
	case core.IntentSupport, core.IntentGeneral:
		return false
	}
	return false
}

// Start returns the first step still missing a valid value.
func (c *Collector) Start(values map[string]string) Outcome {
	return c.moveTo(c.next(0, values))
}

// Advance validates input against step index. Accepted values are written to
// values; a rejection leaves both values and the index untouched.
func (c *Collector) Advance(index int, input string, values map[string]string) Outcome {
	step, ok := c.Step(index)
	if !ok {
		return Outcome{State: StateComplete, Index: len(c.steps)}
	}

	value := strings.TrimSpace(input)
	if !step.Required && IsSkip(value) {
		value = ""
	}
	if !step.Validate(value) {
		return Outcome{State: StateCollecting, Index: index, Rejected: true, Field: step.Field}
	}

	values[step.Field] = value
	out := c.moveTo(c.next(index+1, values))
	out.Field = step.Field
	return out
}

// Complete reports whether every required step holds a value its validator accepts.
func (c *Collector) Complete(values map[string]string) bool {
	for _, step := range c.steps {
		if step.Required && !c.filled(step, values) {
			return false
		}
	}
	return true
}

func (c *Collector) next(from int, values map[string]string) int {
	for i := from; i < len(c.steps); i++ {
		if !c.filled(c.steps[i], values) {
			return i
		}
	}
	return len(c.steps)
}

// filled treats a step as answered when it already carries a non-empty value
// that passes validation, e.g. an email picked up from an earlier message.
func (c *Collector) filled(step Definition, values map[string]string) bool {
	v, ok := values[step.Field]
	return ok && v != "" && step.Validate(v)
}

func (c *Collector) moveTo(index int) Outcome {
	if index >= len(c.steps) {
		return Outcome{State: StateComplete, Index: len(c.steps)}
	}
	return Outcome{State: StateCollecting, Index: index}
}
