package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitHTML(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   int
	}{
		{name: "fits", text: "short", maxLen: 10, want: 1},
		{name: "hard cut", text: strings.Repeat("a", 25), maxLen: 10, want: 3},
		{name: "newline break", text: strings.Repeat("a", 6) + "\n" + strings.Repeat("b", 6), maxLen: 10, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := splitHTML(tt.text, tt.maxLen)
			assert.Len(t, chunks, tt.want)
			for _, c := range chunks {
				assert.LessOrEqual(t, len(c), tt.maxLen)
			}
		})
	}
}

func TestKeyboard(t *testing.T) {
	markup := keyboard([]string{"Our services", "Pricing"})
	require.Len(t, markup.ReplyKeyboard, 2)
	assert.Equal(t, "Our services", markup.ReplyKeyboard[0][0].Text)
	assert.True(t, markup.OneTimeKeyboard)
	assert.False(t, markup.RemoveKeyboard)

	empty := keyboard(nil)
	assert.True(t, empty.RemoveKeyboard)
	assert.Empty(t, empty.ReplyKeyboard)
}

func TestSessionID(t *testing.T) {
	assert.Equal(t, "telegram--100123", sessionID(-100123))
}
