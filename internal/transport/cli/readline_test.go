package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatReplies(t *testing.T) {
	tests := []struct {
		name    string
		replies []string
		want    string
	}{
		{name: "none", replies: nil, want: ""},
		{name: "single", replies: []string{"Skip"}, want: "  [Skip]"},
		{name: "several", replies: []string{"Our services", "Pricing"}, want: "  [Our services] [Pricing]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatReplies(tt.replies))
		})
	}
}
