package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/internal/service/dialogue"
)

type nopGateway struct{}

func (nopGateway) SaveInquiry(context.Context, core.InquiryRecord) error { return nil }

func newRouter(t *testing.T) (*Router, *dialogue.Registry) {
	t.Helper()
	sessions := dialogue.NewRegistry(dialogue.NewEngine(dialogue.Deps{Gateway: nopGateway{}}), core.LangEnglish, 0)
	return New(NewCommands(sessions)), sessions
}

func TestRouter_NotACommand(t *testing.T) {
	r, _ := newRouter(t)
	_, handled := r.Execute(context.Background(), "s", "hello there")
	assert.False(t, handled)
}

func TestRouter_Help(t *testing.T) {
	r, _ := newRouter(t)

	out, handled := r.Execute(context.Background(), "s", "/help")
	require.True(t, handled)
	assert.Contains(t, out, "/lang")
	assert.Contains(t, out, "/reset")

	out, handled = r.Execute(context.Background(), "s", "/nope")
	require.True(t, handled)
	assert.Contains(t, out, "unknown command: /nope")
	assert.Contains(t, out, "/reset")
}

func TestResetCommand_AbandonsInterview(t *testing.T) {
	ctx := context.Background()
	r, sessions := newRouter(t)

	conv := sessions.Create(ctx, "s", core.LangKorean)
	conv.Turn(ctx, "로고 디자인이 필요해요")
	require.True(t, conv.Collecting())

	out, handled := r.Execute(ctx, "s", "/reset@intake_bot")
	require.True(t, handled)
	assert.Contains(t, out, "안녕하세요")

	fresh, err := sessions.Get("s")
	require.NoError(t, err)
	assert.NotSame(t, conv, fresh)
	assert.False(t, fresh.Collecting())
	assert.Equal(t, core.LangKorean, fresh.Language())
}

func TestLanguageCommand(t *testing.T) {
	ctx := context.Background()
	r, sessions := newRouter(t)

	out, _ := r.Execute(ctx, "s", "/lang")
	assert.Contains(t, out, "Usage")

	out, _ = r.Execute(ctx, "s", "/lang fr")
	assert.Contains(t, out, "Command Error")

	out, _ = r.Execute(ctx, "s", "/lang zh")
	assert.Contains(t, out, "您好")
	conv, err := sessions.Get("s")
	require.NoError(t, err)
	assert.Equal(t, core.LangChinese, conv.Language())
}
