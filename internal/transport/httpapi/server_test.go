package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/intake/internal/config"
	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/internal/metrics"
	"github.com/sandevgo/intake/internal/service/dialogue"
	"github.com/sandevgo/intake/internal/service/knowledge"
	"github.com/sandevgo/intake/internal/storage/sqlite"
)

type testAPI struct {
	ts        *httptest.Server
	inquiries *sqlite.InquiryRepo
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.NewDB(ctx, filepath.Join(t.TempDir(), "intake.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	reg := prometheus.NewRegistry()
	inquiries := sqlite.NewInquiryRepo(db)
	engine := dialogue.NewEngine(dialogue.Deps{
		Gateway:     inquiries,
		Knowledge:   knowledge.NewLoader(sqlite.NewKnowledgeRepo(db)),
		Transcripts: sqlite.NewMessagesRepo(db),
		Recorder:    metrics.New(reg),
	})
	sessions := dialogue.NewRegistry(engine, core.LangEnglish, time.Hour)

	cfg := &config.HTTPConfig{Addr: ":0", TurnTimeout: 5 * time.Second}
	srv := NewServer(ctx, cfg, sessions, reg)

	ts := httptest.NewServer(srv.http.Handler)
	t.Cleanup(ts.Close)
	return &testAPI{ts: ts, inquiries: inquiries}
}

func (a *testAPI) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, a.ts.URL+path, rd)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(bytes.TrimSpace(raw)) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestAPI_InterviewOverHTTP(t *testing.T) {
	api := newTestAPI(t)

	status, created := api.do(t, http.MethodPost, "/v1/sessions", `{"id":"web-1"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "web-1", created["id"])
	assert.Equal(t, "en", created["language"])
	assert.NotEmpty(t, created["greeting"])
	assert.Len(t, created["quickReplies"], 3)

	status, res := api.do(t, http.MethodPost, "/v1/sessions/web-1/turns", `{"message":"I need a logo design"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "collect", res["branch"])
	assert.Equal(t, true, res["collecting"])
	intent := res["intent"].(map[string]any)
	assert.Equal(t, "service_inquiry", intent["category"])

	for _, msg := range []string{
		"Jane Doe", "jane@example.com", "skip", "skip", "skip", "in about 2 months",
		"A modern logo for our new bakery",
	} {
		status, res = api.do(t, http.MethodPost, "/v1/sessions/web-1/turns", `{"message":"`+msg+`"}`)
		require.Equal(t, http.StatusOK, status)
	}
	assert.Equal(t, "complete", res["branch"])
	assert.Equal(t, false, res["collecting"])
	assert.Contains(t, res["text"], "jane@example.com")

	saved, err := api.inquiries.ListInquiries(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Jane Doe", saved[0].Name)

	status, msgs := api.do(t, http.MethodGet, "/v1/sessions/web-1/messages", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, msgs["messages"], 16)

	status, _ = api.do(t, http.MethodDelete, "/v1/sessions/web-1", "")
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = api.do(t, http.MethodPost, "/v1/sessions/web-1/turns", `{"message":"hello"}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_RepeatedQuestionIsCached(t *testing.T) {
	api := newTestAPI(t)

	_, created := api.do(t, http.MethodPost, "/v1/sessions", "")
	id := created["id"].(string)

	_, first := api.do(t, http.MethodPost, "/v1/sessions/"+id+"/turns", `{"message":"What does it cost?"}`)
	_, second := api.do(t, http.MethodPost, "/v1/sessions/"+id+"/turns", `{"message":"  what does it cost?  "}`)

	assert.Equal(t, false, first["cached"])
	assert.Equal(t, true, second["cached"])
	assert.Equal(t, first["text"], second["text"])
}

func TestAPI_Errors(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{name: "unknown language", method: http.MethodPost, path: "/v1/sessions", body: `{"language":"fr"}`, status: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPost, path: "/v1/sessions", body: `{"lang":"en"}`, status: http.StatusBadRequest},
		{name: "missing session", method: http.MethodGet, path: "/v1/sessions/nope", status: http.StatusNotFound},
		{name: "delete missing", method: http.MethodDelete, path: "/v1/sessions/nope", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := api.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, body["error"])
		})
	}

	_, created := api.do(t, http.MethodPost, "/v1/sessions", `{"id":"dup","language":"ko"}`)
	assert.Equal(t, "ko", created["language"])
	status, _ := api.do(t, http.MethodPost, "/v1/sessions", `{"id":"dup"}`)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = api.do(t, http.MethodPost, "/v1/sessions/dup/turns", "not json")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_HealthAndMetrics(t *testing.T) {
	api := newTestAPI(t)

	resp, err := http.Get(api.ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, created := api.do(t, http.MethodPost, "/v1/sessions", "")
	api.do(t, http.MethodPost, "/v1/sessions/"+created["id"].(string)+"/turns", `{"message":"hello"}`)

	resp, err = http.Get(api.ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "intake_turns_total")
}
