package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/internal/service/dialogue"
)

const maxBodyBytes = 64 << 10

type createSessionRequest struct {
	ID       string `json:"id,omitempty"`
	Language string `json:"language,omitempty"`
}

type sessionResponse struct {
	ID           string        `json:"id"`
	Language     core.Language `json:"language"`
	Collecting   bool          `json:"collecting"`
	Greeting     string        `json:"greeting,omitempty"`
	QuickReplies []string      `json:"quickReplies"`
}

type turnRequest struct {
	Message string `json:"message"`
}

type turnResponse struct {
	Text         string        `json:"text"`
	Branch       string        `json:"branch"`
	Intent       core.Intent   `json:"intent"`
	Language     core.Language `json:"language"`
	Collecting   bool          `json:"collecting"`
	Cached       bool          `json:"cached"`
	QuickReplies []string      `json:"quickReplies"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decode(w, r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var lang core.Language
	if req.Language != "" {
		parsed, err := core.ParseLanguage(req.Language)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		lang = parsed
	}

	if req.ID != "" {
		if _, err := s.sessions.Get(req.ID); err == nil {
			writeError(w, http.StatusConflict, "session already exists")
			return
		}
	}

	conv := s.sessions.Create(r.Context(), req.ID, lang)
	writeJSON(w, http.StatusCreated, sessionResponse{
		ID:           conv.ID(),
		Language:     conv.Language(),
		Greeting:     conv.Greeting(),
		QuickReplies: conv.QuickReplies(),
	})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	conv, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		ID:           conv.ID(),
		Language:     conv.Language(),
		Collecting:   conv.Collecting(),
		QuickReplies: conv.QuickReplies(),
	})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Delete(r.Context(), chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, dialogue.ErrSessionNotFound.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postTurn(w http.ResponseWriter, r *http.Request) {
	conv, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req turnRequest
	if err := decode(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if s.cfg.TurnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.TurnTimeout)
		defer cancel()
	}

	res := conv.Turn(ctx, req.Message)
	writeJSON(w, http.StatusOK, turnResponse{
		Text:         res.Text,
		Branch:       res.Branch.String(),
		Intent:       res.Intent,
		Language:     conv.Language(),
		Collecting:   res.Collecting,
		Cached:       res.Cached,
		QuickReplies: conv.QuickReplies(),
	})
}

func (s *Server) getMessages(w http.ResponseWriter, r *http.Request) {
	conv, ok := s.lookup(w, r)
	if !ok {
		return
	}
	msgs := conv.History()
	if msgs == nil {
		msgs = []core.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*dialogue.Conversation, bool) {
	conv, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return conv, true
}

// decode reads a JSON body. With allowEmpty an absent body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		return errors.New("invalid request body")
	}
	return nil
}
