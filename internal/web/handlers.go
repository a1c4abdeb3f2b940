package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Annallisboa/QA-app/internal/itinerary"
	"github.com/Annallisboa/QA-app/internal/llm"
	"github.com/Annallisboa/QA-app/internal/metrics"
)

const (
	sessionCookie = "qa_session"
	maxRequestLen = 2000
)

// MsgNotUnderstood is shown whenever no answer could be obtained.
const MsgNotUnderstood = "Desculpe, não entendi sua pergunta"

type askRequest struct {
	Request string `json:"request"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
			writeJSONStatus(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}
	} else {
		req.Request = r.FormValue("request")
	}

	req.Request = strings.TrimSpace(req.Request)
	if req.Request == "" {
		writeJSONStatus(w, http.StatusBadRequest, errorResponse{Error: "request is required"})
		return
	}
	if len(req.Request) > maxRequestLen {
		writeJSONStatus(w, http.StatusBadRequest, errorResponse{Error: "request is too long"})
		return
	}

	id := s.session(w, r)
	s.Sessions.Reset(id)

	ctx := r.Context()
	if s.AskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.AskTimeout)
		defer cancel()
	}

	res, err := s.Runner.Run(ctx, req.Request)
	if err != nil {
		s.recordOutcome(metrics.OutcomeFailed)
		s.Logger.Error("pipeline failed", "session", id, "error", err)
		writeJSONStatus(w, statusFor(err), errorResponse{Error: MsgNotUnderstood})
		return
	}

	ans := itinerary.BuildView(s.Logger, req.Request, res.AgentSuggestion(), res.Coordinates(), res.CenterInfo(), s.Defaults)
	if strings.TrimSpace(ans.Text) == "" {
		ans.Text = MsgNotUnderstood
	}
	if ans.MapAvailable {
		s.recordOutcome(metrics.OutcomeAnswered)
	} else {
		s.recordOutcome(metrics.OutcomeNoMap)
	}

	s.Sessions.Put(id, ans.Map)
	writeJSON(w, ans)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	id := s.session(w, r)
	st, _ := s.Sessions.Get(id)
	writeJSON(w, st)
}

// session returns the caller's session ID, issuing a new one when the cookie
// is missing or has expired.
func (s *Server) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, ok := s.Sessions.Get(c.Value); ok {
			return c.Value
		}
	}

	id := s.Sessions.NewSession()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) recordOutcome(outcome string) {
	if s.Metrics != nil {
		s.Metrics.Questions.WithLabelValues(outcome).Inc()
	}
}

func statusFor(err error) int {
	var upErr *llm.UpstreamError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &upErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

