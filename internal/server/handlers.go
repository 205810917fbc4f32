package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/flowstep/pkg/errors"
	"github.com/matzehuels/flowstep/pkg/pipeline"
	"github.com/matzehuels/flowstep/pkg/scene"
	"github.com/matzehuels/flowstep/pkg/step"
	"github.com/matzehuels/flowstep/pkg/view"
)

// sessionCookie names the cookie carrying the session identifier.
const sessionCookie = "flowstep_session"

// ===== Response Types =====

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

type exampleInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Step  int    `json:"step"`
}

type submitResponse struct {
	Explanation string          `json:"explanation"`
	Highlights  map[string]bool `json:"highlights"`
	Scene       scene.Scene     `json:"scene"`
	SVG         string          `json:"svg"`
}

// ===== Handlers =====

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListExamples(w http.ResponseWriter, r *http.Request) {
	names := step.ExampleNames()
	infos := make([]exampleInfo, 0, len(names))
	for _, name := range names {
		data, err := step.Example(name)
		if err != nil {
			continue
		}
		st, err := step.Parse(data)
		if err != nil {
			continue
		}
		infos = append(infos, exampleInfo{Name: name, Title: st.Title(), Step: st.Number})
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleGetExample(w http.ResponseWriter, r *http.Request) {
	data, err := step.Example(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// handleSubmitStep runs the full pipeline on the posted payload. Only a
// successful run replaces the session view; any failure leaves the stored
// view exactly as it was.
func (s *Server) handleSubmitStep(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, errors.MaxPayloadBytes+1))
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeMalformedInput, "read request body: %v", err))
		return
	}

	result, err := s.runner.Execute(r.Context(), s.submitOptions(payload))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	v := view.FromStep(result.Step)
	sid := s.sessionID(w, r)
	if err := s.views.Put(r.Context(), sid, v); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "store view"))
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Explanation: v.Explanation,
		Highlights:  v.Highlights,
		Scene:       result.Scene,
		SVG:         string(result.Artifacts[pipeline.FormatSVG]),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sid := s.sessionID(w, r)
	if err := s.views.Reset(r.Context(), sid); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "reset view"))
		return
	}
	writeJSON(w, http.StatusOK, view.Empty())
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sid := s.sessionID(w, r)
	v, err := s.views.Get(r.Context(), sid)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "load view"))
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// ===== Helpers =====

// sessionID returns the request's session identifier, minting a cookie for
// first-time visitors.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := view.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// submitOptions copies the configured render defaults and points them at
// the posted payload.
func (s *Server) submitOptions(payload []byte) pipeline.Options {
	opts := s.render
	opts.Payload = string(payload)
	opts.Path = ""
	opts.Example = ""
	opts.Formats = []string{pipeline.FormatSVG}
	return opts
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps coded errors onto HTTP statuses: validation problems are
// the client's fault, missing things are 404, everything else is a 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, errorResponse{Code: string(code), Error: errors.UserMessage(err)})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeMalformedInput, errors.ErrCodeMissingField, errors.ErrCodeMalformedEdge,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidVizType, errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeExampleNotFound, errors.ErrCodeViewNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
