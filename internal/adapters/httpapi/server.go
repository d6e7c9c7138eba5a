// Package httpapi exposes the inbound webhook and admin endpoints over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/example/hivemind/internal/ports/primary"
	"github.com/example/hivemind/internal/ports/secondary"
)

// Server translates HTTP requests into primary-port calls.
type Server struct {
	intake    primary.IntakeService
	problems  primary.ProblemService
	broadcast primary.BroadcastService
	logger    *log.Logger
}

// NewServer creates a new HTTP adapter with injected services.
func NewServer(
	intake primary.IntakeService,
	problems primary.ProblemService,
	broadcast primary.BroadcastService,
	logger *log.Logger,
) *Server {
	return &Server{
		intake:    intake,
		problems:  problems,
		broadcast: broadcast,
		logger:    logger,
	}
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Post("/sms", s.handleInboundSMS)
	r.Post("/problems", s.handleRegisterProblem)
	r.Get("/problems", s.handleListProblems)
	r.Post("/send_task", s.handleSendTask)

	return r
}

// handleInboundSMS is the transport provider's webhook. The provider posts
// form-encoded From/Body fields and expects a prompt plain-text reply; the
// reply body is opaque acknowledgment text.
func (s *Server) handleInboundSMS(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	msg := primary.InboundMessage{
		From: r.PostFormValue("From"),
		Body: r.PostFormValue("Body"),
	}
	if strings.TrimSpace(msg.From) == "" {
		http.Error(w, "From is required", http.StatusBadRequest)
		return
	}

	result, err := s.intake.HandleInbound(r.Context(), msg)
	if err != nil {
		// Durable-write failure: no acknowledgment. The sender can safely
		// resend the same message.
		s.logger.Printf("intake failed for %s: %v", msg.From, err)
		http.Error(w, "temporary failure, please resend", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(result.Reply))
}

func (s *Server) handleRegisterProblem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_JSON", err.Error())
		return
	}

	problem, err := s.problems.RegisterProblem(r.Context(), primary.RegisterProblemRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, secondary.ErrDuplicateProblemName) {
			writeError(w, http.StatusConflict, "DUPLICATE_NAME", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"request_id": newRequestID(),
		"id":         problem.ID,
	})
}

func (s *Server) handleListProblems(w http.ResponseWriter, r *http.Request) {
	problems, err := s.problems.ListProblems(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}

	type problemOut struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Active      bool   `json:"active"`
	}
	out := make([]problemOut, len(problems))
	for i, p := range problems {
		out[i] = problemOut{ID: p.ID, Name: p.Name, Description: p.Description, Active: p.Active}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"request_id": newRequestID(),
		"problems":   out,
	})
}

func (s *Server) handleSendTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProblemID int64  `json:"problem_id"`
		Prompt    string `json:"prompt"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_JSON", err.Error())
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "prompt is required")
		return
	}

	resp, err := s.broadcast.BroadcastTask(r.Context(), primary.BroadcastTaskRequest{
		ProblemID: req.ProblemID,
		Prompt:    req.Prompt,
	})
	if err != nil {
		writeError(w, http.StatusNotFound, "BROADCAST_FAILED", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"request_id": newRequestID(),
		"sent":       resp.Sent,
		"failed":     resp.Failed,
	})
}

func newRequestID() string {
	return uuid.NewString()
}

func readJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"request_id": newRequestID(),
		"error":      map[string]string{"code": code, "message": message},
	})
}
