package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"gearwright/copilot"
	"gearwright/store"
)

const requestTimeout = 60 * time.Second

// Server exposes the copilot over HTTP.
type Server struct {
	orchestrator *copilot.Orchestrator
	pipeline     *copilot.Pipeline
	styles       *store.StyleStore
	projects     *store.ProjectStore
	logger       *slog.Logger
}

func New(orchestrator *copilot.Orchestrator, pipeline *copilot.Pipeline,
	styles *store.StyleStore, projects *store.ProjectStore, logger *slog.Logger) (*Server, error) {
	if orchestrator == nil || pipeline == nil {
		return nil, errors.New("orchestrator and pipeline are required")
	}
	if styles == nil || projects == nil {
		return nil, errors.New("style and project stores are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		orchestrator: orchestrator,
		pipeline:     pipeline,
		styles:       styles,
		projects:     projects,
		logger:       logger,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/style", s.handleStyle)
	mux.HandleFunc("/schematic", s.handleSchematic)
	mux.HandleFunc("/projects/", s.handleProject)
	return s.logMiddleware(mux)
}

// --- Handlers ---

type chatReq struct {
	Message     any    `json:"message"`
	Mode        string `json:"mode"`
	ProjectName string `json:"projectName"`
}

type chatResp struct {
	OK    bool         `json:"ok"`
	Mode  copilot.Mode `json:"mode"`
	Reply string       `json:"reply"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req chatReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}
	message, ok := req.Message.(string)
	if !ok || strings.TrimSpace(message) == "" {
		s.fail(w, http.StatusBadRequest, "Missing 'message' string", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	result, err := s.orchestrator.HandleChat(ctx, message, req.Mode, req.ProjectName)
	if err != nil {
		s.fail(w, failureStatus(err), "Chat failed", err)
		return
	}
	writeJSON(w, http.StatusOK, chatResp{OK: true, Mode: result.Mode, Reply: result.Reply})
}

type styleResp struct {
	OK      bool                 `json:"ok"`
	Profile copilot.StyleProfile `json:"profile"`
}

func (s *Server) handleStyle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		profile, err := s.styles.Load()
		if err != nil {
			s.fail(w, http.StatusInternalServerError, "Style read failed", err)
			return
		}
		writeJSON(w, http.StatusOK, styleResp{OK: true, Profile: profile})
	case http.MethodPost:
		var partial map[string]any
		if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
			s.fail(w, http.StatusBadRequest, "Invalid JSON body", err)
			return
		}
		profile, err := s.styles.Save(partial)
		if err != nil {
			s.fail(w, http.StatusInternalServerError, "Style update failed", err)
			return
		}
		writeJSON(w, http.StatusOK, styleResp{OK: true, Profile: profile})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type schematicReq struct {
	Instructions any    `json:"instructions"`
	ProjectName  string `json:"projectName"`
}

type schematicResp struct {
	OK        bool              `json:"ok"`
	Schematic copilot.Blueprint `json:"schematic"`
}

func (s *Server) handleSchematic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req schematicReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}
	instructions, ok := req.Instructions.(string)
	if !ok || strings.TrimSpace(instructions) == "" {
		s.fail(w, http.StatusBadRequest, "Missing 'instructions' string", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	bp, err := s.pipeline.Generate(ctx, instructions, req.ProjectName)
	if err != nil {
		s.fail(w, failureStatus(err), "Schematic generation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, schematicResp{OK: true, Schematic: bp})
}

type projectResp struct {
	OK      bool                  `json:"ok"`
	Project copilot.ProjectRecord `json:"project"`
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/projects/")
	if name == "" {
		http.NotFound(w, r)
		return
	}
	record, err := s.projects.LoadProject(name)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "Project read failed", err)
		return
	}
	writeJSON(w, http.StatusOK, projectResp{OK: true, Project: record})
}

// --- Helpers ---

type errorResp struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *Server) fail(w http.ResponseWriter, status int, label string, err error) {
	resp := errorResp{Error: label}
	if err != nil {
		resp.Details = err.Error()
		s.logger.Warn("request failed", "error", label, "details", err)
	} else {
		s.logger.Warn("request rejected", "error", label)
	}
	writeJSON(w, status, resp)
}

// failureStatus maps operation errors: upstream model failures are a bad
// gateway, everything else is internal.
func failureStatus(err error) int {
	if errors.Is(err, copilot.ErrModelInvocation) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
