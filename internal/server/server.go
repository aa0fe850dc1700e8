// Package server exposes the translation pipeline over HTTP. Requests
// carry Python source in a JSON body; responses are the same structures
// the CLI renders.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pyviz/internal/config"
	"pyviz/internal/pipeline"
)

type Server struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
}

type translateRequest struct {
	Source string `json:"source"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		cfg:      cfg,
		pipeline: pipeline.New(cfg),
	}
}

func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return srv.ListenAndServe()
}

// Handler builds the route table. Exposed separately so tests can drive
// it through httptest without binding a socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/translate", s.handleTranslate)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	src, ok := s.readSource(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.pipeline.Analyze(src))
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	src, ok := s.readSource(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.pipeline.Run(src))
}

// readSource decodes the request body and enforces method and size
// limits. A false return means the response has already been written.
func (s *Server) readSource(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return "", false
	}

	maxBytes := int64(s.cfg.Files.MaxFileSize) * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return "", false
	}
	if req.Source == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "source is required"})
		return "", false
	}
	return req.Source, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
