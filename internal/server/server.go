// Package server exposes the content pipeline over HTTP and serves the
// single-page UI.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/content-hub/content-hub/internal/model"
	"github.com/content-hub/content-hub/internal/render"
	"github.com/content-hub/content-hub/internal/session"
)

//go:embed index.html
var indexHTML []byte

const maxUploadBytes = 32 << 20

// Pipeline is the session service surface the handlers need.
type Pipeline interface {
	Generate(ctx context.Context, sess *session.Session, req model.GenerationRequest, uploads []session.Upload, urls []string) (*model.GenerationResult, error)
	Refine(ctx context.Context, sess *session.Session, instruction string) (*model.GenerationResult, error)
}

// Server routes HTTP traffic to the session pipeline.
type Server struct {
	sessions   *session.Store
	pipeline   Pipeline
	renderHTML func(string) (string, error)
	router     chi.Router
}

func New(sessions *session.Store, pipeline Pipeline) *Server {
	s := &Server{sessions: sessions, pipeline: pipeline, renderHTML: render.HTML}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Post("/api/sessions", s.handleCreateSession)
	r.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Post("/refine", s.handleRefine)
		r.Post("/clear", s.handleClear)
		r.Get("/output", s.handleOutput)
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": sess.ID})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req, err := requestFromForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	uploads, err := uploadsFromForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	urls := splitList(r.FormValue("urls"))

	result, err := s.pipeline.Generate(r.Context(), sess, req, uploads, urls)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	s.writeResult(w, result)
}

func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var body struct {
		Instruction string `json:"instruction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.pipeline.Refine(r.Context(), sess, body.Instruction)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	s.writeResult(w, result)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOutput(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	result := sess.Current()
	if result == nil {
		writeError(w, http.StatusNotFound, "no generated output")
		return
	}
	s.writeResult(w, result)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, ok := s.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

// writeResult always carries the markdown; the html field is omitted when
// conversion fails so clients never render an empty preview silently.
func (s *Server) writeResult(w http.ResponseWriter, result *model.GenerationResult) {
	body := map[string]string{
		"markdown": result.Text,
		"source":   result.Source.String(),
	}
	if html, err := s.renderHTML(result.Text); err != nil {
		zap.L().Error("markdown render failed", zap.Error(err))
	} else {
		body["html"] = html
	}
	writeJSON(w, http.StatusOK, body)
}

// requestFromForm maps multipart form fields onto a GenerationRequest.
// Semantic validation stays with the model; only unparseable numbers are
// rejected here.
func requestFromForm(r *http.Request) (model.GenerationRequest, error) {
	req := model.GenerationRequest{
		ContentType: model.ContentType(r.FormValue("content_type")),
		Topic:       r.FormValue("topic"),
		Tone:        model.Tone(r.FormValue("tone")),
		Audience:    model.Audience(r.FormValue("audience")),
		Industry:    strings.TrimSpace(r.FormValue("industry")),
		CTA:         r.FormValue("cta"),
	}

	if v := r.FormValue("word_limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, errors.New("word_limit must be an integer")
		}
		req.WordLimit = n
	}
	if v := r.FormValue("duration_minutes"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, errors.New("duration_minutes must be a number")
		}
		req.DurationMinutes = f
	}

	primary := strings.TrimSpace(r.FormValue("primary_keyword"))
	lsi := splitList(r.FormValue("lsi_keywords"))
	if primary != "" || len(lsi) > 0 {
		req.SEO = &model.SEO{PrimaryKeyword: primary, LSIKeywords: lsi}
	}
	return req, nil
}

func uploadsFromForm(r *http.Request) ([]session.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var uploads []session.Upload
	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			return nil, errors.New("unreadable upload " + header.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, errors.New("unreadable upload " + header.Filename)
		}
		uploads = append(uploads, session.Upload{Name: header.Filename, Data: data})
	}
	return uploads, nil
}

// splitList splits a comma- or newline-separated field into trimmed,
// non-empty entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' }) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrNotConfigured):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrNoOutput):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
