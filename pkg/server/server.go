package server

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"

	"budgetctl/pkg/api"
	"budgetctl/pkg/config"
	"budgetctl/pkg/i18n"
	"budgetctl/pkg/importer"
	"budgetctl/pkg/models"
)

// Server exposes the import flow over HTTP. Each upload opens a session
// that walks the same upload -> map -> preview -> import steps the CLI
// drives directly.
type Server struct {
	config   *config.Config
	logger   *log.Logger
	api      *api.Client
	mux      *http.ServeMux
	template *template.Template
	sessions sync.Map // session id -> *importer.Session
}

// New creates a new HTTP server
func New(config *config.Config, logger *log.Logger, client *api.Client) *Server {
	tmpl := template.Must(template.ParseGlob("templates/*.html"))
	return &Server{
		config:   config,
		logger:   logger,
		api:      client,
		mux:      http.NewServeMux(),
		template: tmpl,
	}
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	s.setupRoutes()
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) setupRoutes() {
	// homepage
	s.mux.HandleFunc("/", s.withLogging(s.handleHome))

	// import session flow
	s.mux.HandleFunc("/api/upload", s.withLogging(s.handleUpload))
	s.mux.HandleFunc("/api/map", s.withLogging(s.handleMap))
	s.mux.HandleFunc("/api/apply", s.withLogging(s.handleApply))
	s.mux.HandleFunc("/api/back", s.withLogging(s.handleBack))
	s.mux.HandleFunc("/api/close", s.withLogging(s.handleClose))

	s.mux.HandleFunc("/api/templates", s.withLogging(s.handleTemplates))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if err := s.template.ExecuteTemplate(w, "index.html", nil); err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to render page", err)
		return
	}
}

// handleUpload receives the CSV, opens a session and returns the parsed
// headers so the client can build the mapping step.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	file, header, err := r.FormFile("statement")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "statement file required", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to read file", err)
		return
	}

	resolver, err := s.buildResolver(r)
	if err != nil {
		s.respondError(w, r, http.StatusBadGateway, "failed to fetch reference data", err)
		return
	}

	session := importer.NewSession(resolver, s.logger)
	if err := session.Upload(data, header.Filename); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	id := newSessionID()
	s.sessions.Store(id, session)
	s.logger.Info("session opened", "session_id", id, "file", header.Filename, "headers", len(session.Headers()))

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "success",
		"session_id":   id,
		"headers":      session.Headers(),
		"date_formats": importer.DateFormats(),
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// mapRequest is the JSON body of /api/map. Omitted roles decode as
// unmapped, same as sending -1.
type mapRequest struct {
	SessionID  string             `json:"session_id"`
	Columns    models.RoleMapping `json:"mapping"`
	DateFormat string             `json:"date_format"`
}

// handleMap applies the column mapping and returns the resolved preview.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	req := mapRequest{Columns: models.UnmappedRoles()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid json body", err)
		return
	}

	session, ok := s.session(req.SessionID)
	if !ok {
		s.respondError(w, r, http.StatusNotFound, "unknown session", nil)
		return
	}

	m := session.Mapping()
	m.Columns = req.Columns
	if req.DateFormat != "" {
		m.DateFormat = req.DateFormat
	}
	if err := session.ConfirmMapping(); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"rows":   previewRows(session.Batch()),
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// applyRequest is the JSON body of /api/apply.
type applyRequest struct {
	SessionID string `json:"session_id"`
}

// handleApply validates and imports the previewed batch.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid json body", err)
		return
	}

	session, ok := s.session(req.SessionID)
	if !ok {
		s.respondError(w, r, http.StatusNotFound, "unknown session", nil)
		return
	}

	out, err := session.Import(r.Context(), s.api)
	if err != nil {
		// A validation failure keeps the session alive on the preview
		// step so the client can fix rows and retry.
		s.respondError(w, r, http.StatusUnprocessableEntity, err.Error(), err)
		return
	}

	s.sessions.Delete(req.SessionID)
	s.logger.Info("session imported", "session_id", req.SessionID,
		"submitted", out.Submitted, "failed", out.Failed)

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "success",
		"attempted":    out.Attempted,
		"submitted":    out.Submitted,
		"failed":       out.Failed,
		"reclassified": out.Reclassified,
		"errors":       rowErrors(out.Errors),
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// handleBack steps a session one dialog step backwards.
func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid json body", err)
		return
	}

	session, ok := s.session(req.SessionID)
	if !ok {
		s.respondError(w, r, http.StatusNotFound, "unknown session", nil)
		return
	}
	if err := session.Back(); err != nil {
		s.respondError(w, r, http.StatusConflict, err.Error(), err)
		return
	}

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"step":   session.Step().String(),
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// handleClose discards a session and its in-memory rows.
func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid json body", err)
		return
	}

	if session, ok := s.session(req.SessionID); ok {
		session.Close()
		s.sessions.Delete(req.SessionID)
	}

	if err := s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// handleTemplates proxies the stored column mappings from the backend.
func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	templates, err := s.api.ImportTemplates(r.Context())
	if err != nil {
		s.respondError(w, r, http.StatusBadGateway, "failed to fetch templates", err)
		return
	}

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "success",
		"templates": templates,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) buildResolver(r *http.Request) (*importer.Resolver, error) {
	accounts, err := s.api.Accounts(r.Context())
	if err != nil {
		return nil, err
	}
	categories, err := s.api.Categories(r.Context())
	if err != nil {
		return nil, err
	}
	return &importer.Resolver{
		Accounts:   accounts,
		Categories: categories,
		Lang:       i18n.Lang(s.config.Language),
	}, nil
}

func (s *Server) session(id string) (*importer.Session, bool) {
	v, ok := s.sessions.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*importer.Session), true
}

// previewRow is the JSON shape of one resolved row.
type previewRow struct {
	Amount      float64  `json:"amount"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	AccountID   int      `json:"account_id"`
	CategoryID  int      `json:"category_id"`
	Problems    []string `json:"problems,omitempty"`
}

func previewRows(b *importer.Batch) []previewRow {
	out := make([]previewRow, 0, b.Len())
	for _, r := range b.Rows() {
		out = append(out, previewRow{
			Amount:      r.Amount,
			Date:        r.Date,
			Description: r.Description,
			Type:        r.Type,
			AccountID:   r.AccountID,
			CategoryID:  r.CategoryID,
			Problems:    importer.ValidateRow(r),
		})
	}
	return out
}

func rowErrors(errs []importer.RowError) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(errs))
	for _, e := range errs {
		out = append(out, map[string]interface{}{"row": e.Row, "reason": e.Reason})
	}
	return out
}

func newSessionID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}
