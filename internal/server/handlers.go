package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/modelgraph/pkg/engine"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/graph"
	mgio "github.com/matzehuels/modelgraph/pkg/io"
	"github.com/matzehuels/modelgraph/pkg/model"
	"github.com/matzehuels/modelgraph/pkg/render/nodelink"
	"github.com/matzehuels/modelgraph/pkg/view"
	"github.com/matzehuels/modelgraph/pkg/visibility"
)

// sessionResponse is the body of every session endpoint.
type sessionResponse struct {
	ID      string              `json:"id"`
	View    view.ID             `json:"view"`
	State   visibility.Snapshot `json:"state"`
	Sidebar []view.Item         `json:"sidebar"`
	Frame   graph.Frame         `json:"frame"`
}

type sessionSummary struct {
	ID      string    `json:"id"`
	View    view.ID   `json:"view"`
	Source  string    `json:"source,omitempty"`
	Created time.Time `json:"created"`
}

// describe must be called with e.mu held.
func describe(e *entry) sessionResponse {
	return sessionResponse{
		ID:      e.id,
		View:    e.s.View().ID,
		State:   e.s.State(),
		Sidebar: e.s.SidebarItems(),
		Frame:   e.s.Frame(),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleViews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, view.All())
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	entries := s.sessions.list()
	out := make([]sessionSummary, len(entries))
	for i, e := range entries {
		e.mu.Lock()
		out[i] = sessionSummary{ID: e.id, View: e.s.View().ID, Source: e.source, Created: e.created}
		e.mu.Unlock()
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCreateSession creates a session from, in order of preference, the
// ?snapshot=<env> snapshot, the request body or the watched file.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	doc, source, err := s.requestDocument(r)
	if err != nil {
		writeError(w, err)
		return
	}

	opts := []engine.Option{engine.WithLayout(s.cfg.Layout), engine.WithLogger(s.logger)}
	if v := r.URL.Query().Get("view"); v != "" {
		opts = append(opts, engine.WithView(view.ID(v)))
	}
	sess, err := engine.New(doc, opts...)
	if err != nil {
		writeError(w, err)
		return
	}

	e := s.sessions.add(sess, source)
	s.logger.Debug("created session", "id", e.id, "view", sess.View().ID, "source", source)

	e.mu.Lock()
	resp := describe(e)
	e.mu.Unlock()
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) requestDocument(r *http.Request) (model.Document, string, error) {
	if env := r.URL.Query().Get("snapshot"); env != "" {
		if s.cfg.Snapshots == nil {
			return model.Document{}, "", errors.New(errors.ErrCodeInvalidInput, "snapshots are not configured")
		}
		doc, err := s.cfg.Snapshots.Load(r.Context(), env)
		return doc, "", err
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return model.Document{}, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(bytes.TrimSpace(body)) > 0 {
		doc, err := mgio.DecodeDocument(body)
		return doc, "", err
	}

	if s.cfg.WatchFile == "" {
		return model.Document{}, "", errors.New(errors.ErrCodeInvalidInput, "request needs a document body or ?snapshot=<env>")
	}
	doc, err := mgio.ImportDocument(s.cfg.WatchFile)
	return doc, s.cfg.WatchFile, err
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(e *entry) error { return nil })
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.remove(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSwitchView(w http.ResponseWriter, r *http.Request) {
	id := view.ID(chi.URLParam(r, "view"))
	s.withSession(w, r, func(e *entry) error { return e.s.SwitchView(id) })
}

// handleRichText sets the rich text edge setting from ?include=true|false,
// or toggles it when the parameter is absent.
func (s *Server) handleRichText(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("include")
	s.withSession(w, r, func(e *entry) error {
		if raw == "" {
			e.s.ToggleRichText()
			return nil
		}
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "invalid include value %q", raw)
		}
		e.s.SetIncludeRichText(include)
		return nil
	})
}

func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	e, err := s.sessions.get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	node := chi.URLParam(r, "node")

	e.mu.Lock()
	rows, ok := e.s.Rows(node)
	e.mu.Unlock()
	if !ok {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no node %q in view", node))
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	e, err := s.sessions.get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	e.mu.Lock()
	dot := nodelink.ToDOT(e.s.Frame(), nodelink.Options{Rows: e.s.Rows})
	e.mu.Unlock()

	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = io.WriteString(w, dot)
}

// =============================================================================
// Operations
// =============================================================================

func expandAll(s *engine.Session)   { s.ExpandAll() }
func collapseAll(s *engine.Session) { s.CollapseAll() }
func reset(s *engine.Session)       { s.Reset() }

func toggleNode(s *engine.Session, id string)     { s.ToggleNode(id) }
func isolateSingle(s *engine.Session, id string)  { s.IsolateSingle(id) }
func isolateRelated(s *engine.Session, id string) { s.IsolateRelated(id) }

// sessionOp adapts a session-wide operation into a handler.
func (s *Server) sessionOp(op func(*engine.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.withSession(w, r, func(e *entry) error {
			op(e.s)
			return nil
		})
	}
}

// nodeOp adapts a node operation into a handler. Unknown nodes are
// NOT_FOUND.
func (s *Server) nodeOp(op func(*engine.Session, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		node := chi.URLParam(r, "node")
		s.withSession(w, r, func(e *entry) error {
			if _, ok := e.s.Graph().Node(node); !ok {
				return errors.New(errors.ErrCodeNotFound, "no node %q in view", node)
			}
			op(e.s, node)
			return nil
		})
	}
}

// withSession runs fn on the session named in the path while holding its
// lock, then answers with the session's state.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*entry) error) {
	e, err := s.sessions.get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	e.mu.Lock()
	err = fn(e)
	resp := describe(e)
	e.mu.Unlock()

	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorResponse{Code: code, Message: errors.UserMessage(err)})
}

// statusFor maps an error code to its HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDocument, errors.ErrCodeInvalidView,
		errors.ErrCodeInvalidLayout, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeSessionNotFound, errors.ErrCodeSnapshotNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
