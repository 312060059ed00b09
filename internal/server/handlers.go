package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/session"
	"github.com/matzehuels/tilegrid/pkg/sink"
)

// createRequest falls back to the server aspect only when aspect is
// omitted; an explicit 0 is a valid degenerate layout.
type createRequest struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Aspect *float64 `json:"aspect,omitempty"`
	Items  int      `json:"items"`
}

type scrollRequest struct {
	Dy int `json:"dy"`
}

type rangeRequest struct {
	Start int `json:"start"`
	Count int `json:"count"`
}

type viewportRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// sessionResponse is returned by every endpoint that changes or reads a
// session.
type sessionResponse struct {
	ID      string      `json:"id"`
	Applied *int        `json:"applied,omitempty"`
	Pool    any         `json:"pool,omitempty"`
	View    layout.View `json:"view"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !decode(w, r, &req) {
		return
	}
	aspect := s.aspect
	if req.Aspect != nil {
		aspect = *req.Aspect
	}
	ls, err := s.create(r.Context(), session.Viewport{Width: req.Width, Height: req.Height}, aspect, req.Items)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, respond(ls, nil))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(ctx context.Context, ls *liveSession) (*int, bool, error) {
		return nil, false, nil
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleScroll(w http.ResponseWriter, r *http.Request) {
	var req scrollRequest
	if !decode(w, r, &req) {
		return
	}
	s.withSession(w, r, func(ctx context.Context, ls *liveSession) (*int, bool, error) {
		dt, err := ls.manager.ApplyScroll(ctx, req.Dy)
		return &dt, true, err
	})
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	var req rangeRequest
	if !decode(w, r, &req) {
		return
	}
	s.withSession(w, r, func(ctx context.Context, ls *liveSession) (*int, bool, error) {
		if err := ls.viewport.Insert(req.Start, req.Count); err != nil {
			return nil, false, err
		}
		return nil, true, ls.manager.ItemsInserted(ctx, req.Start, req.Count)
	})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	var req rangeRequest
	if !decode(w, r, &req) {
		return
	}
	s.withSession(w, r, func(ctx context.Context, ls *liveSession) (*int, bool, error) {
		if err := ls.viewport.Remove(req.Start, req.Count); err != nil {
			return nil, false, err
		}
		return nil, true, ls.manager.ItemsRemoved(ctx, req.Start, req.Count)
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(ctx context.Context, ls *liveSession) (*int, bool, error) {
		return nil, true, ls.manager.Reset(ctx)
	})
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	var req viewportRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Width < 0 || req.Height < 0 {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "negative viewport %dx%d", req.Width, req.Height))
		return
	}
	s.withSession(w, r, func(ctx context.Context, ls *liveSession) (*int, bool, error) {
		ls.viewport.Resize(req.Width, req.Height)
		return nil, true, ls.manager.ComputeLayout(ctx)
	})
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	ls, err := s.acquire(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	svg := sink.RenderSVG(ls.manager.View())
	ls.mu.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// withSession runs op on the locked session named in the URL. When op reports
// a change the snapshot is saved, even if op failed part way, so the stored
// anchor always matches the attached items.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, op func(context.Context, *liveSession) (*int, bool, error)) {
	ctx := r.Context()
	ls, err := s.acquire(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer ls.mu.Unlock()

	applied, changed, opErr := op(ctx, ls)
	if changed {
		if err := s.save(ctx, ls); err != nil {
			writeError(w, r, err)
			return
		}
	}
	if opErr != nil {
		writeError(w, r, opErr)
		return
	}
	writeJSON(w, http.StatusOK, respond(ls, applied))
}

func respond(ls *liveSession, applied *int) sessionResponse {
	return sessionResponse{
		ID:      ls.snap.ID,
		Applied: applied,
		Pool:    ls.pool.Stats(),
		View:    ls.manager.View(),
	}
}

// decode reads a JSON body into v. An empty body leaves v zero.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.ContentLength == 0 {
		return true
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return false
	}
	return true
}
