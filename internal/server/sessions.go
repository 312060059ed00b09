package server

import (
	"context"

	"github.com/matzehuels/tilegrid/pkg/host"
	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/session"
)

// create builds a new session, lays it out and stores its snapshot.
func (s *Server) create(ctx context.Context, vp session.Viewport, aspect float64, items int) (*liveSession, error) {
	snap := session.New(vp, aspect, items, s.ttl)
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	ls := s.build(snap)
	if err := ls.manager.ComputeLayout(ctx); err != nil {
		return nil, err
	}
	if err := s.save(ctx, ls); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.live[snap.ID] = ls
	s.mu.Unlock()
	return ls, nil
}

// acquire returns the locked live session for id. The caller must unlock it.
// The in-process manager is reused while its snapshot matches the stored
// one; otherwise it is rebuilt from the stored snapshot.
func (s *Server) acquire(ctx context.Context, id string) (*liveSession, error) {
	snap, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		s.forget(id)
		return nil, session.NotFound(id)
	}

	s.mu.Lock()
	ls, ok := s.live[id]
	if !ok {
		ls = &liveSession{}
		s.live[id] = ls
	}
	s.mu.Unlock()

	ls.mu.Lock()
	if ls.snap != nil && ls.snap.SameVersion(snap) {
		return ls, nil
	}

	fresh := s.build(snap)
	if err := restore(ctx, fresh); err != nil {
		ls.mu.Unlock()
		return nil, err
	}
	ls.snap, ls.viewport, ls.pool, ls.manager = fresh.snap, fresh.viewport, fresh.pool, fresh.manager
	s.logger.Debug("session restored", "id", id, "items", snap.ItemCount)
	return ls, nil
}

// build wires a host, a pool and a manager for snap without laying out.
func (s *Server) build(snap *session.Snapshot) *liveSession {
	v := host.NewViewport(snap.Viewport.Width, snap.Viewport.Height, snap.ItemCount)
	p := host.NewPool(v)
	return &liveSession{
		snap:     snap,
		viewport: v,
		pool:     p,
		manager:  layout.New(v, p, layout.WithAspect(snap.Aspect), layout.WithLogger(s.logger)),
	}
}

func restore(ctx context.Context, ls *liveSession) error {
	if a, ok := ls.snap.LayoutAnchor(); ok {
		return ls.manager.ScrollToAnchor(ctx, a)
	}
	return ls.manager.ComputeLayout(ctx)
}

// save copies the manager state into the snapshot and stores it.
func (s *Server) save(ctx context.Context, ls *liveSession) error {
	w, h := ls.viewport.ViewportSize()
	ls.snap.Viewport = session.Viewport{Width: w, Height: h}
	ls.snap.ItemCount = ls.viewport.ItemCount()
	ls.snap.Aspect = ls.manager.Aspect()
	ls.snap.SetAnchor(ls.manager.Anchor())
	ls.snap.Touch(s.ttl)
	return s.store.Set(ctx, ls.snap)
}

func (s *Server) delete(ctx context.Context, id string) error {
	s.forget(id)
	return s.store.Delete(ctx, id)
}

func (s *Server) forget(id string) {
	s.mu.Lock()
	delete(s.live, id)
	s.mu.Unlock()
}
