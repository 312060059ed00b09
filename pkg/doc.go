// Package pkg provides the libraries behind tilegrid, a virtualized layout for
// long lists that tiles items as one big tile followed by two stacked small
// tiles, mirrored on every other row.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Layout core: [grid] (geometry), [window] (which indices are visible),
//     [reconcile] (reuse, request and release representations), [scroll]
//     (edge clamping) and [layout] (the manager tying them together)
//  2. Hosting: [host] (reference viewport and handle pool), [sink] (JSON and
//     SVG output), [session] (snapshot persistence)
//  3. Support: [config], [errors], [observability], [buildinfo]
//
// # Data Flow
//
//	host viewport + item count
//	         ↓
//	    [grid] geometry table
//	         ↓
//	    [window] resolved around the anchor
//	         ↓
//	    [reconcile] attached set (reused / requested / released)
//	         ↓
//	    [layout] View → [sink] / [session]
//
// # Quick Start
//
//	v := host.NewViewport(200, 150, 12)
//	m := layout.New(v, host.NewPool(v), layout.WithAspect(0.5))
//	if err := m.ComputeLayout(ctx); err != nil {
//	    return err
//	}
//	dt, err := m.ApplyScroll(ctx, 60)
package pkg
