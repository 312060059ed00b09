// Package layout is the host-facing layout manager for the two-small-one-big
// tile grid.
//
// A [Manager] owns the attached set of realized representations and composes
// the geometry table, the window resolver, the reconciler and the scroll
// clamp into the operations a host container drives:
//
//   - [Manager.ComputeLayout] on measurement: resolve the window around the
//     current anchor and reconcile representations
//   - [Manager.ApplyScroll] on scroll events: clamp, shift, refill
//   - [Manager.ItemsInserted] and [Manager.ItemsRemoved] on data changes:
//     renumber attached items and relayout with scrolling suspended
//   - [Manager.Reset] when the data source is replaced
//
// Every call runs a complete pass before returning. The manager is not safe
// for concurrent use; hosts serialize calls the way a UI thread would.
//
// # Example
//
//	m := layout.New(host, pool, layout.WithAspect(0.5), layout.WithLogger(logger))
//	if err := m.ComputeLayout(ctx); err != nil {
//	    return err
//	}
//	applied, err := m.ApplyScroll(ctx, 40)
package layout
