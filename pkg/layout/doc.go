// Package layout implements the automatic label-placement engine.
//
// Given anchor points in a bounded canvas, the engine positions rectangular
// label boxes near each anchor so that boxes avoid each other, avoid
// circular-sector exclusion zones, and stay inside the canvas, subject to a
// maximum anchor-to-label distance and twelve quantized placement
// directions.
//
// # Architecture
//
// The engine is two composable stages behind one façade:
//
//  1. Selection ([Manager.Select]): a local, cached, deterministic heuristic
//     that picks one of twelve direction-quantized candidates per anchor.
//  2. Relaxation ([Manager.Relax]): a global fixed-iteration pairwise
//     repulsion pass that repairs residual overlaps across all registered
//     elements.
//
// Stage two operates only on boxes and movability flags; it does not know
// how stage one produced them.
//
// # Usage
//
//	cfg := layout.DefaultConfig()
//	m, err := layout.New(geom.NewBox(-10, -10, 10, 10), cfg)
//	if err != nil {
//	    return err
//	}
//	m.AddSector(0, 0, 5, 0, 90)
//
//	for _, p := range points {
//	    if _, err := m.Place(p.X, p.Y, "point", p.ID); err != nil {
//	        return err
//	    }
//	}
//	m.Relax(0) // 0 = configured default iteration count
//
//	for _, el := range m.Elements() {
//	    draw(el.Box, m.Connector(el.ID))
//	}
//
// # Concurrency
//
// All computation is synchronous and runs on the caller's goroutine. A
// Manager is not safe for concurrent mutation; callers serialize access or
// use one Manager per computation cycle.
package layout
