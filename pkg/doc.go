// Package pkg provides the core libraries for Placard label placement.
//
// # Overview
//
// Placard places rectangular labels next to anchor points in a bounded 2D
// canvas so that labels avoid each other, circular exclusion sectors, and
// the canvas edges. The pkg directory is organized into four main areas:
//
//  1. [geom] / [layout] - Domain logic (geometry, candidate placement, relaxation)
//  2. [scene] / [pipeline] - Orchestration (scene files, solve → render)
//  3. [cache] / [server] - Infrastructure (caching, HTTP API, storage)
//  4. [render] - Output (SVG, PNG, PDF, DOT diagnostics)
//
// # Architecture
//
// The typical data flow through Placard:
//
//	scene.json (anchors, sectors, canvas)
//	         ↓
//	    [scene] package (validation + solve)
//	         ↓
//	    [layout] package (candidate selection + relaxation)
//	         ↓
//	    [render] package (projection + drawing)
//	         ↓
//	    SVG/PNG/PDF/DOT/JSON output
//
// # Quick Start
//
// Solve a scene and render it to SVG:
//
//	import (
//	    "github.com/placardlabs/placard/pkg/geom"
//	    "github.com/placardlabs/placard/pkg/render"
//	    "github.com/placardlabs/placard/pkg/scene"
//	)
//
//	sc := &scene.Scene{
//	    Canvas: geom.NewBox(-10, -10, 10, 10),
//	    Points: []scene.Point{{ID: "hub", X: 0, Y: 0, Label: "Central Hub"}},
//	}
//	l, _ := scene.Solve(sc, nil, 0)
//	svg, _ := render.SVG(l)
//
// # Main Packages
//
// ## Domain Logic
//
// [geom] - Points, boxes, sectors, and the angle arithmetic the placement
// filters are built on.
//
// [layout] - The placement engine: twelve quantized candidate directions per
// anchor, admissibility filtering, a least-penetration fallback, position
// caching, and force-directed relaxation.
//
// ## Orchestration
//
// [scene] - Scene and layout serialization plus [scene.Solve], which runs
// the full placement for a scene.
//
// [pipeline] - The cached solve → render pipeline used by the CLI and the
// HTTP server. Both stages are content-addressed so repeated runs are cheap.
//
// ## Infrastructure
//
// [cache] - Cache interface with file, Redis, and null backends, and the
// content-hash key scheme shared by both pipeline stages.
//
// [server] - HTTP API (chi) for solving, storing, and rendering layouts,
// with in-memory and MongoDB storage backends.
//
// [observability] - Pluggable hooks for layout, cache, and server events.
//
// [errors] - Coded errors shared across packages.
//
// ## Output
//
// [render] - SVG rendering with configurable scale, PNG/PDF conversion, and
// Graphviz DOT output for overlap diagnostics.
package pkg
