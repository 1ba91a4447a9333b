// Package render turns solved layouts into visual outputs.
//
// # Overview
//
// This package contains the rendering sinks of the placement pipeline:
//
//   - SVG: the primary output, drawn directly from layout geometry
//   - Generic format conversion (SVG to PDF/PNG)
//   - Overlap diagnostics as Graphviz diagrams
//
// # SVG
//
// [SVG] renders a solved layout: exclusion sectors as shaded wedges,
// anchors as dots, connector lines, and the label boxes with their text.
// Output is deterministic for a given layout and options.
//
//	svg, err := render.SVG(l, render.WithScale(50))
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 1600)  // 1600px wide
//
// # Overlap Diagnostics
//
// [OverlapDOT] emits a Graphviz DOT graph with one node per label and one
// edge per residual overlapping pair, and [GraphvizSVG] renders it. This is
// the quickest way to see which labels a crowded scene failed to separate.
//
//	dot := render.OverlapDOT(l)
//	svg, err := render.GraphvizSVG(dot)
package render
