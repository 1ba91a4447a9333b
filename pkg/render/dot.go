package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/placardlabs/placard/pkg/scene"
)

// OverlapDOT converts a solved layout into a Graphviz DOT graph for overlap
// diagnostics: one node per label, one edge per residual overlapping pair.
// Labels that overlap nothing render as plain boxes; overlapping ones are
// filled red so crowded regions stand out. The resulting DOT string can be
// rendered with [GraphvizSVG].
func OverlapDOT(l *scene.Layout) string {
	overlapping := make(map[string]bool)
	type pair struct{ a, b string }
	var pairs []pair
	for i := 0; i < len(l.Labels); i++ {
		for j := i + 1; j < len(l.Labels); j++ {
			a, b := &l.Labels[i], &l.Labels[j]
			if a.Box.Overlaps(b.Box, 0) {
				pairs = append(pairs, pair{a.ID, b.ID})
				overlapping[a.ID] = true
				overlapping[b.ID] = true
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph overlaps {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [color=\"#c62828\", penwidth=2];\n")
	buf.WriteString("\n")

	for _, lb := range l.Labels {
		attrs := fmt.Sprintf("label=%q, pos=\"%.2f,%.2f\"", lb.Text, lb.Box.Center().X, lb.Box.Center().Y)
		if overlapping[lb.ID] {
			attrs += ", fillcolor=\"#f2b8b5\""
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", lb.ID, attrs)
	}

	buf.WriteString("\n")
	for _, p := range pairs {
		fmt.Fprintf(&buf, "  %q -- %q;\n", p.a, p.b)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// GraphvizSVG renders a DOT graph to SVG using Graphviz.
// Returns SVG bytes ready for display or further conversion with [ToPDF] or [ToPNG].
func GraphvizSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz svg header so the viewBox starts
// at the origin and the pixel size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
