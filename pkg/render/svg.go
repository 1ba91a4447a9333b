package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/placardlabs/placard/pkg/errors"
	"github.com/placardlabs/placard/pkg/geom"
	"github.com/placardlabs/placard/pkg/scene"
)

// DefaultScale is the pixel size of one canvas unit.
const DefaultScale = 40.0

const (
	sectorFill      = "#f2b8b5"
	sectorStroke    = "#c62828"
	boxFill         = "#ffffff"
	boxStroke       = "#37474f"
	connectorStroke = "#90a4ae"
	anchorFill      = "#37474f"
	textColor       = "#263238"
)

// Option configures SVG rendering.
type Option func(*svgRenderer)

type svgRenderer struct {
	scale          float64
	showSectors    bool
	showConnectors bool
	showAnchors    bool
}

// WithScale sets the pixel size of one canvas unit (default 40).
func WithScale(s float64) Option { return func(r *svgRenderer) { r.scale = s } }

// WithoutSectors drops the exclusion-sector wedges from the output.
func WithoutSectors() Option { return func(r *svgRenderer) { r.showSectors = false } }

// WithoutConnectors drops the anchor-to-label connector lines.
func WithoutConnectors() Option { return func(r *svgRenderer) { r.showConnectors = false } }

// WithoutAnchors drops the anchor dots.
func WithoutAnchors() Option { return func(r *svgRenderer) { r.showAnchors = false } }

// SVG renders a solved layout as an SVG document: sector wedges at the
// back, then connectors, anchor dots, and the label boxes with their text.
// Output is deterministic for a given layout and options.
func SVG(l *scene.Layout, opts ...Option) ([]byte, error) {
	if err := errors.ValidateCanvas(l.Canvas); err != nil {
		return nil, err
	}

	r := svgRenderer{
		scale:          DefaultScale,
		showSectors:    true,
		showConnectors: true,
		showAnchors:    true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = DefaultScale
	}

	width := l.Canvas.Width() * r.scale
	height := l.Canvas.Height() * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="white"/>`+"\n", width, height)

	if r.showSectors {
		for _, s := range l.Sectors {
			r.renderSector(&buf, l.Canvas, s)
		}
	}
	if r.showConnectors {
		for _, lb := range l.Labels {
			x1, y1 := r.project(l.Canvas, lb.Anchor)
			x2, y2 := r.project(l.Canvas, lb.Connector)
			fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
				x1, y1, x2, y2, connectorStroke)
		}
	}
	if r.showAnchors {
		for _, lb := range l.Labels {
			x, y := r.project(l.Canvas, lb.Anchor)
			fmt.Fprintf(&buf, `  <circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n", x, y, anchorFill)
		}
	}
	for _, lb := range l.Labels {
		r.renderLabel(&buf, l.Canvas, lb)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// project maps a canvas point to SVG pixel coordinates. The canvas y axis
// points up; SVG's points down.
func (r *svgRenderer) project(canvas geom.Box, p geom.Point) (float64, float64) {
	return (p.X - canvas.MinX) * r.scale, (canvas.MaxY - p.Y) * r.scale
}

func (r *svgRenderer) renderSector(buf *bytes.Buffer, canvas geom.Box, s geom.Sector) {
	cx, cy := r.project(canvas, s.Center)
	radius := s.Radius * r.scale

	span := geom.NormDeg(s.EndDeg - s.StartDeg)
	if s.StartDeg == s.EndDeg {
		return
	}
	if s.FullCircle() {
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="0.35" stroke="%s" stroke-width="1"/>`+"\n",
			cx, cy, radius, sectorFill, sectorStroke)
		return
	}

	p1 := arcPoint(s, s.StartDeg)
	p2 := arcPoint(s, s.EndDeg)
	x1, y1 := r.project(canvas, p1)
	x2, y2 := r.project(canvas, p2)
	largeArc := 0
	if span > 180 {
		largeArc = 1
	}
	// The canvas angle runs counterclockwise; after the y flip that is
	// sweep direction 0 in SVG terms.
	fmt.Fprintf(buf, `  <path d="M %.1f %.1f L %.1f %.1f A %.1f %.1f 0 %d 0 %.1f %.1f Z" fill="%s" fill-opacity="0.35" stroke="%s" stroke-width="1"/>`+"\n",
		cx, cy, x1, y1, radius, radius, largeArc, x2, y2, sectorFill, sectorStroke)
}

func (r *svgRenderer) renderLabel(buf *bytes.Buffer, canvas geom.Box, lb scene.Label) {
	topLeft := geom.Point{X: lb.Box.MinX, Y: lb.Box.MaxY}
	x, y := r.project(canvas, topLeft)
	w := lb.Box.Width() * r.scale
	h := lb.Box.Height() * r.scale

	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="3" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		x, y, w, h, boxFill, boxStroke)

	text := lb.Text
	if text == "" {
		text = lb.ID
	}
	cx, cy := r.project(canvas, lb.Box.Center())
	fontSize := math.Min(h*0.45, w*1.6/math.Max(float64(len(text)), 1))
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		cx, cy, fontSize, textColor, escapeText(text))
}

// arcPoint returns the point on the sector's arc at the given angle.
func arcPoint(s geom.Sector, deg float64) geom.Point {
	rad := deg * math.Pi / 180
	return geom.Point{
		X: s.Center.X + s.Radius*math.Cos(rad),
		Y: s.Center.Y + s.Radius*math.Sin(rad),
	}
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
