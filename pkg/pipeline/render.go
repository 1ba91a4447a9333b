package pipeline

import (
	"fmt"

	"github.com/placardlabs/placard/pkg/render"
	"github.com/placardlabs/placard/pkg/scene"
)

// Render generates output artifacts in the requested formats from a solved
// layout. This is the uncached rendering core; callers wanting caching go
// through [Runner.RenderWithCacheInfo].
func Render(l *scene.Layout, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = renderSVG(l, opts)
		case FormatPNG:
			data, err = renderSVG(l, opts)
			if err == nil {
				data, err = render.ToPNG(data, opts.PNGWidth)
			}
		case FormatPDF:
			data, err = renderSVG(l, opts)
			if err == nil {
				data, err = render.ToPDF(data)
			}
		case FormatDOT:
			data = []byte(render.OverlapDOT(l))
		case FormatJSON:
			data, err = scene.MarshalLayout(l)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderSVG(l *scene.Layout, opts Options) ([]byte, error) {
	var svgOpts []render.Option
	if opts.Scale > 0 {
		svgOpts = append(svgOpts, render.WithScale(opts.Scale))
	}
	return render.SVG(l, svgOpts...)
}
