package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/workflowgraph/pkg/errors"
	"github.com/matzehuels/workflowgraph/pkg/graph"
	"github.com/matzehuels/workflowgraph/pkg/render/layout"
	"github.com/matzehuels/workflowgraph/pkg/render/nodelink"
	"github.com/matzehuels/workflowgraph/pkg/render/sink"
)

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached).
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, err
	}
	return RenderFromLayout(ctx, parsed, opts)
}

// RenderFromLayout renders every format in opts.Formats from a graph.Layout.
// Formats are rendered concurrently; the first failure cancels the rest and
// is returned. opts must have passed ValidateForRender.
func RenderFromLayout(ctx context.Context, gl graph.Layout, opts Options) (map[string][]byte, error) {
	l, err := layout.Parse(gl)
	if err != nil {
		return nil, err
	}

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	eg, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		eg.Go(func() error {
			data, err := renderFormat(ctx, format, gl, l, opts)
			if err != nil {
				code := errors.GetCode(err)
				if code == "" {
					code = errors.ErrCodeInternal
				}
				return errors.Wrap(code, err, "render %s", format)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, format string, gl graph.Layout, l layout.Layout, opts Options) ([]byte, error) {
	if format == FormatJSON {
		return graph.MarshalLayout(gl)
	}
	if gl.IsNodelink() {
		return renderNodelink(ctx, format, gl, opts)
	}
	return renderWorkflow(ctx, format, l, opts)
}

func renderWorkflow(ctx context.Context, format string, l layout.Layout, opts Options) ([]byte, error) {
	svgOpts := buildSVGOptions(opts)
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatPNG:
		return sink.RenderPNG(ctx, l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOpts...))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported workflow format: %s", format)
}

// renderNodelink draws from the DOT embedded in the layout.
func renderNodelink(ctx context.Context, format string, gl graph.Layout, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return nodelink.RenderSVG(ctx, gl.DOT)
	case FormatDOT:
		return []byte(gl.DOT), nil
	case FormatPNG:
		return nodelink.RenderPNG(ctx, gl.DOT, opts.Scale)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, gl.DOT)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithTheme(opts.Theme)}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.Hover {
		svgOpts = append(svgOpts, sink.WithHover())
	}
	return svgOpts
}
