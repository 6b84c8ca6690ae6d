package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/workflowgraph/pkg/errors"
	"github.com/matzehuels/workflowgraph/pkg/render"
	"github.com/matzehuels/workflowgraph/pkg/render/layout"
)

// Engine is the Graphviz layout engine used by [RenderSVG]. neato honours
// pinned positions, so the drawing keeps the workflow coordinates.
const Engine = "neato"

// pointsPerInch converts layout units (points) to DOT inches.
const pointsPerInch = 72.0

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the completed/total task counts to node labels.
	// When false, only the node name is shown.
	Detailed bool
}

// ToDOT converts a computed layout to Graphviz DOT. Every node is pinned at
// its layout position (pos="x,y!" in inches, y flipped so depth 0 stays on
// the left and the first row stays on top), with the node's rectangle size,
// so Graphviz only draws the edges between fixed boxes.
//
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(l layout.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  overlap=true;\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"filled\", fillcolor=lightgray, fontname=monospace, fixedsize=true, width=%s, height=%s];\n",
		inches(l.RectWidth), inches(l.RectHeight))
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		// n.X is the left edge; Graphviz positions node centres.
		cx := n.X + l.RectWidth/2
		cy := l.WindowHeight - n.Y
		attrs := []string{
			"label=" + quote(fmtLabel(n, opts.Detailed)),
			fmt.Sprintf("pos=\"%s,%s!\"", inches(cx), inches(cy)),
		}
		if n.URL != "" {
			attrs = append(attrs, "URL="+quote(n.URL), "target=\"_blank\"")
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  %d -> %d;\n", e.Source, e.End)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n layout.PositionedNode, detailed bool) string {
	if !detailed || n.All == 0 {
		return n.Name
	}
	return fmt.Sprintf("%s\n%d/%d done", n.Name, n.Completed, n.All)
}

// dotEscaper escapes a DOT double-quoted string. Newlines become the \n
// line break; every other character is passed through as is.
var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`, "\r", `\n`)

func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

func inches(points float64) string {
	return strconv.FormatFloat(points/pointsPerInch, 'f', 4, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg tag (pt units, xlink namespace
// noise) with a plain one sized to the drawing.
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
