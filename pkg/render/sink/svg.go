package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/workflowgraph/pkg/render/layout"
)

const (
	// labelCharWidth is the advance of one monospace glyph at the default
	// font size; labels are cut to the characters that fit the node.
	labelCharWidth = 7.7
	// digitWidth is the badge growth per digit of its count.
	digitWidth = 7.0
)

const hoverCSS = `
    .node rect { transition: stroke-width 0.2s ease; }
    .node:hover rect { stroke-width: 2; stroke: black; }
    a { cursor: pointer; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme Theme
	title string
	hover bool
}

// WithTheme replaces the default theme. Empty fields keep their defaults.
func WithTheme(t Theme) SVGOption {
	return func(r *svgRenderer) {
		t.SetDefaults()
		r.theme = t
	}
}

// WithTitle adds a document <title>.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithHover embeds a small stylesheet that highlights nodes under the pointer.
func WithHover() SVGOption { return func(r *svgRenderer) { r.hover = true } }

// RenderSVG draws the layout as a standalone SVG document sized to the
// layout's window. Arrows are drawn first, then nodes with their labels and
// count badges, so nodes sit above the lines that enter them.
//
// RenderSVG does not modify l and is safe to call concurrently.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{theme: DefaultTheme()}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(l.WindowWidth), num(l.WindowHeight), num(l.WindowWidth), num(l.WindowHeight))
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	if r.hover {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", hoverCSS)
	}

	r.renderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.theme.Background))

	buf.WriteString("  <g class=\"edges\">\n")
	for _, s := range l.Segments() {
		r.renderSegment(&buf, s)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("  <g class=\"nodes\">\n")
	for _, n := range l.Nodes {
		r.renderNode(&buf, n, l.Params)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	buf.WriteString(`    <marker id="triangle" viewBox="0 0 12 12" refX="6" refY="6" markerWidth="30" markerHeight="30" markerUnits="userSpaceOnUse" orient="auto">` + "\n")
	fmt.Fprintf(buf, `      <path d="M 0 0 12 6 0 12 3 6" fill="%s"/>`+"\n", escapeXML(r.theme.Arrow))
	buf.WriteString("    </marker>\n")
	buf.WriteString("  </defs>\n")
}

// renderSegment draws one line. Only the final leg of a route carries the
// arrowhead.
func (r *svgRenderer) renderSegment(buf *bytes.Buffer, s layout.Segment) {
	marker := "url(#triangle)"
	if s.Bend {
		marker = "none"
	}
	fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1" marker-end="%s"/>`+"\n",
		num(s.X1), num(s.Y1), num(s.X2), num(s.Y2), escapeXML(r.theme.Arrow), marker)
}

func (r *svgRenderer) renderNode(buf *bytes.Buffer, n layout.PositionedNode, p layout.Params) {
	t := r.theme
	top := n.Y - p.RectHeight/2

	if n.URL != "" {
		fmt.Fprintf(buf, `    <a href="%s" target="_blank">`+"\n", escapeXML(n.URL))
	}
	fmt.Fprintf(buf, `    <g class="node" id="node-%d">`+"\n", n.ID)
	fmt.Fprintf(buf, "      <title>%s</title>\n", escapeXML(n.Name))
	fmt.Fprintf(buf, `      <rect x="%s" y="%s" width="%s" height="%s" stroke="black" stroke-width="%s" fill="%s"/>`+"\n",
		num(n.X), num(top), num(p.RectWidth), num(p.RectHeight), escapeXML(t.Border), escapeXML(t.Node))
	fmt.Fprintf(buf, `      <text x="%s" y="%s" dx="6" dy="4" style="font-family: monospace">%s</text>`+"\n",
		num(n.X), num(n.Y), escapeXML(truncateLabel(n.Name, p.RectWidth)))

	r.renderBadges(buf, n, p)

	buf.WriteString("    </g>\n")
	if n.URL != "" {
		buf.WriteString("    </a>\n")
	}
}

type badge struct {
	count int
	fill  string
	rectX float64
	textX float64
	dx    float64
}

// renderBadges draws the all/completed/remaining pills along the node's top
// edge. A badge with a zero count is omitted.
func (r *svgRenderer) renderBadges(buf *bytes.Buffer, n layout.PositionedNode, p layout.Params) {
	t := r.theme
	bh := t.BadgeHeight
	left := n.X - bh/4

	badges := []badge{
		{count: n.All, fill: t.Blue, rectX: left - 3, textX: n.X, dx: -4},
		{count: n.Completed, fill: t.Green, rectX: left + p.RectWidth/2 + 1, textX: n.X + p.RectWidth/2 + 5},
		{count: n.Remaining, fill: t.Red, rectX: left + p.RectWidth - 4, textX: n.X + p.RectWidth},
	}

	top := n.Y - p.RectHeight/2
	buf.WriteString("      <g class=\"circles\">\n")
	for _, b := range badges {
		if b.count <= 0 {
			continue
		}
		digits := strconv.Itoa(b.count)
		w := bh/2 + digitWidth*float64(len(digits))
		fmt.Fprintf(buf, `        <rect x="%s" y="%s" width="%s" height="%s" ry="%s" fill="%s"/>`+"\n",
			num(b.rectX), num(top-bh/2), num(w), num(bh), num(t.BadgeRadius), escapeXML(b.fill))
		fmt.Fprintf(buf, `        <text x="%s" y="%s" dx="%s" dy="4" fill="%s" style="font-family: monospace">%s</text>`+"\n",
			num(b.textX), num(top), num(b.dx), escapeXML(t.BadgeText), digits)
	}
	buf.WriteString("      </g>\n")
}

// truncateLabel keeps the characters that fit in a node of the given width.
func truncateLabel(name string, width float64) string {
	limit := int(width / labelCharWidth)
	runes := []rune(name)
	if limit < 0 {
		limit = 0
	}
	if len(runes) <= limit {
		return name
	}
	return string(runes[:limit])
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
