package sink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/workflowgraph/pkg/dag"
	"github.com/matzehuels/workflowgraph/pkg/graph"
	"github.com/matzehuels/workflowgraph/pkg/render"
	"github.com/matzehuels/workflowgraph/pkg/render/layout"
)

func buildScenario(t *testing.T) layout.Layout {
	t.Helper()
	g := dag.Graph{
		Nodes: []dag.Node{
			{ID: 1, Name: "ingest", All: 5, Completed: 2, Remaining: 3, URL: "https://ci.example/1"},
			{ID: 2, Name: "parse"},
			{ID: 3, Name: "index <v2>"},
		},
		Edges: []dag.Edge{{Source: 1, End: 2}, {Source: 1, End: 3}},
		Start: dag.StartAt(1),
	}
	l, err := layout.Build(g, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return l
}

func TestTheme_SetDefaults(t *testing.T) {
	tests := []struct {
		name   string
		in     Theme
		height float64
		node   string
	}{
		{"empty", Theme{}, 22, "lightgray"},
		{"small badge replaced", Theme{BadgeHeight: 15}, 22, "lightgray"},
		{"boundary replaced", Theme{BadgeHeight: 20}, 22, "lightgray"},
		{"large badge kept", Theme{BadgeHeight: 26, Node: "#eef"}, 26, "#eef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := tt.in
			th.SetDefaults()
			if th.BadgeHeight != tt.height {
				t.Errorf("BadgeHeight = %v, want %v", th.BadgeHeight, tt.height)
			}
			if th.Node != tt.node {
				t.Errorf("Node = %q, want %q", th.Node, tt.node)
			}
			if th.Blue != "blue" || th.Green != "green" || th.Red != "red" {
				t.Errorf("badge colours = %q/%q/%q", th.Blue, th.Green, th.Red)
			}
		})
	}
}

func TestTheme_Validate(t *testing.T) {
	th := DefaultTheme()
	if err := th.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	th.BadgeRadius = -1
	if err := th.Validate(); err == nil {
		t.Error("Validate() = nil, want error for negative radius")
	}
}

func TestRenderSVG_Structure(t *testing.T) {
	l := buildScenario(t)
	svg := string(RenderSVG(l))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1200 500" width="1200" height="500">`) {
		t.Errorf("unexpected header: %.120s", svg)
	}
	if !strings.Contains(svg, `<path d="M 0 0 12 6 0 12 3 6" fill="black"/>`) {
		t.Error("missing arrowhead marker")
	}

	segs := l.Segments()
	if got := strings.Count(svg, "<line "); got != len(segs) {
		t.Errorf("line count = %d, want %d", got, len(segs))
	}
	bends := 0
	for _, s := range segs {
		if s.Bend {
			bends++
		}
	}
	if got := strings.Count(svg, `marker-end="none"`); got != bends {
		t.Errorf("headless lines = %d, want %d", got, bends)
	}
	if got := strings.Count(svg, `marker-end="url(#triangle)"`); got != len(segs)-bends {
		t.Errorf("arrowed lines = %d, want %d", got, len(segs)-bends)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("document not closed")
	}
}

func TestRenderSVG_Badges(t *testing.T) {
	l := buildScenario(t)
	svg := string(RenderSVG(l))

	// ingest sits at (25, 250) in a 450x40 node; badge top is 250-20-11.
	want := []string{
		`<rect x="16.5" y="219" width="18" height="22" ry="10" fill="blue"/>`,
		`<rect x="245.5" y="219" width="18" height="22" ry="10" fill="green"/>`,
		`<rect x="465.5" y="219" width="18" height="22" ry="10" fill="red"/>`,
		`<text x="25" y="230" dx="-4" dy="4" fill="white" style="font-family: monospace">5</text>`,
		`<text x="255" y="230" dx="0" dy="4" fill="white" style="font-family: monospace">2</text>`,
		`<text x="475" y="230" dx="0" dy="4" fill="white" style="font-family: monospace">3</text>`,
	}
	for _, w := range want {
		if !strings.Contains(svg, w) {
			t.Errorf("missing %s", w)
		}
	}
	if got := strings.Count(svg, `ry="10"`); got != 3 {
		t.Errorf("badge count = %d, want 3 (zero counts omitted)", got)
	}
}

func TestRenderSVG_BadgeWidthGrowsWithDigits(t *testing.T) {
	l := layout.Layout{
		Params: layout.Params{RectWidth: 200, RectHeight: 40, WindowWidth: 300, WindowHeight: 100},
		Nodes:  []layout.PositionedNode{{Node: dag.Node{ID: 1, Name: "n", All: 1234}, X: 10, Y: 50}},
	}
	svg := string(RenderSVG(l))
	// 22/2 + 7*4
	if !strings.Contains(svg, `width="39" height="22"`) {
		t.Errorf("badge width not scaled by digit count:\n%s", svg)
	}
}

func TestRenderSVG_Links(t *testing.T) {
	l := buildScenario(t)
	svg := string(RenderSVG(l))

	if got := strings.Count(svg, "<a href="); got != 1 {
		t.Errorf("link count = %d, want 1", got)
	}
	if !strings.Contains(svg, `<a href="https://ci.example/1" target="_blank">`) {
		t.Error("missing link for node 1")
	}
	if strings.Count(svg, "<a ") != strings.Count(svg, "</a>") {
		t.Error("unbalanced anchors")
	}
}

func TestRenderSVG_EscapesLabels(t *testing.T) {
	l := buildScenario(t)
	svg := string(RenderSVG(l, WithTitle("a & b")))

	if strings.Contains(svg, "<v2>") {
		t.Error("label not escaped")
	}
	if !strings.Contains(svg, "index &lt;v2&gt;") {
		t.Error("escaped label missing")
	}
	if !strings.Contains(svg, "<title>a &amp; b</title>") {
		t.Error("document title missing or unescaped")
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width float64
		want  string
	}{
		{"fits", "short", 150, "short"},
		{"cut", "abcdefghijklmnopqrstuvwxyz", 100, "abcdefghijkl"},
		{"multibyte", "äöüäöüäöüäöüäöü", 80, "äöüäöüäöüä"},
		{"zero width", "abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateLabel(tt.in, tt.width); got != tt.want {
				t.Errorf("truncateLabel(%q, %v) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestRenderSVG_Theme(t *testing.T) {
	l := buildScenario(t)
	svg := string(RenderSVG(l, WithTheme(Theme{Node: "#eef", Border: "2", Background: "#111"}), WithHover()))

	if !strings.Contains(svg, `stroke-width="2" fill="#eef"`) {
		t.Error("node theme not applied")
	}
	if !strings.Contains(svg, `fill="#111"`) {
		t.Error("background not applied")
	}
	if !strings.Contains(svg, "fill=\"blue\"") {
		t.Error("unset theme fields should keep defaults")
	}
	if !strings.Contains(svg, "<style>") {
		t.Error("hover stylesheet missing")
	}
}

func TestRenderSVG_Deterministic(t *testing.T) {
	l := buildScenario(t)
	if !bytes.Equal(RenderSVG(l), RenderSVG(l)) {
		t.Error("RenderSVG output differs between calls")
	}
}

func TestRenderJSON_RoundTrip(t *testing.T) {
	l := buildScenario(t)

	data, err := RenderJSON(l)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	gl, err := graph.UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout() error: %v", err)
	}
	if gl.VizType != graph.VizTypeWorkflow {
		t.Errorf("VizType = %q, want workflow", gl.VizType)
	}
	back, err := layout.Parse(gl)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !bytes.Equal(RenderSVG(back), RenderSVG(l)) {
		t.Error("SVG from parsed layout differs from original")
	}
}

func TestRenderJSON_Nodelink(t *testing.T) {
	l := buildScenario(t)
	data, err := RenderJSON(l, WithJSONDOT("digraph G {}"), WithJSONEngine("neato"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	gl, err := graph.UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout() error: %v", err)
	}
	if !gl.IsNodelink() || gl.Engine != "neato" {
		t.Errorf("VizType = %q, Engine = %q", gl.VizType, gl.Engine)
	}
}

func TestRenderPDF(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	pdf, err := RenderPDF(context.Background(), buildScenario(t))
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestRenderPNG(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := RenderPNG(context.Background(), buildScenario(t), WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}
