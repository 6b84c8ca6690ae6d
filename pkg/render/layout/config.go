package layout

import (
	"github.com/matzehuels/workflowgraph/pkg/dag/transform"
	"github.com/matzehuels/workflowgraph/pkg/errors"
)

// Default layout values.
const (
	DefaultWindowWidth  = 1200.0
	DefaultWindowHeight = 500.0
	DefaultRectHeight   = 40.0
	DefaultSideMargin   = 25.0
	DefaultNodeMargin   = 200.0
	DefaultMinNodeWidth = 150.0
	DefaultMaxNodeWidth = 450.0
)

// rowGap is the vertical room reserved per node on top of its height when
// growing the frame to fit the most crowded level.
const rowGap = 50.0

// Config enumerates every layout option. The zero value of a numeric field
// means "use the default"; call [Config.SetDefaults] before use.
type Config struct {
	WindowWidth  float64 `toml:"window_width" json:"window_width,omitempty"`
	WindowHeight float64 `toml:"window_height" json:"window_height,omitempty"`
	RectWidth    float64 `toml:"rect_width" json:"rect_width,omitempty"` // 0 sizes nodes to the frame
	RectHeight   float64 `toml:"rect_height" json:"rect_height,omitempty"`
	SideMargin   float64 `toml:"side_margin" json:"side_margin,omitempty"`
	NodeMargin   float64 `toml:"node_margin" json:"node_margin,omitempty"`
	MinNodeWidth float64 `toml:"min_node_width" json:"min_node_width,omitempty"`
	MaxNodeWidth float64 `toml:"max_node_width" json:"max_node_width,omitempty"`

	StraightArrows bool   `toml:"straight_arrows" json:"straight_arrows,omitempty"`
	StraightNudge  bool   `toml:"straight_nudge" json:"straight_nudge,omitempty"`
	LeafPolicy     string `toml:"leaf_policy" json:"leaf_policy,omitempty"` // "continue" or "stop"
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	var c Config
	c.SetDefaults()
	return c
}

// SetDefaults fills zero-valued fields with their defaults. RectWidth stays
// 0 so that it is sized automatically.
func (c *Config) SetDefaults() {
	if c.WindowWidth == 0 {
		c.WindowWidth = DefaultWindowWidth
	}
	if c.WindowHeight == 0 {
		c.WindowHeight = DefaultWindowHeight
	}
	if c.RectHeight == 0 {
		c.RectHeight = DefaultRectHeight
	}
	if c.SideMargin == 0 {
		c.SideMargin = DefaultSideMargin
	}
	if c.NodeMargin == 0 {
		c.NodeMargin = DefaultNodeMargin
	}
	if c.MinNodeWidth == 0 {
		c.MinNodeWidth = DefaultMinNodeWidth
	}
	if c.MaxNodeWidth == 0 {
		c.MaxNodeWidth = DefaultMaxNodeWidth
	}
	if c.LeafPolicy == "" {
		c.LeafPolicy = transform.LeafPolicyContinue.String()
	}
}

// Validate checks a defaulted Config. Sizes must be non-negative and the
// window must have room to place nodes.
func (c Config) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"window_width", c.WindowWidth},
		{"window_height", c.WindowHeight},
		{"rect_width", c.RectWidth},
		{"rect_height", c.RectHeight},
		{"side_margin", c.SideMargin},
		{"node_margin", c.NodeMargin},
		{"min_node_width", c.MinNodeWidth},
		{"max_node_width", c.MaxNodeWidth},
	}
	for _, f := range fields {
		if f.v < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative, got %g", f.name, f.v)
		}
	}
	if c.WindowHeight == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "window_height must be positive")
	}
	if c.MinNodeWidth > c.MaxNodeWidth {
		return errors.New(errors.ErrCodeInvalidConfig, "min_node_width %g exceeds max_node_width %g", c.MinNodeWidth, c.MaxNodeWidth)
	}
	if _, err := transform.ParseLeafPolicy(c.LeafPolicy); err != nil {
		return err
	}
	return nil
}

// DepthOptions returns the depth assigner options selected by c.
// Validate must have accepted c.
func (c Config) DepthOptions() transform.DepthOptions {
	p, _ := transform.ParseLeafPolicy(c.LeafPolicy)
	return transform.DepthOptions{LeafPolicy: p}
}

// Params is the resolved geometry of one layout pass: the configured values
// with the node width chosen and the frame grown to fit.
type Params struct {
	SideMargin   float64 `json:"side_margin"`
	NodeMargin   float64 `json:"node_margin"`
	RectWidth    float64 `json:"rect_width"`
	RectHeight   float64 `json:"rect_height"`
	WindowWidth  float64 `json:"window_width"`
	WindowHeight float64 `json:"window_height"`

	Straight      bool `json:"straight,omitempty"`
	StraightNudge bool `json:"straight_nudge,omitempty"`
}

// Fit resolves c against the census of one pass.
//
// With RectWidth unset, nodes share the window width left after margins,
// clamped to [MinNodeWidth, MaxNodeWidth]. The window then grows so that
// every level fits horizontally and the most crowded level has
// RectHeight+50 per node vertically. It never shrinks.
func Fit(c Config, census transform.LevelCensus) Params {
	levels := float64(max(census.Levels(), 1))
	gaps := c.NodeMargin * (levels - 1)

	rw := c.RectWidth
	if rw == 0 {
		rw = (c.WindowWidth - 2*c.SideMargin - gaps) / levels
		rw = min(max(rw, c.MinNodeWidth), c.MaxNodeWidth)
	}

	return Params{
		SideMargin:    c.SideMargin,
		NodeMargin:    c.NodeMargin,
		RectWidth:     rw,
		RectHeight:    c.RectHeight,
		WindowWidth:   max(c.WindowWidth, 2*c.SideMargin+gaps+rw*levels),
		WindowHeight:  max(c.WindowHeight, (c.RectHeight+rowGap)*float64(census.MaxCount()+1)),
		Straight:      c.StraightArrows,
		StraightNudge: c.StraightNudge,
	}
}
