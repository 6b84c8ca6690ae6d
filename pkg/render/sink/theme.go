package sink

import "github.com/matzehuels/workflowgraph/pkg/errors"

// Default theme values.
const (
	DefaultBadgeHeight = 22.0
	DefaultBadgeRadius = 10.0

	// minBadgeHeight is the smallest badge that still fits its label.
	minBadgeHeight = 20.0
)

// Theme enumerates every colour and badge option of the SVG sink.
type Theme struct {
	Blue       string `toml:"blue" json:"blue,omitempty"`   // All-tasks badge
	Green      string `toml:"green" json:"green,omitempty"` // Completed badge
	Red        string `toml:"red" json:"red,omitempty"`     // Remaining badge
	Node       string `toml:"node" json:"node,omitempty"`
	Border     string `toml:"border" json:"border,omitempty"` // Node stroke width
	BadgeText  string `toml:"badge_text" json:"badge_text,omitempty"`
	Background string `toml:"background" json:"background,omitempty"`
	Arrow      string `toml:"arrow" json:"arrow,omitempty"`

	BadgeHeight float64 `toml:"badge_height" json:"badge_height,omitempty"`
	BadgeRadius float64 `toml:"badge_radius" json:"badge_radius,omitempty"`
}

// DefaultTheme returns a Theme with every default applied.
func DefaultTheme() Theme {
	var t Theme
	t.SetDefaults()
	return t
}

// SetDefaults fills empty fields. A badge height of 20 or less cannot hold
// its label and is replaced by the default.
func (t *Theme) SetDefaults() {
	setDefault(&t.Blue, "blue")
	setDefault(&t.Green, "green")
	setDefault(&t.Red, "red")
	setDefault(&t.Node, "lightgray")
	setDefault(&t.Border, "0")
	setDefault(&t.BadgeText, "white")
	setDefault(&t.Background, "white")
	setDefault(&t.Arrow, "black")
	if t.BadgeHeight <= minBadgeHeight {
		t.BadgeHeight = DefaultBadgeHeight
	}
	if t.BadgeRadius == 0 {
		t.BadgeRadius = DefaultBadgeRadius
	}
}

// Validate checks a defaulted Theme.
func (t Theme) Validate() error {
	if t.BadgeRadius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "badge_radius must not be negative, got %g", t.BadgeRadius)
	}
	return nil
}

func setDefault(s *string, v string) {
	if *s == "" {
		*s = v
	}
}
