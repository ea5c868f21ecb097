package body

const (
	// DisabledFill is the fixed fill of every disabled region.
	DisabledFill = "#EBEBE4"
	// DisabledOpacity is applied to segments of disabled regions.
	DisabledOpacity = 0.6

	CursorPointer    = "pointer"
	CursorNotAllowed = "not-allowed"

	// BorderNone disables the container border.
	BorderNone = "none"

	DefaultFill        = "#3f3f3f"
	DefaultStroke      = "none"
	DefaultStrokeWidth = 0.0
	DefaultBorder      = "#dfdfdf"
	DefaultScale       = 1.0
)

// DefaultColors is the fallback intensity ramp used by Config.WithDefaults.
var DefaultColors = []string{"#0984e3", "#74b9ff"}

// Config is the per-render configuration. The engine uses it exactly as
// given; call WithDefaults to fill unset fields with the documented
// fallbacks.
type Config struct {
	// Colors is the intensity ramp: intensity N maps to Colors[N-1].
	Colors             []string
	Scale              float64
	View               View
	Gender             Gender
	Disabled           []Slug
	Hidden             []Slug
	DefaultFill        string
	DefaultStroke      string
	DefaultStrokeWidth float64
	Border             string
}

// DefaultConfig returns a configuration with every fallback applied.
func DefaultConfig() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns a copy of c where unset fields take their fallback
// values. DefaultStrokeWidth has no "unset" state and is kept as is.
func (c Config) WithDefaults() Config {
	if c.Colors == nil {
		c.Colors = append([]string(nil), DefaultColors...)
	}
	if c.Scale == 0 {
		c.Scale = DefaultScale
	}
	if c.View == "" {
		c.View = ViewFront
	}
	if c.Gender == "" {
		c.Gender = GenderMale
	}
	if c.DefaultFill == "" {
		c.DefaultFill = DefaultFill
	}
	if c.DefaultStroke == "" {
		c.DefaultStroke = DefaultStroke
	}
	if c.Border == "" {
		c.Border = DefaultBorder
	}
	return c
}

// slugSet is a membership set built once per render pass.
type slugSet map[Slug]struct{}

func newSlugSet(slugs []Slug) slugSet {
	s := make(slugSet, len(slugs))
	for _, slug := range slugs {
		s[slug] = struct{}{}
	}
	return s
}

func (s slugSet) has(slug Slug) bool {
	_, ok := s[slug]
	return ok
}

// rampColor returns colors[intensity-1]. Intensities outside the ramp
// report false so callers fall through to the next precedence tier.
func rampColor(colors []string, intensity int) (string, bool) {
	if intensity <= 0 || intensity > len(colors) {
		return "", false
	}
	c := colors[intensity-1]
	if c == "" {
		return "", false
	}
	return c, true
}
