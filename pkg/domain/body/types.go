// Package body merges a fixed catalogue of anatomical regions with sparse
// caller overrides and resolves every outline path into a render-ready
// segment with deterministic fill, stroke and interactivity.
package body

// Slug identifies one anatomical region within a catalogue collection.
type Slug string

const (
	SlugAbs        Slug = "abs"
	SlugAdductors  Slug = "adductors"
	SlugAnkles     Slug = "ankles"
	SlugBiceps     Slug = "biceps"
	SlugCalves     Slug = "calves"
	SlugChest      Slug = "chest"
	SlugDeltoids   Slug = "deltoids"
	SlugFeet       Slug = "feet"
	SlugForearm    Slug = "forearm"
	SlugGluteal    Slug = "gluteal"
	SlugHamstring  Slug = "hamstring"
	SlugHands      Slug = "hands"
	SlugHair       Slug = "hair"
	SlugHead       Slug = "head"
	SlugKnees      Slug = "knees"
	SlugLowerBack  Slug = "lower-back"
	SlugNeck       Slug = "neck"
	SlugObliques   Slug = "obliques"
	SlugQuadriceps Slug = "quadriceps"
	SlugTibialis   Slug = "tibialis"
	SlugTrapezius  Slug = "trapezius"
	SlugTriceps    Slug = "triceps"
	SlugUpperBack  Slug = "upper-back"
)

// AllSlugs lists every known region in alphabetical order.
var AllSlugs = []Slug{
	SlugAbs, SlugAdductors, SlugAnkles, SlugBiceps, SlugCalves, SlugChest,
	SlugDeltoids, SlugFeet, SlugForearm, SlugGluteal, SlugHamstring, SlugHands,
	SlugHair, SlugHead, SlugKnees, SlugLowerBack, SlugNeck, SlugObliques,
	SlugQuadriceps, SlugTibialis, SlugTrapezius, SlugTriceps, SlugUpperBack,
}

// Side is an anatomical side of a bilateral region. The zero value means
// "no side", which is what common segments report.
type Side string

const (
	SideNone  Side = ""
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Opposite returns the other anatomical side, or SideNone.
func (s Side) Opposite() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	}
	return SideNone
}

// View selects the front or back silhouette.
type View string

const (
	ViewFront View = "front"
	ViewBack  View = "back"
)

// Gender selects the male or female silhouette.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Group names one of the three outline groups of a region.
type Group string

const (
	GroupCommon Group = "common"
	GroupLeft   Group = "left"
	GroupRight  Group = "right"
)

// Outline holds raw path data grouped by side. Paths are opaque and passed
// through untouched.
type Outline struct {
	Common []string `json:"common,omitempty" yaml:"common,omitempty"`
	Left   []string `json:"left,omitempty" yaml:"left,omitempty"`
	Right  []string `json:"right,omitempty" yaml:"right,omitempty"`
}

// Bilateral reports whether the outline has left or right variants.
func (o Outline) Bilateral() bool {
	return len(o.Left) > 0 || len(o.Right) > 0
}

func (o Outline) clone() Outline {
	return Outline{
		Common: cloneStrings(o.Common),
		Left:   cloneStrings(o.Left),
		Right:  cloneStrings(o.Right),
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// RegionDefinition is one entry of an asset catalogue collection.
type RegionDefinition struct {
	Slug Slug    `json:"slug" yaml:"slug"`
	Path Outline `json:"path" yaml:"path"`
}

// PartStyles overrides the configuration defaults for a single region.
// Empty strings and a nil StrokeWidth mean "not set".
type PartStyles struct {
	Fill        string   `json:"fill,omitempty" yaml:"fill,omitempty" firestore:"fill,omitempty"`
	Stroke      string   `json:"stroke,omitempty" yaml:"stroke,omitempty" firestore:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty" yaml:"strokeWidth,omitempty" firestore:"stroke_width,omitempty"`
}

// Override is a caller-supplied highlight entry for one region.
type Override struct {
	Slug      Slug        `json:"slug" yaml:"slug" firestore:"slug"`
	Color     string      `json:"color,omitempty" yaml:"color,omitempty" firestore:"color,omitempty"`
	Intensity int         `json:"intensity,omitempty" yaml:"intensity,omitempty" firestore:"intensity,omitempty"`
	Side      Side        `json:"side,omitempty" yaml:"side,omitempty" firestore:"side,omitempty"`
	Styles    *PartStyles `json:"styles,omitempty" yaml:"styles,omitempty" firestore:"styles,omitempty"`
}

// Region is a catalogue entry enriched with the matching override, if any.
type Region struct {
	Slug      Slug
	Path      Outline
	Color     string
	Intensity int
	Side      Side
	Styles    *PartStyles
}

// Style is the resolved paint of a region.
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Disabled    bool
}

// ResolvedRegion is a region together with its resolved style. It is what
// press handlers receive.
type ResolvedRegion struct {
	Region
	Style Style
}

// Segment is one drawable path of a resolved region.
type Segment struct {
	Key         string
	Slug        Slug
	Group       Group
	Side        Side
	Index       int
	D           string
	Fill        string
	Stroke      string
	StrokeWidth float64

	// Disabled mirrors the accessibility "disabled" attribute.
	Disabled bool
	// Pressable is false when no press handler is bound to the segment.
	Pressable bool
	Cursor    string
	Opacity   float64
}
