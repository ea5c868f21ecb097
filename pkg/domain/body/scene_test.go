package body

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Disabled = []Slug{SlugHead}
	overrides := []Override{
		{Slug: SlugBiceps, Intensity: 2, Side: SideLeft},
		{Slug: SlugChest, Color: "#ff0000"},
	}

	first := Render(testCatalogue(), overrides, cfg)
	second := Render(testCatalogue(), overrides, cfg)

	assert.Equal(t, first.Segments, second.Segments)
	assert.Equal(t, first.Regions, second.Regions)
}

func TestRender_HiddenContributesNothing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Hidden = []Slug{SlugBiceps}

	scene := Render(testCatalogue(), []Override{{Slug: SlugBiceps, Intensity: 1}}, cfg)

	for _, seg := range scene.Segments {
		assert.NotEqual(t, SlugBiceps, seg.Slug)
	}
	_, ok := scene.Region(SlugBiceps)
	assert.False(t, ok)
}

func TestRender_SegmentsBelongToCatalogue(t *testing.T) {
	known := map[Slug]bool{}
	for _, def := range testCatalogue() {
		known[def.Slug] = true
	}

	scene := Render(testCatalogue(), []Override{{Slug: "tail", Intensity: 1}}, DefaultConfig())

	require.NotEmpty(t, scene.Segments)
	for _, seg := range scene.Segments {
		assert.True(t, known[seg.Slug], "unexpected slug %s", seg.Slug)
	}
}

func TestRender_ExampleIntensityScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Colors = []string{"#0984e3", "#74b9ff"}

	scene := Render(testCatalogue(), []Override{{Slug: SlugBiceps, Intensity: 2}}, cfg)

	segs := scene.SegmentsFor(SlugBiceps)
	require.Len(t, segs, 3)
	for _, seg := range segs {
		assert.Equal(t, "#74b9ff", seg.Fill, seg.Key)
	}
}

func TestRender_ExampleDisabledScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Disabled = []Slug{SlugChest}

	scene := Render(testCatalogue(), []Override{{Slug: SlugChest, Color: "#ff0000"}}, cfg)

	calls := 0
	for _, seg := range scene.SegmentsFor(SlugChest) {
		assert.Equal(t, DisabledFill, seg.Fill)
		assert.False(t, scene.Press(seg.Key, func(ResolvedRegion, Side) { calls++ }))
	}
	assert.Zero(t, calls)
}

func TestRender_PassThroughUsesDefaultFill(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultFill = "#999999"

	scene := Render(testCatalogue(), nil, cfg)

	for _, seg := range scene.Segments {
		assert.Equal(t, "#999999", seg.Fill, seg.Key)
		assert.True(t, seg.Pressable)
	}
}

func TestScene_PressDispatch(t *testing.T) {
	scene := Render(testCatalogue(), []Override{{Slug: SlugBiceps, Intensity: 1, Side: SideRight}}, DefaultConfig())

	type press struct {
		slug Slug
		side Side
	}
	var got []press
	record := func(r ResolvedRegion, side Side) {
		got = append(got, press{r.Slug, side})
	}

	assert.True(t, scene.Press("biceps-left-1", record))
	assert.True(t, scene.Press("abs-common-0", record))
	assert.True(t, scene.Press("biceps-right-0", record))
	assert.False(t, scene.Press("biceps-right-7", record))
	assert.False(t, scene.Press("", record))

	assert.Equal(t, []press{
		{SlugBiceps, SideLeft},
		{SlugAbs, SideNone},
		{SlugBiceps, SideRight},
	}, got)
}

func TestScene_PressRegionPassesResolvedRegion(t *testing.T) {
	scene := Render(testCatalogue(), []Override{{Slug: SlugChest, Intensity: 1}}, DefaultConfig())

	var pressed ResolvedRegion
	ok := scene.PressRegion(SlugChest, SideLeft, func(r ResolvedRegion, _ Side) { pressed = r })

	require.True(t, ok)
	assert.Equal(t, SlugChest, pressed.Slug)
	assert.Equal(t, DefaultColors[0], pressed.Style.Fill)
	assert.Equal(t, 1, pressed.Intensity)
}

func TestScene_PressRegionRejects(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Hidden = []Slug{SlugHead}
	cfg.Disabled = []Slug{SlugAbs}
	scene := Render(testCatalogue(), nil, cfg)

	never := func(ResolvedRegion, Side) { t.Fatal("press handler must not be called") }

	tests := []struct {
		name string
		slug Slug
		side Side
	}{
		{"Hidden region", SlugHead, SideNone},
		{"Disabled region", SlugAbs, SideNone},
		{"Unknown region", "tail", SideNone},
		{"Missing side group", SlugChest, SideNone},
		{"Invalid side", SlugChest, Side("up")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, scene.PressRegion(tt.slug, tt.side, never))
		})
	}
	assert.False(t, scene.PressRegion(SlugChest, SideLeft, nil))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Lower Back", Label(SlugLowerBack))
	assert.Equal(t, "Biceps", Label(SlugBiceps))
	assert.Equal(t, "Biceps (left)", SideLabel(SlugBiceps, SideLeft))
	assert.Equal(t, "Abs", SideLabel(SlugAbs, SideNone))
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{Colors: []string{}, DefaultStrokeWidth: 2}.WithDefaults()

	assert.Empty(t, cfg.Colors, "an explicit empty ramp is kept")
	assert.Equal(t, DefaultScale, cfg.Scale)
	assert.Equal(t, ViewFront, cfg.View)
	assert.Equal(t, GenderMale, cfg.Gender)
	assert.Equal(t, DefaultFill, cfg.DefaultFill)
	assert.Equal(t, DefaultStroke, cfg.DefaultStroke)
	assert.Equal(t, DefaultBorder, cfg.Border)
	assert.Equal(t, 2.0, cfg.DefaultStrokeWidth)

	assert.Equal(t, DefaultColors, DefaultConfig().Colors)
}
