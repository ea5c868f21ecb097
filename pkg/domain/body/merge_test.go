package body

import (
	"reflect"
	"testing"
)

func testCatalogue() []RegionDefinition {
	return []RegionDefinition{
		{Slug: SlugHead, Path: Outline{Common: []string{"M0 0h10v10h-10Z"}}},
		{Slug: SlugChest, Path: Outline{Left: []string{"M10 20h5v5h-5Z"}, Right: []string{"M20 20h5v5h-5Z"}}},
		{Slug: SlugBiceps, Path: Outline{
			Left:  []string{"M1 30h2v6h-2Z", "M1 40h2v2h-2Z"},
			Right: []string{"M30 30h2v6h-2Z"},
		}},
		{Slug: SlugAbs, Path: Outline{Common: []string{"M15 30h6v12h-6Z", "M15 44h6v4h-6Z"}}},
	}
}

func floatPtr(f float64) *float64 { return &f }

func TestMerge_PassThroughWithoutOverride(t *testing.T) {
	got := Merge(testCatalogue(), nil, nil, DefaultColors)

	if len(got) != 4 {
		t.Fatalf("expected 4 regions, got %d", len(got))
	}
	for _, r := range got {
		if r.Color != "" || r.Intensity != 0 || r.Side != SideNone || r.Styles != nil {
			t.Errorf("region %s should carry no override data, got %+v", r.Slug, r)
		}
	}
	if !reflect.DeepEqual(got[2].Path, testCatalogue()[2].Path) {
		t.Errorf("outline not passed through: %+v", got[2].Path)
	}
}

func TestMerge_HiddenRegionsDropped(t *testing.T) {
	overrides := []Override{{Slug: SlugChest, Color: "#ff0000"}}
	got := Merge(testCatalogue(), overrides, []Slug{SlugChest, SlugHead}, DefaultColors)

	for _, r := range got {
		if r.Slug == SlugChest || r.Slug == SlugHead {
			t.Errorf("hidden region %s should have been dropped", r.Slug)
		}
	}
	if len(got) != 2 {
		t.Errorf("expected 2 regions, got %d", len(got))
	}
}

func TestMerge_DerivedColor(t *testing.T) {
	colors := []string{"#0984e3", "#74b9ff"}

	tests := []struct {
		name      string
		override  Override
		wantColor string
		wantFill  string
	}{
		{
			name:      "Intensity derives color",
			override:  Override{Slug: SlugBiceps, Intensity: 2},
			wantColor: "#74b9ff",
		},
		{
			name:      "Explicit color wins over intensity",
			override:  Override{Slug: SlugBiceps, Intensity: 2, Color: "#123456"},
			wantColor: "#123456",
		},
		{
			name:     "Style fill suppresses derived color",
			override: Override{Slug: SlugBiceps, Intensity: 1, Styles: &PartStyles{Fill: "#abcdef"}},
			wantFill: "#abcdef",
		},
		{
			name:     "Intensity beyond ramp derives nothing",
			override: Override{Slug: SlugBiceps, Intensity: 3},
		},
		{
			name:     "Zero intensity derives nothing",
			override: Override{Slug: SlugBiceps},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(testCatalogue(), []Override{tt.override}, nil, colors)
			var biceps Region
			for _, r := range got {
				if r.Slug == SlugBiceps {
					biceps = r
				}
			}
			if biceps.Color != tt.wantColor {
				t.Errorf("Color = %q, want %q", biceps.Color, tt.wantColor)
			}
			fill := ""
			if biceps.Styles != nil {
				fill = biceps.Styles.Fill
			}
			if fill != tt.wantFill {
				t.Errorf("Styles.Fill = %q, want %q", fill, tt.wantFill)
			}
		})
	}
}

func TestMerge_OutlineNeverFromOverride(t *testing.T) {
	catalogue := testCatalogue()
	got := Merge(catalogue, []Override{{Slug: SlugAbs, Intensity: 1, Side: SideLeft}}, nil, DefaultColors)

	if !reflect.DeepEqual(got[3].Path, catalogue[3].Path) {
		t.Errorf("expected catalogue outline, got %+v", got[3].Path)
	}
	if got[3].Side != SideLeft {
		t.Errorf("expected side to be copied from override, got %q", got[3].Side)
	}
}

func TestMerge_DuplicateOverridesLastWins(t *testing.T) {
	overrides := []Override{
		{Slug: SlugChest, Color: "#111111"},
		{Slug: SlugChest, Color: "#222222"},
	}
	got := Merge(testCatalogue(), overrides, nil, DefaultColors)

	if got[1].Color != "#222222" {
		t.Errorf("expected last override to win, got %q", got[1].Color)
	}
}

func TestMerge_UnknownOverrideIgnored(t *testing.T) {
	got := Merge(testCatalogue(), []Override{{Slug: "tail", Color: "#000000"}}, nil, DefaultColors)

	if !reflect.DeepEqual(got, Merge(testCatalogue(), nil, nil, DefaultColors)) {
		t.Error("unknown override should not change the merge result")
	}
}

func TestMerge_DoesNotMutateCatalogue(t *testing.T) {
	catalogue := testCatalogue()
	width := 2.0
	overrides := []Override{{Slug: SlugChest, Styles: &PartStyles{StrokeWidth: &width}}}

	got := Merge(catalogue, overrides, nil, DefaultColors)
	got[1].Path.Left[0] = "mutated"
	*got[1].Styles.StrokeWidth = 9

	if catalogue[1].Path.Left[0] == "mutated" {
		t.Error("merge result shares outline storage with the catalogue")
	}
	if width != 2 {
		t.Error("merge result shares style storage with the override")
	}
}
