package body

// Merge joins a catalogue collection with caller overrides by slug.
//
// Regions listed in hidden are dropped before the join. Overrides never
// contribute geometry: the outline always comes from the catalogue and is
// copied, so the returned regions can be used freely without touching the
// shared catalogue. When several overrides target the same slug the last one
// in the list wins. Overrides for slugs missing from the catalogue are
// ignored.
//
// A merged region without a style fill or colour but with an intensity inside
// the ramp gets Color = colors[intensity-1]. Styles.Fill is never derived.
func Merge(catalogue []RegionDefinition, overrides []Override, hidden []Slug, colors []string) []Region {
	return merge(catalogue, indexOverrides(overrides), newSlugSet(hidden), colors)
}

func indexOverrides(overrides []Override) map[Slug]Override {
	byslug := make(map[Slug]Override, len(overrides))
	for _, o := range overrides {
		if o.Slug == "" {
			continue
		}
		byslug[o.Slug] = o
	}
	return byslug
}

func merge(catalogue []RegionDefinition, overrides map[Slug]Override, hidden slugSet, colors []string) []Region {
	merged := make([]Region, 0, len(catalogue))
	for _, def := range catalogue {
		if hidden.has(def.Slug) {
			continue
		}

		region := Region{
			Slug: def.Slug,
			Path: def.Path.clone(),
		}

		o, ok := overrides[def.Slug]
		if !ok {
			merged = append(merged, region)
			continue
		}

		region.Styles = cloneStyles(o.Styles)
		region.Intensity = o.Intensity
		region.Side = o.Side
		region.Color = o.Color

		if !region.hasStyleFill() && region.Color == "" {
			if c, ok := rampColor(colors, region.Intensity); ok {
				region.Color = c
			}
		}

		merged = append(merged, region)
	}
	return merged
}

func (r Region) hasStyleFill() bool {
	return r.Styles != nil && r.Styles.Fill != ""
}

func cloneStyles(s *PartStyles) *PartStyles {
	if s == nil {
		return nil
	}
	c := *s
	if s.StrokeWidth != nil {
		w := *s.StrokeWidth
		c.StrokeWidth = &w
	}
	return &c
}
