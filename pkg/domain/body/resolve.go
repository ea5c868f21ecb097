package body

// Resolve computes the final style of a merged region.
//
// Fill precedence, first match wins:
//  1. region disabled -> DisabledFill
//  2. Styles.Fill
//  3. Color
//  4. positive intensity inside the ramp -> cfg.Colors[intensity-1]
//  5. cfg.DefaultFill
//
// Stroke and stroke width use the region style when set, else the
// configuration defaults.
func Resolve(region Region, cfg Config) Style {
	return newResolver(cfg).resolve(region)
}

type resolver struct {
	cfg      Config
	disabled slugSet
}

func newResolver(cfg Config) *resolver {
	return &resolver{
		cfg:      cfg,
		disabled: newSlugSet(cfg.Disabled),
	}
}

func (r *resolver) isDisabled(slug Slug) bool {
	return r.disabled.has(slug)
}

func (r *resolver) resolve(region Region) Style {
	style := Style{
		Fill:        r.fill(region),
		Stroke:      r.cfg.DefaultStroke,
		StrokeWidth: r.cfg.DefaultStrokeWidth,
		Disabled:    r.isDisabled(region.Slug),
	}
	if region.Styles != nil {
		if region.Styles.Stroke != "" {
			style.Stroke = region.Styles.Stroke
		}
		if region.Styles.StrokeWidth != nil {
			style.StrokeWidth = *region.Styles.StrokeWidth
		}
	}
	return style
}

func (r *resolver) fill(region Region) string {
	if r.isDisabled(region.Slug) {
		return DisabledFill
	}
	if region.hasStyleFill() {
		return region.Styles.Fill
	}
	if region.Color != "" {
		return region.Color
	}
	if c, ok := rampColor(r.cfg.Colors, region.Intensity); ok {
		return c
	}
	return r.cfg.DefaultFill
}
