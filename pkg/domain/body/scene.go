package body

// PressFunc receives a press on a region. side is SideNone for common
// segments.
type PressFunc func(region ResolvedRegion, side Side)

// Scene is the output of one render pass. It is built from scratch on every
// Render call and is not modified afterwards.
type Scene struct {
	Gender   Gender
	View     View
	Scale    float64
	Border   string
	Regions  []ResolvedRegion
	Segments []Segment

	regionIndex  map[Slug]int
	segmentIndex map[string]int
}

// Render runs merge, style resolution and segment emission over one
// catalogue collection. It has no side effects: identical inputs always
// produce an identical scene.
func Render(collection []RegionDefinition, overrides []Override, cfg Config) *Scene {
	merged := Merge(collection, overrides, cfg.Hidden, cfg.Colors)
	res := newResolver(cfg)

	scene := &Scene{
		Gender:       cfg.Gender,
		View:         cfg.View,
		Scale:        cfg.Scale,
		Border:       cfg.Border,
		Regions:      make([]ResolvedRegion, 0, len(merged)),
		regionIndex:  make(map[Slug]int, len(merged)),
		segmentIndex: make(map[string]int),
	}

	for _, region := range merged {
		resolved := ResolvedRegion{Region: region, Style: res.resolve(region)}
		if _, dup := scene.regionIndex[region.Slug]; !dup {
			scene.regionIndex[region.Slug] = len(scene.Regions)
		}
		scene.Regions = append(scene.Regions, resolved)

		for _, seg := range Emit(resolved, cfg) {
			scene.segmentIndex[seg.Key] = len(scene.Segments)
			scene.Segments = append(scene.Segments, seg)
		}
	}
	return scene
}

// Region returns the resolved region for slug.
func (s *Scene) Region(slug Slug) (ResolvedRegion, bool) {
	i, ok := s.regionIndex[slug]
	if !ok {
		return ResolvedRegion{}, false
	}
	return s.Regions[i], true
}

// Segment returns the segment with the given key.
func (s *Scene) Segment(key string) (Segment, bool) {
	i, ok := s.segmentIndex[key]
	if !ok {
		return Segment{}, false
	}
	return s.Segments[i], true
}

// SegmentsFor returns the segments of one region in emission order.
func (s *Scene) SegmentsFor(slug Slug) []Segment {
	var out []Segment
	for _, seg := range s.Segments {
		if seg.Slug == slug {
			out = append(out, seg)
		}
	}
	return out
}

// Press dispatches a press on the segment identified by key. fn is invoked
// at most once, with the segment's region and side. It reports whether fn
// was called: unknown keys and segments without a bound handler are
// ignored.
func (s *Scene) Press(key string, fn PressFunc) bool {
	seg, ok := s.Segment(key)
	if !ok || !seg.Pressable {
		return false
	}
	return s.PressRegion(seg.Slug, seg.Side, fn)
}

// PressRegion dispatches a press on a region and side directly. Hidden,
// unknown and disabled regions never reach fn.
func (s *Scene) PressRegion(slug Slug, side Side, fn PressFunc) bool {
	region, ok := s.Region(slug)
	if !ok || region.Style.Disabled || fn == nil {
		return false
	}
	switch side {
	case SideNone:
		if len(region.Path.Common) == 0 {
			return false
		}
	case SideLeft:
		if len(region.Path.Left) == 0 {
			return false
		}
	case SideRight:
		if len(region.Path.Right) == 0 {
			return false
		}
	default:
		return false
	}
	fn(region, side)
	return true
}
