package body

import "strconv"

// Emit expands a resolved region into one segment per path: common paths
// first, then left, then right, keeping input order inside each group.
//
// A left or right segment whose region is restricted to the other side is
// painted with cfg.DefaultFill so only the designated side carries the
// highlight. Disabled regions keep DisabledFill on every segment.
func Emit(region ResolvedRegion, cfg Config) []Segment {
	path := region.Path
	segments := make([]Segment, 0, len(path.Common)+len(path.Left)+len(path.Right))
	segments = appendGroup(segments, region, cfg, GroupCommon, path.Common)
	segments = appendGroup(segments, region, cfg, GroupLeft, path.Left)
	segments = appendGroup(segments, region, cfg, GroupRight, path.Right)
	return segments
}

func appendGroup(dst []Segment, region ResolvedRegion, cfg Config, group Group, paths []string) []Segment {
	side := groupSide(group)
	fill := region.Style.Fill
	if side != SideNone && !region.Style.Disabled && region.Side == side.Opposite() {
		fill = cfg.DefaultFill
	}

	for i, d := range paths {
		seg := Segment{
			Key:         SegmentKey(region.Slug, group, i),
			Slug:        region.Slug,
			Group:       group,
			Side:        side,
			Index:       i,
			D:           d,
			Fill:        fill,
			Stroke:      region.Style.Stroke,
			StrokeWidth: region.Style.StrokeWidth,
			Disabled:    region.Style.Disabled,
			Pressable:   !region.Style.Disabled,
			Cursor:      CursorPointer,
			Opacity:     1,
		}
		if seg.Disabled {
			seg.Cursor = CursorNotAllowed
			seg.Opacity = DisabledOpacity
		}
		dst = append(dst, seg)
	}
	return dst
}

func groupSide(g Group) Side {
	switch g {
	case GroupLeft:
		return SideLeft
	case GroupRight:
		return SideRight
	}
	return SideNone
}

// SegmentKey builds the stable key of a segment, e.g. "biceps-left-0".
func SegmentKey(slug Slug, group Group, index int) string {
	return string(slug) + "-" + string(group) + "-" + strconv.Itoa(index)
}
