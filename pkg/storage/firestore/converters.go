package firestore

import (
	"time"

	"github.com/fitglue/bodymap/pkg/domain/body"
	"github.com/fitglue/bodymap/pkg/types"
)

// Helper to safely get string from map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Helper to safely get a number from map. Firestore returns integers as
// int64 and doubles as float64.
func getFloat(m map[string]interface{}, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

func getInt(m map[string]interface{}, key string) int {
	f, _ := getFloat(m, key)
	return int(f)
}

// Helper to safely get time from map (handles time.Time from Firestore)
func getTime(m map[string]interface{}, key string) time.Time {
	if v, ok := m[key]; ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

func getMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

func getStrings(m map[string]interface{}, key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func getSlugs(m map[string]interface{}, key string) []body.Slug {
	strs := getStrings(m, key)
	if strs == nil {
		return nil
	}
	out := make([]body.Slug, len(strs))
	for i, s := range strs {
		out[i] = body.Slug(s)
	}
	return out
}

func slugsToFirestore(slugs []body.Slug) []interface{} {
	out := make([]interface{}, len(slugs))
	for i, s := range slugs {
		out[i] = string(s)
	}
	return out
}

func stringsToFirestore(strs []string) []interface{} {
	out := make([]interface{}, len(strs))
	for i, s := range strs {
		out[i] = s
	}
	return out
}

// --- Preset Converters ---

func PresetToFirestore(p *types.Preset) map[string]interface{} {
	return map[string]interface{}{
		"id":         p.ID,
		"user_id":    p.UserID,
		"name":       p.Name,
		"request":    RenderRequestToFirestore(&p.Request),
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
}

func FirestoreToPreset(id string, m map[string]interface{}) *types.Preset {
	p := &types.Preset{
		ID:        getString(m, "id"),
		UserID:    getString(m, "user_id"),
		Name:      getString(m, "name"),
		CreatedAt: getTime(m, "created_at"),
		UpdatedAt: getTime(m, "updated_at"),
	}
	if p.ID == "" {
		p.ID = id
	}
	if req := getMap(m, "request"); req != nil {
		p.Request = *FirestoreToRenderRequest(req)
	}
	return p
}

// --- RenderRequest Converters ---

func RenderRequestToFirestore(r *types.RenderRequest) map[string]interface{} {
	m := map[string]interface{}{
		"gender":               r.Gender,
		"side":                 r.Side,
		"scale":                r.Scale,
		"default_fill":         r.DefaultFill,
		"default_stroke":       r.DefaultStroke,
		"default_stroke_width": r.DefaultStrokeWidth,
		"border":               r.Border,
	}
	if r.Colors != nil {
		m["colors"] = stringsToFirestore(r.Colors)
	}
	if r.DisabledParts != nil {
		m["disabled_parts"] = slugsToFirestore(r.DisabledParts)
	}
	if r.HiddenParts != nil {
		m["hidden_parts"] = slugsToFirestore(r.HiddenParts)
	}
	if len(r.Data) > 0 {
		data := make([]interface{}, len(r.Data))
		for i := range r.Data {
			data[i] = OverrideToFirestore(&r.Data[i])
		}
		m["data"] = data
	}
	return m
}

func FirestoreToRenderRequest(m map[string]interface{}) *types.RenderRequest {
	r := &types.RenderRequest{
		Colors:        getStrings(m, "colors"),
		Gender:        getString(m, "gender"),
		Side:          getString(m, "side"),
		DisabledParts: getSlugs(m, "disabled_parts"),
		HiddenParts:   getSlugs(m, "hidden_parts"),
		DefaultFill:   getString(m, "default_fill"),
		DefaultStroke: getString(m, "default_stroke"),
		Border:        getString(m, "border"),
	}
	r.Scale, _ = getFloat(m, "scale")
	r.DefaultStrokeWidth, _ = getFloat(m, "default_stroke_width")

	if raw, ok := m["data"].([]interface{}); ok {
		for _, item := range raw {
			if om, ok := item.(map[string]interface{}); ok {
				r.Data = append(r.Data, *FirestoreToOverride(om))
			}
		}
	}
	return r
}

// --- Override Converters ---

func OverrideToFirestore(o *body.Override) map[string]interface{} {
	m := map[string]interface{}{
		"slug": string(o.Slug),
	}
	if o.Color != "" {
		m["color"] = o.Color
	}
	if o.Intensity != 0 {
		m["intensity"] = int64(o.Intensity)
	}
	if o.Side != body.SideNone {
		m["side"] = string(o.Side)
	}
	if o.Styles != nil {
		styles := map[string]interface{}{}
		if o.Styles.Fill != "" {
			styles["fill"] = o.Styles.Fill
		}
		if o.Styles.Stroke != "" {
			styles["stroke"] = o.Styles.Stroke
		}
		if o.Styles.StrokeWidth != nil {
			styles["stroke_width"] = *o.Styles.StrokeWidth
		}
		m["styles"] = styles
	}
	return m
}

func FirestoreToOverride(m map[string]interface{}) *body.Override {
	o := &body.Override{
		Slug:      body.Slug(getString(m, "slug")),
		Color:     getString(m, "color"),
		Intensity: getInt(m, "intensity"),
		Side:      body.Side(getString(m, "side")),
	}
	if sm := getMap(m, "styles"); sm != nil {
		o.Styles = &body.PartStyles{
			Fill:   getString(sm, "fill"),
			Stroke: getString(sm, "stroke"),
		}
		if w, ok := getFloat(sm, "stroke_width"); ok {
			o.Styles.StrokeWidth = &w
		}
	}
	return o
}
