// Package heatmap turns a strength workout into body map overrides: training
// volume per region, normalised to the busiest region and bucketed into
// intensity levels of a colour ramp.
package heatmap

import (
	"fmt"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muktihari/fit/profile/typedef"

	"github.com/fitglue/bodymap/pkg/domain/body"
	"github.com/fitglue/bodymap/pkg/domain/exercise"
	"github.com/fitglue/bodymap/pkg/domain/fit_parser"
)

// SecondaryFactor is the share of a set's volume credited to secondary
// muscles.
const SecondaryFactor = 0.5

// Score is the normalised training volume of one region.
type Score struct {
	Slug       body.Slug
	Volume     float64
	Percentage float64
	Intensity  int
}

// CalculateLoad is the volume of one set: reps times weight, where body
// weight sets count as weight 1.
func CalculateLoad(set fit_parser.StrengthSet) float64 {
	reps := float64(set.Reps)
	if reps <= 0 {
		reps = 1
	}
	return reps * math.Max(set.WeightKg, 1)
}

// Scores computes per-region scores for a ramp of rampLen colours, sorted by
// percentage descending and then by slug.
func Scores(sets []fit_parser.StrengthSet, rampLen int) []Score {
	volumes := make(map[body.Slug]float64)
	maxVolume := 0.0
	credit := func(slug body.Slug, v float64) {
		volumes[slug] += v
		if volumes[slug] > maxVolume {
			maxVolume = volumes[slug]
		}
	}

	for _, set := range sets {
		category := set.Category
		if category == typedef.ExerciseCategoryInvalid {
			category = exercise.MapExerciseToCategory(set.Name)
		}
		muscles, ok := exercise.MusclesFor(category)
		if !ok {
			continue
		}
		load := CalculateLoad(set)
		for _, slug := range muscles.Primary {
			credit(slug, load)
		}
		for _, slug := range muscles.Secondary {
			credit(slug, load*SecondaryFactor)
		}
	}
	if maxVolume == 0 {
		return nil
	}

	scores := make([]Score, 0, len(volumes))
	for slug, v := range volumes {
		pct := v / maxVolume
		scores = append(scores, Score{
			Slug:       slug,
			Volume:     v,
			Percentage: pct,
			Intensity:  bucket(pct, rampLen),
		})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Percentage != scores[j].Percentage {
			return scores[i].Percentage > scores[j].Percentage
		}
		return scores[i].Slug < scores[j].Slug
	})
	return scores
}

// bucket maps a percentage in (0, 1] to an intensity in [1, rampLen].
func bucket(pct float64, rampLen int) int {
	if rampLen <= 0 {
		return 0
	}
	level := int(math.Ceil(pct * float64(rampLen)))
	if level < 1 {
		level = 1
	}
	if level > rampLen {
		level = rampLen
	}
	return level
}

// Build returns one intensity override per trained region, sorted by slug.
func Build(sets []fit_parser.StrengthSet, rampLen int) []body.Override {
	scores := Scores(sets, rampLen)
	overrides := make([]body.Override, 0, len(scores))
	for _, s := range scores {
		overrides = append(overrides, body.Override{Slug: s.Slug, Intensity: s.Intensity})
	}
	sort.Slice(overrides, func(i, j int) bool { return overrides[i].Slug < overrides[j].Slug })
	return overrides
}

// Ramp interpolates n colours from one hex colour to another in CIE L*a*b*
// space. Both endpoints are included verbatim.
func Ramp(from, to string, n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("ramp length must be positive, got %d", n)
	}
	start, err := colorful.Hex(from)
	if err != nil {
		return nil, fmt.Errorf("invalid ramp start %q: %w", from, err)
	}
	end, err := colorful.Hex(to)
	if err != nil {
		return nil, fmt.Errorf("invalid ramp end %q: %w", to, err)
	}

	if n == 1 {
		return []string{from}, nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = start.BlendLab(end, float64(i)/float64(n-1)).Clamped().Hex()
	}
	out[0], out[n-1] = from, to
	return out, nil
}
