package exercise

import (
	"testing"

	"github.com/muktihari/fit/profile/typedef"

	"github.com/fitglue/bodymap/pkg/domain/body"
)

func TestMapExerciseToCategory(t *testing.T) {
	tests := []struct {
		name string
		want typedef.ExerciseCategory
	}{
		{"Bench Press", typedef.ExerciseCategoryBenchPress},
		{"  incline BENCH press ", typedef.ExerciseCategoryBenchPress},
		{"Push Up", typedef.ExerciseCategoryBenchPress},
		{"Dumbbell Fly", typedef.ExerciseCategoryFlye},
		{"Romanian Deadlift", typedef.ExerciseCategoryDeadlift},
		{"Barbell Row", typedef.ExerciseCategoryRow},
		{"Lat Pulldown", typedef.ExerciseCategoryPullUp},
		{"Back Squat", typedef.ExerciseCategorySquat},
		{"Leg Press", typedef.ExerciseCategorySquat},
		{"Walking Lunge", typedef.ExerciseCategoryLunge},
		{"Leg Curl", typedef.ExerciseCategoryLegCurl},
		{"Seated Calf Raise", typedef.ExerciseCategoryCalfRaise},
		{"Hip Thrust", typedef.ExerciseCategoryHipRaise},
		{"Overhead Press", typedef.ExerciseCategoryShoulderPress},
		{"Lateral Raise", typedef.ExerciseCategoryLateralRaise},
		{"Barbell Shrug", typedef.ExerciseCategoryShrug},
		{"Tricep Pushdown", typedef.ExerciseCategoryTricepsExtension},
		{"Hammer Curl", typedef.ExerciseCategoryCurl},
		{"Crunch", typedef.ExerciseCategoryCrunch},
		{"Plank", typedef.ExerciseCategoryPlank},
		{"Power Clean", typedef.ExerciseCategoryOlympicLift},
		{"Burpee", typedef.ExerciseCategoryTotalBody},
		{"", typedef.ExerciseCategoryTotalBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapExerciseToCategory(tt.name); got != tt.want {
				t.Errorf("MapExerciseToCategory(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestMusclesFor(t *testing.T) {
	m, ok := MusclesFor(typedef.ExerciseCategoryBenchPress)
	if !ok {
		t.Fatal("expected bench press to be mapped")
	}
	if len(m.Primary) != 1 || m.Primary[0] != body.SlugChest {
		t.Errorf("unexpected primary muscles %v", m.Primary)
	}

	if _, ok := MusclesFor(typedef.ExerciseCategoryCardio); ok {
		t.Error("cardio should not train any region")
	}
}

func TestMusclesFor_KnownSlugs(t *testing.T) {
	known := map[body.Slug]bool{}
	for _, s := range body.AllSlugs {
		known[s] = true
	}
	for cat, m := range categoryMuscles {
		for _, s := range append(append([]body.Slug{}, m.Primary...), m.Secondary...) {
			if !known[s] {
				t.Errorf("%s maps to unknown slug %s", cat, s)
			}
		}
	}
}

func TestFormatCategory(t *testing.T) {
	tests := []struct {
		name string
		cat  string
		want string
	}{
		{"bench press", "bench_press", "Bench Press"},
		{"sit up", "sit_up", "Sit Up"},
		{"cardio", "cardio", "Cardio"},
		{"lateral raise", "lateral_raise", "Lateral Raise"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := typedef.ExerciseCategoryFromString(tt.cat)
			if got := FormatCategory(cat); got != tt.want {
				t.Errorf("FormatCategory(%q) = %q, want %q", tt.cat, got, tt.want)
			}
		})
	}
}
