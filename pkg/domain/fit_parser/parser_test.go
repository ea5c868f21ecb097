package fit_parser

import (
	"bytes"
	"testing"
	"time"

	"github.com/muktihari/fit/encoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"github.com/muktihari/fit/proto"
)

type testSet struct {
	category typedef.ExerciseCategory
	reps     uint16
	weight   float64
	setType  typedef.SetType
}

func encodeSets(t *testing.T, sets []testSet) []byte {
	t.Helper()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	fit := &proto.FIT{
		Messages: []proto.Message{
			mesgdef.NewFileId(nil).
				SetType(typedef.FileActivity).
				SetManufacturer(typedef.ManufacturerDevelopment).
				SetProduct(1).
				SetTimeCreated(start).
				ToMesg(nil),
		},
	}
	for i, s := range sets {
		ts := start.Add(time.Duration(i) * time.Minute)
		m := mesgdef.NewSet(nil).
			SetTimestamp(ts).
			SetStartTime(ts).
			SetCategory([]typedef.ExerciseCategory{s.category}).
			SetSetType(s.setType).
			SetDuration(45000).
			SetMessageIndex(typedef.MessageIndex(i))
		if s.reps > 0 {
			m.SetRepetitions(s.reps)
		}
		if s.weight > 0 {
			m.SetWeightScaled(s.weight)
		}
		fit.Messages = append(fit.Messages, m.ToMesg(nil))
	}

	var buf bytes.Buffer
	if err := encoder.New(&buf).Encode(fit); err != nil {
		t.Fatalf("encode FIT: %v", err)
	}
	return buf.Bytes()
}

func TestParseStrengthSets(t *testing.T) {
	data := encodeSets(t, []testSet{
		{typedef.ExerciseCategoryBenchPress, 10, 80, typedef.SetTypeActive},
		{typedef.ExerciseCategoryBenchPress, 0, 0, typedef.SetTypeRest},
		{typedef.ExerciseCategorySquat, 8, 100, typedef.SetTypeActive},
		{typedef.ExerciseCategoryPlank, 0, 0, typedef.SetTypeActive},
	})

	sets, err := ParseStrengthSets(data)
	if err != nil {
		t.Fatalf("ParseStrengthSets failed: %v", err)
	}
	if len(sets) != 3 {
		t.Fatalf("Expected 3 active sets, got %d", len(sets))
	}

	first := sets[0]
	if first.Category != typedef.ExerciseCategoryBenchPress || first.Name != "Bench Press" {
		t.Errorf("unexpected first set %+v", first)
	}
	if first.Reps != 10 {
		t.Errorf("Expected reps=10, got %d", first.Reps)
	}
	if first.WeightKg != 80 {
		t.Errorf("Expected weight=80, got %v", first.WeightKg)
	}
	if first.Duration != 45*time.Second {
		t.Errorf("Expected 45s duration, got %v", first.Duration)
	}

	plank := sets[2]
	if plank.Reps != 0 || plank.WeightKg != 0 {
		t.Errorf("unset reps and weight should read as zero, got %+v", plank)
	}
}

func TestParseStrengthSets_EmptyData(t *testing.T) {
	if _, err := ParseStrengthSets(nil); err == nil {
		t.Error("Expected error for empty data")
	}
}

func TestParseStrengthSets_InvalidData(t *testing.T) {
	if _, err := ParseStrengthSets([]byte("not a fit file at all")); err == nil {
		t.Error("Expected error for invalid data")
	}
}

func TestGroupExercises(t *testing.T) {
	tests := []struct {
		name    string
		sets    []StrengthSet
		wantLen int
		wantNil bool
	}{
		{
			name:    "empty sets",
			wantNil: true,
		},
		{
			name:    "single set",
			sets:    []StrengthSet{{Name: "Bench Press"}},
			wantLen: 1,
		},
		{
			name:    "consecutive same exercise grouped",
			sets:    []StrengthSet{{Name: "Bench Press"}, {Name: "Bench Press"}, {Name: "Bench Press"}},
			wantLen: 1,
		},
		{
			name:    "different exercises get separate blocks",
			sets:    []StrengthSet{{Name: "Bench Press"}, {Name: "Squat"}, {Name: "Deadlift"}},
			wantLen: 3,
		},
		{
			name:    "alternating exercises",
			sets:    []StrengthSet{{Name: "Sit Up"}, {Name: "Plank"}, {Name: "Sit Up"}},
			wantLen: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := GroupExercises(tt.sets)
			if tt.wantNil {
				if blocks != nil {
					t.Errorf("Expected nil, got %d blocks", len(blocks))
				}
				return
			}
			if len(blocks) != tt.wantLen {
				t.Errorf("Expected %d blocks, got %d", tt.wantLen, len(blocks))
			}
		})
	}

	blocks := GroupExercises([]StrengthSet{{Name: "Squat", Reps: 5}, {Name: "Squat", Reps: 3}})
	if blocks[0].Sets != 2 || blocks[0].Reps != 8 {
		t.Errorf("unexpected block totals %+v", blocks[0])
	}
}
