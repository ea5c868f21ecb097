package fit_parser

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/basetype"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"

	"github.com/fitglue/bodymap/pkg/domain/exercise"
)

// StrengthSet is one active set of a strength workout.
type StrengthSet struct {
	Category  typedef.ExerciseCategory
	Name      string
	Reps      int
	WeightKg  float64
	Duration  time.Duration
	StartTime time.Time
}

// ParseStrengthSets decodes the active Set messages of a FIT file. Rest sets
// are skipped; sets without a category keep ExerciseCategoryInvalid.
func ParseStrengthSets(data []byte) ([]StrengthSet, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty FIT data")
	}

	dec := decoder.New(bytes.NewReader(data))

	var sets []StrengthSet
	sequences := 0
	for dec.Next() {
		fit, err := dec.Decode()
		if err != nil {
			return nil, fmt.Errorf("failed to decode FIT file: %w", err)
		}
		sequences++

		for i := range fit.Messages {
			if fit.Messages[i].Num != typedef.MesgNumSet {
				continue
			}
			setMsg := mesgdef.NewSet(&fit.Messages[i])
			if setMsg.SetType != typedef.SetTypeActive {
				continue
			}
			sets = append(sets, toStrengthSet(setMsg))
		}
	}
	if sequences == 0 {
		return nil, fmt.Errorf("no FIT data found")
	}
	return sets, nil
}

func toStrengthSet(m *mesgdef.Set) StrengthSet {
	set := StrengthSet{
		Category:  typedef.ExerciseCategoryInvalid,
		StartTime: m.StartTime.UTC(),
	}
	if len(m.Category) > 0 {
		set.Category = m.Category[0]
	}
	if set.Category != typedef.ExerciseCategoryInvalid {
		set.Name = exercise.FormatCategory(set.Category)
	} else {
		set.Name = "Exercise"
	}
	if m.Repetitions != basetype.Uint16Invalid {
		set.Reps = int(m.Repetitions)
	}
	if w := m.WeightScaled(); !math.IsNaN(w) {
		set.WeightKg = w
	}
	if m.Duration != basetype.Uint32Invalid {
		set.Duration = time.Duration(m.Duration) * time.Millisecond
	}
	return set
}

// ExerciseBlock is a run of consecutive sets of the same exercise.
type ExerciseBlock struct {
	Name      string
	Category  typedef.ExerciseCategory
	Sets      int
	Reps      int
	StartTime time.Time
}

// GroupExercises folds consecutive sets of the same exercise into blocks.
// Non-consecutive repeats start a new block.
func GroupExercises(sets []StrengthSet) []ExerciseBlock {
	if len(sets) == 0 {
		return nil
	}

	var blocks []ExerciseBlock
	for _, s := range sets {
		if n := len(blocks); n > 0 && blocks[n-1].Name == s.Name {
			blocks[n-1].Sets++
			blocks[n-1].Reps += s.Reps
			continue
		}
		blocks = append(blocks, ExerciseBlock{
			Name:      s.Name,
			Category:  s.Category,
			Sets:      1,
			Reps:      s.Reps,
			StartTime: s.StartTime,
		})
	}
	return blocks
}
