// Package exercise maps strength exercises to FIT exercise categories and
// FIT categories to the body regions they load.
package exercise

import (
	"strings"

	"github.com/muktihari/fit/profile/typedef"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fitglue/bodymap/pkg/domain/body"
)

type nameRule struct {
	keywords []string
	category typedef.ExerciseCategory
}

// Order matters: the first rule with a matching keyword wins, so specific
// phrases come before generic ones ("leg curl" before "curl").
var nameRules = []nameRule{
	{[]string{"bench press", "bench", "chest press", "push up", "pushup"}, typedef.ExerciseCategoryBenchPress},
	{[]string{"flye", "fly"}, typedef.ExerciseCategoryFlye},
	{[]string{"deadlift"}, typedef.ExerciseCategoryDeadlift},
	{[]string{"row"}, typedef.ExerciseCategoryRow},
	{[]string{"pull up", "pullup", "chin up", "lat pulldown", "pulldown"}, typedef.ExerciseCategoryPullUp},
	{[]string{"squat", "leg press"}, typedef.ExerciseCategorySquat},
	{[]string{"lunge"}, typedef.ExerciseCategoryLunge},
	{[]string{"leg curl", "leg extension"}, typedef.ExerciseCategoryLegCurl},
	{[]string{"calf raise"}, typedef.ExerciseCategoryCalfRaise},
	{[]string{"hip thrust", "glute bridge", "hip raise"}, typedef.ExerciseCategoryHipRaise},
	{[]string{"shoulder press", "overhead press", "military press"}, typedef.ExerciseCategoryShoulderPress},
	{[]string{"lateral raise", "side raise", "front raise", "rear delt", "reverse fly"}, typedef.ExerciseCategoryLateralRaise},
	{[]string{"shrug"}, typedef.ExerciseCategoryShrug},
	{[]string{"tricep extension", "triceps extension", "pushdown", "dip"}, typedef.ExerciseCategoryTricepsExtension},
	{[]string{"bicep curl", "curl"}, typedef.ExerciseCategoryCurl},
	{[]string{"crunch", "sit up", "situp"}, typedef.ExerciseCategoryCrunch},
	{[]string{"plank"}, typedef.ExerciseCategoryPlank},
	{[]string{"clean", "snatch"}, typedef.ExerciseCategoryOlympicLift},
}

// MapExerciseToCategory maps an exercise name to a FIT exercise category.
// Unmatched names fall back to the generic total body category.
func MapExerciseToCategory(exerciseName string) typedef.ExerciseCategory {
	name := strings.ToLower(strings.TrimSpace(exerciseName))
	if name == "" {
		return typedef.ExerciseCategoryTotalBody
	}
	for _, rule := range nameRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.category
			}
		}
	}
	return typedef.ExerciseCategoryTotalBody
}

// Muscles lists the regions a category trains.
type Muscles struct {
	Primary   []body.Slug
	Secondary []body.Slug
}

var categoryMuscles = map[typedef.ExerciseCategory]Muscles{
	typedef.ExerciseCategoryBenchPress:        {Primary: []body.Slug{body.SlugChest}, Secondary: []body.Slug{body.SlugTriceps, body.SlugDeltoids}},
	typedef.ExerciseCategoryFlye:              {Primary: []body.Slug{body.SlugChest}, Secondary: []body.Slug{body.SlugDeltoids}},
	typedef.ExerciseCategoryDeadlift:          {Primary: []body.Slug{body.SlugHamstring, body.SlugLowerBack}, Secondary: []body.Slug{body.SlugGluteal, body.SlugTrapezius, body.SlugForearm}},
	typedef.ExerciseCategoryRow:               {Primary: []body.Slug{body.SlugUpperBack}, Secondary: []body.Slug{body.SlugBiceps, body.SlugDeltoids}},
	typedef.ExerciseCategoryPullUp:            {Primary: []body.Slug{body.SlugUpperBack}, Secondary: []body.Slug{body.SlugBiceps, body.SlugForearm}},
	typedef.ExerciseCategorySquat:             {Primary: []body.Slug{body.SlugQuadriceps}, Secondary: []body.Slug{body.SlugGluteal, body.SlugAdductors, body.SlugLowerBack}},
	typedef.ExerciseCategoryLunge:             {Primary: []body.Slug{body.SlugQuadriceps, body.SlugGluteal}, Secondary: []body.Slug{body.SlugHamstring, body.SlugCalves}},
	typedef.ExerciseCategoryLegCurl:           {Primary: []body.Slug{body.SlugHamstring}, Secondary: []body.Slug{body.SlugCalves}},
	typedef.ExerciseCategoryCalfRaise:         {Primary: []body.Slug{body.SlugCalves}, Secondary: []body.Slug{body.SlugTibialis}},
	typedef.ExerciseCategoryHipRaise:          {Primary: []body.Slug{body.SlugGluteal}, Secondary: []body.Slug{body.SlugHamstring}},
	typedef.ExerciseCategoryShoulderPress:     {Primary: []body.Slug{body.SlugDeltoids}, Secondary: []body.Slug{body.SlugTriceps, body.SlugTrapezius}},
	typedef.ExerciseCategoryLateralRaise:      {Primary: []body.Slug{body.SlugDeltoids}, Secondary: []body.Slug{body.SlugTrapezius}},
	typedef.ExerciseCategoryShrug:             {Primary: []body.Slug{body.SlugTrapezius}, Secondary: []body.Slug{body.SlugForearm}},
	typedef.ExerciseCategoryTricepsExtension:  {Primary: []body.Slug{body.SlugTriceps}},
	typedef.ExerciseCategoryCurl:              {Primary: []body.Slug{body.SlugBiceps}, Secondary: []body.Slug{body.SlugForearm}},
	typedef.ExerciseCategoryCrunch:            {Primary: []body.Slug{body.SlugAbs}, Secondary: []body.Slug{body.SlugObliques}},
	typedef.ExerciseCategoryPlank:             {Primary: []body.Slug{body.SlugAbs, body.SlugObliques}, Secondary: []body.Slug{body.SlugDeltoids}},
	typedef.ExerciseCategoryOlympicLift:       {Primary: []body.Slug{body.SlugQuadriceps, body.SlugTrapezius}, Secondary: []body.Slug{body.SlugGluteal, body.SlugDeltoids, body.SlugLowerBack}},
	typedef.ExerciseCategoryTotalBody:         {Primary: []body.Slug{body.SlugQuadriceps, body.SlugChest, body.SlugUpperBack}},
	typedef.ExerciseCategoryCore:              {Primary: []body.Slug{body.SlugAbs}, Secondary: []body.Slug{body.SlugObliques, body.SlugLowerBack}},
	typedef.ExerciseCategoryHyperextension:    {Primary: []body.Slug{body.SlugLowerBack}, Secondary: []body.Slug{body.SlugGluteal, body.SlugHamstring}},
	typedef.ExerciseCategoryPushUp:            {Primary: []body.Slug{body.SlugChest}, Secondary: []body.Slug{body.SlugTriceps}},
	typedef.ExerciseCategorySitUp:             {Primary: []body.Slug{body.SlugAbs}},
	typedef.ExerciseCategoryLegRaise:          {Primary: []body.Slug{body.SlugAbs}},
	typedef.ExerciseCategoryShoulderStability: {Primary: []body.Slug{body.SlugDeltoids}},
}

// MusclesFor returns the regions trained by a category. Categories without
// a mapping (cardio, warm up) train nothing.
func MusclesFor(category typedef.ExerciseCategory) (Muscles, bool) {
	m, ok := categoryMuscles[category]
	return m, ok
}

// FormatCategory renders a category for display, e.g. "Bench Press".
func FormatCategory(category typedef.ExerciseCategory) string {
	return cases.Title(language.English).String(strings.ReplaceAll(category.String(), "_", " "))
}
