package workout

// BodyweightOnly is the equipment sentinel. It is mutually exclusive with
// every other equipment option.
const BodyweightOnly = "Bodyweight Only"

// Duration bounds in minutes.
const (
	MinDuration  = 15
	MaxDuration  = 90
	DurationStep = 5
)

// WorkoutTypes lists the selectable workout types in display order.
var WorkoutTypes = []string{"Strength", "Cardio", "HIIT", "Flexibility", "Powerlifting", "Calisthenics"}

// MuscleGroups lists the selectable target muscle groups in display order.
var MuscleGroups = []string{
	"Full Body",
	"Upper Body",
	"Lower Body",
	"Core",
	"Push (Chest, Shoulders, Triceps)",
	"Pull (Back, Biceps)",
}

// FitnessLevels lists the selectable fitness levels in display order.
var FitnessLevels = []string{"Beginner", "Intermediate", "Advanced"}

// EquipmentOptions lists the selectable equipment. The sentinel is last.
var EquipmentOptions = []string{
	"Dumbbells",
	"Barbell",
	"Kettlebell",
	"Resistance Bands",
	"Pull-up Bar",
	"Treadmill",
	"Stationary Bike",
	BodyweightOnly,
}

// Options is the full catalog, serialized by the JSON API and MCP resource.
type Options struct {
	WorkoutTypes  []string `json:"workoutTypes"`
	MuscleGroups  []string `json:"muscleGroups"`
	FitnessLevels []string `json:"fitnessLevels"`
	Equipment     []string `json:"equipment"`
	MinDuration   int      `json:"minDuration"`
	MaxDuration   int      `json:"maxDuration"`
	DurationStep  int      `json:"durationStep"`
}

// Catalog returns a copy of the option catalog.
func Catalog() Options {
	return Options{
		WorkoutTypes:  append([]string(nil), WorkoutTypes...),
		MuscleGroups:  append([]string(nil), MuscleGroups...),
		FitnessLevels: append([]string(nil), FitnessLevels...),
		Equipment:     append([]string(nil), EquipmentOptions...),
		MinDuration:   MinDuration,
		MaxDuration:   MaxDuration,
		DurationStep:  DurationStep,
	}
}

// DurationChoices returns every valid duration, ascending.
func DurationChoices() []int {
	out := make([]int, 0, (MaxDuration-MinDuration)/DurationStep+1)
	for d := MinDuration; d <= MaxDuration; d += DurationStep {
		out = append(out, d)
	}
	return out
}
