package workout

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownOption is returned when a value is not part of the catalog.
	ErrUnknownOption = errors.New("unknown option")
	// ErrMissingName is returned for a plan without a workout name.
	ErrMissingName = errors.New("workout plan has no name")
	// ErrNoExercises is returned for a plan without exercises.
	ErrNoExercises = errors.New("workout plan has no exercises")
)

// Request holds the user's generation parameters.
type Request struct {
	WorkoutType     string   `json:"workoutType"`
	MuscleGroup     string   `json:"muscleGroup"`
	FitnessLevel    string   `json:"fitnessLevel"`
	DurationMinutes int      `json:"durationMinutes"`
	Equipment       []string `json:"equipment"`
}

// Exercise is one entry of a generated plan. Sets, reps and rest are free
// text because the model may answer "N/A" or "45 seconds".
type Exercise struct {
	Name                string `json:"name"`
	Sets                string `json:"sets"`
	Reps                string `json:"reps"`
	Rest                string `json:"rest"`
	DetailedDescription string `json:"detailedDescription"`
}

// Plan is a validated workout plan returned by the generation service.
type Plan struct {
	WorkoutName string     `json:"workoutName"`
	Description string     `json:"description"`
	Exercises   []Exercise `json:"exercises"`
}

// Complete checks the plan invariants: a non-blank name and at least one
// exercise. A plan failing either is not displayable.
func (p *Plan) Complete() error {
	if strings.TrimSpace(p.WorkoutName) == "" {
		return ErrMissingName
	}
	if len(p.Exercises) == 0 {
		return ErrNoExercises
	}
	return nil
}
