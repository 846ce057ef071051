package prompt

import "google.golang.org/genai"

// Keys of the plan object.
const (
	KeyWorkoutName = "workoutName"
	KeyDescription = "description"
	KeyExercises   = "exercises"
)

// Keys of each exercise object.
const (
	KeyName                = "name"
	KeySets                = "sets"
	KeyReps                = "reps"
	KeyRest                = "rest"
	KeyDetailedDescription = "detailedDescription"
)

// PlanKeys are the required keys of the plan object, in output order.
var PlanKeys = []string{KeyWorkoutName, KeyDescription, KeyExercises}

// ExerciseKeys are the required keys of every exercise, in output order.
var ExerciseKeys = []string{KeyName, KeySets, KeyReps, KeyRest, KeyDetailedDescription}

// Schema returns the response schema the model is asked to follow. A new
// value is built on each call so callers may not alias each other's copy.
func Schema() *genai.Schema {
	exercise := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			KeyName: {Type: genai.TypeString, Description: "Name of the exercise."},
			KeySets: {Type: genai.TypeString, Description: "Number of sets, e.g. '3 sets' or 'N/A'."},
			KeyReps: {Type: genai.TypeString, Description: "Number of repetitions or duration, e.g. '10-12 reps' or '45 seconds'."},
			KeyRest: {Type: genai.TypeString, Description: "Rest period after completing all sets for this exercise, e.g. '60 seconds'."},
			KeyDetailedDescription: {
				Type:        genai.TypeString,
				Description: "A detailed, step-by-step guide on how to perform the exercise correctly, focusing on form and technique. Written for a beginner, one step per line.",
			},
		},
		Required:         append([]string(nil), ExerciseKeys...),
		PropertyOrdering: append([]string(nil), ExerciseKeys...),
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			KeyWorkoutName: {
				Type:        genai.TypeString,
				Description: "A creative and motivating name for the workout plan, e.g. 'Full Body Blast'.",
			},
			KeyDescription: {
				Type:        genai.TypeString,
				Description: "A brief, 1-2 sentence description of the workout's goal.",
			},
			KeyExercises: {
				Type:        genai.TypeArray,
				Description: "The exercises of the workout plan, in the order they are performed.",
				Items:       exercise,
			},
		},
		Required:         append([]string(nil), PlanKeys...),
		PropertyOrdering: append([]string(nil), PlanKeys...),
	}
}
