package prompt

import (
	"strings"
	"testing"

	"github.com/claude/fitgen/internal/workout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func sampleRequest() workout.Request {
	return workout.Request{
		WorkoutType:     "Calisthenics",
		MuscleGroup:     "Pull (Back, Biceps)",
		FitnessLevel:    "Intermediate",
		DurationMinutes: 45,
		Equipment:       []string{"Pull-up Bar", "Resistance Bands"},
	}
}

func TestBuildEmbedsFieldsVerbatim(t *testing.T) {
	out := Build(sampleRequest())

	assert.Contains(t, out, "Workout Type: Calisthenics")
	assert.Contains(t, out, "Target Muscle Group: Pull (Back, Biceps)")
	assert.Contains(t, out, "Fitness Level: Intermediate")
	assert.Contains(t, out, "Approximately 45 minutes")
	assert.Contains(t, out, "Available Equipment: Pull-up Bar, Resistance Bands")
}

func TestBuildDirectives(t *testing.T) {
	out := Build(sampleRequest())

	assert.Contains(t, out, "fitness coach")
	assert.Contains(t, out, "warm-up")
	assert.Contains(t, out, "cool-down")
	assert.Contains(t, out, "JSON object")
	assert.Contains(t, out, "Do not include any introductory text")
}

func TestBuildDeterministic(t *testing.T) {
	a := Build(sampleRequest())
	b := Build(sampleRequest())
	assert.Equal(t, a, b)

	other := sampleRequest()
	other.DurationMinutes = 50
	assert.NotEqual(t, a, Build(other))
}

func TestBuildDoesNotEscapeValues(t *testing.T) {
	req := sampleRequest()
	req.Equipment = []string{"Bodyweight Only"}
	out := Build(req)
	assert.True(t, strings.Contains(out, "Available Equipment: Bodyweight Only\n"))
	assert.NotContains(t, out, "&#")
}

func TestSchemaShape(t *testing.T) {
	s := Schema()
	require.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"workoutName", "description", "exercises"}, s.Required)

	ex := s.Properties[KeyExercises]
	require.NotNil(t, ex)
	require.Equal(t, genai.TypeArray, ex.Type)
	require.NotNil(t, ex.Items)
	assert.Equal(t, genai.TypeObject, ex.Items.Type)
	assert.ElementsMatch(t, ExerciseKeys, ex.Items.Required)
	for _, k := range ExerciseKeys {
		require.Contains(t, ex.Items.Properties, k)
		assert.Equal(t, genai.TypeString, ex.Items.Properties[k].Type, k)
	}
	assert.Equal(t, genai.TypeString, s.Properties[KeyWorkoutName].Type)
	assert.Equal(t, genai.TypeString, s.Properties[KeyDescription].Type)
}

func TestSchemaReturnsFreshValue(t *testing.T) {
	a := Schema()
	a.Required[0] = "mutated"
	assert.Equal(t, KeyWorkoutName, Schema().Required[0])
}
