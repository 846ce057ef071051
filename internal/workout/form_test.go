package workout

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormDefaults(t *testing.T) {
	req := NewForm().Request()
	assert.Equal(t, Request{
		WorkoutType:     "Strength",
		MuscleGroup:     "Full Body",
		FitnessLevel:    "Beginner",
		DurationMinutes: 30,
		Equipment:       []string{BodyweightOnly},
	}, req)
}

func TestRequestReturnsCopy(t *testing.T) {
	f := NewForm()
	req := f.Request()
	req.Equipment[0] = "Barbell"
	assert.Equal(t, []string{BodyweightOnly}, f.Request().Equipment)
}

// TestScalarSettersReplaceOnlyTheirField verifies each scalar update leaves
// the other fields untouched.
func TestScalarSettersReplaceOnlyTheirField(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.SelectEquipment("Kettlebell"))

	require.NoError(t, f.SetWorkoutType("HIIT"))
	require.NoError(t, f.SetMuscleGroup("Core"))
	require.NoError(t, f.SetFitnessLevel("Advanced"))
	f.SetDuration(45)

	assert.Equal(t, Request{
		WorkoutType:     "HIIT",
		MuscleGroup:     "Core",
		FitnessLevel:    "Advanced",
		DurationMinutes: 45,
		Equipment:       []string{"Kettlebell"},
	}, f.Request())
}

func TestScalarSettersRejectUnknownValues(t *testing.T) {
	f := NewForm()
	assert.ErrorIs(t, f.SetWorkoutType("Zumba"), ErrUnknownOption)
	assert.ErrorIs(t, f.SetMuscleGroup("Neck"), ErrUnknownOption)
	assert.ErrorIs(t, f.SetFitnessLevel("Olympian"), ErrUnknownOption)
	assert.ErrorIs(t, f.SelectEquipment("Rowing Machine"), ErrUnknownOption)
	assert.ErrorIs(t, f.DeselectEquipment("Rowing Machine"), ErrUnknownOption)
	assert.Equal(t, NewForm().Request(), f.Request())
}

func TestSetDurationClampsAndRounds(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{-10, 15},
		{0, 15},
		{14, 15},
		{15, 15},
		{17, 15},
		{18, 20},
		{32, 30},
		{33, 35},
		{90, 90},
		{91, 90},
		{500, 90},
	}
	for _, c := range cases {
		f := NewForm()
		assert.Equal(t, c.want, f.SetDuration(c.in), "SetDuration(%d)", c.in)
		assert.Equal(t, c.want, f.Request().DurationMinutes)
	}
}

func TestSelectNonSentinelDropsSentinel(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.SelectEquipment("Dumbbells"))
	assert.Equal(t, []string{"Dumbbells"}, f.Request().Equipment)

	require.NoError(t, f.SelectEquipment("Barbell"))
	assert.Equal(t, []string{"Dumbbells", "Barbell"}, f.Request().Equipment)

	// Selecting twice does not duplicate.
	require.NoError(t, f.SelectEquipment("Dumbbells"))
	assert.ElementsMatch(t, []string{"Dumbbells", "Barbell"}, f.Request().Equipment)
}

// TestSelectSentinelClearsOthers covers "Dumbbells" then "Bodyweight Only".
func TestSelectSentinelClearsOthers(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.SelectEquipment("Dumbbells"))
	require.NoError(t, f.SelectEquipment(BodyweightOnly))
	assert.Equal(t, []string{BodyweightOnly}, f.Request().Equipment)
}

func TestDeselectLastItemReinstatesSentinel(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.SelectEquipment("Treadmill"))
	require.NoError(t, f.SelectEquipment("Pull-up Bar"))

	require.NoError(t, f.DeselectEquipment("Treadmill"))
	assert.Equal(t, []string{"Pull-up Bar"}, f.Request().Equipment)

	require.NoError(t, f.DeselectEquipment("Pull-up Bar"))
	assert.Equal(t, []string{BodyweightOnly}, f.Request().Equipment)
}

func TestDeselectSentinelIsNoop(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.DeselectEquipment(BodyweightOnly))
	assert.Equal(t, []string{BodyweightOnly}, f.Request().Equipment)

	require.NoError(t, f.SelectEquipment("Barbell"))
	require.NoError(t, f.DeselectEquipment(BodyweightOnly))
	assert.Equal(t, []string{"Barbell"}, f.Request().Equipment)
}

func TestToggleEquipment(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.ToggleEquipment("Resistance Bands", true))
	assert.True(t, f.HasEquipment("Resistance Bands"))
	assert.False(t, f.HasEquipment(BodyweightOnly))

	require.NoError(t, f.ToggleEquipment("Resistance Bands", false))
	assert.True(t, f.HasEquipment(BodyweightOnly))
}

// TestEquipmentInvariantUnderRandomMutations drives long random sequences of
// selects and deselects and checks the set invariants after every step.
func TestEquipmentInvariantUnderRandomMutations(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	f := NewForm()

	for i := 0; i < 5000; i++ {
		item := EquipmentOptions[rng.Intn(len(EquipmentOptions))]
		switch rng.Intn(3) {
		case 0:
			require.NoError(t, f.SelectEquipment(item))
		case 1:
			require.NoError(t, f.DeselectEquipment(item))
		default:
			f.SetDuration(rng.Intn(200) - 50)
		}

		req := f.Request()
		require.NotEmpty(t, req.Equipment, "step %d", i)
		if slices.Contains(req.Equipment, BodyweightOnly) {
			require.Equal(t, []string{BodyweightOnly}, req.Equipment, "step %d", i)
		}
		seen := map[string]bool{}
		for _, e := range req.Equipment {
			require.False(t, seen[e], "duplicate %q at step %d", e, i)
			seen[e] = true
		}
		require.GreaterOrEqual(t, req.DurationMinutes, MinDuration)
		require.LessOrEqual(t, req.DurationMinutes, MaxDuration)
		require.Zero(t, req.DurationMinutes%DurationStep)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	f := NewForm()
	c := f.Clone()
	require.NoError(t, c.SetWorkoutType("Cardio"))
	require.NoError(t, c.SelectEquipment("Treadmill"))

	assert.Equal(t, DefaultWorkoutType, f.Request().WorkoutType)
	assert.Equal(t, []string{BodyweightOnly}, f.Request().Equipment)
	assert.Equal(t, []string{"Treadmill"}, c.Request().Equipment)
}

func TestFormFromRequest(t *testing.T) {
	f, err := FormFromRequest(Request{
		WorkoutType:     "Cardio",
		DurationMinutes: 62,
		Equipment:       []string{"Dumbbells", "Stationary Bike"},
	})
	require.NoError(t, err)
	assert.Equal(t, Request{
		WorkoutType:     "Cardio",
		MuscleGroup:     DefaultMuscleGroup,
		FitnessLevel:    DefaultFitnessLevel,
		DurationMinutes: 60,
		Equipment:       []string{"Dumbbells", "Stationary Bike"},
	}, f.Request())
}

func TestFormFromRequestSentinelWins(t *testing.T) {
	f, err := FormFromRequest(Request{Equipment: []string{"Dumbbells", BodyweightOnly}})
	require.NoError(t, err)
	assert.Equal(t, []string{BodyweightOnly}, f.Request().Equipment)
}

func TestFormFromRequestRejectsUnknown(t *testing.T) {
	_, err := FormFromRequest(Request{MuscleGroup: "Tongue"})
	assert.ErrorIs(t, err, ErrUnknownOption)

	_, err = FormFromRequest(Request{Equipment: []string{"Jetpack"}})
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestPlanComplete(t *testing.T) {
	ok := Plan{WorkoutName: "Blast", Exercises: []Exercise{{Name: "Squat"}}}
	assert.NoError(t, ok.Complete())

	noName := Plan{WorkoutName: "  ", Exercises: []Exercise{{Name: "Squat"}}}
	assert.ErrorIs(t, noName.Complete(), ErrMissingName)

	noExercises := Plan{WorkoutName: "Blast"}
	assert.ErrorIs(t, noExercises.Complete(), ErrNoExercises)
}

func TestCatalogAndDurations(t *testing.T) {
	c := Catalog()
	assert.Len(t, c.WorkoutTypes, 6)
	assert.Equal(t, BodyweightOnly, c.Equipment[len(c.Equipment)-1])

	c.WorkoutTypes[0] = "mutated"
	assert.Equal(t, "Strength", WorkoutTypes[0])

	d := DurationChoices()
	assert.Equal(t, 15, d[0])
	assert.Equal(t, 90, d[len(d)-1])
	assert.Len(t, d, 16)
}
