package workspace

import (
	"sync"
	"testing"
	"time"

	"github.com/claude/fitgen/internal/workout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fivePlan() *workout.Plan {
	p := &workout.Plan{WorkoutName: "Starter Strength", Description: "Five moves."}
	for _, n := range []string{"Squat", "Push-up", "Lunge", "Plank", "Glute Bridge"} {
		p.Exercises = append(p.Exercises, workout.Exercise{Name: n, Sets: "3", Reps: "10", Rest: "60s", DetailedDescription: "Do it."})
	}
	return p
}

func TestNewWorkspaceShowsDefaultForm(t *testing.T) {
	s := New().Snapshot()
	assert.Equal(t, ViewForm, s.View)
	assert.Nil(t, s.Plan)
	assert.Empty(t, s.Error)
	assert.Equal(t, NoDetail, s.Detail)
	assert.Equal(t, workout.NewForm().Request(), s.Request)
}

func TestGenerationSuccess(t *testing.T) {
	w := New()
	ticket, req, err := w.Begin()
	require.NoError(t, err)
	assert.Equal(t, workout.NewForm().Request(), req)
	assert.Equal(t, ViewLoading, w.Snapshot().View)

	require.True(t, w.Succeed(ticket, fivePlan()))
	s := w.Snapshot()
	assert.Equal(t, ViewPlan, s.View)
	require.NotNil(t, s.Plan)
	assert.Len(t, s.Plan.Exercises, 5)

	plan, err := w.Plan()
	require.NoError(t, err)
	assert.Equal(t, "Starter Strength", plan.WorkoutName)
}

// TestGenerationFailureReturnsToForm covers a timed-out call: the user is
// back on the form with one message, not stuck loading.
func TestGenerationFailureReturnsToForm(t *testing.T) {
	w := New()
	ticket, _, err := w.Begin()
	require.NoError(t, err)

	require.True(t, w.Fail(ticket, "Failed to generate workout."))
	s := w.Snapshot()
	assert.Equal(t, ViewForm, s.View)
	assert.Equal(t, "Failed to generate workout.", s.Error)
	assert.Nil(t, s.Plan)

	// A retry clears the old message.
	_, _, err = w.Begin()
	require.NoError(t, err)
	assert.Empty(t, w.Snapshot().Error)
}

func TestBeginWhileLoadingIsRefused(t *testing.T) {
	w := New()
	_, _, err := w.Begin()
	require.NoError(t, err)

	_, _, err = w.Begin()
	assert.ErrorIs(t, err, ErrBusy)

	err = w.UpdateForm(func(f *workout.Form) error { return f.SetWorkoutType("HIIT") })
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, "Strength", w.Snapshot().Request.WorkoutType)
}

func TestBeginClearsStalePlan(t *testing.T) {
	w := New()
	t1, _, _ := w.Begin()
	w.Succeed(t1, fivePlan())
	require.NoError(t, w.OpenDetail(2))

	_, _, err := w.Begin()
	require.NoError(t, err)
	s := w.Snapshot()
	assert.Nil(t, s.Plan)
	assert.Equal(t, NoDetail, s.Detail)
}

func TestStartOverRefusedWhileLoading(t *testing.T) {
	w := New()
	ticket, _, err := w.Begin()
	require.NoError(t, err)

	assert.ErrorIs(t, w.StartOver(), ErrBusy)
	assert.Equal(t, ViewLoading, w.Snapshot().View)
	_, _, err = w.Begin()
	assert.ErrorIs(t, err, ErrBusy, "still one generation in flight")

	assert.True(t, w.Succeed(ticket, fivePlan()))
	assert.Equal(t, ViewPlan, w.Snapshot().View)
	assert.NoError(t, w.StartOver())
}

func TestStaleTicketIsDropped(t *testing.T) {
	w := New()
	old, _, _ := w.Begin()
	require.True(t, w.Fail(old, "first failed"))
	current, _, err := w.Begin()
	require.NoError(t, err)

	assert.False(t, w.Succeed(old, fivePlan()))
	assert.False(t, w.Fail(old, "late duplicate"))
	assert.Equal(t, ViewLoading, w.Snapshot().View)
	assert.True(t, w.Succeed(current, fivePlan()))
}

func TestUpdateFormIsAllOrNothing(t *testing.T) {
	w := New()
	err := w.UpdateForm(func(f *workout.Form) error {
		if err := f.SetWorkoutType("HIIT"); err != nil {
			return err
		}
		return f.SetMuscleGroup("Neck")
	})
	assert.ErrorIs(t, err, workout.ErrUnknownOption)
	assert.Equal(t, workout.DefaultWorkoutType, w.Snapshot().Request.WorkoutType)

	require.NoError(t, w.UpdateForm(func(f *workout.Form) error { return f.SetWorkoutType("HIIT") }))
	assert.Equal(t, "HIIT", w.Snapshot().Request.WorkoutType)
}

func TestStartOverKeepsForm(t *testing.T) {
	w := New()
	require.NoError(t, w.UpdateForm(func(f *workout.Form) error { return f.SelectEquipment("Barbell") }))
	t1, _, _ := w.Begin()
	w.Succeed(t1, fivePlan())

	require.NoError(t, w.StartOver())
	s := w.Snapshot()
	assert.Equal(t, ViewForm, s.View)
	assert.Nil(t, s.Plan)
	assert.Equal(t, []string{"Barbell"}, s.Request.Equipment)

	_, err := w.Plan()
	assert.ErrorIs(t, err, ErrNoPlan)
}

func TestDetailReplacesAndCloses(t *testing.T) {
	w := New()
	assert.ErrorIs(t, w.OpenDetail(0), ErrNoPlan)

	t1, _, _ := w.Begin()
	w.Succeed(t1, fivePlan())

	require.NoError(t, w.OpenDetail(1))
	require.NoError(t, w.OpenDetail(3))
	assert.Equal(t, 3, w.Snapshot().Detail)

	assert.ErrorIs(t, w.OpenDetail(5), ErrNoSuchExercise)
	assert.ErrorIs(t, w.OpenDetail(-1), ErrNoSuchExercise)
	assert.Equal(t, 3, w.Snapshot().Detail)

	before := w.Snapshot().Plan
	w.CloseDetail()
	s := w.Snapshot()
	assert.Equal(t, NoDetail, s.Detail)
	assert.Equal(t, ViewPlan, s.View)
	assert.Same(t, before, s.Plan)
}

func TestConcurrentBeginOnlyOneWins(t *testing.T) {
	w := New()
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := w.Begin(); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestViewString(t *testing.T) {
	assert.Equal(t, "form", ViewForm.String())
	assert.Equal(t, "loading", ViewLoading.String())
	assert.Equal(t, "plan", ViewPlan.String())
	assert.Equal(t, "view(9)", View(9).String())
}

func TestStore(t *testing.T) {
	s := NewStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	id, w, created := s.GetOrCreate("")
	require.True(t, created)
	require.NotEmpty(t, id)

	id2, w2, created := s.GetOrCreate(id)
	assert.False(t, created)
	assert.Equal(t, id, id2)
	assert.Same(t, w, w2)

	id3, _, created := s.GetOrCreate("unknown")
	assert.True(t, created)
	assert.NotEqual(t, "unknown", id3)
	assert.Equal(t, 2, s.Len())

	now = now.Add(20 * time.Minute)
	_, ok := s.Get(id)
	require.True(t, ok)

	now = now.Add(20 * time.Minute)
	assert.Equal(t, 1, s.Prune(30*time.Minute))
	_, ok = s.Get(id)
	assert.True(t, ok)
	_, ok = s.Get(id3)
	assert.False(t, ok)
}
