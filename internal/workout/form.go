package workout

import (
	"fmt"
	"slices"
)

// Default form values, matching what the form shows on first load.
const (
	DefaultWorkoutType  = "Strength"
	DefaultMuscleGroup  = "Full Body"
	DefaultFitnessLevel = "Beginner"
	DefaultDuration     = 30
)

// Form holds the request being edited and enforces its invariants on every
// mutation. The zero value is not usable; call NewForm.
//
// Form is not safe for concurrent use.
type Form struct {
	req Request
}

// NewForm returns a form populated with the defaults.
func NewForm() *Form {
	return &Form{req: Request{
		WorkoutType:     DefaultWorkoutType,
		MuscleGroup:     DefaultMuscleGroup,
		FitnessLevel:    DefaultFitnessLevel,
		DurationMinutes: DefaultDuration,
		Equipment:       []string{BodyweightOnly},
	}}
}

// FormFromRequest builds a form from an untrusted request by replaying the
// same mutations a user would make. Blank scalar fields and a zero duration
// keep their defaults; an empty equipment list means bodyweight only.
func FormFromRequest(req Request) (*Form, error) {
	f := NewForm()
	if req.WorkoutType != "" {
		if err := f.SetWorkoutType(req.WorkoutType); err != nil {
			return nil, err
		}
	}
	if req.MuscleGroup != "" {
		if err := f.SetMuscleGroup(req.MuscleGroup); err != nil {
			return nil, err
		}
	}
	if req.FitnessLevel != "" {
		if err := f.SetFitnessLevel(req.FitnessLevel); err != nil {
			return nil, err
		}
	}
	if req.DurationMinutes != 0 {
		f.SetDuration(req.DurationMinutes)
	}
	for _, item := range req.Equipment {
		if err := f.SelectEquipment(item); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Clone returns an independent copy of f.
func (f *Form) Clone() *Form {
	return &Form{req: f.Request()}
}

// Request returns a copy of the current request.
func (f *Form) Request() Request {
	r := f.req
	r.Equipment = append([]string(nil), f.req.Equipment...)
	return r
}

// SetWorkoutType replaces the workout type.
func (f *Form) SetWorkoutType(v string) error {
	if !slices.Contains(WorkoutTypes, v) {
		return fmt.Errorf("%w: workout type %q", ErrUnknownOption, v)
	}
	f.req.WorkoutType = v
	return nil
}

// SetMuscleGroup replaces the target muscle group.
func (f *Form) SetMuscleGroup(v string) error {
	if !slices.Contains(MuscleGroups, v) {
		return fmt.Errorf("%w: muscle group %q", ErrUnknownOption, v)
	}
	f.req.MuscleGroup = v
	return nil
}

// SetFitnessLevel replaces the fitness level.
func (f *Form) SetFitnessLevel(v string) error {
	if !slices.Contains(FitnessLevels, v) {
		return fmt.Errorf("%w: fitness level %q", ErrUnknownOption, v)
	}
	f.req.FitnessLevel = v
	return nil
}

// SetDuration stores minutes clamped to [MinDuration, MaxDuration] and
// rounded to the nearest DurationStep. It returns the stored value.
func (f *Form) SetDuration(minutes int) int {
	f.req.DurationMinutes = NormalizeDuration(minutes)
	return f.req.DurationMinutes
}

// NormalizeDuration clamps and rounds minutes the way SetDuration does.
func NormalizeDuration(minutes int) int {
	if minutes < MinDuration {
		return MinDuration
	}
	if minutes > MaxDuration {
		return MaxDuration
	}
	return (minutes + DurationStep/2) / DurationStep * DurationStep
}

// SelectEquipment adds an item. Selecting the sentinel clears everything
// else; selecting any other item drops the sentinel.
func (f *Form) SelectEquipment(item string) error {
	if !slices.Contains(EquipmentOptions, item) {
		return fmt.Errorf("%w: equipment %q", ErrUnknownOption, item)
	}
	if item == BodyweightOnly {
		f.req.Equipment = []string{BodyweightOnly}
		return nil
	}
	next := make([]string, 0, len(f.req.Equipment)+1)
	for _, e := range f.req.Equipment {
		if e == BodyweightOnly || e == item {
			continue
		}
		next = append(next, e)
	}
	f.req.Equipment = append(next, item)
	return nil
}

// DeselectEquipment removes an item. If nothing is left the sentinel is
// reinstated, so deselecting the sentinel itself changes nothing.
func (f *Form) DeselectEquipment(item string) error {
	if !slices.Contains(EquipmentOptions, item) {
		return fmt.Errorf("%w: equipment %q", ErrUnknownOption, item)
	}
	next := make([]string, 0, len(f.req.Equipment))
	for _, e := range f.req.Equipment {
		if e == item {
			continue
		}
		next = append(next, e)
	}
	if len(next) == 0 {
		next = []string{BodyweightOnly}
	}
	f.req.Equipment = next
	return nil
}

// ToggleEquipment applies a checkbox change.
func (f *Form) ToggleEquipment(item string, checked bool) error {
	if checked {
		return f.SelectEquipment(item)
	}
	return f.DeselectEquipment(item)
}

// HasEquipment reports whether item is currently selected.
func (f *Form) HasEquipment(item string) bool {
	return slices.Contains(f.req.Equipment, item)
}
