// Package workspace holds the UI state of one browser: the form being
// edited, which view is showing, the single current plan and the open
// exercise detail.
package workspace

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/claude/fitgen/internal/workout"
)

var (
	// ErrBusy is returned while a generation is in flight.
	ErrBusy = errors.New("a workout is already being generated")
	// ErrNoPlan is returned by plan operations when no plan is showing.
	ErrNoPlan = errors.New("no workout plan")
	// ErrNoSuchExercise is returned by OpenDetail for a bad index.
	ErrNoSuchExercise = errors.New("no such exercise")
)

// View is the screen a workspace currently shows.
type View int

const (
	ViewForm View = iota
	ViewLoading
	ViewPlan
)

func (v View) String() string {
	switch v {
	case ViewForm:
		return "form"
	case ViewLoading:
		return "loading"
	case ViewPlan:
		return "plan"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// NoDetail is the Detail value when no exercise detail is open.
const NoDetail = -1

// Ticket identifies one generation. A result delivered with a stale ticket
// is dropped.
type Ticket uint64

// Snapshot is a consistent copy of a workspace for rendering.
type Snapshot struct {
	View    View
	Request workout.Request
	Plan    *workout.Plan
	Error   string
	Detail  int
}

// Workspace is safe for concurrent use.
type Workspace struct {
	mu      sync.Mutex
	form    *workout.Form
	view    View
	plan    *workout.Plan
	errMsg  string
	detail  int
	ticket  Ticket
	touched time.Time
}

// New returns a workspace showing a default form.
func New() *Workspace {
	return &Workspace{form: workout.NewForm(), detail: NoDetail, touched: time.Now()}
}

// Snapshot returns the current state.
func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		View:    w.view,
		Request: w.form.Request(),
		Plan:    w.plan,
		Error:   w.errMsg,
		Detail:  w.detail,
	}
}

// UpdateForm applies fn to a copy of the form and keeps the copy only if fn
// succeeds, so a rejected edit changes nothing. Edits are refused while
// loading so the in-flight request stays what the user submitted.
func (w *Workspace) UpdateForm(fn func(*workout.Form) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.view == ViewLoading {
		return ErrBusy
	}
	next := w.form.Clone()
	if err := fn(next); err != nil {
		return err
	}
	w.form = next
	return nil
}

// Begin switches to the loading view and returns the ticket and request for
// the new generation. Any stale plan and error are cleared. Only one
// generation may be in flight.
func (w *Workspace) Begin() (Ticket, workout.Request, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.view == ViewLoading {
		return 0, workout.Request{}, ErrBusy
	}
	w.ticket++
	w.view = ViewLoading
	w.plan = nil
	w.errMsg = ""
	w.detail = NoDetail
	return w.ticket, w.form.Request(), nil
}

// Succeed stores plan as the current plan. It reports false and changes
// nothing if t is stale.
func (w *Workspace) Succeed(t Ticket, plan *workout.Plan) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.current(t) {
		return false
	}
	w.view = ViewPlan
	w.plan = plan
	w.errMsg = ""
	return true
}

// Fail returns to the form with msg shown. It reports false and changes
// nothing if t is stale.
func (w *Workspace) Fail(t Ticket, msg string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.current(t) {
		return false
	}
	w.view = ViewForm
	w.plan = nil
	w.errMsg = msg
	return true
}

func (w *Workspace) current(t Ticket) bool {
	return t == w.ticket && w.view == ViewLoading
}

// StartOver discards the plan and error and returns to the form. A
// generation in flight cannot be abandoned: StartOver returns ErrBusy until
// it has finished.
func (w *Workspace) StartOver() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.view == ViewLoading {
		return ErrBusy
	}
	w.ticket++
	w.view = ViewForm
	w.plan = nil
	w.errMsg = ""
	w.detail = NoDetail
	return nil
}

// Plan returns the current plan.
func (w *Workspace) Plan() (*workout.Plan, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.view != ViewPlan || w.plan == nil {
		return nil, ErrNoPlan
	}
	return w.plan, nil
}

// OpenDetail shows exercise i, replacing any open detail.
func (w *Workspace) OpenDetail(i int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.view != ViewPlan || w.plan == nil {
		return ErrNoPlan
	}
	if i < 0 || i >= len(w.plan.Exercises) {
		return fmt.Errorf("%w: %d", ErrNoSuchExercise, i)
	}
	w.detail = i
	return nil
}

// CloseDetail hides the exercise detail. The plan is left as is.
func (w *Workspace) CloseDetail() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.detail = NoDetail
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.touched = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.touched
}
