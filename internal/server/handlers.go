package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/claude/fitgen/internal/export"
	"github.com/claude/fitgen/internal/generate"
	"github.com/claude/fitgen/internal/workout"
	"github.com/claude/fitgen/internal/workspace"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFromContext(r)
	s.renderPage(w, http.StatusOK, ws.Snapshot())
}

func (s *Server) renderPage(w http.ResponseWriter, status int, snap workspace.Snapshot) {
	var notice string
	if err := s.gen.Ready(); err != nil && snap.View == workspace.ViewForm {
		notice = generate.UserMessage(err)
	}
	if err := s.pages.render(w, status, newPageData(snap, notice)); err != nil {
		s.log.Error("render page", "view", snap.View.String(), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// handleFormField applies whichever form fields were posted.
func (s *Server) handleFormField(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	ws := workspaceFromContext(r)
	err := ws.UpdateForm(func(f *workout.Form) error {
		return applyFields(f, r.PostForm)
	})
	s.afterFormUpdate(w, r, err)
}

// handleFormEquipment toggles one equipment item. An explicit checked=true
// or checked=false selects or deselects instead of toggling.
func (s *Server) handleFormEquipment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	item := r.PostForm.Get("item")
	ws := workspaceFromContext(r)
	err := ws.UpdateForm(func(f *workout.Form) error {
		if err := applyFields(f, r.PostForm); err != nil {
			return err
		}
		checked := !f.HasEquipment(item)
		if v := r.PostForm.Get("checked"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: checked=%q", workout.ErrUnknownOption, v)
			}
			checked = b
		}
		return f.ToggleEquipment(item, checked)
	})
	s.afterFormUpdate(w, r, err)
}

func (s *Server) afterFormUpdate(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case err == nil, errors.Is(err, workspace.ErrBusy):
		// While loading the edit is dropped and the loading view shows again.
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, workout.ErrUnknownOption):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.log.Error("form update", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// applyFields copies the scalar fields present in values into f.
func applyFields(f *workout.Form, values url.Values) error {
	setters := []struct {
		key string
		set func(string) error
	}{
		{"workoutType", f.SetWorkoutType},
		{"muscleGroup", f.SetMuscleGroup},
		{"fitnessLevel", f.SetFitnessLevel},
	}
	for _, st := range setters {
		if !values.Has(st.key) {
			continue
		}
		if err := st.set(values.Get(st.key)); err != nil {
			return err
		}
	}
	if values.Has("durationMinutes") {
		v := values.Get("durationMinutes")
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: duration %q", workout.ErrUnknownOption, v)
		}
		f.SetDuration(n)
	}
	return nil
}

// handleGenerate applies any posted fields, switches to the loading view and
// starts the generation in the background. The browser polls / until it ends.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	ws := workspaceFromContext(r)
	err := ws.UpdateForm(func(f *workout.Form) error {
		return applyFields(f, r.PostForm)
	})
	if err != nil && !errors.Is(err, workspace.ErrBusy) {
		s.afterFormUpdate(w, r, err)
		return
	}

	ticket, req, err := ws.Begin()
	if errors.Is(err, workspace.ErrBusy) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// The generation outlives this request; the loading view polls for it.
	ctx := context.WithoutCancel(r.Context())
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.runGeneration(ctx, ws, ticket, req)
	}()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) runGeneration(ctx context.Context, ws *workspace.Workspace, t workspace.Ticket, req workout.Request) {
	plan, err := s.gen.Generate(ctx, req)
	var applied bool
	if err != nil {
		applied = ws.Fail(t, generate.UserMessage(err))
	} else {
		applied = ws.Succeed(t, plan)
	}
	if !applied {
		s.log.Debug("discarding generation result after start over", "ticket", uint64(t))
	}
}

// handleStartOver returns to the form. While a generation is in flight the
// request is ignored and the loading view keeps polling.
func (s *Server) handleStartOver(w http.ResponseWriter, r *http.Request) {
	if err := workspaceFromContext(r).StartOver(); errors.Is(err, workspace.ErrBusy) {
		s.log.Debug("start over refused while generating")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleOpenDetail(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil {
		http.Error(w, "invalid exercise index", http.StatusBadRequest)
		return
	}
	err = workspaceFromContext(r).OpenDetail(idx)
	switch {
	case err == nil, errors.Is(err, workspace.ErrNoPlan):
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, workspace.ErrNoSuchExercise):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		s.log.Error("open detail", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handleCloseDetail(w http.ResponseWriter, r *http.Request) {
	workspaceFromContext(r).CloseDetail()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleExport streams the current plan as a PDF attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	plan, err := workspaceFromContext(r).Plan()
	if err != nil {
		http.Error(w, "no workout plan to export", http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := s.exporter.Export(r.Context(), &buf, plan); err != nil {
		s.log.Error("export pdf", "workout", plan.WorkoutName, "error", err)
		http.Error(w, "could not export the workout plan", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(plan.WorkoutName)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Warn("export pdf write", "error", err)
	}
}
