// Package export renders a workout plan as a downloadable PDF.
package export

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/claude/fitgen/internal/render"
	"github.com/claude/fitgen/internal/workout"
	"github.com/go-pdf/fpdf"
)

// RegionID is the id of the page element holding the exportable plan.
const RegionID = "workout-plan-export"

// Exporter writes a plan in some document format.
type Exporter interface {
	Export(ctx context.Context, w io.Writer, plan *workout.Plan) error
}

// FileName derives the download name from the workout name: whitespace runs
// become a single '-', and characters unsafe in a header value are dropped.
func FileName(workoutName string) string {
	var sb strings.Builder
	space := false
	for _, r := range strings.TrimSpace(workoutName) {
		switch {
		case unicode.IsSpace(r):
			space = true
			continue
		case r == '/' || r == '\\' || r == '"' || unicode.IsControl(r):
			continue
		}
		if space {
			sb.WriteByte('-')
			space = false
		}
		sb.WriteRune(r)
	}
	name := sb.String()
	if name == "" {
		name = "workout"
	}
	return name + "-plan.pdf"
}

// PDF renders plans as A4 portrait documents.
type PDF struct{}

// NewPDF returns a PDF exporter.
func NewPDF() *PDF { return &PDF{} }

var _ Exporter = (*PDF)(nil)

// Export writes plan to w.
func (PDF) Export(ctx context.Context, w io.Writer, plan *workout.Plan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(plan.WorkoutName, true)
	pdf.SetCreator("fitgen", true)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252; translate so accents survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.MultiCell(0, 10, tr(plan.WorkoutName), "", "C", false)
	if plan.Description != "" {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.SetTextColor(90, 90, 90)
		pdf.MultiCell(0, 6, tr(plan.Description), "", "C", false)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)

	for i, ex := range plan.Exercises {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(13, 148, 136)
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("%d. %s", i+1, ex.Name)), "", "L", false)
		pdf.SetTextColor(0, 0, 0)

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("Sets: %s    Reps: %s    Rest: %s", ex.Sets, ex.Reps, ex.Rest)), "", "L", false)
		pdf.Ln(1)
		for _, step := range render.Steps(ex.DetailedDescription) {
			pdf.MultiCell(0, 5, tr(step), "", "L", false)
		}
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}
