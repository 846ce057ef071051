// Package render turns a validated plan into view models for the HTML
// shell and into Markdown for the CLI and MCP surfaces.
package render

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/claude/fitgen/internal/workout"
)

// ErrNoSuchExercise is returned by Detail for an out-of-range index.
var ErrNoSuchExercise = errors.New("no such exercise")

const videoSearchBase = "https://www.youtube.com/results?search_query="

// Row is one line of the exercise list.
type Row struct {
	Index int
	Name  string
	Sets  string
	Reps  string
	Rest  string
}

// DetailView is the content of the exercise detail overlay.
type DetailView struct {
	Index    int
	Name     string
	Steps    []string
	VideoURL string
}

// List returns the exercise summaries in plan order.
func List(plan *workout.Plan) []Row {
	rows := make([]Row, len(plan.Exercises))
	for i, ex := range plan.Exercises {
		rows[i] = Row{Index: i, Name: ex.Name, Sets: ex.Sets, Reps: ex.Reps, Rest: ex.Rest}
	}
	return rows
}

// Detail returns the detail view of exercise i.
func Detail(plan *workout.Plan, i int) (DetailView, error) {
	if plan == nil || i < 0 || i >= len(plan.Exercises) {
		return DetailView{}, fmt.Errorf("%w: %d", ErrNoSuchExercise, i)
	}
	ex := plan.Exercises[i]
	return DetailView{
		Index:    i,
		Name:     ex.Name,
		Steps:    Steps(ex.DetailedDescription),
		VideoURL: VideoSearchURL(ex.Name),
	}, nil
}

// Steps splits a step-by-step description into its non-blank lines.
func Steps(description string) []string {
	lines := strings.Split(strings.ReplaceAll(description, "\r\n", "\n"), "\n")
	steps := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			steps = append(steps, l)
		}
	}
	return steps
}

// VideoSearchURL builds the external tutorial search link for an exercise.
func VideoSearchURL(exerciseName string) string {
	return videoSearchBase + url.QueryEscape(exerciseName+" exercise tutorial")
}
