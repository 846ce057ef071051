package server

import (
	"bytes"
	"html/template"
	"net/http"
	"slices"

	"github.com/claude/fitgen/internal/export"
	"github.com/claude/fitgen/internal/render"
	"github.com/claude/fitgen/internal/workout"
	"github.com/claude/fitgen/internal/workspace"
)

// pages renders the shell's HTML views.
type pages struct {
	tmpl *template.Template
}

func mustParsePages() *pages {
	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}
	tmpl := template.Must(template.New("shell").Funcs(funcs).ParseFS(assets, "templates/*.html"))
	return &pages{tmpl: tmpl}
}

// pageData is everything the layout template may show.
type pageData struct {
	View      string
	Notice    string
	Error     string
	Request   workout.Request
	Options   workout.Options
	Durations []int
	Title     string
	Summary   string
	Rows      []render.Row
	Detail    *render.DetailView
	RegionID  string
	Equipment []equipmentChoice
}

type equipmentChoice struct {
	Name     string
	Selected bool
}

func newPageData(snap workspace.Snapshot, notice string) pageData {
	d := pageData{
		View:      snap.View.String(),
		Notice:    notice,
		Error:     snap.Error,
		Request:   snap.Request,
		Options:   workout.Catalog(),
		Durations: workout.DurationChoices(),
		RegionID:  export.RegionID,
	}
	for _, item := range d.Options.Equipment {
		d.Equipment = append(d.Equipment, equipmentChoice{
			Name:     item,
			Selected: slices.Contains(snap.Request.Equipment, item),
		})
	}
	if snap.View == workspace.ViewPlan && snap.Plan != nil {
		d.Title = snap.Plan.WorkoutName
		d.Summary = snap.Plan.Description
		d.Rows = render.List(snap.Plan)
		if snap.Detail != workspace.NoDetail {
			if dv, err := render.Detail(snap.Plan, snap.Detail); err == nil {
				d.Detail = &dv
			}
		}
	}
	return d
}

// render executes the layout into a buffer first so a template error never
// leaves a half-written page.
func (p *pages) render(w http.ResponseWriter, status int, data pageData) error {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
