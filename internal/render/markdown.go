package render

import (
	"fmt"
	"strings"

	"github.com/claude/fitgen/internal/workout"
)

// Markdown renders the whole plan, details included.
func Markdown(plan *workout.Plan) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", plan.WorkoutName)
	if plan.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", plan.Description)
	}
	sb.WriteString("| # | Exercise | Sets | Reps | Rest |\n")
	sb.WriteString("|---|----------|------|------|------|\n")
	for _, r := range List(plan) {
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s |\n",
			r.Index+1, cell(r.Name), cell(r.Sets), cell(r.Reps), cell(r.Rest))
	}
	for i, ex := range plan.Exercises {
		fmt.Fprintf(&sb, "\n## %d. %s\n\n", i+1, ex.Name)
		for n, step := range Steps(ex.DetailedDescription) {
			fmt.Fprintf(&sb, "%d. %s\n", n+1, trimNumbering(step))
		}
		fmt.Fprintf(&sb, "\nVideo: %s\n", VideoSearchURL(ex.Name))
	}
	return sb.String()
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// trimNumbering drops a leading "1." or "Step 1:" the model already wrote,
// so Markdown numbering does not double up.
func trimNumbering(step string) string {
	s := strings.TrimPrefix(step, "Step ")
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) || (s[i] != '.' && s[i] != ':' && s[i] != ')') {
		return step
	}
	return strings.TrimSpace(s[i+1:])
}
