package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/fitgen/internal/generate"
	"github.com/claude/fitgen/internal/render"
	"github.com/claude/fitgen/internal/workout"
	"github.com/mark3labs/mcp-go/mcp"
)

// requestFromArgs builds a validated request from tool arguments. Absent
// arguments keep the form defaults.
func requestFromArgs(req mcp.CallToolRequest) (workout.Request, error) {
	in := workout.Request{
		WorkoutType:     req.GetString("workout_type", ""),
		MuscleGroup:     req.GetString("muscle_group", ""),
		FitnessLevel:    req.GetString("fitness_level", ""),
		DurationMinutes: req.GetInt("duration_minutes", 0),
		Equipment:       req.GetStringSlice("equipment", nil),
	}
	form, err := workout.FormFromRequest(in)
	if err != nil {
		return workout.Request{}, err
	}
	return form.Request(), nil
}

func (h *handlers) generateWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	wreq, err := requestFromArgs(req)
	if err != nil {
		return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
	}

	plan, err := h.planner.Generate(ctx, wreq)
	if err != nil {
		h.log.Error("mcp generate_workout", "kind", generate.KindOf(err).String(), "error", err)
		return mcp.NewToolResultError(generate.UserMessage(err)), nil
	}

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(data)),
			mcp.NewTextContent(render.Markdown(plan)),
		},
	}, nil
}

func (h *handlers) options(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(workout.Catalog())
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
