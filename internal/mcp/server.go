// Package mcp exposes workout generation over the Model Context Protocol.
package mcp

import (
	"log/slog"

	"github.com/claude/fitgen/internal/workout"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(planner Planner, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("fitgen", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("fitgen workout plan generator. Call generate_workout with the training preferences to get a structured plan; read fitgen://options for the accepted values."),
	)

	h := &handlers{planner: planner, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGenerateWorkout, Handler: h.generateWorkout},
	)

	s.AddResources(
		server.ServerResource{Resource: resOptions, Handler: h.options},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	planner Planner
	log     *slog.Logger
}

// --- Resource definitions ---

var resOptions = mcp.NewResource(
	"fitgen://options",
	"Workout Options",
	mcp.WithResourceDescription("Accepted workout types, muscle groups, fitness levels, equipment and the duration range"),
	mcp.WithMIMEType("application/json"),
)

// --- Tool definitions ---

var toolGenerateWorkout = mcp.NewTool("generate_workout",
	mcp.WithDescription("Generate a personalized workout plan. Returns the plan as JSON (name, description, exercises with sets, reps, rest and step-by-step instructions) followed by a Markdown rendering."),
	mcp.WithString("workout_type", mcp.Description("Kind of training. Defaults to Strength."), mcp.Enum(workout.WorkoutTypes...)),
	mcp.WithString("muscle_group", mcp.Description("Body area to focus on. Defaults to Full Body."), mcp.Enum(workout.MuscleGroups...)),
	mcp.WithString("fitness_level", mcp.Description("Experience of the trainee. Defaults to Beginner."), mcp.Enum(workout.FitnessLevels...)),
	mcp.WithNumber("duration_minutes", mcp.Description("Total session length including warm-up and cool-down. Rounded to a multiple of 5. Defaults to 30."),
		mcp.Min(workout.MinDuration), mcp.Max(workout.MaxDuration)),
	mcp.WithArray("equipment", mcp.Description("Available equipment. \"Bodyweight Only\" excludes everything else. Defaults to Bodyweight Only."),
		mcp.Items(map[string]any{"type": "string", "enum": workout.EquipmentOptions})),
)
