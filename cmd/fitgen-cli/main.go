package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/claude/fitgen/internal/config"
	"github.com/claude/fitgen/internal/export"
	"github.com/claude/fitgen/internal/generate"
	"github.com/claude/fitgen/internal/render"
	"github.com/claude/fitgen/internal/workout"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (optional; env vars apply either way)")
	workoutType := flag.String("type", workout.DefaultWorkoutType, "workout type: "+strings.Join(workout.WorkoutTypes, ", "))
	muscleGroup := flag.String("muscle", workout.DefaultMuscleGroup, "muscle group: "+strings.Join(workout.MuscleGroups, "; "))
	fitnessLevel := flag.String("level", workout.DefaultFitnessLevel, "fitness level: "+strings.Join(workout.FitnessLevels, ", "))
	duration := flag.Int("duration", workout.DefaultDuration, fmt.Sprintf("duration in minutes (%d-%d, rounded to %d)", workout.MinDuration, workout.MaxDuration, workout.DurationStep))
	equipment := flag.String("equipment", workout.BodyweightOnly, "comma-separated equipment: "+strings.Join(workout.EquipmentOptions, ", "))
	pdfPath := flag.String("pdf", "", "also write the plan as PDF to this file (or into this directory)")
	asJSON := flag.Bool("json", false, "print the plan as JSON instead of Markdown")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("fitgen-cli", Version)
		return
	}

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	level, _ := cfg.Log.SlogLevel()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	form, err := workout.FormFromRequest(workout.Request{
		WorkoutType:     *workoutType,
		MuscleGroup:     *muscleGroup,
		FitnessLevel:    *fitnessLevel,
		DurationMinutes: *duration,
		Equipment:       splitList(*equipment),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		flag.PrintDefaults()
		os.Exit(2)
	}
	req := form.Request()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gen, err := generate.NewGemini(ctx, generate.Config{
		APIKey:      cfg.Gemini.APIKey,
		Model:       cfg.Gemini.Model,
		Temperature: cfg.Gemini.Temperature,
	}, log)
	if err != nil {
		log.Error("failed to create generation client", "error", err)
		fail(err)
	}

	log.Info("generating workout",
		"type", req.WorkoutType,
		"muscle_group", req.MuscleGroup,
		"level", req.FitnessLevel,
		"duration", req.DurationMinutes,
		"equipment", strings.Join(req.Equipment, ", "),
	)
	plan, err := gen.Generate(ctx, req)
	if err != nil {
		fail(err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plan); err != nil {
			log.Error("write plan", "error", err)
			os.Exit(1)
		}
	} else {
		fmt.Print(render.Markdown(plan))
	}

	if *pdfPath != "" {
		path := *pdfPath
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, export.FileName(plan.WorkoutName))
		}
		if err := writePDF(ctx, path, plan); err != nil {
			// Export is best effort; the plan was already printed.
			log.Error("pdf export failed", "path", path, "error", err)
			os.Exit(1)
		}
		log.Info("pdf written", "path", path)
	}
}

func writePDF(ctx context.Context, path string, plan *workout.Plan) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.NewPDF().Export(ctx, f, plan); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// fail prints the user-facing message and exits. The raw error has already
// been logged by the generation client.
func fail(err error) {
	fmt.Fprintln(os.Stderr, generate.UserMessage(err))
	os.Exit(1)
}
