// Package prompt renders a workout request into the instruction and the
// response schema sent to the generation service.
package prompt

import (
	"strings"
	"text/template"

	"github.com/claude/fitgen/internal/workout"
)

// EquipmentSeparator joins equipment values in the instruction.
const EquipmentSeparator = ", "

var instruction = template.Must(template.New("instruction").Parse(`
You are a world-class fitness coach and personal trainer. Your task is to generate a personalized workout plan based on the following user specifications.

User Specifications:
- Workout Type: {{.WorkoutType}}
- Target Muscle Group: {{.MuscleGroup}}
- Fitness Level: {{.FitnessLevel}}
- Desired Duration: Approximately {{.DurationMinutes}} minutes
- Available Equipment: {{.Equipment}}

Generate a structured and effective workout plan that fits these criteria. The plan must have a creative, motivating name, a brief description of its goal, and for each exercise a detailed step-by-step guide on how to perform it. The total workout time, including warm-up, main exercises and cool-down (if applicable), must stay close to the desired duration. Make sure every exercise suits the user's fitness level and uses only the available equipment.

The response MUST be a JSON object that strictly adheres to the provided schema. Do not include any introductory text, explanations, markdown formatting such as code fences, or any other text outside of the JSON object itself.
`))

type instructionData struct {
	WorkoutType     string
	MuscleGroup     string
	FitnessLevel    string
	DurationMinutes int
	Equipment       string
}

// Build renders the instruction for req. Field values are embedded verbatim
// and the output depends on nothing but req.
func Build(req workout.Request) string {
	var sb strings.Builder
	// strings.Builder never fails and the data type is fixed.
	_ = instruction.Execute(&sb, instructionData{
		WorkoutType:     req.WorkoutType,
		MuscleGroup:     req.MuscleGroup,
		FitnessLevel:    req.FitnessLevel,
		DurationMinutes: req.DurationMinutes,
		Equipment:       strings.Join(req.Equipment, EquipmentSeparator),
	})
	return sb.String()
}
