package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/claude/fitgen/internal/prompt"
	"github.com/claude/fitgen/internal/workout"
)

// ParsePlan turns raw model output into a plan in three stages: decode into
// untyped JSON, check the shape against the response schema, then check the
// plan invariants. Each stage fails with its own Kind.
func ParsePlan(text string) (*workout.Plan, error) {
	raw, err := decode(text)
	if err != nil {
		return nil, &Error{Kind: KindMalformedResponse, Err: err}
	}
	plan, err := checkShape(raw)
	if err != nil {
		return nil, &Error{Kind: KindMalformedResponse, Err: err}
	}
	if err := plan.Complete(); err != nil {
		return nil, &Error{Kind: KindIncompleteResult, Err: err}
	}
	return plan, nil
}

func decode(text string) (any, error) {
	text = stripFences(strings.TrimSpace(text))
	if text == "" {
		return nil, fmt.Errorf("empty response text")
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("decoding plan json: %w", err)
	}
	return v, nil
}

// stripFences removes a surrounding ``` or ```json fence, which models add
// now and then despite being told not to.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		return s
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

func checkShape(v any) (*workout.Plan, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("plan is %s, want object", jsonType(v))
	}

	var plan workout.Plan
	var err error
	if plan.WorkoutName, err = stringField(obj, prompt.KeyWorkoutName, ""); err != nil {
		return nil, err
	}
	if plan.Description, err = stringField(obj, prompt.KeyDescription, ""); err != nil {
		return nil, err
	}

	rawExercises, ok := obj[prompt.KeyExercises]
	if !ok {
		return nil, fmt.Errorf("missing required key %q", prompt.KeyExercises)
	}
	list, ok := rawExercises.([]any)
	if !ok {
		return nil, fmt.Errorf("%s is %s, want array", prompt.KeyExercises, jsonType(rawExercises))
	}

	plan.Exercises = make([]workout.Exercise, 0, len(list))
	for i, item := range list {
		ex, err := checkExercise(item, fmt.Sprintf("%s[%d].", prompt.KeyExercises, i))
		if err != nil {
			return nil, err
		}
		plan.Exercises = append(plan.Exercises, ex)
	}
	return &plan, nil
}

func checkExercise(v any, path string) (workout.Exercise, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return workout.Exercise{}, fmt.Errorf("%s is %s, want object", strings.TrimSuffix(path, "."), jsonType(v))
	}
	fields := make([]string, len(prompt.ExerciseKeys))
	for i, key := range prompt.ExerciseKeys {
		s, err := stringField(obj, key, path)
		if err != nil {
			return workout.Exercise{}, err
		}
		fields[i] = s
	}
	return workout.Exercise{
		Name:                fields[0],
		Sets:                fields[1],
		Reps:                fields[2],
		Rest:                fields[3],
		DetailedDescription: fields[4],
	}, nil
}

func stringField(obj map[string]any, key, path string) (string, error) {
	v, ok := obj[key]
	if !ok {
		return "", fmt.Errorf("missing required key %q", path+key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s is %s, want string", path+key, jsonType(v))
	}
	return s, nil
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
