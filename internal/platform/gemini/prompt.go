package gemini

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/phrazzld/fitload/internal/domain"
)

// maxPromptSets bounds how much history is sent to the model.
const maxPromptSets = 10

const systemInstruction = "You are a concise strength coach. " +
	"Answer in at most three sentences and never contradict the suggested load."

var promptTemplate = template.Must(template.New("advice").Funcs(template.FuncMap{
	"deref": func(v *float64) float64 { return *v },
}).Parse(`Exercise: {{.ExerciseID}}
Progression policy: {{.Policy.Type}} (increment {{printf "%.2f" .Policy.Increment}}{{if .Policy.MaxWeight}}, max weight {{printf "%.2f" (deref .Policy.MaxWeight)}}{{end}}{{if .Policy.TargetRPE}}, target RPE {{printf "%.1f" (deref .Policy.TargetRPE)}}{{end}})
Recent sets, oldest first:
{{- range .Sets}}
- set {{.SetNumber}}: {{printf "%.2f" .Weight}} x {{.Reps}} @ RPE {{printf "%.1f" .RPE}}{{if not .Completed}} (not completed){{end}}{{if ne .Variation.Kind "normal"}} [{{.Variation.Kind}}]{{end}}
{{- else}}
- none
{{- end}}
Suggestion: {{.Hint.Suggestion}}{{if .Hint.Amount}} by {{printf "%.2f" (deref .Hint.Amount)}}{{end}}
Reason: {{.Hint.Reason}}

Explain the suggestion to the athlete and give one cue for the next session.`))

type promptData struct {
	ExerciseID string
	Policy     domain.LoadProgression
	Sets       []domain.WorkoutSet
	Hint       domain.OverloadHint
}

// buildPrompt renders the coaching prompt. Only the most recent
// maxPromptSets sets are included.
func buildPrompt(
	hint domain.OverloadHint,
	history []domain.WorkoutSet,
	policy domain.LoadProgression,
) (string, error) {
	if len(history) > maxPromptSets {
		history = history[len(history)-maxPromptSets:]
	}

	var buf bytes.Buffer
	err := promptTemplate.Execute(&buf, promptData{
		ExerciseID: hint.ExerciseID,
		Policy:     policy,
		Sets:       history,
		Hint:       hint,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}
