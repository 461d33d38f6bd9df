package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// VariationKind identifies the training technique applied to a set.
type VariationKind string

// Possible variation kinds
const (
	VariationNormal     VariationKind = "normal"
	VariationDrop       VariationKind = "drop"
	VariationRestPause  VariationKind = "rest_pause"
	VariationCluster    VariationKind = "cluster"
	VariationMechanical VariationKind = "mechanical"
	VariationTempo      VariationKind = "tempo"
)

// VariationPayload is the auxiliary data carried by a non-normal variation.
// The set of implementations is closed: DropPayload, RestPausePayload,
// ClusterPayload, MechanicalPayload and TempoPayload.
type VariationPayload interface {
	Kind() VariationKind
	isVariationPayload()
}

// DropStep is one weight reduction inside a drop set.
type DropStep struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// DropPayload lists the successive reductions of a drop set.
type DropPayload struct {
	Steps []DropStep
}

// RestPausePayload lists the reps performed after each short pause.
type RestPausePayload struct {
	Reps []int
}

// ClusterPayload lists the intra-set rest durations in seconds.
type ClusterPayload struct {
	RestSeconds []int
}

// MechanicalPayload lists the technique changes (grip, stance, angle)
// performed to extend a set.
type MechanicalPayload struct {
	Steps []string
}

// TempoPayload holds the cadence pattern, e.g. "3-1-2-0"
// (eccentric, pause, concentric, pause).
type TempoPayload struct {
	Pattern string
}

func (DropPayload) Kind() VariationKind       { return VariationDrop }
func (RestPausePayload) Kind() VariationKind  { return VariationRestPause }
func (ClusterPayload) Kind() VariationKind    { return VariationCluster }
func (MechanicalPayload) Kind() VariationKind { return VariationMechanical }
func (TempoPayload) Kind() VariationKind      { return VariationTempo }

func (DropPayload) isVariationPayload()       {}
func (RestPausePayload) isVariationPayload()  {}
func (ClusterPayload) isVariationPayload()    {}
func (MechanicalPayload) isVariationPayload() {}
func (TempoPayload) isVariationPayload()      {}

// SetVariation is the technique applied to a single set. Payload must be nil
// for VariationNormal and must match Kind for every other kind.
type SetVariation struct {
	Kind    VariationKind
	Payload VariationPayload
}

// NormalVariation returns the variation of a plain straight set.
func NormalVariation() SetVariation {
	return SetVariation{Kind: VariationNormal}
}

// DropVariation builds a drop set variation.
func DropVariation(steps ...DropStep) SetVariation {
	return SetVariation{Kind: VariationDrop, Payload: DropPayload{Steps: steps}}
}

// RestPauseVariation builds a rest-pause variation.
func RestPauseVariation(reps ...int) SetVariation {
	return SetVariation{Kind: VariationRestPause, Payload: RestPausePayload{Reps: reps}}
}

// ClusterVariation builds a cluster set variation.
func ClusterVariation(restSeconds ...int) SetVariation {
	return SetVariation{Kind: VariationCluster, Payload: ClusterPayload{RestSeconds: restSeconds}}
}

// MechanicalVariation builds a mechanical drop variation.
func MechanicalVariation(steps ...string) SetVariation {
	return SetVariation{Kind: VariationMechanical, Payload: MechanicalPayload{Steps: steps}}
}

// TempoVariation builds a tempo variation.
func TempoVariation(pattern string) SetVariation {
	return SetVariation{Kind: VariationTempo, Payload: TempoPayload{Pattern: pattern}}
}

// variationJSON is the wire shape of a SetVariation.
// Slices are pointers so that an explicitly empty list survives decoding
// and can be rejected by validation instead of looking absent.
type variationJSON struct {
	Type              VariationKind `json:"type"`
	Drops             *[]DropStep   `json:"drops,omitempty"`
	RestPauseReps     *[]int        `json:"rest_pause_reps,omitempty"`
	ClusterRests      *[]int        `json:"cluster_rest_seconds,omitempty"`
	MechanicalChanges *[]string     `json:"mechanical_changes,omitempty"`
	Tempo             *string       `json:"tempo,omitempty"`
}

// MarshalJSON encodes the variation as {"type": ..., <payload field>: ...}.
func (v SetVariation) MarshalJSON() ([]byte, error) {
	out := variationJSON{Type: v.Kind}
	switch p := v.Payload.(type) {
	case nil:
	case DropPayload:
		out.Drops = &p.Steps
	case RestPausePayload:
		out.RestPauseReps = &p.Reps
	case ClusterPayload:
		out.ClusterRests = &p.RestSeconds
	case MechanicalPayload:
		out.MechanicalChanges = &p.Steps
	case TempoPayload:
		out.Tempo = &p.Pattern
	default:
		return nil, fmt.Errorf("unsupported variation payload %T", v.Payload)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the wire shape. A payload that does not belong to
// the declared type is kept so that ValidateVariation rejects it.
func (v *SetVariation) UnmarshalJSON(data []byte) error {
	var in variationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	var payloads []VariationPayload
	if in.Drops != nil {
		payloads = append(payloads, DropPayload{Steps: *in.Drops})
	}
	if in.RestPauseReps != nil {
		payloads = append(payloads, RestPausePayload{Reps: *in.RestPauseReps})
	}
	if in.ClusterRests != nil {
		payloads = append(payloads, ClusterPayload{RestSeconds: *in.ClusterRests})
	}
	if in.MechanicalChanges != nil {
		payloads = append(payloads, MechanicalPayload{Steps: *in.MechanicalChanges})
	}
	if in.Tempo != nil {
		payloads = append(payloads, TempoPayload{Pattern: *in.Tempo})
	}
	if len(payloads) > 1 {
		return NewValidationError("variation", "carries auxiliary data for %d technique kinds", len(payloads))
	}

	v.Kind = in.Type
	v.Payload = nil
	if len(payloads) == 1 {
		v.Payload = payloads[0]
	}
	return nil
}

// ValidateVariation checks the variation of a set before it is accepted into a
// workout phase. The set is returned unchanged on success; on failure a
// *ValidationError is returned and nothing is modified.
func ValidateVariation(set WorkoutSet) (WorkoutSet, error) {
	if err := validateVariation(set.Variation, set.Weight); err != nil {
		return WorkoutSet{}, err
	}
	return set, nil
}

func validateVariation(v SetVariation, setWeight float64) error {
	if v.Kind == VariationNormal {
		if v.Payload != nil {
			return NewValidationError("variation", "normal sets cannot carry %s data", v.Payload.Kind())
		}
		return nil
	}

	switch v.Kind {
	case VariationDrop, VariationRestPause, VariationCluster, VariationMechanical, VariationTempo:
	case "":
		return NewValidationError("variation.type", "is required")
	default:
		return NewValidationError("variation.type", "unknown variation kind %q", v.Kind)
	}

	if v.Payload == nil {
		return NewValidationError("variation", "%s sets require auxiliary data", v.Kind)
	}
	if v.Payload.Kind() != v.Kind {
		return NewValidationError("variation", "%s sets cannot carry %s data", v.Kind, v.Payload.Kind())
	}

	switch p := v.Payload.(type) {
	case DropPayload:
		return validateDrops(p.Steps, setWeight)
	case RestPausePayload:
		return validateNonNegative("variation.rest_pause_reps", p.Reps)
	case ClusterPayload:
		return validateNonNegative("variation.cluster_rest_seconds", p.RestSeconds)
	case MechanicalPayload:
		return validateMechanical(p.Steps)
	case TempoPayload:
		_, err := ParseTempo(p.Pattern)
		return err
	default:
		return NewValidationError("variation", "unsupported payload %T", v.Payload)
	}
}

func validateDrops(steps []DropStep, setWeight float64) error {
	if len(steps) == 0 {
		return NewValidationError("variation.drops", "at least one drop is required")
	}
	if !isFinite(setWeight) {
		return NewValidationError("weight", "must be a finite number")
	}
	previous := setWeight
	for i, step := range steps {
		field := fmt.Sprintf("variation.drops[%d]", i)
		if !isFinite(step.Weight) || step.Weight < 0 {
			return NewValidationError(field+".weight", "must be a non-negative number")
		}
		if step.Weight >= previous {
			return NewValidationError(field+".weight", "%.2f must be below the previous weight %.2f", step.Weight, previous)
		}
		if step.Reps < 0 {
			return NewValidationError(field+".reps", "must be non-negative")
		}
		previous = step.Weight
	}
	return nil
}

func validateNonNegative(field string, values []int) error {
	if len(values) == 0 {
		return NewValidationError(field, "at least one value is required")
	}
	for i, value := range values {
		if value < 0 {
			return NewValidationError(fmt.Sprintf("%s[%d]", field, i), "must be non-negative")
		}
	}
	return nil
}

func validateMechanical(steps []string) error {
	if len(steps) == 0 {
		return NewValidationError("variation.mechanical_changes", "at least one change is required")
	}
	for i, step := range steps {
		if strings.TrimSpace(step) == "" {
			return NewValidationError(fmt.Sprintf("variation.mechanical_changes[%d]", i), "cannot be blank")
		}
	}
	return nil
}

// TempoPhases is a decoded tempo pattern, in seconds.
type TempoPhases struct {
	Eccentric   int
	BottomPause int
	Concentric  int
	TopPause    int
}

// Total returns the duration of one repetition in seconds.
func (t TempoPhases) Total() int {
	return t.Eccentric + t.BottomPause + t.Concentric + t.TopPause
}

// ParseTempo decodes a tempo pattern into its four phase durations.
// Accepted forms are four separated integers ("3-1-2-0", "3:1:2:0", "3 1 2 0")
// or four bare digits ("3120").
func ParseTempo(pattern string) (TempoPhases, error) {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" {
		return TempoPhases{}, NewValidationError("variation.tempo", "cannot be empty")
	}

	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '-' || r == ':' || r == ' ' || r == '/'
	})
	if len(parts) == 1 && len(parts[0]) == 4 {
		parts = strings.Split(parts[0], "")
	}
	if len(parts) != 4 {
		return TempoPhases{}, NewValidationError("variation.tempo", "%q must have exactly four phases", pattern)
	}

	var values [4]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return TempoPhases{}, NewValidationError("variation.tempo", "phase %d of %q is not an integer", i+1, pattern)
		}
		if n < 0 {
			return TempoPhases{}, NewValidationError("variation.tempo", "phase %d of %q must be non-negative", i+1, pattern)
		}
		values[i] = n
	}

	return TempoPhases{
		Eccentric:   values[0],
		BottomPause: values[1],
		Concentric:  values[2],
		TopPause:    values[3],
	}, nil
}
