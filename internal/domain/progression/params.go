package progression

// Params defines all configurable thresholds of the progression rule
type Params struct {
	// LowEffortRPE is the highest RPE at which a linear policy still adds load
	LowEffortRPE float64

	// DefaultTargetReps applies when a policy does not set its own rep target
	DefaultTargetReps int

	// PercentageWindow is the number of most recent sets that must all meet
	// their rep target before a percentage policy adds load
	PercentageWindow int

	// RPEOvershoot is how far above targetRpe a set may land before an
	// rpe_based policy stops progressing
	RPEOvershoot float64

	// RepStep is the amount suggested with increase_reps
	RepStep float64
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
// Zero fields keep their defaults; the config layer rejects zero thresholds.
type ParamsConfig struct {
	LowEffortRPE      float64
	DefaultTargetReps int
	PercentageWindow  int
	RPEOvershoot      float64
	RepStep           float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		LowEffortRPE:      7,
		DefaultTargetReps: 8,
		PercentageWindow:  3,
		RPEOvershoot:      1,
		RepStep:           1,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.LowEffortRPE > 0 {
		params.LowEffortRPE = config.LowEffortRPE
	}
	if config.DefaultTargetReps > 0 {
		params.DefaultTargetReps = config.DefaultTargetReps
	}
	if config.PercentageWindow > 0 {
		params.PercentageWindow = config.PercentageWindow
	}
	if config.RPEOvershoot > 0 {
		params.RPEOvershoot = config.RPEOvershoot
	}
	if config.RepStep > 0 {
		params.RepStep = config.RepStep
	}

	return params
}
