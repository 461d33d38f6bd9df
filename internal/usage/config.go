package usage

import (
	"fmt"
	"time"

	"github.com/phrazzld/fitload/internal/config"
)

// ConfigFrom converts the application quota settings into a Config.
func ConfigFrom(q config.QuotaConfig) (Config, error) {
	location, err := time.LoadLocation(q.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid quota timezone %q: %w", q.Timezone, err)
	}
	return Config{
		FreeWorkoutLimit:    q.FreeWorkoutLimit,
		DailyAIRequestLimit: q.DailyAIRequestLimit,
		Location:            location,
	}, nil
}
