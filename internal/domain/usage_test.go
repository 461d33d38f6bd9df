package domain

import (
	"testing"
	"time"
)

func TestNewUsageData(t *testing.T) {
	t.Parallel() // Enable parallel execution

	day := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	usage := NewUsageData(day)

	if usage.LastReset != "2026-03-14" {
		t.Errorf("Expected last reset 2026-03-14, got %s", usage.LastReset)
	}
	if usage.WorkoutsCreated != 0 || usage.AIRequests != 0 {
		t.Errorf("Expected zero counters, got %+v", usage)
	}
	if err := usage.Validate(); err != nil {
		t.Errorf("Expected fresh usage to be valid, got %v", err)
	}
}

func TestUsageDataValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	invalid := []UsageData{
		{WorkoutsCreated: -1, LastReset: "2026-03-14"},
		{AIRequests: -1, LastReset: "2026-03-14"},
		{LastReset: "Sat Mar 14 2026"},
	}
	for _, usage := range invalid {
		if err := usage.Validate(); err == nil {
			t.Errorf("Expected %+v to be invalid", usage)
		}
	}
}
