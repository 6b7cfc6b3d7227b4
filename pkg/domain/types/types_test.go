package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

func TestRunStatusValidation(t *testing.T) {
	tests := []struct {
		name     string
		status   types.RunStatus
		expected bool
	}{
		{"Valid running", types.RunStatusRunning, true},
		{"Valid succeeded", types.RunStatusSucceeded, true},
		{"Valid failed", types.RunStatusFailed, true},
		{"Invalid empty", types.RunStatus(""), false},
		{"Invalid mixed case", types.RunStatus("Failed"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.status.IsValid()
			if result != tt.expected {
				t.Errorf("RunStatus(%q).IsValid() = %v, want %v", tt.status, result, tt.expected)
			}
		})
	}
}

func TestSortOrderValidation(t *testing.T) {
	gt.True(t, types.SortAscending.IsValid())
	gt.True(t, types.SortDescending.IsValid())
	gt.False(t, types.SortOrder("descending").IsValid())
	gt.False(t, types.SortOrder("").IsValid())
}

func TestNewRunID(t *testing.T) {
	t.Run("generates unique IDs", func(t *testing.T) {
		seen := make(map[types.RunID]bool)
		for i := 0; i < 100; i++ {
			id := types.NewRunID()
			gt.False(t, seen[id])
			seen[id] = true
		}
	})

	t.Run("IDs are ordered by creation", func(t *testing.T) {
		first := types.NewRunID()
		second := types.NewRunID()
		gt.True(t, first.String() <= second.String())
	})
}
