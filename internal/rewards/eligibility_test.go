package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEligibility(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		owned     int
		eligible  int
		canMint   bool
		progress  int
	}{
		{name: "nothing done", completed: 0, owned: 0, eligible: 0, canMint: false, progress: 0},
		{name: "one task", completed: 1, owned: 0, eligible: 1, canMint: false, progress: 1},
		{name: "two tasks", completed: 2, owned: 0, eligible: 2, canMint: true, progress: 2},
		{name: "many tasks clamp progress", completed: 7, owned: 1, eligible: 5, canMint: true, progress: 2},
		{name: "all tasks spent", completed: 4, owned: 2, eligible: 0, canMint: false, progress: 0},
		{name: "tokens received from elsewhere", completed: 1, owned: 3, eligible: -5, canMint: false, progress: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := Eligibility(tt.completed, tt.owned)

			assert.Equal(t, tt.completed, status.Completed)
			assert.Equal(t, tt.owned, status.OwnedNFTs)
			assert.Equal(t, tt.eligible, status.EligibleTasks)
			assert.Equal(t, tt.canMint, status.CanMint)
			assert.Equal(t, tt.progress, status.Progress)
			assert.Equal(t, RequiredTasksPerMint, status.Required)
		})
	}
}
