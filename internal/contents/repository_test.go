package contents

import (
	"strings"
	"testing"
)

func TestResetProgressMatchesIdleShape(t *testing.T) {
	resets := []string{
		"status = 'idle'",
		"total_blocks = 0",
		"processed_blocks = 0",
		"current_batch = 0",
		"total_batches = 0",
		"total_classified = 0",
		"error = NULL",
	}

	for _, want := range resets {
		if !strings.Contains(resetProgressSQL, want) {
			t.Errorf("progress reset missing %q", want)
		}
	}
}
