package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	known := []string{"pending", "running", "stopping", "stopped", "shutting-down", "terminated"}
	for _, name := range known {
		status, err := ParseStatus(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, status.String())
	}
}

func TestParseStatus_Unknown(t *testing.T) {
	for _, name := range []string{"", "rebooting", "Running", "STOPPED"} {
		_, err := ParseStatus(name)
		assert.Error(t, err, name)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusTerminated.Terminal())
	for _, s := range []Status{StatusPending, StatusRunning, StatusStopping, StatusStopped, StatusShuttingDown} {
		assert.False(t, s.Terminal(), s)
	}
}
