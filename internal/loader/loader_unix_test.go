//go:build unix

package loader

import (
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligible_RejectsFIFO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipe.yaml")
	require.NoError(t, syscall.Mkfifo(path, 0644))

	// Reading a FIFO without a writer blocks forever.
	assert.False(t, Eligible(path))
}
