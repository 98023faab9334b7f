package motion_test

import (
	"testing"
	"time"

	"github.com/ganot/committee/internal/domain/motion"
	"github.com/stretchr/testify/require"
)

func TestMotion_ResolveOnce(t *testing.T) {
	m := &motion.Motion{Status: motion.StatusPending}
	now := time.Now()

	require.ErrorIs(t, m.Resolve(motion.StatusPending, now), motion.ErrInvalidTransition)
	require.NoError(t, m.Resolve(motion.StatusTabled, now))
	require.Equal(t, motion.StatusTabled, m.Status)
	require.NotNil(t, m.ResolvedAt)

	require.ErrorIs(t, m.Resolve(motion.StatusAccepted, now), motion.ErrAlreadyResolved)
	require.Equal(t, motion.StatusTabled, m.Status)
}
