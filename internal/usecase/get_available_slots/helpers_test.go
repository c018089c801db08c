package get_available_slots

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberSlots/pkg/types"
)

func mustRange(t *testing.T, raw string) types.TimeRange {
	t.Helper()
	r, err := types.ParseTimeRange(raw)
	require.NoError(t, err)
	return r
}
