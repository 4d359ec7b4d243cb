package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pulsenet/internal/testutil"
)

func TestProbe_Feeder(t *testing.T) {
	path := writeNetwork(t, "feeder.txt", testutil.FeederText)

	out, err := execute(NewProbeCommand(testOpts("text")), path, "--watch", "dr", "--presses", "8")
	require.NoError(t, err)

	assert.Equal(t, "High pulses into dr over 8 presses\n  ia: [2 4 6 8]\n  ib: [4 8]\n", out)
}

func TestProbe_JSON(t *testing.T) {
	path := writeNetwork(t, "feeder.txt", testutil.FeederText)

	out, err := execute(NewProbeCommand(testOpts("json")), path, "--watch", "dr", "--presses", "3")
	require.NoError(t, err)

	var result ProbeResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "dr", result.Watch)
	assert.Equal(t, []SourceSightings{{Source: "ia", Presses: []int64{2}}}, result.Sources)
	assert.Equal(t, []string{"ib"}, result.Silent)
}

func TestProbe_HashMatchesTrace(t *testing.T) {
	path := writeNetwork(t, "feeder.txt", testutil.FeederText)

	out, err := execute(NewProbeCommand(testOpts("json")), path, "--watch", "dr", "--presses", "4", "--hash")
	require.NoError(t, err)
	var probed ProbeResult
	decodeResponse(t, out, &probed)

	out, err = execute(NewTraceCommand(testOpts("json")), path, "--presses", "4")
	require.NoError(t, err)
	var traced TraceResult
	decodeResponse(t, out, &traced)

	// The recorder and the probe both saw every delivery.
	assert.Equal(t, traced.Hash, probed.TraceHash)
	assert.Equal(t, traced.Stats.TotalDeliveries, probed.Deliveries)
	assert.Equal(t, []SourceSightings{
		{Source: "ia", Presses: []int64{2, 4}},
		{Source: "ib", Presses: []int64{4}},
	}, probed.Sources)
}

func TestProbe_Errors(t *testing.T) {
	path := writeNetwork(t, "feeder.txt", testutil.FeederText)

	t.Run("no_inputs", func(t *testing.T) {
		_, err := execute(NewProbeCommand(testOpts("text")), path, "--watch", "broadcaster")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("watch_required", func(t *testing.T) {
		_, err := execute(NewProbeCommand(testOpts("text")), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "watch")
	})

	t.Run("zero_presses", func(t *testing.T) {
		_, err := execute(NewProbeCommand(testOpts("text")), path, "--watch", "dr", "--presses", "0")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})
}
