package profiling

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackAccumulatesPerFrame(t *testing.T) {
	ResetFrame()
	for i := 0; i < 3; i++ {
		stop := Track("test.Op")
		time.Sleep(time.Millisecond)
		stop()
	}
	assert.Equal(t, 3, Count("test.Op"))
	assert.GreaterOrEqual(t, Snapshot()["test.Op"], 3*time.Millisecond)

	ResetFrame()
	assert.Empty(t, Snapshot())
	assert.Equal(t, 0, Count("test.Op"))
}

func TestTopN(t *testing.T) {
	ResetFrame()
	mu.Lock()
	frameTotals["a"] = 4200 * time.Microsecond
	frameTotals["b"] = 2 * time.Millisecond
	frameTotals["c"] = 100 * time.Microsecond
	mu.Unlock()

	assert.Equal(t, "a:4.2ms, b:2ms", TopN(2))
	assert.Equal(t, 3, len(strings.Split(TopN(10), ", ")))
	ResetFrame()
}

func TestSummaryObserved(t *testing.T) {
	Track("test.Summary")()

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(Collector()))
	families, err := reg.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range families {
		if mf.GetName() != "blockworld_operation_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "op" && l.GetValue() == "test.Summary" {
					found = true
					assert.GreaterOrEqual(t, m.GetSummary().GetSampleCount(), uint64(1))
				}
			}
		}
	}
	assert.True(t, found, "summary for test.Summary not gathered")
}
