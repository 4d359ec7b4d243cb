package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pulsenet/internal/engine"
	"github.com/roach88/pulsenet/internal/ir"
	"github.com/roach88/pulsenet/internal/testutil"
)

func TestWatch_FeederSources(t *testing.T) {
	m := newMachine(t, testutil.Feeder())

	probe := Watch(m, "dr", 8)

	assert.Equal(t, []Sighting{
		{Press: 2, Source: "ia"},
		{Press: 4, Source: "ia"},
		{Press: 4, Source: "ib"},
		{Press: 6, Source: "ia"},
		{Press: 8, Source: "ia"},
		{Press: 8, Source: "ib"},
	}, probe.Sightings())

	order, presses := probe.BySource()
	assert.Equal(t, []string{"ia", "ib"}, order)
	assert.Equal(t, []int64{2, 4, 6, 8}, presses["ia"])
	assert.Equal(t, []int64{4, 8}, presses["ib"])
}

func TestWatch_PeriodsGiveFirstLowPress(t *testing.T) {
	m := newMachine(t, testutil.Feeder())

	topo, err := InspectTarget(m, DefaultTarget)
	require.NoError(t, err)

	probe := Watch(m.Clone(), topo.Feeder, 8)
	_, presses := probe.BySource()

	periods := make([]uint64, 0, len(topo.Sources))
	for _, source := range topo.Sources {
		require.NotEmpty(t, presses[source], "no sighting for %s", source)
		periods = append(periods, uint64(presses[source][0]))
	}
	first, err := LCM(periods...)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), first)

	// Confirm by direct simulation: rx sees Low first on press 4.
	var lowAt int64
	m.SetObserver(engine.ObserverFunc(func(d engine.Delivery) {
		if lowAt == 0 && d.Destination == DefaultTarget && d.Pulse == ir.Low {
			lowAt = d.Trigger
		}
	}))
	PressButton(m, 8)
	assert.Equal(t, int64(first), lowAt)
}

func TestWatch_RemovesProbe(t *testing.T) {
	m := newMachine(t, testutil.Feeder())

	Watch(m, "dr", 2)
	assert.Nil(t, m.Observer())
}

func TestWatch_KeepsInstalledObserver(t *testing.T) {
	m := newMachine(t, testutil.Feeder())
	rec := engine.NewRecorder("session-1")
	m.SetObserver(rec)

	counts := PressButton(m.Clone(), 4)
	probe := Watch(m, "dr", 4)

	assert.Len(t, rec.Deliveries(), int(counts.Total()))
	assert.NotEmpty(t, probe.Sightings())
	assert.Same(t, rec, m.Observer())
}

func TestProbe_IgnoresLowAndOtherModules(t *testing.T) {
	p := NewProbe("dr")

	p.Observe(engine.Delivery{Trigger: 1, Pulse: ir.Low, Source: "ia", Destination: "dr"})
	p.Observe(engine.Delivery{Trigger: 1, Pulse: ir.High, Source: "ca", Destination: "ia"})
	p.Observe(engine.Delivery{Trigger: 2, Pulse: ir.High, Source: "ia", Destination: "dr"})
	p.Observe(engine.Delivery{Trigger: 2, Pulse: ir.High, Source: "ia", Destination: "dr"})

	assert.Len(t, p.Sightings(), 2)

	_, presses := p.BySource()
	assert.Equal(t, []int64{2}, presses["ia"])
}
