package analysis

import (
	"github.com/roach88/pulsenet/internal/engine"
	"github.com/roach88/pulsenet/internal/ir"
)

// Sighting is one High pulse delivered into the watched module.
type Sighting struct {
	Press  int64  `json:"press"`
	Source string `json:"source"`
}

// Probe is an engine.Observer that records every High pulse delivered to
// one module. It makes no inference from what it records.
type Probe struct {
	Watch string

	sightings []Sighting
}

// NewProbe creates a probe watching the named module.
func NewProbe(watch string) *Probe {
	return &Probe{Watch: watch}
}

// Observe records d if it is a High pulse into the watched module.
func (p *Probe) Observe(d engine.Delivery) {
	if d.Destination != p.Watch || d.Pulse != ir.High {
		return
	}
	p.sightings = append(p.sightings, Sighting{Press: d.Trigger, Source: d.Source})
}

// Sightings returns every recording in delivery order.
func (p *Probe) Sightings() []Sighting {
	return p.sightings
}

// BySource groups the presses of each source's sightings, deduplicating
// repeated sightings within one press. Sources appear in the order of
// their first sighting.
func (p *Probe) BySource() ([]string, map[string][]int64) {
	var order []string
	presses := make(map[string][]int64)
	for _, s := range p.sightings {
		list, seen := presses[s.Source]
		if !seen {
			order = append(order, s.Source)
		}
		if len(list) > 0 && list[len(list)-1] == s.Press {
			continue
		}
		presses[s.Source] = append(list, s.Press)
	}
	return order, presses
}

// Watch presses the button presses times with a probe attached to the
// machine and returns the probe. An observer already installed keeps
// receiving every delivery, ahead of the probe, and is left installed
// afterwards.
func Watch(m *engine.Machine, module string, presses int) *Probe {
	probe := NewProbe(module)
	prev := m.Observer()
	if prev != nil {
		m.SetObserver(engine.Observers{prev, probe})
	} else {
		m.SetObserver(probe)
	}
	defer m.SetObserver(prev)

	PressButton(m, presses)
	return probe
}
