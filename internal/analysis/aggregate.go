package analysis

import (
	"github.com/roach88/pulsenet/internal/engine"
	"github.com/roach88/pulsenet/internal/ir"
)

// ButtonPresses is the number of presses in a warm-up run.
const ButtonPresses = 1000

// PressButton sends presses Low pulses into the broadcaster, one full
// settle at a time, and returns the summed counts.
func PressButton(m *engine.Machine, presses int) ir.Counts {
	return Press(m, ir.Low, ir.BroadcasterName, presses)
}

// CheckEntry reports whether entry can receive button presses. A Nand only
// accepts pulses from its wired inputs, so it cannot be pressed directly.
func CheckEntry(m *engine.Machine, entry string) error {
	if kind, ok := m.Kind(entry); ok && kind == ir.KindNand {
		return &AnalysisError{
			Code:    ErrCodeInvalidEntry,
			Message: "a nand module cannot be pressed directly",
			Module:  entry,
		}
	}
	return nil
}

// Press sends p into entry presses times and returns the summed counts.
// entry must pass CheckEntry.
func Press(m *engine.Machine, p ir.Pulse, entry string, presses int) ir.Counts {
	var total ir.Counts
	for i := 0; i < presses; i++ {
		total = total.Add(m.SendPulse(p, entry))
	}
	return total
}

// WarmUp presses the button ButtonPresses times and returns the summed
// counts.
func WarmUp(m *engine.Machine) ir.Counts {
	return PressButton(m, ButtonPresses)
}

// PulseProduct returns total Low × total High over a warm-up run.
func PulseProduct(m *engine.Machine) uint64 {
	return WarmUp(m).Product()
}
