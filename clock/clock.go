// Package clock drives a cpu.CPU one cycle at a time. Each instruction's
// effects are applied atomically the moment it is fetched; the cycles
// that follow are a pure accounting delay so that callers ticking one
// cycle at a time see the right number of ticks elapse per instruction.
package clock

import "github.com/go6502/emu6502/cpu"

// Clock wraps a CPU with a pending-cycle counter. It holds no bus state
// of its own: cpu.CPU.Step does the fetch/decode/execute/cycle-cost work,
// and Clock only tracks how many more ticks are owed before the next
// Step is allowed to run.
type Clock struct {
	CPU *cpu.CPU

	// Pending is the number of ticks still owed by the in-flight
	// instruction, not counting the tick that just ran.
	Pending int

	resetDone bool
}

// New returns a Clock driving c, with reset deferred to the first Tick.
func New(c *cpu.CPU) *Clock {
	return &Clock{CPU: c}
}

// Tick advances the clock by one cycle. On the very first call it
// performs the power-on reset sequence (loading PC from the reset
// vector) before doing anything else. If an instruction is still
// in flight, it decrements the pending-cycle count; otherwise it fetches
// and executes the next instruction and pre-charges its total cost.
func (cl *Clock) Tick() {
	if !cl.resetDone {
		cl.CPU.Reset()
		cl.resetDone = true
	}

	if cl.Pending > 0 {
		cl.Pending--
		return
	}

	cost := cl.CPU.Step()
	cl.Pending = cost - 1
}

// Run advances the clock by n cycles, one Tick at a time.
func (cl *Clock) Run(n int) {
	for i := 0; i < n; i++ {
		cl.Tick()
	}
}
