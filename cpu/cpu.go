// Package cpu implements the MOS 6502 register file, addressing modes,
// instruction decode table and per-instruction execution semantics.
package cpu

import "github.com/go6502/emu6502/memory"

// Flag bit positions within the status register P.
const (
	FlagC = uint8(0x01) // Carry
	FlagZ = uint8(0x02) // Zero
	FlagI = uint8(0x04) // Interrupt disable
	FlagD = uint8(0x08) // Decimal mode
	FlagB = uint8(0x10) // Break, only meaningful in a pushed copy of P
	FlagU = uint8(0x20) // Unused, always read back as 1
	FlagV = uint8(0x40) // Overflow
	FlagN = uint8(0x80) // Negative
)

// Vector addresses read on reset and on IRQ/BRK.
const (
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// CPU holds the full architectural state of one 6502 core: the register
// file plus a pointer to the address space it executes against. There is
// no cycle-by-cycle bus state here; Step executes one instruction to
// completion and reports how many cycles it took.
type CPU struct {
	A  uint8
	X  uint8
	Y  uint8
	S  uint8
	P  uint8
	PC uint16

	Memory *memory.AddressSpace
}

// New returns a CPU wired to mem, powered on per PowerOn.
func New(mem *memory.AddressSpace) *CPU {
	c := &CPU{Memory: mem}
	c.PowerOn()
	return c
}

// PowerOn sets the register file to its documented cold-start state. PC is
// left at 0; callers load a ROM and call Reset to pick up the reset vector.
func (c *CPU) PowerOn() {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = 0xFD
	c.P = FlagU | FlagI
	c.PC = 0
}

// Reset loads PC from the reset vector and restores the documented
// post-reset register state, as if the reset line had just been pulsed.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = 0xFD
	c.P = FlagU | FlagI
	c.PC = c.Memory.ReadWord(ResetVector)
}

// setFlag sets or clears flag in P depending on cond.
func (c *CPU) setFlag(flag uint8, cond bool) {
	if cond {
		c.P |= flag
		return
	}
	c.P &^= flag
}

// setZN sets the Zero and Negative flags from val, the common tail of
// almost every load, transfer and arithmetic instruction.
func (c *CPU) setZN(val uint8) {
	c.setFlag(FlagZ, val == 0)
	c.setFlag(FlagN, val&0x80 != 0)
}

// carryCheck sets Carry from a 9-bit-or-wider addition result.
func (c *CPU) carryCheck(sum uint16) {
	c.setFlag(FlagC, sum >= 0x100)
}

// overflowCheck sets Overflow per the standard two's-complement signed
// overflow test: set when the operands share a sign and the result's sign
// differs from theirs.
func (c *CPU) overflowCheck(a, b, res uint8) {
	c.setFlag(FlagV, (a^res)&(b^res)&0x80 != 0)
}

// push writes val to the stack page and decrements S, wrapping mod 256.
func (c *CPU) push(val uint8) {
	c.Memory.Write(0x0100+uint16(c.S), val)
	c.S--
}

// pop increments S, wrapping mod 256, and reads the stack page.
func (c *CPU) pop() uint8 {
	c.S++
	return c.Memory.Read(0x0100 + uint16(c.S))
}

// read fetches the operand's value, from the accumulator or from memory.
func (c *CPU) read(op Operand) uint8 {
	if op.Accumulator {
		return c.A
	}
	return c.Memory.Read(op.Addr)
}

// write stores val to wherever op points, the accumulator or memory.
func (c *CPU) write(op Operand, val uint8) {
	if op.Accumulator {
		c.A = val
		return
	}
	c.Memory.Write(op.Addr, val)
}

// compare implements the CMP/CPX/CPY family: an internal subtraction that
// sets C, Z and N without storing a result anywhere.
func (c *CPU) compare(reg, val uint8) {
	diff := reg - val
	c.setFlag(FlagC, reg >= val)
	c.setFlag(FlagZ, reg == val)
	c.setFlag(FlagN, diff&0x80 != 0)
}

// branch implements the conditional-branch family: no-op when cond is
// false, otherwise jumps to op.Addr and reports the taken/page-cross
// cycle bonus.
func (c *CPU) branch(cond bool, op Operand) int {
	if !cond {
		return 0
	}
	c.PC = op.Addr
	if op.PageCrossed {
		return 2
	}
	return 1
}
