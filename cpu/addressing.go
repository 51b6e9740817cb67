package cpu

// AddrMode identifies one of the 13 addressing modes an opcode can use.
type AddrMode int

const (
	ModeImplied AddrMode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeRelative
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX
	ModeIndirectY
)

// operandBytes gives the number of operand bytes each mode consumes
// following the opcode byte. The disassembler uses this to know how many
// bytes to print and how far to advance.
var operandBytes = map[AddrMode]int{
	ModeImplied:     0,
	ModeAccumulator: 0,
	ModeImmediate:   1,
	ModeZeroPage:    1,
	ModeZeroPageX:   1,
	ModeZeroPageY:   1,
	ModeRelative:    1,
	ModeAbsolute:    2,
	ModeAbsoluteX:   2,
	ModeAbsoluteY:   2,
	ModeIndirect:    2,
	ModeIndirectX:   1,
	ModeIndirectY:   1,
}

// OperandBytes returns the number of operand bytes mode consumes.
func OperandBytes(mode AddrMode) int {
	return operandBytes[mode]
}

// Operand is the resolved target of an instruction: an effective address
// (or, for Accumulator/Implied, a marker that there is no memory target)
// plus whatever a given instruction needs to compute its cycle cost.
// For every mode where the operand is a single byte read directly from
// the instruction stream (Immediate), Addr points at that byte's own
// location, so reading through Memory.Read(Addr) is always the right way
// to fetch the operand's value.
type Operand struct {
	Mode        AddrMode
	Addr        uint16
	Accumulator bool
	Implied     bool
	PageCrossed bool
}

// readWordJMPIndirect reproduces the 6502's JMP-indirect page-wrap bug:
// if the pointer's low byte is 0xFF, the high byte of the target is
// fetched from the start of the same page instead of the next page.
func (c *CPU) readWordJMPIndirect(ptr uint16) uint16 {
	lo := c.Memory.Read(ptr)
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := c.Memory.Read(hiAddr)
	return uint16(hi)<<8 | uint16(lo)
}

// resolve evaluates mode against the instruction stream starting at c.PC
// (which points just past the opcode byte) and returns the resolved
// operand plus the number of operand bytes consumed.
func (c *CPU) resolve(mode AddrMode) (Operand, int) {
	pc := c.PC
	switch mode {
	case ModeImplied:
		return Operand{Mode: mode, Implied: true}, 0

	case ModeAccumulator:
		return Operand{Mode: mode, Accumulator: true}, 0

	case ModeImmediate:
		return Operand{Mode: mode, Addr: pc}, 1

	case ModeZeroPage:
		zp := c.Memory.Read(pc)
		return Operand{Mode: mode, Addr: uint16(zp)}, 1

	case ModeZeroPageX:
		zp := c.Memory.Read(pc) + c.X
		return Operand{Mode: mode, Addr: uint16(zp)}, 1

	case ModeZeroPageY:
		zp := c.Memory.Read(pc) + c.Y
		return Operand{Mode: mode, Addr: uint16(zp)}, 1

	case ModeRelative:
		offset := int8(c.Memory.Read(pc))
		next := pc + 1 // address of the instruction following this branch
		target := uint16(int32(next) + int32(offset))
		crossed := next&0xFF00 != target&0xFF00
		return Operand{Mode: mode, Addr: target, PageCrossed: crossed}, 1

	case ModeAbsolute:
		addr := c.Memory.ReadWord(pc)
		return Operand{Mode: mode, Addr: addr}, 2

	case ModeAbsoluteX:
		base := c.Memory.ReadWord(pc)
		addr := base + uint16(c.X)
		crossed := base&0xFF00 != addr&0xFF00
		return Operand{Mode: mode, Addr: addr, PageCrossed: crossed}, 2

	case ModeAbsoluteY:
		base := c.Memory.ReadWord(pc)
		addr := base + uint16(c.Y)
		crossed := base&0xFF00 != addr&0xFF00
		return Operand{Mode: mode, Addr: addr, PageCrossed: crossed}, 2

	case ModeIndirect:
		ptr := c.Memory.ReadWord(pc)
		addr := c.readWordJMPIndirect(ptr)
		return Operand{Mode: mode, Addr: addr}, 2

	case ModeIndirectX:
		zp := c.Memory.Read(pc) + c.X
		lo := c.Memory.Read(uint16(zp))
		hi := c.Memory.Read(uint16(zp + 1))
		addr := uint16(hi)<<8 | uint16(lo)
		return Operand{Mode: mode, Addr: addr}, 1

	case ModeIndirectY:
		zp := c.Memory.Read(pc)
		lo := c.Memory.Read(uint16(zp))
		hi := c.Memory.Read(uint16(zp + 1))
		base := uint16(hi)<<8 | uint16(lo)
		addr := base + uint16(c.Y)
		crossed := base&0xFF00 != addr&0xFF00
		return Operand{Mode: mode, Addr: addr, PageCrossed: crossed}, 1

	default:
		panic("cpu: unknown addressing mode")
	}
}
