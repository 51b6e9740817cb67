// Package disassemble renders a walk of the address space as human
// readable 6502 assembly, sharing cpu's decode table rather than keeping
// its own copy of the mnemonic/mode list.
package disassemble

import (
	"fmt"

	"github.com/go6502/emu6502/cpu"
	"github.com/go6502/emu6502/memory"
)

// Line is one disassembled instruction: its address, the raw bytes it
// occupies, and the formatted "MNEM OPERAND" text.
type Line struct {
	Addr  uint16
	Bytes []uint8
	Text  string
}

// Range walks mem starting at pc, disassembling n instructions in
// address order. Address arithmetic wraps modulo 0x10000, per the
// DisassembleOutOfRange policy: a walk that runs off the end of the
// address space continues from 0x0000 and still stops after n lines.
func Range(mem *memory.AddressSpace, pc uint16, n int) []Line {
	lines := make([]Line, 0, n)
	for i := 0; i < n; i++ {
		line, length := step(mem, pc)
		lines = append(lines, line)
		pc += uint16(length)
	}
	return lines
}

// step disassembles the single instruction at pc and returns it along
// with the number of bytes it occupies.
func step(mem *memory.AddressSpace, pc uint16) (Line, int) {
	op := mem.Read(pc)
	mnemonic, ok := cpu.Mnemonic(op)
	if !ok {
		return Line{Addr: pc, Bytes: []uint8{op}, Text: "???"}, 1
	}

	mode, _ := cpu.Mode(op)
	n := cpu.OperandBytes(mode)
	if mnemonic == "BRK" {
		// BRK is encoded as its opcode plus one signature byte that
		// execution skips over (cpu.iBRK bumps PC past it); ModeImplied
		// reports 0 operand bytes since nothing there feeds an operand,
		// but the walk still has to step past it like the teacher's own
		// disassembler does, or every instruction after a BRK comes out
		// misaligned by one byte.
		n = 1
	}
	raw := make([]uint8, 0, n+1)
	raw = append(raw, op)
	for i := 0; i < n; i++ {
		raw = append(raw, mem.Read(pc+1+uint16(i)))
	}

	text := mnemonic
	if mnemonic != "BRK" {
		if operand := operandText(mem, pc, mode, raw[1:]); operand != "" {
			text += " " + operand
		}
	}
	return Line{Addr: pc, Bytes: raw, Text: text}, 1 + n
}

// operandText formats the operand portion of a disassembled instruction
// per addressing mode. raw holds the 0, 1 or 2 operand bytes already read
// from the instruction stream (not including the opcode byte).
func operandText(mem *memory.AddressSpace, pc uint16, mode cpu.AddrMode, raw []uint8) string {
	switch mode {
	case cpu.ModeImplied:
		return ""
	case cpu.ModeAccumulator:
		return "A"
	case cpu.ModeImmediate:
		return fmt.Sprintf("#$%02X", raw[0])
	case cpu.ModeZeroPage:
		return fmt.Sprintf("$%02X", raw[0])
	case cpu.ModeZeroPageX:
		return fmt.Sprintf("$%02X,X", raw[0])
	case cpu.ModeZeroPageY:
		return fmt.Sprintf("$%02X,Y", raw[0])
	case cpu.ModeIndirectX:
		return fmt.Sprintf("($%02X,X)", raw[0])
	case cpu.ModeIndirectY:
		return fmt.Sprintf("($%02X),Y", raw[0])
	case cpu.ModeRelative:
		offset := int8(raw[0])
		target := uint16(int32(pc+2) + int32(offset))
		return fmt.Sprintf("$%04X", target)
	case cpu.ModeAbsolute:
		return fmt.Sprintf("$%04X", word(raw))
	case cpu.ModeAbsoluteX:
		return fmt.Sprintf("$%04X,X", word(raw))
	case cpu.ModeAbsoluteY:
		return fmt.Sprintf("$%04X,Y", word(raw))
	case cpu.ModeIndirect:
		return fmt.Sprintf("($%04X)", word(raw))
	default:
		return ""
	}
}

func word(raw []uint8) uint16 {
	return uint16(raw[1])<<8 | uint16(raw[0])
}

// Format renders a Line in the "AAAA  BB [BB [BB]]  MNEM OPERAND" layout,
// byte columns padded to a fixed 3-byte width so a walked listing lines
// up regardless of instruction length.
func Format(l Line) string {
	cols := [3]string{"  ", "  ", "  "}
	for i, b := range l.Bytes {
		cols[i] = fmt.Sprintf("%02X", b)
	}
	return fmt.Sprintf("%04X  %s %s %s  %s", l.Addr, cols[0], cols[1], cols[2], l.Text)
}
