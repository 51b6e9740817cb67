package cpu

// opcode is one row of the decode table: everything Step needs to know
// to fetch an operand, run its semantics and count cycles.
type opcode struct {
	mnemonic  string
	mode      AddrMode
	cycles    int
	pageCross bool // base cycles bump by 1 on a crossed page for read-style addressing
	exec      Exec
}

// decodeTable is the full 256-entry opcode space. Slots left at the zero
// value are the 105 undocumented/illegal opcodes this core does not
// implement; Step treats them as a 1-byte, 2-cycle no-op (see Step below)
// and the disassembler renders them as "???".
var decodeTable = [256]opcode{
	0x00: {"BRK", ModeImplied, 7, false, iBRK},
	0x01: {"ORA", ModeIndirectX, 6, false, iORA},
	0x05: {"ORA", ModeZeroPage, 3, false, iORA},
	0x06: {"ASL", ModeZeroPage, 5, false, iASL},
	0x08: {"PHP", ModeImplied, 3, false, iPHP},
	0x09: {"ORA", ModeImmediate, 2, false, iORA},
	0x0A: {"ASL", ModeAccumulator, 2, false, iASL},
	0x0D: {"ORA", ModeAbsolute, 4, false, iORA},
	0x0E: {"ASL", ModeAbsolute, 6, false, iASL},
	0x10: {"BPL", ModeRelative, 2, false, iBPL},
	0x11: {"ORA", ModeIndirectY, 5, true, iORA},
	0x15: {"ORA", ModeZeroPageX, 4, false, iORA},
	0x16: {"ASL", ModeZeroPageX, 6, false, iASL},
	0x18: {"CLC", ModeImplied, 2, false, iCLC},
	0x19: {"ORA", ModeAbsoluteY, 4, true, iORA},
	0x1D: {"ORA", ModeAbsoluteX, 4, true, iORA},
	0x1E: {"ASL", ModeAbsoluteX, 7, false, iASL},

	0x20: {"JSR", ModeAbsolute, 6, false, iJSR},
	0x21: {"AND", ModeIndirectX, 6, false, iAND},
	0x24: {"BIT", ModeZeroPage, 3, false, iBIT},
	0x25: {"AND", ModeZeroPage, 3, false, iAND},
	0x26: {"ROL", ModeZeroPage, 5, false, iROL},
	0x28: {"PLP", ModeImplied, 4, false, iPLP},
	0x29: {"AND", ModeImmediate, 2, false, iAND},
	0x2A: {"ROL", ModeAccumulator, 2, false, iROL},
	0x2C: {"BIT", ModeAbsolute, 4, false, iBIT},
	0x2D: {"AND", ModeAbsolute, 4, false, iAND},
	0x2E: {"ROL", ModeAbsolute, 6, false, iROL},
	0x30: {"BMI", ModeRelative, 2, false, iBMI},
	0x31: {"AND", ModeIndirectY, 5, true, iAND},
	0x35: {"AND", ModeZeroPageX, 4, false, iAND},
	0x36: {"ROL", ModeZeroPageX, 6, false, iROL},
	0x38: {"SEC", ModeImplied, 2, false, iSEC},
	0x39: {"AND", ModeAbsoluteY, 4, true, iAND},
	0x3D: {"AND", ModeAbsoluteX, 4, true, iAND},
	0x3E: {"ROL", ModeAbsoluteX, 7, false, iROL},

	0x40: {"RTI", ModeImplied, 6, false, iRTI},
	0x41: {"EOR", ModeIndirectX, 6, false, iEOR},
	0x45: {"EOR", ModeZeroPage, 3, false, iEOR},
	0x46: {"LSR", ModeZeroPage, 5, false, iLSR},
	0x48: {"PHA", ModeImplied, 3, false, iPHA},
	0x49: {"EOR", ModeImmediate, 2, false, iEOR},
	0x4A: {"LSR", ModeAccumulator, 2, false, iLSR},
	0x4C: {"JMP", ModeAbsolute, 3, false, iJMP},
	0x4D: {"EOR", ModeAbsolute, 4, false, iEOR},
	0x4E: {"LSR", ModeAbsolute, 6, false, iLSR},
	0x50: {"BVC", ModeRelative, 2, false, iBVC},
	0x51: {"EOR", ModeIndirectY, 5, true, iEOR},
	0x55: {"EOR", ModeZeroPageX, 4, false, iEOR},
	0x56: {"LSR", ModeZeroPageX, 6, false, iLSR},
	0x58: {"CLI", ModeImplied, 2, false, iCLI},
	0x59: {"EOR", ModeAbsoluteY, 4, true, iEOR},
	0x5D: {"EOR", ModeAbsoluteX, 4, true, iEOR},
	0x5E: {"LSR", ModeAbsoluteX, 7, false, iLSR},

	0x60: {"RTS", ModeImplied, 6, false, iRTS},
	0x61: {"ADC", ModeIndirectX, 6, false, iADC},
	0x65: {"ADC", ModeZeroPage, 3, false, iADC},
	0x66: {"ROR", ModeZeroPage, 5, false, iROR},
	0x68: {"PLA", ModeImplied, 4, false, iPLA},
	0x69: {"ADC", ModeImmediate, 2, false, iADC},
	0x6A: {"ROR", ModeAccumulator, 2, false, iROR},
	0x6C: {"JMP", ModeIndirect, 5, false, iJMP},
	0x6D: {"ADC", ModeAbsolute, 4, false, iADC},
	0x6E: {"ROR", ModeAbsolute, 6, false, iROR},
	0x70: {"BVS", ModeRelative, 2, false, iBVS},
	0x71: {"ADC", ModeIndirectY, 5, true, iADC},
	0x75: {"ADC", ModeZeroPageX, 4, false, iADC},
	0x76: {"ROR", ModeZeroPageX, 6, false, iROR},
	0x78: {"SEI", ModeImplied, 2, false, iSEI},
	0x79: {"ADC", ModeAbsoluteY, 4, true, iADC},
	0x7D: {"ADC", ModeAbsoluteX, 4, true, iADC},
	0x7E: {"ROR", ModeAbsoluteX, 7, false, iROR},

	0x81: {"STA", ModeIndirectX, 6, false, iSTA},
	0x84: {"STY", ModeZeroPage, 3, false, iSTY},
	0x85: {"STA", ModeZeroPage, 3, false, iSTA},
	0x86: {"STX", ModeZeroPage, 3, false, iSTX},
	0x88: {"DEY", ModeImplied, 2, false, iDEY},
	0x8A: {"TXA", ModeImplied, 2, false, iTXA},
	0x8C: {"STY", ModeAbsolute, 4, false, iSTY},
	0x8D: {"STA", ModeAbsolute, 4, false, iSTA},
	0x8E: {"STX", ModeAbsolute, 4, false, iSTX},
	0x90: {"BCC", ModeRelative, 2, false, iBCC},
	0x91: {"STA", ModeIndirectY, 6, false, iSTA},
	0x94: {"STY", ModeZeroPageX, 4, false, iSTY},
	0x95: {"STA", ModeZeroPageX, 4, false, iSTA},
	0x96: {"STX", ModeZeroPageY, 4, false, iSTX},
	0x98: {"TYA", ModeImplied, 2, false, iTYA},
	0x99: {"STA", ModeAbsoluteY, 5, false, iSTA},
	0x9A: {"TXS", ModeImplied, 2, false, iTXS},
	0x9D: {"STA", ModeAbsoluteX, 5, false, iSTA},

	0xA0: {"LDY", ModeImmediate, 2, false, iLDY},
	0xA1: {"LDA", ModeIndirectX, 6, false, iLDA},
	0xA2: {"LDX", ModeImmediate, 2, false, iLDX},
	0xA4: {"LDY", ModeZeroPage, 3, false, iLDY},
	0xA5: {"LDA", ModeZeroPage, 3, false, iLDA},
	0xA6: {"LDX", ModeZeroPage, 3, false, iLDX},
	0xA8: {"TAY", ModeImplied, 2, false, iTAY},
	0xA9: {"LDA", ModeImmediate, 2, false, iLDA},
	0xAA: {"TAX", ModeImplied, 2, false, iTAX},
	0xAC: {"LDY", ModeAbsolute, 4, false, iLDY},
	0xAD: {"LDA", ModeAbsolute, 4, false, iLDA},
	0xAE: {"LDX", ModeAbsolute, 4, false, iLDX},
	0xB0: {"BCS", ModeRelative, 2, false, iBCS},
	0xB1: {"LDA", ModeIndirectY, 5, true, iLDA},
	0xB4: {"LDY", ModeZeroPageX, 4, false, iLDY},
	0xB5: {"LDA", ModeZeroPageX, 4, false, iLDA},
	0xB6: {"LDX", ModeZeroPageY, 4, false, iLDX},
	0xB8: {"CLV", ModeImplied, 2, false, iCLV},
	0xB9: {"LDA", ModeAbsoluteY, 4, true, iLDA},
	0xBA: {"TSX", ModeImplied, 2, false, iTSX},
	0xBC: {"LDY", ModeAbsoluteX, 4, true, iLDY},
	0xBD: {"LDA", ModeAbsoluteX, 4, true, iLDA},
	0xBE: {"LDX", ModeAbsoluteY, 4, true, iLDX},

	0xC0: {"CPY", ModeImmediate, 2, false, iCPY},
	0xC1: {"CMP", ModeIndirectX, 6, false, iCMP},
	0xC4: {"CPY", ModeZeroPage, 3, false, iCPY},
	0xC5: {"CMP", ModeZeroPage, 3, false, iCMP},
	0xC6: {"DEC", ModeZeroPage, 5, false, iDEC},
	0xC8: {"INY", ModeImplied, 2, false, iINY},
	0xC9: {"CMP", ModeImmediate, 2, false, iCMP},
	0xCA: {"DEX", ModeImplied, 2, false, iDEX},
	0xCC: {"CPY", ModeAbsolute, 4, false, iCPY},
	0xCD: {"CMP", ModeAbsolute, 4, false, iCMP},
	0xCE: {"DEC", ModeAbsolute, 6, false, iDEC},
	0xD0: {"BNE", ModeRelative, 2, false, iBNE},
	0xD1: {"CMP", ModeIndirectY, 5, true, iCMP},
	0xD5: {"CMP", ModeZeroPageX, 4, false, iCMP},
	0xD6: {"DEC", ModeZeroPageX, 6, false, iDEC},
	0xD8: {"CLD", ModeImplied, 2, false, iCLD},
	0xD9: {"CMP", ModeAbsoluteY, 4, true, iCMP},
	0xDD: {"CMP", ModeAbsoluteX, 4, true, iCMP},
	0xDE: {"DEC", ModeAbsoluteX, 7, false, iDEC},

	0xE0: {"CPX", ModeImmediate, 2, false, iCPX},
	0xE1: {"SBC", ModeIndirectX, 6, false, iSBC},
	0xE4: {"CPX", ModeZeroPage, 3, false, iCPX},
	0xE5: {"SBC", ModeZeroPage, 3, false, iSBC},
	0xE6: {"INC", ModeZeroPage, 5, false, iINC},
	0xE8: {"INX", ModeImplied, 2, false, iINX},
	0xE9: {"SBC", ModeImmediate, 2, false, iSBC},
	0xEA: {"NOP", ModeImplied, 2, false, iNOP},
	0xEC: {"CPX", ModeAbsolute, 4, false, iCPX},
	0xED: {"SBC", ModeAbsolute, 4, false, iSBC},
	0xEE: {"INC", ModeAbsolute, 6, false, iINC},
	0xF0: {"BEQ", ModeRelative, 2, false, iBEQ},
	0xF1: {"SBC", ModeIndirectY, 5, true, iSBC},
	0xF5: {"SBC", ModeZeroPageX, 4, false, iSBC},
	0xF6: {"INC", ModeZeroPageX, 6, false, iINC},
	0xF8: {"SED", ModeImplied, 2, false, iSED},
	0xF9: {"SBC", ModeAbsoluteY, 4, true, iSBC},
	0xFD: {"SBC", ModeAbsoluteX, 4, true, iSBC},
	0xFE: {"INC", ModeAbsoluteX, 7, false, iINC},
}

// unimplementedCycles is what Step charges for any of the 105 opcodes
// not present in decodeTable: undocumented 6502 opcodes are out of scope,
// and the spec's fallback behavior is a 1-byte, 2-cycle no-op.
const unimplementedCycles = 2

// Step fetches, decodes and executes exactly one instruction at c.PC,
// advancing PC past it, and returns the number of cycles it took.
func (c *CPU) Step() int {
	opByte := c.Memory.Read(c.PC)
	c.PC++

	entry := decodeTable[opByte]
	if entry.mnemonic == "" {
		return unimplementedCycles
	}

	operand, consumed := c.resolve(entry.mode)
	c.PC += uint16(consumed)

	extra := entry.exec(c, operand)
	cycles := entry.cycles + extra
	if entry.pageCross && operand.PageCrossed {
		cycles++
	}
	return cycles
}

// Mnemonic returns the 3-letter mnemonic for opByte and whether it is a
// documented opcode this core implements.
func Mnemonic(opByte uint8) (string, bool) {
	entry := decodeTable[opByte]
	return entry.mnemonic, entry.mnemonic != ""
}

// Mode returns the addressing mode for opByte and whether it is
// documented.
func Mode(opByte uint8) (AddrMode, bool) {
	entry := decodeTable[opByte]
	return entry.mode, entry.mnemonic != ""
}

// Cycles returns the decode table's base cycle count for opByte and
// whether it is documented. Actual execution may add branch-taken or
// page-cross cycles on top of this.
func Cycles(opByte uint8) (int, bool) {
	entry := decodeTable[opByte]
	return entry.cycles, entry.mnemonic != ""
}
