package cpu

// Exec runs one instruction's semantics against its resolved operand and
// returns any cycles beyond the opcode's table-listed base (branch taken
// bonuses; the generic read-style page-cross bonus is added by Step
// itself from the decode table, not by Exec).
type Exec func(c *CPU, op Operand) int

// Loads.

func iLDA(c *CPU, op Operand) int { c.A = c.read(op); c.setZN(c.A); return 0 }
func iLDX(c *CPU, op Operand) int { c.X = c.read(op); c.setZN(c.X); return 0 }
func iLDY(c *CPU, op Operand) int { c.Y = c.read(op); c.setZN(c.Y); return 0 }

// Stores.

func iSTA(c *CPU, op Operand) int { c.write(op, c.A); return 0 }
func iSTX(c *CPU, op Operand) int { c.write(op, c.X); return 0 }
func iSTY(c *CPU, op Operand) int { c.write(op, c.Y); return 0 }

// Register transfers.

func iTAX(c *CPU, op Operand) int { c.X = c.A; c.setZN(c.X); return 0 }
func iTAY(c *CPU, op Operand) int { c.Y = c.A; c.setZN(c.Y); return 0 }
func iTXA(c *CPU, op Operand) int { c.A = c.X; c.setZN(c.A); return 0 }
func iTYA(c *CPU, op Operand) int { c.A = c.Y; c.setZN(c.A); return 0 }
func iTSX(c *CPU, op Operand) int { c.X = c.S; c.setZN(c.X); return 0 }
func iTXS(c *CPU, op Operand) int { c.S = c.X; return 0 }

// Stack.

func iPHA(c *CPU, op Operand) int { c.push(c.A); return 0 }
func iPLA(c *CPU, op Operand) int { c.A = c.pop(); c.setZN(c.A); return 0 }
func iPHP(c *CPU, op Operand) int { c.push(c.P | FlagB | FlagU); return 0 }
func iPLP(c *CPU, op Operand) int { c.P = (c.pop() &^ FlagB) | FlagU; return 0 }

// Logical.

func iAND(c *CPU, op Operand) int { c.A &= c.read(op); c.setZN(c.A); return 0 }
func iORA(c *CPU, op Operand) int { c.A |= c.read(op); c.setZN(c.A); return 0 }
func iEOR(c *CPU, op Operand) int { c.A ^= c.read(op); c.setZN(c.A); return 0 }

func iBIT(c *CPU, op Operand) int {
	v := c.read(op)
	c.setFlag(FlagZ, c.A&v == 0)
	c.setFlag(FlagN, v&0x80 != 0)
	c.setFlag(FlagV, v&0x40 != 0)
	return 0
}

// Arithmetic. BCD math follows the classic nibble-correction algorithm;
// Z and N are taken from the final corrected byte written to A in both
// binary and decimal mode.

func iADC(c *CPU, op Operand) int {
	m := c.read(op)
	carry := uint16(c.P & FlagC)

	if c.P&FlagD != 0 {
		lo := uint16(c.A&0x0F) + uint16(m&0x0F) + carry
		if lo >= 0x0A {
			lo = ((lo + 0x06) & 0x0F) + 0x10
		}
		sum := uint16(c.A&0xF0) + uint16(m&0xF0) + lo
		// Overflow is evaluated on the sum after the low-nibble
		// correction and before the high-nibble correction.
		c.overflowCheck(c.A, m, uint8(sum))
		if sum >= 0xA0 {
			sum += 0x60
		}
		c.carryCheck(sum)
		c.A = uint8(sum)
		c.setZN(c.A)
		return 0
	}

	sum := uint16(c.A) + uint16(m) + carry
	c.overflowCheck(c.A, m, uint8(sum))
	c.carryCheck(sum)
	c.A = uint8(sum)
	c.setZN(c.A)
	return 0
}

func iSBC(c *CPU, op Operand) int {
	m := c.read(op)
	carry := uint16(c.P & FlagC)

	if c.P&FlagD != 0 {
		// C and V come from the equivalent binary subtraction (A + ^M + C),
		// the same rule real 6502s use; only the stored result is
		// nibble-corrected into decimal.
		comp := ^m
		bin := uint16(c.A) + uint16(comp) + carry
		c.overflowCheck(c.A, comp, uint8(bin))
		c.carryCheck(bin)

		lo := int16(c.A&0x0F) - int16(m&0x0F) + int16(carry) - 1
		if lo < 0 {
			lo = ((lo - 0x06) & 0x0F) - 0x10
		}
		sum := int16(c.A&0xF0) - int16(m&0xF0) + lo
		if sum < 0 {
			sum -= 0x60
		}
		c.A = uint8(sum & 0xFF)
		c.setZN(c.A)
		return 0
	}

	m = ^m
	sum := uint16(c.A) + uint16(m) + carry
	c.overflowCheck(c.A, m, uint8(sum))
	c.carryCheck(sum)
	c.A = uint8(sum)
	c.setZN(c.A)
	return 0
}

// Compares.

func iCMP(c *CPU, op Operand) int { c.compare(c.A, c.read(op)); return 0 }
func iCPX(c *CPU, op Operand) int { c.compare(c.X, c.read(op)); return 0 }
func iCPY(c *CPU, op Operand) int { c.compare(c.Y, c.read(op)); return 0 }

// Increments and decrements.

func iINC(c *CPU, op Operand) int { v := c.read(op) + 1; c.write(op, v); c.setZN(v); return 0 }
func iDEC(c *CPU, op Operand) int { v := c.read(op) - 1; c.write(op, v); c.setZN(v); return 0 }
func iINX(c *CPU, op Operand) int { c.X++; c.setZN(c.X); return 0 }
func iDEX(c *CPU, op Operand) int { c.X--; c.setZN(c.X); return 0 }
func iINY(c *CPU, op Operand) int { c.Y++; c.setZN(c.Y); return 0 }
func iDEY(c *CPU, op Operand) int { c.Y--; c.setZN(c.Y); return 0 }

// Shifts and rotates. All four work on either the accumulator or memory,
// via the generic read/write helpers that check op.Accumulator.

func iASL(c *CPU, op Operand) int {
	v := c.read(op)
	carry := v&0x80 != 0
	res := v << 1
	c.write(op, res)
	c.setFlag(FlagC, carry)
	c.setZN(res)
	return 0
}

func iLSR(c *CPU, op Operand) int {
	v := c.read(op)
	carry := v&0x01 != 0
	res := v >> 1
	c.write(op, res)
	c.setFlag(FlagC, carry)
	c.setZN(res)
	return 0
}

func iROL(c *CPU, op Operand) int {
	v := c.read(op)
	oldCarry := c.P & FlagC
	newCarry := v&0x80 != 0
	res := (v << 1) | oldCarry
	c.write(op, res)
	c.setFlag(FlagC, newCarry)
	c.setZN(res)
	return 0
}

func iROR(c *CPU, op Operand) int {
	v := c.read(op)
	var oldCarry uint8
	if c.P&FlagC != 0 {
		oldCarry = 0x80
	}
	newCarry := v&0x01 != 0
	res := (v >> 1) | oldCarry
	c.write(op, res)
	c.setFlag(FlagC, newCarry)
	c.setZN(res)
	return 0
}

// Branches. Each tests one status flag and defers the taken/page-cross
// cycle bookkeeping to CPU.branch.

func iBPL(c *CPU, op Operand) int { return c.branch(c.P&FlagN == 0, op) }
func iBMI(c *CPU, op Operand) int { return c.branch(c.P&FlagN != 0, op) }
func iBVC(c *CPU, op Operand) int { return c.branch(c.P&FlagV == 0, op) }
func iBVS(c *CPU, op Operand) int { return c.branch(c.P&FlagV != 0, op) }
func iBCC(c *CPU, op Operand) int { return c.branch(c.P&FlagC == 0, op) }
func iBCS(c *CPU, op Operand) int { return c.branch(c.P&FlagC != 0, op) }
func iBNE(c *CPU, op Operand) int { return c.branch(c.P&FlagZ == 0, op) }
func iBEQ(c *CPU, op Operand) int { return c.branch(c.P&FlagZ != 0, op) }

// Jumps and subroutine calls.

func iJMP(c *CPU, op Operand) int { c.PC = op.Addr; return 0 }

func iJSR(c *CPU, op Operand) int {
	ret := c.PC - 1
	c.push(uint8(ret >> 8))
	c.push(uint8(ret & 0xFF))
	c.PC = op.Addr
	return 0
}

func iRTS(c *CPU, op Operand) int {
	lo := c.pop()
	hi := c.pop()
	c.PC = (uint16(hi)<<8 | uint16(lo)) + 1
	return 0
}

// Interrupts and software break.

func iBRK(c *CPU, op Operand) int {
	c.PC++ // skip the signature byte following the BRK opcode
	c.push(uint8(c.PC >> 8))
	c.push(uint8(c.PC & 0xFF))
	c.push(c.P | FlagB | FlagU)
	c.P |= FlagI
	c.PC = c.Memory.ReadWord(IRQVector)
	return 0
}

func iRTI(c *CPU, op Operand) int {
	c.P = (c.pop() &^ FlagB) | FlagU
	lo := c.pop()
	hi := c.pop()
	c.PC = uint16(hi)<<8 | uint16(lo)
	return 0
}

// Flag instructions.

func iCLC(c *CPU, op Operand) int { c.setFlag(FlagC, false); return 0 }
func iSEC(c *CPU, op Operand) int { c.setFlag(FlagC, true); return 0 }
func iCLI(c *CPU, op Operand) int { c.setFlag(FlagI, false); return 0 }
func iSEI(c *CPU, op Operand) int { c.setFlag(FlagI, true); return 0 }
func iCLD(c *CPU, op Operand) int { c.setFlag(FlagD, false); return 0 }
func iSED(c *CPU, op Operand) int { c.setFlag(FlagD, true); return 0 }
func iCLV(c *CPU, op Operand) int { c.setFlag(FlagV, false); return 0 }

// No operation.

func iNOP(c *CPU, op Operand) int { return 0 }
