// Package memory implements the flat 64KiB byte-addressable space a 6502
// core runs against, along with the fixed named-region map callers use
// for introspection (zero page, stack, RAM, ROM, vectors).
package memory

import "fmt"

// Region names one of the fixed spans of the address space.
type Region string

const (
	ZeroPage    Region = "zeropage"
	Stack       Region = "stack"
	RAM         Region = "ram"
	ROM         Region = "rom"
	ResetVector Region = "resetvector"
	IRQVector   Region = "irqvector"
)

// ResetVectorAddr is the address of the little-endian word read on reset.
const ResetVectorAddr = uint16(0xFFFC)

// Span is an inclusive [Start, End] address range.
type Span struct {
	Start uint16
	End   uint16
}

// regions is the fixed region table from the spec. Every address in
// 0x0000-0xFFFF falls in exactly one of these.
var regions = []struct {
	name Region
	span Span
}{
	{ZeroPage, Span{0x0000, 0x00FF}},
	{Stack, Span{0x0100, 0x01FF}},
	{RAM, Span{0x0200, 0x7FFF}},
	{ROM, Span{0x8000, 0xFFFB}},
	{ResetVector, Span{0xFFFC, 0xFFFD}},
	{IRQVector, Span{0xFFFE, 0xFFFF}},
}

// AddressSpace is a flat 64KiB byte array with no access control: every
// address is readable and writable by any caller, including the ROM
// region (ROM is a naming convention here, not a protection).
type AddressSpace struct {
	cells [1 << 16]uint8
}

// New returns a freshly zeroed 64KiB address space.
func New() *AddressSpace {
	return &AddressSpace{}
}

// Read returns the byte at addr.
func (a *AddressSpace) Read(addr uint16) uint8 {
	return a.cells[addr]
}

// Write stores val at addr.
func (a *AddressSpace) Write(addr uint16, val uint8) {
	a.cells[addr] = val
}

// ReadWord returns the little-endian word stored at addr, addr+1, with
// address arithmetic wrapping modulo 0x10000. This is the ordinary 16-bit
// fetch used everywhere except the JMP-indirect addressing mode, whose
// same-page quirk is a CPU bug, not a bus property, and lives in the cpu
// package instead.
func (a *AddressSpace) ReadWord(addr uint16) uint16 {
	lo := a.cells[addr]
	hi := a.cells[addr+1]
	return uint16(hi)<<8 | uint16(lo)
}

// WriteWord stores val little-endian at addr, addr+1, wrapping modulo
// 0x10000.
func (a *AddressSpace) WriteWord(addr uint16, val uint16) {
	a.cells[addr] = uint8(val & 0xFF)
	a.cells[addr+1] = uint8(val >> 8)
}

// LoadBytes bulk-writes data starting at start. Used by the ROM loader.
// Addresses wrap modulo 0x10000 if data runs past 0xFFFF.
func (a *AddressSpace) LoadBytes(start uint16, data []uint8) {
	addr := start
	for _, b := range data {
		a.cells[addr] = b
		addr++
	}
}

// RegionOf returns the name of the region addr belongs to.
func RegionOf(addr uint16) Region {
	for _, r := range regions {
		if addr >= r.span.Start && addr <= r.span.End {
			return r.name
		}
	}
	// Unreachable: the table above partitions all of 0x0000-0xFFFF.
	panic(fmt.Sprintf("address 0x%04X not covered by any region", addr))
}

// Regions returns the fixed region table as a name->span map.
func Regions() map[Region]Span {
	m := make(map[Region]Span, len(regions))
	for _, r := range regions {
		m[r.name] = r.span
	}
	return m
}

// RegionNames returns region names in spec-declared order, for callers
// that need deterministic iteration.
func RegionNames() []Region {
	names := make([]Region, len(regions))
	for i, r := range regions {
		names[i] = r.name
	}
	return names
}

// Dump returns a copy of the bytes in [start, end] inclusive.
func (a *AddressSpace) Dump(start, end uint16) []uint8 {
	n := int(end) - int(start) + 1
	out := make([]uint8, n)
	for i := 0; i < n; i++ {
		out[i] = a.cells[start+uint16(i)]
	}
	return out
}
