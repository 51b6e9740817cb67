// Package engine is the in-process stand-in for the host interop layer
// that would otherwise marshal JSON across a language boundary (a
// compiled-to-wasm browser binding, in the source system this was
// distilled from). It owns the one package-level core instance a host
// binding expects, and exposes each external entry point as a plain Go
// function.
package engine

import (
	"encoding/json"
	"fmt"

	"github.com/go6502/emu6502/clock"
	"github.com/go6502/emu6502/cpu"
	"github.com/go6502/emu6502/disassemble"
	"github.com/go6502/emu6502/memory"
	"github.com/go6502/emu6502/rom"
)

// state is the whole of the singleton's footprint: a CPU, its memory and
// a clock driving it. CPU, memory and clock themselves stay ordinary,
// freely-instantiable values -- only the package-level instance below is
// a singleton, and only because §5 requires create_processor to behave
// like one.
type state struct {
	mem   *memory.AddressSpace
	cpu   *cpu.CPU
	clock *clock.Clock
}

var core *state

// CreateProcessor initializes the singleton core. Per §5, a second call
// is a no-op: the first caller to construct the process-wide CPU wins.
func CreateProcessor() {
	if core != nil {
		return
	}
	mem := memory.New()
	c := cpu.New(mem)
	core = &state{
		mem:   mem,
		cpu:   c,
		clock: clock.New(c),
	}
}

// LoadROM parses hexString and loads it at rom.DefaultLoadAddress,
// pointing the reset vector at vectorAddr. Returns false (and leaves the
// core's memory untouched) if hexString is malformed.
func LoadROM(hexString string, vectorAddr uint16) bool {
	return rom.Load(core.mem, hexString, vectorAddr) == nil
}

// TickClock advances the clock by one cycle.
func TickClock() {
	core.clock.Tick()
}

// ramDump is the get_ram JSON shape: {"mem": [b0, b1, ...]}.
type ramDump struct {
	Mem []uint8 `json:"mem"`
}

// GetRAM returns the general-RAM region as {"mem": [...]} JSON.
func GetRAM() ([]byte, error) {
	span := memory.Regions()[memory.RAM]
	return json.Marshal(ramDump{Mem: core.mem.Dump(span.Start, span.End)})
}

// romDump is the get_rom JSON shape: {"rom": [b0, b1, ...]}.
type romDump struct {
	ROM []uint8 `json:"rom"`
}

// GetROM returns the secondary-storage region as {"rom": [...]} JSON.
func GetROM() ([]byte, error) {
	span := memory.Regions()[memory.ROM]
	return json.Marshal(romDump{ROM: core.mem.Dump(span.Start, span.End)})
}

// GetStack returns the stack page as a bare JSON array of bytes.
func GetStack() ([]byte, error) {
	span := memory.Regions()[memory.Stack]
	return json.Marshal(core.mem.Dump(span.Start, span.End))
}

// GetProcessorStatus returns the current P register as a JSON integer.
func GetProcessorStatus() ([]byte, error) {
	return json.Marshal(core.cpu.P)
}

// GetStorageLayout returns the region table as a JSON object mapping
// region name to a [start, end] pair.
func GetStorageLayout() ([]byte, error) {
	layout := make(map[string][2]uint16)
	for name, span := range memory.Regions() {
		layout[string(name)] = [2]uint16{span.Start, span.End}
	}
	return json.Marshal(layout)
}

// GetCurrentProgramCounter returns the live PC.
func GetCurrentProgramCounter() uint16 {
	return core.cpu.PC
}

// GetDefaultProgramCounter returns the fixed default load address.
func GetDefaultProgramCounter() uint16 {
	return rom.DefaultLoadAddress
}

// GetDisassemblyRange disassembles n instructions starting at start and
// returns a JSON object mapping each instruction's address (as a
// "0xAAAA" string) to its formatted line.
func GetDisassemblyRange(start uint16, n int) ([]byte, error) {
	lines := disassemble.Range(core.mem, start, n)
	out := make(map[string]string, len(lines))
	for _, l := range lines {
		out[fmt.Sprintf("0x%04X", l.Addr)] = disassemble.Format(l)
	}
	return json.Marshal(out)
}
