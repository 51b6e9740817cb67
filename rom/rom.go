// Package rom loads a hex-encoded program image into a memory.AddressSpace
// and points the reset vector at it.
package rom

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/go6502/emu6502/memory"
)

// DefaultLoadAddress is where a ROM lands absent any other instruction,
// and what get_default_program_counter reports.
const DefaultLoadAddress = uint16(0x8000)

// InvalidHexInput represents a load_rom call given a string that is not
// whitespace-separated or concatenated pairs of hex digits.
type InvalidHexInput struct {
	Input string
}

// Error implements the error interface.
func (e InvalidHexInput) Error() string {
	return fmt.Sprintf("invalid hex input: %q", e.Input)
}

// Load parses hexString per the spec's grammar (whitespace stripped,
// remaining characters must form an even-length run of [0-9A-Fa-f]),
// writes the resulting bytes into mem starting at DefaultLoadAddress, and
// points the reset vector at vectorAddr (the entry point to start
// execution at, which need not be DefaultLoadAddress itself -- a ROM
// image can carry a header before its real entry point). On a malformed
// string it returns InvalidHexInput and leaves mem untouched.
func Load(mem *memory.AddressSpace, hexString string, vectorAddr uint16) error {
	data, err := decode(hexString)
	if err != nil {
		return errors.Wrap(err, "rom: load")
	}
	mem.LoadBytes(DefaultLoadAddress, data)
	mem.WriteWord(memory.ResetVectorAddr, vectorAddr)
	return nil
}

// decode strips whitespace from s and parses the remainder as pairs of
// hex digits. Any non-hex character or an odd digit count is rejected
// with no partial result.
func decode(s string) ([]uint8, error) {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)

	if len(stripped) == 0 || len(stripped)%2 != 0 {
		return nil, InvalidHexInput{Input: s}
	}

	data := make([]uint8, len(stripped)/2)
	for i := range data {
		hi, ok := hexDigit(stripped[2*i])
		if !ok {
			return nil, InvalidHexInput{Input: s}
		}
		lo, ok := hexDigit(stripped[2*i+1])
		if !ok {
			return nil, InvalidHexInput{Input: s}
		}
		data[i] = hi<<4 | lo
	}
	return data, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
