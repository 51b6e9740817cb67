// sixtrace loads a hex-encoded ROM image through the engine package and
// either disassembles it or runs it for a number of cycles, printing
// register state. It exists to drive engine's entry points from a
// terminal, the way the source repository's disassemble/convertprg/
// hand_asm commands drive cpu/memory/disassemble.
package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/go6502/emu6502/engine"
)

func main() {
	app := &cli.App{
		Name:  "sixtrace",
		Usage: "load a 6502 ROM image and run or disassemble it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "rom",
				Aliases:  []string{"r"},
				Usage:    "path to a file containing a hex-encoded ROM image",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "entry",
				Aliases: []string{"e"},
				Usage:   "entry point address in hex, e.g. 8000 (defaults to the default load address)",
			},
			&cli.IntFlag{
				Name:    "cycles",
				Aliases: []string{"c"},
				Usage:   "number of clock cycles to run",
				Value:   0,
			},
			&cli.IntFlag{
				Name:    "lines",
				Aliases: []string{"n"},
				Usage:   "number of instructions to disassemble instead of running",
				Value:   0,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	hexBytes, err := ioutil.ReadFile(c.String("rom"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("can't read ROM file: %v", err), 1)
	}

	engine.CreateProcessor()

	entry := engine.GetDefaultProgramCounter()
	if e := c.String("entry"); e != "" {
		v, err := strconv.ParseUint(strings.TrimPrefix(e, "0x"), 16, 16)
		if err != nil {
			return cli.Exit(fmt.Sprintf("invalid -entry value %q: %v", e, err), 1)
		}
		entry = uint16(v)
	}

	if !engine.LoadROM(string(hexBytes), entry) {
		return cli.Exit("ROM image is not valid hex", 1)
	}

	if n := c.Int("lines"); n > 0 {
		raw, err := engine.GetDisassemblyRange(entry, n)
		if err != nil {
			return err
		}
		var lines map[string]string
		if err := json.Unmarshal(raw, &lines); err != nil {
			return err
		}
		for addr, line := range lines {
			fmt.Printf("%s: %s\n", addr, line)
		}
		return nil
	}

	for i := 0; i < c.Int("cycles"); i++ {
		engine.TickClock()
	}

	fmt.Printf("PC: 0x%04X\n", engine.GetCurrentProgramCounter())
	status, err := engine.GetProcessorStatus()
	if err != nil {
		return err
	}
	fmt.Printf("P: %s\n", status)
	return nil
}
