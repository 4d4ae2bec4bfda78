package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chip8-multicore/emulator/chip8"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm <rom>",
	Short: "Disassemble a ROM file to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		base := uint16(0x200)
		for i := 0; i+1 < len(program); i += 2 {
			opcode := uint16(program[i])<<8 | uint16(program[i+1])
			if opcode == 0 {
				continue
			}
			fmt.Printf("%03X - %s\n", base+uint16(i), chip8.DisassembleOpcode(opcode))
		}

		return nil
	},
}
