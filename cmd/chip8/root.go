package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chip8-multicore/emulator/chip8"
)

var rootCmd = &cobra.Command{
	Use:   "chip8",
	Short: "A CHIP-8/HCHIP/SCHIP/MegaChip emulator with four interchangeable execution engines",
}

func init() {
	rootCmd.AddCommand(runCmd, disasmCmd, lockstepCmd)
}

func parseSystem(name string) (chip8.System, error) {
	switch name {
	case "chip8", "":
		return chip8.SystemChip8, nil
	case "hchip":
		return chip8.SystemHChip, nil
	case "schip":
		return chip8.SystemSChip, nil
	case "mchip":
		return chip8.SystemMChip, nil
	default:
		return 0, fmt.Errorf("unknown system %q (want chip8, hchip, schip or mchip)", name)
	}
}

func parseMode(name string) (chip8.Mode, error) {
	switch name {
	case "case", "":
		return chip8.ModeCase, nil
	case "ptr":
		return chip8.ModePtr, nil
	case "cache":
		return chip8.ModeCache, nil
	case "dbt":
		return chip8.ModeDBT, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want case, ptr, cache or dbt)", name)
	}
}
