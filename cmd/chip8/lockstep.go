package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chip8-multicore/emulator/chip8"
)

var (
	lockstepSystem string
	lockstepSeed   uint32
	lockstepCycles int64
)

var lockstepCmd = &cobra.Command{
	Use:   "lockstep <rom>",
	Short: "Cross-validate the translator against the reference interpreter, cycle by cycle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		system, err := parseSystem(lockstepSystem)
		if err != nil {
			return err
		}

		rom, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		result, err := chip8.LockstepTest(rom, system, lockstepSeed, lockstepCycles)
		if err != nil {
			return err
		}

		if result.Diverged {
			fmt.Printf("DIVERGED after %d cycles: %s\n", result.CyclesRun, result.Mismatch)
			fmt.Printf("  case: %s\n", chip8.DumpContext(result.Ref))
			fmt.Printf("  dbt:  %s\n", chip8.DumpContext(result.JIT))
			os.Exit(1)
		}

		fmt.Printf("OK: %d cycles ran identically on both backends\n", result.CyclesRun)
		return nil
	},
}

func init() {
	flags := lockstepCmd.Flags()
	flags.StringVar(&lockstepSystem, "system", "chip8", "system: chip8, hchip, schip or mchip")
	flags.Uint32Var(&lockstepSeed, "seed", 1, "shared PRNG seed for both contexts")
	flags.Int64Var(&lockstepCycles, "cycles", 100000, "maximum cycles to run before declaring success")
}
