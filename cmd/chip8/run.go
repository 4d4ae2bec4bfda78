package main

import (
	"github.com/spf13/cobra"

	"github.com/chip8-multicore/emulator/internal/driver"
)

var (
	runSystem string
	runMode   string
	runDebug  bool
)

var runCmd = &cobra.Command{
	Use:   "run [rom]",
	Short: "Run a ROM in a window, with an on-screen debugger",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		system, err := parseSystem(runSystem)
		if err != nil {
			return err
		}
		mode, err := parseMode(runMode)
		if err != nil {
			return err
		}

		var rom string
		if len(args) == 1 {
			rom = args[0]
		}

		return driver.Run(driver.Options{
			ROM:    rom,
			System: system,
			Mode:   mode,
			Debug:  runDebug,
		})
	},
}

func init() {
	flags := runCmd.Flags()
	flags.StringVar(&runSystem, "system", "chip8", "system: chip8, hchip, schip or mchip")
	flags.StringVar(&runMode, "mode", "case", "execution engine: case, ptr, cache or dbt")
	flags.BoolVar(&runDebug, "debug", false, "enable the per-instruction trace in the on-screen log")
}
