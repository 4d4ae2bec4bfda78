package driver

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/chip8-multicore/emulator/chip8"
)

var (
	colWhite = sdl.Color{R: 230, G: 230, B: 230, A: 255}
	colDim   = sdl.Color{R: 140, G: 140, B: 140, A: 255}
)

// drawOverlay renders the register file, a short disassembly window
// around PC, and the scrollback log into the sidebar to the right of the
// screen texture.
func drawOverlay(t *TextRenderer, ctx *chip8.Context, log *ScrollLogger, x, y int, help bool) {
	if help {
		for i, line := range helpText {
			t.DrawText(line, x, y+i*14, colWhite)
		}
		return
	}

	for i := 0; i < 16; i++ {
		t.DrawText(fmt.Sprintf("V%X #%02X", i, ctx.V[i]), x, y+i*14, colDim)
	}

	x2 := x + 90
	t.DrawText(fmt.Sprintf("PC #%03X", ctx.PC), x2, y, colWhite)
	t.DrawText(fmt.Sprintf("SP %d", ctx.SP), x2, y+14, colWhite)
	t.DrawText(fmt.Sprintf("I  #%03X", ctx.I), x2, y+28, colWhite)
	t.DrawText(fmt.Sprintf("DT #%02X", ctx.DT), x2, y+42, colWhite)
	t.DrawText(fmt.Sprintf("ST #%02X", ctx.ST), x2, y+56, colWhite)
	t.DrawText(ctx.System.String(), x2, y+70, colDim)

	y += 16 * 14
	pc := ctx.PC
	if pc >= 6 {
		pc -= 6
	}
	for i := 0; i < 6; i++ {
		t.DrawText(ctx.Disassemble(pc), x, y+i*14, colDim)
		pc += 2
	}

	y += 6*14 + 10
	for i, line := range log.Window(12) {
		if len(line) > 40 {
			line = line[:37] + "..."
		}
		t.DrawText(line, x, y+i*14, colDim)
	}
}

var helpText = []string{
	"Virtual keys:",
	"  1-2-3-4",
	"  Q-W-E-R",
	"  A-S-D-F",
	"  Z-X-C-V",
	"",
	"Emulation keys:",
	"  ESC      - Quit",
	"  BS       - Reboot",
	"  Pg Up/Dn - Scroll log",
	"  F1       - Help",
	"  F9       - Pause",
	"  F10      - Step",
	"  F11      - Toggle breakpoint",
	"  F12      - Screenshot",
}
