package driver

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/chip8-multicore/emulator/chip8"
)

// KeyMap maps a modern keyboard onto the CHIP-8 hex keypad, laid out the
// same way the reference driver did: 1-2-3-4 / Q-W-E-R / A-S-D-F / Z-X-C-V.
var KeyMap = map[sdl.Scancode]int{
	sdl.SCANCODE_X: 0x0,
	sdl.SCANCODE_1: 0x1,
	sdl.SCANCODE_2: 0x2,
	sdl.SCANCODE_3: 0x3,
	sdl.SCANCODE_Q: 0x4,
	sdl.SCANCODE_W: 0x5,
	sdl.SCANCODE_E: 0x6,
	sdl.SCANCODE_A: 0x7,
	sdl.SCANCODE_S: 0x8,
	sdl.SCANCODE_D: 0x9,
	sdl.SCANCODE_Z: 0xA,
	sdl.SCANCODE_C: 0xB,
	sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_V: 0xF,
}

// InputResult reports what ProcessEvents observed beyond keypad state.
type InputResult struct {
	Quit         bool
	TogglePause  bool
	Step         bool
	ToggleHelp   bool
	ScrollLog    int
	LogHome      bool
	LogEnd       bool
	Screenshot   bool
	Reboot       bool
	ToggleBreak  bool
}

// ProcessEvents drains the SDL event queue, applying key edges to ctx and
// returning the driver-level commands (pause, step, quit, ...) it saw.
func ProcessEvents(ctx *chip8.Context) InputResult {
	var result InputResult

	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			result.Quit = true
		case *sdl.KeyUpEvent:
			if ev.Repeat != 0 {
				continue
			}
			switch ev.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				result.Quit = true
			case sdl.SCANCODE_UP, sdl.SCANCODE_PAGEUP:
				result.ScrollLog--
			case sdl.SCANCODE_DOWN, sdl.SCANCODE_PAGEDOWN:
				result.ScrollLog++
			case sdl.SCANCODE_HOME:
				result.LogHome = true
			case sdl.SCANCODE_END:
				result.LogEnd = true
			case sdl.SCANCODE_F1:
				result.ToggleHelp = true
			case sdl.SCANCODE_F9:
				result.TogglePause = true
			case sdl.SCANCODE_F10:
				result.Step = true
			case sdl.SCANCODE_F11:
				result.ToggleBreak = true
			case sdl.SCANCODE_F12:
				result.Screenshot = true
			case sdl.SCANCODE_BACKSPACE:
				result.Reboot = true
			default:
				if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
					ctx.SetKeyState(key, false)
				}
			}
		case *sdl.KeyDownEvent:
			if ev.Repeat == 0 {
				if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
					ctx.SetKeyState(key, true)
				}
			}
		}
	}

	return result
}
