/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package driver

import (
	"fmt"
	"time"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/chip8-multicore/emulator/chip8"
)

const (
	windowW, windowH = 960, 540
	cyclesPerFrame   = 20
	frameRate        = 60
)

// Options configures one interactive run.
type Options struct {
	ROM    string // path, or "" to prompt with a native file picker
	System chip8.System
	Mode   chip8.Mode
	Debug  bool
}

// Run opens a window, loads a ROM, and drives the emulator until the user
// quits. It owns SDL's event/render loop exactly the way the reference
// driver's main() did; the core never touches SDL directly.
func Run(opts Options) error {
	romPath := opts.ROM
	if romPath == "" {
		path, err := dialog.File().Filter("CHIP-8 ROM", "ch8", "c8", "bin").Load()
		if err != nil {
			return fmt.Errorf("no ROM selected: %w", err)
		}
		romPath = path
	}

	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		return err
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("CHIP-8", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		windowW, windowH, sdl.WINDOW_SHOWN)
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	screen, err := NewScreen(renderer)
	if err != nil {
		return err
	}
	text := NewTextRenderer(renderer)

	audio, err := NewAudioDevice()
	if err != nil {
		return err
	}

	log := NewScrollLogger()

	ctx := chip8.NewContext(opts.Mode)
	ctx.Log = log
	ctx.SetHandlers(chip8.Handlers{
		SndCtrl: audio.SetTone,
		KeyWait: func(interface{}) int { return waitForKey() },
	}, nil)

	if err := ctx.SetSystem(opts.System); err != nil {
		return err
	}
	if err := ctx.LoadFile(romPath); err != nil {
		return err
	}
	ctx.SetDebuggerEnabled(opts.Debug)

	paused := false
	showHelp := false

	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	for range ticker.C {
		input := ProcessEvents(ctx)
		if input.Quit {
			break
		}
		if input.TogglePause {
			paused = !paused
		}
		if input.ToggleHelp {
			showHelp = !showHelp
		}
		if input.ToggleBreak {
			ctx.ToggleBreakpoint()
		}
		if input.Reboot {
			if err := ctx.LoadFile(romPath); err != nil {
				log.Err("reload failed: %s", err)
			}
		}
		if input.Screenshot {
			if err := screen.Save(ctx, "SCREENSHOT.BMP"); err != nil {
				log.Err("screenshot failed: %s", err)
			} else {
				log.Info("screen saved to SCREENSHOT.BMP")
			}
		}
		switch input.ScrollLog {
		case -1:
			log.ScrollUp()
		case 1:
			log.ScrollDown(16)
		}
		if input.LogHome {
			log.Home()
		}
		if input.LogEnd {
			log.End()
		}

		if !paused || input.Step {
			n := int64(cyclesPerFrame)
			if paused {
				n = 1
			}
			if _, err := ctx.ExecuteCycles(n); err != nil {
				switch err.(type) {
				case chip8.Breakpoint:
					paused = true
					log.Info("%s", err)
				case chip8.RuntimeBreak:
					log.Info("%s", err)
				default:
					log.Err("%s", err)
				}
			}
			ctx.UpdateCounters(1)
		}

		renderer.SetDrawColor(0, 0, 0, 255)
		renderer.Clear()

		if err := screen.Refresh(ctx); err != nil {
			return err
		}
		if err := screen.Copy(ctx, 0, 0, windowW-260, windowH); err != nil {
			return err
		}

		drawOverlay(text, ctx, log, windowW-250, 10, showHelp)

		renderer.Present()
	}

	return nil
}

// waitForKey blocks the calling cycle loop (via Fx0A's busy-wait rewind)
// until a keypad scancode is currently held; the event pump itself still
// runs on the render loop's own goroutine via SDL's thread-safe state.
func waitForKey() int {
	for scancode, key := range KeyMap {
		if sdl.GetKeyboardState()[scancode] != 0 {
			return key
		}
	}
	return -1
}
