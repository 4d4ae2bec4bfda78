package chip8

import (
	"bytes"
	"fmt"
)

// LockstepResult summarizes a completed (or aborted) lockstep run.
type LockstepResult struct {
	CyclesRun int64
	Diverged  bool
	Mismatch  error // a LockstepMismatch, nil if Diverged is false
	Ref, JIT  *Context
}

// LockstepTest cross-validates the dynamic translator against the
// switch-dispatch interpreter: it creates one Context per backend, loads
// the same ROM with the same system and PRNG seed into both, then steps
// the translator one ExecuteCycles(1) call at a time (a whole inlined block
// counts as several cycles) and the interpreter by the same number of
// cycles, comparing full architectural state after every step. This is the
// only reliable way to validate a JIT against its
// reference interpreter, since miscompiled blocks otherwise only show up
// as wrong pixels or hangs arbitrarily far downstream.
func LockstepTest(rom []byte, system System, seed uint32, maxCycles int64) (LockstepResult, error) {
	ref := NewContext(ModeCase)
	jit := NewContext(ModeDBT)

	for _, ctx := range []*Context{ref, jit} {
		if err := ctx.SetSystem(system); err != nil {
			return LockstepResult{}, err
		}
		if err := ctx.LoadROM(rom); err != nil {
			return LockstepResult{}, err
		}
		ctx.Seed(seed)
	}

	var cycles int64
	for cycles < maxCycles {
		// The translator may inline several guest instructions into one
		// native block, so one "cycle" of jit may advance several guest
		// instructions at once. Run jit first, then replay exactly as many
		// cycles on ref so the two contexts stay in lockstep regardless of
		// how jit's block boundaries fall.
		jitN, jitErr := jit.ExecuteCycles(1)
		refTarget := jitN
		if refTarget == 0 {
			refTarget = 1 // jit errored before executing anything; still let ref try once so matching errors surface
		}
		refN, refErr := ref.ExecuteCycles(refTarget)
		cycles += refN

		if ok, detail := cmpContext(ref, jit); !ok {
			mismatch := LockstepMismatch{Cycle: cycles, PC: ref.PC, Detail: detail}
			return LockstepResult{CyclesRun: cycles, Diverged: true, Mismatch: mismatch, Ref: ref, JIT: jit}, nil
		}

		if refErr != nil || jitErr != nil {
			if refErr != jitErr && !sameBreak(refErr, jitErr) {
				mismatch := LockstepMismatch{
					Cycle: cycles, PC: ref.PC,
					Detail: fmt.Sprintf("diverging stop condition: ref=%v jit=%v", refErr, jitErr),
				}
				return LockstepResult{CyclesRun: cycles, Diverged: true, Mismatch: mismatch, Ref: ref, JIT: jit}, nil
			}
			return LockstepResult{CyclesRun: cycles}, nil
		}

		if refN == 0 && jitN == 0 {
			break
		}
	}

	return LockstepResult{CyclesRun: cycles}, nil
}

func sameBreak(a, b error) bool {
	if a == nil || b == nil {
		return a == b
	}
	_, aBreak := a.(RuntimeBreak)
	_, bBreak := b.(RuntimeBreak)
	return aBreak && bBreak
}

// cmpContext compares the full architectural state two contexts must
// agree on after every cycle: registers, call stack, timers, RAM and
// whichever framebuffer is active.
func cmpContext(a, b *Context) (bool, string) {
	if a.V != b.V {
		return false, fmt.Sprintf("V: %02X vs %02X", a.V, b.V)
	}
	if a.I != b.I {
		return false, fmt.Sprintf("I: %03X vs %03X", a.I, b.I)
	}
	if a.PC != b.PC {
		return false, fmt.Sprintf("PC: %03X vs %03X", a.PC, b.PC)
	}
	if a.SP != b.SP {
		return false, fmt.Sprintf("SP: %d vs %d", a.SP, b.SP)
	}
	if a.Stack != b.Stack {
		return false, fmt.Sprintf("stack mismatch: %v vs %v", a.Stack, b.Stack)
	}
	if a.DT != b.DT || a.ST != b.ST {
		return false, fmt.Sprintf("DT/ST: %d/%d vs %d/%d", a.DT, a.ST, b.DT, b.ST)
	}
	if !bytes.Equal(a.RAM, b.RAM) {
		return false, "RAM contents diverged"
	}
	if !bytes.Equal(a.Framebuffer, b.Framebuffer) {
		return false, "framebuffer contents diverged"
	}
	if len(a.FramebufferRGBA) != len(b.FramebufferRGBA) {
		return false, "RGBA framebuffer contents diverged"
	}
	for i := range a.FramebufferRGBA {
		if a.FramebufferRGBA[i] != b.FramebufferRGBA[i] {
			return false, "RGBA framebuffer contents diverged"
		}
	}
	return true, ""
}

// DumpContext renders a compact register snapshot, used in the lockstep
// command's mismatch report.
func DumpContext(ctx *Context) string {
	return fmt.Sprintf("PC=%03X I=%03X SP=%d DT=%d ST=%d V=%02X",
		ctx.PC, ctx.I, ctx.SP, ctx.DT, ctx.ST, ctx.V)
}
