package chip8

import "testing"

// a tiny program: V0=5; V1=2; V0+=V1; loop forever at its own address.
var simpleProgram = []byte{
	0x60, 0x05, // 200: LD V0, #05
	0x61, 0x02, // 202: LD V1, #02
	0x80, 0x14, // 204: ADD V0, V1
	0x12, 0x06, // 206: JP 206
}

func runSimple(t *testing.T, mode Mode) *Context {
	t.Helper()
	ctx := NewContext(mode)
	if err := ctx.LoadROM(simpleProgram); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	if _, err := ctx.ExecuteCycles(3); err != nil {
		t.Fatalf("ExecuteCycles: %v", err)
	}
	return ctx
}

func TestInterpreterBackendsAgree(t *testing.T) {
	for _, mode := range []Mode{ModeCase, ModePtr, ModeCache} {
		ctx := runSimple(t, mode)
		if ctx.V[0] != 7 {
			t.Errorf("mode %v: V0 = %d, want 7", mode, ctx.V[0])
		}
		if ctx.PC != 0x206 {
			t.Errorf("mode %v: PC = %03X, want 206", mode, ctx.PC)
		}
	}
}

func TestCacheBackendRebuildsAfterLoadROM(t *testing.T) {
	ctx := NewContext(ModeCache)
	if err := ctx.LoadROM(simpleProgram); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.ExecuteCycles(1); err != nil {
		t.Fatal(err)
	}
	if !ctx.cacheReady {
		t.Fatal("cache not built on first execution")
	}

	if err := ctx.LoadROM(simpleProgram); err != nil {
		t.Fatal(err)
	}
	if ctx.cacheReady {
		t.Fatal("cache not invalidated by LoadROM")
	}
}

// exitProgram is EXIT followed by an instruction that must never run.
var exitProgram = []byte{
	0x00, 0xFD, // 200: EXIT
	0x60, 0x42, // 202: LD V0, #42
}

func TestExitStopsCycleLoopAtNextCheck(t *testing.T) {
	for _, mode := range []Mode{ModeCase, ModePtr, ModeCache, ModeDBT} {
		ctx := NewContext(mode)
		if err := ctx.LoadROM(exitProgram); err != nil {
			t.Fatalf("mode %v: LoadROM: %v", mode, err)
		}

		n, err := ctx.ExecuteCycles(2)
		if _, ok := err.(RuntimeBreak); !ok {
			t.Fatalf("mode %v: err = %v, want RuntimeBreak", mode, err)
		}
		if n != 1 {
			t.Fatalf("mode %v: executed %d cycles before EXIT stopped the loop, want 1", mode, n)
		}
		if ctx.V[0] != 0 {
			t.Fatalf("mode %v: V0 = %02X, want 0 (LD V0,#42 must not run after EXIT)", mode, ctx.V[0])
		}
	}
}

func TestBreakpointStopsCaseBackend(t *testing.T) {
	ctx := NewContext(ModeCase)
	if err := ctx.LoadROM(simpleProgram); err != nil {
		t.Fatal(err)
	}
	ctx.SetBreakpoint(Breakpoint{Address: 0x204})
	ctx.SetDebuggerEnabled(true)

	n, err := ctx.ExecuteCycles(10)
	if _, ok := err.(Breakpoint); !ok {
		t.Fatalf("err = %v, want Breakpoint", err)
	}
	if n != 2 {
		t.Fatalf("executed %d cycles before breakpoint, want 2", n)
	}
	if ctx.PC != 0x204 {
		t.Fatalf("PC = %03X at breakpoint, want 204", ctx.PC)
	}
}
