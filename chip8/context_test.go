package chip8

import "testing"

func TestNewContextInstallsFonts(t *testing.T) {
	ctx := NewContext(ModeCase)

	if ctx.RAM[0] != 0xF0 {
		t.Fatalf("low font not installed at 0x000, got %02X", ctx.RAM[0])
	}
	if ctx.RAM[HFontBase] != 0xF0 {
		t.Fatalf("high font not installed at %03X, got %02X", HFontBase, ctx.RAM[HFontBase])
	}
	if ctx.PC != 0x200 {
		t.Fatalf("PC = %03X, want 0x200", ctx.PC)
	}
}

func TestLoadROMGrowsRAMForMegaChip(t *testing.T) {
	ctx := NewContext(ModeCase)
	big := make([]byte, RAMSize) // would overflow 0x200+len if RAM stayed 4K

	if err := ctx.LoadROM(big); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	if len(ctx.RAM) < 0x200+len(big) {
		t.Fatalf("RAM not grown: len=%d", len(ctx.RAM))
	}
}

func TestSetSystemAllocatesRGBAFramebufferForMegaChip(t *testing.T) {
	ctx := NewContext(ModeCase)
	if err := ctx.SetSystem(SystemMChip); err != nil {
		t.Fatalf("SetSystem: %v", err)
	}
	if len(ctx.FramebufferRGBA) != MChipXRes*MChipYRes {
		t.Fatalf("FramebufferRGBA len = %d, want %d", len(ctx.FramebufferRGBA), MChipXRes*MChipYRes)
	}
}

func TestSetSystemInvalid(t *testing.T) {
	ctx := NewContext(ModeCase)
	if err := ctx.SetSystem(System(99)); err == nil {
		t.Fatal("expected InvalidSystem error")
	}
}

func TestUpdateCountersFiresSndCtrlOnEdges(t *testing.T) {
	ctx := NewContext(ModeCase)
	var calls []bool
	ctx.SetHandlers(Handlers{
		SndCtrl: func(_ interface{}, on bool) { calls = append(calls, on) },
	}, nil)

	ctx.ST = 2
	ctx.UpdateCounters(1) // ST: 2->1, stays on, no edge
	ctx.UpdateCounters(1) // ST: 1->0, edge off

	if len(calls) != 1 || calls[0] != false {
		t.Fatalf("SndCtrl calls = %v, want exactly one false", calls)
	}
}

func TestBreakpointLifecycle(t *testing.T) {
	ctx := NewContext(ModeCase)
	ctx.SetBreakpoint(Breakpoint{Address: 0x200, Reason: "test"})
	if _, ok := ctx.Breakpoints[0x200]; !ok {
		t.Fatal("breakpoint not set")
	}
	ctx.RemoveBreakpoint(0x200)
	if _, ok := ctx.Breakpoints[0x200]; ok {
		t.Fatal("breakpoint not removed")
	}
}
