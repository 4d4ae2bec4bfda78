package chip8

import "testing"

func newTestCtx() *Context {
	return NewContext(ModeCase)
}

func TestOpAddRegCarry(t *testing.T) {
	ctx := newTestCtx()
	ctx.V[0] = 0xFF
	ctx.V[1] = 0x02
	ctx.Opcode = 0x8014
	opAddReg(ctx)
	if ctx.V[0] != 0x01 || ctx.V[0xF] != 1 {
		t.Fatalf("V0=%02X VF=%d, want 01 1", ctx.V[0], ctx.V[0xF])
	}
}

func TestOpSubRegBorrow(t *testing.T) {
	ctx := newTestCtx()
	ctx.V[0] = 0x01
	ctx.V[1] = 0x02
	ctx.Opcode = 0x8015
	opSubReg(ctx)
	if ctx.V[0] != 0xFF || ctx.V[0xF] != 0 {
		t.Fatalf("V0=%02X VF=%d, want FF 0", ctx.V[0], ctx.V[0xF])
	}
}

func TestOpShrCapturesLSB(t *testing.T) {
	ctx := newTestCtx()
	ctx.V[0] = 0x03
	ctx.Opcode = 0x8006
	opShr(ctx)
	if ctx.V[0] != 0x01 || ctx.V[0xF] != 1 {
		t.Fatalf("V0=%02X VF=%d, want 01 1", ctx.V[0], ctx.V[0xF])
	}
}

func TestOpCallRet(t *testing.T) {
	ctx := newTestCtx()
	ctx.PC = 0x200
	ctx.Opcode = 0x2300
	opCall(ctx)
	if ctx.PC != 0x300 || ctx.SP != 1 || ctx.Stack[0] != 0x200 {
		t.Fatalf("after CALL: PC=%03X SP=%d stack0=%03X", ctx.PC, ctx.SP, ctx.Stack[0])
	}
	opRet(ctx)
	if ctx.PC != 0x200 || ctx.SP != 0 {
		t.Fatalf("after RET: PC=%03X SP=%d", ctx.PC, ctx.SP)
	}
}

func TestOpBCD(t *testing.T) {
	ctx := newTestCtx()
	ctx.V[0] = 234
	ctx.I = 0x300
	ctx.Opcode = 0xF033
	opBCD(ctx)
	if ctx.RAM[0x300] != 2 || ctx.RAM[0x301] != 3 || ctx.RAM[0x302] != 4 {
		t.Fatalf("BCD(234) = %d %d %d", ctx.RAM[0x300], ctx.RAM[0x301], ctx.RAM[0x302])
	}
}

func TestOpStoreReadRegs(t *testing.T) {
	ctx := newTestCtx()
	ctx.I = 0x300
	for i := 0; i < 5; i++ {
		ctx.V[i] = byte(i + 1)
	}
	ctx.Opcode = 0xF455
	opStoreRegs(ctx)

	for i := 0; i < 5; i++ {
		ctx.V[i] = 0
	}
	opReadRegs(ctx)

	for i := 0; i < 5; i++ {
		if ctx.V[i] != byte(i+1) {
			t.Fatalf("V%d = %d after store/read roundtrip, want %d", i, ctx.V[i], i+1)
		}
	}
}

func TestOpLoadFontAddress(t *testing.T) {
	ctx := newTestCtx()
	ctx.V[0] = 0xA
	ctx.Opcode = 0xF029
	opLoadFont(ctx)
	if ctx.I != 0xA*5 {
		t.Fatalf("I = %X, want %X", ctx.I, 0xA*5)
	}
}

func TestOpRetWrapsStackOnUnderflow(t *testing.T) {
	ctx := newTestCtx()
	ctx.SP = 0
	ctx.Stack[StackSize-1] = 0x456
	ctx.PC = 0x200
	ctx.Opcode = 0x00EE
	opRet(ctx)
	if ctx.SP != StackSize-1 || ctx.PC != 0x456 {
		t.Fatalf("after underflowing RET: SP=%d PC=%03X, want %d 456", ctx.SP, ctx.PC, StackSize-1)
	}
}

func TestOpCallWrapsStackOnOverflow(t *testing.T) {
	ctx := newTestCtx()
	ctx.SP = StackSize - 1
	ctx.PC = 0x234
	ctx.Opcode = 0x2300
	opCall(ctx)
	if ctx.SP != 0 || ctx.Stack[StackSize-1] != 0x234 || ctx.PC != 0x300 {
		t.Fatalf("after overflowing CALL: SP=%d stack[%d]=%03X PC=%03X", ctx.SP, StackSize-1, ctx.Stack[StackSize-1], ctx.PC)
	}
}

func TestOpSprWZeroMeans256(t *testing.T) {
	ctx := newTestCtx()
	ctx.Opcode = 0x0200
	opSprW(ctx)
	if ctx.SprW != 256 {
		t.Fatalf("SprW = %d, want 256", ctx.SprW)
	}

	ctx.Opcode = 0x0210
	opSprW(ctx)
	if ctx.SprW != 0x10 {
		t.Fatalf("SprW = %d, want 16", ctx.SprW)
	}
}

func TestOpSprHZeroMeans256(t *testing.T) {
	ctx := newTestCtx()
	ctx.Opcode = 0x0300
	opSprH(ctx)
	if ctx.SprH != 256 {
		t.Fatalf("SprH = %d, want 256", ctx.SprH)
	}
}

func TestOpLoadPalPreservesIndexZeroAndPermutesBytes(t *testing.T) {
	ctx := newTestCtx()
	ctx.Palette[0] = 0xDEADBEEF
	ctx.I = 0x300
	ctx.RAM[0x300] = 0x11 // b0
	ctx.RAM[0x301] = 0x22 // b1
	ctx.RAM[0x302] = 0x33 // b2
	ctx.RAM[0x303] = 0x44 // b3
	ctx.Opcode = 0x0401   // load 1 entry
	opLoadPal(ctx)

	if ctx.Palette[0] != 0xDEADBEEF {
		t.Fatalf("Palette[0] = %08X, want untouched 0xDEADBEEF", ctx.Palette[0])
	}
	want := uint32(0x11)<<24 | uint32(0x44)<<16 | uint32(0x33)<<8 | uint32(0x22)
	if ctx.Palette[1] != want {
		t.Fatalf("Palette[1] = %08X, want %08X", ctx.Palette[1], want)
	}
}

func TestOpSkpSknp(t *testing.T) {
	ctx := newTestCtx()
	ctx.V[0] = 0x5
	ctx.Keypad[5] = true
	ctx.PC = 0x200
	ctx.Opcode = 0xE09E
	opSkp(ctx)
	if ctx.PC != 0x202 {
		t.Fatalf("SKP did not skip: PC=%03X", ctx.PC)
	}

	ctx.PC = 0x200
	ctx.Opcode = 0xE0A1
	opSknp(ctx)
	if ctx.PC != 0x200 {
		t.Fatalf("SKNP skipped when key held: PC=%03X", ctx.PC)
	}
}
