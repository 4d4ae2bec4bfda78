package chip8

// opFunc implements one Op against a Context. It reads ctx.Opcode (and PC,
// already advanced past the instruction before dispatch) and mutates state
// in place. This table is used by the case interpreter; the pointer and
// cache interpreters call the same functions but reach them through the
// nibble-indexed tables of interp_ptr.go instead of execByOp.
type opFunc func(ctx *Context)

var execByOp [numOps]opFunc

func init() {
	execByOp[OpBad] = opBad
	execByOp[OpSysCall] = opNop
	execByOp[OpCls] = opCls
	execByOp[OpRet] = opRet
	execByOp[OpScrollRight] = opScrollRight
	execByOp[OpScrollLeft] = opScrollLeft
	execByOp[OpExit] = opExit
	execByOp[OpLow] = opLow
	execByOp[OpHigh] = opHigh
	execByOp[OpScrollDown] = opScrollDown
	execByOp[OpScrollUp] = opScrollUp
	execByOp[OpMegaOff] = opMegaOff
	execByOp[OpMegaOn] = opMegaOn
	execByOp[OpLoadHI] = opLoadHI
	execByOp[OpSprW] = opSprW
	execByOp[OpSprH] = opSprH
	execByOp[OpLoadPal] = opLoadPal
	execByOp[OpAlpha] = opNop
	execByOp[OpDigiSnd] = opNop
	execByOp[OpStopSnd] = opNop
	execByOp[OpBMode] = opNop

	execByOp[OpJump] = opJump
	execByOp[OpCall] = opCall
	execByOp[OpSeImm] = opSeImm
	execByOp[OpSneImm] = opSneImm
	execByOp[OpSeReg] = opSeReg
	execByOp[OpLoadImm] = opLoadImm
	execByOp[OpAddImm] = opAddImm
	execByOp[OpLoadReg] = opLoadReg
	execByOp[OpOr] = opOr
	execByOp[OpAnd] = opAnd
	execByOp[OpXor] = opXor
	execByOp[OpAddReg] = opAddReg
	execByOp[OpSubReg] = opSubReg
	execByOp[OpShr] = opShr
	execByOp[OpSubnReg] = opSubnReg
	execByOp[OpShl] = opShl
	execByOp[OpSneReg] = opSneReg
	execByOp[OpLoadI] = opLoadI
	execByOp[OpJumpV0] = opJumpV0
	execByOp[OpRnd] = opRnd
	execByOp[OpDraw] = opDraw
	execByOp[OpSkp] = opSkp
	execByOp[OpSknp] = opSknp
	execByOp[OpLoadVxDT] = opLoadVxDT
	execByOp[OpLoadVxKey] = opLoadVxKey
	execByOp[OpLoadDTVx] = opLoadDTVx
	execByOp[OpLoadSTVx] = opLoadSTVx
	execByOp[OpAddIVx] = opAddIVx
	execByOp[OpLoadFont] = opLoadFont
	execByOp[OpLoadHFont] = opLoadHFont
	execByOp[OpBCD] = opBCD
	execByOp[OpStoreRegs] = opStoreRegs
	execByOp[OpReadRegs] = opReadRegs
	execByOp[OpStoreR48] = opStoreR48
	execByOp[OpReadR48] = opReadR48
}

func opBad(ctx *Context) {
	ctx.Log.Err("%s", DecodeError{PC: ctx.PC - 2, Opcode: ctx.Opcode})
}

func opNop(*Context) {}

func opCls(ctx *Context) {
	if ctx.Handlers.VidSync != nil {
		ctx.Handlers.VidSync(ctx.Userdata)
	}
	ctx.Cls()
}

func opRet(ctx *Context) {
	if ctx.SP == 0 {
		ctx.SP = StackSize
	}
	ctx.SP--
	ctx.PC = ctx.Stack[ctx.SP]
}

func opScrollRight(ctx *Context) { ctx.ScrollRight(4) }
func opScrollLeft(ctx *Context)  { ctx.ScrollLeft(4) }

func opExit(ctx *Context) {
	ctx.ExecFlags |= ExecBreak
}

func opLow(ctx *Context) {
	if ctx.System == SystemSChip || ctx.System == SystemMChip {
		ctx.SetSystem(SystemChip8)
	}
}

func opHigh(ctx *Context) {
	if ctx.System != SystemMChip {
		ctx.SetSystem(SystemSChip)
	}
}

func opScrollDown(ctx *Context) {
	_, _, n, _, _ := fields(ctx.Opcode)
	ctx.ScrollDown(int(n))
}

func opScrollUp(ctx *Context) {
	_, _, n, _, _ := fields(ctx.Opcode)
	ctx.ScrollUp(int(n))
}

func opMegaOff(ctx *Context) { ctx.SetSystem(SystemSChip) }
func opMegaOn(ctx *Context)  { ctx.SetSystem(SystemMChip) }

// opLoadHI implements MegaChip's 24-bit "LD I, nnnnnn": the address
// occupies the two bytes following the opcode.
func opLoadHI(ctx *Context) {
	if int(ctx.PC)+1 >= len(ctx.RAM) {
		return
	}
	hi := uint32(ctx.RAM[ctx.PC])
	lo := uint32(ctx.RAM[ctx.PC+1])
	ctx.I = uint32(ctx.Opcode&0xFF)<<16 | hi<<8 | lo
	ctx.PC += 2
}

func opSprW(ctx *Context) {
	_, _, _, b, _ := fields(ctx.Opcode)
	ctx.SprW = int(b)
	if ctx.SprW == 0 {
		ctx.SprW = 256
	}
}

func opSprH(ctx *Context) {
	_, _, _, b, _ := fields(ctx.Opcode)
	ctx.SprH = int(b)
	if ctx.SprH == 0 {
		ctx.SprH = 256
	}
}

// opLoadPal loads n palette entries (4 bytes each) from RAM at I into
// Palette[1..n], leaving Palette[0] (always transparent) untouched. Each
// entry's 4 input bytes (b0,b1,b2,b3) are repacked as stored =
// b0<<24 | b3<<16 | b2<<8 | b1.
func opLoadPal(ctx *Context) {
	_, _, _, b, _ := fields(ctx.Opcode)
	n := int(b)
	addr := int(ctx.I)
	for i := 1; i <= n && addr+3 < len(ctx.RAM); i++ {
		b0 := uint32(ctx.RAM[addr])
		b1 := uint32(ctx.RAM[addr+1])
		b2 := uint32(ctx.RAM[addr+2])
		b3 := uint32(ctx.RAM[addr+3])
		ctx.Palette[i] = b0<<24 | b3<<16 | b2<<8 | b1
		addr += 4
	}
}

func opJump(ctx *Context) {
	_, _, _, _, t := fields(ctx.Opcode)
	ctx.PC = t
}

func opCall(ctx *Context) {
	_, _, _, _, t := fields(ctx.Opcode)
	ctx.Stack[ctx.SP] = ctx.PC
	ctx.SP++
	if int(ctx.SP) >= StackSize {
		ctx.SP = 0
	}
	ctx.PC = t
}

func opSeImm(ctx *Context) {
	x, _, _, b, _ := fields(ctx.Opcode)
	if ctx.V[x] == b {
		ctx.PC += 2
	}
}

func opSneImm(ctx *Context) {
	x, _, _, b, _ := fields(ctx.Opcode)
	if ctx.V[x] != b {
		ctx.PC += 2
	}
}

func opSeReg(ctx *Context) {
	x, y, _, _, _ := fields(ctx.Opcode)
	if ctx.V[x] == ctx.V[y] {
		ctx.PC += 2
	}
}

func opLoadImm(ctx *Context) {
	x, _, _, b, _ := fields(ctx.Opcode)
	ctx.V[x] = b
}

func opAddImm(ctx *Context) {
	x, _, _, b, _ := fields(ctx.Opcode)
	ctx.V[x] += b
}

func opLoadReg(ctx *Context) {
	x, y, _, _, _ := fields(ctx.Opcode)
	ctx.V[x] = ctx.V[y]
}

func opOr(ctx *Context) {
	x, y, _, _, _ := fields(ctx.Opcode)
	ctx.V[x] |= ctx.V[y]
}

func opAnd(ctx *Context) {
	x, y, _, _, _ := fields(ctx.Opcode)
	ctx.V[x] &= ctx.V[y]
}

func opXor(ctx *Context) {
	x, y, _, _, _ := fields(ctx.Opcode)
	ctx.V[x] ^= ctx.V[y]
}

func opAddReg(ctx *Context) {
	x, y, _, _, _ := fields(ctx.Opcode)
	sum := uint16(ctx.V[x]) + uint16(ctx.V[y])
	ctx.V[x] = byte(sum)
	if sum > 0xFF {
		ctx.V[0xF] = 1
	} else {
		ctx.V[0xF] = 0
	}
}

func opSubReg(ctx *Context) {
	x, y, _, _, _ := fields(ctx.Opcode)
	borrow := byte(0)
	if ctx.V[x] >= ctx.V[y] {
		borrow = 1
	}
	ctx.V[x] -= ctx.V[y]
	ctx.V[0xF] = borrow
}

func opShr(ctx *Context) {
	x, _, _, _, _ := fields(ctx.Opcode)
	lsb := ctx.V[x] & 1
	ctx.V[x] >>= 1
	ctx.V[0xF] = lsb
}

func opSubnReg(ctx *Context) {
	x, y, _, _, _ := fields(ctx.Opcode)
	borrow := byte(0)
	if ctx.V[y] >= ctx.V[x] {
		borrow = 1
	}
	ctx.V[x] = ctx.V[y] - ctx.V[x]
	ctx.V[0xF] = borrow
}

func opShl(ctx *Context) {
	x, _, _, _, _ := fields(ctx.Opcode)
	msb := (ctx.V[x] >> 7) & 1
	ctx.V[x] <<= 1
	ctx.V[0xF] = msb
}

func opSneReg(ctx *Context) {
	x, y, _, _, _ := fields(ctx.Opcode)
	if ctx.V[x] != ctx.V[y] {
		ctx.PC += 2
	}
}

func opLoadI(ctx *Context) {
	_, _, _, _, t := fields(ctx.Opcode)
	ctx.I = uint32(t)
}

func opJumpV0(ctx *Context) {
	_, _, _, _, t := fields(ctx.Opcode)
	ctx.PC = t + uint16(ctx.V[0])
}

func opRnd(ctx *Context) {
	x, _, _, b, _ := fields(ctx.Opcode)
	ctx.V[x] = ctx.rng.Byte() & b
}

// opDraw dispatches to the system-appropriate sprite rasterizer. MegaChip
// sprites are stored as palette-index bytes (SprW x SprH) at I rather than
// 1bpp rows.
func opDraw(ctx *Context) {
	x, y, n, _, _ := fields(ctx.Opcode)
	vx, vy := int(ctx.V[x]), int(ctx.V[y])

	switch ctx.System {
	case SystemMChip:
		size := ctx.SprW * ctx.SprH
		if int(ctx.I)+size > len(ctx.RAM) {
			return
		}
		sprite := ctx.RAM[ctx.I : int(ctx.I)+size]
		if ctx.DrawMChipSprite(vx, vy, sprite) {
			ctx.V[0xF] = 1
		} else {
			ctx.V[0xF] = 0
		}
	case SystemSChip:
		wide := n == 0
		rows := int(n)
		if wide {
			rows = 16
		}
		size := rows
		if wide {
			size = 32
		}
		if int(ctx.I)+size > len(ctx.RAM) {
			return
		}
		sprite := ctx.RAM[ctx.I : int(ctx.I)+size]
		if ctx.DrawSChipSprite(vx, vy, sprite, wide) {
			ctx.V[0xF] = 1
		} else {
			ctx.V[0xF] = 0
		}
	default: // CHIP8, HCHIP
		rows := int(n)
		if int(ctx.I)+rows > len(ctx.RAM) {
			return
		}
		sprite := ctx.RAM[ctx.I : int(ctx.I)+rows]
		if ctx.DrawChip8Sprite(vx, vy, sprite) {
			ctx.V[0xF] = 1
		} else {
			ctx.V[0xF] = 0
		}
	}
}

func opSkp(ctx *Context) {
	x, _, _, _, _ := fields(ctx.Opcode)
	key := ctx.V[x] & 0xF
	if ctx.Keypad[key] {
		ctx.PC += 2
	}
}

func opSknp(ctx *Context) {
	x, _, _, _, _ := fields(ctx.Opcode)
	key := ctx.V[x] & 0xF
	if !ctx.Keypad[key] {
		ctx.PC += 2
	}
}

func opLoadVxDT(ctx *Context) {
	x, _, _, _, _ := fields(ctx.Opcode)
	ctx.V[x] = ctx.DT
}

// opLoadVxKey blocks on a key press via Handlers.KeyWait. A -1 result
// rewinds PC so the same instruction is retried next cycle, giving a
// busy-wait without the core ever touching a thread primitive itself.
func opLoadVxKey(ctx *Context) {
	x, _, _, _, _ := fields(ctx.Opcode)
	if ctx.Handlers.KeyWait == nil {
		return
	}
	key := ctx.Handlers.KeyWait(ctx.Userdata)
	if key < 0 {
		ctx.PC -= 2
		return
	}
	ctx.V[x] = byte(key)
}

func opLoadDTVx(ctx *Context) {
	x, _, _, _, _ := fields(ctx.Opcode)
	ctx.DT = ctx.V[x]
}

func opLoadSTVx(ctx *Context) {
	x, _, _, _, _ := fields(ctx.Opcode)
	ctx.ST = ctx.V[x]
	on := ctx.ST > 0
	if on != ctx.SoundOn {
		ctx.SoundOn = on
		if ctx.Handlers.SndCtrl != nil {
			ctx.Handlers.SndCtrl(ctx.Userdata, on)
		}
	}
}

func opAddIVx(ctx *Context) {
	x, _, _, _, _ := fields(ctx.Opcode)
	ctx.I += uint32(ctx.V[x])
}

func opLoadFont(ctx *Context) {
	x, _, _, _, _ := fields(ctx.Opcode)
	ctx.I = uint32(ctx.V[x]&0xF) * 5
}

func opLoadHFont(ctx *Context) {
	x, _, _, _, _ := fields(ctx.Opcode)
	ctx.I = uint32(HFontBase) + uint32(ctx.V[x]&0xF)*10
}

func opBCD(ctx *Context) {
	x, _, _, _, _ := fields(ctx.Opcode)
	v := ctx.V[x]
	if int(ctx.I)+2 >= len(ctx.RAM) {
		return
	}
	ctx.RAM[ctx.I] = v / 100
	ctx.RAM[ctx.I+1] = (v / 10) % 10
	ctx.RAM[ctx.I+2] = v % 10
}

func opStoreRegs(ctx *Context) {
	x, _, _, _, _ := fields(ctx.Opcode)
	if int(ctx.I)+int(x) >= len(ctx.RAM) {
		return
	}
	for i := 0; i <= int(x); i++ {
		ctx.RAM[int(ctx.I)+i] = ctx.V[i]
	}
}

func opReadRegs(ctx *Context) {
	x, _, _, _, _ := fields(ctx.Opcode)
	if int(ctx.I)+int(x) >= len(ctx.RAM) {
		return
	}
	for i := 0; i <= int(x); i++ {
		ctx.V[i] = ctx.RAM[int(ctx.I)+i]
	}
}

func opStoreR48(ctx *Context) {
	x, _, _, _, _ := fields(ctx.Opcode)
	for i := 0; i <= int(x) && i < 8; i++ {
		ctx.HP[i] = ctx.V[i]
	}
}

func opReadR48(ctx *Context) {
	x, _, _, _, _ := fields(ctx.Opcode)
	for i := 0; i <= int(x) && i < 8; i++ {
		ctx.V[i] = ctx.HP[i]
	}
}
