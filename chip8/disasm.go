package chip8

import "fmt"

// disasmByOp renders one decoded instruction's mnemonic and operands,
// keyed by Op so the disassembler shares classify() with the case
// interpreter and the translator instead of re-deriving the grouping in
// its own parallel if/else chain.
var disasmByOp [numOps]func(x, y, n, b byte, t uint16) string

func init() {
	disasmByOp[OpBad] = func(x, y, n, b byte, t uint16) string { return "??" }
	disasmByOp[OpSysCall] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("SYS    #%03X", t) }
	disasmByOp[OpCls] = func(x, y, n, b byte, t uint16) string { return "CLS" }
	disasmByOp[OpRet] = func(x, y, n, b byte, t uint16) string { return "RET" }
	disasmByOp[OpScrollRight] = func(x, y, n, b byte, t uint16) string { return "SCR" }
	disasmByOp[OpScrollLeft] = func(x, y, n, b byte, t uint16) string { return "SCL" }
	disasmByOp[OpExit] = func(x, y, n, b byte, t uint16) string { return "EXIT" }
	disasmByOp[OpLow] = func(x, y, n, b byte, t uint16) string { return "LOW" }
	disasmByOp[OpHigh] = func(x, y, n, b byte, t uint16) string { return "HIGH" }
	disasmByOp[OpScrollDown] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("SCD    %X", n) }
	disasmByOp[OpScrollUp] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("SCU    %X", n) }
	disasmByOp[OpMegaOff] = func(x, y, n, b byte, t uint16) string { return "MEGAOFF" }
	disasmByOp[OpMegaOn] = func(x, y, n, b byte, t uint16) string { return "MEGAON" }
	disasmByOp[OpLoadHI] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("LD     I, #%02X????", b) }
	disasmByOp[OpSprW] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("SPRW   #%02X", b) }
	disasmByOp[OpSprH] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("SPRH   #%02X", b) }
	disasmByOp[OpLoadPal] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("LDPAL  #%02X", b) }
	disasmByOp[OpAlpha] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("ALPHA  #%02X", b) }
	disasmByOp[OpDigiSnd] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("DSND   #%02X", b) }
	disasmByOp[OpStopSnd] = func(x, y, n, b byte, t uint16) string { return "SSND" }
	disasmByOp[OpBMode] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("BMODE  #%02X", b) }

	disasmByOp[OpJump] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("JP     #%03X", t) }
	disasmByOp[OpCall] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("CALL   #%03X", t) }
	disasmByOp[OpSeImm] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("SE     V%X, #%02X", x, b) }
	disasmByOp[OpSneImm] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("SNE    V%X, #%02X", x, b) }
	disasmByOp[OpSeReg] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("SE     V%X, V%X", x, y) }
	disasmByOp[OpLoadImm] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("LD     V%X, #%02X", x, b) }
	disasmByOp[OpAddImm] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("ADD    V%X, #%02X", x, b) }
	disasmByOp[OpLoadReg] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("LD     V%X, V%X", x, y) }
	disasmByOp[OpOr] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("OR     V%X, V%X", x, y) }
	disasmByOp[OpAnd] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("AND    V%X, V%X", x, y) }
	disasmByOp[OpXor] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("XOR    V%X, V%X", x, y) }
	disasmByOp[OpAddReg] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("ADD    V%X, V%X", x, y) }
	disasmByOp[OpSubReg] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("SUB    V%X, V%X", x, y) }
	disasmByOp[OpShr] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("SHR    V%X", x) }
	disasmByOp[OpSubnReg] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("SUBN   V%X, V%X", x, y) }
	disasmByOp[OpShl] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("SHL    V%X", x) }
	disasmByOp[OpSneReg] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("SNE    V%X, V%X", x, y) }
	disasmByOp[OpLoadI] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("LD     I, #%03X", t) }
	disasmByOp[OpJumpV0] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("JP     V0, #%03X", t) }
	disasmByOp[OpRnd] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("RND    V%X, #%02X", x, b) }
	disasmByOp[OpDraw] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("DRW    V%X, V%X, %d", x, y, n) }
	disasmByOp[OpSkp] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("SKP    V%X", x) }
	disasmByOp[OpSknp] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("SKNP   V%X", x) }
	disasmByOp[OpLoadVxDT] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("LD     V%X, DT", x) }
	disasmByOp[OpLoadVxKey] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("LD     V%X, K", x) }
	disasmByOp[OpLoadDTVx] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("LD     DT, V%X", x) }
	disasmByOp[OpLoadSTVx] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("LD     ST, V%X", x) }
	disasmByOp[OpAddIVx] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("ADD    I, V%X", x) }
	disasmByOp[OpLoadFont] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("LD     F, V%X", x) }
	disasmByOp[OpLoadHFont] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("LD     HF, V%X", x) }
	disasmByOp[OpBCD] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("LD     B, V%X", x) }
	disasmByOp[OpStoreRegs] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("LD     [I], V%X", x) }
	disasmByOp[OpReadRegs] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("LD     V%X, [I]", x) }
	disasmByOp[OpStoreR48] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("LD     R, V%X", x) }
	disasmByOp[OpReadR48] = func(x, y, n, b byte, t uint16) string { return fmt.Sprintf("LD     V%X, R", x) }
}

// Disassemble renders the instruction at a RAM address, e.g.
// "200 - LD     V0, #0A". Addresses with no whole instruction render as "-".
func (ctx *Context) Disassemble(addr uint16) string {
	if int(addr)+1 >= len(ctx.RAM) {
		return fmt.Sprintf("%03X - -", addr)
	}
	opcode := uint16(ctx.RAM[addr])<<8 | uint16(ctx.RAM[addr+1])
	if opcode == 0 {
		return fmt.Sprintf("%03X - -", addr)
	}
	return fmt.Sprintf("%03X - %s", addr, DisassembleOpcode(opcode))
}

// DisassembleOpcode renders a bare 16-bit opcode as a mnemonic, independent
// of any Context. Used by Context.Disassemble and by the disasm CLI
// subcommand when walking a ROM file directly.
func DisassembleOpcode(opcode uint16) string {
	x, y, n, b, t := fields(opcode)
	return disasmByOp[classify(opcode)](x, y, n, b, t)
}
