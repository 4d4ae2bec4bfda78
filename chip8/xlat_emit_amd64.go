package chip8

import "unsafe"

// hostReg is an x86-64 general-purpose register number (Intel encoding:
// 0=A 1=C 2=D 3=B 4=SP 5=BP 6=SI 7=DI, 8-15=R8-R15).
type hostReg byte

const (
	hostRAX hostReg = 0
	hostRCX hostReg = 1
	hostRDX hostReg = 2
	hostRBX hostReg = 3
	hostRSP hostReg = 4
	hostRBP hostReg = 5
	hostRSI hostReg = 6
	hostRDI hostReg = 7
	hostR8  hostReg = 8
	hostR9  hostReg = 9
	hostR10 hostReg = 10
	hostR11 hostReg = 11
	hostR12 hostReg = 12
	hostR13 hostReg = 13
	hostR14 hostReg = 14
	hostR15 hostReg = 15 // reserved: address scratch, never in hostPool
)

// emitter accumulates raw x86-64 machine code for one translation block.
// It only ever targets byte-sized (8-bit) operand forms since every guest
// V register is a byte; SIL/DIL/BPL/SPL (the low bytes of RSI/RDI/RBP/RSP)
// require a REX prefix to address as byte registers instead of AH/CH/DH/BH,
// which every emit method supplies by always writing a rex() byte.
type emitter struct {
	code []byte
}

func newEmitter() *emitter {
	return &emitter{code: make([]byte, 0, 256)}
}

func (e *emitter) byte(b byte) { e.code = append(e.code, b) }

func (e *emitter) u64(v uint64) {
	for i := 0; i < 8; i++ {
		e.byte(byte(v >> (8 * i)))
	}
}

// rex builds a REX prefix: W sets 64-bit operand size, R extends ModRM.reg,
// X extends SIB.index, B extends ModRM.rm/SIB.base/opcode-reg.
func rex(w, r, x, b bool) byte {
	v := byte(0x40)
	if w {
		v |= 1 << 3
	}
	if r {
		v |= 1 << 2
	}
	if x {
		v |= 1 << 1
	}
	if b {
		v |= 1
	}
	return v
}

func modrm(mod, reg, rm byte) byte {
	return mod<<6 | (reg&7)<<3 | (rm & 7)
}

// emitMovImm8 : MOV r8, imm8
func (e *emitter) emitMovImm8(dst hostReg, imm byte) {
	e.byte(rex(false, false, false, dst >= 8))
	e.byte(0xB0 + byte(dst&7))
	e.byte(imm)
}

// emitMovRegReg8 : MOV dst, src (both byte registers)
func (e *emitter) emitMovRegReg8(dst, src hostReg) {
	e.byte(rex(false, src >= 8, false, dst >= 8))
	e.byte(0x88)
	e.byte(modrm(3, byte(src), byte(dst)))
}

// emitALURegReg8 emits a byte-sized ALU op between two registers: opcode
// selects ADD(0x00)/OR(0x08)/AND(0x20)/SUB(0x28)/XOR(0x30), dst op= src.
func (e *emitter) emitALURegReg8(opcode byte, dst, src hostReg) {
	e.byte(rex(false, src >= 8, false, dst >= 8))
	e.byte(opcode)
	e.byte(modrm(3, byte(src), byte(dst)))
}

func (e *emitter) emitAdd8(dst, src hostReg) { e.emitALURegReg8(0x00, dst, src) }
func (e *emitter) emitOr8(dst, src hostReg)  { e.emitALURegReg8(0x08, dst, src) }
func (e *emitter) emitAnd8(dst, src hostReg) { e.emitALURegReg8(0x20, dst, src) }
func (e *emitter) emitSub8(dst, src hostReg) { e.emitALURegReg8(0x28, dst, src) }
func (e *emitter) emitXor8(dst, src hostReg) { e.emitALURegReg8(0x30, dst, src) }

// emitAddImm8 : ADD r8, imm8  (opcode 0x80 /0)
func (e *emitter) emitAddImm8(dst hostReg, imm byte) {
	e.byte(rex(false, false, false, dst >= 8))
	e.byte(0x80)
	e.byte(modrm(3, 0, byte(dst)))
	e.byte(imm)
}

// emitNeg8 : NEG r8 (two's complement negate; opcode 0xF6 /3)
func (e *emitter) emitNeg8(dst hostReg) {
	e.byte(rex(false, false, false, dst >= 8))
	e.byte(0xF6)
	e.byte(modrm(3, 3, byte(dst)))
}

// emitShr1 / emitShl1 : SHR/SHL r8, 1 (opcode 0xD0 /5, /4)
func (e *emitter) emitShr1(dst hostReg) {
	e.byte(rex(false, false, false, dst >= 8))
	e.byte(0xD0)
	e.byte(modrm(3, 5, byte(dst)))
}

func (e *emitter) emitShl1(dst hostReg) {
	e.byte(rex(false, false, false, dst >= 8))
	e.byte(0xD0)
	e.byte(modrm(3, 4, byte(dst)))
}

// emitLoadAbs8 : MOVABS r15, addr ; MOV dst, [r15]
func (e *emitter) emitLoadAbs8(dst hostReg, addr uintptr) {
	e.emitMovabsR15(addr)
	e.byte(rex(false, dst >= 8, false, true)) // REX.B: base register is R15
	e.byte(0x8A)
	e.byte(modrm(0, byte(dst), byte(hostR15)))
}

// emitStoreAbs8 : MOVABS r15, addr ; MOV [r15], src
func (e *emitter) emitStoreAbs8(addr uintptr, src hostReg) {
	e.emitMovabsR15(addr)
	e.byte(rex(false, src >= 8, false, true)) // REX.B: base register is R15
	e.byte(0x88)
	e.byte(modrm(0, byte(src), byte(hostR15)))
}

// emitMovabsR15 : MOVABS r15, imm64
func (e *emitter) emitMovabsR15(addr uintptr) {
	e.byte(rex(true, false, false, true))
	e.byte(0xB8 + byte(hostR15&7))
	e.u64(uint64(addr))
}

// emitStoreImm16Abs : MOVABS r15, addr ; MOV word ptr [r15], imm16
func (e *emitter) emitStoreImm16Abs(addr uintptr, imm uint16) {
	e.emitMovabsR15(addr)
	e.byte(0x66) // operand-size override: 16-bit
	e.byte(rex(false, false, false, true))
	e.byte(0xC7)
	e.byte(modrm(0, 0, byte(hostR15)))
	e.byte(byte(imm))
	e.byte(byte(imm >> 8))
}

// emitRet emits a bare RET.
func (e *emitter) emitRet() { e.byte(0xC3) }

// addrOf returns the address of a byte within a live Go value. The
// returned pointer is baked into emitted code as an immediate; it stays
// valid only because the Go runtime's garbage collector never relocates
// heap objects in current Go versions. If that ever changes this emitter
// would need to re-resolve addresses on every call instead of baking them
// in once per block.
func addrOf(p *byte) uintptr {
	return uintptr(unsafe.Pointer(p))
}
