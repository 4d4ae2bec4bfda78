package chip8

import (
	"os"
)

// System selects the instruction-set/framebuffer variant a Context runs.
type System int

const (
	SystemChip8 System = iota
	SystemHChip
	SystemSChip
	SystemMChip
)

func (s System) String() string {
	switch s {
	case SystemChip8:
		return "CHIP8"
	case SystemHChip:
		return "HCHIP"
	case SystemSChip:
		return "SCHIP"
	case SystemMChip:
		return "MCHIP"
	default:
		return "?"
	}
}

// Mode selects which of the four execution backends a Context is bound to.
// It's fixed at creation time, matching MODE_CASE/MODE_PTR/MODE_CACHE/
// MODE_DBT/MODE_TEST in the reference implementation.
type Mode int

const (
	ModeCase Mode = iota
	ModePtr
	ModeCache
	ModeDBT
	ModeTest
)

// ExecFlags is a bitfield checked before every guest instruction.
type ExecFlags uint32

const (
	ExecBreak ExecFlags = 1 << iota
	ExecDebug
	ExecSubset
)

const (
	RAMSize   = 0x1000 // standard 4 KiB; grows for MegaChip ROMs
	StackSize = 32

	LFontSize = 16 * 5  // low-res font: 16 glyphs * 5 bytes
	HFontSize = 16 * 10 // high-res font: 16 glyphs * 10 bytes
	HFontBase = LFontSize

	Chip8XRes, Chip8YRes = 64, 32
	HChipXRes, HChipYRes = 64, 64
	SChipXRes, SChipYRes = 128, 64
	MChipXRes, MChipYRes = 256, 192
)

// lfont is Cowgod's Chip-8 Technical Reference low-res font.
var lfont = [LFontSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, 0x20, 0x60, 0x20, 0x20, 0x70, // 0, 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, 0xF0, 0x10, 0xF0, 0x10, 0xF0, // 2, 3
	0x90, 0x90, 0xF0, 0x10, 0x10, 0xF0, 0x80, 0xF0, 0x10, 0xF0, // 4, 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, 0xF0, 0x10, 0x20, 0x40, 0x40, // 6, 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, 0xF0, 0x90, 0xF0, 0x10, 0xF0, // 8, 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, 0xE0, 0x90, 0xE0, 0x90, 0xE0, // A, B
	0xF0, 0x80, 0x80, 0x80, 0xF0, 0xE0, 0x90, 0x90, 0x90, 0xE0, // C, D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, 0xF0, 0x80, 0xF0, 0x80, 0x80, // E, F
}

// hfont is the extended high-res font used by SCHIP's LD HF, Vx.
var hfont = [HFontSize]byte{
	0xF0, 0xF0, 0x90, 0x90, 0x90, 0x90, 0x90, 0x90, 0xF0, 0xF0, // 0
	0x20, 0x20, 0x60, 0x60, 0x20, 0x20, 0x20, 0x20, 0x70, 0x70, // 1
	0xF0, 0xF0, 0x10, 0x10, 0xF0, 0xF0, 0x80, 0x80, 0xF0, 0xF0, // 2
	0xF0, 0xF0, 0x10, 0x10, 0xF0, 0xF0, 0x10, 0x10, 0xF0, 0xF0, // 3
	0x90, 0x90, 0x90, 0x90, 0xF0, 0xF0, 0x10, 0x10, 0x10, 0x10, // 4
	0xF0, 0xF0, 0x80, 0x80, 0xF0, 0xF0, 0x10, 0x10, 0xF0, 0xF0, // 5
	0xF0, 0xF0, 0x80, 0x80, 0xF0, 0xF0, 0x90, 0x90, 0xF0, 0xF0, // 6
	0xF0, 0xF0, 0x10, 0x10, 0x20, 0x20, 0x40, 0x40, 0x40, 0x40, // 7
	0xF0, 0xF0, 0x90, 0x90, 0xF0, 0xF0, 0x90, 0x90, 0xF0, 0xF0, // 8
	0xF0, 0xF0, 0x90, 0x90, 0xF0, 0xF0, 0x10, 0x10, 0xF0, 0xF0, // 9
	0xF0, 0xF0, 0x90, 0x90, 0xF0, 0xF0, 0x90, 0x90, 0x90, 0x90, // A
	0xE0, 0xE0, 0x90, 0x90, 0xE0, 0xE0, 0x90, 0x90, 0xE0, 0xE0, // B
	0xF0, 0xF0, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0xF0, 0xF0, // C
	0xE0, 0xE0, 0x90, 0x90, 0x90, 0x90, 0x90, 0x90, 0xE0, 0xE0, // D
	0xF0, 0xF0, 0x80, 0x80, 0xF0, 0xF0, 0x80, 0x80, 0xF0, 0xF0, // E
	0xF0, 0xF0, 0x80, 0x80, 0xF0, 0xF0, 0x80, 0x80, 0x80, 0x80, // F
}

// Handlers are the driver callbacks the core invokes: keypad wait, sound
// on/off, video-mode change, video-sync pulse. A host driver implements
// these; the core never touches a window, an audio device or a thread
// primitive directly.
type Handlers struct {
	KeyWait func(userdata interface{}) int
	SndCtrl func(userdata interface{}, enable bool)
	SetMode func(userdata interface{}, system System, w, h int)
	VidSync func(userdata interface{})
}

// Context is the guest machine state plus execution controls: one instance
// per emulated CHIP-8/HiRes/SuperChip/MegaChip program.
type Context struct {
	V      [16]byte
	I      uint32 // 16-bit standard, 24-bit in MegaChip
	PC     uint16
	SP     uint8
	Stack  [StackSize]uint16
	DT, ST byte

	Opcode uint16

	RAM []byte // 0x000-0x1FF reserved for fonts; ROM loaded at 0x200

	// Framebuffer holds one byte per pixel (0 or 1) at SChipXRes*SChipYRes
	// for CHIP8/HCHIP/SCHIP -- CHIP8 draws through a 2x2 expansion into
	// this same SCHIP-sized buffer, matching the reference gchip layout.
	Framebuffer []byte
	// FramebufferRGBA holds one packed ARGB word per pixel for MegaChip,
	// at MChipXRes*MChipYRes.
	FramebufferRGBA []uint32

	Keypad [16]bool

	System System
	Mode   Mode

	ExecFlags  ExecFlags
	Cycles     int64
	MaxCycles  int64
	Dirty      bool
	SoundOn    bool

	HP      [8]byte     // SCHIP HP48/RPL user registers
	Palette [256]uint32 // MegaChip palette; entry 0 is always transparent
	SprW    int
	SprH    int

	Handlers Handlers
	Userdata interface{}

	Breakpoints map[uint16]Breakpoint

	rng rng

	Log Logger

	// blocks caches translated guest code, keyed by guest PC. Only used
	// in ModeDBT.
	blocks      []TranslationBlock
	blocksReady bool

	// cache holds precomputed (opcode, handler) pairs, one per RAM
	// address, built once on first use in ModeCache.
	cache      []cacheEntry
	cacheReady bool
}

// NewContext creates a fresh Context in the given mode: fonts installed at
// 0x000 (and the high font at 0x050), PC=0x200, a standard 4 KiB RAM and an
// SCHIP-sized framebuffer.
func NewContext(mode Mode) *Context {
	ctx := &Context{
		PC:     0x200,
		Mode:   mode,
		System: SystemChip8,
		Log:    NoopLogger{},
	}
	ctx.RAM = make([]byte, RAMSize)
	ctx.Framebuffer = make([]byte, SChipXRes*SChipYRes)
	ctx.Breakpoints = make(map[uint16]Breakpoint)
	ctx.SprW, ctx.SprH = 8, 8

	copy(ctx.RAM[:LFontSize], lfont[:])
	copy(ctx.RAM[HFontBase:HFontBase+HFontSize], hfont[:])

	ctx.rng.Seed(0xC8C8C8C8)

	if mode == ModeDBT {
		ctx.blocks = make([]TranslationBlock, RAMSize)
	}

	return ctx
}

// Destroy releases a Context's owned memory. In Go this just drops
// references, but it's kept as an explicit call (mirroring
// c8_destroy_context) so drivers that pool contexts have a clear point to
// call it.
func (ctx *Context) Destroy() {
	for i := range ctx.blocks {
		if ctx.blocks[i].Code != nil {
			freeExecPage(ctx.blocks[i].Code)
		}
	}
	ctx.RAM = nil
	ctx.Framebuffer = nil
	ctx.FramebufferRGBA = nil
	ctx.blocks = nil
}

// LoadROM copies program bytes into RAM starting at 0x200, growing RAM
// first if the ROM doesn't fit the standard 4 KiB address space (assuming
// MegaChip, which uses 24-bit addressing).
func (ctx *Context) LoadROM(program []byte) error {
	const base = 0x200

	need := base + len(program)
	if need > len(ctx.RAM) {
		ctx.Log.Info("ROM exceeds standard size, growing RAM to %d bytes (MegaChip)", need)
		grown := make([]byte, need)
		copy(grown, ctx.RAM)
		ctx.RAM = grown
		if ctx.blocks != nil {
			blocks := make([]TranslationBlock, need)
			copy(blocks, ctx.blocks)
			ctx.blocks = blocks
		}
	}

	copy(ctx.RAM[base:], program)
	ctx.cacheReady = false
	ctx.blocksReady = false
	return nil
}

// LoadFile reads a raw ROM binary from disk and loads it. Only raw
// binaries are accepted -- see SPEC_FULL.md §4.7 for why this core carries
// no assembler.
func (ctx *Context) LoadFile(path string) error {
	program, err := os.ReadFile(path)
	if err != nil {
		return LoadError{Path: path, Reason: err.Error()}
	}
	return ctx.LoadROM(program)
}

// SetSystem switches the active system and notifies the driver via
// SetMode so it can resize its window/render target.
func (ctx *Context) SetSystem(system System) error {
	var w, h int

	switch system {
	case SystemChip8:
		w, h = Chip8XRes, Chip8YRes
	case SystemHChip:
		w, h = HChipXRes, HChipYRes
	case SystemSChip:
		w, h = SChipXRes, SChipYRes
	case SystemMChip:
		w, h = MChipXRes, MChipYRes
		if len(ctx.FramebufferRGBA) < MChipXRes*MChipYRes {
			ctx.Log.Debug("allocating RGBA framebuffer for MegaChip mode")
			ctx.FramebufferRGBA = make([]uint32, MChipXRes*MChipYRes)
		}
	default:
		return InvalidSystem{System: system}
	}

	ctx.System = system
	if ctx.Handlers.SetMode != nil {
		ctx.Handlers.SetMode(ctx.Userdata, system, w, h)
	}
	return nil
}

// SetHandlers installs the driver callback table and its opaque userdata.
func (ctx *Context) SetHandlers(h Handlers, userdata interface{}) {
	ctx.Handlers = h
	ctx.Userdata = userdata
}

// SetKeyState records a keypad edge. i must be 0..15.
func (ctx *Context) SetKeyState(i int, pressed bool) {
	if i < 0 || i > 15 {
		return
	}
	ctx.Keypad[i] = pressed
}

// SetDebuggerEnabled toggles ExecDebug.
func (ctx *Context) SetDebuggerEnabled(enable bool) {
	if enable {
		ctx.ExecFlags |= ExecDebug
	} else {
		ctx.ExecFlags &^= ExecDebug
	}
}

// Seed reseeds the Context's embedded PRNG (used by RND and by the
// lockstep tester to synchronize two contexts).
func (ctx *Context) Seed(seed uint32) {
	ctx.rng.Seed(seed)
}

// UpdateCounters decrements DT and ST by delta, saturating at zero, and
// fires the sound edge callback on ST transitions across zero.
func (ctx *Context) UpdateCounters(delta byte) {
	if delta >= ctx.DT {
		ctx.DT = 0
	} else {
		ctx.DT -= delta
	}

	wasOn := ctx.ST > 0
	if delta >= ctx.ST {
		ctx.ST = 0
	} else {
		ctx.ST -= delta
	}
	isOn := ctx.ST > 0

	if wasOn != isOn {
		ctx.SoundOn = isOn
		if ctx.Handlers.SndCtrl != nil {
			ctx.Handlers.SndCtrl(ctx.Userdata, isOn)
		}
	}
}

// ExecuteCycles runs up to cycles guest cycles on whichever backend the
// Context was created with, returning the number of cycles actually
// executed. It returns early with a RuntimeBreak error when BREAK is
// raised (EXIT), and with a Breakpoint error when a breakpoint trips. A
// key wait with no key pressed rewinds PC, so the same LD Vx, K is retried
// on the next cycle of the same call.
func (ctx *Context) ExecuteCycles(cycles int64) (int64, error) {
	ctx.ExecFlags &^= ExecBreak

	switch ctx.Mode {
	case ModeCase, ModeTest:
		return ctx.executeCaseCycles(cycles)
	case ModePtr:
		return ctx.executePtrCycles(cycles)
	case ModeCache:
		return ctx.executeCacheCycles(cycles)
	case ModeDBT:
		return ctx.executeDBTCycles(cycles)
	default:
		return 0, InvalidMode{Mode: ctx.Mode}
	}
}

// checkHiRes replicates the HIRES-mode CHIP-8 detection: a program that
// begins with opcode 1260 at 0x200 is rewritten in place and promoted to
// HCHIP.
func (ctx *Context) checkHiRes() {
	if ctx.PC != 0x200 {
		return
	}
	opcode := uint16(ctx.RAM[ctx.PC])<<8 | uint16(ctx.RAM[ctx.PC+1])
	if opcode == 0x1260 {
		ctx.Log.Info("HIRES CHIP-8 preamble detected, switching to HCHIP")
		ctx.SetSystem(SystemHChip)
		ctx.RAM[ctx.PC+1] = 0xC0
	}
}

// debugInstruction is consulted before every guest instruction whenever
// ExecFlags is non-zero. It logs the disassembled instruction and register
// file under ExecDebug, enforces MaxCycles under ExecSubset, and honors
// ExecBreak; it returns true when the cycle loop should stop.
func (ctx *Context) debugInstruction(pc uint16) bool {
	if ctx.ExecFlags&ExecDebug != 0 {
		ctx.Log.Debug("%03X  %04X  %-20s  %s", pc, ctx.Opcode, ctx.Disassemble(pc), ctx.registerDump())
	}

	if ctx.ExecFlags&ExecSubset != 0 && ctx.Cycles >= ctx.MaxCycles {
		return true
	}

	if bp, ok := ctx.Breakpoints[pc]; ok {
		if !bp.Conditional || ctx.V[0xF] != 0 {
			if bp.Once {
				delete(ctx.Breakpoints, pc)
			}
			ctx.ExecFlags |= ExecBreak
			return true
		}
	}

	return ctx.ExecFlags&ExecBreak != 0
}

func (ctx *Context) registerDump() string {
	buf := make([]byte, 0, 96)
	for i := 0; i < 16; i++ {
		buf = appendHex8(buf, ctx.V[i])
		buf = append(buf, ' ')
	}
	return string(buf)
}

func appendHex8(buf []byte, v byte) []byte {
	const hex = "0123456789ABCDEF"
	return append(buf, hex[v>>4], hex[v&0xF])
}

// SetBreakpoint installs a breakpoint at a ROM address.
func (ctx *Context) SetBreakpoint(b Breakpoint) {
	if int(b.Address) >= 0x200 && int(b.Address) < len(ctx.RAM) {
		ctx.Breakpoints[b.Address] = b
	}
}

// RemoveBreakpoint clears a breakpoint at a given address.
func (ctx *Context) RemoveBreakpoint(address uint16) {
	delete(ctx.Breakpoints, address)
}

// ToggleBreakpoint flips a breakpoint at the current PC. Any reason on an
// existing breakpoint there is lost.
func (ctx *Context) ToggleBreakpoint() {
	if _, ok := ctx.Breakpoints[ctx.PC]; ok {
		ctx.RemoveBreakpoint(ctx.PC)
	} else {
		ctx.SetBreakpoint(Breakpoint{Address: ctx.PC, Reason: "user break"})
	}
}

// ClearBreakpoints removes every breakpoint.
func (ctx *Context) ClearBreakpoints() {
	ctx.Breakpoints = make(map[uint16]Breakpoint)
}

// Resolution returns the pixel dimensions of the active system.
func (ctx *Context) Resolution() (w, h int) {
	switch ctx.System {
	case SystemHChip:
		return HChipXRes, HChipYRes
	case SystemSChip:
		return SChipXRes, SChipYRes
	case SystemMChip:
		return MChipXRes, MChipYRes
	default:
		return Chip8XRes, Chip8YRes
	}
}
