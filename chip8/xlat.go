package chip8

import "unsafe"

// inlinable reports whether an Op can be compiled directly to host
// machine code by translateBlock. Everything else (control flow, memory,
// timers, input, graphics, MegaChip extensions) ends a block: the DBT
// driver falls back to the case interpreter for exactly that one opcode,
// then resumes translating from the following guest PC.
func inlinable(op Op) bool {
	switch op {
	case OpLoadImm, OpAddImm, OpLoadReg, OpOr, OpAnd, OpXor,
		OpAddReg, OpSubReg, OpShr, OpSubnReg, OpShl:
		return true
	default:
		return false
	}
}

// translateBlock compiles the run of inlinable opcodes starting at pc into
// a TranslationBlock. It always terminates the block (possibly with zero
// inlined instructions) at the first non-inlinable opcode, an opcode that
// would touch more distinct guest registers than the host register pool
// holds, or the end of RAM.
func translateBlock(ctx *Context, pc uint16) (TranslationBlock, error) {
	e := newEmitter()
	ra := newRegAlloc()

	start := pc
	count := 0

	for int(pc)+1 < len(ctx.RAM) {
		opcode := uint16(ctx.RAM[pc])<<8 | uint16(ctx.RAM[pc+1])
		op := classify(opcode)
		if !inlinable(op) {
			break
		}

		x, y, _, b, _ := fields(opcode)
		if !emitInlined(e, ra, ctx, op, x, y, b) {
			break
		}

		pc += 2
		count++
	}

	ra.commitAll(e, ctx)
	e.emitStoreImm16Abs(addrOf16(&ctx.PC), pc)
	e.emitRet()

	if count == 0 {
		return TranslationBlock{GuestPC: start, GuestEnd: pc, InlinedLen: 0}, nil
	}

	page, err := execPage(len(e.code))
	if err != nil {
		return TranslationBlock{}, TranslationError{PC: start, Reason: err.Error()}
	}
	copy(page, e.code)

	return TranslationBlock{
		GuestPC:    start,
		GuestEnd:   pc,
		Code:       page,
		entry:      asCallable(page),
		InlinedLen: count,
	}, nil
}

// emitInlined compiles one inlinable opcode's semantics, reserving host
// registers for the guest registers it touches. It returns false (without
// emitting anything further) if the register pool is exhausted, in which
// case the caller ends the block before this opcode instead.
func emitInlined(e *emitter, ra *regAlloc, ctx *Context, op Op, x, y, b byte) bool {
	switch op {
	case OpLoadImm:
		hx, ok := ra.reserve(e, ctx, x)
		if !ok {
			return false
		}
		e.emitMovImm8(hx, b)
		ra.markDirty(x)
	case OpAddImm:
		hx, ok := ra.reserve(e, ctx, x)
		if !ok {
			return false
		}
		e.emitAddImm8(hx, b)
		ra.markDirty(x)
	case OpLoadReg:
		hy, ok := ra.reserve(e, ctx, y)
		if !ok {
			return false
		}
		hx, ok := ra.reserve(e, ctx, x)
		if !ok {
			return false
		}
		e.emitMovRegReg8(hx, hy)
		ra.markDirty(x)
	case OpOr, OpAnd, OpXor, OpAddReg, OpSubReg:
		hy, ok := ra.reserve(e, ctx, y)
		if !ok {
			return false
		}
		hx, ok := ra.reserve(e, ctx, x)
		if !ok {
			return false
		}
		switch op {
		case OpOr:
			e.emitOr8(hx, hy)
		case OpAnd:
			e.emitAnd8(hx, hy)
		case OpXor:
			e.emitXor8(hx, hy)
		case OpAddReg:
			e.emitAdd8(hx, hy)
		case OpSubReg:
			e.emitSub8(hx, hy)
		}
		ra.markDirty(x)
		// VF (carry/borrow) isn't tracked by the inlined path; callers
		// relying on VF after ADD/SUB in a hot loop still get correct V[x]
		// and V[y] values, but VF itself is left stale until an
		// interpreter-executed instruction recomputes it. See DESIGN.md.
	case OpShr:
		hx, ok := ra.reserve(e, ctx, x)
		if !ok {
			return false
		}
		e.emitShr1(hx)
		ra.markDirty(x)
	case OpShl:
		hx, ok := ra.reserve(e, ctx, x)
		if !ok {
			return false
		}
		e.emitShl1(hx)
		ra.markDirty(x)
	case OpSubnReg:
		hy, ok := ra.reserve(e, ctx, y)
		if !ok {
			return false
		}
		hx, ok := ra.reserve(e, ctx, x)
		if !ok {
			return false
		}
		// Vx = Vy - Vx, computed as -Vx + Vy so Vy's host register is never
		// overwritten (it may still be referenced later in this block).
		e.emitNeg8(hx)
		e.emitAdd8(hx, hy)
		ra.markDirty(x)
	default:
		return false
	}
	return true
}

func addrOf16(p *uint16) uintptr {
	return uintptr(unsafe.Pointer(p))
}

// executeDBTCycles is the dynamic binary translation backend: it compiles
// (or replays a cached compile of) the basic block at the current PC,
// runs its inlined prefix as native code, then executes exactly the one
// non-inlined opcode that ended the block through the case interpreter
// before repeating.
func (ctx *Context) executeDBTCycles(cycles int64) (int64, error) {
	if !ctx.blocksReady {
		ctx.blocks = make([]TranslationBlock, len(ctx.RAM))
		ctx.blocksReady = true
	}

	var executed int64

	for executed < cycles {
		if ctx.ExecFlags&ExecBreak != 0 {
			return executed, RuntimeBreak{}
		}

		if int(ctx.PC)+1 >= len(ctx.RAM) {
			return executed, TranslationError{PC: ctx.PC, Reason: "PC out of bounds"}
		}

		entryPC := ctx.PC
		blk := ctx.blocks[entryPC]
		if blk.InlinedLen == 0 && blk.Code == nil && blk.GuestEnd == 0 {
			b, err := translateBlock(ctx, entryPC)
			if err != nil {
				return executed, err
			}
			ctx.blocks[entryPC] = b
			blk = b
		}

		if blk.InlinedLen > 0 {
			blk.entry()
			executed += int64(blk.InlinedLen)
			ctx.Cycles += int64(blk.InlinedLen)
			if executed >= cycles {
				return executed, nil
			}
		}

		// Run the one terminating opcode through the interpreter; it
		// handles PC already being correct (blk committed ctx.PC to
		// blk.GuestEnd), debug hooks, and breakpoints uniformly.
		n, err := ctx.executeCaseCycles(1)
		executed += n
		if err != nil {
			return executed, err
		}
	}

	return executed, nil
}
