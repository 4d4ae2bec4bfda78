package chip8

// The translator maps guest V registers onto a fixed pool of host GP
// registers for the lifetime of one basic block. R15 is reserved as the
// emitter's address scratch register (see xlat_emit_amd64.go) and is never
// handed out here; RSP/RBP are never touched since the block never grows
// a stack frame. That leaves 13 host registers, so a block that would need
// to hold more than 13 distinct guest registers live at once simply ends
// there instead -- the remaining opcodes fall back to the case
// interpreter. LRU spilling to memory would lift that ceiling but isn't
// implemented; see DESIGN.md.
var hostPool = [13]hostReg{
	hostRAX, hostRBX, hostRCX, hostRDX, hostRSI, hostRDI,
	hostR8, hostR9, hostR10, hostR11, hostR12, hostR13, hostR14,
}

type regAlloc struct {
	hostForGuest [16]int8 // -1 when guest reg x isn't resident
	guestForHost [13]int8 // -1 when host slot is free
	dirty        [16]bool // guest reg was written and not yet committed
	used         int
}

func newRegAlloc() *regAlloc {
	ra := &regAlloc{}
	for i := range ra.hostForGuest {
		ra.hostForGuest[i] = -1
	}
	for i := range ra.guestForHost {
		ra.guestForHost[i] = -1
	}
	return ra
}

// reserve binds guest register x to a host register, loading it from
// ctx.V[x] on first use, and returns the host register plus whether the
// pool had room.
func (ra *regAlloc) reserve(e *emitter, ctx *Context, x byte) (hostReg, bool) {
	if ra.hostForGuest[x] >= 0 {
		return hostPool[ra.hostForGuest[x]], true
	}
	if ra.used >= len(hostPool) {
		return 0, false
	}
	slot := int8(ra.used)
	ra.used++
	ra.hostForGuest[x] = slot
	ra.guestForHost[slot] = int8(x)

	h := hostPool[slot]
	e.emitLoadAbs8(h, regAddr(ctx, x))
	return h, true
}

// markDirty records that a guest register's host copy no longer matches
// ctx.V and must be written back before the block ends.
func (ra *regAlloc) markDirty(x byte) {
	ra.dirty[x] = true
}

// commitAll writes every dirty resident guest register back to ctx.V.
func (ra *regAlloc) commitAll(e *emitter, ctx *Context) {
	for x := 0; x < 16; x++ {
		slot := ra.hostForGuest[x]
		if slot < 0 || !ra.dirty[x] {
			continue
		}
		e.emitStoreAbs8(regAddr(ctx, byte(x)), hostPool[slot])
		ra.dirty[x] = false
	}
}

func regAddr(ctx *Context, x byte) uintptr {
	return addrOf(&ctx.V[x])
}
