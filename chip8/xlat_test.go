package chip8

import "testing"

func TestInlinableClassifiesSimpleALU(t *testing.T) {
	inlinableOps := []Op{OpLoadImm, OpAddImm, OpLoadReg, OpOr, OpAnd, OpXor, OpAddReg, OpSubReg, OpShr, OpSubnReg, OpShl}
	for _, op := range inlinableOps {
		if !inlinable(op) {
			t.Errorf("expected %v to be inlinable", op)
		}
	}
	notInlinable := []Op{OpJump, OpCall, OpDraw, OpLoadVxKey, OpBCD}
	for _, op := range notInlinable {
		if inlinable(op) {
			t.Errorf("expected %v to not be inlinable", op)
		}
	}
}

func TestTranslateBlockEndsAtNonInlinedOpcode(t *testing.T) {
	ctx := NewContext(ModeDBT)
	ctx.LoadROM(simpleProgram)

	blk, err := translateBlock(ctx, 0x200)
	if err != nil {
		t.Fatalf("translateBlock: %v", err)
	}
	if blk.InlinedLen != 3 {
		t.Fatalf("InlinedLen = %d, want 3 (LD V0, LD V1, ADD V0,V1 inline; JP does not)", blk.InlinedLen)
	}
	if blk.GuestEnd != 0x206 {
		t.Fatalf("GuestEnd = %03X, want 206", blk.GuestEnd)
	}
}

func TestDBTBackendMatchesCaseBackend(t *testing.T) {
	caseCtx := runSimple(t, ModeCase)
	dbtCtx := runSimple(t, ModeDBT)

	if caseCtx.V[0] != dbtCtx.V[0] {
		t.Fatalf("V0: case=%d dbt=%d", caseCtx.V[0], dbtCtx.V[0])
	}
	if caseCtx.PC != dbtCtx.PC {
		t.Fatalf("PC: case=%03X dbt=%03X", caseCtx.PC, dbtCtx.PC)
	}
}
