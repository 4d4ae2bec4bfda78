package chip8

import "testing"

func TestDisassembleOpcode(t *testing.T) {
	cases := map[uint16]string{
		0x00E0: "CLS",
		0x6A12: "LD     VA, #12",
		0xD125: "DRW    V1, V2, 5",
		0xA123: "LD     I, #123",
	}
	for opcode, want := range cases {
		if got := DisassembleOpcode(opcode); got != want {
			t.Errorf("DisassembleOpcode(%04X) = %q, want %q", opcode, got, want)
		}
	}
}

func TestContextDisassemble(t *testing.T) {
	ctx := NewContext(ModeCase)
	ctx.LoadROM([]byte{0x60, 0x05})
	if got := ctx.Disassemble(0x200); got != "200 - LD     V0, #05" {
		t.Fatalf("Disassemble = %q", got)
	}
}
