package chip8

import "testing"

func TestDrawChip8SpriteCollision(t *testing.T) {
	ctx := NewContext(ModeCase)
	sprite := []byte{0xFF} // one row, all 8 pixels lit

	if ctx.DrawChip8Sprite(0, 0, sprite) {
		t.Fatal("first draw should not collide")
	}
	if !ctx.DrawChip8Sprite(0, 0, sprite) {
		t.Fatal("second draw at same spot should collide and erase")
	}
	if !ctx.Dirty {
		t.Fatal("Dirty not set after draw")
	}
}

func TestClsClearsFramebuffer(t *testing.T) {
	ctx := NewContext(ModeCase)
	ctx.DrawChip8Sprite(0, 0, []byte{0xFF})
	ctx.Cls()
	for i, px := range ctx.Framebuffer {
		if px != 0 {
			t.Fatalf("pixel %d = %d after CLS, want 0", i, px)
		}
	}
}

func TestScrollDownMovesRows(t *testing.T) {
	ctx := NewContext(ModeCase)
	ctx.SetSystem(SystemSChip)
	ctx.DrawSChipSprite(0, 0, []byte{0xFF}, false)
	ctx.ScrollDown(1)

	pitch := ctx.stride()
	if ctx.Framebuffer[1*pitch] == 0 {
		t.Fatal("sprite row not shifted down by 1")
	}
	if ctx.Framebuffer[0] != 0 {
		t.Fatal("vacated row 0 not cleared")
	}
}

func TestDrawMChipSpriteSkipsTransparentIndex0(t *testing.T) {
	ctx := NewContext(ModeCase)
	ctx.SetSystem(SystemMChip)
	ctx.Palette[0] = 0x00000000
	ctx.Palette[1] = 0xFFFFFFFF
	ctx.SprW, ctx.SprH = 2, 1

	ctx.DrawMChipSprite(5, 5, []byte{0, 1})

	if ctx.FramebufferRGBA[5*MChipXRes+5] != ctx.Palette[0] {
		t.Fatal("transparent index overwrote background")
	}
	if ctx.FramebufferRGBA[5*MChipXRes+6] != ctx.Palette[1] {
		t.Fatal("opaque pixel not drawn")
	}
}
