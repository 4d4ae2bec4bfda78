package chip8

// This file implements the four sprite rasterizers and the scroll family.
// CHIP8 and HCHIP both draw into the SCHIP-sized Framebuffer: CHIP8 sprites
// are logically 64x32 but each logical pixel is expanded 2x2 so every
// system shares one buffer and one scroll/clear path, matching the
// reference gfx_draw_chip8_sprite layout.

// Cls clears the active framebuffer and marks the screen dirty.
func (ctx *Context) Cls() {
	if ctx.System == SystemMChip {
		for i := range ctx.FramebufferRGBA {
			ctx.FramebufferRGBA[i] = ctx.Palette[0]
		}
	} else {
		for i := range ctx.Framebuffer {
			ctx.Framebuffer[i] = 0
		}
	}
	ctx.Dirty = true
}

// stride is the row pitch, in pixels, of the active framebuffer.
func (ctx *Context) stride() int {
	if ctx.System == SystemMChip {
		return MChipXRes
	}
	return SChipXRes
}

// drawByte toggles up to 8 pixels of one sprite row starting at (x, y),
// wrapping coordinates per SChipXRes/SChipYRes, and returns whether any lit
// pixel was erased (the collision flag, VF).
func (ctx *Context) drawByte(x, y int, row byte, scale int) bool {
	collision := false
	pitch := ctx.stride()
	h := SChipYRes
	if scale == 1 {
		h = SChipYRes // still the shared buffer height; CHIP8/HCHIP wrap within it
	}

	for bit := 0; bit < 8; bit++ {
		if row&(0x80>>uint(bit)) == 0 {
			continue
		}
		for sy := 0; sy < scale; sy++ {
			for sx := 0; sx < scale; sx++ {
				px := (x + bit*scale + sx) % pitch
				py := (y + sy) % h
				off := py*pitch + px
				if ctx.Framebuffer[off] != 0 {
					collision = true
				}
				ctx.Framebuffer[off] ^= 1
			}
		}
	}
	return collision
}

// DrawChip8Sprite draws an 8xN sprite for CHIP8/HCHIP games into SCHIP's
// physical framebuffer: CHIP8 (64x32 logical) at 2x scale in both
// directions, HCHIP (64x64) at 1x into the buffer's top-left 64x64, with no
// horizontal expansion.
func (ctx *Context) DrawChip8Sprite(x, y int, sprite []byte) bool {
	scale := 2
	if ctx.System == SystemHChip {
		scale = 1
	}
	collision := false
	for row, b := range sprite {
		if ctx.drawByte(x*scale, (y+row)*scale, b, scale) {
			collision = true
		}
	}
	ctx.Dirty = true
	return collision
}

// DrawSChipSprite draws a native 8xN (or 16x16 when wide is true) sprite at
// 1x scale directly into the 128x64 framebuffer.
func (ctx *Context) DrawSChipSprite(x, y int, sprite []byte, wide bool) bool {
	collision := false
	if !wide {
		for row, b := range sprite {
			if ctx.drawByte(x, y+row, b, 1) {
				collision = true
			}
		}
	} else {
		for row := 0; row < 16; row++ {
			hi := sprite[row*2]
			lo := sprite[row*2+1]
			if ctx.drawByte(x, y+row, hi, 1) {
				collision = true
			}
			if ctx.drawByte(x+8, y+row, lo, 1) {
				collision = true
			}
		}
	}
	ctx.Dirty = true
	return collision
}

// DrawMChipSprite draws an RGBA sprite indexed through the active palette
// into FramebufferRGBA, honoring per-pixel transparency (palette index 0)
// and the configured SprW/SprH stamp size.
func (ctx *Context) DrawMChipSprite(x, y int, indices []byte) bool {
	collision := false
	pitch := MChipXRes
	for row := 0; row < ctx.SprH; row++ {
		for col := 0; col < ctx.SprW; col++ {
			idx := indices[row*ctx.SprW+col]
			if idx == 0 {
				continue // transparent
			}
			px := x + col
			py := y + row
			if px < 0 || px >= MChipXRes || py < 0 || py >= MChipYRes {
				continue
			}
			off := py*pitch + px
			if ctx.FramebufferRGBA[off] != ctx.Palette[0] {
				collision = true
			}
			ctx.FramebufferRGBA[off] = ctx.Palette[idx]
		}
	}
	ctx.Dirty = true
	return collision
}

// ScrollDown shifts the framebuffer down by n pixel rows, filling the
// vacated rows with background.
func (ctx *Context) ScrollDown(n int) {
	pitch := ctx.stride()
	h := SChipYRes
	if ctx.System == SystemMChip {
		h = MChipYRes
		for row := h - 1; row >= n; row-- {
			copy(ctx.FramebufferRGBA[row*pitch:(row+1)*pitch], ctx.FramebufferRGBA[(row-n)*pitch:(row-n+1)*pitch])
		}
		for row := 0; row < n; row++ {
			for col := 0; col < pitch; col++ {
				ctx.FramebufferRGBA[row*pitch+col] = ctx.Palette[0]
			}
		}
		ctx.Dirty = true
		return
	}
	for row := h - 1; row >= n; row-- {
		copy(ctx.Framebuffer[row*pitch:(row+1)*pitch], ctx.Framebuffer[(row-n)*pitch:(row-n+1)*pitch])
	}
	for row := 0; row < n; row++ {
		for col := 0; col < pitch; col++ {
			ctx.Framebuffer[row*pitch+col] = 0
		}
	}
	ctx.Dirty = true
}

// ScrollUp shifts the framebuffer up by n pixel rows (MCHIP only).
func (ctx *Context) ScrollUp(n int) {
	pitch := MChipXRes
	h := MChipYRes
	for row := 0; row < h-n; row++ {
		copy(ctx.FramebufferRGBA[row*pitch:(row+1)*pitch], ctx.FramebufferRGBA[(row+n)*pitch:(row+n+1)*pitch])
	}
	for row := h - n; row < h; row++ {
		for col := 0; col < pitch; col++ {
			ctx.FramebufferRGBA[row*pitch+col] = ctx.Palette[0]
		}
	}
	ctx.Dirty = true
}

// ScrollRight shifts the active framebuffer right by n pixels (SCR passes
// 4).
func (ctx *Context) ScrollRight(n int) {
	if ctx.System == SystemMChip {
		ctx.scrollRowsRGBA(n)
		return
	}
	pitch := ctx.stride()
	h := SChipYRes
	for row := 0; row < h; row++ {
		base := row * pitch
		for col := pitch - 1; col >= n; col-- {
			ctx.Framebuffer[base+col] = ctx.Framebuffer[base+col-n]
		}
		for col := 0; col < n; col++ {
			ctx.Framebuffer[base+col] = 0
		}
	}
	ctx.Dirty = true
}

// ScrollLeft shifts the active framebuffer left by n pixels (SCL passes 4).
func (ctx *Context) ScrollLeft(n int) {
	if ctx.System == SystemMChip {
		ctx.scrollRowsRGBA(-n)
		return
	}
	pitch := ctx.stride()
	h := SChipYRes
	for row := 0; row < h; row++ {
		base := row * pitch
		for col := 0; col < pitch-n; col++ {
			ctx.Framebuffer[base+col] = ctx.Framebuffer[base+col+n]
		}
		for col := pitch - n; col < pitch; col++ {
			ctx.Framebuffer[base+col] = 0
		}
	}
	ctx.Dirty = true
}

func (ctx *Context) scrollRowsRGBA(n int) {
	pitch := MChipXRes
	h := MChipYRes
	for row := 0; row < h; row++ {
		base := row * pitch
		if n > 0 {
			for col := pitch - 1; col >= n; col-- {
				ctx.FramebufferRGBA[base+col] = ctx.FramebufferRGBA[base+col-n]
			}
			for col := 0; col < n; col++ {
				ctx.FramebufferRGBA[base+col] = ctx.Palette[0]
			}
		} else {
			shift := -n
			for col := 0; col < pitch-shift; col++ {
				ctx.FramebufferRGBA[base+col] = ctx.FramebufferRGBA[base+col+shift]
			}
			for col := pitch - shift; col < pitch; col++ {
				ctx.FramebufferRGBA[base+col] = ctx.Palette[0]
			}
		}
	}
	ctx.Dirty = true
}
