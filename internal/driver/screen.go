package driver

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/chip8-multicore/emulator/chip8"
)

// Screen owns the render-target texture the core's framebuffer is
// rasterized into every frame, then stretched to fit the window -- the
// same render-to-texture-then-stretch approach the reference driver used,
// generalized to the four systems' differing resolutions.
type Screen struct {
	renderer *sdl.Renderer
	texture  *sdl.Texture
	w, h     int32
}

// NewScreen creates the render target at the largest resolution any
// system can use (MegaChip's 256x192), so switching systems never needs to
// recreate it.
func NewScreen(renderer *sdl.Renderer) (*Screen, error) {
	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_TARGET,
		chip8.MChipXRes, chip8.MChipYRes)
	if err != nil {
		return nil, err
	}
	return &Screen{renderer: renderer, texture: texture, w: chip8.MChipXRes, h: chip8.MChipYRes}, nil
}

// Refresh redraws the texture from the context's active framebuffer.
func (s *Screen) Refresh(ctx *chip8.Context) error {
	if err := s.renderer.SetRenderTarget(s.texture); err != nil {
		return err
	}
	defer s.renderer.SetRenderTarget(nil)

	s.renderer.SetDrawColor(143, 145, 133, 255)
	s.renderer.Clear()

	if ctx.System == chip8.SystemMChip {
		s.renderer.SetDrawColor(0, 0, 0, 255)
		for i, px := range ctx.FramebufferRGBA {
			if px == ctx.Palette[0] {
				continue
			}
			x := int32(i % chip8.MChipXRes)
			y := int32(i / chip8.MChipXRes)
			r := byte(px >> 16)
			g := byte(px >> 8)
			b := byte(px)
			s.renderer.SetDrawColor(r, g, b, 255)
			s.renderer.DrawPoint(x, y)
		}
		return nil
	}

	s.renderer.SetDrawColor(17, 29, 43, 255)
	w, _ := ctx.Resolution()
	for i, on := range ctx.Framebuffer {
		if on == 0 {
			continue
		}
		x := int32(i % chip8.SChipXRes)
		y := int32(i / chip8.SChipXRes)
		if int(x) >= w {
			continue
		}
		s.renderer.DrawPoint(x, y)
	}

	return nil
}

// Copy stretches the rendered screen into the destination rect.
func (s *Screen) Copy(ctx *chip8.Context, x, y, w, h int32) error {
	resW, resH := ctx.Resolution()
	src := &sdl.Rect{W: int32(resW), H: int32(resH)}
	return s.renderer.Copy(s.texture, src, &sdl.Rect{X: x, Y: y, W: w, H: h})
}

// Save writes the active framebuffer to a BMP screenshot.
func (s *Screen) Save(ctx *chip8.Context, path string) error {
	w, h := ctx.Resolution()
	rect := &sdl.Rect{W: int32(w), H: int32(h)}

	pixels, pitch, err := s.renderer.ReadPixels(rect, sdl.PIXELFORMAT_RGBA8888)
	if err != nil {
		return err
	}

	surface, err := sdl.CreateRGBSurfaceWithFormatFrom(pixels, int32(w), int32(h), 32, pitch,
		uint32(sdl.PIXELFORMAT_RGBA8888))
	if err != nil {
		return err
	}
	defer surface.Free()

	return surface.SaveBMP(path)
}
