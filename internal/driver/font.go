package driver

import (
	"image"
	"image/color"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// TextRenderer draws debug-overlay text with golang.org/x/image's built-in
// 7x13 bitmap font, replacing the reference driver's font.bmp asset: the
// overlay becomes self-contained and needs no bundled resource file.
type TextRenderer struct {
	renderer *sdl.Renderer
	face     font.Face
}

// NewTextRenderer binds a TextRenderer to an SDL renderer.
func NewTextRenderer(renderer *sdl.Renderer) *TextRenderer {
	return &TextRenderer{renderer: renderer, face: basicfont.Face7x13}
}

// DrawText rasterizes s into an RGBA image with the basic font, uploads it
// as a one-shot SDL texture, and blits it at (x, y). It's not meant for a
// tight per-frame hot path at scale, but the debug overlay redraws only a
// few dozen short lines per frame, well within budget.
func (t *TextRenderer) DrawText(s string, x, y int, c sdl.Color) error {
	if s == "" {
		return nil
	}

	w := font.MeasureString(t.face, s).Ceil()
	if w == 0 {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, w, 13))

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}),
		Face: t.face,
		Dot:  fixed.P(0, 10),
	}
	d.DrawString(s)

	surface, err := sdl.CreateRGBSurfaceWithFormatFrom(
		img.Pix, int32(img.Rect.Dx()), int32(img.Rect.Dy()),
		32, img.Stride, uint32(sdl.PIXELFORMAT_ABGR8888))
	if err != nil {
		return err
	}
	defer surface.Free()

	texture, err := t.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return err
	}
	defer texture.Destroy()

	dst := &sdl.Rect{X: int32(x), Y: int32(y), W: int32(img.Rect.Dx()), H: int32(img.Rect.Dy())}
	return t.renderer.Copy(texture, nil, dst)
}
