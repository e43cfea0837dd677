package render

import (
	"fmt"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Surface is a cell screen that can be pushed to the terminal.
type Surface interface {
	uv.Screen
	Display() error
	Flush() error
}

var _ Surface = (*uv.Terminal)(nil)

// TerminalRenderer blits framebuffers onto a terminal surface. Each cell
// shows two framebuffer rows with an upper half block.
type TerminalRenderer struct {
	surface       Surface
	width, height int
}

// NewTerminalRenderer creates a renderer for a width x height cell area.
func NewTerminalRenderer(s Surface, width, height int) *TerminalRenderer {
	return &TerminalRenderer{surface: s, width: width, height: height}
}

// FramebufferSize returns the framebuffer dimensions that exactly cover the
// cell area.
func (t *TerminalRenderer) FramebufferSize() (width, height int) {
	return t.width, t.height * 2
}

// Render copies fb into the surface's cell buffer.
func (t *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(t.surface, uv.Rect(0, 0, t.width, t.height))
}

// Flush writes pending cell changes to the terminal.
func (t *TerminalRenderer) Flush() error {
	if err := t.surface.Display(); err != nil {
		return fmt.Errorf("display terminal: %w", err)
	}
	if err := t.surface.Flush(); err != nil {
		return fmt.Errorf("flush terminal: %w", err)
	}
	return nil
}

// Draw writes the framebuffer into area of scr, two pixel rows per cell.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			scr.SetCell(col, row, halfBlock(fb.GetPixel(col, row*2), fb.GetPixel(col, row*2+1)))
		}
	}
}

// halfBlock renders top as the foreground of ▀ and bottom as its
// background.
func halfBlock(top, bottom Color) *uv.Cell {
	return &uv.Cell{
		Content: "▀",
		Width:   1,
		Style: uv.Style{
			Fg: rgbaToColor(top),
			Bg: rgbaToColor(bottom),
		},
	}
}

func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
