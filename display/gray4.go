package display

import (
	"image"
	"image/color"
)

// Gray4 is a 4-bit gray level. Only the low 4 bits of Y are used.
type Gray4 struct {
	Y uint8
}

// RGBA implements color.Color.
func (c Gray4) RGBA() (r, g, b, a uint32) {
	// 0xF * 0x1111 = 0xFFFF
	y := uint32(c.Y&0x0F) * 0x1111
	return y, y, y, 0xFFFF
}

func toGray4(c color.Color) color.Color {
	if g, ok := c.(Gray4); ok {
		return g
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Gray4{Y: uint8(y >> 12)}
}

// Gray4Model converts colors to Gray4.
var Gray4Model = color.ModelFunc(toGray4)

// Frame is a panel-sized frame buffer in the controller's RAM layout.
type Frame struct {
	Pix    []byte // 2 pixels per byte, left pixel in the high nibble
	Stride int
	Rect   image.Rectangle
}

// NewFrame returns a dark frame. The width of r must be even.
func NewFrame(r image.Rectangle) *Frame {
	if r.Dx()%2 != 0 {
		panic("display: frame width must be even")
	}
	if r.Empty() {
		return &Frame{Rect: r}
	}
	stride := r.Dx() / 2
	return &Frame{
		Pix:    make([]byte, stride*r.Dy()),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel implements image.Image.
func (f *Frame) ColorModel() color.Model { return Gray4Model }

// Bounds implements image.Image.
func (f *Frame) Bounds() image.Rectangle { return f.Rect }

// At implements image.Image.
func (f *Frame) At(x, y int) color.Color { return f.Gray4At(x, y) }

// Gray4At returns the level of the pixel at (x, y), or zero outside the frame.
func (f *Frame) Gray4At(x, y int) Gray4 {
	if !(image.Point{X: x, Y: y}.In(f.Rect)) {
		return Gray4{}
	}
	i, shift := f.locate(x, y)
	return Gray4{Y: f.Pix[i] >> shift & 0x0F}
}

// Set implements draw.Image.
func (f *Frame) Set(x, y int, c color.Color) {
	f.SetGray4(x, y, Gray4Model.Convert(c).(Gray4))
}

// SetGray4 sets the level of the pixel at (x, y). Writes outside the frame
// are ignored.
func (f *Frame) SetGray4(x, y int, c Gray4) {
	if !(image.Point{X: x, Y: y}.In(f.Rect)) {
		return
	}
	i, shift := f.locate(x, y)
	f.Pix[i] = f.Pix[i]&^(0x0F<<shift) | (c.Y&0x0F)<<shift
}

// Clear sets every pixel to level 0.
func (f *Frame) Clear() {
	clear(f.Pix)
}

// locate returns the byte index and bit shift of the pixel at (x, y).
// Even columns (relative to Rect.Min) live in the high nibble.
func (f *Frame) locate(x, y int) (int, uint) {
	dx := x - f.Rect.Min.X
	i := (y-f.Rect.Min.Y)*f.Stride + dx/2
	if dx&1 == 0 {
		return i, 4
	}
	return i, 0
}
