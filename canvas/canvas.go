package canvas

import (
	"image"
	"image/color"
)

// RGB is an opaque 24-bit color.
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color. The 8-bit channels are scaled to 16 bits.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xFFFF
}

// toRGB converts any color.Color to RGB, discarding alpha.
func toRGB(c color.Color) color.Color {
	if rgb, ok := c.(RGB); ok {
		return rgb
	}
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// RGBModel converts colors to RGB.
var RGBModel = color.ModelFunc(toRGB)

// Image is an in-memory RGB image.
type Image struct {
	Pix    []uint8         // Pixel data, 3 bytes per pixel
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewImage returns a black image with the given bounds.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &Image{Rect: r}
	}
	return &Image{
		Pix:    make([]uint8, 3*w*h),
		Stride: 3 * w,
		Rect:   r,
	}
}

// NewFilled returns an image with every pixel set to c.
func NewFilled(r image.Rectangle, c RGB) *Image {
	img := NewImage(r)
	img.Fill(r, c)
	return img
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return RGBModel
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// Opaque reports whether the image is fully opaque. RGB images always are.
func (p *Image) Opaque() bool {
	return true
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *Image) At(x, y int) color.Color {
	return p.RGBAt(x, y)
}

// RGBAt returns the RGB color of the pixel at (x, y).
func (p *Image) RGBAt(x, y int) RGB {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return RGB{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	return RGB{R: s[0], G: s[1], B: s[2]}
}

// Set sets the color of the pixel at (x, y).
func (p *Image) Set(x, y int, c color.Color) {
	p.SetRGB(x, y, RGBModel.Convert(c).(RGB))
}

// SetRGB sets the RGB color of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *Image) SetRGB(x, y int, c RGB) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	s[0] = c.R
	s[1] = c.G
	s[2] = c.B
}

// Fill sets every pixel in the half-open rectangle r to c.
// r is clipped to the image bounds.
func (p *Image) Fill(r image.Rectangle, c RGB) {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return
	}
	// Paint the first row, then copy it down.
	first := p.PixOffset(r.Min.X, r.Min.Y)
	row := p.Pix[first : first+3*r.Dx()]
	for i := 0; i < len(row); i += 3 {
		row[i] = c.R
		row[i+1] = c.G
		row[i+2] = c.B
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		i := p.PixOffset(r.Min.X, y)
		copy(p.Pix[i:i+len(row)], row)
	}
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}
