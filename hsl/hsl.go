// Package hsl converts hue/saturation/luminance colors to 8-bit RGB.
//
// The conversion follows the CSS Color Module algorithm:
// http://www.w3.org/TR/css3-color/#hsl-color
package hsl

import "math"

// Channel ranges of an HSL triple.
const (
	HueMax        = 360
	SaturationMax = 100
	LuminanceMax  = 100
)

// HSL is a color in the hue/saturation/luminance space.
// H is in [0, 360), S and L are in [0, 100].
type HSL struct {
	H float64
	S float64
	L float64
}

// RGB converts the color to 8-bit red, green and blue channels.
func (c HSL) RGB() (r, g, b uint8) {
	hue := c.H / HueMax
	sat := c.S / SaturationMax
	lum := c.L / LuminanceMax

	var hi float64
	if lum <= 0.5 {
		hi = lum * (sat + 1)
	} else {
		hi = lum + sat - lum*sat
	}
	lo := lum*2 - hi

	r = channel(hueToRGB(lo, hi, hue+1.0/3.0))
	g = channel(hueToRGB(lo, hi, hue))
	b = channel(hueToRGB(lo, hi, hue-1.0/3.0))
	return r, g, b
}

// RGBA implements color.Color. HSL colors are always opaque.
func (c HSL) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB()
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	return r, g, b, 0xFFFF
}

// hueToRGB evaluates one channel for a hue offset, wrapping it into [0, 1).
func hueToRGB(lo, hi, h float64) float64 {
	if h < 0 {
		h++
	} else if h >= 1 {
		h--
	}
	switch {
	case h < 1.0/6.0:
		return lo + (hi-lo)*6*h
	case h < 1.0/2.0:
		return hi
	case h < 2.0/3.0:
		return lo + (hi-lo)*(2.0/3.0-h)*6
	}
	return lo
}

// channel scales a [0, 1] value to [0, 255], rounding half away from zero.
func channel(v float64) uint8 {
	v = math.Round(v * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
