// Package canvas provides the 24-bit RGB pixel buffer identicons are painted on.
//
// Pixels are stored row by row, three bytes per pixel in R, G, B order,
// with the origin at the top-left corner of Rect.
//
// Memory layout example for a 2x2 image:
//
//	Pixels: (0,0)      (1,0)      (0,1)      (1,1)
//	Bytes:  R G B      R G B      R G B      R G B
//	Index:  0 1 2      3 4 5      6 7 8      9 10 11
//
// This package provides:
//
// - RGB: an opaque 8-bit-per-channel color type
// - RGBModel: a color model converting standard Go colors to RGB
// - Image: an image.Image and draw.Image implementation with a Fill primitive
//
// Example usage:
//
//	// Create a 420x420 light gray canvas
//	img := canvas.NewFilled(image.Rect(0, 0, 420, 420), canvas.RGB{R: 240, G: 240, B: 240})
//
//	// Paint a 70x70 square
//	img.Fill(image.Rect(35, 35, 105, 105), canvas.RGB{R: 233, G: 150, B: 150})
//
//	// Use with standard Go image operations
//	png.Encode(w, img)
package canvas
