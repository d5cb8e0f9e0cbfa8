// Package identicon renders deterministic avatar images from byte sequences.
//
// An identicon is a 5x5 grid of square cells painted in one foreground color
// on a light gray background. The source bytes, typically a hash of an email
// address or user name, select both the color and which cells are filled,
// so the same input always produces the same image.
//
// # Derivation
//
// The foreground color comes from bytes 12 to 15 of the source:
//
//	hue        = low nibble of byte 12 and byte 13 (12 bits) mapped to [0, 360)
//	saturation = 65 - byte 14 mapped to [0, 20]
//	luminance  = 75 - byte 15 mapped to [0, 20]
//
// keeping colors mid-tone and away from white, black and gray.
//
// The cell pattern comes from the nibbles of the whole source, high nibble
// first. Columns are visited from the vertical axis outward, rows from top
// to bottom, and a cell is filled when its nibble is even. Cells right of
// the axis copy their mirror image, so the default geometry consumes 15
// nibbles:
//
//	column: 0 1 2 3 4
//	        ^ ^ ^
//	        | | axis, drawn first
//	        | mirrored onto column 3
//	        mirrored onto column 4
//
// # Basic Usage
//
//	sum := md5.Sum([]byte("someone@example.com"))
//
//	img, err := identicon.Render(sum[:])
//	if err != nil {
//		log.Fatal(err)
//	}
//	png.Encode(w, img)
//
// # Geometry
//
// The default canvas is 420x420 pixels holding 70 pixel cells with a 35 pixel
// margin. Other geometries can be requested through Opts:
//
//	g, err := identicon.New(source, &identicon.Opts{Size: 120, PixelSize: 20, SpriteSize: 5})
//
// SpriteSize must be odd so the grid has a center column. The source must be
// at least 16 bytes and hold one nibble per visited cell; shorter sources are
// rejected with ErrShortSource.
//
// # Concurrency
//
// A Generator holds no mutable state. Render allocates a new canvas on every
// call and may be used from several goroutines as long as the source is not
// modified.
package identicon
