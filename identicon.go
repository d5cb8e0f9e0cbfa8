package identicon

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/flavioheleno/identicon/canvas"
	"github.com/flavioheleno/identicon/hsl"
	"github.com/flavioheleno/identicon/nibble"
)

// Default geometry: a 5x5 sprite of 70px cells centered on a 420px canvas.
const (
	DefaultSize       = 420
	DefaultPixelSize  = 70
	DefaultSpriteSize = 5
)

// MinSourceLen is the shortest source accepted. Bytes 12 to 15 select the
// foreground color.
const MinSourceLen = 16

// Background is the color of every pixel not covered by a filled cell.
var Background = canvas.RGB{R: 240, G: 240, B: 240}

var (
	// ErrShortSource is returned when the source cannot supply the color
	// bytes or enough nibbles for every cell.
	ErrShortSource = errors.New("identicon: source too short")
	// ErrInvalidOpts is returned for unusable geometry.
	ErrInvalidOpts = errors.New("identicon: invalid options")
)

// Opts is the geometry of a rendered identicon. Zero fields take the defaults.
type Opts struct {
	Size       int // Canvas edge in pixels (default: 420)
	PixelSize  int // Cell edge in pixels (default: 70)
	SpriteSize int // Cells per row and column, must be odd (default: 5)
}

// Geometry holds the values derived from Opts.
type Geometry struct {
	Size       int
	PixelSize  int
	SpriteSize int
	InnerSize  int // SpriteSize * PixelSize
	Margin     int // PixelSize / 2
	HalfAxis   int // (SpriteSize - 1) / 2, the column index of the mirror axis
}

// Decisions returns the number of nibbles drawn per render: one per cell in
// the axis column and the columns to its left.
func (g Geometry) Decisions() int {
	return (g.HalfAxis + 1) * g.SpriteSize
}

func newGeometry(opts *Opts) (Geometry, error) {
	o := Opts{}
	if opts != nil {
		o = *opts
	}
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if o.PixelSize == 0 {
		o.PixelSize = DefaultPixelSize
	}
	if o.SpriteSize == 0 {
		o.SpriteSize = DefaultSpriteSize
	}

	if o.PixelSize < 0 {
		return Geometry{}, fmt.Errorf("%w: pixel size %d must be positive", ErrInvalidOpts, o.PixelSize)
	}
	if o.SpriteSize < 0 || o.SpriteSize%2 == 0 {
		return Geometry{}, fmt.Errorf("%w: sprite size %d must be positive and odd", ErrInvalidOpts, o.SpriteSize)
	}

	g := Geometry{
		Size:       o.Size,
		PixelSize:  o.PixelSize,
		SpriteSize: o.SpriteSize,
		InnerSize:  o.SpriteSize * o.PixelSize,
		Margin:     o.PixelSize / 2,
		HalfAxis:   (o.SpriteSize - 1) / 2,
	}
	if g.Size < g.InnerSize+2*g.Margin {
		return Geometry{}, fmt.Errorf("%w: size %d cannot hold a %dpx grid with %dpx margins",
			ErrInvalidOpts, g.Size, g.InnerSize, g.Margin)
	}
	return g, nil
}

// Generator renders the identicon of one source.
//
// The source is borrowed, not copied: it must not be modified while the
// Generator is in use.
type Generator struct {
	source []byte
	geom   Geometry
}

// New returns a Generator for source.
//
// opts can be nil to use the default 420x420 geometry.
func New(source []byte, opts *Opts) (*Generator, error) {
	geom, err := newGeometry(opts)
	if err != nil {
		return nil, err
	}
	if len(source) < MinSourceLen {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrShortSource, len(source), MinSourceLen)
	}
	if need := geom.Decisions(); nibble.Len(len(source)) < need {
		return nil, fmt.Errorf("%w: got %d nibbles, need %d", ErrShortSource, nibble.Len(len(source)), need)
	}
	return &Generator{source: source, geom: geom}, nil
}

// Render renders source with the default geometry.
func Render(source []byte) (*canvas.Image, error) {
	g, err := New(source, nil)
	if err != nil {
		return nil, err
	}
	return g.Render(), nil
}

// Geometry returns the geometry the Generator renders with.
func (g *Generator) Geometry() Geometry {
	return g.geom
}

// Map rescales value from [srcMin, srcMax] to [dstMin, dstMax].
// https://processing.org/reference/map_.html
func Map(value, srcMin, srcMax, dstMin, dstMax float64) float64 {
	return (value-srcMin)/(srcMax-srcMin)*(dstMax-dstMin) + dstMin
}

// HSL returns the foreground color before conversion to RGB.
//
// Hue comes from the low 12 bits of bytes 12-13, saturation and luminance
// from bytes 14 and 15. Saturation lands in [45, 65] and luminance in
// [55, 75].
func (g *Generator) HSL() hsl.HSL {
	h := uint16(g.source[12]&0x0F)<<8 | uint16(g.source[13])
	s := g.source[14]
	l := g.source[15]

	hue := Map(float64(h), 0, 4095, 0, 360)
	sat := Map(float64(s), 0, 255, 0, 20)
	lum := Map(float64(l), 0, 255, 0, 20)

	// h == 4095 maps to 360, the same hue as 0.
	return hsl.HSL{H: math.Mod(hue, hsl.HueMax), S: 65 - sat, L: 75 - lum}
}

// Foreground returns the color of filled cells.
func (g *Generator) Foreground() canvas.RGB {
	r, gr, b := g.HSL().RGB()
	return canvas.RGB{R: r, G: gr, B: b}
}

// Pattern returns the fill decision of every cell.
//
// Columns are visited from the mirror axis outward and rows from top to
// bottom; each visited cell consumes one nibble and is filled when the
// nibble is even. Cells right of the axis mirror their counterpart.
func (g *Generator) Pattern() Pattern {
	n := g.geom.SpriteSize
	p := Pattern{cells: make([][]bool, n)}
	for row := range p.cells {
		p.cells[row] = make([]bool, n)
	}

	nibbles := nibble.New(g.source)
	for col := g.geom.HalfAxis; col >= 0; col-- {
		for row := 0; row < n; row++ {
			v, ok := nibbles.Next()
			if !ok {
				// New checked the source length.
				panic("identicon: nibble sequence exhausted")
			}
			p.decisions++
			if v%2 != 0 {
				continue
			}
			p.cells[row][col] = true
			// Mirror blocks across the axis.
			if col != g.geom.HalfAxis {
				p.cells[row][2*g.geom.HalfAxis-col] = true
			}
		}
	}
	return p
}

// Render paints the identicon onto a new canvas.
func (g *Generator) Render() *canvas.Image {
	geom := g.geom
	img := canvas.NewFilled(image.Rect(0, 0, geom.Size, geom.Size), Background)
	fg := g.Foreground()

	p := g.Pattern()
	for row := 0; row < geom.SpriteSize; row++ {
		for col := 0; col < geom.SpriteSize; col++ {
			if p.Filled(col, row) {
				img.Fill(g.CellRect(col, row), fg)
			}
		}
	}
	return img
}

// CellRect returns the canvas rectangle covered by the cell at (col, row).
func (g *Generator) CellRect(col, row int) image.Rectangle {
	x := col*g.geom.PixelSize + g.geom.Margin
	y := row*g.geom.PixelSize + g.geom.Margin
	return image.Rect(x, y, x+g.geom.PixelSize, y+g.geom.PixelSize)
}

// Pattern is the grid of filled cells of an identicon.
type Pattern struct {
	cells     [][]bool // [row][col]
	decisions int
}

// Size returns the number of cells per row and column.
func (p Pattern) Size() int {
	return len(p.cells)
}

// Filled reports whether the cell at (col, row) is painted.
func (p Pattern) Filled(col, row int) bool {
	if row < 0 || row >= len(p.cells) || col < 0 || col >= len(p.cells[row]) {
		return false
	}
	return p.cells[row][col]
}

// Decisions returns the number of nibbles consumed to build the pattern.
func (p Pattern) Decisions() int {
	return p.decisions
}

// String draws the pattern with '#' for filled and '.' for empty cells.
func (p Pattern) String() string {
	b := make([]byte, 0, len(p.cells)*(len(p.cells)+1))
	for _, row := range p.cells {
		for _, filled := range row {
			if filled {
				b = append(b, '#')
			} else {
				b = append(b, '.')
			}
		}
		b = append(b, '\n')
	}
	return string(b)
}
