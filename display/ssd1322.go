package display

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	periphdisplay "periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// ramColumns is the width of the controller's display RAM.
const ramColumns = 480

var (
	// ErrHalted is returned by every operation after Halt.
	ErrHalted = errors.New("display: halted")
	// ErrInvalidOpts is returned by NewSPI for unsupported panel sizes.
	ErrInvalidOpts = errors.New("display: invalid options")
)

// Opts is the configuration of the panel.
type Opts struct {
	W int // Width (default: 256, must be a multiple of 4 and ≤480)
	H int // Height (default: 64, must be ≤128)

	Rotated bool // 180° rotation

	RST gpio.PinIO // Reset pin (optional, nil if not used)
}

// Dev is an SSD1322 panel.
type Dev struct {
	c   conn.Conn
	dc  gpio.PinOut
	rst gpio.PinIO

	rect         image.Rectangle
	columnOffset int // centers the panel in the 480 column RAM

	frame  *Frame
	halted bool
}

var _ periphdisplay.Drawer = (*Dev)(nil)

// NewSPI connects to an SSD1322 on p and initializes it.
//
// dc is the Data/Command pin. opts can be nil for a 256x64 panel.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 256, H: 64}
	}
	if opts.W <= 0 || opts.W%4 != 0 || opts.W > ramColumns {
		return nil, fmt.Errorf("%w: width %d must be a multiple of 4 between 4 and %d", ErrInvalidOpts, opts.W, ramColumns)
	}
	if opts.H <= 0 || opts.H > 128 {
		return nil, fmt.Errorf("%w: height %d must be between 1 and 128", ErrInvalidOpts, opts.H)
	}

	// Mode0 at 10MHz; the controller accepts up to 20MHz.
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("display: connecting to %s: %w", p, err)
	}

	rect := image.Rect(0, 0, opts.W, opts.H)
	d := &Dev{
		c:            c,
		dc:           dc,
		rst:          opts.RST,
		rect:         rect,
		columnOffset: (ramColumns - opts.W) / 2,
		frame:        NewFrame(rect),
	}
	if err := d.init(opts.Rotated); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) init(rotated bool) error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("display: pulling RST low: %w", err)
		}
		time.Sleep(200 * time.Millisecond)
		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("display: pulling RST high: %w", err)
		}
		time.Sleep(200 * time.Millisecond)
	}

	remap := byte(0x14)
	if rotated {
		remap = 0x06
	}
	cmds := []byte{
		0xFD, 0x12, // Unlock
		0xAE,       // Display OFF
		0xB3, 0xF2, // Clock divider
		0xCA, byte(d.rect.Dy() - 1), // MUX ratio
		0xA2, 0x00, // Display offset
		0xA1, 0x00, // Start line
		0xA0, remap, 0x11, // Remap, dual COM
		0xAB, 0x01, // Internal VDD
		0xB4, 0xA0, 0xFD, // VSL
		0xC1, 0xFF, // Contrast
		0xC7, 0x0F, // Master contrast
		0xB9,       // Default grayscale table
		0xB1, 0xE2, // Phase length
		0xD1, 0x82, 0x20, // Display enhancement
		0xBB, 0x1F, // Pre-charge voltage
		0xB6, 0x08, // Second pre-charge
		0xBE, 0x07, // VCOMH
		0xA6, // Normal display
		0xA9, // Exit partial display
	}
	if err := d.command(cmds...); err != nil {
		return err
	}
	if err := d.flush(); err != nil {
		return err
	}
	return d.command(0xAF) // Display ON
}

func (d *Dev) command(cmds ...byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx(cmds, nil)
}

func (d *Dev) data(b []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx(b, nil)
}

// flush writes the whole frame buffer to display RAM.
func (d *Dev) flush() error {
	colStart := byte(d.columnOffset / 4)
	colEnd := byte((d.columnOffset+d.rect.Dx())/4 - 1)
	if err := d.command(
		0x15, colStart, colEnd, // Column address, 4 pixels per column
		0x75, 0, byte(d.rect.Dy()-1), // Row address
		0x5C, // Write RAM
	); err != nil {
		return err
	}
	return d.data(d.frame.Pix)
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return Gray4Model
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer. src is copied into dst, clipped to the
// panel, and the frame is sent.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}
	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}
	draw.Draw(d.frame, dst, src, sp, draw.Src)
	return d.flush()
}

// Show draws a square image scaled to the panel height and centered, with
// the rest of the panel dark.
func (d *Dev) Show(img image.Image) error {
	if d.halted {
		return ErrHalted
	}
	d.frame.Clear()
	scaleInto(d.frame, FitSquare(d.rect), img)
	return d.flush()
}

// FitSquare returns the largest square centered in r.
func FitSquare(r image.Rectangle) image.Rectangle {
	side := min(r.Dx(), r.Dy())
	x := r.Min.X + (r.Dx()-side)/2
	y := r.Min.Y + (r.Dy()-side)/2
	return image.Rect(x, y, x+side, y+side)
}

// scaleInto samples src onto dst with nearest neighbour scaling.
func scaleInto(f *Frame, dst image.Rectangle, src image.Image) {
	sb := src.Bounds()
	if dst.Empty() || sb.Empty() {
		return
	}
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		sy := sb.Min.Y + (y-dst.Min.Y)*sb.Dy()/dst.Dy()
		for x := dst.Min.X; x < dst.Max.X; x++ {
			sx := sb.Min.X + (x-dst.Min.X)*sb.Dx()/dst.Dx()
			f.Set(x, y, src.At(sx, sy))
		}
	}
}

// SetContrast sets the panel contrast (0-255).
func (d *Dev) SetContrast(contrast byte) error {
	if d.halted {
		return ErrHalted
	}
	return d.command(0xC1, contrast)
}

// Invert swaps dark and lit pixels. Identicons have a light background,
// which most OLED panels look better showing inverted.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return ErrHalted
	}
	if invert {
		return d.command(0xA7)
	}
	return d.command(0xA6)
}

// Halt turns the panel off. The Dev cannot be used afterwards.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	d.halted = true
	return d.command(0xAE)
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("display.SSD1322{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
