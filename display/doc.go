// Package display shows identicons on an SSD1322 OLED panel over SPI.
//
// The SSD1322 is a 4-bit grayscale controller driving panels of up to
// 480x128 pixels, most commonly 256x64. Identicons are square, so Show
// scales them to the panel height and centers them horizontally, leaving
// the sides dark.
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → SPI Chip Select (or GND if always selected)
//	RES         → Optional: GPIO for hardware reset
//
// # Basic Usage
//
//	host.Init()
//	port, _ := spireg.Open("")
//	dev, err := display.NewSPI(port, gpioreg.ByName("GPIO25"), nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Halt()
//
//	img, _ := identicon.Render(sum[:])
//	dev.Show(img)
//
// # Pixel Format
//
// Frames are packed two pixels per byte, the left pixel in the high nibble:
//
//	Pixels: 0  1  2  3
//	Values: 5  10 3  12
//	Bytes:  0x5A  0x3C
//
// Colors are reduced to 16 gray levels with the Rec. 601 luma weights.
//
// Dev implements the display.Drawer interface from periph.io, so it can
// also be used with any periph.io tool expecting one.
package display
