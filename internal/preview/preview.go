// Package preview draws identicons in a terminal.
//
// Each cell becomes two character columns wide so cells look square in
// most fonts. A one cell border of background color frames the grid, the
// way the margin frames it in the rendered image.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/flavioheleno/identicon"
	"github.com/flavioheleno/identicon/canvas"
)

const (
	cell        = "  "
	filledASCII = "██"
)

// Options configures a preview.
type Options struct {
	// Profile is the terminal color profile. termenv.Ascii draws filled
	// cells with block characters instead of colors.
	Profile termenv.Profile
}

// Render returns the preview of g, one line per grid row plus the border,
// each line terminated by a newline.
func Render(g *identicon.Generator, opts Options) string {
	p := g.Pattern()
	n := p.Size()

	var filled, empty string
	if opts.Profile == termenv.Ascii {
		filled, empty = filledASCII, cell
	} else {
		r := lipgloss.NewRenderer(io.Discard)
		r.SetColorProfile(opts.Profile)
		filled = r.NewStyle().Background(hexColor(g.Foreground())).Render(cell)
		empty = r.NewStyle().Background(hexColor(identicon.Background)).Render(cell)
	}

	var b strings.Builder
	border := strings.Repeat(empty, n+2) + "\n"
	b.WriteString(border)
	for row := 0; row < n; row++ {
		b.WriteString(empty)
		for col := 0; col < n; col++ {
			if p.Filled(col, row) {
				b.WriteString(filled)
			} else {
				b.WriteString(empty)
			}
		}
		b.WriteString(empty)
		b.WriteByte('\n')
	}
	b.WriteString(border)
	return b.String()
}

func hexColor(c canvas.RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
