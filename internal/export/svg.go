package export

import (
	"fmt"
	"html"
	"io"
	"strings"
	"unicode"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"github.com/StendArts/Astronomic-Objects/internal/view"
	"github.com/StendArts/Astronomic-Objects/internal/viz"
)

const background = "#0a0a0a"

// SVGOptions controls the trajectory plot.
type SVGOptions struct {
	Width, Height int

	// Center, if set, is held fixed at the middle of the plot.
	Center string

	// MaxPoints caps the vertices per path. Zero keeps every sample.
	MaxPoints int
}

// TrajectoriesSVG writes the x/y projection of every body's orbit as an SVG
// document: one polyline per body in its display colour and a disc at the
// final position sized by radius.
func TrajectoriesSVG(w io.Writer, h *dynamo.History, opts SVGOptions) error {
	if h.Len() == 0 {
		return fmt.Errorf("export: empty history")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("export: invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.Center != "" {
		rel, err := view.Recenter(h, opts.Center)
		if err != nil {
			return err
		}
		h = rel
	}

	box := view.Bounds(h).Square(0.1)
	span := box.Max.X - box.Min.X
	side := float64(min(opts.Width, opts.Height))
	offX := (float64(opts.Width) - side) / 2
	offY := (float64(opts.Height) - side) / 2
	project := func(x, y float64) (float64, float64) {
		return offX + (x-box.Min.X)/span*side, offY + side - (y-box.Min.Y)/span*side
	}

	stride := 1
	if opts.MaxPoints > 0 && h.Len() > opts.MaxPoints {
		stride = (h.Len() + opts.MaxPoints - 1) / opts.MaxPoints
	}
	sizes := view.MarkerSizes(view.HistoryRadii(h), 2, 8)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, background)

	last := h.Len() - 1
	for i, name := range h.Order {
		ps := h.Positions(name)
		color := string(viz.BodyColor(h.Colors[name]))

		fmt.Fprintf(&sb, `<path id="%s" fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.7" d="`, pathID(i, name), color)
		for k := 0; k <= last; k += stride {
			x, y := project(ps[k].X, ps[k].Y)
			if k == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		if last%stride != 0 {
			x, y := project(ps[last].X, ps[last].Y)
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
		sb.WriteString("\"/>\n")

		cx, cy := project(ps[last].X, ps[last].Y)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s</title></circle>
`, cx, cy, sizes[i], color, html.EscapeString(name))
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// pathID turns a body name into an XML id. The index keeps ids unique when
// two names reduce to the same slug.
func pathID(i int, name string) string {
	slug := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToLower(r)
		}
		return '-'
	}, name)
	return fmt.Sprintf("body%d-%s", i, slug)
}
