package actions

import (
	"fmt"
	"io"
	"sort"

	"github.com/muesli/termenv"

	"github.com/genie-sim/genie/internal/core/cast"
	"github.com/genie-sim/genie/internal/core/clock"
	"github.com/genie-sim/genie/internal/core/script"
	"github.com/genie-sim/genie/internal/traits"
)

// RenderConsole writes the position of every body to a terminal every n
// frames, with the image path and scale of actors that carry an Image.
// Output category.
type RenderConsole struct {
	script.Base
	out    *termenv.Output
	every  int
	frames int
}

// NewRenderConsole renders to w every `every` frames (at least 1). Colour is
// used only when color is set and w is a terminal that supports it.
func NewRenderConsole(priority int, w io.Writer, every int, color bool) *RenderConsole {
	if every < 1 {
		every = 1
	}
	opts := []termenv.OutputOption{}
	if !color {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &RenderConsole{
		Base:  script.NewBase(script.Output, priority),
		out:   termenv.NewOutput(w, opts...),
		every: every,
	}
}

type bodyLine struct {
	label string
	body  *traits.Body
	image *traits.Image
}

func (r *RenderConsole) Execute(actors *cast.Actors, _ *script.Actions, clk *clock.Clock, _ script.Callback) {
	r.frames++
	if r.frames%r.every != 0 {
		return
	}

	var lines []bodyLine
	cast.Each1(actors, func(a *cast.Actor, b *traits.Body) {
		img, _ := cast.Get[*traits.Image](a)
		lines = append(lines, bodyLine{label: labelOf(a), body: b, image: img})
	})
	sort.Slice(lines, func(i, j int) bool { return lines[i].label < lines[j].label })

	header := r.out.String(fmt.Sprintf("t=%-8s frame %d", clk.SimTime(), clk.Frames())).Bold()
	fmt.Fprintln(r.out, header)
	for _, l := range lines {
		name := r.out.String(fmt.Sprintf("%-12s", l.label)).Foreground(r.out.Color("6"))
		fmt.Fprintf(r.out, "  %s x=%8.2f y=%8.2f", name, l.body.X, l.body.Y)
		if l.image != nil {
			fmt.Fprintf(r.out, "  %s", r.out.String(fmt.Sprintf("%s x%.2f", l.image.Path, l.image.Scale)).Faint())
		}
		fmt.Fprintln(r.out)
	}
}
