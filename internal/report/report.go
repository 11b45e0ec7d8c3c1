// Package report renders the read-only views of each container as text
// tables. Renderers never mutate what they are given.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/mesh-intelligence/trainyard/internal/fleet"
	"github.com/mesh-intelligence/trainyard/internal/playlist"
	"github.com/mesh-intelligence/trainyard/internal/route"
	"github.com/mesh-intelligence/trainyard/pkg/types"
)

// Markers appended to the current entry of a cursor list.
const (
	MarkFleetHere  = "<-- fleet here"
	MarkNowPlaying = "<-- now playing"
)

var styles = map[string]table.Style{
	types.TableStyleLight:   table.StyleLight,
	types.TableStyleRounded: table.StyleRounded,
	types.TableStyleDouble:  table.StyleDouble,
	types.TableStyleDefault: table.StyleDefault,
}

// Renderer writes tables to w in one style.
type Renderer struct {
	w     io.Writer
	style table.Style
}

// New returns a Renderer for the named table style. Unknown or empty names
// use the light style.
func New(w io.Writer, style string) *Renderer {
	s, ok := styles[style]
	if !ok {
		s = table.StyleLight
	}
	return &Renderer{w: w, style: s}
}

func (r *Renderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(r.style)
	return t
}

func (r *Renderer) render(t table.Writer) {
	fmt.Fprintln(r.w, t.Render())
}

// Fleet prints every train with its manifest, in roster order.
func (r *Renderer) Fleet(trains []fleet.Summary) {
	if len(trains) == 0 {
		fmt.Fprintln(r.w, "[Fleet] No trains in fleet.")
		return
	}
	fmt.Fprintf(r.w, "TRAIN FLEET (%d trains)\n", len(trains))
	for i, s := range trains {
		r.manifest(fmt.Sprintf("#%d [%s] %s | %d/%d tons | %d cargo items",
			i+1, s.ID, s.Name, s.Weight, s.Capacity, s.Count), s.Cargo)
	}
}

// Train prints one train's details and full manifest.
func (r *Renderer) Train(s fleet.Summary) {
	r.manifest(fmt.Sprintf("Train: [%s] %s | Weight: %d/%d tons | Cargo items: %d",
		s.ID, s.Name, s.Weight, s.Capacity, s.Count), s.Cargo)
}

func (r *Renderer) manifest(title string, cargo []types.Cargo) {
	fmt.Fprintln(r.w, title)
	t := r.newTable()
	t.AppendHeader(table.Row{"#", "Cargo", "Type", "Weight (tons)"})
	if len(cargo) == 0 {
		t.AppendRow(table.Row{"", "(no cargo loaded)", "", ""})
	}
	t.AppendRows(lo.Map(cargo, func(c types.Cargo, i int) table.Row {
		return table.Row{i + 1, c.Name, c.Category, c.Weight}
	}))
	r.render(t)
}

// Route prints one full circle of stations starting at head.
func (r *Renderer) Route(stops []route.Stop) {
	if len(stops) == 0 {
		fmt.Fprintln(r.w, "[Route] No stations defined.")
		return
	}
	fmt.Fprintf(r.w, "Route Loop (%d stations)\n", len(stops))
	t := r.newTable()
	t.AppendHeader(table.Row{"#", "Station", ""})
	t.AppendRows(lo.Map(stops, func(s route.Stop, i int) table.Row {
		return table.Row{i + 1, s.Name, lo.Ternary(s.Current, MarkFleetHere, "")}
	}))
	r.render(t)
	fmt.Fprintf(r.w, "(loops back to %q)\n", stops[0].Name)
}

// Playlist prints entries in the order given; title names the direction.
func (r *Renderer) Playlist(title string, entries []playlist.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(r.w, "Playlist is empty.")
		return
	}
	fmt.Fprintln(r.w, title)
	t := r.newTable()
	t.AppendHeader(table.Row{"#", "Title", "Artist", "Length", ""})
	t.AppendRows(lo.Map(entries, func(e playlist.Entry, _ int) table.Row {
		return table.Row{e.Position, e.Track.Title, e.Track.Artist, e.Track.Duration(),
			lo.Ternary(e.Current, MarkNowPlaying, "")}
	}))
	r.render(t)
}

// History prints journal events oldest first.
func (r *Renderer) History(events []types.Event) {
	if len(events) == 0 {
		fmt.Fprintln(r.w, "(no events recorded)")
		return
	}
	t := r.newTable()
	t.AppendHeader(table.Row{"Seq", "Time", "Kind", "Subject", "Detail"})
	t.AppendRows(lo.Map(events, func(e types.Event, _ int) table.Row {
		return table.Row{e.Seq, e.CreatedAt.Local().Format("15:04:05"), e.Kind, e.Subject, e.Detail}
	}))
	r.render(t)
}

// Lines prints each line as is, e.g. a metrics snapshot.
func (r *Renderer) Lines(lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(r.w, strings.Join(lines, "\n"))
}
