package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"timelog/internal/api"
	"timelog/internal/config"
	"timelog/internal/domain"
	"timelog/internal/services"
	"timelog/internal/validation"
)

// Display formats accepted by DisplayConfig.Format.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// Renderer writes days and weeks as tables.
type Renderer struct {
	out          io.Writer
	format       string
	color        bool
	showDefaults bool
}

// NewRenderer creates a renderer writing to out with the display settings.
func NewRenderer(out io.Writer, display config.DisplayConfig) *Renderer {
	return &Renderer{
		out:          out,
		format:       display.Format,
		color:        display.Color && display.Format == FormatTable,
		showDefaults: display.ShowDefaults,
	}
}

func (r *Renderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	return t
}

func (r *Renderer) render(t table.Writer) {
	switch r.format {
	case FormatMarkdown:
		t.RenderMarkdown()
	case FormatCSV:
		t.RenderCSV()
	default:
		t.SetStyle(table.StyleRounded)
		t.Render()
	}
}

func (r *Renderer) highlight(s string) string {
	if !r.color {
		return s
	}
	return text.Colors{text.FgRed, text.Bold}.Sprint(s)
}

func (r *Renderer) faint(s string) string {
	if !r.color {
		return s
	}
	return text.Colors{text.Faint}.Sprint(s)
}

// RenderDay writes the four markers of a day and its total. Unset markers
// show their default time in parentheses when defaults are enabled. The
// two markers of an incoherent day are highlighted.
func (r *Renderer) RenderDay(view *api.DayView) {
	incoherent, isIncoherent := validation.AsIncoherentMarkers(view.Err)

	t := r.newTable()
	t.SetTitle(fmt.Sprintf("%s %s", view.Day.Weekday(), view.Day))
	t.AppendHeader(table.Row{"Marker", "Time"})
	for _, m := range domain.Markers() {
		value := "-"
		if tm, ok := view.Markers[m]; ok {
			value = tm.String()
		} else if r.showDefaults {
			value = r.faint("(" + m.DefaultTime().String() + ")")
		}

		label := m.Label()
		if isIncoherent && (m == incoherent.Earlier || m == incoherent.Later) {
			label = r.highlight(label)
			value = r.highlight(value)
		}
		t.AppendRow(table.Row{label, value})
	}
	t.AppendFooter(table.Row{"Total", r.total(view.Total, view.Err)})
	r.render(t)

	if view.Err != nil {
		fmt.Fprintln(r.out, r.highlight(view.Err.Error()))
	}
}

// RenderWeek writes the total of every day of the report and the week total.
func (r *Renderer) RenderWeek(report *services.WeekReport) {
	t := r.newTable()
	t.AppendHeader(table.Row{"Day", "Date", "Total"})
	for _, d := range report.Days {
		t.AppendRow(table.Row{d.Day.Weekday().String(), d.Day.String(), r.total(d.Total, d.Err)})
	}
	t.AppendFooter(table.Row{"", "Week", r.total(report.Total, report.Err)})
	r.render(t)

	if report.Err != nil {
		fmt.Fprintln(r.out, r.highlight(report.Err.Error()))
	}
}

// RenderList writes one row per saved day with its markers, total and how
// long ago it was last updated.
func (r *Renderer) RenderList(views []*api.DayView, now time.Time) {
	t := r.newTable()
	header := table.Row{"Date"}
	for _, m := range domain.Markers() {
		header = append(header, m.Label())
	}
	t.AppendHeader(append(header, "Total", "Updated"))

	for _, v := range views {
		row := table.Row{v.Day.String()}
		for _, m := range domain.Markers() {
			if tm, ok := v.Markers[m]; ok {
				row = append(row, tm.String())
			} else {
				row = append(row, "")
			}
		}
		row = append(row, r.total(v.Total, v.Err), humanize.RelTime(v.UpdatedAt, now, "ago", "from now"))
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d day(s)", len(views))})
	r.render(t)
}

func (r *Renderer) total(total domain.Time, err error) string {
	if err != nil {
		return r.highlight("incoherent")
	}
	return total.String()
}
