package dashboard

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"movereminder/internal/core/session"
)

var (
	sitColor   = color.NRGBA{R: 239, G: 68, B: 68, A: 255}
	standColor = color.NRGBA{R: 16, G: 185, B: 129, A: 255}
	walkColor  = color.NRGBA{R: 59, G: 130, B: 246, A: 255}
)

// Chart draws today's activity as a stacked bar with a text summary.
type Chart struct {
	title    *widget.Label
	summary  *widget.Label
	bar      *fyne.Container
	segments [3]*canvas.Rectangle
	layout   *shareLayout
	content  fyne.CanvasObject
}

// NewChart creates an empty chart.
func NewChart() *Chart {
	chart := &Chart{
		title:   widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		summary: widget.NewLabel(""),
		layout:  &shareLayout{},
	}
	chart.summary.Wrapping = fyne.TextWrapWord
	chart.summary.Alignment = fyne.TextAlignCenter

	chart.segments = [3]*canvas.Rectangle{
		canvas.NewRectangle(sitColor),
		canvas.NewRectangle(standColor),
		canvas.NewRectangle(walkColor),
	}
	chart.bar = container.New(chart.layout, chart.segments[0], chart.segments[1], chart.segments[2])

	legend := container.NewHBox(
		legendEntry("Sitting", sitColor),
		legendEntry("Standing", standColor),
		legendEntry("Walking", walkColor),
	)
	chart.content = container.NewVBox(chart.title, chart.bar, container.NewCenter(legend), chart.summary)
	chart.SetStats(session.Stats{})
	return chart
}

// SetStats redraws the chart.
func (chart *Chart) SetStats(stats session.Stats) {
	sit, stand, walk := stats.Shares()
	chart.layout.shares = [3]float64{sit, stand, walk}
	chart.bar.Refresh()

	if stats.Total() == 0 {
		chart.title.SetText("No activity data yet")
	} else {
		chart.title.SetText(fmt.Sprintf("Total Active Time: %d minutes", stats.Total()))
	}
	chart.summary.SetText(Summary(stats))
}

// Show opens the chart in a dialog over parent.
func (chart *Chart) Show(parent fyne.Window) {
	chartDialog := dialog.NewCustom("Today's Activity Chart", "Close", chart.content, parent)
	chartDialog.Resize(fyne.NewSize(520, 260))
	chartDialog.Show()
}

// Summary describes the minutes and shares per phase.
func Summary(stats session.Stats) string {
	if stats.Total() == 0 {
		return "Start your movement timer to see activity breakdown"
	}
	sit, stand, walk := stats.Shares()
	return fmt.Sprintf("Sitting: %d min (%.1f%%)  |  Standing: %d min (%.1f%%)  |  Walking: %d min (%.1f%%)",
		stats.SitMinutes, sit*100,
		stats.StandMinutes, stand*100,
		stats.WalkMinutes, walk*100)
}

func legendEntry(label string, fill color.Color) fyne.CanvasObject {
	swatch := canvas.NewRectangle(fill)
	swatch.SetMinSize(fyne.NewSize(12, 12))
	return container.NewHBox(container.NewCenter(swatch), widget.NewLabel(label))
}

// shareLayout places its objects side by side, each as wide as its share.
type shareLayout struct {
	shares [3]float64
}

func (layout *shareLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	x := float32(0)
	for i, object := range objects {
		width := float32(0)
		if i < len(layout.shares) {
			width = size.Width * float32(layout.shares[i])
		}
		object.Move(fyne.NewPos(x, 0))
		object.Resize(fyne.NewSize(width, size.Height))
		x += width
	}
}

func (layout *shareLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(240, 32)
}
