package ebiten

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/jetsetilly/nora32/scheduler"
	"github.com/jetsetilly/nora32/version"
	"golang.org/x/image/font/basicfont"
)

var (
	overlayBackground = color.NRGBA{0x1a, 0x1a, 0x2e, 0xc0}
	overlayText       = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	overlayDetail     = color.NRGBA{0xaa, 0xaa, 0xaa, 0xff}
)

// overlay shows the scheduler statistics in the corner of the window
type overlay struct {
	ui *ebitenui.UI

	title *widget.Text
	mode  *widget.Text
	audio *widget.Text
	help  *widget.Text
}

func newOverlay() *overlay {
	var face text.Face = text.NewGoXFace(basicfont.Face7x13)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(overlayBackground)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(6)),
			widget.RowLayoutOpts.Spacing(2),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	root.AddChild(panel)

	ov := &overlay{
		ui:    &ebitenui.UI{Container: root},
		title: widget.NewText(widget.TextOpts.Text(version.Title(), &face, overlayText)),
		mode:  widget.NewText(widget.TextOpts.Text("", &face, overlayDetail)),
		audio: widget.NewText(widget.TextOpts.Text("", &face, overlayDetail)),
		help:  widget.NewText(widget.TextOpts.Text("M mute  O open  R reset  TAB hide", &face, overlayDetail)),
	}

	panel.AddChild(ov.title)
	panel.AddChild(ov.mode)
	panel.AddChild(ov.audio)
	panel.AddChild(ov.help)

	return ov
}

func (ov *overlay) setStats(st scheduler.Stats) {
	ov.mode.Label = fmt.Sprintf("%s: %d frames", st.Mode, st.Frames)
	if st.Mode == scheduler.UnmutedAudio {
		ov.audio.Label = fmt.Sprintf("buffer %d/%d  underruns %d", st.Available, st.Capacity, st.Underruns)
	} else {
		ov.audio.Label = "audio muted"
	}
}
