package game

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

type resultAction int

const (
	actionNone resultAction = iota
	actionRetry
	actionNext
)

// resultUI is the overlay shown once a level is won or lost.
type resultUI struct {
	ui      *ebitenui.UI
	title   *widget.Text
	detail  *widget.Text
	next    *widget.Button
	pending resultAction
}

func newResultUI(width, height int) *resultUI {
	r := &resultUI{}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	r.title = widget.NewText(widget.TextOpts.Text("", &face, white), widget.TextOpts.WidgetOpts(center))
	r.detail = widget.NewText(widget.TextOpts.Text("", &face, white), widget.TextOpts.WidgetOpts(center))

	retry := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Retry", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			r.pending = actionRetry
		}),
	)
	r.next = widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Next level", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			r.pending = actionNext
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width/2, height/4),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(r.title)
	panel.AddChild(r.detail)
	panel.AddChild(retry)
	panel.AddChild(r.next)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	r.ui = &ebitenui.UI{Container: root}
	return r
}

func (r *resultUI) show(title, detail string, hasNext bool) {
	r.title.Label = title
	r.detail.Label = detail
	if hasNext {
		r.next.GetWidget().Visibility = widget.Visibility_Show
	} else {
		r.next.GetWidget().Visibility = widget.Visibility_Hide
	}
}

// take returns and clears the last button pressed.
func (r *resultUI) take() resultAction {
	a := r.pending
	r.pending = actionNone
	return a
}
