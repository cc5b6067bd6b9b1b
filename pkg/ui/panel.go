package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget is anything the panel can stack.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	Height() float64
}

type sliderRow struct{ *Slider }

func (s sliderRow) Height() float64 { return s.H + 25 }

func (s sliderRow) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, s.Label, int(s.X), int(s.Y-15))
	s.Slider.Draw(screen)
}

type checkboxRow struct{ *Checkbox }

func (c checkboxRow) Height() float64 { return c.Size + 8 }

func (c checkboxRow) Draw(screen *ebiten.Image) {
	c.Checkbox.Draw(screen)
	ebitenutil.DebugPrintAt(screen, c.Label, int(c.X+c.Size+6), int(c.Y))
}

type buttonRow struct{ *Button }

func (b buttonRow) Height() float64 { return b.Button.Height + 8 }

type header struct {
	title string
	x, y  float64
}

// Panel stacks widgets top to bottom, with optional section headers.
type Panel struct {
	X, Y, Width float64
	Visible     bool

	widgets []Widget
	headers []header
	next    float64 // y offset of the next row

	BGColor     color.RGBA
	BorderColor color.RGBA
}

// NewPanel creates an empty, visible panel.
func NewPanel(x, y, width float64) *Panel {
	return &Panel{
		X:           x,
		Y:           y,
		Width:       width,
		Visible:     true,
		next:        10,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection starts a new titled group.
func (p *Panel) AddSection(title string) {
	p.headers = append(p.headers, header{title: title, x: p.X + 10, y: p.Y + p.next})
	p.next += 25
}

// AddSlider appends a slider and returns it so the caller can read its value.
func (p *Panel) AddSlider(label string, lo, hi, value float64) *Slider {
	s := NewSlider(p.X+10, p.Y+p.next+15, p.Width-20, label, lo, hi, value)
	p.add(sliderRow{s})
	return s
}

// AddCheckbox appends a checkbox.
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+10, p.Y+p.next, label, value)
	p.add(checkboxRow{c})
	return c
}

// AddButton appends a full-width button.
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+10, p.Y+p.next, p.Width-20, 22, label, onClick)
	p.add(buttonRow{b})
	return b
}

func (p *Panel) add(w Widget) {
	p.widgets = append(p.widgets, w)
	p.next += w.Height()
}

// Height is the space taken by the rows added so far.
func (p *Panel) Height() float64 {
	return p.next + 5
}

// Contains reports whether the point lies on the visible panel.
func (p *Panel) Contains(x, y float64) bool {
	return p.Visible && x >= p.X && x <= p.X+p.Width && y >= p.Y && y <= p.Y+p.Height()
}

// Update forwards input to every widget while the panel is shown.
func (p *Panel) Update() {
	if !p.Visible {
		return
	}
	for _, w := range p.widgets {
		w.Update()
	}
}

// Draw renders the background, the section titles and the widgets.
func (p *Panel) Draw(screen *ebiten.Image) {
	if !p.Visible {
		return
	}
	h := p.Height()
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(h), p.BGColor, false)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(h), 1, p.BorderColor, false)

	for _, hd := range p.headers {
		ebitenutil.DebugPrintAt(screen, "- "+hd.title+" -", int(hd.x), int(hd.y))
	}
	for _, w := range p.widgets {
		w.Draw(screen)
	}
}
