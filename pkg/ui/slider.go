package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider picks a value in [Min, Max] by clicking or dragging along its bar.
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	X, Y     float64
	W, H     float64
}

// NewSlider creates a slider, clamping value into [lo, hi].
func NewSlider(x, y, width float64, label string, lo, hi, value float64) *Slider {
	s := &Slider{Label: label, Min: lo, Max: hi, X: x, Y: y, W: width, H: 10}
	s.Set(value)
	return s
}

// Set clamps v into the slider range.
func (s *Slider) Set(v float64) {
	s.Value = min(max(v, s.Min), s.Max)
}

// Ratio is the relative position of Value, 0 at Min and 1 at Max.
func (s *Slider) Ratio() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// Contains reports whether the point lies on the bar.
func (s *Slider) Contains(x, y float64) bool {
	return x >= s.X && x <= s.X+s.W && y >= s.Y && y <= s.Y+s.H
}

// Update follows the mouse while the left button is held on the bar.
func (s *Slider) Update() {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if s.Contains(float64(mx), float64(my)) {
		s.Set(s.Min + (float64(mx)-s.X)/s.W*(s.Max-s.Min))
	}
}

// Draw renders the bar, its filled part and the current value.
func (s *Slider) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W*s.Ratio()), float32(s.H), color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.2f", s.Value), int(s.X+s.W-40), int(s.Y-15))
}
