package engine

import "sync"

// DefaultTransition is applied to the button whenever it is resized.
const DefaultTransition = "transform 0.3s ease"

// ButtonState is a copy of the button's visual properties.
type ButtonState struct {
	Label      string
	Scale      float64
	Color      string
	Transition string
}

// Button is the mutable visual target that the resize and recolor steps
// modify. The presentation layer renders it; the engine never reverts it.
type Button struct {
	mu         sync.RWMutex
	label      string
	scale      float64
	color      string
	transition string
}

// NewButton creates a button at scale 1 with no color.
func NewButton(label string) *Button {
	return &Button{label: label, scale: 1}
}

// State returns the current properties.
func (b *Button) State() ButtonState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ButtonState{
		Label:      b.label,
		Scale:      b.scale,
		Color:      b.color,
		Transition: b.transition,
	}
}

// Grow multiplies the scale by factor and returns the new scale. A
// non-positive current scale counts as 1.
func (b *Button) Grow(factor float64) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	current := b.scale
	if current <= 0 {
		current = 1
	}
	b.scale = current * factor
	b.transition = DefaultTransition
	return b.scale
}

// SetColor sets the background color.
func (b *Button) SetColor(color string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.color = color
}

// Restore overwrites every property, e.g. to revert the button after a
// reset or to carry it over to a new engine.
func (b *Button) Restore(state ButtonState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.label = state.Label
	b.scale = state.Scale
	b.color = state.Color
	b.transition = state.Transition
}
