package terminal

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/smallnest/clickflow/engine"
)

// Image is an image shown by a showImage step.
type Image struct {
	URL     string
	AltText string
}

// Screen is the output area below the button. It implements engine.Sinks.
type Screen struct {
	styles Styles

	mu       sync.Mutex
	texts    []string
	images   []Image
	disabled bool
}

// NewScreen creates an empty screen.
func NewScreen(styles Styles) *Screen {
	return &Screen{styles: styles}
}

// ShowText implements engine.Sinks.
func (s *Screen) ShowText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
}

// ShowImage implements engine.Sinks.
func (s *Screen) ShowImage(url, altText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = append(s.images, Image{URL: url, AltText: altText})
}

// DisableButton implements engine.Sinks.
func (s *Screen) DisableButton() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled = true
}

func (s *Screen) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

func (s *Screen) Images() []Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Image(nil), s.images...)
}

func (s *Screen) Disabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disabled
}

// ClearOutput empties the texts and images. The disabled flag is kept.
func (s *Screen) ClearOutput() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = nil
	s.images = nil
}

// Clear empties the outputs and enables the button again.
func (s *Screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = nil
	s.images = nil
	s.disabled = false
}

// RenderButton draws the button. The scale widens the padding and the color
// replaces the default background.
func (s *Screen) RenderButton(button engine.ButtonState) string {
	label := button.Label
	if label == "" {
		label = " "
	}

	if s.Disabled() {
		return s.styles.Disabled.Render(label)
	}

	style := s.styles.Button
	scale := button.Scale
	if scale <= 0 {
		scale = 1
	}
	style = style.Padding(scaledPadding(scale, 0), scaledPadding(scale, 2))
	if button.Color != "" {
		style = style.Background(lipgloss.Color(button.Color))
	}
	return style.Render(label)
}

func scaledPadding(scale float64, base int) int {
	grown := int(math.Round(float64(base)*scale + (scale - 1)))
	if grown < base {
		return base
	}
	return grown
}

// Render draws the button followed by every output.
func (s *Screen) Render(button engine.ButtonState) string {
	var b strings.Builder
	b.WriteString(s.RenderButton(button))
	b.WriteString("\n")

	texts := s.Texts()
	images := s.Images()
	if len(texts) == 0 && len(images) == 0 {
		b.WriteString(s.styles.Muted.Render("(no output yet)"))
		b.WriteString("\n")
		return b.String()
	}

	if len(texts) > 0 {
		b.WriteString("\n")
		b.WriteString(s.styles.Title.Render("Output"))
		b.WriteString("\n")
		for _, text := range texts {
			b.WriteString(s.styles.Text.Render("  " + text))
			b.WriteString("\n")
		}
	}
	if len(images) > 0 {
		b.WriteString("\n")
		b.WriteString(s.styles.Title.Render("Images"))
		b.WriteString("\n")
		for _, img := range images {
			alt := img.AltText
			if alt == "" {
				alt = "Action result"
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", s.styles.Image.Render(img.URL), s.styles.Muted.Render("("+alt+")")))
		}
	}
	return b.String()
}
