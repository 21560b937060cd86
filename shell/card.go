package shell

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"
)

var ErrUnsupportedFormat = errors.New("unsupported card format")

const jpegQuality = 90

// CardMaker creates blank greeting cards.
type CardMaker struct {
	Width      int
	Height     int
	Background color.Color
}

// Returns a card maker for 800x600 white cards.
func NewCardMaker() *CardMaker {
	return &CardMaker{Width: 800, Height: 600, Background: color.White}
}

// Returns a blank canvas with the card background.
func (m *CardMaker) Canvas() *gg.Context {
	dc := gg.NewContext(m.Width, m.Height)
	bg := m.Background
	if bg == nil {
		bg = color.White
	}
	dc.SetColor(bg)
	dc.Clear()
	return dc
}

// Returns a blank card image.
func (m *CardMaker) Image() image.Image {
	return m.Canvas().Image()
}

// Writes a blank card to path. The format follows the extension: .png,
// .jpg or .jpeg. Anything else fails with [ErrUnsupportedFormat].
func (m *CardMaker) Save(path string) error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("invalid card size %dx%d", m.Width, m.Height)
	}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = m.Canvas().SavePNG(path)
	case ".jpg", ".jpeg":
		err = gg.SaveJPG(path, m.Image(), jpegQuality)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("save card: %w", err)
	}
	return nil
}

// CardName returns a file name for a card created at t.
func CardName(t time.Time) string {
	return "card-" + t.Format("20060102-150405") + ".png"
}
