// Package ebitensurface shows presented frames and photos on Ebitengine
// images.
package ebitensurface

import (
	"image"
	"image/color"

	"github.com/erparts/go-senios"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

var _ senios.Surface = (*Surface)(nil)

// Surface is a [senios.Surface] keeping the last shown image in a single
// [ebiten.Image] slot. Show must be called from the game goroutine
// (typically during Update), like any other ebiten image operation.
type Surface struct {
	area    image.Point
	current *ebiten.Image
	shown   bool
}

// Creates a surface for a target area of the given size.
func New(width, height int) *Surface {
	return &Surface{area: image.Pt(width, height)}
}

func (s *Surface) Area() image.Point { return s.area }

// Changes the target area. Already shown content is not rescaled; the
// next presented frame will use the new size.
func (s *Surface) SetArea(width, height int) {
	s.area = image.Pt(width, height)
}

// Replaces the current image. The pixels are uploaded right away, so img
// can be discarded after the call.
func (s *Surface) Show(img *image.RGBA) {
	bounds := img.Bounds()
	if s.current == nil || s.current.Bounds().Size() != bounds.Size() {
		if s.current != nil {
			s.current.Deallocate()
		}
		s.current = ebiten.NewImage(bounds.Dx(), bounds.Dy())
	}
	pix := img.Pix
	if bounds.Min != (image.Point{}) || img.Stride != bounds.Dx()*4 {
		packed := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(packed, packed.Bounds(), img, bounds.Min, draw.Src)
		pix = packed.Pix
	}
	s.current.WritePixels(pix)
	s.shown = true
}

// Drops the current image, e.g. once the video session is closed.
func (s *Surface) Clear() {
	if s.current != nil {
		s.current.Fill(color.Black)
	}
	s.shown = false
}

// Returns the current image, or nil if nothing has been shown since the
// last [Surface.Clear].
func (s *Surface) Current() *ebiten.Image {
	if !s.shown {
		return nil
	}
	return s.current
}

// Draws the current image centered in the given viewport, if any.
func (s *Surface) DrawTo(viewport *ebiten.Image) {
	if current := s.Current(); current != nil {
		Draw(viewport, current)
	}
}
