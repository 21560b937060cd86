package ebitensurface

import (
	"github.com/erparts/go-senios"
	"github.com/hajimehoshi/ebiten/v2"
)

// Draw centers frame in viewport. Frames shown through a [Surface] already
// have their fitted size and are only translated; other images (cards,
// frames from a resized window) are first scaled to fit with
// [ebiten.FilterLinear]. The uncovered part of the viewport is left as is.
func Draw(viewport, frame *ebiten.Image) {
	geom, filter := CalcProjection(viewport, frame)
	var opts ebiten.DrawImageOptions
	opts.GeoM = geom
	opts.Filter = filter
	viewport.DrawImage(frame, &opts)
}

// CalcProjection returns the GeoM and recommended ebiten.Filter to project
// the frame into the given viewport. Frames already presented at the right
// size (see [senios.Presenter]) are only translated.
func CalcProjection(viewport, frame *ebiten.Image) (ebiten.GeoM, ebiten.Filter) {
	frameBounds := frame.Bounds()
	viewBounds := viewport.Bounds()
	vwWidth, vwHeight := viewBounds.Dx(), viewBounds.Dy()
	frWidth, frHeight := frameBounds.Dx(), frameBounds.Dy()

	// translation to viewport origin
	tx, ty := float64(viewBounds.Min.X), float64(viewBounds.Min.Y)

	var geom ebiten.GeoM
	filter := ebiten.FilterLinear
	fitWidth, fitHeight := senios.FitSize(frWidth, frHeight, vwWidth, vwHeight)
	if fitWidth == frWidth && fitHeight == frHeight {
		filter = ebiten.FilterNearest // 1:1, nothing to interpolate
	} else if fitWidth > 0 {
		geom.Scale(float64(fitWidth)/float64(frWidth), float64(fitHeight)/float64(frHeight))
	}
	geom.Translate(tx+float64(vwWidth-fitWidth)/2, ty+float64(vwHeight-fitHeight)/2)
	return geom, filter
}
