package shell

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/erparts/go-senios"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// PhotoViewer shows still images on a [senios.Surface], fitted the same
// way as video frames.
type PhotoViewer struct {
	presenter *senios.Presenter
	surface   senios.Surface
	path      string
	size      image.Point
}

func NewPhotoViewer(presenter *senios.Presenter, surface senios.Surface) *PhotoViewer {
	if presenter == nil {
		presenter = senios.NewPresenter()
	}
	return &PhotoViewer{presenter: presenter, surface: surface}
}

// Returns the path of the photo being shown, or "" if none.
func (v *PhotoViewer) Path() string { return v.path }

// Returns the original size of the photo being shown.
func (v *PhotoViewer) Size() image.Point { return v.size }

// Decodes the image at path and shows it. On failure the previously
// shown photo stays.
func (v *PhotoViewer) Open(path string) error {
	img, err := DecodeImage(path)
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	area := v.surface.Area()
	w, h := senios.FitSize(bounds.Dx(), bounds.Dy(), area.X, area.Y)
	if w > 0 && h > 0 {
		v.surface.Show(v.presenter.Scale(rgba, w, h))
	}
	v.path = path
	v.size = bounds.Size()
	senios.CurrentLogger().Debugf("photo %s (%dx%d) shown at %dx%d", path, bounds.Dx(), bounds.Dy(), w, h)
	return nil
}

// DecodeImage reads a PNG, JPEG or BMP file.
func DecodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if b := img.Bounds(); b.Empty() {
		return nil, fmt.Errorf("decode %s: empty %s image", path, format)
	}
	return img, nil
}
