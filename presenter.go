package senios

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// A Surface is where presented frames end up. It holds a single current
// image: every call to Show replaces whatever was shown before.
type Surface interface {
	// Returns the width and height of the area frames must fit into.
	Area() image.Point

	// Displays img, which is owned by the surface after the call.
	Show(img *image.RGBA)
}

// Presenter converts decoded frames to RGBA and scales them to fit a
// [Surface] area while preserving their aspect ratio.
type Presenter struct {
	scaler draw.Scaler
}

// Creates a presenter using [draw.CatmullRom] for resampling.
func NewPresenter() *Presenter {
	return &Presenter{scaler: draw.CatmullRom}
}

// Creates a presenter with the given scaler. Nearest-neighbor scalers
// are accepted but look terrible on video; prefer [draw.CatmullRom] or
// [draw.ApproxBiLinear].
func NewPresenterWithScaler(scaler draw.Scaler) *Presenter {
	if scaler == nil {
		scaler = draw.CatmullRom
	}
	return &Presenter{scaler: scaler}
}

// ParseScaler maps a filter name ("catmullrom", "bilinear") to a
// smooth scaler. The empty name selects CatmullRom.
func ParseScaler(name string) (draw.Scaler, error) {
	switch strings.ToLower(name) {
	case "", "catmullrom":
		return draw.CatmullRom, nil
	case "bilinear":
		return draw.ApproxBiLinear, nil
	default:
		return nil, fmt.Errorf("unknown scale filter %q", name)
	}
}

// Converts the frame, scales it to fit the surface area and shows it.
// Nothing is shown when the surface area is empty.
func (p *Presenter) Present(frame *Frame, surface Surface) error {
	area := surface.Area()
	if area.X <= 0 || area.Y <= 0 {
		return nil
	}

	src, err := ToRGBA(frame)
	if err != nil {
		return err
	}
	w, h := FitSize(frame.Width, frame.Height, area.X, area.Y)
	surface.Show(p.Scale(src, w, h))
	return nil
}

// Resamples img to w x h. If the size already matches, img is returned
// as is.
func (p *Presenter) Scale(img *image.RGBA, w, h int) *image.RGBA {
	bounds := img.Bounds()
	if bounds.Dx() == w && bounds.Dy() == h && bounds.Min == (image.Point{}) {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	p.scaler.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// FitSize returns the largest size with the aspect ratio of
// frameW x frameH that fits entirely within areaW x areaH. The result is
// at least 1x1 for non-degenerate inputs.
func FitSize(frameW, frameH, areaW, areaH int) (int, int) {
	if frameW <= 0 || frameH <= 0 || areaW <= 0 || areaH <= 0 {
		return 0, 0
	}

	// compare areaW/frameW against areaH/frameH without floats, so
	// exact ratios (1920x1080 -> 640x360) stay exact
	var w, h int
	if areaW*frameH <= areaH*frameW {
		w = areaW
		h = (frameH*areaW + frameW/2) / frameW
	} else {
		h = areaH
		w = (frameW*areaH + frameH/2) / frameH
	}
	return max(min(w, areaW), 1), max(min(h, areaH), 1)
}

// ToRGBA copies the frame into a newly allocated opaque RGBA image,
// reordering the channels as needed. The frame buffer is not retained.
func ToRGBA(frame *Frame) (*image.RGBA, error) {
	if err := frame.Validate(); err != nil {
		return nil, fmt.Errorf("present: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	stride := frame.stride()
	for y := 0; y < frame.Height; y++ {
		in := frame.Pix[y*stride:]
		out := img.Pix[y*img.Stride : y*img.Stride+frame.Width*4]
		switch frame.Layout {
		case LayoutRGBA:
			copy(out, in[:frame.Width*4])
			for x := 3; x < len(out); x += 4 {
				out[x] = 0xFF
			}
		case LayoutRGB24:
			for x, i := 0, 0; x < len(out); x, i = x+4, i+3 {
				out[x], out[x+1], out[x+2], out[x+3] = in[i], in[i+1], in[i+2], 0xFF
			}
		case LayoutBGR24:
			for x, i := 0, 0; x < len(out); x, i = x+4, i+3 {
				out[x], out[x+1], out[x+2], out[x+3] = in[i+2], in[i+1], in[i], 0xFF
			}
		}
	}
	return img, nil
}
