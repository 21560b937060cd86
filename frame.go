package senios

import "fmt"

// Byte layout of [Frame.Pix].
type PixelLayout uint8

const (
	LayoutBGR24 PixelLayout = iota // 3 bytes per pixel, blue first (OpenCV / ffmpeg bgr24)
	LayoutRGB24                    // 3 bytes per pixel, red first
	LayoutRGBA                     // 4 bytes per pixel, as produced by reisen
)

// Returns the number of bytes a single pixel takes in the layout,
// or 0 if the layout is unknown.
func (l PixelLayout) BytesPerPixel() int {
	switch l {
	case LayoutBGR24, LayoutRGB24:
		return 3
	case LayoutRGBA:
		return 4
	default:
		return 0
	}
}

func (l PixelLayout) String() string {
	switch l {
	case LayoutBGR24:
		return "bgr24"
	case LayoutRGB24:
		return "rgb24"
	case LayoutRGBA:
		return "rgba"
	default:
		return "unknown"
	}
}

// A Frame is a single decoded raster image.
//
// Frames are transient: the [Stream] that produced a frame may reuse
// its Pix buffer on the next call to [Stream.NextFrame], so a frame
// must be consumed (see [Presenter.Present]) before asking for the
// next one.
type Frame struct {
	Width  int
	Height int
	Stride int // bytes per row; 0 means Width * Layout.BytesPerPixel()
	Layout PixelLayout
	Pix    []byte
}

func (f *Frame) stride() int {
	if f.Stride > 0 {
		return f.Stride
	}
	return f.Width * f.Layout.BytesPerPixel()
}

// Checks that the frame dimensions, layout and buffer size are consistent.
func (f *Frame) Validate() error {
	if f == nil {
		return fmt.Errorf("nil frame")
	}
	bpp := f.Layout.BytesPerPixel()
	if bpp == 0 {
		return fmt.Errorf("unknown pixel layout %d", f.Layout)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", f.Width, f.Height)
	}
	stride := f.stride()
	if stride < f.Width*bpp {
		return fmt.Errorf("stride %d too small for width %d (%s)", stride, f.Width, f.Layout)
	}
	need := stride*(f.Height-1) + f.Width*bpp
	if len(f.Pix) < need {
		return fmt.Errorf("frame buffer has %d bytes, %dx%d %s needs %d", len(f.Pix), f.Width, f.Height, f.Layout, need)
	}
	return nil
}
