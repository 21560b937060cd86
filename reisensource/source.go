// Package reisensource implements a [senios.FrameSource] on top of
// [erparts/reisen], which wraps the FFmpeg libraries through cgo.
//
// [erparts/reisen]: https://github.com/erparts/reisen
package reisensource

import (
	"io"
	"path/filepath"

	"github.com/erparts/go-senios"
	"github.com/erparts/reisen"
)

var _ senios.FrameSource = (*Source)(nil)

// Source opens video files with reisen. Frames are produced in
// [senios.LayoutRGBA].
type Source struct{}

func New() *Source {
	return &Source{}
}

// Opens the first video stream of the given file. Audio and any other
// video streams are ignored.
func (s *Source) Open(path string) (senios.Stream, error) {
	if err := senios.CheckFile(path); err != nil {
		return nil, err
	}

	media, err := reisen.NewMedia(path)
	if err != nil {
		return nil, err
	}

	// make sure there's a video stream
	videoStreams := media.VideoStreams()
	if len(videoStreams) == 0 {
		media.Close()
		return nil, senios.ErrNoVideo
	}
	if len(videoStreams) > 1 {
		senios.CurrentLogger().Warnf("'%s' has multiple video streams; defaulting to the first", filepath.Base(path))
	}
	videoStream := videoStreams[0]

	// open decoders
	if err := media.OpenDecode(); err != nil {
		media.Close()
		return nil, err
	}
	if err := videoStream.Open(); err != nil {
		media.CloseDecode()
		media.Close()
		return nil, err
	}

	return &stream{
		media:  media,
		stream: videoStream,
		width:  videoStream.Width(),
		height: videoStream.Height(),
	}, nil
}

type stream struct {
	media  *reisen.Media
	stream *reisen.VideoStream
	width  int
	height int
}

func (s *stream) Size() (int, int) { return s.width, s.height }

func (s *stream) NextFrame() (*senios.Frame, error) {
	frame, err := s.readVideoFrame()
	if err != nil {
		return nil, &senios.DecodeError{Err: err}
	}
	if frame == nil {
		return nil, io.EOF
	}

	// reisen scales to the stream size when the decoder is opened
	return &senios.Frame{
		Width:  s.width,
		Height: s.height,
		Layout: senios.LayoutRGBA,
		Pix:    frame.Data(),
	}, nil
}

func (s *stream) Rewind() error {
	return s.stream.Rewind(0)
}

func (s *stream) Close() error {
	err := s.stream.Close()
	if decodeErr := s.media.CloseDecode(); err == nil {
		err = decodeErr
	}
	s.media.Close()
	return err
}

// Reads packets until the next frame of our video stream comes along.
// Returns nil, nil once the media has no packets left.
func (s *stream) readVideoFrame() (*reisen.VideoFrame, error) {
	for {
		packet, packetFound, err := s.media.ReadPacket()
		if err != nil {
			return nil, err
		}
		if !packetFound {
			return nil, nil
		}

		if packet.Type() == reisen.StreamVideo && packet.StreamIndex() == s.stream.Index() {
			frame, _, err := s.stream.ReadVideoFrame()
			if err != nil {
				return nil, err
			}
			// a found packet can still yield a nil frame: that's a frame skip
			if frame != nil {
				return frame, nil
			}
		}
	}
}
