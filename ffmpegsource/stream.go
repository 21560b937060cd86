package ffmpegsource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/erparts/go-senios"
)

// stream owns one ffmpeg process writing bgr24 frames to a pipe. The
// frame buffer is reused between NextFrame calls.
type stream struct {
	source *Source
	path   string
	width  int
	height int
	buf    []byte

	cmd    *exec.Cmd
	out    *os.File
	stderr bytes.Buffer
	exited bool
}

func (s *stream) start() error {
	r, w, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("create pipe: %w", err)
	}

	s.stderr.Reset()
	cmd := exec.Command(s.source.ffmpegPath, s.args()...)
	cmd.Stdout = w
	cmd.Stderr = &s.stderr
	if err := cmd.Start(); err != nil {
		r.Close()
		w.Close()
		return fmt.Errorf("start ffmpeg: %w", err)
	}
	w.Close() // the child holds its own copy

	s.cmd = cmd
	s.out = r
	s.exited = false
	return nil
}

// Frames keep the coded size reported by the probe: rotation metadata is
// ignored instead of producing rotated frames squeezed into that size.
func (s *stream) args() []string {
	return []string{
		"-v", "error",
		"-nostdin",
		"-noautorotate",
		"-i", s.path,
		"-an", "-sn",
		"-f", "rawvideo",
		"-pix_fmt", "bgr24",
		"-s", fmt.Sprintf("%dx%d", s.width, s.height),
		"-",
	}
}

func (s *stream) Size() (int, int) { return s.width, s.height }

func (s *stream) NextFrame() (*senios.Frame, error) {
	if s.out == nil {
		return nil, &senios.DecodeError{Err: ErrStreamClosed}
	}
	if s.exited {
		return nil, io.EOF
	}

	if s.source.readTimeout > 0 {
		// pipes support deadlines on the platforms we care about;
		// elsewhere the read is simply unbounded
		_ = s.out.SetReadDeadline(time.Now().Add(s.source.readTimeout))
	}

	_, err := io.ReadFull(s.out, s.buf)
	switch {
	case err == nil:
		return &senios.Frame{
			Width:  s.width,
			Height: s.height,
			Layout: senios.LayoutBGR24,
			Pix:    s.buf,
		}, nil
	case errors.Is(err, io.EOF):
		// clean end on a frame boundary, unless ffmpeg itself failed
		s.exited = true
		if err := s.cmd.Wait(); err != nil {
			return nil, &senios.DecodeError{Err: s.processError(err)}
		}
		return nil, io.EOF
	default:
		// truncated frame or deadline exceeded
		s.stop()
		return nil, &senios.DecodeError{Err: err}
	}
}

func (s *stream) Rewind() error {
	s.stop()
	return s.start()
}

func (s *stream) Close() error {
	s.stop()
	return nil
}

// Kills the process if still running and releases the pipe.
func (s *stream) stop() {
	if s.cmd == nil {
		return
	}
	if !s.exited {
		_ = s.cmd.Process.Kill()
		_ = s.cmd.Wait() // reports the kill
		s.exited = true
	}
	s.out.Close()
	s.cmd = nil
	s.out = nil
}

func (s *stream) processError(err error) error {
	msg := strings.TrimSpace(s.stderr.String())
	if msg == "" {
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return fmt.Errorf("ffmpeg: %w\nstderr: %s", err, msg)
}
