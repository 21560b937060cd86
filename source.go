package senios

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Errors shared by the frame source implementations. Backend specific
// errors are also possible.
var (
	ErrNoVideo    = errors.New("file doesn't include any video stream")
	ErrNotExist   = errors.New("video file not found")
	ErrNotRegular = errors.New("video path is not a regular file")
)

// A FrameSource opens video files as decodable streams. See the
// reisensource and ffmpegsource packages for implementations.
type FrameSource interface {
	// Opens the file at path. The returned stream is owned by the
	// caller, who must Close it exactly once.
	Open(path string) (Stream, error)
}

// A Stream yields decoded frames in presentation order, one per request.
// Nothing is decoded ahead of a NextFrame call.
type Stream interface {
	// Returns the width and height of the video as reported by the
	// stream metadata.
	Size() (int, int)

	// Decodes the next frame. At the end of the stream (nil, io.EOF) is
	// returned. A corrupt stream yields a *DecodeError.
	NextFrame() (*Frame, error)

	// Moves the decode position back to the first frame.
	Rewind() error

	// Releases the decoder resources.
	Close() error
}

// OpenError is returned by [Controller.Open] when a file could not be
// opened as a video stream.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %q: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// DecodeError reports a stream that broke in the middle of playback.
// The [Controller] handles it like a regular end of stream.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Verifies that path names an existing regular file. Frame sources call
// it before handing the path to the decoder, which tends to report
// missing files with rather opaque messages.
func CheckFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
	return nil
}
