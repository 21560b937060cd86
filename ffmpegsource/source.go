// Package ffmpegsource implements a [senios.FrameSource] that decodes
// videos with an external ffmpeg process. Frames are read from the
// process output as raw bgr24 images, one per request.
package ffmpegsource

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/erparts/go-senios"
)

var (
	// ErrFFmpegNotFound is returned when ffmpeg is not found in PATH.
	ErrFFmpegNotFound = errors.New("ffmpegsource: ffmpeg not found in PATH")

	// ErrFFprobeNotFound is returned when a file can't be probed without ffprobe.
	ErrFFprobeNotFound = errors.New("ffmpegsource: ffprobe not found in PATH")

	// ErrStreamClosed is returned when reading from a closed stream.
	ErrStreamClosed = errors.New("ffmpegsource: stream closed")
)

// Default time a single frame read may take before the stream is
// considered broken.
const DefaultReadTimeout = 5 * time.Second

// Options configures the source.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
	// FFprobePath is an optional custom path to the ffprobe binary.
	FFprobePath string
	// ReadTimeout bounds the time spent waiting for a single frame.
	// Zero means DefaultReadTimeout, negative disables the bound.
	ReadTimeout time.Duration
}

var _ senios.FrameSource = (*Source)(nil)

// Source spawns one ffmpeg process per open stream.
type Source struct {
	ffmpegPath  string
	ffprobePath string
	readTimeout time.Duration
}

// Creates a source, locating the ffmpeg binary. ffprobe is optional:
// without it only MP4/MOV files can be probed.
func New(opts Options) (*Source, error) {
	ffmpegPath, err := findBinary("ffmpeg", opts.FFmpegPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFFmpegNotFound, err)
	}
	ffprobePath, err := findBinary("ffprobe", opts.FFprobePath)
	if err != nil {
		senios.CurrentLogger().Debugf("ffprobe unavailable, only mp4 files can be probed: %v", err)
		ffprobePath = ""
	}

	timeout := opts.ReadTimeout
	if timeout == 0 {
		timeout = DefaultReadTimeout
	}
	return &Source{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		readTimeout: timeout,
	}, nil
}

// IsAvailable checks if ffmpeg can be found in PATH or common locations.
func IsAvailable() bool {
	_, err := findBinary("ffmpeg", "")
	return err == nil
}

// Opens a decoding process for the file at path.
func (s *Source) Open(path string) (senios.Stream, error) {
	if err := senios.CheckFile(path); err != nil {
		return nil, err
	}

	width, height, err := s.Probe(path)
	if err != nil {
		return nil, err
	}

	st := &stream{
		source: s,
		path:   path,
		width:  width,
		height: height,
		buf:    make([]byte, width*height*3),
	}
	if err := st.start(); err != nil {
		return nil, err
	}
	senios.CurrentLogger().Debugf("decoding '%s' with %s", filepath.Base(path), s.ffmpegPath)
	return st, nil
}

// findBinary searches for a binary in PATH and common locations.
// If custom is set, it uses that path instead.
func findBinary(name, custom string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err != nil {
			return "", fmt.Errorf("custom path %s not found", custom)
		}
		return custom, nil
	}

	execName := name
	if runtime.GOOS == "windows" {
		execName += ".exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var dirs []string
	if runtime.GOOS == "windows" {
		dirs = []string{
			`C:\ffmpeg\bin`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\Program Files (x86)\ffmpeg\bin`,
		}
	} else {
		dirs = []string{
			"/usr/bin",
			"/usr/local/bin",
			"/opt/homebrew/bin",
			"/snap/bin",
		}
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, execName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s not in PATH or common locations", execName)
}
