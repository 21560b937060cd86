package ffmpegsource

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/erparts/go-senios"
)

var errNoVisualSampleEntry = errors.New("no visual sample entry in video track")

// Probe returns the dimensions of the first video stream. MP4 and MOV
// files are parsed directly; everything else goes through ffprobe.
func (s *Source) Probe(path string) (int, int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".m4v", ".mov":
		w, h, err := ProbeMP4(path)
		if err == nil {
			return w, h, nil
		}
		if errors.Is(err, senios.ErrNoVideo) {
			return 0, 0, err
		}
		senios.CurrentLogger().Debugf("mp4 probe of '%s' failed, trying ffprobe: %v", filepath.Base(path), err)
	}
	return s.probeFFprobe(path)
}

// ProbeMP4 reads the dimensions of the first video track from the
// sample description of an MP4 file. Media data is skipped, so the cost
// does not depend on the file size. The dimensions are the coded ones,
// before any rotation metadata is applied.
func ProbeMP4(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return 0, 0, fmt.Errorf("decode mp4: %w", err)
	}

	var traks []*mp4.TrakBox
	if mp4File.Moov != nil {
		traks = mp4File.Moov.Traks
	} else if mp4File.Init != nil && mp4File.Init.Moov != nil {
		traks = mp4File.Init.Moov.Traks
	}

	foundVideo := false
	for _, trak := range traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		foundVideo = true
		if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
			continue
		}
		for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
			if entry, ok := child.(*mp4.VisualSampleEntryBox); ok && entry.Width > 0 && entry.Height > 0 {
				return int(entry.Width), int(entry.Height), nil
			}
		}
	}
	if !foundVideo {
		return 0, 0, senios.ErrNoVideo
	}
	return 0, 0, errNoVisualSampleEntry
}

func (s *Source) probeFFprobe(path string) (int, int, error) {
	if s.ffprobePath == "" {
		return 0, 0, ErrFFprobeNotFound
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(s.ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=s=x:p=0",
		path,
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return 0, 0, fmt.Errorf("ffprobe failed: %w\nstderr: %s", err, strings.TrimSpace(stderr.String()))
	}
	return parseDimensions(stdout.String())
}

// parseDimensions parses ffprobe csv output such as "1920x1080".
func parseDimensions(out string) (int, int, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, 0, senios.ErrNoVideo
	}

	ws, hs, ok := strings.Cut(line, "x")
	if !ok {
		return 0, 0, fmt.Errorf("unexpected ffprobe output %q", line)
	}
	hs = strings.TrimSuffix(hs, "x") // trailing separator when extra fields are empty
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected ffprobe width %q", ws)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected ffprobe height %q", hs)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid video size %dx%d", w, h)
	}
	return w, h, nil
}
