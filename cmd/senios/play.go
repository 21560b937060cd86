package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/erparts/go-senios"
)

// countingSurface counts shown frames and optionally writes every n-th
// one to dir as PNG.
type countingSurface struct {
	area  image.Point
	every int
	dir   string
	shown int
	err   error
}

func (s *countingSurface) Area() image.Point { return s.area }

func (s *countingSurface) Show(img *image.RGBA) {
	s.shown++
	if s.every <= 0 || s.shown%s.every != 0 || s.err != nil {
		return
	}
	path := filepath.Join(s.dir, fmt.Sprintf("frame-%06d.png", s.shown))
	s.err = writePNG(path, img)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runPlay(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(l10n.T("play needs exactly one FILE argument"), 2)
	}
	a, err := setup(c)
	if err != nil {
		return err
	}

	surface := &countingSurface{
		area:  image.Pt(a.cfg.VideoArea.Width, a.cfg.VideoArea.Height),
		every: c.Int("snapshot-every"),
		dir:   c.String("snapshot-dir"),
	}
	loop, err := a.newPlayback(surface)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// a single pass: the session rewinds and pauses at the end, which is
	// where headless playback is over
	var cause error
	loop.Controller().OnEndOfStream(func(err error) {
		cause = err
		cancel()
	})

	// open failures and failed rewinds leave the controller idle, with
	// nothing left to play
	var failure error
	loop.OnError(func(err error) {
		if loop.Controller().State() == senios.Idle {
			failure = err
			cancel()
		}
	})

	path := c.Args().First()
	loop.SetAutoplay(true)
	if !loop.Post(senios.OpenFile{Path: path}) {
		return fmt.Errorf("command queue full")
	}

	err = loop.Run(ctx)
	if failure != nil {
		return failure
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if surface.err != nil {
		return fmt.Errorf("write snapshot: %w", surface.err)
	}

	a.logger.Info(l10n.F("Played %d frames of %s", surface.shown, path))
	if cause != nil && !errors.Is(cause, io.EOF) {
		a.logger.Warn("playback ended early", "err", cause)
	}
	return nil
}

func runProbe(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(l10n.T("probe needs exactly one FILE argument"), 2)
	}
	a, err := setup(c)
	if err != nil {
		return err
	}
	source, err := newSource(a.cfg)
	if err != nil {
		return err
	}

	path := c.Args().First()
	stream, err := source.Open(path)
	if err != nil {
		return &senios.OpenError{Path: path, Err: err}
	}
	defer stream.Close()

	w, h := stream.Size()
	fmt.Printf("%s: %dx%d\n", path, w, h)
	return nil
}
