package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/urfave/cli/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/erparts/go-senios"
	"github.com/erparts/go-senios/ebitensurface"
	"github.com/erparts/go-senios/shell"
)

var (
	backgroundColor = color.RGBA{0xf4, 0xf4, 0xf0, 0xff}
	buttonColor     = color.RGBA{0x4c, 0xaf, 0x50, 0xff}
	textColor       = color.RGBA{0x20, 0x20, 0x20, 0xff}
	statusColor     = color.RGBA{0xb0, 0x20, 0x20, 0xff}
	areaColor       = color.Black
)

const (
	buttonHeight  = 44
	buttonGap     = 16
	browserRows   = 7
	titleFontSize = 28
	labelFontSize = 20
)

type button struct {
	rect   image.Rectangle
	label  string
	action func()
}

// browser is the in-app open dialog: a scrollable list of files.
type browser struct {
	title  string
	paths  []string
	offset int
	pick   func(path string)
}

type game struct {
	app *app

	nav    *shell.Navigator
	loop   *senios.Loop
	video  *ebitensurface.Surface
	photo  *ebitensurface.Surface
	photos *shell.PhotoViewer
	cards  *shell.CardMaker
	card   *ebiten.Image

	browser *browser
	buttons []button
	status  string

	width, height int
	area          image.Rectangle
	titleFace     *text.GoTextFace
	labelFace     *text.GoTextFace
	quit          bool
}

func runGUI(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return err
	}
	g, err := newGame(a)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle(a.cfg.Window.Title)
	ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(g)
	if stopErr := g.loop.Dispatch(senios.NavigateAway{}); stopErr != nil {
		a.logger.Warn("closing video session", "err", stopErr)
	}
	return err
}

func newGame(a *app) (*game, error) {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}

	cfg := a.cfg
	areaW, areaH := cfg.VideoArea.Width, cfg.VideoArea.Height
	g := &game{
		app:       a,
		nav:       shell.NewNavigator(),
		video:     ebitensurface.New(areaW, areaH),
		photo:     ebitensurface.New(areaW, areaH),
		cards:     newCardMaker(cfg),
		width:     max(cfg.Window.Width, areaW),
		height:    max(cfg.Window.Height, areaH+3*buttonHeight+4*buttonGap),
		titleFace: &text.GoTextFace{Source: fontSource, Size: titleFontSize},
		labelFace: &text.GoTextFace{Source: fontSource, Size: labelFontSize},
	}
	x := (g.width - areaW) / 2
	y := buttonHeight + buttonGap
	g.area = image.Rect(x, y, x+areaW, y+areaH)

	g.loop, err = a.newPlayback(g.video)
	if err != nil {
		return nil, err
	}
	g.photos = shell.NewPhotoViewer(nil, g.photo)

	g.loop.OnError(func(err error) {
		var openErr *senios.OpenError
		if errors.As(err, &openErr) {
			g.status = shell.Labelf("Could not open %s", filepath.Base(openErr.Path))
			return
		}
		g.status = err.Error()
	})
	g.loop.Controller().OnEndOfStream(func(error) {
		g.status = shell.Label("End of video")
	})

	g.nav.BindPlayback(g.loop)
	g.nav.OnLeave(shell.Video, g.video.Clear)
	g.nav.OnShow(func(from, to shell.View) {
		g.status = ""
		g.browser = nil
		a.logger.Debug("view changed", "from", from, "to", to)
	})
	return g, nil
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

func (g *game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.buttons = g.buttons[:0]
	if g.browser != nil {
		g.layoutBrowser()
	} else {
		g.layoutPage()
	}
	g.handleInput()

	// commands issued above are applied here, then at most one frame
	g.loop.Step()
	return nil
}

func (g *game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		switch {
		case g.browser != nil:
			g.browser = nil
		case g.nav.Current() == shell.Home:
			g.quit = true
		default:
			g.nav.Show(shell.Home)
		}
		return
	}
	if g.nav.Current() == shell.Video && g.browser == nil && inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePlayPause()
	}
	if g.browser != nil {
		if _, dy := ebiten.Wheel(); dy != 0 {
			g.browser.scroll(-int(dy))
		}
	}

	var points []image.Point
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		points = append(points, image.Pt(ebiten.CursorPosition()))
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		points = append(points, image.Pt(inpututil.TouchPositionInPreviousTick(id)))
	}
	for _, pt := range points {
		for _, b := range g.buttons {
			if pt.In(b.rect) {
				b.action()
				return
			}
		}
	}
}

func (g *game) layoutPage() {
	back := func() { g.nav.Show(shell.Home) }
	switch g.nav.Current() {
	case shell.Home:
		x := g.width / 2
		y := g.height/2 - buttonHeight
		for i, entry := range []struct {
			label string
			view  shell.View
		}{
			{"Watch videos", shell.Video},
			{"View photos", shell.Photo},
			{"Create cards", shell.Cards},
		} {
			view := entry.view
			r := image.Rect(x-160, y, x+160, y+buttonHeight).Add(image.Pt(0, i*(buttonHeight+buttonGap)))
			g.buttons = append(g.buttons, button{rect: r, label: shell.Label(entry.label), action: func() { g.nav.Show(view) }})
		}
	case shell.Video:
		playLabel := "Play"
		if g.loop.Controller().State() == senios.Playing {
			playLabel = "Pause"
		}
		g.buttonRow(
			button{label: shell.Label("Select video"), action: func() { g.openBrowser(shell.Video) }},
			button{label: shell.Label(playLabel), action: g.togglePlayPause},
			button{label: shell.Label("Back"), action: back},
		)
	case shell.Photo:
		g.buttonRow(
			button{label: shell.Label("Select photo"), action: func() { g.openBrowser(shell.Photo) }},
			button{label: shell.Label("Back"), action: back},
		)
	case shell.Cards:
		g.buttonRow(
			button{label: shell.Label("New card"), action: g.newCard},
			button{label: shell.Label("Save card"), action: g.saveCard},
			button{label: shell.Label("Back"), action: back},
		)
	}
}

// buttonRow lays out buttons side by side below the content area.
func (g *game) buttonRow(buttons ...button) {
	width := (g.area.Dx() - (len(buttons)-1)*buttonGap) / len(buttons)
	y := g.area.Max.Y + buttonGap
	for i, b := range buttons {
		x := g.area.Min.X + i*(width+buttonGap)
		b.rect = image.Rect(x, y, x+width, y+buttonHeight)
		g.buttons = append(g.buttons, b)
	}
}

func (g *game) layoutBrowser() {
	b := g.browser
	rowHeight := buttonHeight + buttonGap/2
	end := min(b.offset+browserRows, len(b.paths))
	for i, path := range b.paths[b.offset:end] {
		y := g.area.Min.Y + i*rowHeight
		g.buttons = append(g.buttons, button{
			rect:   image.Rect(g.area.Min.X, y, g.area.Max.X, y+buttonHeight),
			label:  filepath.Base(path),
			action: func() { g.browser = nil; b.pick(path) },
		})
	}
	g.buttonRow(button{label: shell.Label("Cancel"), action: func() { g.browser = nil }})
}

func (b *browser) scroll(rows int) {
	b.offset = max(0, min(b.offset+rows, len(b.paths)-browserRows))
}

func (g *game) openBrowser(view shell.View) {
	cfg := g.app.cfg
	filter := shell.VideoFilter.WithExtensions(cfg.VideoExtensions)
	pick := func(path string) {
		if err := g.loop.Dispatch(senios.OpenFile{Path: path}); err == nil {
			g.status = ""
		}
	}
	if view == shell.Photo {
		filter = shell.ImageFilter.WithExtensions(cfg.ImageExtensions)
		pick = func(path string) {
			if err := g.photos.Open(path); err != nil {
				g.app.logger.Warn("opening photo", "path", path, "err", err)
				g.status = shell.Labelf("Could not open %s", filepath.Base(path))
				return
			}
			g.status = ""
		}
	}

	paths, err := shell.List(cfg.MediaDir, filter)
	if err != nil {
		g.app.logger.Warn("listing media", "dir", cfg.MediaDir, "err", err)
	}
	if len(paths) == 0 {
		g.status = shell.Labelf("No files found in %s", cfg.MediaDir)
		return
	}
	g.browser = &browser{title: shell.Label(filter.Name), paths: paths, pick: pick}
}

func (g *game) togglePlayPause() {
	if err := g.loop.Dispatch(senios.TogglePlayPause{}); err != nil {
		g.status = err.Error()
	}
}

func (g *game) newCard() {
	if g.card != nil {
		g.card.Deallocate()
	}
	g.card = ebiten.NewImageFromImage(g.cards.Image())
	g.status = ""
}

func (g *game) saveCard() {
	path := filepath.Join(g.app.cfg.MediaDir, shell.CardName(time.Now()))
	if err := g.cards.Save(path); err != nil {
		g.app.logger.Error("saving card", "path", path, "err", err)
		g.status = shell.Label("Could not save card")
		return
	}
	g.app.logger.Info("card saved", "path", path)
	g.status = shell.Labelf("Card saved to %s", path)
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	title := shell.Label(g.nav.Current().String())
	if g.nav.Current() == shell.Home {
		title = shell.Label("Welcome to SeniOS!")
	}
	if g.browser != nil {
		title = g.browser.title
	}
	g.drawText(screen, title, g.titleFace, textColor, g.width/2, (buttonHeight+buttonGap)/2)

	if g.browser == nil {
		viewport := screen.SubImage(g.area).(*ebiten.Image)
		switch g.nav.Current() {
		case shell.Home:
			now := shell.Labelf("Current time: %s", clockLabel(time.Now()))
			g.drawText(screen, now, g.labelFace, textColor, g.width/2, g.area.Min.Y+buttonHeight)
		case shell.Video:
			viewport.Fill(areaColor)
			g.video.DrawTo(viewport)
		case shell.Photo:
			viewport.Fill(areaColor)
			g.photo.DrawTo(viewport)
		case shell.Cards:
			if g.card != nil {
				ebitensurface.Draw(viewport, g.card)
			}
		}
	}

	for _, b := range g.buttons {
		r := b.rect
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), buttonColor, false)
		g.drawText(screen, b.label, g.labelFace, color.White, (r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
	}

	if g.status != "" {
		g.drawText(screen, g.status, g.labelFace, statusColor, g.width/2, g.height-buttonGap)
	}
}

// clockLabel formats the time shown on the home page.
func clockLabel(t time.Time) string {
	return t.Format("15:04:05")
}

// drawText draws s centered on (x, y).
func (g *game) drawText(dst *ebiten.Image, s string, face *text.GoTextFace, clr color.Color, x, y int) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, s, face, op)
}
