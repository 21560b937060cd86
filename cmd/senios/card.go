package main

import (
	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/erparts/go-senios/config"
	"github.com/erparts/go-senios/shell"
)

func newCardMaker(cfg config.Config) *shell.CardMaker {
	return &shell.CardMaker{
		Width:      cfg.Card.Width,
		Height:     cfg.Card.Height,
		Background: config.ParseColor(cfg.Card.Background),
	}
}

func runCard(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(l10n.T("card needs exactly one OUT argument"), 2)
	}
	a, err := setup(c)
	if err != nil {
		return err
	}

	out := c.Args().First()
	if err := newCardMaker(a.cfg).Save(out); err != nil {
		return err
	}
	a.logger.Info(l10n.F("Card saved to %s", out))
	return nil
}
