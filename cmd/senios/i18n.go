package main

import "github.com/ideamans/go-l10n"

func init() {
	// German translations for CLI messages.
	l10n.Register("de", l10n.LexiconMap{
		// App and flags
		"Watch videos, view photos and create cards":       "Videos anschauen, Fotos ansehen und Karten erstellen",
		"YAML configuration file":                          "YAML-Konfigurationsdatei",
		"Video decoding backend (reisen or ffmpeg)":        "Backend zum Dekodieren (reisen oder ffmpeg)",
		"Path to the ffmpeg binary":                        "Pfad zum ffmpeg-Programm",
		"Directory listed when choosing videos and photos": "Verzeichnis für die Auswahl von Videos und Fotos",
		"Log level (debug, info, warn, error)":             "Log-Level (debug, info, warn, error)",

		// Commands
		"Open the SeniOS window (default)":                "SeniOS-Fenster öffnen (Standard)",
		"Play a video without a window":                   "Video ohne Fenster abspielen",
		"Write a PNG snapshot every N frames (0 = never)": "Alle N Bilder einen PNG-Schnappschuss schreiben (0 = nie)",
		"Directory for snapshots":                         "Verzeichnis für Schnappschüsse",
		"Print the dimensions of a video":                 "Abmessungen eines Videos ausgeben",
		"Write a blank card (.png or .jpg)":               "Leere Karte schreiben (.png oder .jpg)",

		// Messages
		"Error: %s":                             "Fehler: %s",
		"play needs exactly one FILE argument":  "play benötigt genau ein FILE-Argument",
		"probe needs exactly one FILE argument": "probe benötigt genau ein FILE-Argument",
		"card needs exactly one OUT argument":   "card benötigt genau ein OUT-Argument",
		"Played %d frames of %s":                "%d Bilder von %s abgespielt",
	})
}
