package shell

import "github.com/ideamans/go-l10n"

// UI labels are English message keys; the German lexicon carries the
// labels the application originally shipped with.
var germanLexicon = l10n.LexiconMap{
	// Home
	"Welcome to SeniOS!": "Willkommen zu SeniOS!",
	"Watch videos":       "Videos anschauen",
	"View photos":        "Fotos ansehen",
	"Create cards":       "Karten erstellen",
	"Current time: %s":   "Aktuelle Zeit: %s",

	// Page titles
	"Videos": "Videos",
	"Photos": "Fotos",
	"Cards":  "Karten erstellen",

	// Video page
	"Play/Pause":   "Abspielen/Pause",
	"Play":         "Abspielen",
	"Pause":        "Pause",
	"Select video": "Video auswählen",
	"Back":         "Zurück",

	// Photo page
	"Select photo": "Foto auswählen",

	// Cards page
	"New card":  "Neue Karte",
	"Save card": "Karte speichern",

	// File browser
	"No files found in %s": "Keine Dateien in %s gefunden",
	"Cancel":               "Abbrechen",

	// Status
	"Could not open %s":   "%s konnte nicht geöffnet werden",
	"Card saved to %s":    "Karte gespeichert unter %s",
	"Could not save card": "Karte konnte nicht gespeichert werden",
	"End of video":        "Video zu Ende",
}

func init() {
	l10n.Register("de", germanLexicon)
}

// Label translates a UI message key.
func Label(key string) string { return l10n.T(key) }

// Labelf translates a UI message key and formats it.
func Labelf(key string, args ...any) string { return l10n.F(key, args...) }
