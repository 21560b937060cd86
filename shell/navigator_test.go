package shell

import (
	"errors"
	"testing"

	"github.com/erparts/go-senios"
)

type recordingDispatcher struct {
	commands []senios.Command
	err      error
}

func (d *recordingDispatcher) Dispatch(cmd senios.Command) error {
	d.commands = append(d.commands, cmd)
	return d.err
}

func TestNavigatorStartsHome(t *testing.T) {
	nav := NewNavigator()
	if nav.Current() != Home {
		t.Fatalf("expected Home, got %s", nav.Current())
	}
}

func TestNavigatorLeaveHooks(t *testing.T) {
	nav := NewNavigator()
	var left []View
	for _, v := range []View{Home, Video, Photo, Cards} {
		nav.OnLeave(v, func() { left = append(left, v) })
	}
	var shown [][2]View
	nav.OnShow(func(from, to View) { shown = append(shown, [2]View{from, to}) })

	nav.Show(Video)
	nav.Show(Video) // no change
	nav.Show(Photo)
	nav.Show(Home)

	want := []View{Home, Video, Photo}
	if len(left) != len(want) {
		t.Fatalf("expected leave hooks %v, got %v", want, left)
	}
	for i := range want {
		if left[i] != want[i] {
			t.Errorf("leave %d: expected %s, got %s", i, want[i], left[i])
		}
	}
	if len(shown) != 3 || shown[0] != [2]View{Home, Video} || shown[2] != [2]View{Photo, Home} {
		t.Errorf("unexpected show notifications %v", shown)
	}
	if nav.Current() != Home {
		t.Errorf("expected Home, got %s", nav.Current())
	}
}

func TestNavigatorBindPlayback(t *testing.T) {
	nav := NewNavigator()
	d := &recordingDispatcher{err: errors.New("close failed")}
	nav.BindPlayback(d)

	nav.Show(Photo)
	if len(d.commands) != 0 {
		t.Fatalf("expected no commands when leaving Home, got %d", len(d.commands))
	}

	nav.Show(Video)
	nav.Show(Cards)
	if len(d.commands) != 1 {
		t.Fatalf("expected 1 command, got %d", len(d.commands))
	}
	if _, ok := d.commands[0].(senios.NavigateAway); !ok {
		t.Errorf("expected NavigateAway, got %T", d.commands[0])
	}
	if nav.Current() != Cards {
		t.Errorf("dispatch error must not block navigation, got %s", nav.Current())
	}
}

func TestViewString(t *testing.T) {
	tests := map[View]string{
		Home:    "Home",
		Video:   "Videos",
		Photo:   "Photos",
		Cards:   "Cards",
		View(9): "Unknown",
	}
	for v, want := range tests {
		if got := v.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestViewNamesHaveGermanLabels(t *testing.T) {
	for _, v := range []View{Video, Photo, Cards} {
		if _, ok := germanLexicon[v.String()]; !ok {
			t.Errorf("missing German label for view %s", v)
		}
	}
	if got := germanLexicon["Welcome to SeniOS!"]; got != "Willkommen zu SeniOS!" {
		t.Errorf("unexpected welcome label %q", got)
	}
}
