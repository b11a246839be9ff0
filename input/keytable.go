package input

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

var ErrUnknownKey = errors.New("unknown key name")

// KeyCode identifies a terminal key; Rune is set only for tcell.KeyRune and is lower case
type KeyCode struct {
	Key  tcell.Key
	Rune rune
}

func RuneKey(r rune) KeyCode { return KeyCode{Key: tcell.KeyRune, Rune: unicode.ToLower(r)} }

func SpecialKey(k tcell.Key) KeyCode { return KeyCode{Key: k} }

// KeyCodeFromEvent normalizes a tcell key event, ignoring modifiers
func KeyCodeFromEvent(ev *tcell.EventKey) KeyCode {
	if ev.Key() == tcell.KeyRune {
		return RuneKey(ev.Rune())
	}
	return SpecialKey(ev.Key())
}

func (k KeyCode) String() string {
	if k.Key == tcell.KeyRune {
		if k.Rune == ' ' {
			return "space"
		}
		return string(k.Rune)
	}
	if name, ok := tcell.KeyNames[k.Key]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", k.Key)
}

// Names that are awkward as single characters in config files
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"minus":     '-',
	"plus":      '+',
}

var specialByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	m["escape"] = tcell.KeyEscape
	m["return"] = tcell.KeyEnter
	return m
}()

// ParseKey resolves a key name: a single character, an alias such as "space",
// or a tcell key name such as "Up", "F5" or "Ctrl-C" (case-insensitive)
func ParseKey(name string) (KeyCode, error) {
	s := strings.TrimSpace(name)
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return RuneKey(r), nil
	}
	lower := strings.ToLower(s)
	if r, ok := runeAliases[lower]; ok {
		return RuneKey(r), nil
	}
	if k, ok := specialByName[lower]; ok {
		return SpecialKey(k), nil
	}
	return KeyCode{}, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// KeyMap binds the five keyboard controls of one player
type KeyMap struct {
	Up, Down, Left, Right, Boost KeyCode
}

// ParseKeyMap resolves the names of a player key map
func ParseKeyMap(up, down, left, right, boost string) (KeyMap, error) {
	var km KeyMap
	fields := []struct {
		dst  *KeyCode
		name string
	}{
		{&km.Up, up}, {&km.Down, down}, {&km.Left, left}, {&km.Right, right}, {&km.Boost, boost},
	}
	for _, f := range fields {
		k, err := ParseKey(f.name)
		if err != nil {
			return KeyMap{}, err
		}
		*f.dst = k
	}
	return km, nil
}

// DefaultKeyMap is the arrows and space layout
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    SpecialKey(tcell.KeyUp),
		Down:  SpecialKey(tcell.KeyDown),
		Left:  SpecialKey(tcell.KeyLeft),
		Right: SpecialKey(tcell.KeyRight),
		Boost: RuneKey(' '),
	}
}

// SystemKeys maps terminal keys to game-wide intents
type SystemKeys map[KeyCode]SystemIntent

// DefaultSystemKeys binds Esc and Ctrl-C to quit and F5-F8 to the debug actions
func DefaultSystemKeys() SystemKeys {
	return SystemKeys{
		SpecialKey(tcell.KeyEscape): IntentQuit,
		SpecialKey(tcell.KeyCtrlC):  IntentQuit,
		SpecialKey(tcell.KeyF5):     IntentKickoff,
		SpecialKey(tcell.KeyF6):     IntentExtraBall,
		SpecialKey(tcell.KeyF7):     IntentFPSUp,
		SpecialKey(tcell.KeyF8):     IntentFPSDown,
	}
}

// Lookup returns the intent bound to the event key, IntentNone if unbound
// Terminals may report Ctrl-C as a rune with the Ctrl modifier
func (s SystemKeys) Lookup(ev *tcell.EventKey) SystemIntent {
	code := KeyCodeFromEvent(ev)
	if code.Key == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 && code.Rune == 'c' {
		code = SpecialKey(tcell.KeyCtrlC)
	}
	return s[code]
}
