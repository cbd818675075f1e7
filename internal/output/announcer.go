package output

import (
	"fmt"
	"log/slog"
)

// Announcer is the default Notifier: canned phrases routed through a speak
// callback, typically a speech synthesizer frontend. A nil speak falls back
// to the logger so the daemon stays usable without speech output.
type Announcer struct {
	speak     func(string)
	interrupt func()
	log       *slog.Logger
}

func NewAnnouncer(speak func(string), interrupt func(), log *slog.Logger) *Announcer {
	if log == nil {
		log = slog.Default()
	}
	a := &Announcer{speak: speak, interrupt: interrupt, log: log}
	if a.speak == nil {
		a.speak = func(text string) { log.Info("narrate", "text", text) }
	}
	return a
}

func (a *Announcer) NoFocus()     { a.speak("no focused application") }
func (a *Announcer) APIDisabled() { a.speak("accessibility API is disabled") }

func (a *Announcer) NotAccessible(name string) {
	a.speak(fmt.Sprintf("%s is not accessible", name))
}

func (a *Announcer) NoResponse(name string) {
	a.speak(fmt.Sprintf("%s is not responding", name))
}

func (a *Announcer) Interrupt() {
	if a.interrupt != nil {
		a.interrupt()
	}
}
