package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tuzbolin/audio"
	"github.com/lixenwraith/tuzbolin/config"
	"github.com/lixenwraith/tuzbolin/engine"
	"github.com/lixenwraith/tuzbolin/input"
	"github.com/lixenwraith/tuzbolin/parameter"
	"github.com/lixenwraith/tuzbolin/render"
	"github.com/lixenwraith/tuzbolin/status"
)

const defaultConfigPath = "tuzbolin.yml"

var (
	configFlag = flag.String("config", defaultConfigPath, "Configuration file (.yml, .yaml or .toml)")
	colorFlag  = flag.Bool("color", true, "Draw in color")
	recordFlag = flag.String("record", "", "Directory to record wiimote traces into")
	debugFlag  = flag.Bool("debug", false, "Log to logs/tuzbolin.log and show the debug overlay")
	muteFlag   = flag.Bool("mute", false, "Disable sound")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(configPath(*configFlag))
	if err != nil {
		fmt.Fprintf(os.Stderr, "tuzbolin: %v\n", err)
		os.Exit(1)
	}
	cfg.Debug = cfg.Debug || *debugFlag
	cfg.Sound = cfg.Sound && !*muteFlag

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "tuzbolin: %v\n", err)
		os.Exit(1)
	}
}

// configPath drops the default path when no such file exists, so the built-in defaults apply
func configPath(path string) string {
	if path != defaultConfigPath {
		return path
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	return path
}

func run(cfg *config.Config) error {
	registry := status.NewRegistry()
	keys := input.NewKeyState(cfg.KeyHold.Duration)

	set, err := buildControllers(cfg, keys, registry, *recordFlag)
	if err != nil {
		return err
	}
	defer func() {
		if err := set.Close(); err != nil {
			log.Printf("close devices: %v", err)
		}
	}()

	acfg := audio.DefaultAudioConfig()
	acfg.Enabled = cfg.Sound
	acfg.Ambient = cfg.AmbientSound
	sounds := audio.NewSoundManager(acfg)
	var sink engine.SoundSink
	if err := sounds.Initialize(); err != nil {
		log.Printf("audio: %v (continuing without audio)", err)
	} else {
		sink = sounds
		defer sounds.Cleanup()
	}
	registry.Bools.Get(status.KeyAudio).Store(sounds.Active())

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	defer screen.Fini()

	// Panic Recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mTUZBOLIN CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	screen.HideCursor()
	screen.Clear()

	game, err := engine.NewGame(cfg.Settings(), engine.Deps{
		Controllers: set.controllers,
		Presenter:   render.NewTerminal(screen, *colorFlag),
		Sound:       sink,
		Registry:    registry,
	})
	if err != nil {
		return err
	}
	log.Printf("match %s: %d controllers, %v fps", game.Context().MatchID(), len(set.controllers), cfg.FPS)

	return loop(screen, game, keys, input.DefaultSystemKeys())
}

// loop runs the game tick on this goroutine; terminal events arrive over a channel
func loop(screen tcell.Screen, game *engine.Game, keys *input.KeyState, system input.SystemKeys) error {
	events := make(chan tcell.Event, parameter.TerminalEventQueueSize)
	// Input polling uses raw goroutine as it interacts directly with terminal
	go func() {
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		defer close(events)

		for {
			// nil once the screen is finalized
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	interval := game.FrameInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if intent := system.Lookup(ev); intent != input.IntentNone {
					log.Printf("intent %s", intent)
					if !game.HandleIntent(intent) {
						return nil
					}
					continue
				}
				keys.HandleEvent(ev)
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			game.Tick()
			if d := game.FrameInterval(); d != interval {
				interval = d
				ticker.Reset(d)
			}
		}
	}
}
