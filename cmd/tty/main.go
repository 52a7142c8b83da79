package main

import (
	"flag"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/IoannouAndreas/CV-Os/model"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdSteer
	CmdToggle
	CmdReset
	CmdPreset
	CmdFaster
	CmdSlower
)

// Input is what a key press asks the arena to do.
type Input struct {
	Command Command
	Heading model.Heading
	Preset  model.Preset
}

func keyInput(key tcell.Key, r rune) Input {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Input{Command: CmdQuit}
	case tcell.KeyUp:
		return Input{Command: CmdSteer, Heading: model.Up}
	case tcell.KeyDown:
		return Input{Command: CmdSteer, Heading: model.Down}
	case tcell.KeyLeft:
		return Input{Command: CmdSteer, Heading: model.Left}
	case tcell.KeyRight:
		return Input{Command: CmdSteer, Heading: model.Right}
	case tcell.KeyRune:
	default:
		return Input{}
	}
	switch r {
	case 'q':
		return Input{Command: CmdQuit}
	case 'w', 'k':
		return Input{Command: CmdSteer, Heading: model.Up}
	case 's', 'j':
		return Input{Command: CmdSteer, Heading: model.Down}
	case 'a', 'h':
		return Input{Command: CmdSteer, Heading: model.Left}
	case 'd', 'l':
		return Input{Command: CmdSteer, Heading: model.Right}
	case ' ':
		return Input{Command: CmdToggle}
	case 'r':
		return Input{Command: CmdReset}
	case '1':
		return Input{Command: CmdPreset, Preset: model.Small}
	case '2':
		return Input{Command: CmdPreset, Preset: model.Medium}
	case '3':
		return Input{Command: CmdPreset, Preset: model.Large}
	case '+', '=':
		return Input{Command: CmdFaster}
	case '-':
		return Input{Command: CmdSlower}
	}
	return Input{}
}

// apply runs in on the driver and reports whether the client keeps running.
func apply(view *View, d *model.Driver, in Input) bool {
	if in.Command == CmdQuit {
		return false
	}
	if !view.Focused() {
		return true
	}
	switch in.Command {
	case CmdSteer:
		d.Steer(in.Heading)
	case CmdToggle:
		d.Toggle()
	case CmdReset:
		d.Reset()
	case CmdPreset:
		if in.Preset != d.Match.Preset {
			d.SetPreset(in.Preset)
			view.Resize()
		}
	case CmdFaster:
		d.SetSpeed(d.Speed + 1)
	case CmdSlower:
		d.SetSpeed(d.Speed - 1)
	}
	return true
}

func loadSettings(path, preset string, speed int) (model.Settings, error) {
	settings := model.DefaultSettings()
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return settings, errors.Wrapf(err, "opening %s", path)
		}
		defer file.Close()
		pairs, err := model.ReadPairs(file)
		if err != nil {
			return settings, errors.Wrap(err, path)
		}
		if err := settings.Apply(pairs); err != nil {
			return settings, errors.Wrap(err, path)
		}
	}
	if preset != "" {
		p, ok := model.ParsePreset(preset)
		if !ok {
			return settings, errors.Errorf("unknown preset %q", preset)
		}
		settings.Preset = p
	}
	if speed != 0 {
		s, err := model.ParseSpeed(strconv.Itoa(speed))
		if err != nil {
			return settings, err
		}
		settings.Speed = s
	}
	return settings, nil
}

func run(screen tcell.Screen, d *model.Driver) {
	view := NewView(screen, d)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !apply(view, d, keyInput(ev.Key(), ev.Rune())) {
					return
				}
			case *tcell.EventMouse:
				view.Pointer(ev.Position())
			case *tcell.EventResize:
				view.Resize()
				screen.Sync()
			}
		case now := <-ticker.C:
			d.Frame(now, view)
		}
	}
}

func main() {
	configPath := flag.String("config", "", "key=value settings file")
	preset := flag.String("preset", "", "arena size: small, medium or large")
	speed := flag.Int("speed", 0, "speed 1..12")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
		log.SetLevel(log.DebugLevel)
	}

	settings, err := loadSettings(*configPath, *preset, *speed)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	defer screen.Fini()

	d := model.NewDriver(settings.Preset, settings.Speed, model.LogCues{})
	log.WithFields(log.Fields{
		"preset": settings.Preset.Name(),
		"speed":  settings.Speed,
	}).Info("starting light cycles")
	run(screen, d)
}
