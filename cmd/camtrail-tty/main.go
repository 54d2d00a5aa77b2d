// Command camtrail-tty runs the trail effect inside a terminal, drawing two
// pixels per character cell.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sync"

	"camera-trail/internal/capture"
	"camera-trail/internal/config"
	"camera-trail/internal/engine"
	"camera-trail/internal/mode"
	"camera-trail/internal/present"

	"github.com/gdamore/tcell/v2"
)

func main() {
	fs := flag.NewFlagSet("camtrail-tty", flag.ExitOnError)
	logPath := fs.String("log-file", "", "write logs here instead of discarding them")
	cfg, err := config.ParseArgs(fs, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	// The screen owns stderr while running, so logs go to a file or nowhere.
	logOut, err := openLog(*logPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := config.SetupLogging(logOut, cfg.LogLevel); err != nil {
		log.Fatal(err)
	}

	if err := run(cfg); err != nil {
		if msg := capture.UnavailableMessage(err); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		fmt.Fprintln(os.Stderr, err)
		logOut.Close()
		os.Exit(1)
	}
	logOut.Close()
}

func run(cfg *config.Config) error {
	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}
	src, err := engine.OpenSource(cfg, true)
	if err != nil {
		return err
	}
	defer src.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("camtrail-tty: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("camtrail-tty: %w", err)
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	keys := &eventQueue{}
	go pollKeys(screen, keys, cancel)

	err = eng.Run(ctx, src, present.NewTerminal(screen), keys.drain)
	slog.Info("camtrail-tty: closed", "ticks", eng.Stats().Ticks)
	return err
}

// eventQueue hands key events from the polling goroutine to the tick loop.
type eventQueue struct {
	mu     sync.Mutex
	events []mode.Event
}

func (q *eventQueue) push(ev mode.Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

func (q *eventQueue) drain() []mode.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}

func pollKeys(screen tcell.Screen, q *eventQueue, quit context.CancelFunc) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			action := present.TranslateKey(ev)
			if action.Quit {
				quit()
				return
			}
			if action.HasEvent {
				q.push(action.Event)
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func openLog(path string) (*os.File, error) {
	if path == "" {
		return os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
