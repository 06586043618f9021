package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/buji/asset"
	"github.com/lixenwraith/buji/audio"
	"github.com/lixenwraith/buji/config"
	"github.com/lixenwraith/buji/engine"
	"github.com/lixenwraith/buji/logging"
	"github.com/lixenwraith/buji/status"
	"github.com/lixenwraith/buji/terminal"
)

// startSoundID keeps sound ids clear of sprite ids in the shared asset store
const startSoundID = 1 << 16

type options struct {
	configPath string
	assetDir   string
	debug      bool
	headless   bool
	frames     int
}

func main() {
	// Restore the terminal before printing a crash, otherwise the trace lands in the alternate screen
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mBUJI CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	var opts options
	flag.StringVar(&opts.configPath, "config", "", "HCL config path (default ./"+config.DefaultPath+", then embedded)")
	flag.StringVar(&opts.assetDir, "assets", "assets", "Directory sprites and sounds are read from")
	flag.BoolVar(&opts.debug, "debug", false, "Write a debug log")
	flag.BoolVar(&opts.headless, "headless", false, "Run without a terminal surface")
	flag.IntVar(&opts.frames, "frames", 0, "Stop after this many frames, 0 runs until quit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, opts)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "buji: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	file, source, err := config.LoadAuto(opts.configPath)
	if err != nil {
		return err
	}

	slogger, logFile := logging.Setup(opts.debug || file.Debug(), file.LogDir(logging.DefaultDir))
	if logFile != nil {
		defer logFile.Close()
	}
	logger := logging.NewSlog(slogger)
	logging.Logf(logger, logging.LevelInfo, "config loaded from %s", source)

	metrics := status.NewRegistry()
	store := asset.NewDirStore(opts.assetDir).WithMetrics(metrics)

	b := engine.NewBuilder().
		Assets(store).
		Logger(logger).
		Metrics(metrics)
	if err := file.Apply(b); err != nil {
		return err
	}

	actors, err := buildActors(file, logger)
	if err != nil {
		return err
	}
	for i, actx := range file.ActorContexts() {
		b.Actor(actors[i], actx)
	}

	var inputs anyQuit
	if opts.frames > 0 {
		// The first poll precedes the Init transition and every frame adds one more
		inputs = append(inputs, &engine.QuitAfter{N: opts.frames + 2})
	}

	if opts.headless {
		b.Renderer(&engine.HeadlessRenderer{})
	} else {
		surf, err := terminal.New()
		if err != nil {
			return err
		}
		defer surf.Fini()
		b.Renderer(surf)
		inputs = append(inputs, surf)
	}
	if len(inputs) > 0 {
		b.Input(inputs)
	}

	if file.AudioEnabled() {
		player := audio.NewPlayer(audio.DefaultSampleRate, file.AudioVolume(1), logger)
		if err := player.Start(); err == nil {
			defer player.Stop()
			start := startCue(file, store, logger)
			b.OnTransition(func(_, to engine.State) {
				switch to {
				case engine.StateRunning:
					player.Play(start())
				case engine.StatePreExit:
					player.Play(audio.ExitCue(audio.DefaultSampleRate))
				}
			})
		}
	}

	b.OnPreExit(func(w *engine.World) {
		logging.Logf(logger, logging.LevelInfo, "shutting down %d actors", w.Len())
	})

	e, err := b.Build()
	if err != nil {
		return err
	}
	err = e.Run(ctx)
	logging.Logf(logger, logging.LevelInfo, "stats: %s", metrics)
	return err
}

// startCue returns the configured start sound, or the synthesized chime when none is set or it fails to load
func startCue(file *config.File, store *asset.Store, logger logging.Logger) func() beep.Streamer {
	synth := func() beep.Streamer { return audio.StartCue(audio.DefaultSampleRate) }
	if file.Audio.StartSound == "" {
		return synth
	}

	bank := audio.NewBank(store, audio.DefaultSampleRate)
	if _, err := bank.Load(startSoundID, file.Audio.StartSound); err != nil {
		logging.Logf(logger, logging.LevelWarn, "start sound: %v", err)
		return synth
	}
	return func() beep.Streamer {
		s, err := bank.Streamer(startSoundID)
		if err != nil {
			return synth()
		}
		return s
	}
}

// anyQuit quits when any of its inputs does, every input is polled so each drains its events
type anyQuit []engine.Input

func (a anyQuit) PollQuit() bool {
	quit := false
	for _, in := range a {
		if in.PollQuit() {
			quit = true
		}
	}
	return quit
}
