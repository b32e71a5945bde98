// Command tilesnake runs the snake game in an OpenGL window or a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"tilesnake/internal/audio"
	"tilesnake/internal/desktop"
	"tilesnake/internal/game"
	"tilesnake/internal/metrics"
	"tilesnake/internal/term"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	frontend := flag.String("frontend", "desktop", "frontend: desktop or term")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address, e.g. :2112")
	seed := flag.Uint64("seed", 0, "food layout seed (overrides config and "+game.SeedEnv+")")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	logger := log.New(os.Stderr, "tilesnake: ", log.LstdFlags)

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = *seed
		case "mute":
			cfg.Mute = *mute
		}
	})

	if err := run(cfg, *frontend, *metricsAddr, logger); err != nil {
		logger.Fatal(err)
	}
}

func run(cfg game.Config, frontend, metricsAddr string, logger *log.Logger) error {
	var sound *audio.System
	if !cfg.Mute {
		s, err := audio.New(0.6)
		if err != nil {
			logger.Printf("audio init failed (continuing without sound): %v", err)
		} else {
			sound = s
		}
	}

	var exporter *metrics.Exporter
	if metricsAddr != "" {
		exporter = metrics.New()
		srvLog := logger
		if frontend == "term" {
			srvLog = nil
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := exporter.Serve(ctx, metricsAddr, srvLog); err != nil {
				logger.Printf("metrics: %v", err)
			}
		}()
	}

	var sess *game.Session
	logSession := func() {
		logger.Printf("session %s seed=%d food=%d length=%d", sess.ID, cfg.Seed, sess.Food().Len(), sess.Chain().Len())
	}
	start := func(tp game.TimeProvider) *game.Session {
		sess = game.NewSession(cfg, tp)
		sound.Attach(sess)
		exporter.Attach(sess)
		go func() {
			time.Sleep(100 * time.Millisecond) // let the audio context come up
			sound.Play(audio.SoundStart)
		}()
		if frontend != "term" {
			logSession()
		}
		return sess
	}
	onFrame := func(dt time.Duration) { exporter.ObserveFrame(dt) }

	switch frontend {
	case "desktop":
		return desktop.Run(start, desktop.Options{
			Width:   cfg.WindowWidth,
			Height:  cfg.WindowHeight,
			Logger:  logger,
			OnFrame: onFrame,
		})
	case "term":
		// Logging would corrupt the screen while tcell owns it.
		err := term.Run(start, term.Options{OnFrame: onFrame})
		if sess != nil {
			logSession()
		}
		return err
	}
	return fmt.Errorf("unknown frontend %q", frontend)
}
