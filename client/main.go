package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/puyokura/zethon/config"
	"github.com/puyokura/zethon/data"
	"github.com/puyokura/zethon/effects"
	"github.com/puyokura/zethon/logging"
	"github.com/puyokura/zethon/session"
	"go.uber.org/zap"
)

const connectTimeout = 15 * time.Second

// newSink builds the effect sink named in the config. A remote sink is
// connected before the UI starts.
func newSink(cfg *config.Config, logger *zap.Logger) (effects.Sink, error) {
	switch cfg.Sink {
	case config.SinkNoop:
		return effects.Noop{}, nil
	case config.SinkRemote:
		remote := effects.NewRemote(cfg.RemoteHost, cfg.RemoteRetries, logger)
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := remote.Connect(ctx); err != nil {
			return nil, fmt.Errorf("connect to %s: %w", remote.URL(), err)
		}
		return remote, nil
	default:
		return effects.NewLog(logger), nil
	}
}

func main() {
	configFile := flag.String("config", "zethon.json", "Path to configuration file")
	flag.Parse()

	cfg := config.NewConfig(*configFile)
	if err := cfg.Load(); err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel, false)
	if err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ds, warnings, err := data.LoadFile(cfg.DatasetPath)
	if err != nil {
		logger.Error("Failed to load dataset", zap.String("path", cfg.DatasetPath), zap.Error(err))
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		logger.Warn("Dataset warning", zap.String("warning", w))
	}

	sink, err := newSink(cfg, logger)
	if err != nil {
		logger.Error("Failed to create effect sink", zap.String("sink", cfg.Sink), zap.Error(err))
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
	defer sink.Close()

	logger.Info("Client started",
		zap.String("sink", cfg.Sink),
		zap.Int("categories", len(ds.Categories)),
		zap.Int("threads", len(ds.Threads)),
	)

	handlers := session.NewHandlers(sink, logger)
	brand := Branding{Name: cfg.ForumName, Tagline: cfg.Tagline}

	p := tea.NewProgram(initialModel(ds, handlers, logger, brand), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("Program exited with error", zap.Error(err))
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
