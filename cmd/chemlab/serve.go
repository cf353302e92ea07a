package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/chemlab/internal/config"
	"github.com/san-kum/chemlab/internal/experiment"
	"github.com/san-kum/chemlab/internal/logging"
	"github.com/san-kum/chemlab/internal/observability"
	"github.com/san-kum/chemlab/internal/server"
	"github.com/san-kum/chemlab/internal/sim"
	"github.com/san-kum/chemlab/internal/tutor"
)

func newTutor(cfg config.ServerConfig, logger logging.Logger, collector *observability.TutorCollector) *tutor.Tutor {
	upstream := tutor.NewOpenAIUpstream(cfg.TutorBaseURL, cfg.TutorModel, &http.Client{})
	return tutor.New(upstream,
		tutor.WithLogger(logger),
		tutor.WithCollector(collector),
		tutor.WithTimeout(cfg.TutorTimeout),
		tutor.WithDefaultKey(cfg.TutorAPIKey),
	)
}

func askTutor(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}
	if apiKey != "" {
		cfg.TutorAPIKey = apiKey
	}

	t := newTutor(cfg, logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}), nil)
	answer := t.Ask(cmd.Context(), tutor.Request{
		KnowledgeID: args[0],
		Question:    strings.Join(args[1:], " "),
	})

	fmt.Printf("[%s]\n\n%s\n", tutor.Name(answer.KnowledgeID), answer.Answer)
	if answer.IsPreset {
		fmt.Fprintln(os.Stderr, "\n(preset answer, the tutor service was unavailable)")
	}
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	sessions, err := observability.NewSessionCollector(nil)
	if err != nil {
		return fmt.Errorf("session metrics: %w", err)
	}
	tutorMetrics, err := observability.NewTutorCollector(nil)
	if err != nil {
		return fmt.Errorf("tutor metrics: %w", err)
	}

	registry := experiment.NewRegistry()
	manager := sim.NewManager(registry.SessionFactory(seed), logger, sim.WithCollector(sessions))

	srv := server.New(server.Deps{
		Registry: registry,
		Manager:  manager,
		Tutor:    newTutor(cfg, logger, tutorMetrics),
		Metrics:  sessions.Handler(),
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx, cfg.Addr)
}
