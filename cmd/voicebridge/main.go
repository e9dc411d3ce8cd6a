// Voicebridge is a speech translation daemon: it receives spoken audio in
// one language over HTTP and returns the same utterance spoken in another,
// using remote recognition, translation, and synthesis services.
//
// Usage:
//
//	voicebridge [flags]
//	voicebridge --config /path/to/voicebridge.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/voicebridge/voicebridge/docs"
	"github.com/voicebridge/voicebridge/internal/config"
	"github.com/voicebridge/voicebridge/internal/health"
	"github.com/voicebridge/voicebridge/internal/pipeline"
	sttazure "github.com/voicebridge/voicebridge/internal/stt/azure"
	translateazure "github.com/voicebridge/voicebridge/internal/translate/azure"
	httptransport "github.com/voicebridge/voicebridge/internal/transport/http"
	ttsazure "github.com/voicebridge/voicebridge/internal/tts/azure"
)

// version is set at build time via ldflags.
var version = "dev"

// @title       Voicebridge API
// @version     1.0
// @description Speech-to-speech translation service.
func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/voicebridge.yaml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("voicebridge %s\n", version)
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	config.SetupLogging(cfg.Logging)
	slog.Info("voicebridge starting", "version", version)

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Stage backends. Credentials are validated per call, not at startup,
	// so a misconfigured daemon still boots and reports stage failures.
	recognizer := sttazure.New(cfg.Speech)
	translator := translateazure.New(cfg.Translator)
	synthesizer := ttsazure.New(cfg.Speech)
	defer recognizer.Close()
	defer translator.Close()
	defer synthesizer.Close()

	p := pipeline.New(recognizer, translator, synthesizer)
	server := httptransport.New(cfg.Server.Port, p)

	// Start health check servers.
	healthServer := health.New(cfg.Server.HealthPort)
	go func() {
		if err := healthServer.ListenAndServe(ctx); err != nil {
			slog.Error("health server failed", "error", err)
		}
	}()

	var grpcHealth *health.GRPCServer
	if cfg.Server.GRPCHealthEnabled {
		grpcHealth = health.NewGRPC(cfg.Server.GRPCHealthPort)
		go func() {
			if err := grpcHealth.ListenAndServe(ctx); err != nil {
				slog.Error("grpc health server failed", "error", err)
			}
		}()
	}

	// Start the HTTP server.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServe(ctx); err != nil {
			slog.Error("http server failed", "error", err)
			cancel()
		}
	}()

	healthServer.SetReady(true)
	if grpcHealth != nil {
		grpcHealth.SetServing(true)
	}
	slog.Info("voicebridge ready",
		"port", cfg.Server.Port,
		"health_port", cfg.Server.HealthPort)

	// Block until shutdown signal.
	<-ctx.Done()
	slog.Info("shutdown signal received, draining...")

	if err := server.Close(); err != nil {
		slog.Error("http server close error", "error", err)
	}

	wg.Wait()
	slog.Info("voicebridge stopped")
}
