package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gwcheck/internal/analyzer"
	"gwcheck/internal/api"
	"gwcheck/internal/classifier"
	"gwcheck/internal/config"
	"gwcheck/internal/llm"
	"gwcheck/internal/oracle"
	"gwcheck/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the chat backend.
	var client llm.ChatClient
	var model string
	switch cfg.LLMBackend {
	case "gemini":
		client = llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		model = cfg.GeminiModel
	default:
		client = llm.NewDeepSeekClient(cfg.DeepSeekAPIKey, cfg.DeepSeekAPIURL, cfg.DeepSeekModel, cfg.LLMStream)
		model = cfg.DeepSeekModel
	}
	stats := llm.NewStats(time.Hour)

	// Initialize classification.
	clsCfg := classifier.DefaultConfig()
	clsCfg.H1BoldSizePt = cfg.H1BoldSizePt
	clsCfg.H2BoldSizePt = cfg.H2BoldSizePt
	clsCfg.H3BoldSizePt = cfg.H3BoldSizePt
	clsCfg.TitleMinSizePt = cfg.TitleMinSizePt
	clsCfg.ContextBefore = cfg.ContextBefore

	var orc classifier.Oracle
	if cfg.OracleEnabled {
		orc = oracle.New(client, stats)
	}
	cls := classifier.New(clsCfg, orc, log)

	// Initialize analysis.
	anCfg := analyzer.DefaultConfig()
	anCfg.ContextBefore = cfg.ContextBefore
	anCfg.ContextAfter = cfg.ContextAfter
	anCfg.Delay = cfg.AnalyzeDelay
	if cfg.FormatRulesFile != "" {
		rules, err := os.ReadFile(cfg.FormatRulesFile)
		if err != nil {
			log.Error("read format rules file", "path", cfg.FormatRulesFile, "error", err)
			os.Exit(1)
		}
		anCfg.FormatRules = string(rules)
	}
	an := analyzer.New(client, stats, anCfg, log)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, cls, an, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, stats, model, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if closer, ok := client.(interface{ Close() }); ok {
			closer.Close()
		}
	}()

	log.Info("starting gwcheck", "port", cfg.Port, "backend", cfg.LLMBackend)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
