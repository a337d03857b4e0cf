package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"resumeBuilder/internal/api"
	"resumeBuilder/internal/config"
	"resumeBuilder/internal/database"
	"resumeBuilder/internal/enhance"
	"resumeBuilder/internal/pdf"
	"resumeBuilder/internal/render"
	"resumeBuilder/internal/session"
	"resumeBuilder/internal/storage"
)

func main() {
	// .env 可选，环境变量优先。
	_ = godotenv.Load()

	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if cfg.Session.UsesDefaultSecret() {
		logger.Warn("SESSION_SECRET not set, using the development default")
	}

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	logger.Info("database ready", slog.String("driver", cfg.Database.Driver))

	var backend enhance.Backend
	openAI, err := enhance.NewOpenAIBackend(cfg.OpenAI)
	if err != nil {
		log.Fatalf("init openai backend: %v", err)
	}
	if openAI != nil {
		backend = openAI
		logger.Info("AI enhancement enabled", slog.String("model", cfg.OpenAI.Model))
	} else {
		logger.Info("no OpenAI key, AI enhancement uses the local cleanup")
	}

	converter, err := pdf.NewFromConfig(cfg.PDF)
	if err != nil {
		log.Fatalf("init pdf converter: %v", err)
	}
	if converter != nil {
		logger.Info("server-side pdf enabled", slog.String("converter", converter.Name()))
	} else {
		logger.Info("no pdf converter configured, browser print fallback only")
	}

	exporterOpts := []pdf.ExporterOption{pdf.WithTimeout(cfg.PDF.Timeout)}
	if cfg.MinIO.Enabled() {
		archive, err := storage.NewClient(context.Background(), cfg.MinIO)
		if err != nil {
			log.Fatalf("init storage client: %v", err)
		}
		exporterOpts = append(exporterOpts, pdf.WithArchive(archive))
		logger.Info("pdf archive enabled", slog.String("bucket", archive.Bucket()))
	}

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("parse templates: %v", err)
	}

	signer, err := session.NewFlashSigner(cfg.Session.Secret, 0)
	if err != nil {
		log.Fatalf("init flash signer: %v", err)
	}

	handler := api.NewResumeHandler(
		database.NewResumeRepository(db),
		enhance.New(backend, logger),
		renderer,
		pdf.NewExporter(converter, logger, exporterOpts...),
		api.NewFlashStore(signer),
	)

	router := api.NewRouter(renderer, logger)
	api.RegisterRoutes(router, handler)

	address := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("api listening", slog.String("address", address))
	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}
