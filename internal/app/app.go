package app

import (
	"context"
	"fmt"
	"log/slog"

	"PaperHarvest/internal/config"
	"PaperHarvest/internal/infrastructure/fetch"
	"PaperHarvest/internal/infrastructure/llm"
	"PaperHarvest/internal/infrastructure/ml"
	"PaperHarvest/internal/infrastructure/parser"
	"PaperHarvest/internal/infrastructure/storage"
	"PaperHarvest/internal/infrastructure/store"
	"PaperHarvest/internal/logging"
	"PaperHarvest/internal/ports"
	"PaperHarvest/internal/summarize"
	"PaperHarvest/internal/usecase"
)

// Application wires configuration to adapters and use cases.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	backfill *usecase.Backfill
	index    *storage.SQLiteIndex
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	fetcher := fetch.New(baseLogger.With("component", "fetcher"))
	source := parser.NewSite(fetcher, cfg.PapersURL, baseLogger.With("component", "source"))

	var providers []ports.SummaryProvider
	if cfg.OpenAI.APIKey != "" {
		providers = append(providers, llm.NewClient(cfg.OpenAI, baseLogger.With("component", "summarize.openai")))
	}
	if cfg.HF.APIKey != "" {
		providers = append(providers, ml.NewClient(cfg.HF, baseLogger.With("component", "summarize.hf")))
	}
	chain := summarize.NewChain(baseLogger.With("component", "summarize"), providers...)

	docStore := store.New(cfg.OutputDir)

	var index *storage.SQLiteIndex
	var indexPort ports.PaperIndex
	if cfg.IndexDB != "" {
		idx, err := storage.Open(cfg.IndexDB)
		if err != nil {
			return nil, fmt.Errorf("open paper index: %w", err)
		}
		index = idx
		indexPort = idx
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Store:      docStore,
		Summarizer: chain,
		Index:      indexPort,
		Logger:     baseLogger.With("component", "pipeline"),
	})
	backfill := usecase.NewBackfill(docStore, chain, baseLogger.With("component", "backfill"))

	return &Application{
		cfg:      cfg,
		pipeline: pipeline,
		backfill: backfill,
		index:    index,
	}, nil
}

// Fetch runs one crawl for the given date. A topN of zero or less uses the
// configured default.
func (a *Application) Fetch(ctx context.Context, date string, topN int, summarize bool) error {
	if topN <= 0 {
		topN = a.cfg.TopN
	}
	return a.pipeline.Run(ctx, date, topN, summarize)
}

// Backfill fills missing summaries in previously saved documents.
func (a *Application) Backfill(ctx context.Context, date string, all bool) error {
	return a.backfill.Run(ctx, date, all)
}

// Close releases optional resources.
func (a *Application) Close() error {
	return a.index.Close()
}
