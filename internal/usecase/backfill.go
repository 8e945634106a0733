package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"PaperHarvest/internal/ports"
)

// Backfill re-scans saved daily documents and fills missing summaries
// without re-scraping anything.
type Backfill struct {
	store      ports.DocumentStore
	summarizer ports.Summarizer
	logger     *slog.Logger
}

// NewBackfill constructs the backfill use case.
func NewBackfill(store ports.DocumentStore, summarizer ports.Summarizer, logger *slog.Logger) *Backfill {
	return &Backfill{
		store:      store,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Run processes the selected documents. Missing files are reported and
// skipped; they never abort processing of the remaining files.
func (b *Backfill) Run(ctx context.Context, date string, all bool) error {
	paths, err := b.store.Select(date, all)
	if err != nil {
		return fmt.Errorf("select documents: %w", err)
	}
	if len(paths) == 0 {
		b.info("no documents to process")
		return nil
	}

	for _, path := range paths {
		b.info("processing document", "path", path)
		if err := b.processFile(ctx, path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				b.warn("file not found", "path", path)
				continue
			}
			return err
		}
	}
	return nil
}

// processFile fills summaries for records that lack one. The file is only
// rewritten, with a fresh generatedAt, when at least one record changed.
func (b *Backfill) processFile(ctx context.Context, path string) error {
	doc, err := b.store.Load(path)
	if err != nil {
		return err
	}

	updated := false
	for i := range doc.Papers {
		paper := &doc.Papers[i]
		if paper.Summary != "" {
			continue
		}

		b.info("summarizing", "id", paper.ID, "title", clip(paper.Title, 60))
		summary := b.summarizer.Generate(ctx, paper.Title, paper.Abstract)
		if summary != "" {
			paper.Summary = summary
			updated = true
		}
	}

	if !updated {
		b.info("no updates needed", "path", path)
		return nil
	}

	doc.GeneratedAt = time.Now().UTC()
	if err := b.store.Save(path, doc); err != nil {
		return err
	}
	b.info("updated document", "path", path)
	return nil
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func (b *Backfill) info(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Info(msg, args...)
	}
}

func (b *Backfill) warn(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Warn(msg, args...)
	}
}
