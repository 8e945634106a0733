package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"PaperHarvest/internal/domain"
	"PaperHarvest/internal/ports"
)

const defaultEntryDelay = time.Second

// PipelineDeps wires all driven adapters into the crawl pipeline.
type PipelineDeps struct {
	Source     ports.PaperSource
	Store      ports.DocumentStore
	Summarizer ports.Summarizer
	Index      ports.PaperIndex
	Logger     *slog.Logger
	// EntryDelay overrides the pause between detail fetches. Zero keeps the
	// 1s default; a negative value disables the pause entirely.
	EntryDelay time.Duration
}

// Pipeline implements the daily crawl: listing, per-paper details, optional
// summaries, one persisted document.
type Pipeline struct {
	source     ports.PaperSource
	store      ports.DocumentStore
	summarizer ports.Summarizer
	index      ports.PaperIndex
	logger     *slog.Logger
	delay      time.Duration
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	delay := deps.EntryDelay
	if delay == 0 {
		delay = defaultEntryDelay
	}
	return &Pipeline{
		source:     deps.Source,
		store:      deps.Store,
		summarizer: deps.Summarizer,
		index:      deps.Index,
		logger:     deps.Logger,
		delay:      delay,
	}
}

// Run crawls the top papers for date and writes the daily document. A
// listing failure or an empty listing aborts the run with nothing written;
// per-paper failures are logged and skipped.
func (p *Pipeline) Run(ctx context.Context, date string, topN int, summarize bool) error {
	p.info("fetching papers listing", "date", date, "top", topN)

	entries, err := p.source.Listing(ctx, topN)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no papers found on the listing page")
	}
	p.info("parsed listing", "papers", len(entries))

	papers := make([]domain.PaperRecord, 0, len(entries))
	for i, entry := range entries {
		p.info("fetching paper detail", "n", i+1, "total", len(entries), "id", entry.ArxivID)

		record, err := p.processEntry(ctx, entry, summarize)
		if err != nil {
			p.warn("skipping paper", "id", entry.ArxivID, "error", err)
		} else {
			papers = append(papers, record)
		}

		// polite crawl delay, applied regardless of outcome
		if err := pause(ctx, p.delay); err != nil {
			return err
		}
	}

	doc := domain.DailyDocument{
		Date:        date,
		Papers:      papers,
		GeneratedAt: time.Now().UTC(),
	}
	path, err := p.store.Write(doc)
	if err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	p.info("saved daily document", "papers", len(papers), "path", path)

	if p.index != nil {
		if err := p.index.Record(ctx, date, papers); err != nil {
			p.warn("index papers", "error", err)
		}
	}
	return nil
}

func (p *Pipeline) processEntry(ctx context.Context, entry domain.ListingEntry, summarize bool) (domain.PaperRecord, error) {
	detail, err := p.source.Detail(ctx, entry)
	if err != nil {
		return domain.PaperRecord{}, err
	}

	var summary string
	if summarize && p.summarizer != nil {
		title := detail.Title
		if title == "" {
			title = "Paper " + entry.ArxivID
		}
		summary = p.summarizer.Generate(ctx, title, detail.Abstract)
	}

	return BuildRecord(entry, detail, summary, time.Now().UTC()), nil
}

// BuildRecord merges a listing entry with its detail page scrape. The title
// never ends up empty and the detail upvote count wins only when nonzero.
func BuildRecord(entry domain.ListingEntry, detail domain.PaperDetail, summary string, now time.Time) domain.PaperRecord {
	title := detail.Title
	if title == "" {
		title = "Paper " + entry.ArxivID
	}

	upvotes := detail.Upvotes
	if upvotes == 0 {
		upvotes = entry.Upvotes
	}

	authors := detail.Authors
	if authors == nil {
		authors = []string{}
	}
	tags := detail.Tags
	if tags == nil {
		tags = []string{}
	}

	return domain.PaperRecord{
		ID:           entry.ArxivID,
		Title:        title,
		Authors:      authors,
		Abstract:     detail.Abstract,
		Summary:      summary,
		URL:          entry.URL,
		PDFURL:       detail.PDFURL,
		ThumbnailURL: detail.ThumbnailURL,
		Upvotes:      upvotes,
		PublishedAt:  now,
		FetchedAt:    now,
		Tags:         tags,
		ArxivID:      entry.ArxivID,
	}
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
