package ports

import (
	"context"

	"PaperHarvest/internal/domain"
)

// PageFetcher retrieves a page body over HTTP with built-in retries.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// PaperSource resolves listing entries and paper details from the remote site.
type PaperSource interface {
	Listing(ctx context.Context, maxCount int) ([]domain.ListingEntry, error)
	Detail(ctx context.Context, entry domain.ListingEntry) (domain.PaperDetail, error)
}

// SummaryProvider is one strategy in the summarization chain. A provider that
// cannot or will not produce a summary returns the empty string; failures
// never propagate to the caller.
type SummaryProvider interface {
	Name() string
	Summarize(ctx context.Context, title, abstract string) string
}

// Summarizer produces a short summary for a paper, falling back as needed.
type Summarizer interface {
	Generate(ctx context.Context, title, abstract string) string
}

// DocumentStore persists daily documents as dated JSON files.
type DocumentStore interface {
	// Write stores the document under its date and returns the file path.
	Write(doc domain.DailyDocument) (string, error)
	Load(path string) (domain.DailyDocument, error)
	Save(path string, doc domain.DailyDocument) error
	// Select resolves which document files a backfill run should touch:
	// a specific date, all of them, or the latest one by default.
	Select(date string, all bool) ([]string, error)
}

// PaperIndex records persisted papers for audit and tooling queries.
type PaperIndex interface {
	Record(ctx context.Context, date string, papers []domain.PaperRecord) error
	Recorded(ctx context.Context, ids []string) (map[string]bool, error)
}
