package parser

import (
	"context"
	"fmt"
	"log/slog"

	"PaperHarvest/internal/domain"
	"PaperHarvest/internal/ports"
)

// Site implements ports.PaperSource against one listing page and the detail
// pages it links to.
type Site struct {
	fetcher    ports.PageFetcher
	listingURL string
	logger     *slog.Logger
}

var _ ports.PaperSource = (*Site)(nil)

// NewSite wires a fetcher with the listing page URL.
func NewSite(fetcher ports.PageFetcher, listingURL string, logger *slog.Logger) *Site {
	return &Site{
		fetcher:    fetcher,
		listingURL: listingURL,
		logger:     logger,
	}
}

// Listing fetches and parses the listing page. A fetch failure here is the
// caller's problem; an empty page parses to an empty slice.
func (s *Site) Listing(ctx context.Context, maxCount int) ([]domain.ListingEntry, error) {
	html, err := s.fetcher.Fetch(ctx, s.listingURL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}

	entries := ParseListing(html, maxCount)
	s.debug("parsed listing", "candidates", maxCount, "entries", len(entries))
	return entries, nil
}

// Detail fetches and parses one paper page.
func (s *Site) Detail(ctx context.Context, entry domain.ListingEntry) (domain.PaperDetail, error) {
	html, err := s.fetcher.Fetch(ctx, entry.URL)
	if err != nil {
		return domain.PaperDetail{}, fmt.Errorf("fetch detail %s: %w", entry.ArxivID, err)
	}
	return ParseDetail(html, entry.ArxivID), nil
}

func (s *Site) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
