package parser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"PaperHarvest/internal/domain"
	"PaperHarvest/internal/infrastructure/fetch"
)

func TestSiteListing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingHTML))
	}))
	defer server.Close()

	fetcher := fetch.New(nil, fetch.WithClient(server.Client()), fetch.WithRetries(1))
	site := NewSite(fetcher, server.URL, nil)

	entries, err := site.Listing(context.Background(), 2)
	if err != nil {
		t.Fatalf("Listing error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestSiteListingFetchFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	fetcher := fetch.New(nil, fetch.WithClient(server.Client()), fetch.WithRetries(2), fetch.WithDelay(time.Millisecond))
	site := NewSite(fetcher, server.URL, nil)

	if _, err := site.Listing(context.Background(), 5); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestSiteDetail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(detailHTML))
	}))
	defer server.Close()

	fetcher := fetch.New(nil, fetch.WithClient(server.Client()), fetch.WithRetries(1))
	site := NewSite(fetcher, server.URL, nil)

	entry := domain.ListingEntry{ArxivID: "2502.00001", URL: server.URL + "/papers/2502.00001"}
	detail, err := site.Detail(context.Background(), entry)
	if err != nil {
		t.Fatalf("Detail error: %v", err)
	}
	if detail.Title != "Attention Is All You Need" {
		t.Fatalf("unexpected title: %q", detail.Title)
	}
}
