package usecase

import (
	"context"
	"os"
	"testing"
	"time"

	"PaperHarvest/internal/domain"
	"PaperHarvest/internal/infrastructure/store"
)

func writeDoc(t *testing.T, s *store.FileStore, date string, papers ...domain.PaperRecord) string {
	t.Helper()
	doc := domain.DailyDocument{
		Date:        date,
		Papers:      papers,
		GeneratedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	path, err := s.Write(doc)
	if err != nil {
		t.Fatalf("write document: %v", err)
	}
	return path
}

func paperWithout(id string) domain.PaperRecord {
	return domain.PaperRecord{
		ID:       id,
		Title:    "Attention Is All You Need",
		Abstract: "We propose the Transformer model. It is great. And scalable.",
		ArxivID:  id,
	}
}

func paperWith(id string) domain.PaperRecord {
	p := paperWithout(id)
	p.Summary = "Existing summary."
	return p
}

func TestBackfillFillsMissingSummary(t *testing.T) {
	t.Parallel()

	s := store.New(t.TempDir())
	path := writeDoc(t, s, "2025-02-01", paperWithout("2502.00001"))

	summarizer := &staticSummarizer{result: "New summary."}
	b := NewBackfill(s, summarizer, nil)
	if err := b.Run(context.Background(), "2025-02-01", false); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	doc, err := s.Load(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	if doc.Papers[0].Summary != "New summary." {
		t.Fatalf("unexpected summary: %q", doc.Papers[0].Summary)
	}
	if doc.GeneratedAt.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("generatedAt should have been refreshed")
	}
}

func TestBackfillSkipsExistingSummaries(t *testing.T) {
	t.Parallel()

	s := store.New(t.TempDir())
	path := writeDoc(t, s, "2025-02-01", paperWith("2502.00001"), paperWithout("2502.00002"))

	summarizer := &staticSummarizer{result: "Auto summary."}
	b := NewBackfill(s, summarizer, nil)
	if err := b.Run(context.Background(), "2025-02-01", false); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(summarizer.titles) != 1 {
		t.Fatalf("summarizer should only see records without a summary, got %d calls", len(summarizer.titles))
	}

	doc, err := s.Load(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	if doc.Papers[0].Summary != "Existing summary." {
		t.Fatalf("existing summary was clobbered: %q", doc.Papers[0].Summary)
	}
	if doc.Papers[1].Summary != "Auto summary." {
		t.Fatalf("missing summary not filled: %q", doc.Papers[1].Summary)
	}
}

func TestBackfillNoChangesLeavesFileUntouched(t *testing.T) {
	t.Parallel()

	s := store.New(t.TempDir())
	path := writeDoc(t, s, "2025-02-01", paperWith("2502.00001"))

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	b := NewBackfill(s, &staticSummarizer{result: "whatever"}, nil)
	if err := b.Run(context.Background(), "2025-02-01", false); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(before) != string(after) {
		t.Fatal("file bytes changed without any summary update")
	}
}

func TestBackfillEmptyProviderResultLeavesFileUntouched(t *testing.T) {
	t.Parallel()

	s := store.New(t.TempDir())
	path := writeDoc(t, s, "2025-02-01", paperWithout("2502.00001"))

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	// a summarizer that declines produces no update and no rewrite
	b := NewBackfill(s, &staticSummarizer{result: ""}, nil)
	if err := b.Run(context.Background(), "2025-02-01", false); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(before) != string(after) {
		t.Fatal("file bytes changed although the summarizer declined")
	}
}

func TestBackfillIsIdempotent(t *testing.T) {
	t.Parallel()

	s := store.New(t.TempDir())
	path := writeDoc(t, s, "2025-02-01", paperWithout("2502.00001"))

	summarizer := &staticSummarizer{result: "Deterministic summary."}
	b := NewBackfill(s, summarizer, nil)

	if err := b.Run(context.Background(), "2025-02-01", false); err != nil {
		t.Fatalf("first Run error: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	if err := b.Run(context.Background(), "2025-02-01", false); err != nil {
		t.Fatalf("second Run error: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	if string(first) != string(second) {
		t.Fatal("second run modified an already summarized document")
	}
	if len(summarizer.titles) != 1 {
		t.Fatalf("expected exactly one summarization, got %d", len(summarizer.titles))
	}
}

func TestBackfillMissingFileIsSkipped(t *testing.T) {
	t.Parallel()

	s := store.New(t.TempDir())
	b := NewBackfill(s, &staticSummarizer{result: "x"}, nil)

	// date names a file that was never written
	if err := b.Run(context.Background(), "1999-01-01", false); err != nil {
		t.Fatalf("missing file must not abort the run: %v", err)
	}
}

func TestBackfillAllProcessesEveryDocument(t *testing.T) {
	t.Parallel()

	s := store.New(t.TempDir())
	pathA := writeDoc(t, s, "2025-02-01", paperWithout("2502.00001"))
	pathB := writeDoc(t, s, "2025-02-02", paperWithout("2502.00002"))

	b := NewBackfill(s, &staticSummarizer{result: "Filled."}, nil)
	if err := b.Run(context.Background(), "", true); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	for _, path := range []string{pathA, pathB} {
		doc, err := s.Load(path)
		if err != nil {
			t.Fatalf("load %s: %v", path, err)
		}
		if doc.Papers[0].Summary != "Filled." {
			t.Fatalf("%s: summary not filled: %q", path, doc.Papers[0].Summary)
		}
	}
}

func TestBackfillDefaultsToLatestDocument(t *testing.T) {
	t.Parallel()

	s := store.New(t.TempDir())
	older := writeDoc(t, s, "2025-02-01", paperWithout("2502.00001"))
	newest := writeDoc(t, s, "2025-02-02", paperWithout("2502.00002"))

	b := NewBackfill(s, &staticSummarizer{result: "Filled."}, nil)
	if err := b.Run(context.Background(), "", false); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	docOld, err := s.Load(older)
	if err != nil {
		t.Fatalf("load older: %v", err)
	}
	if docOld.Papers[0].Summary != "" {
		t.Fatalf("older document should be untouched, got %q", docOld.Papers[0].Summary)
	}

	docNew, err := s.Load(newest)
	if err != nil {
		t.Fatalf("load newest: %v", err)
	}
	if docNew.Papers[0].Summary != "Filled." {
		t.Fatalf("newest document should be filled, got %q", docNew.Papers[0].Summary)
	}
}
