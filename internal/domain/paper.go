package domain

import "time"

// ListingEntry is the minimal slice of a paper visible on the listing page.
// It lives only long enough to drive the detail crawl.
type ListingEntry struct {
	ArxivID string
	URL     string
	Upvotes int
}

// PaperDetail carries everything extracted from a single paper page.
// Every field is best-effort; absence is an empty value, never an error.
type PaperDetail struct {
	Title        string
	Authors      []string
	Abstract     string
	Tags         []string
	PDFURL       string
	ThumbnailURL *string
	Upvotes      int
}

// PaperRecord is the persisted merge of a listing entry and its detail page.
// After creation only Summary may change, and only via backfill.
type PaperRecord struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Authors      []string  `json:"authors"`
	Abstract     string    `json:"abstract"`
	Summary      string    `json:"summary"`
	URL          string    `json:"url"`
	PDFURL       string    `json:"pdfUrl"`
	ThumbnailURL *string   `json:"thumbnailUrl"`
	Upvotes      int       `json:"upvotes"`
	PublishedAt  time.Time `json:"publishedAt"`
	FetchedAt    time.Time `json:"fetchedAt"`
	Tags         []string  `json:"tags"`
	ArxivID      string    `json:"arxivId"`
}

// DailyDocument is the JSON artifact produced for one crawl date.
type DailyDocument struct {
	Date        string        `json:"date"`
	Papers      []PaperRecord `json:"papers"`
	GeneratedAt time.Time     `json:"generatedAt"`
}
