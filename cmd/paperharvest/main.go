package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"PaperHarvest/internal/app"
	"PaperHarvest/internal/config"
	"PaperHarvest/internal/logging"
)

func main() {
	root := &cobra.Command{
		Use:           "paperharvest",
		Short:         "Daily trending-papers fetcher",
		Long:          "Scrapes the Hugging Face daily papers listing, enriches each paper from its detail page, and saves one dated JSON document per run.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		fetchCmd(),
		backfillCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func fetchCmd() *cobra.Command {
	var dateFlag string
	var topFlag int
	var summarizeFlag bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a day's trending papers and save them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := logging.New(cfg.Logging.Level)

			application, err := app.New(cfg, logger)
			if err != nil {
				logger.Error("startup failed", "error", err)
				return err
			}
			defer application.Close()

			date := dateFlag
			if date == "" {
				date = time.Now().UTC().Format("2006-01-02")
			}
			if _, err := time.Parse("2006-01-02", date); err != nil {
				return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", date)
			}

			if err := application.Fetch(cmd.Context(), date, topFlag, summarizeFlag); err != nil {
				logger.Error("fetch failed", "error", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "Date to fetch (YYYY-MM-DD, defaults to today UTC)")
	cmd.Flags().IntVar(&topFlag, "top", 0, "Number of top papers to fetch (defaults to TOP_N)")
	cmd.Flags().BoolVar(&summarizeFlag, "summarize", false, "Generate AI summaries (requires OPENAI_API_KEY or HF_API_KEY)")
	return cmd
}

func backfillCmd() *cobra.Command {
	var dateFlag string
	var allFlag bool

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Fill missing summaries in saved paper documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dateFlag != "" && allFlag {
				return fmt.Errorf("--date and --all are mutually exclusive")
			}

			cfg := config.Load()
			logger := logging.New(cfg.Logging.Level)

			application, err := app.New(cfg, logger)
			if err != nil {
				logger.Error("startup failed", "error", err)
				return err
			}
			defer application.Close()

			if err := application.Backfill(cmd.Context(), dateFlag, allFlag); err != nil {
				logger.Error("backfill failed", "error", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "Specific date (YYYY-MM-DD) to process")
	cmd.Flags().BoolVar(&allFlag, "all", false, "Process all saved documents (default: latest only)")
	return cmd
}
