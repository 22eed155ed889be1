package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagerag/internal/adapters/driven/vectorstore/sqlite"
	"github.com/custodia-labs/pagerag/internal/adapters/driven/watcher"
	"github.com/custodia-labs/pagerag/internal/core/ports/driving"
	"github.com/custodia-labs/pagerag/internal/logger"
)

var (
	ingestReset bool
	ingestWatch bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest PDF documents into the vector store",
	Long: `Loads every page of every PDF under the data directory, splits the
pages into overlapping chunks and stores the chunks that are not yet in
the vector store. Chunk ids are deterministic, so re-running against
unchanged input adds nothing.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestReset, "reset", false, "delete the vector store before ingesting")
	ingestCmd.Flags().BoolVar(&ingestWatch, "watch", false, "keep running and re-ingest when the data directory changes")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if ingestReset {
		cmd.Println("Clearing Database")
		if err := sqlite.Destroy(cfg.StoreDir); err != nil {
			return fmt.Errorf("clearing store: %w", err)
		}
	}

	svc, cleanup, err := buildIngest(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if err := ingestOnce(ctx, cmd, svc); err != nil {
		return err
	}

	if !ingestWatch {
		return nil
	}

	w, err := watcher.New()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	events, err := w.Watch(ctx, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", cfg.DataDir, err)
	}

	cmd.Printf("Watching %s for changes\n", cfg.DataDir)
	for range events {
		// A failed re-ingest (e.g. a half-copied PDF) should not kill
		// watch mode; the next change triggers another attempt.
		if err := ingestOnce(ctx, cmd, svc); err != nil {
			logger.Error("Re-ingestion failed: %v", err)
		}
	}

	return nil
}

func ingestOnce(ctx context.Context, cmd *cobra.Command, svc driving.IngestService) error {
	stats, err := svc.Ingest(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Number of existing documents in DB: %d\n", stats.Existing)
	if stats.Added > 0 {
		cmd.Printf("Adding new documents: %d\n", stats.Added)
	} else {
		cmd.Println("No new documents to add")
	}
	return nil
}
