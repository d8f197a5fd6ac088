// Command seed manages the contents of the terms store: seed-if-empty,
// wipe-and-reseed, verification and export to the seed bucket.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/termspage/termspage/internal/config"
	"github.com/termspage/termspage/internal/storage"
	"github.com/termspage/termspage/internal/terms"
	"github.com/termspage/termspage/internal/terms/repository"
	"github.com/termspage/termspage/pkg/logger"
)

var (
	fromBucket bool
	jsonOutput bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "seed",
		Short:         "Manage the terms store contents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(os.Getenv("LOG_LEVEL"))
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVar(&fromBucket, "from-bucket", false, "Read the seed set from the MinIO seed bucket instead of the built-in documents")

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the seed set when the store is empty",
		RunE: withStore(func(ctx context.Context, repo repository.Repository, cmd *cobra.Command) error {
			docs, err := seedSet(ctx)
			if err != nil {
				return err
			}
			return seedIfEmpty(ctx, repo, docs, cmd.OutOrStdout())
		}),
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every document and insert the seed set again",
		RunE: withStore(func(ctx context.Context, repo repository.Repository, cmd *cobra.Command) error {
			docs, err := seedSet(ctx)
			if err != nil {
				return err
			}
			return reset(ctx, repo, docs, cmd.OutOrStdout())
		}),
	}

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Print the document count and which languages exist",
		RunE: withStore(func(ctx context.Context, repo repository.Repository, cmd *cobra.Command) error {
			return verify(ctx, repo, terms.Defaults(), jsonOutput, cmd.OutOrStdout())
		}),
	}
	verifyCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Upload the built-in documents to the seed bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			mcfg := storage.LoadMinIOConfig()
			store, err := storage.NewMinIOStorage(mcfg)
			if err != nil {
				return err
			}
			return export(cmd.Context(), store, mcfg.Prefix, terms.Defaults(), cmd.OutOrStdout())
		},
	}

	// bare invocation behaves like `seed seed`
	rootCmd.RunE = seedCmd.RunE
	rootCmd.AddCommand(seedCmd, resetCmd, verifyCmd, exportCmd)
	return rootCmd
}

// withStore opens the configured store for the duration of one command.
func withStore(fn func(ctx context.Context, repo repository.Repository, cmd *cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		logger.SetFormat(cfg.Log.Format)
		ctx := cmd.Context()
		repo, err := repository.Open(ctx, cfg.Ephemeral())
		if err != nil {
			return fmt.Errorf("terms store unavailable: %w", err)
		}
		defer func() {
			if err := repo.Close(context.Background()); err != nil {
				logger.Warnf("close terms store: %v", err)
			}
		}()
		return fn(ctx, repo, cmd)
	}
}

func seedSet(ctx context.Context) ([]terms.Document, error) {
	if !fromBucket {
		return terms.Defaults(), nil
	}
	mcfg := storage.LoadMinIOConfig()
	store, err := storage.NewMinIOStorage(mcfg)
	if err != nil {
		return nil, err
	}
	docs, err := storage.LoadDocuments(ctx, store, mcfg.Prefix)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no seed documents under %s/%s", mcfg.Bucket, mcfg.Prefix)
	}
	logger.Infof("loaded %d seed documents from bucket %s", len(docs), mcfg.Bucket)
	return docs, nil
}
