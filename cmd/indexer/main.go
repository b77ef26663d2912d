package main

import (
	"fmt"
	"os"

	"sales-agent/catalog"
	"sales-agent/config"
	"sales-agent/llmclient"
	"sales-agent/retrieval"

	"github.com/philippgille/chromem-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "indexer",
	Short: "Build and inspect the product vector index",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cfgFile != "" {
			config.SetConfigFile(cfgFile)
		}
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Embed the product catalog and persist the vector index",
	RunE: func(cmd *cobra.Command, args []string) error {
		tempLogger, err := config.InitLogger("info")
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		cfg := config.Load(tempLogger)
		logger, err := config.InitLogger(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("re-initialize logger: %w", err)
		}
		defer config.Cleanup()

		client := llmclient.New(cfg, logger)
		embedder := retrieval.NewCachedEmbedder(cfg, client, logger)
		store := catalog.NewFileStore(cfg.ProductsPath, cfg.StoreInfoPath, logger)

		count, err := retrieval.BuildIndex(cmd.Context(), store, cfg.IndexPath, embedder, logger)
		if err != nil {
			return err
		}
		logger.Info("Indexing complete",
			zap.Int("documents", count),
			zap.String("path", cfg.IndexPath))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show document counts for the persisted index",
	RunE: func(cmd *cobra.Command, args []string) error {
		tempLogger, err := config.InitLogger("info")
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		cfg := config.Load(tempLogger)
		defer config.Cleanup()

		db, err := chromem.NewPersistentDB(cfg.IndexPath, false)
		if err != nil {
			return fmt.Errorf("open persistent index: %w", err)
		}
		collections := db.ListCollections()
		if len(collections) == 0 {
			fmt.Printf("No collections found in %s\n", cfg.IndexPath)
			return nil
		}
		for name, collection := range collections {
			fmt.Printf("%s: %d documents\n", name, collection.Count())
		}
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(statsCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
