package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/assetorbit/engine/pkg/server"
	"github.com/assetorbit/engine/pkg/services/catalog"
	"github.com/assetorbit/engine/pkg/services/config"
	"github.com/assetorbit/engine/pkg/services/rules"
	"github.com/assetorbit/engine/pkg/services/transform"
	"github.com/assetorbit/engine/pkg/services/transform/excel"
	"github.com/assetorbit/engine/pkg/services/transform/ninjaone"
	"github.com/assetorbit/engine/pkg/services/transform/telus"
	"github.com/assetorbit/engine/pkg/store/duckdb"
	rulestore "github.com/assetorbit/engine/pkg/store/duckdb/rules"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the asset import engine web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to an engine profile file (defaults apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.LoadConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load engine config: %w", err)
		}
		cfg = loaded
		logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	}

	registry, err := transform.NewRegistry(
		transform.Config{Workers: cfg.Import.Workers},
		ninjaone.New(),
		telus.New(),
		excel.New(),
	)
	if err != nil {
		return fmt.Errorf("failed to create transformation registry: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.Storage.DBPath})
	if err != nil {
		return fmt.Errorf("failed to open rule store: %w", err)
	}

	store, err := rulestore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create rule store: %w", err)
	}
	cat, err := catalog.NewService(store)
	if err != nil {
		return fmt.Errorf("failed to create catalog service: %w", err)
	}

	if host := os.Getenv("SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
	}
	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)

	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Registry: registry,
			Engine:   rules.NewEngineWithWorkers(cfg.Import.Workers),
			Catalog:  cat,
		},
	})

	logger.Info().Msgf("Supported sources: %v", registry.Sources())
	return api.Start()
}
