package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/job-portal/internal/config"
	"github.com/jonathan/job-portal/internal/db"
	"github.com/jonathan/job-portal/internal/db/memdb"
	"github.com/jonathan/job-portal/internal/keywords"
	"github.com/jonathan/job-portal/internal/server"
	"github.com/jonathan/job-portal/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveConfigPath string
	serveMemory     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the job portal REST endpoints.

Settings come from an optional YAML file (--config), then the environment,
then flags. With --memory the server keeps all data in process and needs no
database.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to a YAML config file")
	serveCmd.Flags().BoolVar(&serveMemory, "memory", false, "Use the in-memory store instead of Postgres")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return fmt.Errorf("failed to create password config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, serveMemory)
	if err != nil {
		return err
	}
	defer closeStore()

	extractor, closer, err := keywords.New(ctx, extractorConfig(cfg.Extractor))
	if err != nil {
		return fmt.Errorf("failed to create keyword extractor: %w", err)
	}
	defer closer.Close()
	log.Printf("[keywords] using %s extractor", cfg.Extractor.Provider)

	srv, err := server.New(server.Config{
		Addr:      cfg.Addr(),
		Store:     store,
		Extractor: extractor,
		JWT:       jwtConfig,
		Passwords: passwordConfig,
		RateLimit: ratelimit.LoadConfig(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}

// openStore returns the Postgres store for cfg.DatabaseURL, or the in-memory
// store when memory is set.
func openStore(ctx context.Context, cfg *config.Config, memory bool) (server.Store, func(), error) {
	if memory {
		log.Println("[store] using in-memory store; data is lost on exit")
		s := memdb.New()
		return s, s.Close, nil
	}

	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL environment variable is required (or pass --memory)")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, database.Close, nil
}

func extractorConfig(c config.ExtractorConfig) keywords.Config {
	return keywords.Config{
		Provider: keywords.Provider(c.Provider),
		URL:      c.URL,
		Timeout:  c.Timeout,
		Model:    c.Model,
		APIKey:   c.APIKey,
	}
}
