package main

import (
	"fmt"
	"os"

	"github.com/blogly/blogly/internal/config"
	"github.com/blogly/blogly/internal/db"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

var (
	configPath  string
	verbose     bool
	addr        string
	databaseURL string

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "blogly",
	Short: "Blogly - users, posts and tags",
	Long: `Blogly is a small server-rendered blog.

It keeps users, their posts and the tags attached to posts in SQLite or
PostgreSQL and serves plain HTML forms to manage them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose, false)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.NewLoader(logger).Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.Log.Development || cfg.Log.Verbose {
			_ = logger.Sync()
			logger, err = newLogger(verbose || cfg.Log.Verbose, cfg.Log.Development)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
		}
		if addr != "" {
			cfg.Server.Addr = addr
		}
		if databaseURL != "" {
			cfg.Database.URL = databaseURL
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./blogly.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Database URL (or set DATABASE_URL env)")
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (or set BLOGLY_ADDR env)")
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Seed even when users already exist")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func newLogger(verbose, development bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if development {
		config = zap.NewDevelopmentConfig()
	}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// openDatabase connects and migrates using the loaded config.
func openDatabase() (*gorm.DB, error) {
	gdb, err := db.Open(db.Options{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		Echo:            cfg.Database.Echo,
		SlowThreshold:   cfg.Database.SlowThreshold,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}
	if err := db.InitDatabase(gdb); err != nil {
		_ = db.Close(gdb)
		return nil, err
	}
	return gdb, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
