package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rs/zerolog"
	"github.com/sicko7947/grocer"
	"github.com/sicko7947/grocer/service"
	"github.com/sicko7947/grocer/store"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	backend    string
	dataPath   string
	logLevel   string

	// Initialised in PersistentPreRunE
	cfg       Config
	logger    zerolog.Logger
	listStore grocer.ListStore
	svc       *service.Service
	closers   []io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "grocer",
	Short: "grocer - shared shopping lists",
	Long: `grocer keeps shopping lists with tagged, priced items.

Lists are stored locally (memory, a JSON file directory or SQLite) or in a
DynamoDB table. Use "grocer serve" to expose them over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = LoadConfig(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logger, err = newLogger(cfg, os.Stderr)
		if err != nil {
			return err
		}

		listStore, svc, err = newService(cmd.Context(), cfg, logger)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeAll()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "storage backend: memory, file, sqlite or dynamodb")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "data directory (file) or database path (sqlite)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// applyFlags overrides configuration with explicitly set flags
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Storage.Backend = backend
	}
	if flags.Changed("data") {
		cfg.Storage.Path = dataPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
}

func newLogger(cfg Config, out io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	if cfg.Log.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		With().
		Timestamp().
		Logger().
		Level(level), nil
}

// openStore builds the list store for the configured backend
func openStore(ctx context.Context, cfg Config, logger zerolog.Logger) (grocer.ListStore, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	switch cfg.Storage.Backend {
	case BackendMemory:
		return store.NewMemoryStore(), nil

	case BackendFile:
		kv, err := store.NewFileKV(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return store.NewLocalStore(kv, cfg.Storage.Key, logger), nil

	case BackendSQLite:
		if dir := filepath.Dir(cfg.Storage.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		kv, err := store.OpenSQLiteKV(ctx, cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		closers = append(closers, kv)
		return store.NewLocalStore(kv, cfg.Storage.Key, logger), nil

	case BackendDynamoDB:
		client, err := newDynamoDBClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store.NewDynamoDBStore(client, cfg.Storage.TableName), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// newService opens the store and builds the service on it. Anything opened
// is closed again when construction fails.
func newService(ctx context.Context, cfg Config, logger zerolog.Logger) (grocer.ListStore, *service.Service, error) {
	listStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		_ = closeAll()
		return nil, nil, err
	}

	svc, err := service.NewService(
		listStore,
		service.WithLogger(logger),
		service.WithConfig(cfg.ServiceConfig()),
	)
	if err != nil {
		_ = closeAll()
		return nil, nil, err
	}
	return listStore, svc, nil
}

// newDynamoDBClient uses the default credential chain; a non-empty endpoint
// targets DynamoDB Local or another compatible service.
func newDynamoDBClient(ctx context.Context, cfg Config) (*dynamodb.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Storage.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Storage.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var dynamoOpts []func(*dynamodb.Options)
	if cfg.Storage.Endpoint != "" {
		dynamoOpts = append(dynamoOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
		})
	}

	return dynamodb.NewFromConfig(awsCfg, dynamoOpts...), nil
}

func closeAll() error {
	var first error
	for _, c := range closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	closers = nil
	return first
}
