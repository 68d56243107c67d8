package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/lumina"
	"github.com/aretw0/lumina/internal/config"
	"github.com/aretw0/lumina/internal/logging"
	"github.com/aretw0/lumina/pkg/adapters/public"
	redisAdapter "github.com/aretw0/lumina/pkg/adapters/redis"
	"github.com/aretw0/lumina/pkg/adapters/rest"
	"github.com/aretw0/lumina/pkg/domain"
	"github.com/aretw0/lumina/pkg/notify"
	"github.com/aretw0/lumina/pkg/ports"
	"github.com/spf13/cobra"
)

// cfg is resolved before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "lumina",
	Short: "Lumina is an AI assistant for tabular workspaces",
	Long: `Lumina formats workspace data for display and drives the AI-assisted
operations (table and template suggestions, assisted writing, mass delete,
data checks and data type suggestions) against a remote AI service.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path, cmd.Flags())
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default ./lumina.yaml)")
	flags.String("api-url", "", "Base URL of the AI service")
	flags.String("api-token", "", "Bearer token for the AI service")
	flags.Int("timeout", 60, "Per-request timeout in seconds (0 disables it)")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("redis-url", "", "Redis URL for failure notifications and owner locks")
	flags.Bool("public", false, "Public mode: AI requests resolve empty without contacting the service")
	flags.String("locale", "en", "Locale used when formatting values")
}

func newLogger() *slog.Logger {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.New(level)
}

func constraintContext() domain.ConstraintContext {
	return domain.ConstraintContext{Locale: cfg.Locale}
}

// newService selects the AI backend: the inert public service, or the REST
// client when an API URL is configured.
func newService(logger *slog.Logger) (ports.AIService, error) {
	if cfg.Public {
		return public.New(), nil
	}
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("no AI service configured: set --api-url (or LUMINA_API_URL) or use --public")
	}
	return rest.New(cfg.APIURL,
		rest.WithToken(cfg.APIToken),
		rest.WithTimeout(cfg.Timeout()),
		rest.WithLogger(logger),
	), nil
}

// newNotifier returns the failure channel: Redis when a Redis URL is
// configured, the log otherwise. Credentials are masked in either case. The
// Redis notifier is returned as well so its client can be shared.
func newNotifier(logger *slog.Logger) (ports.Notifier, *redisAdapter.Notifier, func() error, error) {
	redact := notify.Redact(notify.DefaultPatterns...)
	if cfg.RedisURL == "" {
		return notify.Chain(logNotifier(logger), redact), nil, func() error { return nil }, nil
	}
	n, err := redisAdapter.New(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}
	return notify.Chain(n, redact), n, n.Client().Close, nil
}

func logNotifier(logger *slog.Logger) ports.Notifier {
	return ports.NotifierFunc(func(_ context.Context, n domain.Notification) error {
		logger.Error("AI request failed", "kind", n.Kind, "owner", n.Owner, "err", n.Message)
		return nil
	})
}

func assistantOptions(logger *slog.Logger, notifier ports.Notifier) []lumina.Option {
	return []lumina.Option{
		lumina.WithLogger(logger),
		lumina.WithNotifier(notifier),
		lumina.WithTimeout(cfg.Timeout()),
		lumina.WithMaxPromptSize(cfg.MaxPromptSize),
	}
}
