package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iudanet/focuskeeper/internal/config"
	"github.com/iudanet/focuskeeper/internal/logging"
	"github.com/iudanet/focuskeeper/internal/server/apikey"
	"github.com/iudanet/focuskeeper/internal/validation"
)

// serverFlagKeys связывает флаги с ключами конфигурации
var serverFlagKeys = map[string]string{
	"addr":           "addr",
	"db-path":        "db_path",
	"api-key-secret": "api_key_secret",
	"rate-limit":     "rate_limit",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"log-file":       "log.file",
}

// Execute runs the server command line until SIGINT/SIGTERM.
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := Command(version, os.Stdout, os.Stderr).ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// Command builds the root command: serve by default, plus keygen and version.
// out receives command output, logOut the logs when no log file is configured.
func Command(version string, out, logOut io.Writer) *cobra.Command {
	v := viper.New()
	var configPath string

	root := &cobra.Command{
		Use:           "focuskeeper-server",
		Short:         "Sync server for focuskeeper clients",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v, configPath, version, logOut)
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a YAML, TOML or JSON config file")
	flags.String("addr", "", "listen address")
	flags.String("db-path", "", "path to the SQLite database")
	flags.String("api-key-secret", "", "secret that signs API keys")
	flags.Int("rate-limit", 0, "requests per client and window, 0 disables limiting")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text or json")
	flags.String("log-file", "", "write logs to a rotating file instead of stderr")
	bindServerFlags(v, flags)

	root.AddCommand(
		keygenCommand(v, &configPath),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "focuskeeper-server %s\n", version)
			},
		},
	)

	return root
}

func bindServerFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for name, key := range serverFlagKeys {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
}

func runServe(ctx context.Context, v *viper.Viper, configPath, version string, logOut io.Writer) error {
	cfg, err := config.LoadServer(v, configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closer, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return err
	}
	defer func() {
		_ = closer.Close()
	}()

	logger.Info("focuskeeper server starting", "version", version, "addr", cfg.Addr, "db_path", cfg.DBPath)
	return Run(ctx, cfg, logger, version)
}

func keygenCommand(v *viper.Viper, configPath *string) *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Issue an API key for a user",
		Long:  "Issue an API key for a user. Clients send it in the X-API-Key header; it only grants access to that user's data.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validation.ValidateUserID(userID); err != nil {
				return err
			}

			cfg, err := config.LoadServer(v, *configPath)
			if err != nil {
				return err
			}
			if cfg.APIKeySecret == "" {
				return errors.New("api_key_secret is required to sign keys")
			}

			key, err := apikey.New(cfg.APIKeySecret).Issue(userID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "owner of the data the key grants access to")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "key lifetime, 0 means the key never expires")

	return cmd
}
