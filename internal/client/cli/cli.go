// Package cli implements the focuskeeper command line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iudanet/focuskeeper/internal/client/app"
	"github.com/iudanet/focuskeeper/internal/client/data"
	"github.com/iudanet/focuskeeper/internal/client/iocli"
	"github.com/iudanet/focuskeeper/internal/config"
	"github.com/iudanet/focuskeeper/internal/logging"
)

// noAppAnnotation помечает команды, которым не нужна локальная база
const noAppAnnotation = "focuskeeper/no-app"

// flagKeys связывает флаги с ключами конфигурации
var flagKeys = map[string]string{
	"server-url": "server_url",
	"api-key":    "api_key",
	"user-id":    "user_id",
	"db-path":    "db_path",
	"debug-addr": "debug_addr",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
	"auto-sync":  "auto_sync",
}

// Cli holds the state shared by all commands of one invocation.
type Cli struct {
	io         iocli.IO
	data       data.Service
	logCloser  io.Closer
	logOut     io.Writer
	app        *app.App
	cfg        *config.ClientConfig
	v          *viper.Viper
	logger     *slog.Logger
	newApp     func(cfg *config.ClientConfig, logger *slog.Logger) (*app.App, error)
	configPath string
	jsonOut    bool
}

// New creates a Cli writing through out.
func New(out iocli.IO) *Cli {
	return &Cli{
		io:     out,
		v:      viper.New(),
		newApp: app.New,
		logOut: os.Stderr,
	}
}

// Execute runs the client until the command finishes or SIGINT/SIGTERM arrives.
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := New(iocli.NewStdio())
	err := c.Command(version).ExecuteContext(ctx)
	if closeErr := c.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// Command builds the root command with every subcommand attached.
func (c *Cli) Command(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "focuskeeper",
		Short:         "Offline-first focus tracker",
		Long:          "focuskeeper keeps projects, tasks, sessions and logs in a local database and syncs them with the server in the background.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !needsApp(cmd) {
				return nil
			}
			return c.setup()
		},
	}
	root.SetOut(c.io)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "path to a YAML, TOML or JSON config file")
	flags.String("server-url", "", "base URL of the sync server")
	flags.String("api-key", "", "API key sent in X-API-Key")
	flags.String("user-id", "", "owner of local data")
	flags.String("db-path", "", "path to the local database file")
	flags.String("debug-addr", "", "listen address of the debug HTTP server (daemon only)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text or json")
	flags.String("log-file", "", "write logs to a rotating file instead of stderr")
	flags.Bool("auto-sync", true, "push the queue periodically (daemon only)")
	flags.BoolVar(&c.jsonOut, "json", false, "print JSON instead of tables or YAML")
	bindFlags(c.v, flags)

	root.AddCommand(
		c.addCommand(),
		c.updateCommand(),
		c.deleteCommand(),
		c.getCommand(),
		c.listCommand(),
		c.syncCommand(),
		c.pullCommand(),
		c.statusCommand(),
		c.queueCommand(),
		c.daemonCommand(),
		c.versionCommand(version),
	)

	return root
}

// needsApp reports whether cmd works on the local database.
func needsApp(cmd *cobra.Command) bool {
	for p := cmd; p != nil; p = p.Parent() {
		if p.Annotations[noAppAnnotation] != "" {
			return false
		}
		switch p.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for name, key := range flagKeys {
		// Lookup не вернет nil: все флаги объявлены выше
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
}

// setup loads configuration, opens logging and builds the App.
func (c *Cli) setup() error {
	if c.app != nil {
		return nil
	}

	cfg, err := config.LoadClient(c.v, c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closer, err := logging.New(cfg.Log, c.logOut)
	if err != nil {
		return err
	}

	a, err := c.newApp(cfg, logger)
	if err != nil {
		_ = closer.Close()
		return err
	}

	c.cfg = cfg
	c.logger = logger
	c.logCloser = closer
	c.app = a
	c.data = a.Data
	return nil
}

// Close releases the App and the log file. It is safe to call more than once.
func (c *Cli) Close() error {
	var errs []error
	if c.app != nil {
		errs = append(errs, c.app.Close())
		c.app = nil
	}
	if c.logCloser != nil {
		errs = append(errs, c.logCloser.Close())
		c.logCloser = nil
	}
	return errors.Join(errs...)
}
