// Package cmd provides the entrypoint for the webtask cli.
package cmd

import (
	"errors"
	"io"
	"log/slog"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/ramaditya/webtask/internal/config"
	"github.com/ramaditya/webtask/internal/controllers/aws"
	"github.com/ramaditya/webtask/internal/hiring"
	"github.com/ramaditya/webtask/internal/input"
	"github.com/ramaditya/webtask/internal/models"
	"github.com/ramaditya/webtask/internal/runtime"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultConfigFilePath = "config.yaml"
	skipStartupEnv        = "SKIP_STARTUP"
)

var (
	configFilePath string
	logger         *slog.Logger
)

type boundEnvVar[T argType] struct {
	Name, Description string
	Env, Short        *string
	Hidden            bool
}

// New returns the root command for webtask.
func New() *cobra.Command {
	return newCommand(os.Args[1:])
}

func newCommand(args []string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "webtask",
		Short:        "Request a hiring webhook and submit the SQL query matching the registration number",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				AddSource: config.Global.Logging.CallerTrace,
				Level:     slog.LevelWarn - slog.Level(config.Global.Logging.Verbosity*4),
			}))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if skipStartup() {
				logger.Info("startup skipped")
				return nil
			}
			return run(cmd)
		},
	}

	// Root command flags
	configFilePath = lookupConfigFilePath(args)
	cmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", configFilePath, "path to the configuration file")

	// Configuration loading & defaults
	config.Reset()
	if err := errors.Join(
		config.LoadFromFile(configFilePath),
		config.SetDefaults(),
		config.LoadDotEnv(".env"),
	); err != nil {
		panic(err)
	}

	// Dynamic flags
	setupDynamicFlags(cmd)

	return cmd
}

func run(cmd *cobra.Command) error {
	ctx := cmd.Context()
	provider, err := input.NewProvider(config.Profile.Source, input.Options{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		Static: models.WebhookRequest{
			Name:  config.Profile.Name,
			RegNo: config.Profile.RegNo,
			Email: config.Profile.Email,
		},
		SSMKey: config.Profile.SSMKey,
		NewGetter: func() (input.SecretGetter, error) {
			ctl, err := aws.NewController(
				aws.WithContext(ctx),
				aws.WithLogger(logger.With("component", "aws-controller")))
			if err != nil {
				return nil, err
			}
			return ctl, nil
		},
		Logger: logger.With("component", "profile"),
	})
	if err != nil {
		return pkgerrors.Wrap(err, "failed to setup profile source")
	}

	logger.Debug("creating hiring client...", slog.String("endpoint", config.Hiring.Endpoint))
	client := hiring.NewClient(
		hiring.WithEndpoint(config.Hiring.Endpoint),
		hiring.WithTimeout(config.Hiring.Timeout),
		hiring.WithLogger(logger.With("component", "hiring-client")))

	rt := runtime.NewRuntime(provider, client,
		runtime.WithOutput(cmd.OutOrStdout()),
		runtime.WithLogger(logger.With("component", "runtime")))
	return rt.Run(ctx)
}

// skipStartup reports whether the flow is disabled. The environment variable counts as set
// whatever its value, including empty.
func skipStartup() bool {
	if config.Global.SkipStartup {
		return true
	}
	_, found := os.LookupEnv(skipStartupEnv)
	return found
}

// lookupConfigFilePath extracts --config ahead of flag parsing, since the file provides the flag defaults.
func lookupConfigFilePath(args []string) string {
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.ParseErrorsAllowlist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	path := fs.StringP("config", "c", defaultConfigFilePath, "")
	_ = fs.Parse(args)
	return *path
}

func setupDynamicFlags(cmd *cobra.Command) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(replacer)

	bindEnvMap(cmd, envMapString)
	bindEnvMap(cmd, envMapBool)
	bindEnvMap(cmd, envMapCount)
	bindEnvMap(cmd, envMapDuration)
}
