package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alhinc/calcsales/internal/buildinfo"
	"github.com/alhinc/calcsales/internal/config"
	"github.com/alhinc/calcsales/internal/logger"
	"github.com/alhinc/calcsales/internal/sales"
)

// envPrefix prefixes environment overrides, e.g. CALCSALES_LOG_LEVEL.
const envPrefix = "CALCSALES"

// NewRootCommand creates the root CLI command with all subcommands registered.
// The root command itself aggregates the directory given as its only argument.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:     "calcsales <directory>",
		Short:   "Aggregate daily sales files into per-code totals",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Args:          exactlyOneDirectory,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd, v, args[0])
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "run configuration file (calcsales.yaml)")
	flags.String("mode", config.ModeBranch, "built-in tables: branch or branch-commodity")
	flags.String("log-level", "warn", "log level: debug, info, warn, error or disabled")
	flags.Bool("log-pretty", false, "human-readable logs instead of JSON")
	if err := v.BindPFlags(flags); err != nil {
		panic(fmt.Sprintf("binding flags: %v", err))
	}

	rootCmd.AddCommand(newInitCommand(v))

	return rootCmd
}

func exactlyOneDirectory(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &sales.Error{Kind: sales.KindUnknown, Err: fmt.Errorf("expected 1 directory argument, got %d", len(args))}
	}
	return nil
}

func runCalc(cmd *cobra.Command, v *viper.Viper, dir string) error {
	log := logger.New(cmd.ErrOrStderr(), v.GetString("log-level"), v.GetBool("log-pretty"))

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	svc, err := sales.NewService(cfg, log)
	if err != nil {
		return err
	}

	_, err = svc.Run(dir)
	return err
}

// loadConfig reads --config when given, otherwise the built-in --mode tables.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	if path := v.GetString("config"); path != "" {
		return config.Load(path)
	}
	return config.ForMode(v.GetString("mode"))
}
