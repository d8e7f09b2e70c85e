// Package cli implements the nestplate command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/nestplate/pkg/nestplate"
	"github.com/randalmurphal/nestplate/pkg/nestplate/config"
)

// resolverSection is the config section read when present; otherwise the
// top level of the config file holds the resolver keys.
const resolverSection = "resolver"

type rootOptions struct {
	configPath string
	verbose    bool
}

// Execute runs the nestplate root command. Long-running subcommands stop
// when ctx is done.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "nestplate",
		Short:         "Resolve nested {:placeholder} templates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	fs := cmd.PersistentFlags()
	fs.StringVar(&opts.configPath, "config", "", "resolver config file (yaml or json)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to stderr")

	cmd.AddCommand(
		newResolveCmd(opts),
		newPlaceholdersCmd(opts),
		newValidateCmd(opts),
		newCatalogCmd(opts),
	)
	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	if !o.verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// config loads the resolver section of the config file, when given, with
// NESTPLATE_* environment variables applied over it.
func (o *rootOptions) config() (config.Config, error) {
	cfg := config.New(nil)
	if path := strings.TrimSpace(o.configPath); path != "" {
		file, err := config.FromFile(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = file
		if file.Has(resolverSection) {
			cfg = file.Sub(resolverSection)
		}
	}

	overrides, err := envConfig(os.Environ())
	if err != nil {
		return config.Config{}, err
	}
	return cfg.Merge(overrides), nil
}

// templateOptions returns the resolver options from config() plus logging
// when --verbose is set.
func (o *rootOptions) templateOptions(cmd *cobra.Command) ([]nestplate.Option, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	opts := nestplate.OptionsFromConfig(cfg)
	if logger := o.logger(cmd); logger != nil {
		opts = append(opts, nestplate.WithLogger(logger))
	}
	return opts, nil
}
