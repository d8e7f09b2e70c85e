package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/nestplate/pkg/nestplate"
	"github.com/randalmurphal/nestplate/pkg/nestplate/config"
)

type resolveOptions struct {
	valuesPath string
	sets       []string
	substitute string
	maxSteps   int
	stats      bool
}

func newResolveCmd(root *rootOptions) *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve [message]",
		Short: "Resolve a message, read from stdin when no argument is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, root, opts, args)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&opts.valuesPath, "values", "", "values file (yaml or json)")
	fs.StringArrayVar(&opts.sets, "set", nil, "value as key=value, repeatable; overrides --values")
	fs.StringVar(&opts.substitute, "substitute", "", "replacement for unresolved placeholders")
	fs.IntVar(&opts.maxSteps, "max-steps", nestplate.DefaultMaxSteps, "maximum substitutions that reintroduce placeholders, 0 for no limit")
	fs.BoolVar(&opts.stats, "stats", false, "print resolution statistics to stderr")
	return cmd
}

func runResolve(cmd *cobra.Command, root *rootOptions, opts resolveOptions, args []string) error {
	message, err := messageArg(cmd, args)
	if err != nil {
		return err
	}
	vals, err := loadValues(opts.valuesPath, opts.sets)
	if err != nil {
		return err
	}

	tmplOpts, err := root.templateOptions(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("substitute") {
		tmplOpts = append(tmplOpts, nestplate.WithSubstitute(opts.substitute))
	}
	if cmd.Flags().Changed("max-steps") {
		tmplOpts = append(tmplOpts, nestplate.WithMaxSteps(opts.maxSteps))
	}

	tmpl, err := nestplate.New(message, vals, tmplOpts...)
	if err != nil {
		return err
	}

	res := tmpl.ResolveDetailed(cmd.Context(), nil)
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), res.Output); err != nil {
		return err
	}
	if opts.stats {
		s := res.Stats
		_, err := fmt.Fprintf(cmd.ErrOrStderr(),
			"substitutions=%d unresolved=%d guard_trips=%d nested=%d steps=%d reopened=%d limited=%t\n",
			s.Substitutions, s.Unresolved, s.GuardTrips, s.Nested, s.Steps, s.Reopened, s.Limited)
		return err
	}
	return nil
}

// messageArg returns the message argument, or stdin without its final
// newline when no argument is given.
func messageArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read message from stdin: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

// loadValues reads the values file and applies key=value overrides.
func loadValues(path string, sets []string) (map[string]any, error) {
	vals := make(map[string]any)
	if path != "" {
		cfg, err := config.FromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load values %s: %w", path, err)
		}
		for k, v := range cfg.Raw() {
			vals[k] = v
		}
	}
	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q: want key=value", kv)
		}
		vals[key] = value
	}
	return vals, nil
}
