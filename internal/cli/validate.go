package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/nestplate/pkg/nestplate/catalog"
	"github.com/randalmurphal/nestplate/pkg/nestplate/validate"
)

// errValidationFailed is returned when the value does not satisfy the rule,
// so the process exits non-zero after printing the message.
var errValidationFailed = errors.New("validation failed")

type validateOptions struct {
	rule      string
	rulesPath string
	ruleName  string
	value     string
	min       string
	max       string
	pattern   string
	title     string
	message   string
	locale    string
	dbPath    string
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a value against a rule and print the failure message",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, root, opts)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&opts.rule, "rule", "", "rule kind: range, regex or datetime_range")
	fs.StringVar(&opts.rulesPath, "rules", "", "rules file (yaml) with named rules")
	fs.StringVar(&opts.ruleName, "name", "", "rule name in --rules")
	fs.StringVar(&opts.value, "value", "", "value to check")
	fs.StringVar(&opts.min, "min", "", "lower bound")
	fs.StringVar(&opts.max, "max", "", "upper bound")
	fs.StringVar(&opts.pattern, "pattern", "", "regular expression")
	fs.StringVar(&opts.title, "title", "", "field title used in the message")
	fs.StringVar(&opts.message, "message", "", "message format overriding the catalog")
	fs.StringVar(&opts.locale, "locale", "", "message locale or Accept-Language value")
	fs.StringVar(&opts.dbPath, "catalog", "", "SQLite catalog path (default: built-in messages)")
	return cmd
}

func runValidate(cmd *cobra.Command, root *rootOptions, opts validateOptions) error {
	rule, err := buildRule(cmd, opts)
	if err != nil {
		return err
	}

	store, err := openStore(opts.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	logger := root.logger(cmd)
	cat, err := catalog.New(store, catalog.WithLogger(logger))
	if err != nil {
		return err
	}
	tmplOpts, err := root.templateOptions(cmd)
	if err != nil {
		return err
	}

	v, err := validate.New(
		validate.WithCatalog(cat),
		validate.WithLocale(opts.locale),
		validate.WithTemplateOptions(tmplOpts...),
		validate.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	res := v.Check(cmd.Context(), opts.value, rule, nil)
	if res.Err != nil {
		return res.Err
	}
	if res.Valid {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "valid")
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), res.Message); err != nil {
		return err
	}
	return errValidationFailed
}

// buildRule takes the named rule from --rules when given, then applies
// the individual flags that were set.
func buildRule(cmd *cobra.Command, opts validateOptions) (validate.Rule, error) {
	var rule validate.Rule
	if opts.rulesPath != "" {
		data, err := os.ReadFile(opts.rulesPath)
		if err != nil {
			return rule, fmt.Errorf("read rules: %w", err)
		}
		rules, err := validate.ParseRules(data)
		if err != nil {
			return rule, err
		}
		r, ok := rules[opts.ruleName]
		if !ok {
			return rule, fmt.Errorf("rule %q not found in %s", opts.ruleName, opts.rulesPath)
		}
		rule = r
	}

	flags := cmd.Flags()
	if flags.Changed("rule") {
		kind, err := validate.ParseKind(opts.rule)
		if err != nil {
			return rule, err
		}
		rule.Kind = kind
	}
	if rule.Kind == validate.KindUnknown {
		return rule, errors.New("a rule kind is required: use --rule or --rules with --name")
	}
	if flags.Changed("min") {
		rule.Min = opts.min
	}
	if flags.Changed("max") {
		rule.Max = opts.max
	}
	if flags.Changed("pattern") {
		rule.Pattern = opts.pattern
	}
	if flags.Changed("title") {
		rule.Title = opts.title
	}
	if flags.Changed("message") {
		rule.Message = opts.message
	}
	return rule, nil
}

// openStore opens the SQLite catalog at path, or the built-in defaults.
func openStore(path string) (catalog.Store, error) {
	if path == "" {
		return catalog.Defaults()
	}
	return catalog.NewSQLiteStore(path)
}
