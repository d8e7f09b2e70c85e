package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/nestplate/pkg/nestplate/catalog"
)

func newCatalogCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage localized message formats",
	}
	cmd.AddCommand(newCatalogImportCmd(), newCatalogListCmd(), newCatalogWatchCmd(root))
	return cmd
}

func newCatalogImportCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "import <file.yaml>...",
		Short: "Import message formats from YAML files into a SQLite catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := catalog.NewSQLiteStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			total := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				n, err := catalog.LoadYAML(store, data)
				total += n
				if err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d message formats into %s\n", total, dbPath)
			return err
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "nestplate.db", "SQLite catalog path")
	return cmd
}

func newCatalogListCmd() *cobra.Command {
	var (
		dbPath string
		locale string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List message formats, from the built-in catalog unless --db is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			locales := []string{locale}
			if locale == "" {
				if locales, err = store.Locales(); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, l := range locales {
				entries, err := store.List(l)
				if err != nil {
					return err
				}
				for _, e := range entries {
					if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", e.Locale, e.Key, e.Format); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite catalog path")
	cmd.Flags().StringVar(&locale, "locale", "", "only this locale")
	return cmd
}

func newCatalogWatchCmd(root *rootOptions) *cobra.Command {
	var (
		dbPath   string
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Import a directory of locale files and re-import them on change until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := catalog.NewSQLiteStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			w, err := catalog.Watch(store, args[0],
				catalog.WithDebounce(debounce),
				catalog.WithWatchLogger(root.logger(cmd)),
				catalog.WithOnReload(func(n int, err error) {
					if err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "reload %s: %v\n", args[0], err)
						return
					}
					fmt.Fprintf(out, "imported %d message formats into %s\n", n, dbPath)
				}),
			)
			if err != nil {
				return err
			}
			defer w.Close()

			<-cmd.Context().Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "nestplate.db", "SQLite catalog path")
	cmd.Flags().DurationVar(&debounce, "debounce", catalog.DefaultDebounce, "quiet period before re-importing")
	return cmd
}
