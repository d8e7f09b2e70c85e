package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/nestplate/pkg/nestplate"
)

func newPlaceholdersCmd(root *rootOptions) *cobra.Command {
	var keysOnly bool
	cmd := &cobra.Command{
		Use:   "placeholders [message]",
		Short: "List the placeholders of a message without resolving it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := messageArg(cmd, args)
			if err != nil {
				return err
			}
			tmplOpts, err := root.templateOptions(cmd)
			if err != nil {
				return err
			}
			tmpl, err := nestplate.New(message, nil, tmplOpts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if keysOnly {
				for _, k := range tmpl.Keys() {
					if _, err := fmt.Fprintln(out, k); err != nil {
						return err
					}
				}
				return nil
			}
			for _, p := range tmpl.Placeholders() {
				keys := "(nested)"
				if p.Leaf {
					keys = strings.Join(p.Candidates, ",")
				}
				if _, err := fmt.Fprintf(out, "%d\t%s%s\t%s\n", p.Offset, strings.Repeat("  ", p.Depth), p.Token, keys); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&keysOnly, "keys", false, "print only the distinct candidate keys")
	return cmd
}
