package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/journeyc/compiler/internal/errs"
	"github.com/journeyc/compiler/internal/selectorcat"
)

func newCatalogCommand(opts *RootOptions) *cobra.Command {
	var attr string
	var out string

	cmd := &cobra.Command{
		Use:   "catalog <app-src-dir>",
		Short: "Scan application source for test-ID occurrences and CSS debt, writing the selector catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scanOpts := selectorcat.ScanOptions{}
			if attr != "" {
				scanOpts.Attribute = attr
			}
			cat, err := selectorcat.Scan(args[0], scanOpts)
			if err != nil {
				return errs.WrapExitError(errs.ExitCommandError, "scanning source", err)
			}

			if out != "" {
				if err := selectorcat.Save(cat, out); err != nil {
					return errs.WrapExitError(errs.ExitCommandError, "writing catalog", err)
				}
			}

			fmt.Printf("scanned %d test id(s), %d css-debt entr(y/ies)\n", len(cat.TestIDs), len(cat.CSSDebt))
			if len(cat.CSSDebt) > 0 {
				fmt.Println(selectorcat.RenderCSSDebtMarkdown(cat))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&attr, "attr", "", "test-id attribute name (default data-testid)")
	cmd.Flags().StringVar(&out, "out", "", "path to write the selector-catalog JSON (optional)")
	return cmd
}
