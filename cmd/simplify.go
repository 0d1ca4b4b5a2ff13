/*
Copyright © 2026 Glossopoeia
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glossopoeia/rewrite/rewriting"
	"github.com/glossopoeia/rewrite/rewriting/term"
)

var traceSteps bool

var simplifyCmd = &cobra.Command{
	Use:   "simplify <term>...",
	Short: "Reduce terms to normal form",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := term.NewContext()
		system, err := newSystem(ctx)
		if err != nil {
			return err
		}
		defer system.Close()

		for _, arg := range args {
			t, err := term.ParseTerm(ctx, arg)
			if err != nil {
				return err
			}

			original := t.Clone()
			var path rewriting.RewritePath
			system.Simplify(t, &path)

			fmt.Fprintf(os.Stdout, "%s\n", t)
			if traceSteps && !path.IsEmpty() {
				path.Dump(os.Stdout, original, system)
				fmt.Fprintln(os.Stdout)
			}
		}
		return nil
	},
}

func init() {
	simplifyCmd.Flags().BoolVar(&traceSteps, "trace", false, "print the rewrite steps taken")
	rootCmd.AddCommand(simplifyCmd)
}
