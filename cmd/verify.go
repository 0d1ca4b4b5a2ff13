/*
Copyright © 2026 Glossopoeia
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glossopoeia/rewrite/rewriting/term"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Audit the structural invariants of the rule set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := term.NewContext()
		system, err := newSystem(ctx)
		if err != nil {
			return err
		}
		defer system.Close()

		system.Verify()
		fmt.Fprintf(os.Stdout, "ok: %d rules\n", len(system.Rules()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
