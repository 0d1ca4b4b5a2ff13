/*
Copyright © 2026 Glossopoeia
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/glossopoeia/rewrite/rewriting/term"
)

var reduceFirst bool

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the rule table and homotopy generators",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := term.NewContext()
		system, err := newSystem(ctx)
		if err != nil {
			return err
		}
		defer system.Close()

		if reduceFirst {
			system.SimplifyRewriteSystem()
		}
		system.Dump(os.Stdout)
		return nil
	},
}

func init() {
	dumpCmd.Flags().BoolVar(&reduceFirst, "reduce", false, "prune subsumed rules and reduce right hand sides first")
	rootCmd.AddCommand(dumpCmd)
}
