/*
Copyright © 2026 Glossopoeia
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rulesPath string

var rootCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Explore requirement rewrite systems",
	Long: `rewrite loads a requirement rule set from a YAML file, builds the
term rewriting system a generics constraint solver would build from it,
and lets you reduce terms to normal form, prune the completed system,
or audit its structural invariants.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rulesPath, "rules", "r", "", "rule set file (YAML)")
	rootCmd.MarkPersistentFlagRequired("rules")
}
