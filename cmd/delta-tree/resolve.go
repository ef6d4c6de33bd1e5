package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RicardoDalcin/git-delta-tree/internal/branch"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the inferred comparison branch",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := branch.NewResolver(newClient(), newLogger()).Resolve(cmd.Context(), repoRoot())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), base)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
