package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RicardoDalcin/git-delta-tree/internal/branch"
)

var flagRef string

var showCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Print a file's content at the comparison branch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		git := newClient()
		root := repoRoot()

		ref := flagRef
		if ref == "" {
			base, err := branch.NewResolver(git, newLogger()).Resolve(ctx, root)
			if err != nil {
				return err
			}
			ref = base
		}
		content, err := git.ShowFile(ctx, root, ref, args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&flagRef, "ref", "", "reference to read from (default: the comparison branch)")
	rootCmd.AddCommand(showCmd)
}
