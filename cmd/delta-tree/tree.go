package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RicardoDalcin/git-delta-tree/internal/branch"
	"github.com/RicardoDalcin/git-delta-tree/internal/changeset"
	"github.com/RicardoDalcin/git-delta-tree/internal/tree"
)

var flagFlat bool

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the changed files against the comparison branch",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()
		git := newClient()
		root := repoRoot()

		base, err := branch.NewResolver(git, logger).Resolve(ctx, root)
		if err != nil {
			return err
		}
		records, err := changeset.NewLoader(git, logger).Load(ctx, root, base)
		if err != nil {
			return err
		}

		mode := tree.Hierarchical
		if flagFlat {
			mode = tree.Flat
		}

		var node *tree.Node
		if len(records) == 0 && mode == tree.Hierarchical {
			paths, err := git.TrackedFiles(ctx, root, base)
			if err != nil {
				paths = nil
			}
			node = tree.BuildFallback(paths)
		} else {
			node = tree.Build(records, mode)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "comparing against %s\n", base)
		printNode(cmd, node, 0)
		return nil
	},
}

func init() {
	treeCmd.Flags().BoolVar(&flagFlat, "flat", false, "print a flat file list instead of a hierarchy")
	rootCmd.AddCommand(treeCmd)
}

func printNode(cmd *cobra.Command, n *tree.Node, depth int) {
	for _, child := range n.Children() {
		marker := " "
		switch child.Status {
		case changeset.StatusModified:
			marker = "M"
		case changeset.StatusAdded:
			marker = "A"
		case changeset.StatusDeleted:
			marker = "D"
		case changeset.StatusRenamed:
			marker = "R"
		case changeset.StatusUnknown:
			marker = "?"
		}
		name := child.Name
		if !child.IsLeaf {
			name += "/"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s%s\n", marker, strings.Repeat("  ", depth), name)
		printNode(cmd, child, depth+1)
	}
}
