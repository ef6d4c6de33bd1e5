package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/RicardoDalcin/git-delta-tree/internal/git/client"
	"github.com/RicardoDalcin/git-delta-tree/internal/logging"
)

var (
	flagRepo    string
	flagGitBin  string
	flagBackend string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "delta-tree",
	Short: "Inspect files changed against the inferred main branch",
	Long: `delta-tree lists the files that differ between the current branch and the
repository's main branch equivalent, as a folder hierarchy or a flat list,
and prints branch-side file content for diffing.`,
	SilenceUsage: true,
}

// Execute runs the CLI. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagRepo, "repo", "C", "", "repository path (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&flagGitBin, "git-bin", "", "git executable to invoke")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "exec", "git backend: exec or gogit")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func repoRoot() string {
	if flagRepo != "" {
		return flagRepo
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func newClient() client.Client {
	if flagBackend == "gogit" {
		return client.NewGoGitClient()
	}
	return client.NewExecClient(flagGitBin)
}

func newLogger() logging.Logger {
	level := "warn"
	if flagVerbose {
		level = "debug"
	}
	return logging.New(os.Stderr, "text", level)
}
