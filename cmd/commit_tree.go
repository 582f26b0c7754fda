package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"grit/internal/commit"
	"grit/internal/config"
	"grit/internal/repository"
	"grit/internal/store"
)

var commitTreeCmd = &cobra.Command{
	Use:   "commit-tree -m <message> [-p <parent>] <tree>",
	Short: "Create a commit object referencing a tree",
	Long: `Assemble a commit object from an explicit tree id, an optional parent
commit id and a message, and print the resulting commit id. Author and
committer come from the user config (user.name / user.email).`,
	SilenceUsage: true,
	Args:         exactArgs(1),
	RunE:         runCommitTree,
}

var (
	commitMessageFlag string
	parentFlag        string
)

func init() {
	rootCmd.AddCommand(commitTreeCmd)

	commitTreeCmd.Flags().StringVarP(&commitMessageFlag, "message", "m", "", "Commit message")
	commitTreeCmd.Flags().StringVarP(&parentFlag, "parent", "p", "", "Parent commit id")
	commitTreeCmd.MarkFlagRequired("message")
}

func runCommitTree(cmd *cobra.Command, args []string) error {
	repoPath, err := repository.FindRoot()
	if err != nil {
		return err
	}

	var parents []string
	if parentFlag != "" {
		parents = append(parents, parentFlag)
	}

	id, err := assembleCommit(repoPath, args[0], parents, commitMessageFlag)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

// assembleCommit loads the configured identity, stamps the current
// local time and persists a commit object referencing treeID.
func assembleCommit(repoPath, treeID string, parents []string, message string) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	author, err := cfg.Identity()
	if err != nil {
		return "", err
	}

	c := &commit.Commit{
		Tree:    treeID,
		Parents: parents,
		Message: message,
		Author:  author,
		When:    time.Now(),
	}
	return c.Write(store.New(repoPath, store.WithLogger(logger)))
}
