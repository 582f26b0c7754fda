package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"grit/internal/repository"
	"grit/internal/store"
	"grit/internal/worktree"
)

var writeTreeCmd = &cobra.Command{
	Use:   "write-tree",
	Short: "Snapshot the working directory as a tree object",
	Long: `Recursively persist the working directory: every file becomes a blob,
every non-empty directory a tree, and the root tree id is printed. Empty
directories contribute nothing and are omitted. Two runs over identical
contents always print the same id.`,
	SilenceUsage: true,
	Args:         exactArgs(0),
	RunE:         runWriteTree,
}

func init() {
	rootCmd.AddCommand(writeTreeCmd)
}

func runWriteTree(cmd *cobra.Command, args []string) error {
	repoPath, err := repository.FindRoot()
	if err != nil {
		return err
	}

	id, err := buildWorkTree(repoPath)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

// buildWorkTree persists the repository working directory and returns
// the root tree id, erroring when the tree is empty.
func buildWorkTree(repoPath string) (string, error) {
	objectStore := store.New(repoPath, store.WithLogger(logger))
	builder := worktree.NewBuilder(objectStore, worktree.NewWalker(), worktree.WithLogger(logger))

	id, err := builder.Build(repoPath)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("working tree is empty, nothing to snapshot")
	}
	return id, nil
}
