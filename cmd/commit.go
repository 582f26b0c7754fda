package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"grit/internal/refs"
	"grit/internal/repository"
)

var commitCmd = &cobra.Command{
	Use:   "commit -m <message>",
	Short: "Commit the working directory to the current branch",
	Long: `Snapshot the working directory, create a commit whose parent is the
current branch head, and advance the branch to the new commit. HEAD
must reference a branch with at least one commit.`,
	SilenceUsage: true,
	Args:         exactArgs(0),
	RunE:         runCommit,
}

var messageFlag string

func init() {
	rootCmd.AddCommand(commitCmd)

	commitCmd.Flags().StringVarP(&messageFlag, "message", "m", "", "Commit message")
	commitCmd.MarkFlagRequired("message")
}

func runCommit(cmd *cobra.Command, args []string) error {
	repoPath, err := repository.FindRoot()
	if err != nil {
		return err
	}

	treeID, err := buildWorkTree(repoPath)
	if err != nil {
		return err
	}

	branch, err := refs.CurrentBranch(repoPath)
	if err != nil {
		return err
	}

	parent, err := refs.Read(repoPath, branch)
	if err != nil {
		return err
	}

	commitID, err := assembleCommit(repoPath, treeID, []string{parent}, messageFlag)
	if err != nil {
		return err
	}

	if err := refs.Update(repoPath, branch, commitID); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), commitID)
	return nil
}
