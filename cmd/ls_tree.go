package cmd

import (
	"bufio"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"grit/internal/object"
	"grit/internal/repository"
	"grit/internal/store"
)

var lsTreeCmd = &cobra.Command{
	Use:   "ls-tree <tree>",
	Short: "List the immediate entries of a tree object",
	Long: `Print one line per entry of a tree object: mode, referenced object
kind, id and name. With --name-only, print just the names.`,
	SilenceUsage: true,
	Args:         exactArgs(1),
	RunE:         runLsTree,
}

var nameOnlyFlag bool

func init() {
	rootCmd.AddCommand(lsTreeCmd)

	lsTreeCmd.Flags().BoolVar(&nameOnlyFlag, "name-only", false, "List only entry names")
}

func runLsTree(cmd *cobra.Command, args []string) error {
	repoPath, err := repository.FindRoot()
	if err != nil {
		return err
	}

	obj, err := store.New(repoPath, store.WithLogger(logger)).Read(args[0])
	if err != nil {
		return err
	}
	defer obj.Close()

	if obj.Kind != object.KindTree {
		return fmt.Errorf("%s is not a tree object", args[0])
	}

	entries, err := object.ReadEntries(bufio.NewReader(obj.Payload()))
	if err != nil {
		return err
	}

	dirName := color.New(color.FgBlue).SprintFunc()
	out := cmd.OutOrStdout()
	for _, entry := range entries {
		name := entry.Name
		if entry.IsDir() {
			name = dirName(name)
		}

		if nameOnlyFlag {
			fmt.Fprintln(out, name)
			continue
		}

		kind, err := object.KindForMode(entry.Mode)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%06s %s %s    %s\n", entry.Mode, kind, entry.ID, name)
	}
	return nil
}
