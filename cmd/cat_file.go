package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"grit/internal/object"
	"grit/internal/repository"
	"grit/internal/store"
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file -p <object>",
	Short: "Print the payload of a stored object",
	Long: `Resolve an object by id (a unique prefix of at least 3 characters is
enough) and print its payload. Blob and commit payloads print verbatim;
trees are binary, use ls-tree for those.

The number of bytes printed is bounded by the size declared in the
object header, regardless of how much the stored file decompresses to.`,
	SilenceUsage: true,
	Args:         exactArgs(1),
	RunE:         runCatFile,
}

var prettyPrintFlag bool

func init() {
	rootCmd.AddCommand(catFileCmd)

	catFileCmd.Flags().BoolVarP(&prettyPrintFlag, "pretty", "p", false, "Pretty-print the object payload")
}

func runCatFile(cmd *cobra.Command, args []string) error {
	if !prettyPrintFlag {
		return fmt.Errorf("cat-file requires -p")
	}

	repoPath, err := repository.FindRoot()
	if err != nil {
		return err
	}

	obj, err := store.New(repoPath, store.WithLogger(logger)).Read(args[0])
	if err != nil {
		return err
	}
	defer obj.Close()

	if obj.Kind == object.KindTree {
		return fmt.Errorf("%s is a tree object, use ls-tree to print it", args[0])
	}

	if _, err := obj.WritePayload(cmd.OutOrStdout()); err != nil {
		return err
	}
	return nil
}
