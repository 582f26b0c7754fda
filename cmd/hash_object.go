package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grit/internal/object"
	"grit/internal/repository"
	"grit/internal/store"
)

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object <filepath>",
	Short: "Compute object hash and optionally store a blob from a file",
	Long: `Compute the object id (SHA-1 over "blob <size>\0<content>") for a file.
Optionally write the resulting blob into the object store.

Examples:
  # Compute hash without storing
  grit hash-object myfile.txt

  # Compute hash and store in .grit/objects
  grit hash-object -w myfile.txt`,
	SilenceUsage: true,
	Args:         exactArgs(1),
	RunE:         runHashObject,
}

var writeFlag bool

func init() {
	rootCmd.AddCommand(hashObjectCmd)

	hashObjectCmd.Flags().BoolVarP(&writeFlag, "write", "w", false, "Write the object into the object store")
}

// exactArgs validates command receives exactly n positional arguments.
// enables usage printing in case of error
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command requires exactly %d argument(s), received %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

// runHashObject streams the file through the object encoding, printing
// the id; with -w the same single pass also publishes the blob.
func runHashObject(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", args[0], err)
	}

	var id string
	if writeFlag {
		repoPath, err := repository.FindRoot()
		if err != nil {
			return err
		}
		id, err = store.New(repoPath, store.WithLogger(logger)).Write(object.KindBlob, info.Size(), file)
		if err != nil {
			return fmt.Errorf("failed to store object: %w", err)
		}
	} else {
		id, err = store.Digest(object.KindBlob, info.Size(), file)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}
