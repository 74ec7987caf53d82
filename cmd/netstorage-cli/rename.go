package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:     "rename <remote-path> <new-remote-path>",
	Aliases: []string{"mv"},
	Short:   "Rename a remote path",
	Long: `Rename a remote file or directory.

Both paths are rooted under the configured CP code.

Examples:
  netstorage-cli rename docs/draft.txt docs/final.txt
  netstorage-cli mv images/old images/new`,
	Args: cobra.ExactArgs(2),
	RunE: runRename,
}

func runRename(_ *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	cfg := client.Config()
	from := remoteAbsPath(&cfg, args[0])
	to := remoteAbsPath(&cfg, args[1])

	if _, err := client.Netstorage().Rename(context.Background(), from, to); err != nil {
		return handleError(os.Stderr, err)
	}

	if !quiet && !jsonOutput {
		fmt.Printf("Renamed %s -> %s\n", from, to)
	}
	return nil
}
