package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var symlinkCmd = &cobra.Command{
	Use:   "symlink <target> <remote-path>",
	Short: "Create a remote symlink",
	Long: `Create a symlink at <remote-path> pointing at <target>.

The link path is rooted under the configured CP code; the target is
sent as given.

Example:
  netstorage-cli symlink /12345/releases/v2 releases/current`,
	Args: cobra.ExactArgs(2),
	RunE: runSymlink,
}

func runSymlink(_ *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	cfg := client.Config()
	target := args[0]
	linkPath := remoteAbsPath(&cfg, args[1])

	if _, err := client.Netstorage().Symlink(context.Background(), target, linkPath); err != nil {
		return handleError(os.Stderr, err)
	}

	if !quiet && !jsonOutput {
		fmt.Printf("Linked %s -> %s\n", linkPath, target)
	}
	return nil
}
