package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	netstorage "github.com/mailonline/netstorage-go"
	"github.com/spf13/cobra"
)

var mkdirParents bool

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <remote-path>",
	Short: "Create a remote directory",
	Long: `Create a remote directory.

With --parents, missing ancestor directories are created too and an
already-existing directory is not an error.

Examples:
  netstorage-cli mkdir docs
  netstorage-cli mkdir -p docs/2026/reports`,
	Args: cobra.ExactArgs(1),
	RunE: runMkdir,
}

func init() {
	mkdirCmd.Flags().BoolVarP(&mkdirParents, "parents", "p", false, "create ancestors, no error if existing")
}

func runMkdir(_ *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	cfg := client.Config()
	ns := client.Netstorage()
	path := remoteAbsPath(&cfg, args[0])

	if mkdirParents {
		if err := ns.EnsureAncestors(ctx, cfg.CPCode, args[0]); err != nil {
			return handleError(os.Stderr, err)
		}
		_, err = ns.Mkdir(ctx, path)
		var apiErr *netstorage.APIError
		if errors.As(err, &apiErr) && apiErr.IsConflict() {
			err = nil
		}
	} else {
		_, err = ns.Mkdir(ctx, path)
	}
	if err != nil {
		return handleError(os.Stderr, err)
	}

	if !quiet && !jsonOutput {
		fmt.Printf("Created %s\n", path)
	}
	return nil
}
