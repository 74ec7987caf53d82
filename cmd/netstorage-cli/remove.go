package main

import (
	"context"
	"os"

	"github.com/mailonline/netstorage-go/clientcli"
	"github.com/spf13/cobra"
)

var removeDir bool

var removeCmd = &cobra.Command{
	Use:     "rm <remote-path> [remote-path...]",
	Aliases: []string{"delete"},
	Short:   "Remove files or directories from NetStorage",
	Long: `Remove one or more remote paths.

Files are removed with the delete action; pass --dir to remove empty
directories with rmdir instead. Removal continues past individual
failures and reports each path separately.

Examples:
  netstorage-cli rm path/file.txt
  netstorage-cli rm old/a.txt old/b.txt old/c.txt
  netstorage-cli rm --dir old/empty-dir`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemove,
}

var rmdirCmd = &cobra.Command{
	Use:   "rmdir <remote-path> [remote-path...]",
	Short: "Remove empty remote directories",
	Long: `Remove one or more empty remote directories.

Shorthand for 'rm --dir'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		removeDir = true
		return runRemove(cmd, args)
	},
}

func init() {
	removeCmd.Flags().BoolVar(&removeDir, "dir", false, "remove empty directories instead of files")
}

func runRemove(_ *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	opts := clientcli.RemoveOptions{
		Paths: args,
		Dir:   removeDir,
	}

	results, err := client.Remove(context.Background(), opts)
	if err != nil {
		return handleError(os.Stderr, err)
	}

	formatter := getFormatter()
	if err := formatter.FormatRemove(os.Stdout, results); err != nil {
		return err
	}

	// Return error if any removals failed
	if clientcli.HasRemoveErrors(results) {
		return &exitError{code: 1}
	}

	return nil
}
