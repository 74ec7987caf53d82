package main

import (
	"context"
	"os"

	"github.com/mailonline/netstorage-go/clientcli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list [remote-path]",
	Aliases: []string{"ls"},
	Short:   "List a remote directory",
	Long: `List the entries of a remote directory.

Without an argument, lists the root of the configured CP code.

Examples:
  netstorage-cli list
  netstorage-cli list images/
  netstorage-cli list --json docs/ | jq '.entries[].name'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(_ *cobra.Command, args []string) error {
	remotePath := ""
	if len(args) > 0 {
		remotePath = args[0]
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.List(context.Background(), clientcli.ListOptions{
		RemotePath: remotePath,
	})
	if err != nil {
		return handleError(os.Stderr, err)
	}

	formatter := getFormatter()
	return formatter.FormatList(os.Stdout, result)
}
