package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statCmd = &cobra.Command{
	Use:   "stat <remote-path>",
	Short: "Show metadata for a remote path",
	Long: `Show the metadata of a single remote file, directory or symlink.

Examples:
  netstorage-cli stat path/file.txt
  netstorage-cli stat --json path/file.txt | jq .entry.size_bytes`,
	Args: cobra.ExactArgs(1),
	RunE: runStat,
}

var duCmd = &cobra.Command{
	Use:   "du [remote-path]",
	Short: "Show disk usage of a remote directory",
	Long: `Show the file count and total byte size under a remote directory.

Without an argument, reports usage for the root of the configured
CP code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDU,
}

var existsCmd = &cobra.Command{
	Use:   "exists <remote-path>",
	Short: "Check whether a remote path exists",
	Long: `Check whether a remote path exists.

Prints "true" or "false" and exits 0 either way; exits nonzero only
when the check itself fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runExists,
}

func runStat(_ *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.Stat(context.Background(), args[0])
	if err != nil {
		return handleError(os.Stderr, err)
	}

	formatter := getFormatter()
	return formatter.FormatStat(os.Stdout, result)
}

func runDU(_ *cobra.Command, args []string) error {
	remotePath := ""
	if len(args) > 0 {
		remotePath = args[0]
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.DU(context.Background(), remotePath)
	if err != nil {
		return handleError(os.Stderr, err)
	}

	formatter := getFormatter()
	return formatter.FormatDU(os.Stdout, result)
}

func runExists(_ *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	cfg := client.Config()
	exists, err := client.Netstorage().FileExists(
		context.Background(),
		remoteAbsPath(&cfg, args[0]),
	)
	if err != nil {
		return handleError(os.Stderr, err)
	}

	fmt.Println(exists)
	return nil
}
