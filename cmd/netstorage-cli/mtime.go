package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var mtimeCmd = &cobra.Command{
	Use:   "mtime <remote-path> <time>",
	Short: "Set the modification time of a remote path",
	Long: `Set the modification time of a remote file or directory.

<time> is either Unix seconds or an RFC 3339 timestamp, or "now".

Examples:
  netstorage-cli mtime docs/file.txt now
  netstorage-cli mtime docs/file.txt 1700000000
  netstorage-cli mtime docs/file.txt 2026-08-30T12:00:00Z`,
	Args: cobra.ExactArgs(2),
	RunE: runMtime,
}

func runMtime(_ *cobra.Command, args []string) error {
	t, err := parseTimeArg(args[1])
	if err != nil {
		return err
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	cfg := client.Config()
	path := remoteAbsPath(&cfg, args[0])

	if _, err := client.Netstorage().Mtime(context.Background(), path, t); err != nil {
		return handleError(os.Stderr, err)
	}

	if !quiet && !jsonOutput {
		fmt.Printf("Set mtime of %s to %d\n", path, t.Unix())
	}
	return nil
}

func parseTimeArg(s string) (time.Time, error) {
	if s == "now" {
		return time.Now(), nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use unix seconds, RFC 3339, or \"now\"", s)
	}
	return t, nil
}
