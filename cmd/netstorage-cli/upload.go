package main

import (
	"context"
	"os"

	"github.com/mailonline/netstorage-go/clientcli"
	"github.com/spf13/cobra"
)

var uploadRecursive bool

var uploadCmd = &cobra.Command{
	Use:   "upload <local-path> <remote-path>",
	Short: "Upload files to NetStorage",
	Long: `Upload files to NetStorage.

Missing ancestor directories on the remote side are created first,
so the target path never has to exist in advance.

Examples:
  netstorage-cli upload ./file.txt path/file.txt
  netstorage-cli upload -r ./images/ media/images/`,
	Args: cobra.ExactArgs(2),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().BoolVarP(&uploadRecursive, "recursive", "r", false, "upload directory recursively")
}

func runUpload(_ *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	opts := clientcli.UploadOptions{
		LocalPath:  args[0],
		RemotePath: args[1],
		Recursive:  uploadRecursive,
	}

	results, err := client.Upload(context.Background(), opts)
	if err != nil {
		return handleError(os.Stderr, err)
	}

	formatter := getFormatter()
	if err := formatter.FormatUpload(os.Stdout, results); err != nil {
		return err
	}

	// Return error if any uploads failed
	for i := range results {
		if results[i].Err != nil {
			return &exitError{code: 1}
		}
	}

	return nil
}
