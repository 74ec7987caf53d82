// Package clientcli provides local-file transfer helpers and profile
// configuration on top of the netstorage client, for use by the CLI.
//
// It maps local files and directories onto remote NetStorage paths:
// uploads materialize missing remote directories first, downloads are
// written atomically through a temp file, and every operation reports
// per-path results suitable for formatting.
//
// # Basic Usage
//
//	cfg := &clientcli.Config{
//	    Host:    "example-nsu.akamaihd.net",
//	    KeyName: "example",
//	    Key:     "secret",
//	    CPCode:  "12345",
//	}
//
//	client, err := clientcli.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := client.Upload(ctx, clientcli.UploadOptions{
//	    LocalPath:  "./site/",
//	    RemotePath: "www",
//	    Recursive:  true,
//	})
//
// # Profile Configuration
//
// Connection settings for multiple accounts live in
// ~/.netstorage/config.yaml; see ConfigFile and Profile. The default
// profile is used when none is named.
//
// # Output Formatting
//
// Use formatters for human-readable or JSON output:
//
//	formatter := clientcli.NewFormatter(jsonOutput, quiet)
//	formatter.FormatUpload(os.Stdout, results)
package clientcli
