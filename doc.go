// Package netstorage provides a client for Akamai NetStorage over its
// HTTP Content Management API, with per-request HMAC-SHA256 signed
// authentication headers.
//
// Every call produces exactly one outbound HTTP request carrying three
// headers: the action header describing the operation, an auth-data
// header with a timestamp, a nonce and the key name, and an auth-sign
// header holding a base64 HMAC digest over the two. The remote store is
// never contacted without them.
//
// # Key Components
//
//   - Client: configuration-bound client exposing one method per remote verb
//   - Signer: builds the signed authentication headers for a path/action
//   - Source: upload payloads, either in-memory bytes or a byte stream
//   - Result: classified response, a bare status or a decoded XML document
//
// # Example Usage
//
//	cfg := &netstorage.Config{
//	    Host:    "example-nsu.akamaihd.net",
//	    KeyName: "example",
//	    Key:     "secret",
//	    SSL:     true,
//	}
//
//	client, err := netstorage.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Upload, creating missing parent directories first.
//	res, err := client.Create(ctx, netstorage.Bytes(data), "12345", "images/cat.png")
//
//	// Inspect a remote path.
//	res, err = client.Stat(ctx, "/12345/images/cat.png")
//
// Multiple clients with independent configurations may coexist in one
// process; a Client holds no mutable state between calls. See the
// clientcli package for local-file transfer helpers and the CLI.
package netstorage
