package clientcli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mailonline/netstorage-go"
)

// Client performs local-file operations against a NetStorage account.
type Client struct {
	config *Config
	ns     *netstorage.Client
}

// New creates a new Client with the given config and options. Options
// are forwarded to the underlying netstorage client.
func New(cfg *Config, opts ...netstorage.Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ns, err := netstorage.New(&netstorage.Config{
		Host:    cfg.Host,
		KeyName: cfg.KeyName,
		Key:     cfg.Key,
		SSL:     cfg.SSL,
		Verbose: cfg.Verbose,
	}, opts...)
	if err != nil {
		return nil, err
	}

	bound := *cfg
	return &Client{config: &bound, ns: ns}, nil
}

// Netstorage returns the underlying signed-request client, for verbs
// the transfer helpers do not wrap.
func (c *Client) Netstorage() *netstorage.Client {
	return c.ns
}

// Config returns a copy of the resolved configuration.
func (c *Client) Config() Config {
	return *c.config
}

// remotePath roots a user-supplied path under the configured cpcode.
func (c *Client) remotePath(path string) string {
	return netstorage.AbsolutePath(c.config.CPCode, path)
}

// Upload uploads file(s) to the remote store, creating missing remote
// directories first. For recursive uploads, walks the directory and
// preserves relative paths.
func (c *Client) Upload(ctx context.Context, opts UploadOptions) ([]UploadResult, error) {
	if opts.LocalPath == "" {
		return nil, fmt.Errorf("upload: %w", ErrEmptyPath)
	}
	if opts.Recursive {
		return c.uploadRecursive(ctx, opts)
	}
	result, err := c.uploadSingle(ctx, opts.LocalPath, opts.RemotePath)
	if err != nil {
		return nil, err
	}
	return []UploadResult{result}, nil
}

// uploadRecursive walks a directory and uploads all files.
func (c *Client) uploadRecursive(ctx context.Context, opts UploadOptions) ([]UploadResult, error) {
	info, err := os.Stat(opts.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("stat local path: %w", err)
	}

	if !info.IsDir() {
		result, uploadErr := c.uploadSingle(ctx, opts.LocalPath, opts.RemotePath)
		if uploadErr != nil {
			return nil, uploadErr
		}
		return []UploadResult{result}, nil
	}

	var results []UploadResult
	baseDir := opts.LocalPath
	remotePrefix := strings.TrimSuffix(opts.RemotePath, "/")

	walkErr := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, fileErr error) error {
		if fileErr != nil {
			return fileErr
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			return nil
		}

		relPath, relErr := filepath.Rel(baseDir, path)
		if relErr != nil {
			results = append(results, UploadResult{
				LocalPath: path,
				Err:       fmt.Errorf("calculate relative path: %w", relErr),
			})
			return nil
		}

		relPath = filepath.ToSlash(relPath)
		remotePath := remotePrefix + "/" + relPath

		result, uploadErr := c.uploadSingle(ctx, path, remotePath)
		if uploadErr != nil {
			result = UploadResult{
				LocalPath:  path,
				RemotePath: remotePath,
				Err:        uploadErr,
			}
		}
		results = append(results, result)
		return nil
	})

	if walkErr != nil {
		return results, fmt.Errorf("walk directory: %w", walkErr)
	}

	return results, nil
}

// uploadSingle streams a single file to the remote store.
func (c *Client) uploadSingle(ctx context.Context, localPath, remotePath string) (UploadResult, error) {
	file, err := os.Open(localPath) //#nosec G304 -- localPath is user-provided input
	if err != nil {
		return UploadResult{}, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return UploadResult{}, fmt.Errorf("stat file: %w", err)
	}

	source := netstorage.ReaderWithSize(file, info.Size())
	_, err = c.ns.Create(ctx, source, c.config.CPCode, remotePath)
	if err != nil {
		return UploadResult{}, err
	}

	return UploadResult{
		LocalPath:  localPath,
		RemotePath: c.remotePath(remotePath),
		Size:       info.Size(),
	}, nil
}

// Download downloads a file from the remote store.
// If opts.LocalPath is "-", the content is returned via the
// io.ReadCloser and must be closed by the caller. Otherwise the
// content is written atomically through a temp file and the
// io.ReadCloser is nil.
func (c *Client) Download(ctx context.Context, opts DownloadOptions) (*DownloadResult, io.ReadCloser, error) {
	if opts.RemotePath == "" {
		return nil, nil, fmt.Errorf("download: %w", ErrEmptyPath)
	}
	remotePath := c.remotePath(opts.RemotePath)

	_, body, err := c.ns.Download(ctx, remotePath)
	if err != nil {
		return nil, nil, err
	}

	result := &DownloadResult{RemotePath: remotePath}

	if opts.LocalPath == "-" {
		result.LocalPath = "-"
		return result, body, nil
	}
	defer func() { _ = body.Close() }()

	localPath := opts.LocalPath
	if localPath == "" {
		localPath = filepath.Base(remotePath)
	}
	result.LocalPath = localPath

	dir := filepath.Dir(localPath)
	if dir != "" && dir != "." {
		if mkdirErr := os.MkdirAll(dir, 0o750); mkdirErr != nil {
			return nil, nil, fmt.Errorf("create directory: %w", mkdirErr)
		}
	}

	written, err := writeAtomic(localPath, body)
	if err != nil {
		return nil, nil, err
	}

	result.Size = written
	return result, nil, nil
}

// writeAtomic streams content into a temp file next to the target and
// renames it into place, so a failed download never leaves a partial
// file at the destination.
func writeAtomic(path string, content io.Reader) (int64, error) {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, tmpFileName())

	tmp, err := os.Create(tmpPath) //#nosec G304 -- derived from user-provided destination
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}

	written, copyErr := io.Copy(tmp, content)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(tmpPath)
		if copyErr != nil {
			return 0, fmt.Errorf("write file: %w", copyErr)
		}
		return 0, fmt.Errorf("close file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("rename file: %w", err)
	}

	return written, nil
}

func tmpFileName() string {
	return fmt.Sprintf(".t%s", uuid.New().String())
}

// Remove removes one or more remote paths. Continues on error,
// collecting results for all paths.
func (c *Client) Remove(ctx context.Context, opts RemoveOptions) ([]RemoveResult, error) {
	if len(opts.Paths) == 0 {
		return nil, ErrNoPaths
	}

	results := make([]RemoveResult, 0, len(opts.Paths))

	for _, path := range opts.Paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		remotePath := c.remotePath(path)
		var err error
		if opts.Dir {
			_, err = c.ns.Rmdir(ctx, remotePath)
		} else {
			_, err = c.ns.Delete(ctx, remotePath)
		}

		results = append(results, RemoveResult{
			Path:    remotePath,
			Removed: err == nil,
			Err:     err,
		})
	}

	return results, nil
}

// HasRemoveErrors returns true if any remove operation failed.
func HasRemoveErrors(results []RemoveResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// List lists the entries of a remote directory.
func (c *Client) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	remotePath := c.remotePath(opts.RemotePath)

	res, err := c.ns.Dir(ctx, remotePath)
	if err != nil {
		return nil, err
	}

	result := &ListResult{Directory: remotePath}
	if attribs, ok := res.Attribs("stat"); ok {
		result.Directory = attribs["directory"]
	}

	for _, node := range res.Entries("stat", "file") {
		attribs, ok := node["attribs"].(map[string]string)
		if !ok {
			continue
		}
		result.Entries = append(result.Entries, entryFromAttribs(attribs))
	}

	return result, nil
}

// Stat fetches the metadata of a single remote path.
func (c *Client) Stat(ctx context.Context, path string) (*StatResult, error) {
	remotePath := c.remotePath(path)

	res, err := c.ns.Stat(ctx, remotePath)
	if err != nil {
		return nil, err
	}

	attribs, ok := res.Attribs("stat", "file")
	if !ok {
		return nil, fmt.Errorf("stat %s: %w", remotePath, netstorage.ErrNotFound)
	}

	return &StatResult{
		Path:  remotePath,
		Entry: entryFromAttribs(attribs),
	}, nil
}

// DU reports disk usage of a remote directory.
func (c *Client) DU(ctx context.Context, path string) (*DUResult, error) {
	remotePath := c.remotePath(path)

	res, err := c.ns.DU(ctx, remotePath)
	if err != nil {
		return nil, err
	}

	result := &DUResult{Directory: remotePath}
	if attribs, ok := res.Attribs("du"); ok {
		result.Directory = attribs["directory"]
	}
	if attribs, ok := res.Attribs("du", "du-info"); ok {
		result.Files, _ = strconv.ParseInt(attribs["files"], 10, 64)
		result.Bytes, _ = strconv.ParseInt(attribs["bytes"], 10, 64)
	}

	return result, nil
}

// entryFromAttribs maps a decoded file element onto an Entry.
func entryFromAttribs(attribs map[string]string) Entry {
	size, _ := strconv.ParseInt(attribs["size"], 10, 64)
	mtime, _ := strconv.ParseInt(attribs["mtime"], 10, 64)
	return Entry{
		Name:   attribs["name"],
		Type:   attribs["type"],
		Size:   size,
		Mtime:  mtime,
		MD5:    attribs["md5"],
		Target: attribs["target"],
	}
}
