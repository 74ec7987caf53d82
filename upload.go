package netstorage

import (
	"context"
	"errors"
	"fmt"
)

// EnsureAncestors creates every missing directory above the target
// path, walking the prefix chain from shortest to longest so each
// parent exists before its child. A 409 from the store means the
// directory is already there and is treated as success; any other
// failure aborts the walk, annotated with the failing prefix and the
// active configuration. Re-running on an existing chain is a no-op
// beyond the redundant already-exists responses.
func (c *Client) EnsureAncestors(ctx context.Context, cpcode, targetPath string) error {
	for _, prefix := range AncestorChain(AbsolutePath(cpcode, targetPath)) {
		_, err := c.Mkdir(ctx, prefix)
		if err == nil {
			continue
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsConflict() {
			continue
		}
		return fmt.Errorf("mkdir %s (%s): %w", prefix, c.config, err)
	}
	return nil
}

// Create uploads a payload to /cpcode/targetPath, materializing the
// missing parent directories first. Directories are never created
// after the upload begins and the upload is attempted at most once;
// directories already created are left in place when a later step
// fails.
func (c *Client) Create(ctx context.Context, src Source, cpcode, targetPath string) (*Result, error) {
	if err := c.EnsureAncestors(ctx, cpcode, targetPath); err != nil {
		return nil, err
	}

	res, err := c.Upload(ctx, src, AbsolutePath(cpcode, targetPath))
	if err != nil {
		return nil, fmt.Errorf("upload %s (%s): %w", AbsolutePath(cpcode, targetPath), c.config, err)
	}
	return res, nil
}
