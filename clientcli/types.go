package clientcli

// UploadOptions configures an upload operation.
type UploadOptions struct {
	LocalPath  string
	RemotePath string
	Recursive  bool
}

// UploadResult represents the result of uploading a single file.
type UploadResult struct {
	LocalPath  string `json:"local_path"`
	RemotePath string `json:"remote_path"`
	Size       int64  `json:"size_bytes"`
	Err        error  `json:"-"` // nil on success
}

// DownloadOptions configures a download operation.
type DownloadOptions struct {
	RemotePath string
	LocalPath  string // empty = derive from remote, "-" = stdout
}

// DownloadResult represents the result of downloading a file.
type DownloadResult struct {
	RemotePath string `json:"remote_path"`
	LocalPath  string `json:"local_path"`
	Size       int64  `json:"size_bytes"`
}

// RemoveOptions configures a remove operation.
type RemoveOptions struct {
	Paths []string
	Dir   bool // remove directories instead of files
}

// RemoveResult represents the result of removing a single path.
type RemoveResult struct {
	Path    string `json:"path"`
	Removed bool   `json:"removed"`
	Err     error  `json:"-"` // nil on success
}

// ListOptions configures a directory listing.
type ListOptions struct {
	RemotePath string
}

// ListResult contains the entries of one remote directory.
type ListResult struct {
	Directory string  `json:"directory"`
	Entries   []Entry `json:"entries"`
}

// Entry represents one file, directory or symlink in a listing.
type Entry struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Size   int64  `json:"size_bytes,omitempty"`
	Mtime  int64  `json:"mtime,omitempty"`
	MD5    string `json:"md5,omitempty"`
	Target string `json:"target,omitempty"` // symlink target
}

// StatResult represents the metadata of a single remote path.
type StatResult struct {
	Path  string `json:"path"`
	Entry Entry  `json:"entry"`
}

// DUResult represents disk usage of a remote directory.
type DUResult struct {
	Directory string `json:"directory"`
	Files     int64  `json:"files"`
	Bytes     int64  `json:"bytes"`
}
