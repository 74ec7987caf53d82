package clientcli_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mailonline/netstorage-go"
	"github.com/mailonline/netstorage-go/clientcli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client with cpcode 12345 at the test server.
func newTestClient(t *testing.T, server *httptest.Server) *clientcli.Client {
	t.Helper()

	serverURL, err := url.Parse(server.URL)
	require.NoError(t, err)

	client, err := clientcli.New(&clientcli.Config{
		Host:    serverURL.Host,
		KeyName: "test-keyname",
		Key:     "test-secret",
		CPCode:  "12345",
	})
	require.NoError(t, err)
	return client
}

func actionField(t *testing.T, r *http.Request, field string) string {
	t.Helper()
	values, err := url.ParseQuery(r.Header.Get(netstorage.ActionHeader))
	require.NoError(t, err)
	return values.Get(field)
}

func TestNew(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		client, err := clientcli.New(&clientcli.Config{
			Host:    "example-nsu.akamaihd.net",
			KeyName: "kn",
			Key:     "k",
		})
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.NotNil(t, client.Netstorage())
	})

	t.Run("nil config", func(t *testing.T) {
		_, err := clientcli.New(nil)
		assert.ErrorIs(t, err, clientcli.ErrConfigRequired)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := clientcli.New(&clientcli.Config{Host: "h", KeyName: "kn"})
		assert.ErrorIs(t, err, clientcli.ErrKeyRequired)
	})
}

func TestClient_Upload(t *testing.T) {
	t.Run("single file materializes directories then uploads", func(t *testing.T) {
		var paths []string
		var actions []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.Path)
			actions = append(actions, actionField(t, r, "action"))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		tmpDir := t.TempDir()
		localPath := filepath.Join(tmpDir, "file.txt")
		require.NoError(t, os.WriteFile(localPath, []byte("test content"), 0o600))

		client := newTestClient(t, server)
		results, err := client.Upload(context.Background(), clientcli.UploadOptions{
			LocalPath:  localPath,
			RemotePath: "docs/file.txt",
		})
		require.NoError(t, err)
		require.Len(t, results, 1)

		assert.Equal(t, localPath, results[0].LocalPath)
		assert.Equal(t, "/12345/docs/file.txt", results[0].RemotePath)
		assert.Equal(t, int64(12), results[0].Size)
		assert.Nil(t, results[0].Err)

		assert.Equal(t, []string{"/12345", "/12345/docs", "/12345/docs/file.txt"}, paths)
		assert.Equal(t, []string{"mkdir", "mkdir", "upload"}, actions)
	})

	t.Run("recursive preserves relative paths", func(t *testing.T) {
		var uploaded []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if actionField(t, r, "action") == "upload" {
				uploaded = append(uploaded, r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		tmpDir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "sub"), 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a.txt"), []byte("a"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "sub", "b.txt"), []byte("b"), 0o600))

		client := newTestClient(t, server)
		results, err := client.Upload(context.Background(), clientcli.UploadOptions{
			LocalPath:  tmpDir,
			RemotePath: "site",
			Recursive:  true,
		})
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Contains(t, uploaded, "/12345/site/a.txt")
		assert.Contains(t, uploaded, "/12345/site/sub/b.txt")
	})

	t.Run("empty local path", func(t *testing.T) {
		client, err := clientcli.New(&clientcli.Config{Host: "h.test", KeyName: "kn", Key: "k"})
		require.NoError(t, err)

		_, err = client.Upload(context.Background(), clientcli.UploadOptions{})
		assert.ErrorIs(t, err, clientcli.ErrEmptyPath)
	})

	t.Run("server error surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		tmpDir := t.TempDir()
		localPath := filepath.Join(tmpDir, "file.txt")
		require.NoError(t, os.WriteFile(localPath, []byte("x"), 0o600))

		client := newTestClient(t, server)
		_, err := client.Upload(context.Background(), clientcli.UploadOptions{
			LocalPath:  localPath,
			RemotePath: "file.txt",
		})
		assert.Error(t, err)
	})
}

func TestClient_Download(t *testing.T) {
	t.Run("writes file atomically", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "download", actionField(t, r, "action"))
			assert.Equal(t, "/12345/docs/file.txt", r.URL.Path)
			_, _ = w.Write([]byte("downloaded content"))
		}))
		defer server.Close()

		tmpDir := t.TempDir()
		localPath := filepath.Join(tmpDir, "out", "file.txt")

		client := newTestClient(t, server)
		result, reader, err := client.Download(context.Background(), clientcli.DownloadOptions{
			RemotePath: "docs/file.txt",
			LocalPath:  localPath,
		})
		require.NoError(t, err)
		assert.Nil(t, reader)
		assert.Equal(t, int64(18), result.Size)

		content, err := os.ReadFile(localPath)
		require.NoError(t, err)
		assert.Equal(t, "downloaded content", string(content))

		// No temp files left behind.
		entries, err := os.ReadDir(filepath.Dir(localPath))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "file.txt", entries[0].Name())
	})

	t.Run("stdout returns reader", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("stdout content"))
		}))
		defer server.Close()

		client := newTestClient(t, server)
		result, reader, err := client.Download(context.Background(), clientcli.DownloadOptions{
			RemotePath: "file.txt",
			LocalPath:  "-",
		})
		require.NoError(t, err)
		require.NotNil(t, reader)
		defer func() { _ = reader.Close() }()

		assert.Equal(t, "-", result.LocalPath)

		content, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "stdout content", string(content))
	})

	t.Run("local path derived from remote", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("x"))
		}))
		defer server.Close()

		tmpDir := t.TempDir()
		cwd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(tmpDir))
		defer func() { _ = os.Chdir(cwd) }()

		client := newTestClient(t, server)
		result, _, err := client.Download(context.Background(), clientcli.DownloadOptions{
			RemotePath: "docs/derived.txt",
		})
		require.NoError(t, err)
		assert.Equal(t, "derived.txt", result.LocalPath)
	})

	t.Run("404 surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := newTestClient(t, server)
		_, _, err := client.Download(context.Background(), clientcli.DownloadOptions{
			RemotePath: "missing.txt",
			LocalPath:  "-",
		})
		assert.ErrorIs(t, err, netstorage.ErrNotFound)
	})
}

func TestClient_Remove(t *testing.T) {
	t.Run("deletes files", func(t *testing.T) {
		var actions []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actions = append(actions, actionField(t, r, "action"))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := newTestClient(t, server)
		results, err := client.Remove(context.Background(), clientcli.RemoveOptions{
			Paths: []string{"a.txt", "b.txt"},
		})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.True(t, results[0].Removed)
		assert.Equal(t, "/12345/a.txt", results[0].Path)
		assert.Equal(t, []string{"delete", "delete"}, actions)
	})

	t.Run("dir flag uses rmdir", func(t *testing.T) {
		var actions []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actions = append(actions, actionField(t, r, "action"))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := newTestClient(t, server)
		_, err := client.Remove(context.Background(), clientcli.RemoveOptions{
			Paths: []string{"olddir"},
			Dir:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"rmdir"}, actions)
	})

	t.Run("continues on error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "bad.txt") {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := newTestClient(t, server)
		results, err := client.Remove(context.Background(), clientcli.RemoveOptions{
			Paths: []string{"bad.txt", "good.txt"},
		})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.False(t, results[0].Removed)
		assert.NotNil(t, results[0].Err)
		assert.True(t, results[1].Removed)
		assert.True(t, clientcli.HasRemoveErrors(results))
	})

	t.Run("empty paths", func(t *testing.T) {
		client, err := clientcli.New(&clientcli.Config{Host: "h.test", KeyName: "kn", Key: "k"})
		require.NoError(t, err)

		_, err = client.Remove(context.Background(), clientcli.RemoveOptions{})
		assert.ErrorIs(t, err, clientcli.ErrNoPaths)
	})
}

func TestClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dir", actionField(t, r, "action"))
		_, _ = w.Write([]byte(`<?xml version="1.0"?>
<stat directory="/12345/images">
  <file type="file" name="cat.png" size="14716" mtime="1700000000" md5="912ec803b2ce49e4a541068d495ab570"/>
  <file type="dir" name="thumbs"/>
  <file type="symlink" name="latest" target="/12345/images/cat.png"/>
</stat>`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	result, err := client.List(context.Background(), clientcli.ListOptions{RemotePath: "images"})
	require.NoError(t, err)

	assert.Equal(t, "/12345/images", result.Directory)
	require.Len(t, result.Entries, 3)

	assert.Equal(t, clientcli.Entry{
		Name:  "cat.png",
		Type:  "file",
		Size:  14716,
		Mtime: 1700000000,
		MD5:   "912ec803b2ce49e4a541068d495ab570",
	}, result.Entries[0])
	assert.Equal(t, "dir", result.Entries[1].Type)
	assert.Equal(t, "/12345/images/cat.png", result.Entries[2].Target)
}

func TestClient_Stat(t *testing.T) {
	t.Run("file metadata", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<?xml version="1.0"?>
<stat directory="/12345/docs">
  <file type="file" name="file.txt" size="42" mtime="1700000000"/>
</stat>`))
		}))
		defer server.Close()

		client := newTestClient(t, server)
		result, err := client.Stat(context.Background(), "docs/file.txt")
		require.NoError(t, err)
		assert.Equal(t, "/12345/docs/file.txt", result.Path)
		assert.Equal(t, "file", result.Entry.Type)
		assert.Equal(t, int64(42), result.Entry.Size)
	})

	t.Run("missing entry maps to not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<?xml version="1.0"?><stat directory="/12345"></stat>`))
		}))
		defer server.Close()

		client := newTestClient(t, server)
		_, err := client.Stat(context.Background(), "docs/missing.txt")
		assert.ErrorIs(t, err, netstorage.ErrNotFound)
	})
}

func TestClient_DU(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "du", actionField(t, r, "action"))
		_, _ = w.Write([]byte(`<?xml version="1.0"?>
<du directory="/12345/images">
  <du-info files="214" bytes="383838383"/>
</du>`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	result, err := client.DU(context.Background(), "images")
	require.NoError(t, err)

	assert.Equal(t, "/12345/images", result.Directory)
	assert.Equal(t, int64(214), result.Files)
	assert.Equal(t, int64(383838383), result.Bytes)
}
