package clientcli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mailonline/netstorage-go/clientcli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &clientcli.JSONFormatter{}, clientcli.NewFormatter(true, false))
	assert.IsType(t, &clientcli.HumanFormatter{}, clientcli.NewFormatter(false, false))
}

func TestHumanFormatter(t *testing.T) {
	t.Run("upload", func(t *testing.T) {
		var buf bytes.Buffer
		f := &clientcli.HumanFormatter{}
		err := f.FormatUpload(&buf, []clientcli.UploadResult{
			{LocalPath: "./a.txt", RemotePath: "/12345/a.txt", Size: 2048},
			{LocalPath: "./b.txt", Err: errors.New("boom")},
		})
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "Uploaded: ./a.txt -> /12345/a.txt (2.0 KB)")
		assert.Contains(t, out, "Error: ./b.txt - boom")
	})

	t.Run("quiet suppresses success lines", func(t *testing.T) {
		var buf bytes.Buffer
		f := &clientcli.HumanFormatter{Quiet: true}
		err := f.FormatUpload(&buf, []clientcli.UploadResult{
			{LocalPath: "./a.txt", RemotePath: "/12345/a.txt"},
		})
		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("list", func(t *testing.T) {
		var buf bytes.Buffer
		f := &clientcli.HumanFormatter{}
		err := f.FormatList(&buf, &clientcli.ListResult{
			Directory: "/12345/images",
			Entries: []clientcli.Entry{
				{Name: "cat.png", Type: "file", Size: 14716, Mtime: 1700000000},
				{Name: "thumbs", Type: "dir"},
			},
		})
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "NAME")
		assert.Contains(t, out, "cat.png")
		assert.Contains(t, out, "2 entries in /12345/images")
	})

	t.Run("empty list", func(t *testing.T) {
		var buf bytes.Buffer
		f := &clientcli.HumanFormatter{}
		err := f.FormatList(&buf, &clientcli.ListResult{Directory: "/12345"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Empty directory")
	})

	t.Run("du", func(t *testing.T) {
		var buf bytes.Buffer
		f := &clientcli.HumanFormatter{}
		err := f.FormatDU(&buf, &clientcli.DUResult{Directory: "/12345", Files: 3, Bytes: 1024})
		require.NoError(t, err)
		assert.Equal(t, "/12345: 3 file(s), 1.0 KB\n", buf.String())
	})

	t.Run("profile list masks secrets", func(t *testing.T) {
		var buf bytes.Buffer
		f := &clientcli.HumanFormatter{}
		err := f.FormatProfileList(&buf, []clientcli.Profile{
			{Name: "prod", Host: "prod-nsu.akamaihd.net", KeyName: "prodkeyname"},
		}, "prod", false)
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "* prod")
		assert.NotContains(t, out, "prodkeyname")
		assert.Contains(t, out, "pr*********")
	})
}

func TestJSONFormatter(t *testing.T) {
	t.Run("upload includes error strings", func(t *testing.T) {
		var buf bytes.Buffer
		f := &clientcli.JSONFormatter{}
		err := f.FormatUpload(&buf, []clientcli.UploadResult{
			{LocalPath: "./a.txt", RemotePath: "/12345/a.txt", Size: 7},
			{LocalPath: "./b.txt", Err: errors.New("boom")},
		})
		require.NoError(t, err)

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, float64(7), decoded[0]["size_bytes"])
		assert.Equal(t, "boom", decoded[1]["error"])
	})

	t.Run("remove", func(t *testing.T) {
		var buf bytes.Buffer
		f := &clientcli.JSONFormatter{}
		err := f.FormatRemove(&buf, []clientcli.RemoveResult{
			{Path: "/12345/a.txt", Removed: true},
		})
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		results := decoded["results"].([]any)
		require.Len(t, results, 1)
	})

	t.Run("error", func(t *testing.T) {
		var buf bytes.Buffer
		f := &clientcli.JSONFormatter{}
		require.NoError(t, f.FormatError(&buf, errors.New("boom")))
		assert.JSONEq(t, `{"error":"boom"}`, strings.TrimSpace(buf.String()))
	})

	t.Run("profile show masks secrets", func(t *testing.T) {
		var buf bytes.Buffer
		f := &clientcli.JSONFormatter{}
		err := f.FormatProfileShow(&buf, clientcli.Profile{
			Name: "prod", Host: "h", KeyName: "prodkeyname", Key: "verysecret",
		}, true, false)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, true, decoded["is_default"])
		assert.NotEqual(t, "verysecret", decoded["key"])
	})
}
