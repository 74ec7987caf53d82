package clientcli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Formatter formats results for output.
type Formatter interface {
	FormatUpload(w io.Writer, results []UploadResult) error
	FormatDownload(w io.Writer, result *DownloadResult) error
	FormatRemove(w io.Writer, results []RemoveResult) error
	FormatList(w io.Writer, result *ListResult) error
	FormatStat(w io.Writer, result *StatResult) error
	FormatDU(w io.Writer, result *DUResult) error
	FormatError(w io.Writer, err error) error
	FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error
	FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

// FormatUpload formats upload results as human-readable text.
func (f *HumanFormatter) FormatUpload(w io.Writer, results []UploadResult) error {
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			_, _ = fmt.Fprintf(w, "Error: %s - %v\n", r.LocalPath, r.Err)
			continue
		}
		if !f.Quiet {
			_, _ = fmt.Fprintf(w, "Uploaded: %s -> %s (%s)\n", r.LocalPath, r.RemotePath, formatSize(r.Size))
		}
	}
	return nil
}

// FormatDownload formats download result as human-readable text.
func (f *HumanFormatter) FormatDownload(w io.Writer, result *DownloadResult) error {
	if !f.Quiet {
		if result.LocalPath == "-" {
			_, _ = fmt.Fprintf(w, "Downloaded: %s (%s)\n", result.RemotePath, formatSize(result.Size))
		} else {
			_, _ = fmt.Fprintf(w, "Downloaded: %s -> %s (%s)\n", result.RemotePath, result.LocalPath, formatSize(result.Size))
		}
	}
	return nil
}

// FormatRemove formats remove results as human-readable text.
func (f *HumanFormatter) FormatRemove(w io.Writer, results []RemoveResult) error {
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			_, _ = fmt.Fprintf(w, "Error: %s - %v\n", r.Path, r.Err)
			continue
		}
		if !f.Quiet {
			_, _ = fmt.Fprintf(w, "Removed: %s\n", r.Path)
		}
	}
	return nil
}

// FormatList formats a directory listing as human-readable text.
func (f *HumanFormatter) FormatList(w io.Writer, result *ListResult) error {
	if len(result.Entries) == 0 {
		_, _ = fmt.Fprintln(w, "Empty directory")
		return nil
	}

	maxNameLen := 4 // "NAME"
	for i := range result.Entries {
		if len(result.Entries[i].Name) > maxNameLen {
			maxNameLen = len(result.Entries[i].Name)
		}
	}
	if maxNameLen > 60 {
		maxNameLen = 60
	}

	_, _ = fmt.Fprintf(w, "%-*s  %-7s  %10s  %s\n", maxNameLen, "NAME", "TYPE", "SIZE", "MODIFIED")
	_, _ = fmt.Fprintf(w, "%s  %s  %s  %s\n",
		strings.Repeat("-", maxNameLen), strings.Repeat("-", 7),
		strings.Repeat("-", 10), strings.Repeat("-", 19))

	var total int64
	for i := range result.Entries {
		e := &result.Entries[i]
		name := e.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		}
		modified := ""
		if e.Mtime > 0 {
			modified = time.Unix(e.Mtime, 0).UTC().Format("2006-01-02 15:04:05")
		}
		_, _ = fmt.Fprintf(w, "%-*s  %-7s  %10s  %s\n", maxNameLen, name, e.Type, formatSize(e.Size), modified)
		total += e.Size
	}

	_, _ = fmt.Fprintf(w, "\n%d entries in %s (%s total)\n", len(result.Entries), result.Directory, formatSize(total))
	return nil
}

// FormatStat formats stat metadata as human-readable text.
func (f *HumanFormatter) FormatStat(w io.Writer, result *StatResult) error {
	_, _ = fmt.Fprintf(w, "Path: %s\n", result.Path)
	_, _ = fmt.Fprintf(w, "  Type: %s\n", result.Entry.Type)
	_, _ = fmt.Fprintf(w, "  Size: %s\n", formatSize(result.Entry.Size))
	if result.Entry.Mtime > 0 {
		_, _ = fmt.Fprintf(w, "  Modified: %s\n", time.Unix(result.Entry.Mtime, 0).UTC().Format(time.RFC3339))
	}
	if result.Entry.MD5 != "" {
		_, _ = fmt.Fprintf(w, "  MD5: %s\n", result.Entry.MD5)
	}
	if result.Entry.Target != "" {
		_, _ = fmt.Fprintf(w, "  Target: %s\n", result.Entry.Target)
	}
	return nil
}

// FormatDU formats disk usage as human-readable text.
func (f *HumanFormatter) FormatDU(w io.Writer, result *DUResult) error {
	_, _ = fmt.Fprintf(w, "%s: %d file(s), %s\n", result.Directory, result.Files, formatSize(result.Bytes))
	return nil
}

// FormatError formats an error as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// FormatProfileList formats a list of profiles as human-readable text.
func (f *HumanFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error {
	maxNameLen := 4 // "NAME"
	maxHostLen := 4 // "HOST"
	for i := range profiles {
		if len(profiles[i].Name) > maxNameLen {
			maxNameLen = len(profiles[i].Name)
		}
		if len(profiles[i].Host) > maxHostLen {
			maxHostLen = len(profiles[i].Host)
		}
	}

	_, _ = fmt.Fprintf(w, "  %-*s  %-*s  %-10s  %s\n", maxNameLen, "NAME", maxHostLen, "HOST", "KEY NAME", "CPCODE")
	for i := range profiles {
		p := &profiles[i]
		marker := " "
		if p.Name == defaultName {
			marker = "*"
		}
		keyName := p.KeyName
		if !showSecrets && keyName != "" {
			keyName = maskSecret(keyName)
		}
		_, _ = fmt.Fprintf(w, "%s %-*s  %-*s  %-10s  %s\n", marker, maxNameLen, p.Name, maxHostLen, p.Host, keyName, p.CPCode)
	}
	return nil
}

// FormatProfileShow formats a single profile as human-readable text.
func (f *HumanFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error {
	_, _ = fmt.Fprintf(w, "Profile: %s\n", profile.Name)
	if isDefault {
		_, _ = fmt.Fprintln(w, "  Default: yes")
	}
	_, _ = fmt.Fprintf(w, "  Host: %s\n", profile.Host)
	_, _ = fmt.Fprintf(w, "  CPCode: %s\n", profile.CPCode)
	_, _ = fmt.Fprintf(w, "  SSL: %t\n", profile.SSL)

	keyName, key := profile.KeyName, profile.Key
	if !showSecrets {
		keyName = maskSecret(keyName)
		key = maskSecret(key)
	}
	_, _ = fmt.Fprintf(w, "  Key Name: %s\n", keyName)
	_, _ = fmt.Fprintf(w, "  Key: %s\n", key)
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatUpload formats upload results as JSON.
func (f *JSONFormatter) FormatUpload(w io.Writer, results []UploadResult) error {
	type jsonResult struct {
		LocalPath  string `json:"local_path"`
		RemotePath string `json:"remote_path"`
		Size       int64  `json:"size_bytes,omitempty"`
		Error      string `json:"error,omitempty"`
	}

	output := make([]jsonResult, len(results))
	for i := range results {
		r := &results[i]
		jr := jsonResult{
			LocalPath:  r.LocalPath,
			RemotePath: r.RemotePath,
		}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		} else {
			jr.Size = r.Size
		}
		output[i] = jr
	}

	return writeJSON(w, output)
}

// FormatDownload formats download result as JSON.
func (f *JSONFormatter) FormatDownload(w io.Writer, result *DownloadResult) error {
	return writeJSON(w, result)
}

// FormatRemove formats remove results as JSON.
func (f *JSONFormatter) FormatRemove(w io.Writer, results []RemoveResult) error {
	type jsonResult struct {
		Path    string `json:"path"`
		Removed bool   `json:"removed"`
		Error   string `json:"error,omitempty"`
	}

	output := struct {
		Results []jsonResult `json:"results"`
	}{
		Results: make([]jsonResult, len(results)),
	}

	for i, r := range results {
		jr := jsonResult{
			Path:    r.Path,
			Removed: r.Removed,
		}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		}
		output.Results[i] = jr
	}

	return writeJSON(w, output)
}

// FormatList formats a directory listing as JSON.
func (f *JSONFormatter) FormatList(w io.Writer, result *ListResult) error {
	return writeJSON(w, result)
}

// FormatStat formats stat metadata as JSON.
func (f *JSONFormatter) FormatStat(w io.Writer, result *StatResult) error {
	return writeJSON(w, result)
}

// FormatDU formats disk usage as JSON.
func (f *JSONFormatter) FormatDU(w io.Writer, result *DUResult) error {
	return writeJSON(w, result)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return writeJSON(w, output)
}

// FormatProfileList formats profiles as JSON.
func (f *JSONFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error {
	type jsonProfile struct {
		Name    string `json:"name"`
		Host    string `json:"host"`
		KeyName string `json:"key_name,omitempty"`
		CPCode  string `json:"cpcode,omitempty"`
		SSL     bool   `json:"ssl"`
		Default bool   `json:"default"`
	}

	output := make([]jsonProfile, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		keyName := p.KeyName
		if !showSecrets {
			keyName = maskSecret(keyName)
		}
		output[i] = jsonProfile{
			Name:    p.Name,
			Host:    p.Host,
			KeyName: keyName,
			CPCode:  p.CPCode,
			SSL:     p.SSL,
			Default: p.Name == defaultName,
		}
	}
	return writeJSON(w, output)
}

// FormatProfileShow formats a single profile as JSON.
func (f *JSONFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error {
	if !showSecrets {
		profile.KeyName = maskSecret(profile.KeyName)
		profile.Key = maskSecret(profile.Key)
	}
	output := struct {
		Profile
		IsDefault bool `json:"is_default"`
	}{
		Profile:   profile,
		IsDefault: isDefault,
	}
	return writeJSON(w, output)
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// maskSecret hides all but the first two characters of a secret.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 2 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-2)
}

// formatSize formats bytes as human-readable size.
func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.1f TB", float64(bytes)/TB)
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
