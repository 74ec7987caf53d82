package netstorage

import (
	"net/url"
	"strings"
)

// Action names a remote verb. Each maps 1:1 to a value of the signed
// action header.
type Action string

const (
	ActionUpload   Action = "upload"
	ActionDownload Action = "download"
	ActionStat     Action = "stat"
	ActionDU       Action = "du"
	ActionDir      Action = "dir"
	ActionDelete   Action = "delete"
	ActionMkdir    Action = "mkdir"
	ActionRmdir    Action = "rmdir"
	ActionRename   Action = "rename"
	ActionSymlink  Action = "symlink"
	ActionMtime    Action = "mtime"
)

// ActionQuery builds the query string carried in the action header.
// Field order is part of the signed payload, so fields keep the
// position of their first insertion: the defaults come first and a
// caller override replaces the value in place rather than reordering.
type ActionQuery struct {
	keys   []string
	values map[string]string
}

// NewActionQuery returns a query seeded with the protocol defaults
// (version 1, action du, xml format) and the given action applied on top.
func NewActionQuery(action Action) *ActionQuery {
	q := &ActionQuery{values: make(map[string]string)}
	q.Set("version", "1")
	q.Set("action", "du")
	q.Set("format", "xml")
	if action != "" {
		q.Set("action", string(action))
	}
	return q
}

// Set assigns a field. An existing field keeps its position; a new
// field is appended.
func (q *ActionQuery) Set(key, value string) *ActionQuery {
	if _, ok := q.values[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.values[key] = value
	return q
}

// Get returns the current value of a field, or "".
func (q *ActionQuery) Get(key string) string {
	return q.values[key]
}

// Encode renders the query string in insertion order. The result is
// bit-exact for a given sequence of Set calls, as required for signing.
func (q *ActionQuery) Encode() string {
	var b strings.Builder
	for i, k := range q.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q.values[k]))
	}
	return b.String()
}
