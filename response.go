package netstorage

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Result is the classified outcome of a successful call. Data is nil
// when the response body was not an XML document; otherwise it holds
// the decoded document.
type Result struct {
	Status int
	Data   map[string]any
}

// Attribs returns the attribute set of the element reached by walking
// the given keys from the document root, or false when any step is
// missing. For a repeated element the first occurrence is used.
func (r *Result) Attribs(keys ...string) (map[string]string, bool) {
	if r.Data == nil {
		return nil, false
	}
	node := r.Data
	for _, k := range keys {
		switch v := node[k].(type) {
		case map[string]any:
			node = v
		case []map[string]any:
			if len(v) == 0 {
				return nil, false
			}
			node = v[0]
		default:
			return nil, false
		}
	}
	attribs, ok := node["attribs"].(map[string]string)
	return attribs, ok
}

// Entries returns the decoded occurrences of a child element reached
// by walking the given keys, as a slice even when the element appears
// once. The last key names the repeated child.
func (r *Result) Entries(keys ...string) []map[string]any {
	if r.Data == nil || len(keys) == 0 {
		return nil
	}
	node := r.Data
	for _, k := range keys[:len(keys)-1] {
		next, ok := node[k].(map[string]any)
		if !ok {
			return nil
		}
		node = next
	}
	switch v := node[keys[len(keys)-1]].(type) {
	case []map[string]any:
		return v
	case map[string]any:
		return []map[string]any{v}
	default:
		return nil
	}
}

// looksLikeXML reports whether a body starts with an XML prologue.
// Anything else is returned to the caller as a bare status result
// without a parse attempt.
func looksLikeXML(body []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(body), []byte("<?xml"))
}

// ParseXMLResponse decodes a NetStorage XML body into a nested map.
// The attributes of an element become an "attribs" field and a child
// element appears under its name, as a slice when it repeats:
//
//	<stat directory="/12345">
//	  <file type="file" name="a.jpg"/>
//	  <file type="file" name="b.jpg"/>
//	</stat>
//
// decodes to
//
//	{"stat": {"attribs": {"directory": "/12345"},
//	          "file": [{"attribs": {...}}, {"attribs": {...}}]}}
//
// A malformed document is surfaced as an error, never swallowed.
func ParseXMLResponse(body []byte) (map[string]any, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("parse response: no document element")
		}
		if err != nil {
			return nil, fmt.Errorf("parse response: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		root, err := decodeElement(dec, start)
		if err != nil {
			return nil, fmt.Errorf("parse response: %w", err)
		}
		return map[string]any{start.Name.Local: root}, nil
	}
}

// decodeElement consumes tokens until the matching end element,
// building the node map described on ParseXMLResponse.
func decodeElement(dec *xml.Decoder, start xml.StartElement) (map[string]any, error) {
	node := make(map[string]any)

	if len(start.Attr) > 0 {
		attribs := make(map[string]string, len(start.Attr))
		for _, a := range start.Attr {
			attribs[a.Name.Local] = a.Value
		}
		node["attribs"] = attribs
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}
			name := t.Name.Local
			switch existing := node[name].(type) {
			case nil:
				node[name] = child
			case map[string]any:
				node[name] = []map[string]any{existing, child}
			case []map[string]any:
				node[name] = append(existing, child)
			}
		case xml.EndElement:
			return node, nil
		}
	}
}
