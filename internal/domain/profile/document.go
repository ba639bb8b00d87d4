package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// ErrTrailingData is returned by Decode when the body holds more than one JSON value.
var ErrTrailingData = errors.New("trailing data after JSON value")

// Document is a decoded profile response.
type Document struct {
	root Node
}

// NewDocument wraps an already decoded tree, mostly useful in tests.
func NewDocument(root any) Document {
	return Document{root: Wrap(root)}
}

// Decode parses a JSON body. Numbers keep their literal form so integer
// identifiers render exactly as sent.
func Decode(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Document{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Document{}, ErrTrailingData
	}
	return Document{root: Wrap(v)}, nil
}

// Root returns the top-level node.
func (d Document) Root() Node { return d.root }

// Segments returns data.segments in document order. A missing or malformed
// path yields an empty list.
func (d Document) Segments() []Segment {
	nodes := d.root.Get("data").Get("segments").List()
	out := make([]Segment, len(nodes))
	for i, n := range nodes {
		out[i] = Segment{node: n}
	}
	return out
}

// Segment is one statistics record scoped to a mode or season.
type Segment struct {
	node Node
}

// NewSegment wraps a decoded segment value, mostly useful in tests.
func NewSegment(v any) Segment {
	return Segment{node: Wrap(v)}
}

// Metadata returns the free-form metadata object, or a null Node.
func (s Segment) Metadata() Node {
	m := s.node.Get("metadata")
	if !m.IsObject() {
		return Node{}
	}
	return m
}

// Type returns the lower-cased segment type, or "" when absent.
func (s Segment) Type() string {
	t, _ := s.node.Get("type").Text()
	return strings.ToLower(t)
}

// StatValue returns stats[key].value for the first key present in stats whose
// value field is non-null. Later keys are not consulted once one matches, even
// when its value cannot be used by the caller.
func (s Segment) StatValue(keys ...string) Node {
	stats := s.node.Get("stats")
	for _, k := range keys {
		if !stats.Has(k) {
			continue
		}
		if v := stats.Get(k).Get("value"); !v.IsNull() {
			return v
		}
	}
	return Node{}
}
