package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

type nodeKind int

const (
	kindNull nodeKind = iota
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
)

// node is a decoded JSON value that remembers object key order.
// Thermal zone selection depends on the order the backend sent the zones,
// which a Go map would lose.
type node struct {
	kind   nodeKind
	b      bool
	num    json.Number
	s      string
	items  []node
	fields []field
}

type field struct {
	key string
	val node
}

func parseTree(raw []byte) (node, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	n, err := decodeNode(dec)
	if err != nil {
		return node{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return node{}, fmt.Errorf("unexpected data after top-level value")
	}
	return n, nil
}

func decodeNode(dec *json.Decoder) (node, error) {
	tok, err := dec.Token()
	if err != nil {
		return node{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			n := node{kind: kindObject}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return node{}, err
				}
				key, ok := kt.(string)
				if !ok {
					return node{}, fmt.Errorf("object key is %T, not string", kt)
				}
				val, err := decodeNode(dec)
				if err != nil {
					return node{}, err
				}
				n.fields = append(n.fields, field{key: key, val: val})
			}
			if _, err := dec.Token(); err != nil {
				return node{}, err
			}
			return n, nil
		case '[':
			n := node{kind: kindArray}
			for dec.More() {
				item, err := decodeNode(dec)
				if err != nil {
					return node{}, err
				}
				n.items = append(n.items, item)
			}
			if _, err := dec.Token(); err != nil {
				return node{}, err
			}
			return n, nil
		}
		return node{}, fmt.Errorf("unexpected delimiter %q", t)
	case json.Number:
		return node{kind: kindNumber, num: t}, nil
	case string:
		return node{kind: kindString, s: t}, nil
	case bool:
		return node{kind: kindBool, b: t}, nil
	case nil:
		return node{kind: kindNull}, nil
	}
	return node{}, fmt.Errorf("unexpected token %v", tok)
}

// get returns the value for key. Duplicate keys resolve to the last one,
// as encoding/json does.
func (n node) get(key string) (node, bool) {
	if n.kind != kindObject {
		return node{}, false
	}
	for i := len(n.fields) - 1; i >= 0; i-- {
		if n.fields[i].key == key {
			return n.fields[i].val, true
		}
	}
	return node{}, false
}

// errorReason reports whether n is an {"error": ...} object.
func (n node) errorReason() (string, bool) {
	e, ok := n.get("error")
	if !ok {
		return "", false
	}
	if e.kind == kindString && e.s != "" {
		return e.s, true
	}
	return "error", true
}

func (n node) number() Num {
	if n.kind != kindNumber {
		return Num{}
	}
	f, err := n.num.Float64()
	if err != nil {
		return Num{}
	}
	return Some(f)
}

func (n node) numberAt(key string) Num {
	v, ok := n.get(key)
	if !ok {
		return Num{}
	}
	return v.number()
}

// text returns strings as-is and numbers in their literal form.
func (n node) text() string {
	switch n.kind {
	case kindString:
		return n.s
	case kindNumber:
		return n.num.String()
	}
	return ""
}

func (n node) textAt(key string) string {
	v, ok := n.get(key)
	if !ok {
		return ""
	}
	return v.text()
}

// boolAt returns nil for null, missing or non-boolean values.
func (n node) boolAt(key string) *bool {
	v, ok := n.get(key)
	if !ok || v.kind != kindBool {
		return nil
	}
	b := v.b
	return &b
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// timestamp accepts RFC 3339, naive ISO 8601 (read as UTC) and epoch
// seconds or milliseconds.
func (n node) timestamp() (time.Time, bool) {
	switch n.kind {
	case kindNumber:
		f, err := n.num.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return epoch(f), true
	case kindString:
		s := strings.TrimSpace(n.s)
		for _, layout := range timeLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t, true
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return epoch(f), true
		}
	}
	return time.Time{}, false
}

func epoch(f float64) time.Time {
	// values this large are milliseconds
	if f > 1e12 {
		return time.UnixMilli(int64(f)).UTC()
	}
	sec := int64(f)
	return time.Unix(sec, int64((f-float64(sec))*1e9)).UTC()
}
