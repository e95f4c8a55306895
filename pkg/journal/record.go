package journal

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/vango-dev/reconcile/pkg/tree"
)

// Record is a serializable view of an Entry, suitable for JSON or YAML.
type Record struct {
	Op      string       `json:"op" yaml:"op"`
	Parent  string       `json:"parent,omitempty" yaml:"parent,omitempty"`
	Node    string       `json:"node,omitempty" yaml:"node,omitempty"`
	Before  string       `json:"before,omitempty" yaml:"before,omitempty"`
	Text    string       `json:"text,omitempty" yaml:"text,omitempty"`
	Attrs   []AttrRecord `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Cleanup bool         `json:"cleanup,omitempty" yaml:"cleanup,omitempty"`
}

// AttrRecord is one key/value pair of an Attrs run.
type AttrRecord struct {
	Key     string `json:"key" yaml:"key"`
	Value   string `json:"value,omitempty" yaml:"value,omitempty"`
	Removed bool   `json:"removed,omitempty" yaml:"removed,omitempty"`
}

// Records converts entries into their serializable form.
func Records(entries []Entry) []Record {
	out := make([]Record, 0, len(entries))
	for _, e := range entries {
		r := Record{Op: e.Op.String(), Text: e.Text, Cleanup: e.Cleanup}
		if e.Parent != nil {
			r.Parent = tree.Describe(e.Parent)
		}
		if e.Node != nil {
			r.Node = tree.Describe(e.Node)
		}
		if e.Before != nil {
			r.Before = tree.Describe(e.Before)
		}
		for _, a := range e.Attrs {
			if a.Value == nil {
				r.Attrs = append(r.Attrs, AttrRecord{Key: a.Key, Removed: true})
			} else {
				r.Attrs = append(r.Attrs, AttrRecord{Key: a.Key, Value: FormatValue(a.Value)})
			}
		}
		out = append(out, r)
	}
	return out
}

// FormatValue converts a property value to display text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	if v != nil && reflect.TypeOf(v).Kind() == reflect.Func {
		return "func"
	}
	return fmt.Sprintf("%v", v)
}
