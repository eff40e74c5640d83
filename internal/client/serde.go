package client

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bndr/gotabulate"
)

// Record is a generic decoded JSON object. Used where the response shape is
// not worth a dedicated struct (activity log entries, delete confirmations).
type Record map[string]any

// RecordSet is an ordered list of records.
type RecordSet []Record

// Attributes shown first when a record is rendered as a table.
var printableAttrs = map[string]struct{}{
	"tipo":             {},
	"documento":        {},
	"numero_documento": {},
	"detalles":         {},
	"fecha":            {},
}

func sortedKeys(r Record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var front, rest []string
	for _, k := range keys {
		if _, ok := printableAttrs[k]; ok {
			front = append(front, k)
		} else {
			rest = append(rest, k)
		}
	}
	return append(front, rest...)
}

// PrettyTable renders the record as an attr/value grid table.
func (r Record) PrettyTable() string {
	if len(r) == 0 {
		return "<>"
	}
	var rows [][]any
	for _, key := range sortedKeys(r) {
		if val := r[key]; val != nil {
			rows = append(rows, []any{key, fmt.Sprintf("%v", val)})
		}
	}
	t := gotabulate.Create(rows)
	t.SetHeaders([]string{"attr", "value"})
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(85)
	return t.Render("grid")
}

// PrettyJson renders the record as JSON, optionally indented.
func (r Record) PrettyJson(indent ...string) string {
	var b []byte
	var err error
	if len(indent) > 0 {
		b, err = json.MarshalIndent(r, "", indent[0])
	} else {
		b, err = json.Marshal(r)
	}
	if err != nil {
		return fmt.Sprintf("failed to marshal JSON: %v", err)
	}
	return string(b)
}

// PrettyTable renders all records as one table, one row per record, with
// columns built from the union of keys.
func (rs RecordSet) PrettyTable() string {
	if len(rs) == 0 {
		return "<>"
	}
	seen := map[string]struct{}{}
	var headers []string
	for _, r := range rs {
		for _, k := range sortedKeys(r) {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				headers = append(headers, k)
			}
		}
	}
	var rows [][]any
	for _, r := range rs {
		row := make([]any, 0, len(headers))
		for _, h := range headers {
			if val, ok := r[h]; ok && val != nil {
				row = append(row, fmt.Sprintf("%v", val))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	t := gotabulate.Create(rows)
	t.SetHeaders(headers)
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(45)
	return t.Render("grid")
}

// Empty reports whether the set has no records.
func (rs RecordSet) Empty() bool {
	return len(rs) == 0
}
