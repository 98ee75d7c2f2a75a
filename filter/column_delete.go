// Package filter implements the core's built-in row/column filters:
// column deletion and row predicates on a named column's value, grounded
// on original_source/src/filter/*.rs.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package filter

import (
	"strings"

	"github.com/snaar/chopper/cmn"
	"github.com/snaar/chopper/sink"
)

// findFieldIndexCaseInsensitive mirrors the filters' eq_ignore_ascii_case
// column lookup, which is case-insensitive unlike cmn.Header.GetFieldIndex.
func findFieldIndexCaseInsensitive(h cmn.Header, name string) (int, error) {
	for i, n := range h.FieldNames {
		if strings.EqualFold(n, name) {
			return i, nil
		}
	}
	return -1, cmn.ColumnMissing(name)
}

// columnFilterDeleteConfig is the HeaderSink half: it resolves column_name
// to an index once the header arrives, and rewrites the header to drop it.
type columnFilterDeleteConfig struct {
	columnName string
}

// NewColumnFilterDeleteColumn builds a HeaderSink that removes columnName
// from the header and every row passing through.
func NewColumnFilterDeleteColumn(columnName string) sink.HeaderSink {
	return &columnFilterDeleteConfig{columnName: columnName}
}

func (c *columnFilterDeleteConfig) ProcessHeader(h *cmn.Header) (sink.DataSink, error) {
	i, err := findFieldIndexCaseInsensitive(*h, c.columnName)
	if err != nil {
		return nil, err
	}
	*h = h.DeleteColumn(i)
	return &columnFilterDelete{columnIndex: i}, nil
}

type columnFilterDelete struct {
	columnIndex int
}

func (f *columnFilterDelete) WriteRowToPin(_ cmn.PinID, ioRows *[]cmn.Row) error {
	rows := *ioRows
	for i := range rows {
		fv := rows[i].FieldValues
		rows[i].FieldValues = append(fv[:f.columnIndex:f.columnIndex], fv[f.columnIndex+1:]...)
	}
	return nil
}

func (f *columnFilterDelete) Flush() error { return nil }
