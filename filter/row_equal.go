/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package filter

import (
	"github.com/snaar/chopper/cmn"
	"github.com/snaar/chopper/sink"
)

// rowFilterEqualValueConfig resolves columnName to an index once the
// header is known; rows whose value at that index is not equal to value
// (cmn.FieldValue.Equal) are dropped.
type rowFilterEqualValueConfig struct {
	columnName string
	value      cmn.FieldValue
}

// NewRowFilterEqualValue builds a HeaderSink passing through only rows
// whose columnName field equals value.
func NewRowFilterEqualValue(columnName string, value cmn.FieldValue) sink.HeaderSink {
	return &rowFilterEqualValueConfig{columnName: columnName, value: value}
}

func (c *rowFilterEqualValueConfig) ProcessHeader(h *cmn.Header) (sink.DataSink, error) {
	i, err := findFieldIndexCaseInsensitive(*h, c.columnName)
	if err != nil {
		return nil, err
	}
	return &rowFilterEqualValue{columnIndex: i, value: c.value}, nil
}

type rowFilterEqualValue struct {
	columnIndex int
	value       cmn.FieldValue
}

func (f *rowFilterEqualValue) WriteRowToPin(_ cmn.PinID, ioRows *[]cmn.Row) error {
	rows := *ioRows
	if len(rows) == 0 {
		return nil
	}
	row := rows[0]
	if !row.FieldValues[f.columnIndex].Equal(f.value) {
		*ioRows = rows[:0]
		return nil
	}
	return nil
}

func (f *rowFilterEqualValue) Flush() error { return nil }
