/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package filter

import (
	"github.com/snaar/chopper/cmn"
	"github.com/snaar/chopper/sink"
)

// rowFilterGreaterValueConfig passes through only rows whose columnName
// field compares strictly greater than value; a field pair that cannot be
// ordered (cross-type, None, Boolean, ByteBuf) also drops the row, matching
// partial_cmp returning None in the original.
type rowFilterGreaterValueConfig struct {
	columnName string
	value      cmn.FieldValue
}

// NewRowFilterGreaterValue builds a HeaderSink passing through only rows
// whose columnName field is strictly greater than value.
func NewRowFilterGreaterValue(columnName string, value cmn.FieldValue) sink.HeaderSink {
	return &rowFilterGreaterValueConfig{columnName: columnName, value: value}
}

func (c *rowFilterGreaterValueConfig) ProcessHeader(h *cmn.Header) (sink.DataSink, error) {
	i, err := findFieldIndexCaseInsensitive(*h, c.columnName)
	if err != nil {
		return nil, err
	}
	return &rowFilterGreaterValue{columnIndex: i, value: c.value}, nil
}

type rowFilterGreaterValue struct {
	columnIndex int
	value       cmn.FieldValue
}

func (f *rowFilterGreaterValue) WriteRowToPin(_ cmn.PinID, ioRows *[]cmn.Row) error {
	rows := *ioRows
	if len(rows) == 0 {
		return nil
	}
	row := rows[0]
	cmp, ok := row.FieldValues[f.columnIndex].Compare(f.value)
	if !ok || cmp <= 0 {
		*ioRows = rows[:0]
		return nil
	}
	return nil
}

func (f *rowFilterGreaterValue) Flush() error { return nil }
