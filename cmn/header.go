/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package cmn

import "strconv"

// Header is an ordered pair of parallel vectors: field names and field
// types. The two vectors are always the same length; Header equality
// compares both vectors elementwise and in order.
type Header struct {
	FieldNames []string
	FieldTypes []FieldType
}

// NewHeader builds a Header, asserting that names and types agree in
// length -- the spec allows either a panic or an error here; the driver
// never constructs a mismatched Header, so we assert.
func NewHeader(names []string, types []FieldType) Header {
	AssertMsg(len(names) == len(types), "header name/type length mismatch: %d names, %d types", len(names), len(types))
	return Header{FieldNames: names, FieldTypes: types}
}

// Len returns the number of columns.
func (h Header) Len() int { return len(h.FieldNames) }

// Clone returns a deep-enough copy safe to hand to an independent chain
// (used by the split header sink, which must fan the same header out to
// several targets without aliasing the slices).
func (h Header) Clone() Header {
	names := make([]string, len(h.FieldNames))
	copy(names, h.FieldNames)
	types := make([]FieldType, len(h.FieldTypes))
	copy(types, h.FieldTypes)
	return Header{FieldNames: names, FieldTypes: types}
}

// Equal reports whether both vectors are equal elementwise and in order.
func (h Header) Equal(other Header) bool {
	if len(h.FieldNames) != len(other.FieldNames) {
		return false
	}
	for i := range h.FieldNames {
		if h.FieldNames[i] != other.FieldNames[i] || h.FieldTypes[i] != other.FieldTypes[i] {
			return false
		}
	}
	return true
}

// GetFieldIndex looks a column up by name, failing with ColumnMissing when
// absent.
func (h Header) GetFieldIndex(name string) (int, error) {
	for i, n := range h.FieldNames {
		if n == name {
			return i, nil
		}
	}
	return -1, ColumnMissing(name)
}

// GenerateDefaultFieldNames produces ["col_0", ..., "col_{n-1}"], the
// default synthetic names for an unnamed column set.
func GenerateDefaultFieldNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = "col_" + strconv.Itoa(i)
	}
	return names
}

// DeleteColumn returns a Header with the column at index i removed, used
// by ColumnFilterDeleteColumn's header mutation.
func (h Header) DeleteColumn(i int) Header {
	AssertMsg(i >= 0 && i < len(h.FieldNames), "column index %d out of range", i)
	names := make([]string, 0, len(h.FieldNames)-1)
	types := make([]FieldType, 0, len(h.FieldTypes)-1)
	names = append(names, h.FieldNames[:i]...)
	names = append(names, h.FieldNames[i+1:]...)
	types = append(types, h.FieldTypes[:i]...)
	types = append(types, h.FieldTypes[i+1:]...)
	return Header{FieldNames: names, FieldTypes: types}
}
