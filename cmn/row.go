/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package cmn

// Row is a timestamped tuple of field values, interpreted against
// whatever Header is prevailing in the chain it is currently traveling
// through. Rows carry no embedded schema.
type Row struct {
	Timestamp   uint64
	FieldValues []FieldValue
}

// EmptyRow returns the zero row: timestamp 0, no values.
func EmptyRow() Row { return Row{} }

// Clone deep-copies the field-value slice so a sink that fans a row out to
// more than one downstream chain (Split) doesn't let one branch's mutation
// leak into another's.
func (r Row) Clone() Row {
	values := make([]FieldValue, len(r.FieldValues))
	copy(values, r.FieldValues)
	return Row{Timestamp: r.Timestamp, FieldValues: values}
}
