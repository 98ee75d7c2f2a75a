/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package cmn

// FieldType is a closed tagged enumeration of column types. Tags are
// hashable, copyable, and dispatch sites for both schema comparison and
// codec (de)serialization key off of them directly.
type FieldType int

const (
	FieldBoolean FieldType = iota
	FieldByte
	FieldByteBuf
	FieldChar
	FieldDouble
	FieldFloat
	FieldInt
	FieldLong
	FieldShort
	FieldString
)

func (t FieldType) String() string {
	switch t {
	case FieldBoolean:
		return "Boolean"
	case FieldByte:
		return "Byte"
	case FieldByteBuf:
		return "ByteBuf"
	case FieldChar:
		return "Char"
	case FieldDouble:
		return "Double"
	case FieldFloat:
		return "Float"
	case FieldInt:
		return "Int"
	case FieldLong:
		return "Long"
	case FieldShort:
		return "Short"
	case FieldString:
		return "String"
	default:
		return "Unknown"
	}
}

// Comparable reports whether two FieldValues of this type may legally be
// ordered via partial_cmp: numeric types order naturally, String orders
// lexicographically; Boolean and ByteBuf do not order (spec §4.1).
func (t FieldType) Comparable() bool {
	return t != FieldBoolean && t != FieldByteBuf
}
