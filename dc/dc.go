// Package dc implements chopper's binary columnar row format: the wire
// encoding described in the spec's §4.7, big-endian throughout, with a
// fixed file header (magic, version, user header, field descriptors)
// followed by a stream of row records each prefixed by a null bitset.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package dc

import (
	"github.com/snaar/chopper/cmn"
)

// Magic and Version identify the DC wire format; readers reject any other
// value for either, hard.
const (
	Magic   uint64 = 0x0000_0000_4443_4154
	Version uint16 = 2
)

// DisplayHint is an i32 enum describing how a higher layer should render a
// column; readers must reject unknown values.
type DisplayHint int32

const (
	DisplayNone          DisplayHint = -1
	DisplayTimestamp     DisplayHint = 0
	DisplayArrayInt      DisplayHint = 1
	DisplayArrayDouble   DisplayHint = 2
	DisplayArrayLong     DisplayHint = 3
	DisplayArrayString   DisplayHint = 4
	DisplayArrayByte     DisplayHint = 5
	DisplayMatrixDouble2D DisplayHint = 6
)

func validDisplayHint(h int32) bool {
	return h >= int32(DisplayNone) && h <= int32(DisplayMatrixDouble2D)
}

// FieldDescriptor is one (name, type, display-hint) triple from the DC
// file header.
type FieldDescriptor struct {
	Name        string
	Type        cmn.FieldType
	DisplayHint DisplayHint
}

// typeTag/tagType implement the fixed type-string dialect from §4.7. Note
// Boolean and ByteBuf *do* have wire tags (Z and the ByteBuffer tag) even
// though the writer refuses them in WriteHeader and the reader refuses any
// non-null row value of either type -- the type table itself must still
// round-trip them so a header-only tool can at least report the declared
// schema.
const (
	tagBoolean  = "Z"
	tagByte     = "B"
	tagChar     = "C"
	tagDouble   = "D"
	tagFloat    = "F"
	tagInt      = "I"
	tagLong     = "J"
	tagShort    = "S"
	tagString   = "Ljava.lang.String;"
	tagByteBuf  = "Ljava.lang.ByteBuffer;"
)

func typeTag(t cmn.FieldType) (string, error) {
	switch t {
	case cmn.FieldBoolean:
		return tagBoolean, nil
	case cmn.FieldByte:
		return tagByte, nil
	case cmn.FieldChar:
		return tagChar, nil
	case cmn.FieldDouble:
		return tagDouble, nil
	case cmn.FieldFloat:
		return tagFloat, nil
	case cmn.FieldInt:
		return tagInt, nil
	case cmn.FieldLong:
		return tagLong, nil
	case cmn.FieldShort:
		return tagShort, nil
	case cmn.FieldString:
		return tagString, nil
	case cmn.FieldByteBuf:
		return tagByteBuf, nil
	default:
		return "", cmn.Custom("dc: no wire tag for field type %v", t)
	}
}

func tagType(tag string) (cmn.FieldType, error) {
	switch tag {
	case tagBoolean:
		return cmn.FieldBoolean, nil
	case tagByte:
		return cmn.FieldByte, nil
	case tagChar:
		return cmn.FieldChar, nil
	case tagDouble:
		return cmn.FieldDouble, nil
	case tagFloat:
		return cmn.FieldFloat, nil
	case tagInt:
		return cmn.FieldInt, nil
	case tagLong:
		return cmn.FieldLong, nil
	case tagShort:
		return cmn.FieldShort, nil
	case tagString:
		return cmn.FieldString, nil
	case tagByteBuf:
		return cmn.FieldByteBuf, nil
	default:
		return 0, cmn.Custom("dc: unknown type tag %q", tag)
	}
}

// nullBitsetSize returns the number of bytes needed to hold one bit per
// field, per spec: ceil(field_count / 8).
func nullBitsetSize(fieldCount int) int {
	return (fieldCount + 7) / 8
}

// bitSet/bitGet implement the LSB-first-within-byte, field-index-ordered
// null bitset from spec §4.7 / §9: bit k of byte k/8 is 1 iff field k is
// null.
func bitSet(bitset []byte, k int) {
	bitset[k/8] |= 1 << uint(k%8)
}

func bitGet(bitset []byte, k int) bool {
	return bitset[k/8]&(1<<uint(k%8)) != 0
}
