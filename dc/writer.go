/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package dc

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/snaar/chopper/cmn"
)

// Writer encodes rows against a fixed Header in the DC wire format. The
// field header is emitted exactly once, on the first WriteHeader call; the
// field-type -> wire-tag table is built once and kept for the writer's
// whole lifetime (WriteRow itself dispatches on each value's type).
type Writer struct {
	w           io.Writer
	header      cmn.Header
	bitsetBytes int
	tags        []string // per-field wire tag, built once in WriteHeader
}

// NewWriter builds a Writer around w. No bytes are emitted until
// WriteHeader is called.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteHeader emits the fixed file header: magic, version, an empty
// user-header block, and the field descriptors for h. Must be called
// exactly once, before any WriteRow.
func (dw *Writer) WriteHeader(h cmn.Header) error {
	if dw.tags != nil {
		return cmn.Custom("dc writer: header already written")
	}
	if err := writeUint64(dw.w, Magic); err != nil {
		return err
	}
	if err := writeUint16(dw.w, Version); err != nil {
		return err
	}
	// empty user header: a zero-length length-prefix, nothing follows
	if err := writeUint32(dw.w, 0); err != nil {
		return err
	}
	if err := writeUint32(dw.w, uint32(h.Len())); err != nil {
		return err
	}

	tags := make([]string, h.Len())
	for i, t := range h.FieldTypes {
		if t == cmn.FieldBoolean || t == cmn.FieldByteBuf {
			return cmn.Custom("dc writer: field type %v is not supported", t)
		}
		tag, err := typeTag(t)
		if err != nil {
			return err
		}
		tags[i] = tag
		if err := writeSizedString(dw.w, h.FieldNames[i]); err != nil {
			return err
		}
		if err := writeSizedString(dw.w, tag); err != nil {
			return err
		}
		if err := writeInt32(dw.w, int32(DisplayNone)); err != nil {
			return err
		}
	}

	dw.header = h
	dw.bitsetBytes = nullBitsetSize(h.Len())
	dw.tags = tags
	return nil
}

// WriteRow emits one row record: timestamp, null bitset, then the
// big-endian payload of every non-null field in order.
func (dw *Writer) WriteRow(row cmn.Row) error {
	if err := writeUint64(dw.w, row.Timestamp); err != nil {
		return err
	}

	bitset := make([]byte, dw.bitsetBytes)
	for i, v := range row.FieldValues {
		if v.None {
			bitSet(bitset, i)
		}
	}
	if _, err := dw.w.Write(bitset); err != nil {
		return cmn.Wrap(cmn.ErrIO, err, "dc writer: writing null bitset")
	}

	for _, v := range row.FieldValues {
		if v.None {
			continue
		}
		if err := dw.writeValue(v); err != nil {
			return err
		}
	}
	return nil
}

func (dw *Writer) writeValue(v cmn.FieldValue) error {
	switch v.Type {
	case cmn.FieldBoolean:
		return cmn.Custom("dc writer: boolean field type is not supported")
	case cmn.FieldByteBuf:
		return cmn.Custom("dc writer: ByteBuffer field type is not supported")
	case cmn.FieldByte:
		_, err := dw.w.Write([]byte{v.Byte()})
		return wrapIOErr(err)
	case cmn.FieldChar:
		return writeUint16(dw.w, v.Char())
	case cmn.FieldDouble:
		return writeUint64(dw.w, math.Float64bits(v.Double()))
	case cmn.FieldFloat:
		return writeUint32(dw.w, math.Float32bits(v.Float()))
	case cmn.FieldInt:
		return writeInt32(dw.w, v.Int())
	case cmn.FieldLong:
		return writeInt64(dw.w, v.Long())
	case cmn.FieldShort:
		return writeInt16(dw.w, v.Short())
	case cmn.FieldString:
		return writeStringValue(dw.w, v.StringVal())
	default:
		return cmn.Custom("dc writer: unknown field type %v", v.Type)
	}
}

// --- little encoding helpers, all big-endian per spec §4.7 ---

func wrapIOErr(err error) error {
	if err == nil {
		return nil
	}
	return cmn.Wrap(cmn.ErrIO, err, "dc writer: write failed")
}

func writeUint16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return wrapIOErr(err)
}

func writeInt16(w io.Writer, v int16) error { return writeUint16(w, uint16(v)) }

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return wrapIOErr(err)
}

func writeInt32(w io.Writer, v int32) error { return writeUint32(w, uint32(v)) }

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return wrapIOErr(err)
}

func writeInt64(w io.Writer, v int64) error { return writeUint64(w, uint64(v)) }

// writeSizedString is the header's plain u32-length string form, used for
// field names and type tags.
func writeSizedString(w io.Writer, s string) error {
	if err := writeUint32(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return wrapIOErr(err)
}

// writeStringValue is the row-value form: an i16 length, or -1 followed by
// a u32 length when the string is longer than i16::MAX bytes.
func writeStringValue(w io.Writer, s string) error {
	n := len(s)
	if n <= math.MaxInt16 {
		if err := writeInt16(w, int16(n)); err != nil {
			return err
		}
	} else {
		if err := writeInt16(w, -1); err != nil {
			return err
		}
		if err := writeUint32(w, uint32(n)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, s)
	return wrapIOErr(err)
}
