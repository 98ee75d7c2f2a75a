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

// Reader decodes a DC-formatted stream: the fixed file header once, then a
// sequence of row records until EOF.
type Reader struct {
	r           io.Reader
	header      cmn.Header
	bitsetBytes int
}

// NewReader reads and validates the fixed file header (magic, version,
// user header, field descriptors) and returns a Reader positioned at the
// first row record.
func NewReader(r io.Reader) (*Reader, error) {
	magic, err := readUint64(r)
	if err != nil {
		return nil, cmn.Wrap(cmn.ErrIO, err, "dc reader: reading magic")
	}
	if magic != Magic {
		return nil, cmn.Custom("dc reader: wrong magic number 0x%x", magic)
	}
	version, err := readUint16(r)
	if err != nil {
		return nil, cmn.Wrap(cmn.ErrIO, err, "dc reader: reading version")
	}
	if version != Version {
		return nil, cmn.Custom("dc reader: unsupported version %d", version)
	}

	userHeaderLen, err := readUint32(r)
	if err != nil {
		return nil, cmn.Wrap(cmn.ErrIO, err, "dc reader: reading user header length")
	}
	if userHeaderLen > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(userHeaderLen)); err != nil {
			return nil, cmn.Wrap(cmn.ErrIO, err, "dc reader: skipping user header")
		}
	}

	fieldCount, err := readUint32(r)
	if err != nil {
		return nil, cmn.Wrap(cmn.ErrIO, err, "dc reader: reading field count")
	}

	names := make([]string, fieldCount)
	types := make([]cmn.FieldType, fieldCount)
	for i := uint32(0); i < fieldCount; i++ {
		name, err := readSizedString(r)
		if err != nil {
			return nil, cmn.Wrap(cmn.ErrIO, err, "dc reader: reading field name")
		}
		if name == "" {
			name = cmn.GenerateDefaultFieldNames(int(fieldCount))[i]
		}
		tag, err := readSizedString(r)
		if err != nil {
			return nil, cmn.Wrap(cmn.ErrIO, err, "dc reader: reading field type tag")
		}
		ft, err := tagType(tag)
		if err != nil {
			return nil, err
		}
		hint, err := readInt32(r)
		if err != nil {
			return nil, cmn.Wrap(cmn.ErrIO, err, "dc reader: reading display hint")
		}
		if !validDisplayHint(hint) {
			return nil, cmn.Custom("dc reader: unknown display hint %d", hint)
		}
		names[i] = name
		types[i] = ft
	}

	header := cmn.NewHeader(names, types)
	return &Reader{r: r, header: header, bitsetBytes: nullBitsetSize(int(fieldCount))}, nil
}

// Header returns the decoded field header.
func (dr *Reader) Header() cmn.Header { return dr.header }

// NextRow decodes one row record. A missing or failed timestamp read is
// end-of-stream (row=nil, err=nil), per spec; any other read failure, or
// an encounter with an unsupported Boolean/ByteBuf field, is a hard error.
func (dr *Reader) NextRow() (*cmn.Row, error) {
	ts, err := readUint64(dr.r)
	if err != nil {
		return nil, nil // treat as EOF, per spec
	}

	bitset := make([]byte, dr.bitsetBytes)
	if _, err := io.ReadFull(dr.r, bitset); err != nil {
		return nil, cmn.Wrap(cmn.ErrIO, err, "dc reader: reading null bitset")
	}

	fieldCount := dr.header.Len()
	values := make([]cmn.FieldValue, fieldCount)
	for i := 0; i < fieldCount; i++ {
		if bitGet(bitset, i) {
			values[i] = cmn.NewNone(dr.header.FieldTypes[i])
			continue
		}
		v, err := dr.readValue(dr.header.FieldTypes[i])
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	row := cmn.Row{Timestamp: ts, FieldValues: values}
	return &row, nil
}

func (dr *Reader) readValue(t cmn.FieldType) (cmn.FieldValue, error) {
	switch t {
	case cmn.FieldBoolean:
		return cmn.FieldValue{}, cmn.Custom("dc reader: boolean field type is not supported")
	case cmn.FieldByteBuf:
		return cmn.FieldValue{}, cmn.Custom("dc reader: ByteBuffer field type is not supported")
	case cmn.FieldByte:
		var buf [1]byte
		if _, err := io.ReadFull(dr.r, buf[:]); err != nil {
			return cmn.FieldValue{}, cmn.Wrap(cmn.ErrIO, err, "dc reader: reading byte")
		}
		return cmn.NewByte(buf[0]), nil
	case cmn.FieldChar:
		v, err := readUint16(dr.r)
		if err != nil {
			return cmn.FieldValue{}, cmn.Wrap(cmn.ErrIO, err, "dc reader: reading char")
		}
		return cmn.NewChar(v), nil
	case cmn.FieldDouble:
		v, err := readUint64(dr.r)
		if err != nil {
			return cmn.FieldValue{}, cmn.Wrap(cmn.ErrIO, err, "dc reader: reading double")
		}
		return cmn.NewDouble(math.Float64frombits(v)), nil
	case cmn.FieldFloat:
		v, err := readUint32(dr.r)
		if err != nil {
			return cmn.FieldValue{}, cmn.Wrap(cmn.ErrIO, err, "dc reader: reading float")
		}
		return cmn.NewFloat(math.Float32frombits(v)), nil
	case cmn.FieldInt:
		v, err := readInt32(dr.r)
		if err != nil {
			return cmn.FieldValue{}, cmn.Wrap(cmn.ErrIO, err, "dc reader: reading int")
		}
		return cmn.NewInt(v), nil
	case cmn.FieldLong:
		v, err := readInt64(dr.r)
		if err != nil {
			return cmn.FieldValue{}, cmn.Wrap(cmn.ErrIO, err, "dc reader: reading long")
		}
		return cmn.NewLong(v), nil
	case cmn.FieldShort:
		v, err := readInt16(dr.r)
		if err != nil {
			return cmn.FieldValue{}, cmn.Wrap(cmn.ErrIO, err, "dc reader: reading short")
		}
		return cmn.NewShort(v), nil
	case cmn.FieldString:
		s, err := readStringValue(dr.r)
		if err != nil {
			return cmn.FieldValue{}, err
		}
		return cmn.NewString(s), nil
	default:
		return cmn.FieldValue{}, cmn.Custom("dc reader: unknown field type %v", t)
	}
}

// --- decoding helpers, all big-endian per spec §4.7 ---

func readUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func readInt16(r io.Reader) (int16, error) {
	v, err := readUint16(r)
	return int16(v), err
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func readInt32(r io.Reader) (int32, error) {
	v, err := readUint32(r)
	return int32(v), err
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

func readInt64(r io.Reader) (int64, error) {
	v, err := readUint64(r)
	return int64(v), err
}

// readSizedString is the header's plain u32-length string form.
func readSizedString(r io.Reader) (string, error) {
	n, err := readUint32(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// readStringValue is the row-value form: an i16 length, or -1 followed by
// a u32 length for strings longer than i16::MAX bytes.
func readStringValue(r io.Reader) (string, error) {
	n16, err := readInt16(r)
	if err != nil {
		return "", cmn.Wrap(cmn.ErrIO, err, "dc reader: reading string length")
	}
	var n uint32
	if n16 == -1 {
		n, err = readUint32(r)
		if err != nil {
			return "", cmn.Wrap(cmn.ErrIO, err, "dc reader: reading long string length")
		}
	} else {
		n = uint32(n16)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", cmn.Wrap(cmn.ErrIO, err, "dc reader: reading string bytes")
	}
	return string(buf), nil
}
