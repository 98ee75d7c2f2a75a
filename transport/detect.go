// Package transport provides the peekable-reader wrapper and compression/
// format autodetection the core's sources use to open a source stream
// without knowing its wire format up front (spec §4.7, §5).
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package transport

import (
	"archive/zip"
	"bufio"
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v3"

	"github.com/snaar/chopper/cmn"
	"github.com/snaar/chopper/dc"
)

// Format is the autodetected wire format of a byte stream, read from its
// leading magic bytes without consuming them.
type Format int

const (
	FormatPlain Format = iota
	FormatDC
	FormatGzip
	FormatLZ4Frame
	FormatLZ4Block
	FormatLZF
	FormatZstd
	FormatZip
)

func (f Format) String() string {
	switch f {
	case FormatDC:
		return "dc"
	case FormatGzip:
		return "gzip"
	case FormatLZ4Frame:
		return "lz4-frame"
	case FormatLZ4Block:
		return "lz4-block"
	case FormatLZF:
		return "lzf"
	case FormatZstd:
		return "zstd"
	case FormatZip:
		return "zip"
	default:
		return "plain"
	}
}

// peekSize is large enough to hold every magic this package recognizes:
// the DC format's 8-byte magic plus 2-byte version.
const peekSize = 10

// DetectFormat peeks at the first bytes of r (without consuming them) and
// classifies the stream per the magic-byte table in spec §4.7.
func DetectFormat(r *bufio.Reader) (Format, error) {
	head, err := r.Peek(peekSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return FormatPlain, cmn.Wrap(cmn.ErrIO, err, "detecting stream format")
	}

	if len(head) >= 10 && bytesEqualUint64BE(head[:8], dc.Magic) && head[8] == 0 && head[9] == byte(dc.Version) {
		return FormatDC, nil
	}
	if len(head) >= 4 {
		switch {
		case bytes.Equal(head[:4], []byte{0x1F, 0x8B, 0x08, 0x00}):
			return FormatGzip, nil
		case bytes.Equal(head[:4], []byte{0x04, 0x22, 0x4D, 0x18}):
			return FormatLZ4Frame, nil
		case bytes.Equal(head[:4], []byte{0x4C, 0x5A, 0x34, 0x42}):
			return FormatLZ4Block, nil
		case bytes.Equal(head[:2], []byte{0x5A, 0x56}) && (head[2] == 0x01 || head[2] == 0x00):
			return FormatLZF, nil
		case bytes.Equal(head[:4], []byte{0x28, 0xB5, 0x2F, 0xFD}):
			return FormatZstd, nil
		case bytes.Equal(head[:2], []byte{0x50, 0x4B}):
			return FormatZip, nil
		}
	}
	return FormatPlain, nil
}

func bytesEqualUint64BE(b []byte, v uint64) bool {
	for i := 0; i < 8; i++ {
		shift := uint(56 - 8*i)
		if b[i] != byte(v>>shift) {
			return false
		}
	}
	return true
}

// Unwrap peeks r's format and returns a reader that yields the decompressed
// (or pass-through) byte stream, along with the format it detected. Zip
// archives are opened against their single first entry, which is the only
// shape the sources ever hand it. LZF is detected but not decoded: no
// ecosystem decoder for it is wired into this module, so Unwrap returns a
// clear unsupported-format error rather than attempting to hand-roll one.
func Unwrap(r io.Reader) (io.Reader, Format, error) {
	br := bufio.NewReaderSize(r, 4096)
	format, err := DetectFormat(br)
	if err != nil {
		return nil, FormatPlain, err
	}

	switch format {
	case FormatGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, format, cmn.Wrap(cmn.ErrIO, err, "opening gzip stream")
		}
		return gz, format, nil

	case FormatLZ4Frame, FormatLZ4Block:
		return lz4.NewReader(br), format, nil

	case FormatZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, format, cmn.Wrap(cmn.ErrIO, err, "opening zstd stream")
		}
		return zr.IOReadCloser(), format, nil

	case FormatZip:
		return unwrapZip(br)

	case FormatLZF:
		return nil, format, cmn.Custom("lzf-compressed input is detected but not supported")

	default:
		return br, format, nil
	}
}

// unwrapZip buffers br fully (zip requires a ReaderAt) and opens its first
// entry as a stream.
func unwrapZip(br *bufio.Reader) (io.Reader, Format, error) {
	data, err := io.ReadAll(br)
	if err != nil {
		return nil, FormatZip, cmn.Wrap(cmn.ErrIO, err, "buffering zip input")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, FormatZip, cmn.Wrap(cmn.ErrIO, err, "opening zip archive")
	}
	if len(zr.File) == 0 {
		return nil, FormatZip, cmn.Custom("zip archive has no entries")
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		return nil, FormatZip, cmn.Wrap(cmn.ErrIO, err, "opening zip archive entry %q", zr.File[0].Name)
	}
	return rc, FormatZip, nil
}
