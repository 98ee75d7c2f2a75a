/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package transport

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"testing"
)

func TestDetectFormatPlain(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader([]byte("timestamp,a,b\n1,x,y\n")))
	f, err := DetectFormat(r)
	if err != nil {
		t.Fatalf("DetectFormat: %v", err)
	}
	if f != FormatPlain {
		t.Fatalf("expected FormatPlain, got %v", f)
	}
	// Peek must not have consumed the stream.
	head, _ := r.Peek(4)
	if string(head) != "time" {
		t.Fatalf("Peek must be non-consuming, got %q", head)
	}
}

func TestDetectFormatGzip(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, _ = gw.Write([]byte("hello"))
	_ = gw.Close()

	r := bufio.NewReader(bytes.NewReader(buf.Bytes()))
	f, err := DetectFormat(r)
	if err != nil {
		t.Fatalf("DetectFormat: %v", err)
	}
	if f != FormatGzip {
		t.Fatalf("expected FormatGzip, got %v", f)
	}
}

func TestUnwrapGzipRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, _ = gw.Write([]byte("payload bytes"))
	_ = gw.Close()

	r, format, err := Unwrap(&buf)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if format != FormatGzip {
		t.Fatalf("expected FormatGzip, got %v", format)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading unwrapped stream: %v", err)
	}
	if string(data) != "payload bytes" {
		t.Fatalf("got %q, want %q", data, "payload bytes")
	}
}

func TestUnwrapLZFIsUnsupported(t *testing.T) {
	lzfMagic := []byte{0x5A, 0x56, 0x00, 0x00, 0x00}
	_, _, err := Unwrap(bytes.NewReader(lzfMagic))
	if err == nil {
		t.Fatal("expected an unsupported-format error for lzf input")
	}
}
