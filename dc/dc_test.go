/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package dc

import (
	"bytes"
	"testing"

	"github.com/snaar/chopper/cmn"
)

func TestWriteReadRoundTrip(t *testing.T) {
	header := cmn.NewHeader(
		[]string{"a", "b", "c", "d", "e"},
		[]cmn.FieldType{cmn.FieldByte, cmn.FieldInt, cmn.FieldDouble, cmn.FieldString, cmn.FieldLong},
	)
	rows := []cmn.Row{
		{Timestamp: 1, FieldValues: []cmn.FieldValue{
			cmn.NewByte(7), cmn.NewInt(42), cmn.NewDouble(3.5), cmn.NewString("hello"), cmn.NewLong(-9),
		}},
		{Timestamp: 2, FieldValues: []cmn.FieldValue{
			cmn.NewNone(cmn.FieldByte), cmn.NewInt(-1), cmn.NewNone(cmn.FieldDouble), cmn.NewString(""), cmn.NewLong(0),
		}},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteHeader(header); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	for _, row := range rows {
		if err := w.WriteRow(row); err != nil {
			t.Fatalf("WriteRow: %v", err)
		}
	}

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if !r.Header().Equal(header) {
		t.Fatalf("header mismatch: got %+v, want %+v", r.Header(), header)
	}

	for i, want := range rows {
		got, err := r.NextRow()
		if err != nil {
			t.Fatalf("NextRow %d: %v", i, err)
		}
		if got == nil {
			t.Fatalf("NextRow %d: unexpected EOF", i)
		}
		if got.Timestamp != want.Timestamp {
			t.Fatalf("row %d: timestamp got %d want %d", i, got.Timestamp, want.Timestamp)
		}
		for j := range want.FieldValues {
			if !got.FieldValues[j].Equal(want.FieldValues[j]) {
				t.Fatalf("row %d field %d: got %+v want %+v", i, j, got.FieldValues[j], want.FieldValues[j])
			}
		}
	}

	last, err := r.NextRow()
	if err != nil {
		t.Fatalf("expected EOF, got error: %v", err)
	}
	if last != nil {
		t.Fatalf("expected EOF, got row: %+v", last)
	}
}

func TestWriterRejectsBoolean(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	header := cmn.NewHeader([]string{"a"}, []cmn.FieldType{cmn.FieldBoolean})
	if err := w.WriteHeader(header); err == nil {
		t.Fatal("expected error writing a Boolean header")
	}
}

func TestReaderRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBuffer(make([]byte, 10))
	if _, err := NewReader(buf); err == nil {
		t.Fatal("expected error for bad magic")
	}
}
