/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package filter

import (
	"testing"

	"github.com/snaar/chopper/cmn"
)

func testHeader() cmn.Header {
	return cmn.NewHeader([]string{"ts", "name", "amount"}, []cmn.FieldType{cmn.FieldLong, cmn.FieldString, cmn.FieldInt})
}

func TestColumnFilterDeleteColumn(t *testing.T) {
	h := testHeader()
	hs := NewColumnFilterDeleteColumn("name")
	ds, err := hs.ProcessHeader(&h)
	if err != nil {
		t.Fatalf("ProcessHeader: %v", err)
	}
	if h.Len() != 2 || h.FieldNames[0] != "ts" || h.FieldNames[1] != "amount" {
		t.Fatalf("unexpected header after delete: %+v", h)
	}

	rows := []cmn.Row{{Timestamp: 1, FieldValues: []cmn.FieldValue{
		cmn.NewLong(1), cmn.NewString("x"), cmn.NewInt(7),
	}}}
	if err := ds.WriteRowToPin(0, &rows); err != nil {
		t.Fatalf("WriteRowToPin: %v", err)
	}
	if len(rows[0].FieldValues) != 2 {
		t.Fatalf("expected 2 remaining fields, got %d", len(rows[0].FieldValues))
	}
	if !rows[0].FieldValues[0].Equal(cmn.NewLong(1)) || !rows[0].FieldValues[1].Equal(cmn.NewInt(7)) {
		t.Fatalf("unexpected remaining fields: %+v", rows[0].FieldValues)
	}
}

func TestColumnFilterDeleteColumnMissing(t *testing.T) {
	h := testHeader()
	hs := NewColumnFilterDeleteColumn("does-not-exist")
	if _, err := hs.ProcessHeader(&h); err == nil {
		t.Fatal("expected an error for a missing column")
	}
}

func TestRowFilterEqualValue(t *testing.T) {
	h := testHeader()
	hs := NewRowFilterEqualValue("name", cmn.NewString("keep"))
	ds, err := hs.ProcessHeader(&h)
	if err != nil {
		t.Fatalf("ProcessHeader: %v", err)
	}

	keep := []cmn.Row{{Timestamp: 1, FieldValues: []cmn.FieldValue{cmn.NewLong(1), cmn.NewString("keep"), cmn.NewInt(1)}}}
	if err := ds.WriteRowToPin(0, &keep); err != nil {
		t.Fatal(err)
	}
	if len(keep) != 1 {
		t.Fatalf("expected row to survive, got %d rows", len(keep))
	}

	drop := []cmn.Row{{Timestamp: 2, FieldValues: []cmn.FieldValue{cmn.NewLong(2), cmn.NewString("other"), cmn.NewInt(1)}}}
	if err := ds.WriteRowToPin(0, &drop); err != nil {
		t.Fatal(err)
	}
	if len(drop) != 0 {
		t.Fatalf("expected row to be dropped, got %d rows", len(drop))
	}
}

func TestRowFilterGreaterValue(t *testing.T) {
	h := testHeader()
	hs := NewRowFilterGreaterValue("amount", cmn.NewInt(10))
	ds, err := hs.ProcessHeader(&h)
	if err != nil {
		t.Fatalf("ProcessHeader: %v", err)
	}

	above := []cmn.Row{{Timestamp: 1, FieldValues: []cmn.FieldValue{cmn.NewLong(1), cmn.NewString("a"), cmn.NewInt(11)}}}
	if err := ds.WriteRowToPin(0, &above); err != nil {
		t.Fatal(err)
	}
	if len(above) != 1 {
		t.Fatal("expected row above threshold to survive")
	}

	equal := []cmn.Row{{Timestamp: 2, FieldValues: []cmn.FieldValue{cmn.NewLong(2), cmn.NewString("b"), cmn.NewInt(10)}}}
	if err := ds.WriteRowToPin(0, &equal); err != nil {
		t.Fatal(err)
	}
	if len(equal) != 0 {
		t.Fatal("expected row equal to threshold to be dropped (strictly greater required)")
	}

	below := []cmn.Row{{Timestamp: 3, FieldValues: []cmn.FieldValue{cmn.NewLong(3), cmn.NewString("c"), cmn.NewInt(9)}}}
	if err := ds.WriteRowToPin(0, &below); err != nil {
		t.Fatal(err)
	}
	if len(below) != 0 {
		t.Fatal("expected row below threshold to be dropped")
	}
}

func TestRowFilterCaseInsensitiveColumnLookup(t *testing.T) {
	h := testHeader()
	hs := NewRowFilterEqualValue("NAME", cmn.NewString("x"))
	if _, err := hs.ProcessHeader(&h); err != nil {
		t.Fatalf("expected case-insensitive column lookup to succeed: %v", err)
	}
}
