/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package source

import (
	"strings"
	"testing"

	"github.com/snaar/chopper/cmn"
)

func TestCSVSourceWithHeaderEpoch(t *testing.T) {
	r := strings.NewReader("timestamp,a,b\n1,x,y\n2,u,v\n")
	src, err := NewCSV(r, CSVConfig{HasHeader: true, TimestampCol: "timestamp", Epoch: true, Unit: UnitNanos})
	if err != nil {
		t.Fatalf("NewCSV: %v", err)
	}
	h := src.Header()
	if h.Len() != 3 || h.FieldNames[0] != "timestamp" {
		t.Fatalf("unexpected header: %+v", h)
	}

	row1, err := src.NextRow()
	if err != nil || row1 == nil {
		t.Fatalf("NextRow 1: row=%v err=%v", row1, err)
	}
	if row1.Timestamp != 1 {
		t.Fatalf("expected ts=1, got %d", row1.Timestamp)
	}
	if row1.FieldValues[1].StringVal() != "x" {
		t.Fatalf("expected col a = x, got %q", row1.FieldValues[1].StringVal())
	}

	row2, err := src.NextRow()
	if err != nil || row2 == nil {
		t.Fatalf("NextRow 2: row=%v err=%v", row2, err)
	}
	if row2.Timestamp != 2 {
		t.Fatalf("expected ts=2, got %d", row2.Timestamp)
	}

	eof, err := src.NextRow()
	if err != nil || eof != nil {
		t.Fatalf("expected EOF, got row=%v err=%v", eof, err)
	}
}

func TestCSVSourceNoHeader(t *testing.T) {
	r := strings.NewReader("1,x\n2,y\n")
	src, err := NewCSV(r, CSVConfig{HasHeader: false, Epoch: true, Unit: UnitSeconds})
	if err != nil {
		t.Fatalf("NewCSV: %v", err)
	}
	h := src.Header()
	if h.FieldNames[0] != "col_0" || h.FieldNames[1] != "col_1" {
		t.Fatalf("unexpected synthesized header: %+v", h.FieldNames)
	}

	row1, err := src.NextRow()
	if err != nil || row1 == nil {
		t.Fatalf("NextRow 1: row=%v err=%v", row1, err)
	}
	if row1.FieldValues[1].StringVal() != "x" {
		t.Fatalf("expected col_1 = x, got %q", row1.FieldValues[1].StringVal())
	}
}

func TestCSVSourceMissingTimestampColumn(t *testing.T) {
	r := strings.NewReader("a,b\n1,2\n")
	_, err := NewCSV(r, CSVConfig{HasHeader: true, TimestampCol: "nope", Epoch: true})
	if err == nil {
		t.Fatal("expected an error for a missing timestamp column")
	}
}

func TestCSVSourceTimezoneRequiredForLayout(t *testing.T) {
	r := strings.NewReader("timestamp,a\n2020-01-01 00:00:00,x\n")
	src, err := NewCSV(r, CSVConfig{HasHeader: true, TimestampCol: "timestamp", TimestampLayout: "2006-01-02 15:04:05", TZ: cmn.NoTZ()})
	if err != nil {
		t.Fatalf("NewCSV: %v", err)
	}
	if _, err := src.NextRow(); err == nil {
		t.Fatal("expected TimeZoneMissingForParsing without a configured timezone")
	}
}
