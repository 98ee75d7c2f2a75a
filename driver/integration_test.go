/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package driver

import (
	"bytes"
	"strings"
	"testing"

	"github.com/snaar/chopper/cmn"
	"github.com/snaar/chopper/filter"
	"github.com/snaar/chopper/graph"
	"github.com/snaar/chopper/sink"
	"github.com/snaar/chopper/source"
)

// TestSingleCSVToCSV mirrors the spec's concrete scenario 1: a single CSV
// source, no range restriction, piped straight through to CSV output.
func TestSingleCSVToCSV(t *testing.T) {
	src, err := source.NewCSV(strings.NewReader("timestamp,a,b\n1,x,y\n2,u,v\n"),
		source.CSVConfig{HasHeader: true, TimestampCol: "timestamp", Epoch: true, Unit: source.UnitNanos})
	if err != nil {
		t.Fatalf("NewCSV: %v", err)
	}

	var out bytes.Buffer
	hs := sink.NewCSVOutput(&out, sink.CSVOutputConfig{WithHeader: true})

	hg := graph.NewHeaderGraph(1)
	if err := hg.AddNode(0, &graph.HeaderSinkNode{Sink: hs}); err != nil {
		t.Fatal(err)
	}

	dg, err := graph.Resolve(hg, []cmn.Header{src.Header()})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	d, err := New(dg, []SourceChain{{Source: src, ChainID: 0}}, Range{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "timestamp,a,b\n1,x,y\n2,u,v\n"
	if out.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out.String(), want)
	}
}

// TestMergeTwoCSVSourcesWithFilter exercises a 2-way merge followed by a
// column-delete filter, then CSV output.
func TestMergeTwoCSVSourcesWithFilter(t *testing.T) {
	srcA, err := source.NewCSV(strings.NewReader("timestamp,a,drop_me\n1,x,99\n3,y,99\n"),
		source.CSVConfig{HasHeader: true, TimestampCol: "timestamp", Epoch: true, Unit: source.UnitNanos})
	if err != nil {
		t.Fatalf("NewCSV A: %v", err)
	}
	srcB, err := source.NewCSV(strings.NewReader("timestamp,a,drop_me\n2,z,99\n"),
		source.CSVConfig{HasHeader: true, TimestampCol: "timestamp", Epoch: true, Unit: source.UnitNanos})
	if err != nil {
		t.Fatalf("NewCSV B: %v", err)
	}

	hg := graph.NewHeaderGraph(3)
	if err := hg.AddNode(0, &graph.HeaderMergeNode{TargetChainID: 2, PinID: 0}); err != nil {
		t.Fatal(err)
	}
	if err := hg.AddNode(1, &graph.HeaderMergeNode{TargetChainID: 2, PinID: 1}); err != nil {
		t.Fatal(err)
	}
	if err := hg.AddNode(2, graph.NewMergeHeaderSinkNode(sink.NewMergeJoin(2))); err != nil {
		t.Fatal(err)
	}
	if err := hg.AddNode(2, &graph.HeaderSinkNode{Sink: filter.NewColumnFilterDeleteColumn("drop_me")}); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := hg.AddNode(2, &graph.HeaderSinkNode{Sink: sink.NewCSVOutput(&out, sink.CSVOutputConfig{WithHeader: true})}); err != nil {
		t.Fatal(err)
	}

	dg, err := graph.Resolve(hg, []cmn.Header{srcA.Header(), srcB.Header()})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	d, err := New(dg, []SourceChain{{Source: srcA, ChainID: 0}, {Source: srcB, ChainID: 1}}, Range{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "timestamp,a\n1,x\n2,z\n3,y\n"
	if out.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out.String(), want)
	}
}
