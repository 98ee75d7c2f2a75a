// Package sink defines the sink interfaces the graph and driver core are
// built against (spec §6: HeaderSink, MergeHeaderSink, SplitHeaderSink,
// DataSink; Source lives in package source), and the two sinks the core
// supplies itself: the merge-join passthrough sink and the split fan-out
// sink.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package sink

import "github.com/snaar/chopper/cmn"

// DataSink is a runtime row transformer. WriteRowToPin receives a
// one-element io buffer holding the current row; it may leave it
// untouched, mutate it in place, clear it (dropping the row), or append to
// it (emitting more than one row). pin_id is consumed only by the first
// sink entered after a Merge transition -- everywhere else callers pass 0.
type DataSink interface {
	WriteRowToPin(pinID cmn.PinID, ioRows *[]cmn.Row) error
	Flush() error
}

// HeaderSink is a single-input header transform that yields the DataSink
// to run at data time.
type HeaderSink interface {
	ProcessHeader(h *cmn.Header) (DataSink, error)
}

// MergeHeaderSink is a multi-input (fan-in) header transform. CheckHeader
// is called once per arriving pin; ProcessHeader and GetDataSink are only
// valid to call once every pin has checked in.
type MergeHeaderSink interface {
	CheckHeader(pinID cmn.PinID, h cmn.Header) error
	ProcessHeader() cmn.Header
	GetDataSink() (DataSink, error)
	PinCount() int
}

// SplitHeaderSink is a 1-input/N-output header transform: the header
// arrives once, on the split's single input, and is cloned out to every
// listed target chain.
type SplitHeaderSink interface {
	ChainIDs() []cmn.ChainID
}
