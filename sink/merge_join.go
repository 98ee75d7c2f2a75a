/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package sink

import "github.com/snaar/chopper/cmn"

// MergeJoin is the core's own MergeHeaderSink: it verifies that every pin
// feeding it carries an identical header, resolves to that common header
// unchanged, and at data time passes rows through untouched. Ordering
// across pins is guaranteed by the driver (spec §4.6), so MergeJoin does
// no per-pin buffering of rows.
type MergeJoin struct {
	pinCount  int
	refHeader cmn.Header
	headerSet bool
	received  int
}

// NewMergeJoin builds a MergeJoin expecting pinCount incoming headers.
func NewMergeJoin(pinCount int) *MergeJoin {
	return &MergeJoin{pinCount: pinCount}
}

func (m *MergeJoin) PinCount() int { return m.pinCount }

// CheckHeader records the first arriving header as the reference; every
// subsequent arrival must compare equal to it.
func (m *MergeJoin) CheckHeader(pinID cmn.PinID, h cmn.Header) error {
	if !m.headerSet {
		m.refHeader = h.Clone()
		m.headerSet = true
	} else if !m.refHeader.Equal(h) {
		return cmn.Custom("merge-join: header mismatch on pin %d", pinID)
	}
	m.received++
	return nil
}

// ProcessHeader returns the resolved merged header, identical to every
// pin's input header.
func (m *MergeJoin) ProcessHeader() cmn.Header { return m.refHeader }

// GetDataSink fails unless every pin's header has been checked in.
func (m *MergeJoin) GetDataSink() (DataSink, error) {
	if m.received < m.pinCount {
		return nil, cmn.Custom("merge-join: get_data_sink called with %d/%d pin headers received", m.received, m.pinCount)
	}
	return &mergeJoinData{}, nil
}

type mergeJoinData struct{}

// WriteRowToPin is a pure passthrough: rows reach the merge sink already
// in the order the driver's k-way selection chose.
func (d *mergeJoinData) WriteRowToPin(_ cmn.PinID, _ *[]cmn.Row) error { return nil }

func (d *mergeJoinData) Flush() error { return nil }
