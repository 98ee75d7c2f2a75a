/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package driver

import (
	"github.com/snaar/chopper/cmn"
	"github.com/snaar/chopper/source"
)

// rowBuffer caches one source's current front row, pre-filtered through the
// range so the main loop only ever sees admissible rows (spec §4.6).
type rowBuffer struct {
	src       source.Source
	chainID   cmn.ChainID
	timestamp uint64
	row       cmn.Row
}

// newRowBuffer reads src's first admissible row. ok is false if the source
// was empty, or every remaining row was at-or-past end, before a single row
// could be exposed -- the buffer is then never added to the driver's set.
func newRowBuffer(src source.Source, chainID cmn.ChainID, rng Range) (*rowBuffer, bool, error) {
	rb := &rowBuffer{src: src, chainID: chainID}
	ok, err := rb.pullNext(rng)
	if err != nil || !ok {
		return nil, false, err
	}
	return rb, true, nil
}

// advance pulls the next admissible row, applying range semantics
// internally (skipped rows never surface). Returns false once the source
// is exhausted or has reached its end bound.
func (rb *rowBuffer) advance(rng Range) (bool, error) {
	return rb.pullNext(rng)
}

func (rb *rowBuffer) pullNext(rng Range) (bool, error) {
	for {
		row, err := rb.src.NextRow()
		if err != nil {
			return false, err
		}
		if row == nil {
			return false, nil
		}
		switch rng.classify(row.Timestamp) {
		case actionStop:
			return false, nil
		case actionSkip:
			continue
		default: // actionWrite
			rb.row = *row
			rb.timestamp = row.Timestamp
			return true, nil
		}
	}
}
