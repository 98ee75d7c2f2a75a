/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package sink

import "github.com/snaar/chopper/cmn"

// Split is a 1-input/N-output header node: it carries the list of target
// chain ids the header (and later every row) fans out to. It contributes
// no data-time transformation of its own -- the resolver records a
// DataSplitNode in the data graph instead, and the driver does the actual
// fan-out (spec §4.4, §4.6).
type Split struct {
	targets []cmn.ChainID
}

// NewSplit builds a Split fanning out to targets, in the given order.
func NewSplit(targets []cmn.ChainID) *Split {
	return &Split{targets: targets}
}

func (s *Split) ChainIDs() []cmn.ChainID { return s.targets }
