// Package graph implements the build-time HeaderGraph and its resolver,
// and the runtime DataGraph the resolver produces (spec §4.2, §4.4, §4.5).
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package graph

import (
	"github.com/snaar/chopper/cmn"
	"github.com/snaar/chopper/sink"
)

// HeaderNode is one of HeaderSinkNode, MergeHeaderSinkNode,
// SplitHeaderSinkNode or HeaderMergeNode.
type HeaderNode interface {
	isHeaderNode()
}

// HeaderSinkNode wraps a single-input sink factory that transforms the
// header and yields a data sink.
type HeaderSinkNode struct {
	Sink sink.HeaderSink
}

func (*HeaderSinkNode) isHeaderNode() {}

// MergeHeaderSinkNode wraps a multi-input sink factory. Counter records
// how many upstream header arrivals remain before the merged header can
// be produced; it is set to Sink.PinCount() when the node is built.
type MergeHeaderSinkNode struct {
	Sink    sink.MergeHeaderSink
	Counter int
}

func (*MergeHeaderSinkNode) isHeaderNode() {}

// NewMergeHeaderSinkNode builds a MergeHeaderSinkNode with its pending
// counter initialized from the sink's declared pin count.
func NewMergeHeaderSinkNode(s sink.MergeHeaderSink) *MergeHeaderSinkNode {
	return &MergeHeaderSinkNode{Sink: s, Counter: s.PinCount()}
}

// SplitHeaderSinkNode is a 1-input/N-output node that replicates the
// header to a list of target chain ids. Counter is set to the target
// list's length when the node is built (communicating output fan-out to
// the data graph, even though the split itself always has exactly one
// input).
type SplitHeaderSinkNode struct {
	Sink    sink.SplitHeaderSink
	Counter int
}

func (*SplitHeaderSinkNode) isHeaderNode() {}

// NewSplitHeaderSinkNode builds a SplitHeaderSinkNode with its counter
// initialized from the target list length.
func NewSplitHeaderSinkNode(s sink.SplitHeaderSink) *SplitHeaderSinkNode {
	return &SplitHeaderSinkNode{Sink: s, Counter: len(s.ChainIDs())}
}

// HeaderMergeNode is a transition edge: it carries no logic beyond
// redirecting to the first node of TargetChainID, announcing which pin on
// that chain this arrival occupies.
type HeaderMergeNode struct {
	TargetChainID cmn.ChainID
	PinID         cmn.PinID
}

func (*HeaderMergeNode) isHeaderNode() {}

// HeaderChain is an ordered list of HeaderNodes.
type HeaderChain []HeaderNode

// HeaderGraph is a vector of HeaderChains, indexed by ChainID. The first
// len(sourceHeaders) chains passed to Resolve are the source chains: each
// arrives with its source's header on pin 0.
type HeaderGraph struct {
	Chains []HeaderChain
}

// NewHeaderGraph builds an empty graph with n chains, to be populated with
// AddNode before Resolve is called.
func NewHeaderGraph(n int) *HeaderGraph {
	return &HeaderGraph{Chains: make([]HeaderChain, n)}
}

// AddNode appends node to the end of chain id.
func (g *HeaderGraph) AddNode(id cmn.ChainID, node HeaderNode) error {
	if int(id) < 0 || int(id) >= len(g.Chains) {
		return cmn.Custom("header graph: chain index %d out of bounds (have %d chains)", id, len(g.Chains))
	}
	g.Chains[id] = append(g.Chains[id], node)
	return nil
}
