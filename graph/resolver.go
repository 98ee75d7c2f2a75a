/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package graph

import "github.com/snaar/chopper/cmn"

// Resolve walks hg starting from its first len(sourceHeaders) chains -- the
// source chains, each fed sourceHeaders[i] on pin 0 -- and produces the
// isomorphic DataGraph (spec §4.2). A chain is "discoverable" until every
// pin feeding its MergeHeaderSinkNode (if any) has arrived; at that point it
// is resolved once and the resulting DataChain is filled in at its original
// chain id, never duplicated.
func Resolve(hg *HeaderGraph, sourceHeaders []cmn.Header) (*DataGraph, error) {
	if len(sourceHeaders) > len(hg.Chains) {
		return nil, cmn.Custom("resolver: %d source headers but only %d chains", len(sourceHeaders), len(hg.Chains))
	}

	dg := NewDataGraph(len(hg.Chains))
	r := &resolver{hg: hg, dg: dg}

	for i, h := range sourceHeaders {
		chainID := cmn.ChainID(i)
		if err := r.arrive(chainID, 0, h); err != nil {
			return nil, err
		}
	}
	return dg, nil
}

type resolver struct {
	hg *HeaderGraph
	dg *DataGraph
}

// arrive delivers header h to chain chainID on pin pinID, and recurses
// through every remaining node on that chain once it is ready to proceed.
func (r *resolver) arrive(chainID cmn.ChainID, pinID cmn.PinID, h cmn.Header) error {
	if int(chainID) < 0 || int(chainID) >= len(r.hg.Chains) {
		return cmn.Custom("resolver: chain index %d out of bounds (have %d chains)", chainID, len(r.hg.Chains))
	}
	chain := r.hg.Chains[chainID]
	if len(chain) == 0 {
		return cmn.Custom("resolver: chain %d has no nodes", chainID)
	}

	node := chain[0]
	switch n := node.(type) {
	case *HeaderSinkNode:
		dataSink, err := n.Sink.ProcessHeader(&h)
		if err != nil {
			return err
		}
		if err := r.dg.AddNode(chainID, &DataSinkNode{Sink: dataSink}); err != nil {
			return err
		}
		return r.proceed(chainID, 1, h)

	case *MergeHeaderSinkNode:
		if err := n.Sink.CheckHeader(pinID, h); err != nil {
			return err
		}
		n.Counter--
		if n.Counter > 0 {
			// Pins still outstanding: this chain stays discoverable at its
			// original id, not consumed yet.
			return nil
		}
		if n.Counter < 0 {
			return cmn.Custom("resolver: chain %d merge sink received more arrivals than its declared pin count", chainID)
		}
		merged := n.Sink.ProcessHeader()
		dataSink, err := n.Sink.GetDataSink()
		if err != nil {
			return err
		}
		if err := r.dg.AddNode(chainID, &DataSinkNode{Sink: dataSink}); err != nil {
			return err
		}
		return r.proceed(chainID, 1, merged)

	case *SplitHeaderSinkNode:
		if n.Counter <= 0 {
			return cmn.Custom("resolver: chain %d split sink has no target chains", chainID)
		}
		targets := n.Sink.ChainIDs()
		if err := r.dg.AddNode(chainID, &DataSplitNode{TargetChainIDs: targets}); err != nil {
			return err
		}
		for _, target := range targets {
			if err := r.arrive(target, 0, h.Clone()); err != nil {
				return err
			}
		}
		return nil

	case *HeaderMergeNode:
		if err := r.dg.AddNode(chainID, &DataMergeNode{TargetChainID: n.TargetChainID, PinID: n.PinID}); err != nil {
			return err
		}
		return r.arrive(n.TargetChainID, n.PinID, h)

	default:
		return cmn.Custom("resolver: chain %d has unrecognized node type at position 0", chainID)
	}
}

// proceed continues resolving chainID from node index pos onward, once its
// node at position pos-1 has already been turned into a DataNode.
func (r *resolver) proceed(chainID cmn.ChainID, pos int, h cmn.Header) error {
	chain := r.hg.Chains[chainID]
	for pos < len(chain) {
		switch n := chain[pos].(type) {
		case *HeaderSinkNode:
			dataSink, err := n.Sink.ProcessHeader(&h)
			if err != nil {
				return err
			}
			if err := r.dg.AddNode(chainID, &DataSinkNode{Sink: dataSink}); err != nil {
				return err
			}
			pos++

		case *MergeHeaderSinkNode:
			// A merge node appearing past position 0 would mean two source
			// chains share a chain id prefix, which AddNode's append-only
			// construction never produces; treat it like the pin-0 case
			// for completeness.
			return r.arriveAt(chainID, pos, 0, h)

		case *SplitHeaderSinkNode:
			return r.arriveAt(chainID, pos, 0, h)

		case *HeaderMergeNode:
			if err := r.dg.AddNode(chainID, &DataMergeNode{TargetChainID: n.TargetChainID, PinID: n.PinID}); err != nil {
				return err
			}
			return r.arrive(n.TargetChainID, n.PinID, h)

		default:
			return cmn.Custom("resolver: chain %d has unrecognized node type at position %d", chainID, pos)
		}
	}
	return nil
}

// arriveAt re-enters the pin-0 arrival logic for a node that is not at the
// head of its chain (split/merge nodes reached mid-chain during proceed).
func (r *resolver) arriveAt(chainID cmn.ChainID, pos int, pinID cmn.PinID, h cmn.Header) error {
	chain := r.hg.Chains[chainID]
	switch n := chain[pos].(type) {
	case *MergeHeaderSinkNode:
		if err := n.Sink.CheckHeader(pinID, h); err != nil {
			return err
		}
		n.Counter--
		if n.Counter > 0 {
			return nil
		}
		if n.Counter < 0 {
			return cmn.Custom("resolver: chain %d merge sink received more arrivals than its declared pin count", chainID)
		}
		merged := n.Sink.ProcessHeader()
		dataSink, err := n.Sink.GetDataSink()
		if err != nil {
			return err
		}
		if err := r.dg.AddNode(chainID, &DataSinkNode{Sink: dataSink}); err != nil {
			return err
		}
		return r.proceed(chainID, pos+1, merged)

	case *SplitHeaderSinkNode:
		if n.Counter <= 0 {
			return cmn.Custom("resolver: chain %d split sink has no target chains", chainID)
		}
		targets := n.Sink.ChainIDs()
		if err := r.dg.AddNode(chainID, &DataSplitNode{TargetChainIDs: targets}); err != nil {
			return err
		}
		for _, target := range targets {
			if err := r.arrive(target, 0, h.Clone()); err != nil {
				return err
			}
		}
		return nil

	default:
		return cmn.Custom("resolver: chain %d node at position %d is not a fan node", chainID, pos)
	}
}
